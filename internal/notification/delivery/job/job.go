package job

import (
	"context"
	"time"

	"sla-srv/internal/notification"
	"sla-srv/pkg/log"
	"sla-srv/pkg/scheduler"
)

const dueJobName = "notification.due"

// Handler runs the sweep that queues scheduled notifications and retries
// failed ones after their backoff.
type Handler struct {
	l     log.Logger
	uc    notification.UseCase
	clock func() time.Time
}

func New(l log.Logger, uc notification.UseCase) Handler {
	return Handler{
		l:     l,
		uc:    uc,
		clock: time.Now,
	}
}

func (h Handler) Register(s *scheduler.Scheduler, spec string) error {
	return s.Add(dueJobName, spec, h.ProcessDue)
}

func (h Handler) ProcessDue(ctx context.Context) {
	out, err := h.uc.ProcessDue(ctx, h.clock())
	if err != nil {
		h.l.Errorf(ctx, "internal.notification.delivery.job.ProcessDue: %v", err)
		return
	}
	if out.Dropped > 0 {
		h.l.Warnf(ctx, "internal.notification.delivery.job.ProcessDue: dispatch queue full, %d notifications deferred", out.Dropped)
	}
}
