package job

import (
	"context"
	"time"

	"sla-srv/internal/escalation"
	"sla-srv/pkg/log"
	"sla-srv/pkg/scheduler"
)

const scanJobName = "escalation.scan"

// Handler runs the periodic SLA deadline scan.
type Handler struct {
	l     log.Logger
	uc    escalation.UseCase
	clock func() time.Time
}

func New(l log.Logger, uc escalation.UseCase) Handler {
	return Handler{
		l:     l,
		uc:    uc,
		clock: time.Now,
	}
}

// Register schedules the scan on s with spec.
func (h Handler) Register(s *scheduler.Scheduler, spec string) error {
	return s.Add(scanJobName, spec, h.Scan)
}

func (h Handler) Scan(ctx context.Context) {
	res, err := h.uc.Scan(ctx, h.clock())
	if err != nil {
		h.l.Errorf(ctx, "internal.escalation.delivery.job.Scan: %v", err)
		return
	}
	if res.Failed > 0 {
		h.l.Warnf(ctx, "internal.escalation.delivery.job.Scan: %d of %d feedbacks failed", res.Failed, res.Evaluated)
	}
}
