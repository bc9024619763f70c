package usecase

import (
	"context"
	"time"

	"sla-srv/internal/notification"
	"sla-srv/internal/notification/repository"
)

// ProcessDue queues the pending notifications that came due and moves failed
// ones whose backoff elapsed back to pending. Rows the queue turns away stay
// pending for the next sweep. Notifications left sending since StaleBefore
// are failed so the retry budget picks them up.
func (uc *implUseCase) ProcessDue(ctx context.Context, now time.Time) (notification.ProcessDueOutput, error) {
	var out notification.ProcessDueOutput
	opts := repository.ListDueOptions{
		Now:         now,
		StaleBefore: now.Add(-uc.cfg.StaleAfter),
		Limit:       uc.cfg.BatchSize,
	}

	due, err := uc.repo.ListDue(ctx, opts)
	if err != nil {
		uc.l.Errorf(ctx, "internal.notification.usecase.ProcessDue.ListDue: %v", err)
		return out, err
	}
	for _, n := range due {
		if uc.enqueue(ctx, n.ID) {
			out.Scheduled++
		} else {
			out.Dropped++
		}
	}

	failed, err := uc.repo.ListRetryable(ctx, opts)
	if err != nil {
		uc.l.Errorf(ctx, "internal.notification.usecase.ProcessDue.ListRetryable: %v", err)
		return out, err
	}
	for _, n := range failed {
		next, err := notification.Retry(n)
		if err != nil {
			continue
		}
		updated, err := uc.save(ctx, n, next)
		if err != nil {
			uc.l.Warnf(ctx, "internal.notification.usecase.ProcessDue.Update: id=%s: %v", n.ID, err)
			continue
		}
		if uc.enqueue(ctx, updated.ID) {
			out.Retried++
		} else {
			out.Dropped++
		}
	}

	stuck, err := uc.repo.ListStuck(ctx, opts)
	if err != nil {
		uc.l.Errorf(ctx, "internal.notification.usecase.ProcessDue.ListStuck: %v", err)
		return out, err
	}
	for _, n := range stuck {
		if _, err := uc.save(ctx, n, notification.MarkFailed(n, notification.ErrDispatchInterrupted)); err != nil {
			uc.l.Warnf(ctx, "internal.notification.usecase.ProcessDue.Update: id=%s: %v", n.ID, err)
			continue
		}
		out.Recovered++
	}

	if out.Scheduled+out.Retried+out.Dropped+out.Recovered > 0 {
		uc.l.Infof(ctx, "internal.notification.usecase.ProcessDue: scheduled=%d retried=%d dropped=%d recovered=%d",
			out.Scheduled, out.Retried, out.Dropped, out.Recovered)
	}
	return out, nil
}
