package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"sla-srv/internal/escalation"
	"sla-srv/internal/feedback"
	fbRepo "sla-srv/internal/feedback/repository"

	"golang.org/x/sync/errgroup"
)

// Scan pages through open feedbacks by keyset and evaluates each page with a
// bounded number of workers. A failing feedback is counted and logged.
func (uc *implUseCase) Scan(ctx context.Context, now time.Time) (escalation.ScanResult, error) {
	start := time.Now()
	var evaluated, created, failed atomic.Int64
	result := func() escalation.ScanResult {
		return escalation.ScanResult{
			Evaluated: int(evaluated.Load()),
			Created:   int(created.Load()),
			Failed:    int(failed.Load()),
		}
	}

	var after *fbRepo.Cursor
	for {
		page, err := uc.feedback.ListOpen(ctx, fbRepo.ListOpenOptions{After: after, Limit: uc.cfg.PageSize})
		if err != nil {
			uc.l.Errorf(ctx, "internal.escalation.usecase.Scan.ListOpen: %v", err)
			return result(), err
		}
		if len(page) == 0 {
			break
		}

		var g errgroup.Group
		g.SetLimit(uc.cfg.Workers)
		for _, fb := range page {
			g.Go(func() error {
				out, err := uc.Evaluate(ctx, fb, now)
				evaluated.Add(1)
				created.Add(int64(len(out.Created)))
				if err != nil {
					failed.Add(1)
					uc.l.Warnf(ctx, "internal.escalation.usecase.Scan.Evaluate: feedback %s: %v", fb.ID, err)
				}
				return nil
			})
		}
		_ = g.Wait()

		if err := ctx.Err(); err != nil {
			return result(), err
		}
		if len(page) < uc.cfg.PageSize {
			break
		}
		last := page[len(page)-1]
		after = &fbRepo.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}
	}

	res := result()
	uc.metrics.ObserveScan(time.Since(start), res.Evaluated, res.Failed)
	uc.l.Infof(ctx, "internal.escalation.usecase.Scan: evaluated=%d created=%d failed=%d", res.Evaluated, res.Created, res.Failed)
	return res, nil
}

func (uc *implUseCase) Recheck(ctx context.Context, ip escalation.RecheckInput) (escalation.RecheckOutput, error) {
	if ip.FeedbackID == "" {
		res, err := uc.Scan(ctx, ip.Now)
		if err != nil {
			return escalation.RecheckOutput{}, err
		}
		return escalation.RecheckOutput{Scan: &res}, nil
	}

	fb, err := uc.feedback.Detail(ctx, ip.FeedbackID)
	if err != nil {
		if errors.Is(err, fbRepo.ErrNotFound) {
			return escalation.RecheckOutput{}, feedback.ErrFeedbackNotFound
		}
		uc.l.Errorf(ctx, "internal.escalation.usecase.Recheck.Detail: %v", err)
		return escalation.RecheckOutput{}, err
	}

	out, err := uc.Evaluate(ctx, fb, ip.Now)
	if err != nil {
		return escalation.RecheckOutput{}, err
	}
	return escalation.RecheckOutput{Evaluate: &out}, nil
}
