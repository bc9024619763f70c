package escalation

import (
	"context"
	"time"

	"sla-srv/internal/model"
)

//go:generate mockery --name UseCase
type UseCase interface {
	// Scan evaluates every open feedback at now.
	Scan(ctx context.Context, now time.Time) (ScanResult, error)
	// Evaluate creates the escalation levels whose deadlines passed for fb.
	Evaluate(ctx context.Context, fb model.Feedback, now time.Time) (EvaluateOutput, error)
	// Trigger escalates fb for an external reason, at least to level 1.
	Trigger(ctx context.Context, ip TriggerInput) (EvaluateOutput, error)
	Resolve(ctx context.Context, sc model.Scope, ip ResolveInput) (model.Escalation, error)
	List(ctx context.Context, sc model.Scope, ip ListInput) (ListOutput, error)
	Stats(ctx context.Context, sc model.Scope, ip StatsInput) (Stats, error)
	// Recheck evaluates one feedback, or scans everything when FeedbackID is empty.
	Recheck(ctx context.Context, ip RecheckInput) (RecheckOutput, error)
}

// Locker serializes check-then-create per feedback.
type Locker interface {
	Acquire(ctx context.Context, key string) (func(), error)
}
