package repository

import (
	"context"

	"sla-srv/internal/model"
	"sla-srv/pkg/paginator"
)

//go:generate mockery --name Repository
type Repository interface {
	// ListByFeedback returns every escalation of a feedback, resolved or not.
	ListByFeedback(ctx context.Context, feedbackID string) ([]model.Escalation, error)
	// CreateIfAbsent inserts opts.Escalation unless an unresolved row of the
	// same feedback and level exists. created is false when nothing was inserted.
	CreateIfAbsent(ctx context.Context, opts CreateOptions) (esc model.Escalation, created bool, err error)
	RecordNotified(ctx context.Context, opts RecordNotifiedOptions) error
	Resolve(ctx context.Context, opts ResolveOptions) (model.Escalation, error)
	Detail(ctx context.Context, id string) (model.Escalation, error)
	Get(ctx context.Context, opts GetOptions) ([]model.Escalation, paginator.Paginator, error)
	Count(ctx context.Context, opts CountOptions) (Counts, error)
}
