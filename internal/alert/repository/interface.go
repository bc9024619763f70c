package repository

import (
	"context"

	"sla-srv/internal/model"
	"sla-srv/pkg/paginator"
)

//go:generate mockery --name Repository
type Repository interface {
	// Create inserts the alert unless its feedback already has one, in which
	// case the existing alert is returned with created=false.
	Create(ctx context.Context, opts CreateOptions) (model.Alert, bool, error)
	Detail(ctx context.Context, id string) (model.Alert, error)
	Get(ctx context.Context, opts GetOptions) ([]model.Alert, paginator.Paginator, error)
	// Update writes opts.Alert only if the stored row still matches
	// opts.PrevStatus and opts.PrevEscalated.
	Update(ctx context.Context, opts UpdateOptions) (model.Alert, error)
	Count(ctx context.Context, opts CountOptions) (Counts, error)
	AvgMinutesToAcknowledge(ctx context.Context, opts CountOptions) (float64, error)
}
