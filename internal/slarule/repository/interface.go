package repository

import (
	"context"

	"sla-srv/internal/model"
	"sla-srv/pkg/paginator"
)

//go:generate mockery --name Repository
type Repository interface {
	Get(ctx context.Context, opts GetOptions) ([]model.SlaRule, paginator.Paginator, error)
	List(ctx context.Context, opts ListOptions) ([]model.SlaRule, error)
	Detail(ctx context.Context, id string) (model.SlaRule, error)
	Create(ctx context.Context, opts CreateOptions) (model.SlaRule, error)
	Update(ctx context.Context, opts UpdateOptions) (model.SlaRule, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, opts CountOptions) (Counts, error)
}
