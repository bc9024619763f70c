package repository

import (
	"context"

	"sla-srv/internal/model"
)

// Repository reads feedbacks owned by the feedback service. It never writes.
//
//go:generate mockery --name Repository
type Repository interface {
	Detail(ctx context.Context, id string) (model.Feedback, error)
	ListOpen(ctx context.Context, opts ListOpenOptions) ([]model.Feedback, error)
}
