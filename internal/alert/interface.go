package alert

import (
	"context"

	"sla-srv/internal/model"
)

//go:generate mockery --name UseCase
type UseCase interface {
	Detect(ctx context.Context, ip DetectInput) (DetectOutput, error)

	List(ctx context.Context, sc model.Scope, ip ListInput) (ListOutput, error)
	Detail(ctx context.Context, sc model.Scope, ip DetailInput) (model.Alert, error)
	Stats(ctx context.Context, sc model.Scope, ip StatsInput) (Stats, error)
	Dashboard(ctx context.Context, sc model.Scope, ip DashboardInput) (Dashboard, error)

	Acknowledge(ctx context.Context, sc model.Scope, ip TransitionInput) (model.Alert, error)
	StartProgress(ctx context.Context, sc model.Scope, ip TransitionInput) (model.Alert, error)
	Resolve(ctx context.Context, sc model.Scope, ip TransitionInput) (model.Alert, error)
	Dismiss(ctx context.Context, sc model.Scope, ip TransitionInput) (model.Alert, error)
	Escalate(ctx context.Context, sc model.Scope, ip TransitionInput) (model.Alert, error)
	BulkUpdate(ctx context.Context, sc model.Scope, ip BulkUpdateInput) (BulkUpdateOutput, error)
}
