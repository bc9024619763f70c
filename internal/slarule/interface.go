package slarule

import (
	"context"

	"sla-srv/internal/model"
)

//go:generate mockery --name UseCase
type UseCase interface {
	List(ctx context.Context, sc model.Scope, ip ListInput) (ListOutput, error)
	Detail(ctx context.Context, sc model.Scope, ip DetailInput) (model.SlaRule, error)
	Create(ctx context.Context, sc model.Scope, ip CreateInput) (model.SlaRule, error)
	Update(ctx context.Context, sc model.Scope, ip UpdateInput) (model.SlaRule, error)
	Delete(ctx context.Context, sc model.Scope, ip DeleteInput) error
	Stats(ctx context.Context, sc model.Scope, ip StatsInput) (RuleStats, error)
	// Match returns the applicable rule of fb or ErrNoApplicableRule.
	Match(ctx context.Context, fb model.Feedback) (MatchOutput, error)
}
