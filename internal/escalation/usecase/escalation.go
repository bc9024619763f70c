package usecase

import (
	"context"
	"errors"

	"sla-srv/internal/escalation"
	"sla-srv/internal/escalation/repository"
	"sla-srv/internal/model"
)

func (uc *implUseCase) List(ctx context.Context, sc model.Scope, ip escalation.ListInput) (escalation.ListOutput, error) {
	escs, pag, err := uc.repo.Get(ctx, repository.GetOptions{
		Filter:        toRepoFilter(ip.Filter),
		PaginateQuery: ip.PaginateQuery,
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.escalation.usecase.List.Get: %v", err)
		return escalation.ListOutput{}, err
	}

	return escalation.ListOutput{
		Escalations: escs,
		Paginator:   pag,
	}, nil
}

// Resolve closes one unresolved escalation. Higher levels stay reachable.
func (uc *implUseCase) Resolve(ctx context.Context, sc model.Scope, ip escalation.ResolveInput) (model.Escalation, error) {
	current, err := uc.repo.Detail(ctx, ip.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Escalation{}, escalation.ErrEscalationNotFound
		}
		uc.l.Errorf(ctx, "internal.escalation.usecase.Resolve.Detail: %v", err)
		return model.Escalation{}, err
	}
	if !ip.Tenant.Allows(current.CompanyID) {
		return model.Escalation{}, escalation.ErrEscalationNotFound
	}
	if current.IsResolved {
		return model.Escalation{}, escalation.ErrAlreadyResolved
	}

	esc, err := uc.repo.Resolve(ctx, repository.ResolveOptions{
		ID:         current.ID,
		ResolvedBy: sc.UserID,
		Notes:      ip.Notes,
		At:         ip.Now,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotUnresolved) {
			return model.Escalation{}, escalation.ErrAlreadyResolved
		}
		uc.l.Errorf(ctx, "internal.escalation.usecase.Resolve.Resolve: %v", err)
		return model.Escalation{}, err
	}

	uc.l.Infof(ctx, "internal.escalation.usecase.Resolve: escalation %s resolved by %s", esc.ID, sc.UserID)
	return esc, nil
}

func (uc *implUseCase) Stats(ctx context.Context, sc model.Scope, ip escalation.StatsInput) (escalation.Stats, error) {
	counts, err := uc.repo.Count(ctx, repository.CountOptions{
		Filter: repository.Filter{CompanyIDs: ip.Tenant.CompanyIDs},
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.escalation.usecase.Stats.Count: %v", err)
		return escalation.Stats{}, err
	}

	byLevel := make(map[int]int64, model.MaxEscalationLevel)
	for lvl := model.EscalationLevel1; lvl <= model.MaxEscalationLevel; lvl++ {
		byLevel[lvl] = counts.ByLevel[lvl]
	}
	return escalation.Stats{
		ByLevel:  byLevel,
		Open:     counts.Open,
		Resolved: counts.Resolved,
	}, nil
}

func toRepoFilter(f escalation.Filter) repository.Filter {
	return repository.Filter{
		CompanyIDs: f.Tenant.CompanyIDs,
		FeedbackID: f.FeedbackID,
		Level:      f.Level,
		IsResolved: f.IsResolved,
	}
}
