package usecase

import (
	"context"
	"errors"

	"sla-srv/internal/model"
	"sla-srv/internal/slarule"
	"sla-srv/internal/slarule/repository"
)

func (uc *usecase) List(ctx context.Context, sc model.Scope, ip slarule.ListInput) (slarule.ListOutput, error) {
	rules, pag, err := uc.repo.Get(ctx, repository.GetOptions{
		Filter:        toRepoFilter(ip.Filter),
		PaginateQuery: ip.PaginateQuery,
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.slarule.usecase.List.Get: %v", err)
		return slarule.ListOutput{}, err
	}

	return slarule.ListOutput{
		Rules:     rules,
		Paginator: pag,
	}, nil
}

// Detail returns a rule visible to the tenant filter. Global rules are
// visible to every tenant.
func (uc *usecase) Detail(ctx context.Context, sc model.Scope, ip slarule.DetailInput) (model.SlaRule, error) {
	rule, err := uc.detail(ctx, ip.ID)
	if err != nil {
		return model.SlaRule{}, err
	}
	if !ip.Tenant.Allows(rule.CompanyID) && !model.IsGlobalCompany(rule.CompanyID) {
		return model.SlaRule{}, slarule.ErrRuleNotFound
	}
	return rule, nil
}

func (uc *usecase) Create(ctx context.Context, sc model.Scope, ip slarule.CreateInput) (model.SlaRule, error) {
	if err := ip.Rule.Validate(); err != nil {
		return model.SlaRule{}, err
	}
	if !ip.Tenant.Allows(ip.Rule.CompanyID) {
		return model.SlaRule{}, slarule.ErrCompanyNotAllowed
	}

	rule, err := uc.repo.Create(ctx, repository.CreateOptions{Rule: ruleFromInput(ip.Rule)})
	if err != nil {
		uc.l.Errorf(ctx, "internal.slarule.usecase.Create.Create: %v", err)
		return model.SlaRule{}, err
	}

	uc.l.Infof(ctx, "internal.slarule.usecase.Create: rule %s created for company %s by %s", rule.ID, rule.CompanyID, sc.UserID)
	return rule, nil
}

func (uc *usecase) Update(ctx context.Context, sc model.Scope, ip slarule.UpdateInput) (model.SlaRule, error) {
	if err := ip.Rule.Validate(); err != nil {
		return model.SlaRule{}, err
	}

	current, err := uc.writable(ctx, ip.ID, ip.Tenant)
	if err != nil {
		return model.SlaRule{}, err
	}
	if !ip.Tenant.Allows(ip.Rule.CompanyID) {
		return model.SlaRule{}, slarule.ErrCompanyNotAllowed
	}

	rule := ruleFromInput(ip.Rule)
	rule.ID = current.ID
	rule.CreatedAt = current.CreatedAt

	updated, err := uc.repo.Update(ctx, repository.UpdateOptions{Rule: rule})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.SlaRule{}, slarule.ErrRuleNotFound
		}
		uc.l.Errorf(ctx, "internal.slarule.usecase.Update.Update: %v", err)
		return model.SlaRule{}, err
	}

	return updated, nil
}

func (uc *usecase) Delete(ctx context.Context, sc model.Scope, ip slarule.DeleteInput) error {
	if _, err := uc.writable(ctx, ip.ID, ip.Tenant); err != nil {
		return err
	}

	if err := uc.repo.Delete(ctx, ip.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return slarule.ErrRuleNotFound
		}
		uc.l.Errorf(ctx, "internal.slarule.usecase.Delete.Delete: %v", err)
		return err
	}

	uc.l.Infof(ctx, "internal.slarule.usecase.Delete: rule %s deleted by %s", ip.ID, sc.UserID)
	return nil
}

func (uc *usecase) Stats(ctx context.Context, sc model.Scope, ip slarule.StatsInput) (slarule.RuleStats, error) {
	counts, err := uc.repo.Count(ctx, repository.CountOptions{
		Filter: repository.Filter{CompanyIDs: ip.Tenant.CompanyIDs},
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.slarule.usecase.Stats.Count: %v", err)
		return slarule.RuleStats{}, err
	}

	return slarule.RuleStats{Total: counts.Total, Active: counts.Active}, nil
}

func (uc *usecase) detail(ctx context.Context, id string) (model.SlaRule, error) {
	rule, err := uc.repo.Detail(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.SlaRule{}, slarule.ErrRuleNotFound
		}
		uc.l.Errorf(ctx, "internal.slarule.usecase.detail.Detail: %v", err)
		return model.SlaRule{}, err
	}
	return rule, nil
}

// writable loads a rule the tenant filter may change.
func (uc *usecase) writable(ctx context.Context, id string, tenant model.TenantFilter) (model.SlaRule, error) {
	rule, err := uc.detail(ctx, id)
	if err != nil {
		return model.SlaRule{}, err
	}
	if !tenant.Allows(rule.CompanyID) {
		if model.IsGlobalCompany(rule.CompanyID) {
			return model.SlaRule{}, slarule.ErrGlobalRuleReadOnly
		}
		return model.SlaRule{}, slarule.ErrRuleNotFound
	}
	return rule, nil
}

func toRepoFilter(f slarule.Filter) repository.Filter {
	return repository.Filter{
		CompanyIDs:     f.Tenant.CompanyIDs,
		FeedbackTypeID: f.FeedbackTypeID,
		IsActive:       f.IsActive,
	}
}

func ruleFromInput(ip slarule.RuleInput) model.SlaRule {
	return model.SlaRule{
		CompanyID:               ip.CompanyID,
		Name:                    ip.Name,
		Description:             ip.Description,
		FeedbackTypeID:          ip.FeedbackTypeID,
		Conditions:              ip.Conditions,
		PriorityLevel:           ip.PriorityLevel,
		SortOrder:               ip.SortOrder,
		FirstResponseMinutes:    ip.FirstResponseMinutes,
		ResolutionMinutes:       ip.ResolutionMinutes,
		EscalationLevel1Minutes: ip.EscalationLevel1Minutes,
		EscalationLevel2Minutes: ip.EscalationLevel2Minutes,
		EscalationLevel3Minutes: ip.EscalationLevel3Minutes,
		Level1Recipients:        ip.Level1Recipients,
		Level2Recipients:        ip.Level2Recipients,
		Level3Recipients:        ip.Level3Recipients,
		NotificationChannels:    ip.NotificationChannels,
		IsActive:                ip.IsActive,
	}
}
