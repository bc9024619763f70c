package usecase

import (
	"context"
	"errors"

	"sla-srv/internal/alert"
	"sla-srv/internal/alert/repository"
	"sla-srv/internal/escalation"
	"sla-srv/internal/model"
	"sla-srv/pkg/paginator"
)

func (uc *implUseCase) List(ctx context.Context, sc model.Scope, ip alert.ListInput) (alert.ListOutput, error) {
	alerts, pag, err := uc.repo.Get(ctx, repository.GetOptions{
		Filter:        toRepoFilter(ip.Filter),
		PaginateQuery: ip.PaginateQuery,
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.alert.usecase.List.Get: %v", err)
		return alert.ListOutput{}, err
	}

	return alert.ListOutput{
		Alerts:    alerts,
		Paginator: pag,
	}, nil
}

func (uc *implUseCase) Detail(ctx context.Context, sc model.Scope, ip alert.DetailInput) (model.Alert, error) {
	return uc.detail(ctx, ip.ID, ip.Tenant)
}

func (uc *implUseCase) detail(ctx context.Context, id string, tenant model.TenantFilter) (model.Alert, error) {
	a, err := uc.repo.Detail(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Alert{}, alert.ErrAlertNotFound
		}
		uc.l.Errorf(ctx, "internal.alert.usecase.detail.Detail: %v", err)
		return model.Alert{}, err
	}
	if !tenant.Allows(a.CompanyID) {
		return model.Alert{}, alert.ErrAlertNotFound
	}
	return a, nil
}

func (uc *implUseCase) Stats(ctx context.Context, sc model.Scope, ip alert.StatsInput) (alert.Stats, error) {
	counts, err := uc.repo.Count(ctx, repository.CountOptions{
		Filter: repository.Filter{CompanyIDs: ip.Tenant.CompanyIDs},
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.alert.usecase.Stats.Count: %v", err)
		return alert.Stats{}, err
	}

	stats := alert.Stats{
		Total:      counts.Total,
		ByStatus:   make(map[model.AlertStatus]int64, len(model.AlertStatuses)),
		BySeverity: make(map[model.Severity]int64, len(model.Severities)),
	}
	for _, s := range model.AlertStatuses {
		stats.ByStatus[s] = counts.ByStatus[s]
	}
	for _, s := range model.Severities {
		stats.BySeverity[s] = counts.BySeverity[s]
	}
	return stats, nil
}

// Dashboard combines the stats with the newest open critical alerts and the
// mean time to acknowledge.
func (uc *implUseCase) Dashboard(ctx context.Context, sc model.Scope, ip alert.DashboardInput) (alert.Dashboard, error) {
	stats, err := uc.Stats(ctx, sc, alert.StatsInput{Tenant: ip.Tenant})
	if err != nil {
		return alert.Dashboard{}, err
	}

	limit := ip.RecentLimit
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	recent, _, err := uc.repo.Get(ctx, repository.GetOptions{
		Filter: repository.Filter{
			CompanyIDs: ip.Tenant.CompanyIDs,
			Severities: []model.Severity{model.SeverityCritical, model.SeverityCatastrophic},
			Statuses:   []model.AlertStatus{model.AlertStatusNew, model.AlertStatusAcknowledged, model.AlertStatusInProgress},
		},
		PaginateQuery: paginator.PaginateQuery{Page: 1, Limit: int64(limit)},
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.alert.usecase.Dashboard.Get: %v", err)
		return alert.Dashboard{}, err
	}

	avg, err := uc.repo.AvgMinutesToAcknowledge(ctx, repository.CountOptions{
		Filter: repository.Filter{CompanyIDs: ip.Tenant.CompanyIDs},
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.alert.usecase.Dashboard.AvgMinutesToAcknowledge: %v", err)
		return alert.Dashboard{}, err
	}

	return alert.Dashboard{
		Stats:                   stats,
		RecentCritical:          recent,
		AvgMinutesToAcknowledge: avg,
	}, nil
}

func (uc *implUseCase) Acknowledge(ctx context.Context, sc model.Scope, ip alert.TransitionInput) (model.Alert, error) {
	return uc.transition(ctx, sc, alert.ActionAcknowledge, ip)
}

func (uc *implUseCase) StartProgress(ctx context.Context, sc model.Scope, ip alert.TransitionInput) (model.Alert, error) {
	return uc.transition(ctx, sc, alert.ActionStartProgress, ip)
}

func (uc *implUseCase) Resolve(ctx context.Context, sc model.Scope, ip alert.TransitionInput) (model.Alert, error) {
	return uc.transition(ctx, sc, alert.ActionResolve, ip)
}

func (uc *implUseCase) Dismiss(ctx context.Context, sc model.Scope, ip alert.TransitionInput) (model.Alert, error) {
	return uc.transition(ctx, sc, alert.ActionDismiss, ip)
}

// Escalate flags the alert and opens a manual escalation of its feedback.
func (uc *implUseCase) Escalate(ctx context.Context, sc model.Scope, ip alert.TransitionInput) (model.Alert, error) {
	return uc.transition(ctx, sc, alert.ActionEscalate, ip)
}

// BulkUpdate applies action to every alert of ip.IDs. Alerts that are missing
// or whose guard fails are skipped.
func (uc *implUseCase) BulkUpdate(ctx context.Context, sc model.Scope, ip alert.BulkUpdateInput) (alert.BulkUpdateOutput, error) {
	if !ip.Action.IsValid() {
		return alert.BulkUpdateOutput{}, alert.ErrInvalidAction
	}
	if len(ip.IDs) == 0 {
		return alert.BulkUpdateOutput{}, alert.ErrInvalidInput
	}

	var out alert.BulkUpdateOutput
	for _, id := range uniqueIDs(ip.IDs) {
		_, err := uc.transition(ctx, sc, ip.Action, alert.TransitionInput{
			ID:     id,
			Notes:  ip.Notes,
			Tenant: ip.Tenant,
			Now:    ip.Now,
		})
		switch {
		case err == nil:
			out.Updated++
		case errors.Is(err, alert.ErrGuardViolation), errors.Is(err, alert.ErrAlertNotFound):
			out.Skipped++
		default:
			return out, err
		}
	}

	uc.l.Infof(ctx, "internal.alert.usecase.BulkUpdate: action=%s updated=%d skipped=%d", ip.Action, out.Updated, out.Skipped)
	return out, nil
}

func (uc *implUseCase) transition(ctx context.Context, sc model.Scope, action alert.Action, ip alert.TransitionInput) (model.Alert, error) {
	current, err := uc.detail(ctx, ip.ID, ip.Tenant)
	if err != nil {
		return model.Alert{}, err
	}

	next, err := alert.Apply(current, alert.Change{
		Action: action,
		UserID: sc.UserID,
		Notes:  ip.Notes,
		At:     ip.Now,
	})
	if err != nil {
		uc.metrics.AlertTransition(string(action), false)
		return model.Alert{}, err
	}

	updated, err := uc.repo.Update(ctx, repository.UpdateOptions{
		Alert:         next,
		PrevStatus:    current.Status,
		PrevEscalated: current.IsEscalated,
	})
	if err != nil {
		uc.metrics.AlertTransition(string(action), false)
		if errors.Is(err, repository.ErrStale) {
			return model.Alert{}, alert.ErrStaleAlert
		}
		uc.l.Errorf(ctx, "internal.alert.usecase.transition.Update: %v", err)
		return model.Alert{}, err
	}
	uc.metrics.AlertTransition(string(action), true)

	if action == alert.ActionEscalate {
		uc.triggerManual(ctx, updated)
	}
	return updated, nil
}

func (uc *implUseCase) triggerManual(ctx context.Context, a model.Alert) {
	fb, err := uc.feedback.Detail(ctx, a.FeedbackID)
	if err != nil {
		uc.l.Warnf(ctx, "internal.alert.usecase.triggerManual.Detail: feedback=%s: %v", a.FeedbackID, err)
		return
	}

	at := a.UpdatedAt
	if a.EscalatedAt != nil {
		at = *a.EscalatedAt
	}
	if _, err := uc.escalations.Trigger(ctx, escalation.TriggerInput{
		Feedback: fb,
		Reason:   model.TriggerManual,
		Now:      at,
	}); err != nil {
		uc.l.Warnf(ctx, "internal.alert.usecase.triggerManual.Trigger: feedback=%s: %v", fb.ID, err)
	}
}

func toRepoFilter(f alert.Filter) repository.Filter {
	return repository.Filter{
		CompanyIDs: f.Tenant.CompanyIDs,
		FeedbackID: f.FeedbackID,
		Statuses:   f.Statuses,
		Severities: f.Severities,
	}
}
