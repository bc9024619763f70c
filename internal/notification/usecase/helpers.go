package usecase

import (
	"context"
	"errors"
	"strings"

	"sla-srv/internal/model"
	"sla-srv/internal/notification"
	"sla-srv/internal/notification/repository"
)

func (uc *implUseCase) detail(ctx context.Context, id string, tenant model.TenantFilter) (model.Notification, error) {
	n, err := uc.repo.Detail(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Notification{}, notification.ErrNotificationNotFound
		}
		uc.l.Errorf(ctx, "internal.notification.usecase.detail.Detail: %v", err)
		return model.Notification{}, err
	}
	if !tenant.Allows(n.CompanyID) {
		return model.Notification{}, notification.ErrNotificationNotFound
	}
	return n, nil
}

// save writes next over current with a compare-and-set on status and retry
// count.
func (uc *implUseCase) save(ctx context.Context, current, next model.Notification) (model.Notification, error) {
	updated, err := uc.repo.Update(ctx, repository.UpdateOptions{
		Notification:   next,
		PrevStatus:     current.Status,
		PrevRetryCount: current.RetryCount,
	})
	if err != nil {
		if errors.Is(err, repository.ErrStale) {
			return model.Notification{}, notification.ErrGuardViolation
		}
		return model.Notification{}, err
	}
	return updated, nil
}

func (uc *implUseCase) enqueue(ctx context.Context, id string) bool {
	if uc.queue == nil {
		return false
	}
	if !uc.queue.Enqueue(id) {
		uc.l.Warnf(ctx, "internal.notification.usecase.enqueue: queue full, %s left for the due sweep", id)
		return false
	}
	return true
}

func validateCreate(ip notification.CreateInput) error {
	if !ip.Recipient.IsValid() || !ip.Channel.IsValid() {
		return notification.ErrInvalidInput
	}
	if strings.TrimSpace(ip.Title) == "" || strings.TrimSpace(ip.Type) == "" {
		return notification.ErrInvalidInput
	}
	return nil
}
