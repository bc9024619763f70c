package usecase

import (
	"context"
	"errors"
	"time"

	"sla-srv/internal/model"
	"sla-srv/internal/notification"
	"sla-srv/internal/notification/repository"
)

func (uc *implUseCase) Create(ctx context.Context, ip notification.CreateInput) (model.Notification, error) {
	if err := validateCreate(ip); err != nil {
		return model.Notification{}, err
	}

	n, err := uc.repo.Create(ctx, repository.CreateOptions{Notification: model.Notification{
		CompanyID:   ip.CompanyID,
		Recipient:   ip.Recipient,
		Type:        ip.Type,
		Title:       ip.Title,
		Message:     ip.Message,
		Data:        ip.Data,
		Channel:     ip.Channel,
		Status:      model.NotificationStatusPending,
		ScheduledAt: ip.ScheduledAt,
	}})
	if err != nil {
		uc.l.Errorf(ctx, "internal.notification.usecase.Create.Create: %v", err)
		return model.Notification{}, err
	}
	uc.metrics.NotificationCreated(string(n.Channel))

	if n.IsDue(ip.Now) {
		uc.enqueue(ctx, n.ID)
	}
	return n, nil
}

// Dispatch sends a pending, due notification. The notification is claimed
// as sending before the sender runs, so a concurrent dispatcher losing the
// claim skips it. Send failures are stored on the notification and not
// returned.
func (uc *implUseCase) Dispatch(ctx context.Context, id string, now time.Time) (model.Notification, error) {
	n, err := uc.detail(ctx, id, model.TenantFilter{})
	if err != nil {
		return model.Notification{}, err
	}
	if n.Status != model.NotificationStatusPending || !n.IsDue(now) {
		uc.l.Debugf(ctx, "internal.notification.usecase.Dispatch: skip %s (status=%s)", n.ID, n.Status)
		return n, nil
	}

	claimed, err := notification.Claim(n)
	if err != nil {
		return n, nil
	}
	claimed, err = uc.save(ctx, n, claimed)
	if err != nil {
		if errors.Is(err, notification.ErrGuardViolation) {
			uc.l.Debugf(ctx, "internal.notification.usecase.Dispatch.Claim: %s claimed elsewhere", n.ID)
			return n, nil
		}
		uc.l.Errorf(ctx, "internal.notification.usecase.Dispatch.Claim: %v", err)
		return model.Notification{}, err
	}

	var next model.Notification
	if err := uc.send(ctx, claimed); err != nil {
		uc.l.Warnf(ctx, "internal.notification.usecase.Dispatch.send: id=%s channel=%s: %v", n.ID, n.Channel, err)
		next = notification.MarkFailed(claimed, err)
	} else {
		next = notification.MarkSent(claimed, now)
	}

	updated, err := uc.save(ctx, claimed, next)
	if err != nil {
		if errors.Is(err, notification.ErrGuardViolation) {
			uc.l.Warnf(ctx, "internal.notification.usecase.Dispatch.Update: %s changed during dispatch", n.ID)
			return claimed, nil
		}
		uc.l.Errorf(ctx, "internal.notification.usecase.Dispatch.Update: %v", err)
		return model.Notification{}, err
	}
	return updated, nil
}

func (uc *implUseCase) send(ctx context.Context, n model.Notification) error {
	sender, ok := uc.senders[n.Channel]
	if !ok || sender == nil {
		return notification.ErrNoSender
	}

	address, err := uc.address(ctx, n)
	if err != nil {
		return err
	}

	r := uc.render(ctx, n)
	return sender.Send(ctx, notification.Message{
		NotificationID: n.ID,
		CompanyID:      n.CompanyID,
		Recipient:      n.Recipient,
		Channel:        n.Channel,
		Address:        address,
		Subject:        r.Subject,
		Title:          r.Title,
		Body:           r.Message,
		Data:           n.Data,
	})
}

func (uc *implUseCase) address(ctx context.Context, n model.Notification) (string, error) {
	if n.Channel == model.ChannelInApp {
		return n.Recipient.ID, nil
	}
	if uc.contacts == nil {
		return "", notification.ErrUnknownContact
	}

	c, err := uc.contacts.Contact(ctx, n.Recipient)
	if err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return "", notification.ErrUnknownContact
		}
		return "", err
	}
	addr := c.Address(n.Channel)
	if addr == "" {
		return "", notification.ErrNoAddress
	}
	return addr, nil
}

// render uses the best matching template and falls back to the raw title
// and message.
func (uc *implUseCase) render(ctx context.Context, n model.Notification) notification.Rendered {
	if uc.templates == nil {
		return notification.Raw(n)
	}

	candidates, err := uc.templates.ListCandidates(ctx, repository.TemplateOptions{
		CompanyID: n.CompanyID,
		Type:      n.Type,
		Channel:   n.Channel,
	})
	if err != nil {
		uc.l.Warnf(ctx, "internal.notification.usecase.render.ListCandidates: %v", err)
		return notification.Raw(n)
	}

	t, ok := notification.SelectTemplate(candidates, n.CompanyID)
	if !ok {
		uc.l.Debugf(ctx, "internal.notification.usecase.render: no template for %s/%s", n.Type, n.Channel)
		return notification.Raw(n)
	}
	return notification.Render(t, notification.Vars(n))
}

func (uc *implUseCase) Retry(ctx context.Context, sc model.Scope, ip notification.RetryInput) (model.Notification, error) {
	n, err := uc.detail(ctx, ip.ID, ip.Tenant)
	if err != nil {
		return model.Notification{}, err
	}

	next, err := notification.Retry(n)
	if err != nil {
		return model.Notification{}, err
	}
	updated, err := uc.save(ctx, n, next)
	if err != nil {
		if !errors.Is(err, notification.ErrGuardViolation) {
			uc.l.Errorf(ctx, "internal.notification.usecase.Retry.Update: %v", err)
		}
		return model.Notification{}, err
	}

	uc.enqueue(ctx, updated.ID)
	return updated, nil
}

func (uc *implUseCase) Cancel(ctx context.Context, sc model.Scope, ip notification.CancelInput) (model.Notification, error) {
	n, err := uc.detail(ctx, ip.ID, ip.Tenant)
	if err != nil {
		return model.Notification{}, err
	}

	next, err := notification.Cancel(n, ip.Now)
	if err != nil {
		return model.Notification{}, err
	}
	updated, err := uc.save(ctx, n, next)
	if err != nil {
		if !errors.Is(err, notification.ErrGuardViolation) {
			uc.l.Errorf(ctx, "internal.notification.usecase.Cancel.Update: %v", err)
		}
		return model.Notification{}, err
	}
	return updated, nil
}

// MarkAsRead marks an in-app notification of the calling user as read.
// Reading twice keeps the first read_at.
func (uc *implUseCase) MarkAsRead(ctx context.Context, sc model.Scope, ip notification.MarkAsReadInput) (model.Notification, error) {
	n, err := uc.detail(ctx, ip.ID, model.TenantFilter{})
	if err != nil {
		return model.Notification{}, err
	}

	next, changed, err := notification.MarkRead(n, sc.UserID, ip.Now)
	if err != nil {
		if errors.Is(err, notification.ErrNotRecipient) {
			return model.Notification{}, notification.ErrNotificationNotFound
		}
		return model.Notification{}, err
	}
	if !changed {
		return n, nil
	}

	updated, err := uc.save(ctx, n, next)
	if err != nil {
		if !errors.Is(err, notification.ErrGuardViolation) {
			uc.l.Errorf(ctx, "internal.notification.usecase.MarkAsRead.Update: %v", err)
		}
		return model.Notification{}, err
	}
	return updated, nil
}

func (uc *implUseCase) MarkDelivered(ctx context.Context, ip notification.MarkDeliveredInput) (model.Notification, error) {
	n, err := uc.detail(ctx, ip.ID, model.TenantFilter{})
	if err != nil {
		return model.Notification{}, err
	}

	next, err := notification.MarkDelivered(n, ip.Now)
	if err != nil {
		return model.Notification{}, err
	}
	updated, err := uc.save(ctx, n, next)
	if err != nil {
		if !errors.Is(err, notification.ErrGuardViolation) {
			uc.l.Errorf(ctx, "internal.notification.usecase.MarkDelivered.Update: %v", err)
		}
		return model.Notification{}, err
	}
	return updated, nil
}

func (uc *implUseCase) List(ctx context.Context, sc model.Scope, ip notification.ListInput) (notification.ListOutput, error) {
	r := ip.Recipient
	if !r.IsValid() {
		r = model.UserRecipient(sc.UserID)
	}
	if !r.IsValid() {
		return notification.ListOutput{}, notification.ErrInvalidInput
	}

	items, pag, err := uc.repo.Get(ctx, repository.GetOptions{
		Filter: repository.Filter{
			Recipient:  &r,
			Channel:    ip.Channel,
			UnreadOnly: ip.UnreadOnly,
		},
		PaginateQuery: ip.PaginateQuery,
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.notification.usecase.List.Get: %v", err)
		return notification.ListOutput{}, err
	}

	unread, err := uc.repo.CountUnread(ctx, repository.Filter{
		Recipient: &r,
		Channel:   model.ChannelInApp,
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.notification.usecase.List.CountUnread: %v", err)
		return notification.ListOutput{}, err
	}

	return notification.ListOutput{
		Notifications: items,
		Paginator:     pag,
		Unread:        unread,
	}, nil
}
