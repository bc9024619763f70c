package repository

import (
	"context"

	"sla-srv/internal/model"
	"sla-srv/pkg/paginator"
)

//go:generate mockery --name Repository
type Repository interface {
	Create(ctx context.Context, opts CreateOptions) (model.Notification, error)
	Detail(ctx context.Context, id string) (model.Notification, error)
	Get(ctx context.Context, opts GetOptions) ([]model.Notification, paginator.Paginator, error)
	CountUnread(ctx context.Context, f Filter) (int64, error)
	// Update writes opts.Notification only if the stored row still has
	// opts.PrevStatus and opts.PrevRetryCount.
	Update(ctx context.Context, opts UpdateOptions) (model.Notification, error)
	// ListDue returns pending notifications whose schedule has come and
	// unscheduled ones left pending since opts.StaleBefore.
	ListDue(ctx context.Context, opts ListDueOptions) ([]model.Notification, error)
	// ListRetryable returns failed notifications under the retry budget whose
	// backoff of 2^retry_count minutes since the failure elapsed.
	ListRetryable(ctx context.Context, opts ListDueOptions) ([]model.Notification, error)
	// ListStuck returns notifications claimed for sending and not updated
	// since opts.StaleBefore.
	ListStuck(ctx context.Context, opts ListDueOptions) ([]model.Notification, error)
}

//go:generate mockery --name TemplateRepository
type TemplateRepository interface {
	// ListCandidates returns the active templates of one (type, channel)
	// pair owned by the company or the global tenant.
	ListCandidates(ctx context.Context, opts TemplateOptions) ([]model.NotificationTemplate, error)
}

//go:generate mockery --name ContactRepository
type ContactRepository interface {
	Contact(ctx context.Context, r model.Recipient) (model.Contact, error)
}
