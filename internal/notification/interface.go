package notification

import (
	"context"
	"time"

	"sla-srv/internal/model"
)

//go:generate mockery --name UseCase
type UseCase interface {
	// Create stores a pending notification and queues it when it is due.
	Create(ctx context.Context, ip CreateInput) (model.Notification, error)
	// Dispatch sends one pending, due notification through its channel.
	Dispatch(ctx context.Context, id string, now time.Time) (model.Notification, error)
	Retry(ctx context.Context, sc model.Scope, ip RetryInput) (model.Notification, error)
	Cancel(ctx context.Context, sc model.Scope, ip CancelInput) (model.Notification, error)
	MarkAsRead(ctx context.Context, sc model.Scope, ip MarkAsReadInput) (model.Notification, error)
	MarkDelivered(ctx context.Context, ip MarkDeliveredInput) (model.Notification, error)
	List(ctx context.Context, sc model.Scope, ip ListInput) (ListOutput, error)
	// ProcessDue queues due scheduled notifications and failed ones whose
	// retry backoff elapsed.
	ProcessDue(ctx context.Context, now time.Time) (ProcessDueOutput, error)
}

// Sender delivers a rendered message over one channel.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Queue hands notification ids to the dispatch workers. Enqueue never
// blocks; false means the queue is full and the cron picks the row up later.
type Queue interface {
	Enqueue(id string) bool
}
