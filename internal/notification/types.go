package notification

import (
	"time"

	"sla-srv/internal/model"
	"sla-srv/pkg/paginator"
)

const (
	TypeSlaEscalation = "sla_escalation"
	TypeFeedbackAlert = "feedback_alert"
)

// Config tunes the due/retry sweep.
type Config struct {
	BatchSize int
	// StaleAfter is how long an unscheduled pending notification may wait
	// before the sweep queues it again, and how long a claimed one may stay
	// sending before the sweep fails it.
	StaleAfter time.Duration
}

type CreateInput struct {
	CompanyID   string
	Recipient   model.Recipient
	Type        string
	Title       string
	Message     string
	Channel     model.Channel
	Data        map[string]any
	ScheduledAt *time.Time
	Now         time.Time
}

type RetryInput struct {
	ID     string
	Tenant model.TenantFilter
}

type CancelInput struct {
	ID     string
	Tenant model.TenantFilter
	Now    time.Time
}

type MarkAsReadInput struct {
	ID  string
	Now time.Time
}

type MarkDeliveredInput struct {
	ID  string
	Now time.Time
}

type ListInput struct {
	Recipient     model.Recipient
	UnreadOnly    bool
	Channel       model.Channel
	PaginateQuery paginator.PaginateQuery
}

type ListOutput struct {
	Notifications []model.Notification
	Paginator     paginator.Paginator
	Unread        int64
}

type ProcessDueOutput struct {
	Scheduled int
	Retried   int
	Dropped   int
	// Recovered counts notifications failed after their dispatcher stalled.
	Recovered int
}

// Message is what a Sender delivers.
type Message struct {
	NotificationID string
	CompanyID      string
	Recipient      model.Recipient
	Channel        model.Channel
	Address        string
	Subject        string
	Title          string
	Body           string
	Data           map[string]any
}

// Rendered is the output of template rendering.
type Rendered struct {
	Subject string
	Title   string
	Message string
}
