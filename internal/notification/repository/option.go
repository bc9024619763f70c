package repository

import (
	"time"

	"sla-srv/internal/model"
	"sla-srv/pkg/paginator"
)

type Filter struct {
	CompanyIDs []string
	Recipient  *model.Recipient
	Channel    model.Channel
	UnreadOnly bool
}

type CreateOptions struct {
	Notification model.Notification
}

type GetOptions struct {
	Filter        Filter
	PaginateQuery paginator.PaginateQuery
}

type UpdateOptions struct {
	Notification   model.Notification
	PrevStatus     model.NotificationStatus
	PrevRetryCount int
}

type ListDueOptions struct {
	Now time.Time
	// StaleBefore also selects unscheduled pending rows created before it,
	// the ones a full dispatch queue turned away.
	StaleBefore time.Time
	Limit       int
}

type TemplateOptions struct {
	CompanyID string
	Type      string
	Channel   model.Channel
}
