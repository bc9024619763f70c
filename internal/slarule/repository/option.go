package repository

import (
	"sla-srv/internal/model"
	"sla-srv/pkg/paginator"
)

// Filter contains filtering options for rule queries.
type Filter struct {
	IDs            []string
	CompanyIDs     []string
	FeedbackTypeID string
	IsActive       *bool
}

// CreateOptions contains options for creating a rule.
type CreateOptions struct {
	Rule model.SlaRule
}

// UpdateOptions replaces every writable column of Rule.ID.
type UpdateOptions struct {
	Rule model.SlaRule
}

// ListOptions contains options for listing rules.
type ListOptions struct {
	Filter Filter
}

// GetOptions contains options for paginated rule listing.
type GetOptions struct {
	Filter        Filter
	PaginateQuery paginator.PaginateQuery
}

type CountOptions struct {
	Filter Filter
}

type Counts struct {
	Total  int64
	Active int64
}
