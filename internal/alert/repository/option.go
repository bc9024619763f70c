package repository

import (
	"sla-srv/internal/model"
	"sla-srv/pkg/paginator"
)

type Filter struct {
	CompanyIDs []string
	IDs        []string
	FeedbackID string
	Statuses   []model.AlertStatus
	Severities []model.Severity
}

type CreateOptions struct {
	Alert model.Alert
}

type GetOptions struct {
	Filter        Filter
	PaginateQuery paginator.PaginateQuery
}

type UpdateOptions struct {
	Alert         model.Alert
	PrevStatus    model.AlertStatus
	PrevEscalated bool
}

type CountOptions struct {
	Filter Filter
}

type Counts struct {
	Total      int64
	ByStatus   map[model.AlertStatus]int64
	BySeverity map[model.Severity]int64
}
