package repository

import (
	"time"

	"sla-srv/internal/model"
	"sla-srv/pkg/paginator"
)

type Filter struct {
	CompanyIDs []string
	FeedbackID string
	Level      int
	IsResolved *bool
}

type CreateOptions struct {
	Escalation model.Escalation
}

type RecordNotifiedOptions struct {
	ID       string
	Users    []string
	Channels []model.Channel
}

// ResolveOptions resolves ID only while it is still unresolved.
type ResolveOptions struct {
	ID         string
	ResolvedBy string
	Notes      *string
	At         time.Time
}

type GetOptions struct {
	Filter        Filter
	PaginateQuery paginator.PaginateQuery
}

type CountOptions struct {
	Filter Filter
}

type Counts struct {
	ByLevel  map[int]int64
	Open     int64
	Resolved int64
}
