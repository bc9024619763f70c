package alert

import (
	"time"

	"sla-srv/internal/model"
	"sla-srv/pkg/paginator"
)

type Action string

const (
	ActionAcknowledge   Action = "acknowledge"
	ActionStartProgress Action = "start_progress"
	ActionResolve       Action = "resolve"
	ActionDismiss       Action = "dismiss"
	ActionEscalate      Action = "escalate"
)

func (a Action) IsValid() bool {
	switch a {
	case ActionAcknowledge, ActionStartProgress, ActionResolve, ActionDismiss, ActionEscalate:
		return true
	}
	return false
}

// DetectInput names the feedback to classify.
type DetectInput struct {
	FeedbackID string
	Now        time.Time
}

type DetectOutput struct {
	FeedbackID string
	Detection  Detection
	// Alert is set when an alert exists for the feedback, created now or by
	// an earlier event.
	Alert     *model.Alert
	Created   bool
	Escalated bool
}

type Filter struct {
	Tenant     model.TenantFilter
	Statuses   []model.AlertStatus
	Severities []model.Severity
	FeedbackID string
}

type ListInput struct {
	Filter        Filter
	PaginateQuery paginator.PaginateQuery
}

type ListOutput struct {
	Alerts    []model.Alert
	Paginator paginator.Paginator
}

type DetailInput struct {
	ID     string
	Tenant model.TenantFilter
}

type StatsInput struct {
	Tenant model.TenantFilter
}

type Stats struct {
	Total      int64
	ByStatus   map[model.AlertStatus]int64
	BySeverity map[model.Severity]int64
}

type DashboardInput struct {
	Tenant      model.TenantFilter
	RecentLimit int
}

type Dashboard struct {
	Stats                   Stats
	RecentCritical          []model.Alert
	AvgMinutesToAcknowledge float64
}

// TransitionInput drives one action on one alert. The caller's user id is
// recorded as the acknowledger.
type TransitionInput struct {
	ID     string
	Notes  *string
	Tenant model.TenantFilter
	Now    time.Time
}

type BulkUpdateInput struct {
	IDs    []string
	Action Action
	Notes  *string
	Tenant model.TenantFilter
	Now    time.Time
}

type BulkUpdateOutput struct {
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}
