package escalation

import (
	"time"

	"sla-srv/internal/model"
	"sla-srv/pkg/paginator"
)

// Config tunes the engine.
type Config struct {
	Workers  int
	PageSize int
	// AllowResolvedRecurrence lets a resolved level be raised again when its
	// deadline is still passed.
	AllowResolvedRecurrence bool
}

type ScanResult struct {
	Evaluated int `json:"evaluated"`
	Created   int `json:"created"`
	Failed    int `json:"failed"`
}

type EvaluateOutput struct {
	FeedbackID  string             `json:"feedback_id"`
	RuleID      string             `json:"rule_id,omitempty"`
	Level       int                `json:"level"`
	TargetLevel int                `json:"target_level"`
	Created     []model.Escalation `json:"created"`
}

type TriggerInput struct {
	Feedback model.Feedback
	Reason   model.TriggerReason
	Now      time.Time
}

type ResolveInput struct {
	ID     string
	Notes  *string
	Tenant model.TenantFilter
	Now    time.Time
}

type Filter struct {
	Tenant     model.TenantFilter
	FeedbackID string
	Level      int
	IsResolved *bool
}

type ListInput struct {
	Filter        Filter
	PaginateQuery paginator.PaginateQuery
}

type ListOutput struct {
	Escalations []model.Escalation
	Paginator   paginator.Paginator
}

type StatsInput struct {
	Tenant model.TenantFilter
}

type Stats struct {
	ByLevel  map[int]int64 `json:"by_level"`
	Open     int64         `json:"open"`
	Resolved int64         `json:"resolved"`
}

type RecheckInput struct {
	FeedbackID string
	Now        time.Time
}

type RecheckOutput struct {
	Scan     *ScanResult     `json:"scan,omitempty"`
	Evaluate *EvaluateOutput `json:"evaluate,omitempty"`
}
