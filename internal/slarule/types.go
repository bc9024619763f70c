package slarule

import (
	"sla-srv/internal/model"
	"sla-srv/pkg/paginator"
)

const (
	ValidationCodeRequired = 10001
	ValidationCodeInvalid  = 10002
)

// Filter narrows rule listings.
type Filter struct {
	Tenant         model.TenantFilter
	FeedbackTypeID string
	IsActive       *bool
}

type ListInput struct {
	Filter        Filter
	PaginateQuery paginator.PaginateQuery
}

type ListOutput struct {
	Rules     []model.SlaRule
	Paginator paginator.Paginator
}

// RuleInput carries every writable field of a rule. PUT replaces all of
// them.
type RuleInput struct {
	CompanyID               string
	Name                    string
	Description             *string
	FeedbackTypeID          string
	Conditions              model.RuleConditions
	PriorityLevel           int
	SortOrder               int
	FirstResponseMinutes    int
	ResolutionMinutes       int
	EscalationLevel1Minutes int
	EscalationLevel2Minutes int
	EscalationLevel3Minutes int
	Level1Recipients        []string
	Level2Recipients        []string
	Level3Recipients        []string
	NotificationChannels    []model.Channel
	IsActive                bool
}

type CreateInput struct {
	Rule RuleInput
	// Tenant is the set of companies the caller may create rules for.
	Tenant model.TenantFilter
}

type DetailInput struct {
	ID     string
	Tenant model.TenantFilter
}

type UpdateInput struct {
	ID     string
	Rule   RuleInput
	Tenant model.TenantFilter
}

type DeleteInput struct {
	ID     string
	Tenant model.TenantFilter
}

type StatsInput struct {
	Tenant model.TenantFilter
}

type RuleStats struct {
	Total  int64 `json:"total"`
	Active int64 `json:"active"`
}

// MatchOutput is the applicable rule of a feedback with its deadlines.
type MatchOutput struct {
	Rule      model.SlaRule
	Deadlines Deadlines
}
