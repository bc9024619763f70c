package http

import (
	"sla-srv/internal/escalation"
	"sla-srv/internal/model"
	"sla-srv/internal/slarule"
	"sla-srv/pkg/paginator"
	postgres "sla-srv/pkg/postgre"
	"sla-srv/pkg/response"
)

type listReq struct {
	CompanyID      string `form:"company_id"`
	FeedbackTypeID string `form:"feedback_type_id"`
	IsActive       *bool  `form:"is_active"`
	Page           int    `form:"page"`
	Limit          int64  `form:"limit"`
}

func (r listReq) validate() error {
	if r.CompanyID != "" && !postgres.IsValidUUID(r.CompanyID) {
		return errWrongQuery
	}
	if r.FeedbackTypeID != "" && !postgres.IsValidUUID(r.FeedbackTypeID) {
		return errWrongQuery
	}
	return nil
}

func (r listReq) toInput(tenant model.TenantFilter) slarule.ListInput {
	return slarule.ListInput{
		Filter: slarule.Filter{
			Tenant:         tenant,
			FeedbackTypeID: r.FeedbackTypeID,
			IsActive:       r.IsActive,
		},
		PaginateQuery: paginator.PaginateQuery{Page: r.Page, Limit: r.Limit},
	}
}

// ruleReq is the body of create and update. Update replaces every field.
type ruleReq struct {
	CompanyID               string               `json:"company_id"`
	Name                    string               `json:"name"`
	Description             *string              `json:"description"`
	FeedbackTypeID          string               `json:"feedback_type_id"`
	Conditions              model.RuleConditions `json:"conditions"`
	PriorityLevel           int                  `json:"priority_level"`
	SortOrder               int                  `json:"sort_order"`
	FirstResponseMinutes    int                  `json:"first_response_minutes"`
	ResolutionMinutes       int                  `json:"resolution_minutes"`
	EscalationLevel1Minutes int                  `json:"escalation_level_1_minutes"`
	EscalationLevel2Minutes int                  `json:"escalation_level_2_minutes"`
	EscalationLevel3Minutes int                  `json:"escalation_level_3_minutes"`
	Level1Recipients        []string             `json:"level_1_recipients"`
	Level2Recipients        []string             `json:"level_2_recipients"`
	Level3Recipients        []string             `json:"level_3_recipients"`
	NotificationChannels    []model.Channel      `json:"notification_channels"`
	IsActive                *bool                `json:"is_active"`
}

// toInput fills the company of non super admins from their scope.
func (r ruleReq) toInput(sc model.Scope) slarule.RuleInput {
	company := r.CompanyID
	if company == "" && !sc.IsSuperAdmin() {
		company = sc.CompanyID
	}
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return slarule.RuleInput{
		CompanyID:               company,
		Name:                    r.Name,
		Description:             r.Description,
		FeedbackTypeID:          r.FeedbackTypeID,
		Conditions:              r.Conditions,
		PriorityLevel:           r.PriorityLevel,
		SortOrder:               r.SortOrder,
		FirstResponseMinutes:    r.FirstResponseMinutes,
		ResolutionMinutes:       r.ResolutionMinutes,
		EscalationLevel1Minutes: r.EscalationLevel1Minutes,
		EscalationLevel2Minutes: r.EscalationLevel2Minutes,
		EscalationLevel3Minutes: r.EscalationLevel3Minutes,
		Level1Recipients:        r.Level1Recipients,
		Level2Recipients:        r.Level2Recipients,
		Level3Recipients:        r.Level3Recipients,
		NotificationChannels:    r.NotificationChannels,
		IsActive:                active,
	}
}

type ruleResp struct {
	ID                      string               `json:"id"`
	CompanyID               string               `json:"company_id"`
	IsGlobal                bool                 `json:"is_global"`
	Name                    string               `json:"name"`
	Description             *string              `json:"description,omitempty"`
	FeedbackTypeID          string               `json:"feedback_type_id"`
	Conditions              model.RuleConditions `json:"conditions"`
	PriorityLevel           int                  `json:"priority_level"`
	SortOrder               int                  `json:"sort_order"`
	FirstResponseMinutes    int                  `json:"first_response_minutes"`
	ResolutionMinutes       int                  `json:"resolution_minutes"`
	EscalationLevel1Minutes int                  `json:"escalation_level_1_minutes"`
	EscalationLevel2Minutes int                  `json:"escalation_level_2_minutes"`
	EscalationLevel3Minutes int                  `json:"escalation_level_3_minutes"`
	Level1Recipients        []string             `json:"level_1_recipients"`
	Level2Recipients        []string             `json:"level_2_recipients"`
	Level3Recipients        []string             `json:"level_3_recipients"`
	NotificationChannels    []model.Channel      `json:"notification_channels"`
	IsActive                bool                 `json:"is_active"`
	CreatedAt               response.DateTime    `json:"created_at"`
	UpdatedAt               response.DateTime    `json:"updated_at"`
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func newRuleResp(r model.SlaRule) ruleResp {
	conds := r.Conditions
	if conds == nil {
		conds = model.RuleConditions{}
	}
	channels := r.NotificationChannels
	if channels == nil {
		channels = []model.Channel{}
	}
	return ruleResp{
		ID:                      r.ID,
		CompanyID:               r.CompanyID,
		IsGlobal:                model.IsGlobalCompany(r.CompanyID),
		Name:                    r.Name,
		Description:             r.Description,
		FeedbackTypeID:          r.FeedbackTypeID,
		Conditions:              conds,
		PriorityLevel:           r.PriorityLevel,
		SortOrder:               r.SortOrder,
		FirstResponseMinutes:    r.FirstResponseMinutes,
		ResolutionMinutes:       r.ResolutionMinutes,
		EscalationLevel1Minutes: r.EscalationLevel1Minutes,
		EscalationLevel2Minutes: r.EscalationLevel2Minutes,
		EscalationLevel3Minutes: r.EscalationLevel3Minutes,
		Level1Recipients:        orEmpty(r.Level1Recipients),
		Level2Recipients:        orEmpty(r.Level2Recipients),
		Level3Recipients:        orEmpty(r.Level3Recipients),
		NotificationChannels:    channels,
		IsActive:                r.IsActive,
		CreatedAt:               response.DateTime(r.CreatedAt),
		UpdatedAt:               response.DateTime(r.UpdatedAt),
	}
}

type listResp struct {
	Rules     []ruleResp                  `json:"rules"`
	Paginator paginator.PaginatorResponse `json:"paginator"`
}

func newListResp(out slarule.ListOutput) listResp {
	rules := make([]ruleResp, len(out.Rules))
	for i, r := range out.Rules {
		rules[i] = newRuleResp(r)
	}
	return listResp{
		Rules:     rules,
		Paginator: out.Paginator.ToResponse(),
	}
}

type statsResp struct {
	Rules       slarule.RuleStats `json:"rules"`
	Escalations escalation.Stats  `json:"escalations"`
}
