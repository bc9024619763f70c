package http

import (
	"sla-srv/internal/escalation"
	"sla-srv/internal/model"
	"sla-srv/pkg/paginator"
	postgres "sla-srv/pkg/postgre"
	"sla-srv/pkg/response"
)

type listReq struct {
	FeedbackID string `form:"feedback_id"`
	Level      int    `form:"level"`
	IsResolved *bool  `form:"is_resolved"`
	Page       int    `form:"page"`
	Limit      int64  `form:"limit"`
}

func (r listReq) validate() error {
	if r.FeedbackID != "" && !postgres.IsValidUUID(r.FeedbackID) {
		return errWrongQuery
	}
	if r.Level < 0 || r.Level > model.MaxEscalationLevel {
		return errWrongQuery
	}
	return nil
}

func (r listReq) toInput(tenant model.TenantFilter) escalation.ListInput {
	return escalation.ListInput{
		Filter: escalation.Filter{
			Tenant:     tenant,
			FeedbackID: r.FeedbackID,
			Level:      r.Level,
			IsResolved: r.IsResolved,
		},
		PaginateQuery: paginator.PaginateQuery{Page: r.Page, Limit: r.Limit},
	}
}

type resolveReq struct {
	Notes *string `json:"resolution_notes"`
}

type recheckReq struct {
	FeedbackID string `json:"feedback_id"`
}

func (r recheckReq) validate() error {
	if r.FeedbackID != "" && !postgres.IsValidUUID(r.FeedbackID) {
		return errWrongBody
	}
	return nil
}

type escalationResp struct {
	ID                       string             `json:"id"`
	CompanyID                string             `json:"company_id"`
	FeedbackID               string             `json:"feedback_id"`
	SlaRuleID                string             `json:"sla_rule_id"`
	EscalationLevel          int                `json:"escalation_level"`
	TriggerReason            string             `json:"trigger_reason"`
	EscalatedAt              response.DateTime  `json:"escalated_at"`
	NotifiedUsers            []string           `json:"notified_users"`
	NotificationChannelsUsed []model.Channel    `json:"notification_channels_used"`
	IsResolved               bool               `json:"is_resolved"`
	ResolvedAt               *response.DateTime `json:"resolved_at,omitempty"`
	ResolvedBy               *string            `json:"resolved_by,omitempty"`
	ResolutionNotes          *string            `json:"resolution_notes,omitempty"`
}

func newEscalationResp(e model.Escalation) escalationResp {
	users := e.NotifiedUsers
	if users == nil {
		users = []string{}
	}
	channels := e.NotificationChannelsUsed
	if channels == nil {
		channels = []model.Channel{}
	}
	return escalationResp{
		ID:                       e.ID,
		CompanyID:                e.CompanyID,
		FeedbackID:               e.FeedbackID,
		SlaRuleID:                e.SlaRuleID,
		EscalationLevel:          e.EscalationLevel,
		TriggerReason:            string(e.TriggerReason),
		EscalatedAt:              response.DateTime(e.EscalatedAt),
		NotifiedUsers:            users,
		NotificationChannelsUsed: channels,
		IsResolved:               e.IsResolved,
		ResolvedAt:               response.NewDateTimePtr(e.ResolvedAt),
		ResolvedBy:               e.ResolvedBy,
		ResolutionNotes:          e.ResolutionNotes,
	}
}

type listResp struct {
	Escalations []escalationResp            `json:"escalations"`
	Paginator   paginator.PaginatorResponse `json:"paginator"`
}

func newListResp(out escalation.ListOutput) listResp {
	items := make([]escalationResp, len(out.Escalations))
	for i, e := range out.Escalations {
		items[i] = newEscalationResp(e)
	}
	return listResp{
		Escalations: items,
		Paginator:   out.Paginator.ToResponse(),
	}
}

type evaluateResp struct {
	FeedbackID  string           `json:"feedback_id"`
	RuleID      string           `json:"rule_id,omitempty"`
	Level       int              `json:"level"`
	TargetLevel int              `json:"target_level"`
	Created     []escalationResp `json:"created"`
}

type recheckResp struct {
	Scan     *escalation.ScanResult `json:"scan,omitempty"`
	Evaluate *evaluateResp          `json:"evaluate,omitempty"`
}

func newRecheckResp(out escalation.RecheckOutput) recheckResp {
	resp := recheckResp{Scan: out.Scan}
	if ev := out.Evaluate; ev != nil {
		created := make([]escalationResp, len(ev.Created))
		for i, e := range ev.Created {
			created[i] = newEscalationResp(e)
		}
		resp.Evaluate = &evaluateResp{
			FeedbackID:  ev.FeedbackID,
			RuleID:      ev.RuleID,
			Level:       ev.Level,
			TargetLevel: ev.TargetLevel,
			Created:     created,
		}
	}
	return resp
}
