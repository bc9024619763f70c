package http

import (
	"strings"

	"sla-srv/internal/alert"
	"sla-srv/internal/model"
	"sla-srv/pkg/paginator"
	postgres "sla-srv/pkg/postgre"
	"sla-srv/pkg/response"
)

const maxBulkIDs = 100

type listReq struct {
	Status     []string `form:"status"`
	Severity   []string `form:"severity"`
	FeedbackID string   `form:"feedback_id"`
	Page       int      `form:"page"`
	Limit      int64    `form:"limit"`
}

// splitValues accepts both repeated params and comma separated lists.
func splitValues(vals []string) []string {
	var out []string
	for _, v := range vals {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func (r listReq) statuses() []model.AlertStatus {
	vals := splitValues(r.Status)
	if len(vals) == 0 {
		return nil
	}
	out := make([]model.AlertStatus, len(vals))
	for i, v := range vals {
		out[i] = model.AlertStatus(v)
	}
	return out
}

func (r listReq) severities() []model.Severity {
	vals := splitValues(r.Severity)
	if len(vals) == 0 {
		return nil
	}
	out := make([]model.Severity, len(vals))
	for i, v := range vals {
		out[i] = model.Severity(v)
	}
	return out
}

func (r listReq) validate() error {
	if r.FeedbackID != "" && !postgres.IsValidUUID(r.FeedbackID) {
		return errWrongQuery
	}
	for _, s := range r.statuses() {
		if !s.IsValid() {
			return errWrongQuery
		}
	}
	for _, s := range r.severities() {
		if !s.IsValid() {
			return errWrongQuery
		}
	}
	return nil
}

func (r listReq) toInput(tenant model.TenantFilter) alert.ListInput {
	return alert.ListInput{
		Filter: alert.Filter{
			Tenant:     tenant,
			Statuses:   r.statuses(),
			Severities: r.severities(),
			FeedbackID: r.FeedbackID,
		},
		PaginateQuery: paginator.PaginateQuery{Page: r.Page, Limit: r.Limit},
	}
}

type dashboardReq struct {
	RecentLimit int `form:"recent_limit"`
}

type transitionReq struct {
	Notes *string `json:"notes"`
}

type bulkReq struct {
	AlertIDs []string `json:"alert_ids"`
	Action   string   `json:"action"`
	Notes    *string  `json:"notes"`
}

func (r bulkReq) validate() error {
	if len(r.AlertIDs) == 0 || len(r.AlertIDs) > maxBulkIDs {
		return errWrongBody
	}
	if err := postgres.ValidateUUIDs(r.AlertIDs); err != nil {
		return errWrongBody
	}
	if !alert.Action(r.Action).IsValid() {
		return alert.ErrInvalidAction
	}
	return nil
}

type alertResp struct {
	ID               string             `json:"id"`
	CompanyID        string             `json:"company_id"`
	FeedbackID       string             `json:"feedback_id"`
	Severity         string             `json:"severity"`
	AlertType        string             `json:"alert_type"`
	DetectedKeywords []string           `json:"detected_keywords"`
	SentimentScore   float64            `json:"sentiment_score"`
	Status           string             `json:"status"`
	IsEscalated      bool               `json:"is_escalated"`
	EscalatedAt      *response.DateTime `json:"escalated_at,omitempty"`
	AcknowledgedBy   *string            `json:"acknowledged_by,omitempty"`
	AcknowledgedAt   *response.DateTime `json:"acknowledged_at,omitempty"`
	ResolvedAt       *response.DateTime `json:"resolved_at,omitempty"`
	ResolutionNotes  *string            `json:"resolution_notes,omitempty"`
	CreatedAt        response.DateTime  `json:"created_at"`
	UpdatedAt        response.DateTime  `json:"updated_at"`
}

func newAlertResp(a model.Alert) alertResp {
	keywords := a.DetectedKeywords
	if keywords == nil {
		keywords = []string{}
	}
	return alertResp{
		ID:               a.ID,
		CompanyID:        a.CompanyID,
		FeedbackID:       a.FeedbackID,
		Severity:         string(a.Severity),
		AlertType:        string(a.AlertType),
		DetectedKeywords: keywords,
		SentimentScore:   a.SentimentScore,
		Status:           string(a.Status),
		IsEscalated:      a.IsEscalated,
		EscalatedAt:      response.NewDateTimePtr(a.EscalatedAt),
		AcknowledgedBy:   a.AcknowledgedBy,
		AcknowledgedAt:   response.NewDateTimePtr(a.AcknowledgedAt),
		ResolvedAt:       response.NewDateTimePtr(a.ResolvedAt),
		ResolutionNotes:  a.ResolutionNotes,
		CreatedAt:        response.DateTime(a.CreatedAt),
		UpdatedAt:        response.DateTime(a.UpdatedAt),
	}
}

func newAlertResps(alerts []model.Alert) []alertResp {
	items := make([]alertResp, len(alerts))
	for i, a := range alerts {
		items[i] = newAlertResp(a)
	}
	return items
}

type listResp struct {
	Alerts    []alertResp                 `json:"alerts"`
	Paginator paginator.PaginatorResponse `json:"paginator"`
}

func newListResp(out alert.ListOutput) listResp {
	return listResp{
		Alerts:    newAlertResps(out.Alerts),
		Paginator: out.Paginator.ToResponse(),
	}
}

type statsResp struct {
	Total      int64            `json:"total"`
	ByStatus   map[string]int64 `json:"by_status"`
	BySeverity map[string]int64 `json:"by_severity"`
}

func newStatsResp(s alert.Stats) statsResp {
	resp := statsResp{
		Total:      s.Total,
		ByStatus:   make(map[string]int64, len(s.ByStatus)),
		BySeverity: make(map[string]int64, len(s.BySeverity)),
	}
	for k, v := range s.ByStatus {
		resp.ByStatus[string(k)] = v
	}
	for k, v := range s.BySeverity {
		resp.BySeverity[string(k)] = v
	}
	return resp
}

type dashboardResp struct {
	Stats                   statsResp   `json:"stats"`
	RecentCritical          []alertResp `json:"recent_critical"`
	AvgMinutesToAcknowledge float64     `json:"avg_minutes_to_acknowledge"`
}

func newDashboardResp(d alert.Dashboard) dashboardResp {
	return dashboardResp{
		Stats:                   newStatsResp(d.Stats),
		RecentCritical:          newAlertResps(d.RecentCritical),
		AvgMinutesToAcknowledge: d.AvgMinutesToAcknowledge,
	}
}

type detectionResp struct {
	Severity string   `json:"severity,omitempty"`
	Driver   string   `json:"driver,omitempty"`
	Score    float64  `json:"score"`
	Keywords []string `json:"keywords,omitempty"`
}

type detectResp struct {
	FeedbackID string        `json:"feedback_id"`
	Detection  detectionResp `json:"detection"`
	Alert      *alertResp    `json:"alert,omitempty"`
	Created    bool          `json:"created"`
	Escalated  bool          `json:"escalated"`
}

func newDetectResp(out alert.DetectOutput) detectResp {
	resp := detectResp{
		FeedbackID: out.FeedbackID,
		Detection: detectionResp{
			Severity: string(out.Detection.Severity),
			Driver:   string(out.Detection.Driver),
			Score:    out.Detection.Score,
			Keywords: out.Detection.Keywords,
		},
		Created:   out.Created,
		Escalated: out.Escalated,
	}
	if out.Alert != nil {
		a := newAlertResp(*out.Alert)
		resp.Alert = &a
	}
	return resp
}
