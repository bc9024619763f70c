package model

import "time"

const (
	EscalationLevel1 = 1
	EscalationLevel2 = 2
	EscalationLevel3 = 3

	MaxEscalationLevel = EscalationLevel3
)

type TriggerReason string

const (
	TriggerSlaBreach       TriggerReason = "sla_breach"
	TriggerCriticalRating  TriggerReason = "critical_rating"
	TriggerUrgentSentiment TriggerReason = "urgent_sentiment"
	TriggerManual          TriggerReason = "manual"
)

func (t TriggerReason) IsValid() bool {
	switch t {
	case TriggerSlaBreach, TriggerCriticalRating, TriggerUrgentSentiment, TriggerManual:
		return true
	}
	return false
}

// Escalation is one triggered level of one feedback.
type Escalation struct {
	ID                       string        `json:"id"`
	CompanyID                string        `json:"company_id"`
	FeedbackID               string        `json:"feedback_id"`
	SlaRuleID                string        `json:"sla_rule_id"`
	EscalationLevel          int           `json:"escalation_level"`
	TriggerReason            TriggerReason `json:"trigger_reason"`
	EscalatedAt              time.Time     `json:"escalated_at"`
	NotifiedUsers            []string      `json:"notified_users"`
	NotificationChannelsUsed []Channel     `json:"notification_channels_used"`
	IsResolved               bool          `json:"is_resolved"`
	ResolvedAt               *time.Time    `json:"resolved_at,omitempty"`
	ResolvedBy               *string       `json:"resolved_by,omitempty"`
	ResolutionNotes          *string       `json:"resolution_notes,omitempty"`
	CreatedAt                time.Time     `json:"created_at"`
	UpdatedAt                time.Time     `json:"updated_at"`
}

// CurrentLevel is the highest unresolved level among escs, 0 when none.
func CurrentLevel(escs []Escalation) int {
	level := 0
	for _, e := range escs {
		if !e.IsResolved && e.EscalationLevel > level {
			level = e.EscalationLevel
		}
	}
	return level
}
