package model

import "time"

const (
	ConditionRating    = "rating"
	ConditionSentiment = "sentiment"

	MinPriorityLevel = 1
	MaxPriorityLevel = 5
)

// RuleConditions holds the optional match conditions of a rule. Values are
// either strings ("<=2", "negative") or JSON numbers.
type RuleConditions map[string]any

type SlaRule struct {
	ID                      string         `json:"id"`
	CompanyID               string         `json:"company_id"`
	Name                    string         `json:"name"`
	Description             *string        `json:"description,omitempty"`
	FeedbackTypeID          string         `json:"feedback_type_id"`
	Conditions              RuleConditions `json:"conditions"`
	PriorityLevel           int            `json:"priority_level"`
	SortOrder               int            `json:"sort_order"`
	FirstResponseMinutes    int            `json:"first_response_minutes"`
	ResolutionMinutes       int            `json:"resolution_minutes"`
	EscalationLevel1Minutes int            `json:"escalation_level_1_minutes"`
	EscalationLevel2Minutes int            `json:"escalation_level_2_minutes"`
	EscalationLevel3Minutes int            `json:"escalation_level_3_minutes"`
	Level1Recipients        []string       `json:"level_1_recipients"`
	Level2Recipients        []string       `json:"level_2_recipients"`
	Level3Recipients        []string       `json:"level_3_recipients"`
	NotificationChannels    []Channel      `json:"notification_channels"`
	IsActive                bool           `json:"is_active"`
	CreatedAt               time.Time      `json:"created_at"`
	UpdatedAt               time.Time      `json:"updated_at"`
}

// EscalationMinutes returns the offset for an escalation level, 0 for an
// unknown level.
func (r SlaRule) EscalationMinutes(level int) int {
	switch level {
	case 1:
		return r.EscalationLevel1Minutes
	case 2:
		return r.EscalationLevel2Minutes
	case 3:
		return r.EscalationLevel3Minutes
	}
	return 0
}

// Recipients returns the user ids notified when level is reached.
func (r SlaRule) Recipients(level int) []string {
	switch level {
	case 1:
		return r.Level1Recipients
	case 2:
		return r.Level2Recipients
	case 3:
		return r.Level3Recipients
	}
	return nil
}
