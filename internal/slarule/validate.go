package slarule

import (
	"fmt"
	"strings"

	"sla-srv/internal/model"
	"sla-srv/pkg/errors"
	postgresPkg "sla-srv/pkg/postgre"
)

// Validate checks a rule before it is stored. Field problems are collected
// into a ValidationErrorCollector.
func (ip RuleInput) Validate() error {
	c := errors.NewValidationErrorCollector()

	if strings.TrimSpace(ip.Name) == "" {
		c.Add(errors.NewValidationError(ValidationCodeRequired, "name", "name is required"))
	}
	if !postgresPkg.IsValidUUID(ip.CompanyID) {
		c.Add(errors.NewValidationError(ValidationCodeInvalid, "company_id", "company_id must be a uuid"))
	}
	if !postgresPkg.IsValidUUID(ip.FeedbackTypeID) {
		c.Add(errors.NewValidationError(ValidationCodeInvalid, "feedback_type_id", "feedback_type_id must be a uuid"))
	}
	if ip.PriorityLevel < model.MinPriorityLevel || ip.PriorityLevel > model.MaxPriorityLevel {
		c.Addf(ValidationCodeInvalid, "priority_level",
			"priority_level must be between %d and %d", model.MinPriorityLevel, model.MaxPriorityLevel)
	}

	offsets := []struct {
		field string
		value int
	}{
		{"first_response_minutes", ip.FirstResponseMinutes},
		{"resolution_minutes", ip.ResolutionMinutes},
		{"escalation_level_1_minutes", ip.EscalationLevel1Minutes},
		{"escalation_level_2_minutes", ip.EscalationLevel2Minutes},
		{"escalation_level_3_minutes", ip.EscalationLevel3Minutes},
	}
	for _, o := range offsets {
		if o.value < 0 {
			c.Add(errors.NewValidationError(ValidationCodeInvalid, o.field, o.field+" must not be negative"))
		}
	}
	if ip.EscalationLevel2Minutes < ip.EscalationLevel1Minutes ||
		ip.EscalationLevel3Minutes < ip.EscalationLevel2Minutes {
		c.Add(errors.NewValidationError(ValidationCodeInvalid, "escalation_minutes",
			"escalation offsets must not decrease from level 1 to level 3"))
	}

	for key, raw := range ip.Conditions {
		switch key {
		case model.ConditionRating:
			if _, err := ParseRatingCondition(raw); err != nil {
				c.Add(errors.NewValidationError(ValidationCodeInvalid, "conditions.rating", err.Error()))
			}
		case model.ConditionSentiment:
			if _, ok := raw.(string); !ok {
				c.Add(errors.NewValidationError(ValidationCodeInvalid, "conditions.sentiment", "sentiment must be a string"))
			}
		default:
			c.Add(errors.NewValidationError(ValidationCodeInvalid, "conditions."+key, "unknown condition"))
		}
	}

	for _, ch := range ip.NotificationChannels {
		if !ch.IsValid() {
			c.Addf(ValidationCodeInvalid, "notification_channels", "unknown channel %q", ch)
		}
	}
	for level, ids := range [][]string{ip.Level1Recipients, ip.Level2Recipients, ip.Level3Recipients} {
		if err := postgresPkg.ValidateUUIDs(ids); err != nil {
			c.Add(errors.NewValidationError(ValidationCodeInvalid,
				fmt.Sprintf("level_%d_recipients", level+1), err.Error()))
		}
	}

	if c.HasError() {
		return c
	}
	return nil
}
