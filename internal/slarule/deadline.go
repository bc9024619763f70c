package slarule

import (
	"time"

	"sla-srv/internal/model"
)

// Deadlines are the absolute SLA deadlines of one feedback under one rule.
// Offsets are plain calendar minutes.
type Deadlines struct {
	FirstResponse time.Time `json:"first_response"`
	Resolution    time.Time `json:"resolution"`
	Escalation1   time.Time `json:"escalation_level_1"`
	Escalation2   time.Time `json:"escalation_level_2"`
	Escalation3   time.Time `json:"escalation_level_3"`
}

func ComputeDeadlines(rule model.SlaRule, createdAt time.Time) Deadlines {
	at := func(minutes int) time.Time {
		return createdAt.Add(time.Duration(minutes) * time.Minute)
	}
	return Deadlines{
		FirstResponse: at(rule.FirstResponseMinutes),
		Resolution:    at(rule.ResolutionMinutes),
		Escalation1:   at(rule.EscalationLevel1Minutes),
		Escalation2:   at(rule.EscalationLevel2Minutes),
		Escalation3:   at(rule.EscalationLevel3Minutes),
	}
}

// Level returns the escalation deadline of level n, the zero time for an
// unknown level.
func (d Deadlines) Level(n int) time.Time {
	switch n {
	case model.EscalationLevel1:
		return d.Escalation1
	case model.EscalationLevel2:
		return d.Escalation2
	case model.EscalationLevel3:
		return d.Escalation3
	}
	return time.Time{}
}

// TargetLevel is the highest level whose deadline has passed at now, 0 when
// none has.
func (d Deadlines) TargetLevel(now time.Time) int {
	for n := model.MaxEscalationLevel; n >= model.EscalationLevel1; n-- {
		if !now.Before(d.Level(n)) {
			return n
		}
	}
	return 0
}

// FirstResponseBreached reports whether now is at or past the first
// response deadline.
func (d Deadlines) FirstResponseBreached(now time.Time) bool {
	return !now.Before(d.FirstResponse)
}

func (d Deadlines) ResolutionBreached(now time.Time) bool {
	return !now.Before(d.Resolution)
}
