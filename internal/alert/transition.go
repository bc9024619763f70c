package alert

import (
	"time"

	"sla-srv/internal/model"
)

// Change is one requested action on an alert.
type Change struct {
	Action Action
	UserID string
	Notes  *string
	At     time.Time
}

// Apply returns the alert after c, or a guard error and the alert unchanged.
//
//	new -> acknowledged -> in_progress
//	{new, acknowledged, in_progress} -> resolved | dismissed
//	escalate sets is_escalated once on any open alert
func Apply(a model.Alert, c Change) (model.Alert, error) {
	if !c.Action.IsValid() {
		return a, ErrInvalidAction
	}
	if a.Status.IsTerminal() {
		return a, ErrAlreadyClosed
	}

	next := a
	at := c.At
	switch c.Action {
	case ActionAcknowledge:
		if a.Status != model.AlertStatusNew {
			return a, ErrCannotAcknowledge
		}
		next.Status = model.AlertStatusAcknowledged
		next.AcknowledgedAt = &at
		if c.UserID != "" {
			by := c.UserID
			next.AcknowledgedBy = &by
		}
	case ActionStartProgress:
		if a.Status != model.AlertStatusAcknowledged {
			return a, ErrCannotStart
		}
		next.Status = model.AlertStatusInProgress
	case ActionResolve:
		next.Status = model.AlertStatusResolved
		next.ResolvedAt = &at
		next.ResolutionNotes = c.Notes
	case ActionDismiss:
		next.Status = model.AlertStatusDismissed
		next.ResolutionNotes = c.Notes
	case ActionEscalate:
		if a.IsEscalated {
			return a, ErrAlreadyEscalated
		}
		next.IsEscalated = true
		next.EscalatedAt = &at
	}
	return next, nil
}
