package escalation

import (
	"errors"
	"fmt"
)

var (
	ErrEscalationNotFound = errors.New("escalation not found")
	ErrGuardViolation     = errors.New("escalation transition not allowed")
	ErrAlreadyResolved    = fmt.Errorf("%w: escalation already resolved", ErrGuardViolation)
	ErrInvalidReason      = errors.New("invalid trigger reason")
	ErrInvalidInput       = errors.New("invalid escalation input")
)
