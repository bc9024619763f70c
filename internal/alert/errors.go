package alert

import (
	"errors"
	"fmt"
)

var (
	ErrAlertNotFound  = errors.New("alert not found")
	ErrInvalidInput   = errors.New("invalid alert input")
	ErrInvalidAction  = errors.New("invalid alert action")
	ErrGuardViolation = errors.New("alert transition not allowed")

	ErrCannotAcknowledge = fmt.Errorf("%w: only new alerts can be acknowledged", ErrGuardViolation)
	ErrCannotStart       = fmt.Errorf("%w: only acknowledged alerts can be started", ErrGuardViolation)
	ErrAlreadyClosed     = fmt.Errorf("%w: alert is already resolved or dismissed", ErrGuardViolation)
	ErrAlreadyEscalated  = fmt.Errorf("%w: alert is already escalated", ErrGuardViolation)
	ErrStaleAlert        = fmt.Errorf("%w: alert changed concurrently", ErrGuardViolation)
)

// ErrAlreadyResolved is reported for any action on a closed alert.
var ErrAlreadyResolved = ErrAlreadyClosed
