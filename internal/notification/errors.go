package notification

import (
	"errors"
	"fmt"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrInvalidInput         = errors.New("invalid notification input")
	ErrGuardViolation       = errors.New("notification transition not allowed")

	ErrCannotRetry    = fmt.Errorf("%w: only failed notifications under the retry limit can be retried", ErrGuardViolation)
	ErrCannotCancel   = fmt.Errorf("%w: only pending scheduled notifications can be cancelled", ErrGuardViolation)
	ErrNotInApp       = fmt.Errorf("%w: only in-app notifications can be marked as read", ErrGuardViolation)
	ErrNotRecipient   = fmt.Errorf("%w: notification is addressed to someone else", ErrGuardViolation)
	ErrNotDeliverable = fmt.Errorf("%w: only sent notifications can be marked delivered", ErrGuardViolation)
	ErrNotPending     = fmt.Errorf("%w: only pending notifications can be dispatched", ErrGuardViolation)

	ErrNoSender       = errors.New("no sender configured for channel")
	ErrNoAddress      = errors.New("recipient has no address for channel")
	ErrUnknownContact = errors.New("recipient not found in contact directory")

	// ErrDispatchInterrupted is recorded on a claimed notification whose
	// dispatcher never saved an outcome.
	ErrDispatchInterrupted = errors.New("dispatch interrupted before an outcome was saved")
)
