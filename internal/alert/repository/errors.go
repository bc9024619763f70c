package repository

import "errors"

var (
	ErrNotFound = errors.New("alert not found")
	// ErrStale is returned when the alert no longer has the expected state.
	ErrStale = errors.New("alert state changed")
)
