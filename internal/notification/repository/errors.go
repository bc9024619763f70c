package repository

import "errors"

var (
	ErrNotFound = errors.New("notification not found")
	// ErrStale is returned when the notification no longer has the expected
	// state.
	ErrStale           = errors.New("notification state changed")
	ErrContactNotFound = errors.New("contact not found")
)
