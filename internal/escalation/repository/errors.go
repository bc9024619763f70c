package repository

import "errors"

var (
	ErrNotFound = errors.New("escalation not found")
	// ErrNotUnresolved means a compare-and-set found the row already resolved.
	ErrNotUnresolved = errors.New("escalation is not unresolved")
)
