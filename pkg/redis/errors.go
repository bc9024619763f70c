package redis

import "errors"

var (
	ErrHostRequired = errors.New("redis: host is required")
	ErrInvalidPort  = errors.New("redis: invalid port")
	// ErrLockNotAcquired is returned when a lock is still held by another owner
	// after the wait budget is spent.
	ErrLockNotAcquired = errors.New("redis: lock not acquired")
)
