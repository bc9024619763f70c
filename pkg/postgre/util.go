package postgres

import (
	"fmt"

	"github.com/google/uuid"
)

// IsUUID returns ErrInvalidUUID when u is not a uuid.
func IsUUID(u string) error {
	if u == "" {
		return fmt.Errorf("%w: empty", ErrInvalidUUID)
	}
	if _, err := uuid.Parse(u); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidUUID, err)
	}
	return nil
}

func IsValidUUID(u string) bool {
	return IsUUID(u) == nil
}

func NewUUID() string {
	return uuid.New().String()
}

// ValidateUUIDs checks every id and reports the first invalid one.
func ValidateUUIDs(ids []string) error {
	for i, id := range ids {
		if err := IsUUID(id); err != nil {
			return fmt.Errorf("id %d (%q): %w", i, id, err)
		}
	}
	return nil
}

// Args converts ids or string enums into qm.WhereIn arguments.
func Args[T ~string](vals []T) []interface{} {
	out := make([]interface{}, len(vals))
	for i, v := range vals {
		out[i] = string(v)
	}
	return out
}
