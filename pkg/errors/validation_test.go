package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationErrorCollectorMergesFields(t *testing.T) {
	c := NewValidationErrorCollector()
	assert.False(t, c.HasError())

	c.Add(NewValidationError(1, "name", "name is required")).
		Addf(2, "priority_level", "must be between %d and %d", 1, 5).
		Add(NewValidationError(1, "name", "name is too long")).
		Add(nil)

	require.True(t, c.HasError())
	require.Len(t, c.Errors(), 2)
	assert.Equal(t, "name", c.Errors()[0].Field)

	name, ok := c.Field("name")
	require.True(t, ok)
	assert.Equal(t, []string{"name is required", "name is too long"}, name.Messages)

	_, ok = c.Field("missing")
	assert.False(t, ok)

	assert.Equal(t, "name: name is required, name is too long; priority_level: must be between 1 and 5", c.Error())
}

func TestValidationErrorCollectorCopiesInput(t *testing.T) {
	in := NewValidationError(1, "name", "a")
	c := NewValidationErrorCollector().Add(in).Add(NewValidationError(1, "name", "b"))

	assert.Equal(t, []string{"a"}, in.Messages)
	assert.Len(t, c.Errors()[0].Messages, 2)
}
