package errors

import (
	"fmt"
	"strings"
)

// ValidationError reports the problems found on one request field.
type ValidationError struct {
	Code     int      `json:"code"`
	Field    string   `json:"field"`
	Messages []string `json:"messages"`
}

func NewValidationError(code int, field string, messages ...string) *ValidationError {
	return &ValidationError{
		Code:     code,
		Field:    field,
		Messages: messages,
	}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, strings.Join(e.Messages, ", "))
}

// ValidationErrorCollector gathers field errors of one request. Errors on a
// field that is already present are merged into its messages, keeping the
// order in which fields were first reported.
type ValidationErrorCollector struct {
	errors []*ValidationError
	byName map[string]*ValidationError
}

func NewValidationErrorCollector() *ValidationErrorCollector {
	return &ValidationErrorCollector{
		byName: make(map[string]*ValidationError),
	}
}

// Add records err and returns the collector for chaining.
func (c *ValidationErrorCollector) Add(err *ValidationError) *ValidationErrorCollector {
	if err == nil {
		return c
	}
	if prev, ok := c.byName[err.Field]; ok {
		prev.Messages = append(prev.Messages, err.Messages...)
		return c
	}
	cp := *err
	cp.Messages = append([]string(nil), err.Messages...)
	c.errors = append(c.errors, &cp)
	c.byName[cp.Field] = &cp
	return c
}

// Addf is a shortcut for Add with a formatted single message.
func (c *ValidationErrorCollector) Addf(code int, field, format string, args ...any) *ValidationErrorCollector {
	return c.Add(NewValidationError(code, field, fmt.Sprintf(format, args...)))
}

func (c *ValidationErrorCollector) HasError() bool {
	return len(c.errors) > 0
}

func (c *ValidationErrorCollector) Errors() []*ValidationError {
	return c.errors
}

// Field returns the error reported for name, if any.
func (c *ValidationErrorCollector) Field(name string) (*ValidationError, bool) {
	e, ok := c.byName[name]
	return e, ok
}

func (c *ValidationErrorCollector) Error() string {
	parts := make([]string, 0, len(c.errors))
	for _, err := range c.errors {
		parts = append(parts, err.Error())
	}
	return strings.Join(parts, "; ")
}
