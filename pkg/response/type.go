package response

import (
	"encoding/json"
	"time"

	"sla-srv/pkg/errors"
)

// Resp is the envelope of every API response.
type Resp struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	Data      any    `json:"data,omitempty"`
	Error     string `json:"error,omitempty"`
	ErrorCode int    `json:"error_code,omitempty"`
	Errors    any    `json:"errors,omitempty"`
}

// ErrorMapping maps domain errors to the HTTP error sent for them.
type ErrorMapping map[error]*errors.HTTPError

// DateTime renders a time in DateTimeFormat (local time). Nil pointers are
// rendered by callers as absent fields.
type DateTime time.Time

func (d DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(d).Local().Format(DateTimeFormat))
}

// NewDateTimePtr converts an optional time.
func NewDateTimePtr(t *time.Time) *DateTime {
	if t == nil {
		return nil
	}
	d := DateTime(*t)
	return &d
}
