package errors

import "net/http"

// HTTPError represents an HTTP error with an application code, message and status code.
type HTTPError struct {
	Code       int
	Message    string
	StatusCode int
}

// NewHTTPError returns a new HTTPError with the given code, message, and status code.
// If statusCode is 0, it defaults to http.StatusBadRequest.
func NewHTTPError(code int, message string, statusCode int) *HTTPError {
	if statusCode == 0 {
		statusCode = http.StatusBadRequest
	}
	return &HTTPError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// NewNotFoundHTTPError returns a 404 error carrying the given code and message.
func NewNotFoundHTTPError(code int, message string) *HTTPError {
	return NewHTTPError(code, message, StatusNotFound)
}

// NewGuardHTTPError returns a 422 error for a rejected state transition.
func NewGuardHTTPError(code int, message string) *HTTPError {
	return NewHTTPError(code, message, StatusUnprocessable)
}

// NewUnauthorizedHTTPError returns a new unauthorized HTTP error.
func NewUnauthorizedHTTPError() *HTTPError {
	return &HTTPError{
		Code:       401,
		Message:    MessageUnauthorized,
		StatusCode: StatusUnauthorized,
	}
}

// NewForbiddenHTTPError returns a new forbidden HTTP error.
func NewForbiddenHTTPError() *HTTPError {
	return &HTTPError{
		Code:       403,
		Message:    MessageForbidden,
		StatusCode: StatusForbidden,
	}
}

// Error returns the error message.
func (e *HTTPError) Error() string {
	return e.Message
}
