package errors

import "net/http"

const (
	StatusUnauthorized  = http.StatusUnauthorized
	StatusForbidden     = http.StatusForbidden
	StatusNotFound      = http.StatusNotFound
	StatusUnprocessable = http.StatusUnprocessableEntity
)

const (
	MessageUnauthorized = "Unauthorized"
	MessageForbidden    = "Forbidden"
)
