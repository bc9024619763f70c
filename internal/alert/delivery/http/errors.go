package http

import (
	"net/http"

	"sla-srv/internal/alert"
	"sla-srv/internal/feedback"
	pkgErrors "sla-srv/pkg/errors"
	"sla-srv/pkg/response"

	"github.com/gin-gonic/gin"
)

var (
	errUnauthorized = pkgErrors.NewUnauthorizedHTTPError()
	errWrongQuery   = pkgErrors.NewHTTPError(120001, "Wrong query", http.StatusBadRequest)
	errWrongBody    = pkgErrors.NewHTTPError(120002, "Wrong body", http.StatusBadRequest)
	errWrongParam   = pkgErrors.NewHTTPError(120003, "Wrong param", http.StatusBadRequest)
)

var errorMapping = response.ErrorMapping{
	alert.ErrAlertNotFound:       pkgErrors.NewNotFoundHTTPError(120004, "Alert not found"),
	alert.ErrCannotAcknowledge:   pkgErrors.NewGuardHTTPError(120005, "Only new alerts can be acknowledged"),
	alert.ErrCannotStart:         pkgErrors.NewGuardHTTPError(120006, "Only acknowledged alerts can be started"),
	alert.ErrAlreadyClosed:       pkgErrors.NewGuardHTTPError(120007, "Alert is already resolved or dismissed"),
	alert.ErrAlreadyEscalated:    pkgErrors.NewGuardHTTPError(120008, "Alert is already escalated"),
	alert.ErrStaleAlert:          pkgErrors.NewGuardHTTPError(120009, "Alert changed concurrently"),
	alert.ErrGuardViolation:      pkgErrors.NewGuardHTTPError(120010, "Alert transition not allowed"),
	alert.ErrInvalidAction:       pkgErrors.NewHTTPError(120011, "Invalid alert action", http.StatusBadRequest),
	alert.ErrInvalidInput:        pkgErrors.NewHTTPError(120012, "Invalid alert input", http.StatusBadRequest),
	feedback.ErrFeedbackNotFound: pkgErrors.NewNotFoundHTTPError(120013, "Feedback not found"),
}

func (h Handler) mapError(c *gin.Context, err error) {
	response.ErrorWithMap(c, err, errorMapping, h.d)
}
