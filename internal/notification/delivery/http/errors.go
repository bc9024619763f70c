package http

import (
	"net/http"

	"sla-srv/internal/notification"
	pkgErrors "sla-srv/pkg/errors"
	"sla-srv/pkg/response"

	"github.com/gin-gonic/gin"
)

var (
	errUnauthorized = pkgErrors.NewUnauthorizedHTTPError()
	errWrongQuery   = pkgErrors.NewHTTPError(130001, "Wrong query", http.StatusBadRequest)
	errWrongParam   = pkgErrors.NewHTTPError(130003, "Wrong param", http.StatusBadRequest)
)

var errorMapping = response.ErrorMapping{
	notification.ErrNotificationNotFound: pkgErrors.NewNotFoundHTTPError(130004, "Notification not found"),
	notification.ErrCannotRetry:          pkgErrors.NewGuardHTTPError(130005, "Notification cannot be retried"),
	notification.ErrCannotCancel:         pkgErrors.NewGuardHTTPError(130006, "Notification cannot be cancelled"),
	notification.ErrNotInApp:             pkgErrors.NewGuardHTTPError(130007, "Only in-app notifications can be read"),
	notification.ErrNotDeliverable:       pkgErrors.NewGuardHTTPError(130008, "Notification was not sent"),
	notification.ErrGuardViolation:       pkgErrors.NewGuardHTTPError(130009, "Notification changed, try again"),
	notification.ErrInvalidInput:         pkgErrors.NewHTTPError(130010, "Invalid notification input", http.StatusBadRequest),
}

func (h Handler) mapError(c *gin.Context, err error) {
	response.ErrorWithMap(c, err, errorMapping, h.d)
}
