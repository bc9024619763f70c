package http

import (
	"net/http"

	"sla-srv/internal/escalation"
	"sla-srv/internal/feedback"
	"sla-srv/internal/slarule"
	pkgErrors "sla-srv/pkg/errors"
	"sla-srv/pkg/response"

	"github.com/gin-gonic/gin"
)

var (
	errUnauthorized = pkgErrors.NewUnauthorizedHTTPError()
	errWrongQuery   = pkgErrors.NewHTTPError(110001, "Wrong query", http.StatusBadRequest)
	errWrongBody    = pkgErrors.NewHTTPError(110002, "Wrong body", http.StatusBadRequest)
	errWrongParam   = pkgErrors.NewHTTPError(110003, "Wrong param", http.StatusBadRequest)
)

var errorMapping = response.ErrorMapping{
	escalation.ErrEscalationNotFound: pkgErrors.NewNotFoundHTTPError(110004, "Escalation not found"),
	escalation.ErrAlreadyResolved:    pkgErrors.NewGuardHTTPError(110005, "Escalation already resolved"),
	escalation.ErrGuardViolation:     pkgErrors.NewGuardHTTPError(110006, "Escalation transition not allowed"),
	escalation.ErrInvalidReason:      pkgErrors.NewHTTPError(110007, "Invalid trigger reason", http.StatusBadRequest),
	feedback.ErrFeedbackNotFound:     pkgErrors.NewNotFoundHTTPError(110008, "Feedback not found"),
	feedback.ErrFeedbackClosed:       pkgErrors.NewGuardHTTPError(110009, "Feedback is not open"),
	slarule.ErrNoApplicableRule:      pkgErrors.NewNotFoundHTTPError(110010, "No SLA rule applies"),
}

func (h Handler) mapError(c *gin.Context, err error) {
	response.ErrorWithMap(c, err, errorMapping, h.d)
}
