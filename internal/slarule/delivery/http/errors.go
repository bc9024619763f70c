package http

import (
	"net/http"

	"sla-srv/internal/slarule"
	pkgErrors "sla-srv/pkg/errors"
	"sla-srv/pkg/response"

	"github.com/gin-gonic/gin"
)

var (
	errUnauthorized = pkgErrors.NewUnauthorizedHTTPError()
	errForbidden    = pkgErrors.NewForbiddenHTTPError()
	errWrongQuery   = pkgErrors.NewHTTPError(100001, "Wrong query", http.StatusBadRequest)
	errWrongBody    = pkgErrors.NewHTTPError(100002, "Wrong body", http.StatusBadRequest)
	errWrongParam   = pkgErrors.NewHTTPError(100003, "Wrong param", http.StatusBadRequest)
)

var errorMapping = response.ErrorMapping{
	slarule.ErrRuleNotFound:       pkgErrors.NewNotFoundHTTPError(100004, "SLA rule not found"),
	slarule.ErrNoApplicableRule:   pkgErrors.NewNotFoundHTTPError(100005, "No SLA rule applies"),
	slarule.ErrInvalidInput:       pkgErrors.NewHTTPError(100006, "Invalid SLA rule", http.StatusBadRequest),
	slarule.ErrGlobalRuleReadOnly: pkgErrors.NewHTTPError(100007, "Global SLA rules are read-only", http.StatusForbidden),
	slarule.ErrCompanyNotAllowed:  pkgErrors.NewHTTPError(100008, "Company is not accessible", http.StatusForbidden),
}

func (h Handler) mapError(c *gin.Context, err error) {
	response.ErrorWithMap(c, err, errorMapping, h.d)
}
