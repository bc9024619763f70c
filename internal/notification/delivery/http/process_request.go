package http

import (
	"sla-srv/internal/model"
	"sla-srv/internal/notification"
	postgres "sla-srv/pkg/postgre"
	"sla-srv/pkg/scope"

	"github.com/gin-gonic/gin"
)

func (h Handler) processListRequest(c *gin.Context) (model.Scope, notification.ListInput, error) {
	sc, ok := scope.GetScopeFromContext(c.Request.Context())
	if !ok {
		return model.Scope{}, notification.ListInput{}, errUnauthorized
	}

	var req listReq
	if err := c.ShouldBindQuery(&req); err != nil {
		h.l.Warnf(c.Request.Context(), "internal.notification.delivery.http.processListRequest.ShouldBindQuery: %v", err)
		return model.Scope{}, notification.ListInput{}, errWrongQuery
	}
	if err := req.validate(); err != nil {
		return model.Scope{}, notification.ListInput{}, err
	}

	return sc, req.toInput(sc), nil
}

// processIDRequest reads the scope and the notification id of a
// per-notification route.
func (h Handler) processIDRequest(c *gin.Context) (model.Scope, string, error) {
	sc, ok := scope.GetScopeFromContext(c.Request.Context())
	if !ok {
		return model.Scope{}, "", errUnauthorized
	}

	id := c.Param("id")
	if !postgres.IsValidUUID(id) {
		return model.Scope{}, "", errWrongParam
	}
	return sc, id, nil
}

func (h Handler) processDeliveredRequest(c *gin.Context) (notification.MarkDeliveredInput, error) {
	id := c.Param("id")
	if !postgres.IsValidUUID(id) {
		return notification.MarkDeliveredInput{}, errWrongParam
	}
	return notification.MarkDeliveredInput{ID: id, Now: h.clock()}, nil
}
