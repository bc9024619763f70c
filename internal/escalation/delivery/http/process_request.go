package http

import (
	"sla-srv/internal/escalation"
	"sla-srv/internal/model"
	postgres "sla-srv/pkg/postgre"
	"sla-srv/pkg/scope"

	"github.com/gin-gonic/gin"
)

func (h Handler) processListRequest(c *gin.Context) (model.Scope, escalation.ListInput, error) {
	sc, ok := scope.GetScopeFromContext(c.Request.Context())
	if !ok {
		return model.Scope{}, escalation.ListInput{}, errUnauthorized
	}

	var req listReq
	if err := c.ShouldBindQuery(&req); err != nil {
		h.l.Warnf(c.Request.Context(), "internal.escalation.delivery.http.processListRequest.ShouldBindQuery: %v", err)
		return model.Scope{}, escalation.ListInput{}, errWrongQuery
	}
	if err := req.validate(); err != nil {
		return model.Scope{}, escalation.ListInput{}, err
	}

	return sc, req.toInput(model.TenantFilterFor(sc)), nil
}

func (h Handler) processResolveRequest(c *gin.Context) (model.Scope, escalation.ResolveInput, error) {
	sc, ok := scope.GetScopeFromContext(c.Request.Context())
	if !ok {
		return model.Scope{}, escalation.ResolveInput{}, errUnauthorized
	}

	id := c.Param("id")
	if !postgres.IsValidUUID(id) {
		return model.Scope{}, escalation.ResolveInput{}, errWrongParam
	}

	var req resolveReq
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.l.Warnf(c.Request.Context(), "internal.escalation.delivery.http.processResolveRequest.ShouldBindJSON: %v", err)
			return model.Scope{}, escalation.ResolveInput{}, errWrongBody
		}
	}

	return sc, escalation.ResolveInput{
		ID:     id,
		Notes:  req.Notes,
		Tenant: model.TenantFilterFor(sc),
		Now:    h.clock(),
	}, nil
}

func (h Handler) processRecheckRequest(c *gin.Context) (escalation.RecheckInput, error) {
	var req recheckReq
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.l.Warnf(c.Request.Context(), "internal.escalation.delivery.http.processRecheckRequest.ShouldBindJSON: %v", err)
			return escalation.RecheckInput{}, errWrongBody
		}
	}
	if err := req.validate(); err != nil {
		return escalation.RecheckInput{}, err
	}

	return escalation.RecheckInput{FeedbackID: req.FeedbackID, Now: h.clock()}, nil
}
