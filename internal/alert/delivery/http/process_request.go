package http

import (
	"sla-srv/internal/alert"
	"sla-srv/internal/model"
	postgres "sla-srv/pkg/postgre"
	"sla-srv/pkg/scope"

	"github.com/gin-gonic/gin"
)

func (h Handler) processListRequest(c *gin.Context) (model.Scope, alert.ListInput, error) {
	sc, ok := scope.GetScopeFromContext(c.Request.Context())
	if !ok {
		return model.Scope{}, alert.ListInput{}, errUnauthorized
	}

	var req listReq
	if err := c.ShouldBindQuery(&req); err != nil {
		h.l.Warnf(c.Request.Context(), "internal.alert.delivery.http.processListRequest.ShouldBindQuery: %v", err)
		return model.Scope{}, alert.ListInput{}, errWrongQuery
	}
	if err := req.validate(); err != nil {
		return model.Scope{}, alert.ListInput{}, err
	}

	return sc, req.toInput(model.TenantFilterFor(sc)), nil
}

func (h Handler) processDetailRequest(c *gin.Context) (model.Scope, alert.DetailInput, error) {
	sc, ok := scope.GetScopeFromContext(c.Request.Context())
	if !ok {
		return model.Scope{}, alert.DetailInput{}, errUnauthorized
	}

	id := c.Param("id")
	if !postgres.IsValidUUID(id) {
		return model.Scope{}, alert.DetailInput{}, errWrongParam
	}

	return sc, alert.DetailInput{ID: id, Tenant: model.TenantFilterFor(sc)}, nil
}

func (h Handler) processStatsRequest(c *gin.Context) (model.Scope, alert.StatsInput, error) {
	sc, ok := scope.GetScopeFromContext(c.Request.Context())
	if !ok {
		return model.Scope{}, alert.StatsInput{}, errUnauthorized
	}
	return sc, alert.StatsInput{Tenant: model.TenantFilterFor(sc)}, nil
}

func (h Handler) processDashboardRequest(c *gin.Context) (model.Scope, alert.DashboardInput, error) {
	sc, ok := scope.GetScopeFromContext(c.Request.Context())
	if !ok {
		return model.Scope{}, alert.DashboardInput{}, errUnauthorized
	}

	var req dashboardReq
	if err := c.ShouldBindQuery(&req); err != nil || req.RecentLimit < 0 {
		h.l.Warnf(c.Request.Context(), "internal.alert.delivery.http.processDashboardRequest.ShouldBindQuery: %v", err)
		return model.Scope{}, alert.DashboardInput{}, errWrongQuery
	}

	return sc, alert.DashboardInput{
		Tenant:      model.TenantFilterFor(sc),
		RecentLimit: req.RecentLimit,
	}, nil
}

func (h Handler) processTransitionRequest(c *gin.Context) (model.Scope, alert.TransitionInput, error) {
	sc, ok := scope.GetScopeFromContext(c.Request.Context())
	if !ok {
		return model.Scope{}, alert.TransitionInput{}, errUnauthorized
	}

	id := c.Param("id")
	if !postgres.IsValidUUID(id) {
		return model.Scope{}, alert.TransitionInput{}, errWrongParam
	}

	var req transitionReq
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.l.Warnf(c.Request.Context(), "internal.alert.delivery.http.processTransitionRequest.ShouldBindJSON: %v", err)
			return model.Scope{}, alert.TransitionInput{}, errWrongBody
		}
	}

	return sc, alert.TransitionInput{
		ID:     id,
		Notes:  req.Notes,
		Tenant: model.TenantFilterFor(sc),
		Now:    h.clock(),
	}, nil
}

func (h Handler) processBulkRequest(c *gin.Context) (model.Scope, alert.BulkUpdateInput, error) {
	sc, ok := scope.GetScopeFromContext(c.Request.Context())
	if !ok {
		return model.Scope{}, alert.BulkUpdateInput{}, errUnauthorized
	}

	var req bulkReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(c.Request.Context(), "internal.alert.delivery.http.processBulkRequest.ShouldBindJSON: %v", err)
		return model.Scope{}, alert.BulkUpdateInput{}, errWrongBody
	}
	if err := req.validate(); err != nil {
		return model.Scope{}, alert.BulkUpdateInput{}, err
	}

	return sc, alert.BulkUpdateInput{
		IDs:    req.AlertIDs,
		Action: alert.Action(req.Action),
		Notes:  req.Notes,
		Tenant: model.TenantFilterFor(sc),
		Now:    h.clock(),
	}, nil
}

func (h Handler) processDetectRequest(c *gin.Context) (alert.DetectInput, error) {
	id := c.Param("id")
	if !postgres.IsValidUUID(id) {
		return alert.DetectInput{}, errWrongParam
	}
	return alert.DetectInput{FeedbackID: id, Now: h.clock()}, nil
}
