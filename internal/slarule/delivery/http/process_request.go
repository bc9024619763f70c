package http

import (
	"sla-srv/internal/model"
	"sla-srv/internal/slarule"
	postgres "sla-srv/pkg/postgre"
	"sla-srv/pkg/scope"

	"github.com/gin-gonic/gin"
)

func (h Handler) callerScope(c *gin.Context) (model.Scope, error) {
	sc, ok := scope.GetScopeFromContext(c.Request.Context())
	if !ok {
		return model.Scope{}, errUnauthorized
	}
	return sc, nil
}

// manager returns the scope of a caller allowed to change rules.
func (h Handler) manager(c *gin.Context) (model.Scope, error) {
	sc, err := h.callerScope(c)
	if err != nil {
		return model.Scope{}, err
	}
	if !sc.CanManageRules() {
		return model.Scope{}, errForbidden
	}
	return sc, nil
}

func (h Handler) pathID(c *gin.Context) (string, error) {
	id := c.Param("id")
	if !postgres.IsValidUUID(id) {
		return "", errWrongParam
	}
	return id, nil
}

// processListRequest lists the caller's rules together with the global ones.
// A company_id query narrows the listing when the caller may see it.
func (h Handler) processListRequest(c *gin.Context) (model.Scope, slarule.ListInput, error) {
	sc, err := h.callerScope(c)
	if err != nil {
		return model.Scope{}, slarule.ListInput{}, err
	}

	var req listReq
	if err := c.ShouldBindQuery(&req); err != nil {
		h.l.Warnf(c.Request.Context(), "internal.slarule.delivery.http.processListRequest.ShouldBindQuery: %v", err)
		return model.Scope{}, slarule.ListInput{}, errWrongQuery
	}
	if err := req.validate(); err != nil {
		return model.Scope{}, slarule.ListInput{}, err
	}

	tenant := model.TenantFilterFor(sc)
	if len(tenant.CompanyIDs) > 0 {
		tenant.CompanyIDs = append(tenant.CompanyIDs, model.GlobalCompanyID)
	}
	if req.CompanyID != "" {
		if !tenant.Allows(req.CompanyID) {
			return model.Scope{}, slarule.ListInput{}, slarule.ErrCompanyNotAllowed
		}
		tenant.CompanyIDs = []string{req.CompanyID}
	}

	return sc, req.toInput(tenant), nil
}

func (h Handler) processCreateRequest(c *gin.Context) (model.Scope, slarule.CreateInput, error) {
	sc, err := h.manager(c)
	if err != nil {
		return model.Scope{}, slarule.CreateInput{}, err
	}

	var req ruleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(c.Request.Context(), "internal.slarule.delivery.http.processCreateRequest.ShouldBindJSON: %v", err)
		return model.Scope{}, slarule.CreateInput{}, errWrongBody
	}

	return sc, slarule.CreateInput{
		Rule:   req.toInput(sc),
		Tenant: model.TenantFilterFor(sc),
	}, nil
}

func (h Handler) processDetailRequest(c *gin.Context) (model.Scope, slarule.DetailInput, error) {
	sc, err := h.callerScope(c)
	if err != nil {
		return model.Scope{}, slarule.DetailInput{}, err
	}
	id, err := h.pathID(c)
	if err != nil {
		return model.Scope{}, slarule.DetailInput{}, err
	}
	return sc, slarule.DetailInput{ID: id, Tenant: model.TenantFilterFor(sc)}, nil
}

func (h Handler) processUpdateRequest(c *gin.Context) (model.Scope, slarule.UpdateInput, error) {
	sc, err := h.manager(c)
	if err != nil {
		return model.Scope{}, slarule.UpdateInput{}, err
	}
	id, err := h.pathID(c)
	if err != nil {
		return model.Scope{}, slarule.UpdateInput{}, err
	}

	var req ruleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(c.Request.Context(), "internal.slarule.delivery.http.processUpdateRequest.ShouldBindJSON: %v", err)
		return model.Scope{}, slarule.UpdateInput{}, errWrongBody
	}

	return sc, slarule.UpdateInput{
		ID:     id,
		Rule:   req.toInput(sc),
		Tenant: model.TenantFilterFor(sc),
	}, nil
}

func (h Handler) processDeleteRequest(c *gin.Context) (model.Scope, slarule.DeleteInput, error) {
	sc, err := h.manager(c)
	if err != nil {
		return model.Scope{}, slarule.DeleteInput{}, err
	}
	id, err := h.pathID(c)
	if err != nil {
		return model.Scope{}, slarule.DeleteInput{}, err
	}
	return sc, slarule.DeleteInput{ID: id, Tenant: model.TenantFilterFor(sc)}, nil
}
