package http

import (
	"sla-srv/internal/escalation"
	"sla-srv/internal/model"
	"sla-srv/internal/slarule"
	"sla-srv/pkg/response"

	"github.com/gin-gonic/gin"
)

// List godoc
// @Summary List SLA rules
// @Description Rules of the caller's company plus the global rules
// @Tags SLA
// @Security Bearer
// @Param company_id query string false "Company ID"
// @Param feedback_type_id query string false "Feedback type ID"
// @Param is_active query bool false "Active flag"
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} response.Resp{data=listResp}
// @Failure 400 {object} response.Resp
// @Failure 401 {object} response.Resp
// @Router /sla-rules [GET]
func (h Handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ip, err := h.processListRequest(c)
	if err != nil {
		h.mapError(c, err)
		return
	}

	out, err := h.uc.List(ctx, sc, ip)
	if err != nil {
		h.l.Errorf(ctx, "internal.slarule.delivery.http.List.List: %v", err)
		h.mapError(c, err)
		return
	}

	response.OK(c, newListResp(out))
}

// Create godoc
// @Summary Create an SLA rule
// @Tags SLA
// @Security Bearer
// @Param body body ruleReq true "Rule"
// @Success 201 {object} response.Resp{data=ruleResp}
// @Failure 400 {object} response.Resp
// @Failure 403 {object} response.Resp
// @Router /sla-rules [POST]
func (h Handler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ip, err := h.processCreateRequest(c)
	if err != nil {
		h.mapError(c, err)
		return
	}

	rule, err := h.uc.Create(ctx, sc, ip)
	if err != nil {
		h.l.Warnf(ctx, "internal.slarule.delivery.http.Create.Create: %v", err)
		h.mapError(c, err)
		return
	}

	response.Created(c, newRuleResp(rule))
}

// Detail godoc
// @Summary Show an SLA rule
// @Tags SLA
// @Security Bearer
// @Param id path string true "Rule ID"
// @Success 200 {object} response.Resp{data=ruleResp}
// @Failure 404 {object} response.Resp
// @Router /sla-rules/{id} [GET]
func (h Handler) Detail(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ip, err := h.processDetailRequest(c)
	if err != nil {
		h.mapError(c, err)
		return
	}

	rule, err := h.uc.Detail(ctx, sc, ip)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.OK(c, newRuleResp(rule))
}

// Update godoc
// @Summary Replace an SLA rule
// @Tags SLA
// @Security Bearer
// @Param id path string true "Rule ID"
// @Param body body ruleReq true "Rule"
// @Success 200 {object} response.Resp{data=ruleResp}
// @Failure 400 {object} response.Resp
// @Failure 403 {object} response.Resp
// @Failure 404 {object} response.Resp
// @Router /sla-rules/{id} [PUT]
func (h Handler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ip, err := h.processUpdateRequest(c)
	if err != nil {
		h.mapError(c, err)
		return
	}

	rule, err := h.uc.Update(ctx, sc, ip)
	if err != nil {
		h.l.Warnf(ctx, "internal.slarule.delivery.http.Update.Update: %v", err)
		h.mapError(c, err)
		return
	}

	response.OK(c, newRuleResp(rule))
}

// Delete godoc
// @Summary Delete an SLA rule
// @Tags SLA
// @Security Bearer
// @Param id path string true "Rule ID"
// @Success 200 {object} response.Resp
// @Failure 403 {object} response.Resp
// @Failure 404 {object} response.Resp
// @Router /sla-rules/{id} [DELETE]
func (h Handler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ip, err := h.processDeleteRequest(c)
	if err != nil {
		h.mapError(c, err)
		return
	}

	if err := h.uc.Delete(ctx, sc, ip); err != nil {
		h.l.Warnf(ctx, "internal.slarule.delivery.http.Delete.Delete: %v", err)
		h.mapError(c, err)
		return
	}

	response.OK(c, nil)
}

// Stats godoc
// @Summary SLA statistics
// @Description Rule counts and escalation counts per level
// @Tags SLA
// @Security Bearer
// @Success 200 {object} response.Resp{data=statsResp}
// @Router /sla-rules/stats [GET]
func (h Handler) Stats(c *gin.Context) {
	ctx := c.Request.Context()

	sc, err := h.callerScope(c)
	if err != nil {
		h.mapError(c, err)
		return
	}
	tenant := model.TenantFilterFor(sc)

	rules, err := h.uc.Stats(ctx, sc, slarule.StatsInput{Tenant: tenant})
	if err != nil {
		h.l.Errorf(ctx, "internal.slarule.delivery.http.Stats.Stats: %v", err)
		h.mapError(c, err)
		return
	}
	escs, err := h.escUC.Stats(ctx, sc, escalation.StatsInput{Tenant: tenant})
	if err != nil {
		h.l.Errorf(ctx, "internal.slarule.delivery.http.Stats.EscalationStats: %v", err)
		h.mapError(c, err)
		return
	}

	response.OK(c, statsResp{Rules: rules, Escalations: escs})
}
