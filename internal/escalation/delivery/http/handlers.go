package http

import (
	"sla-srv/pkg/response"

	"github.com/gin-gonic/gin"
)

// List godoc
// @Summary List escalations
// @Description Escalations of the caller's company, newest first
// @Tags SLA
// @Security Bearer
// @Param feedback_id query string false "Feedback ID"
// @Param level query int false "Escalation level (1-3)"
// @Param is_resolved query bool false "Resolution state"
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} response.Resp{data=listResp}
// @Failure 400 {object} response.Resp
// @Failure 401 {object} response.Resp
// @Router /sla-rules/escalations [GET]
func (h Handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ip, err := h.processListRequest(c)
	if err != nil {
		h.mapError(c, err)
		return
	}

	out, err := h.uc.List(ctx, sc, ip)
	if err != nil {
		h.l.Errorf(ctx, "internal.escalation.delivery.http.List.List: %v", err)
		h.mapError(c, err)
		return
	}

	response.OK(c, newListResp(out))
}

// Resolve godoc
// @Summary Resolve an escalation
// @Tags SLA
// @Security Bearer
// @Param id path string true "Escalation ID"
// @Param body body resolveReq false "Resolution notes"
// @Success 200 {object} response.Resp{data=escalationResp}
// @Failure 404 {object} response.Resp
// @Failure 422 {object} response.Resp
// @Router /sla-rules/escalations/{id}/resolve [POST]
func (h Handler) Resolve(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ip, err := h.processResolveRequest(c)
	if err != nil {
		h.mapError(c, err)
		return
	}

	esc, err := h.uc.Resolve(ctx, sc, ip)
	if err != nil {
		h.l.Warnf(ctx, "internal.escalation.delivery.http.Resolve.Resolve: %v", err)
		h.mapError(c, err)
		return
	}

	response.OK(c, newEscalationResp(esc))
}

// Recheck godoc
// @Summary Re-evaluate SLA escalations
// @Description Evaluates one feedback, or runs a full scan when feedback_id is empty
// @Tags Internal
// @Param X-Internal-Key header string true "Internal key"
// @Param body body recheckReq false "Feedback to evaluate"
// @Success 200 {object} response.Resp{data=recheckResp}
// @Failure 404 {object} response.Resp
// @Router /internal/api/v1/escalations/recheck [POST]
func (h Handler) Recheck(c *gin.Context) {
	ctx := c.Request.Context()

	ip, err := h.processRecheckRequest(c)
	if err != nil {
		h.mapError(c, err)
		return
	}

	out, err := h.uc.Recheck(ctx, ip)
	if err != nil {
		h.l.Warnf(ctx, "internal.escalation.delivery.http.Recheck.Recheck: %v", err)
		h.mapError(c, err)
		return
	}

	response.OK(c, newRecheckResp(out))
}
