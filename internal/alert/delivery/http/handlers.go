package http

import (
	"context"

	"sla-srv/internal/alert"
	"sla-srv/internal/model"
	"sla-srv/pkg/response"

	"github.com/gin-gonic/gin"
)

// List godoc
// @Summary List alerts
// @Description Alerts of the caller's company, newest first
// @Tags Alerts
// @Security Bearer
// @Param status query []string false "Statuses (repeated or comma separated)"
// @Param severity query []string false "Severities (repeated or comma separated)"
// @Param feedback_id query string false "Feedback ID"
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} response.Resp{data=listResp}
// @Failure 400 {object} response.Resp
// @Failure 401 {object} response.Resp
// @Router /alerts [GET]
func (h Handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ip, err := h.processListRequest(c)
	if err != nil {
		h.mapError(c, err)
		return
	}

	out, err := h.uc.List(ctx, sc, ip)
	if err != nil {
		h.l.Errorf(ctx, "internal.alert.delivery.http.List.List: %v", err)
		h.mapError(c, err)
		return
	}

	response.OK(c, newListResp(out))
}

// Detail godoc
// @Summary Get an alert
// @Tags Alerts
// @Security Bearer
// @Param id path string true "Alert ID"
// @Success 200 {object} response.Resp{data=alertResp}
// @Failure 404 {object} response.Resp
// @Router /alerts/{id} [GET]
func (h Handler) Detail(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ip, err := h.processDetailRequest(c)
	if err != nil {
		h.mapError(c, err)
		return
	}

	a, err := h.uc.Detail(ctx, sc, ip)
	if err != nil {
		h.l.Warnf(ctx, "internal.alert.delivery.http.Detail.Detail: %v", err)
		h.mapError(c, err)
		return
	}

	response.OK(c, newAlertResp(a))
}

// Stats godoc
// @Summary Alert counts
// @Description Totals by status and severity
// @Tags Alerts
// @Security Bearer
// @Success 200 {object} response.Resp{data=statsResp}
// @Router /alerts/stats [GET]
func (h Handler) Stats(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ip, err := h.processStatsRequest(c)
	if err != nil {
		h.mapError(c, err)
		return
	}

	stats, err := h.uc.Stats(ctx, sc, ip)
	if err != nil {
		h.l.Errorf(ctx, "internal.alert.delivery.http.Stats.Stats: %v", err)
		h.mapError(c, err)
		return
	}

	response.OK(c, newStatsResp(stats))
}

// Dashboard godoc
// @Summary Alert dashboard
// @Description Stats, open critical alerts and mean time to acknowledge
// @Tags Alerts
// @Security Bearer
// @Param recent_limit query int false "Number of recent critical alerts"
// @Success 200 {object} response.Resp{data=dashboardResp}
// @Router /alerts/dashboard [GET]
func (h Handler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ip, err := h.processDashboardRequest(c)
	if err != nil {
		h.mapError(c, err)
		return
	}

	d, err := h.uc.Dashboard(ctx, sc, ip)
	if err != nil {
		h.l.Errorf(ctx, "internal.alert.delivery.http.Dashboard.Dashboard: %v", err)
		h.mapError(c, err)
		return
	}

	response.OK(c, newDashboardResp(d))
}

type transitionFunc func(ctx context.Context, sc model.Scope, ip alert.TransitionInput) (model.Alert, error)

func (h Handler) transition(c *gin.Context, name string, fn transitionFunc) {
	ctx := c.Request.Context()

	sc, ip, err := h.processTransitionRequest(c)
	if err != nil {
		h.mapError(c, err)
		return
	}

	a, err := fn(ctx, sc, ip)
	if err != nil {
		h.l.Warnf(ctx, "internal.alert.delivery.http.%s: %v", name, err)
		h.mapError(c, err)
		return
	}

	response.OK(c, newAlertResp(a))
}

// Acknowledge godoc
// @Summary Acknowledge a new alert
// @Tags Alerts
// @Security Bearer
// @Param id path string true "Alert ID"
// @Success 200 {object} response.Resp{data=alertResp}
// @Failure 404 {object} response.Resp
// @Failure 422 {object} response.Resp
// @Router /alerts/{id}/acknowledge [POST]
func (h Handler) Acknowledge(c *gin.Context) {
	h.transition(c, "Acknowledge", h.uc.Acknowledge)
}

// StartProgress godoc
// @Summary Start work on an acknowledged alert
// @Tags Alerts
// @Security Bearer
// @Param id path string true "Alert ID"
// @Success 200 {object} response.Resp{data=alertResp}
// @Failure 422 {object} response.Resp
// @Router /alerts/{id}/start [POST]
func (h Handler) StartProgress(c *gin.Context) {
	h.transition(c, "StartProgress", h.uc.StartProgress)
}

// Resolve godoc
// @Summary Resolve an alert
// @Tags Alerts
// @Security Bearer
// @Param id path string true "Alert ID"
// @Param body body transitionReq false "Resolution notes"
// @Success 200 {object} response.Resp{data=alertResp}
// @Failure 422 {object} response.Resp
// @Router /alerts/{id}/resolve [POST]
func (h Handler) Resolve(c *gin.Context) {
	h.transition(c, "Resolve", h.uc.Resolve)
}

// Dismiss godoc
// @Summary Dismiss an alert
// @Tags Alerts
// @Security Bearer
// @Param id path string true "Alert ID"
// @Param body body transitionReq false "Notes"
// @Success 200 {object} response.Resp{data=alertResp}
// @Failure 422 {object} response.Resp
// @Router /alerts/{id}/dismiss [POST]
func (h Handler) Dismiss(c *gin.Context) {
	h.transition(c, "Dismiss", h.uc.Dismiss)
}

// Escalate godoc
// @Summary Escalate an alert
// @Description Flags the alert and opens a manual escalation of its feedback
// @Tags Alerts
// @Security Bearer
// @Param id path string true "Alert ID"
// @Success 200 {object} response.Resp{data=alertResp}
// @Failure 422 {object} response.Resp
// @Router /alerts/{id}/escalate [POST]
func (h Handler) Escalate(c *gin.Context) {
	h.transition(c, "Escalate", h.uc.Escalate)
}

// BulkUpdate godoc
// @Summary Apply one action to many alerts
// @Description Alerts that are missing or whose transition is not allowed are skipped
// @Tags Alerts
// @Security Bearer
// @Param body body bulkReq true "Alert ids and action"
// @Success 200 {object} response.Resp{data=alert.BulkUpdateOutput}
// @Failure 400 {object} response.Resp
// @Router /alerts/bulk [POST]
func (h Handler) BulkUpdate(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ip, err := h.processBulkRequest(c)
	if err != nil {
		h.mapError(c, err)
		return
	}

	out, err := h.uc.BulkUpdate(ctx, sc, ip)
	if err != nil {
		h.l.Errorf(ctx, "internal.alert.delivery.http.BulkUpdate.BulkUpdate: %v", err)
		h.mapError(c, err)
		return
	}

	response.OK(c, out)
}

// Detect godoc
// @Summary Classify a created feedback
// @Description Opens an alert when the feedback reaches the detection threshold
// @Tags Internal
// @Param X-Internal-Key header string true "Internal key"
// @Param id path string true "Feedback ID"
// @Success 200 {object} response.Resp{data=detectResp}
// @Failure 404 {object} response.Resp
// @Router /internal/api/v1/feedbacks/{id}/detect [POST]
func (h Handler) Detect(c *gin.Context) {
	ctx := c.Request.Context()

	ip, err := h.processDetectRequest(c)
	if err != nil {
		h.mapError(c, err)
		return
	}

	out, err := h.uc.Detect(ctx, ip)
	if err != nil {
		h.l.Warnf(ctx, "internal.alert.delivery.http.Detect.Detect: %v", err)
		h.mapError(c, err)
		return
	}

	response.OK(c, newDetectResp(out))
}
