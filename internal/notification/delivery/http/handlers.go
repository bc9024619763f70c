package http

import (
	"sla-srv/internal/model"
	"sla-srv/internal/notification"
	"sla-srv/pkg/response"

	"github.com/gin-gonic/gin"
)

// List godoc
// @Summary List my notifications
// @Description Notifications addressed to the caller, newest first, with the unread in-app count
// @Tags Notifications
// @Security Bearer
// @Param channel query string false "Channel" Enums(email, sms, push, in_app, webhook)
// @Param unread_only query bool false "Only unread notifications"
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} response.Resp{data=listResp}
// @Failure 400 {object} response.Resp
// @Failure 401 {object} response.Resp
// @Router /notifications [GET]
func (h Handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ip, err := h.processListRequest(c)
	if err != nil {
		h.mapError(c, err)
		return
	}

	out, err := h.uc.List(ctx, sc, ip)
	if err != nil {
		h.l.Errorf(ctx, "internal.notification.delivery.http.List.List: %v", err)
		h.mapError(c, err)
		return
	}

	response.OK(c, newListResp(out))
}

// MarkAsRead godoc
// @Summary Mark an in-app notification as read
// @Tags Notifications
// @Security Bearer
// @Param id path string true "Notification ID"
// @Success 200 {object} response.Resp{data=notificationResp}
// @Failure 404 {object} response.Resp
// @Failure 422 {object} response.Resp
// @Router /notifications/{id}/read [POST]
func (h Handler) MarkAsRead(c *gin.Context) {
	ctx := c.Request.Context()

	sc, id, err := h.processIDRequest(c)
	if err != nil {
		h.mapError(c, err)
		return
	}

	n, err := h.uc.MarkAsRead(ctx, sc, notification.MarkAsReadInput{ID: id, Now: h.clock()})
	if err != nil {
		h.l.Warnf(ctx, "internal.notification.delivery.http.MarkAsRead.MarkAsRead: %v", err)
		h.mapError(c, err)
		return
	}

	response.OK(c, newNotificationResp(n))
}

// Retry godoc
// @Summary Retry a failed notification
// @Description Allowed while the notification has failed fewer than three times
// @Tags Notifications
// @Security Bearer
// @Param id path string true "Notification ID"
// @Success 200 {object} response.Resp{data=notificationResp}
// @Failure 404 {object} response.Resp
// @Failure 422 {object} response.Resp
// @Router /notifications/{id}/retry [POST]
func (h Handler) Retry(c *gin.Context) {
	ctx := c.Request.Context()

	sc, id, err := h.processIDRequest(c)
	if err != nil {
		h.mapError(c, err)
		return
	}

	n, err := h.uc.Retry(ctx, sc, notification.RetryInput{ID: id, Tenant: model.TenantFilterFor(sc)})
	if err != nil {
		h.l.Warnf(ctx, "internal.notification.delivery.http.Retry.Retry: %v", err)
		h.mapError(c, err)
		return
	}

	response.OK(c, newNotificationResp(n))
}

// Cancel godoc
// @Summary Cancel a scheduled notification
// @Tags Notifications
// @Security Bearer
// @Param id path string true "Notification ID"
// @Success 200 {object} response.Resp{data=notificationResp}
// @Failure 404 {object} response.Resp
// @Failure 422 {object} response.Resp
// @Router /notifications/{id}/cancel [POST]
func (h Handler) Cancel(c *gin.Context) {
	ctx := c.Request.Context()

	sc, id, err := h.processIDRequest(c)
	if err != nil {
		h.mapError(c, err)
		return
	}

	n, err := h.uc.Cancel(ctx, sc, notification.CancelInput{
		ID:     id,
		Tenant: model.TenantFilterFor(sc),
		Now:    h.clock(),
	})
	if err != nil {
		h.l.Warnf(ctx, "internal.notification.delivery.http.Cancel.Cancel: %v", err)
		h.mapError(c, err)
		return
	}

	response.OK(c, newNotificationResp(n))
}

// MarkDelivered godoc
// @Summary Record a provider delivery receipt
// @Tags Internal
// @Param X-Internal-Key header string true "Internal key"
// @Param id path string true "Notification ID"
// @Success 200 {object} response.Resp{data=notificationResp}
// @Failure 404 {object} response.Resp
// @Failure 422 {object} response.Resp
// @Router /internal/api/v1/notifications/{id}/delivered [POST]
func (h Handler) MarkDelivered(c *gin.Context) {
	ctx := c.Request.Context()

	ip, err := h.processDeliveredRequest(c)
	if err != nil {
		h.mapError(c, err)
		return
	}

	n, err := h.uc.MarkDelivered(ctx, ip)
	if err != nil {
		h.l.Warnf(ctx, "internal.notification.delivery.http.MarkDelivered.MarkDelivered: %v", err)
		h.mapError(c, err)
		return
	}

	response.OK(c, newNotificationResp(n))
}
