package http

import (
	"sla-srv/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the caller-facing notification routes.
func (h Handler) RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware) {
	noti := r.Group("/notifications", mw.Auth())
	{
		noti.GET("", h.List)
		noti.POST("/:id/read", h.MarkAsRead)
		noti.POST("/:id/retry", h.Retry)
		noti.POST("/:id/cancel", h.Cancel)
	}
}

// RegisterInternalRoutes registers the provider receipt route.
func (h Handler) RegisterInternalRoutes(r *gin.RouterGroup, mw middleware.Middleware) {
	noti := r.Group("/notifications", mw.InternalKey())
	{
		noti.POST("/:id/delivered", h.MarkDelivered)
	}
}
