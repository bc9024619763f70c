package http

import (
	"sla-srv/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the alert routes.
func (h Handler) RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware) {
	alerts := r.Group("/alerts", mw.Auth())
	{
		alerts.GET("", h.List)
		alerts.GET("/stats", h.Stats)
		alerts.GET("/dashboard", h.Dashboard)
		alerts.POST("/bulk", h.BulkUpdate)
		alerts.GET("/:id", h.Detail)
		alerts.POST("/:id/acknowledge", h.Acknowledge)
		alerts.POST("/:id/start", h.StartProgress)
		alerts.POST("/:id/resolve", h.Resolve)
		alerts.POST("/:id/dismiss", h.Dismiss)
		alerts.POST("/:id/escalate", h.Escalate)
	}
}

// RegisterInternalRoutes registers the service-to-service routes.
func (h Handler) RegisterInternalRoutes(r *gin.RouterGroup, mw middleware.Middleware) {
	fb := r.Group("/feedbacks", mw.InternalKey())
	{
		fb.POST("/:id/detect", h.Detect)
	}
}
