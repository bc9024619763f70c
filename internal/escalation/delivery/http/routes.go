package http

import (
	"sla-srv/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the escalation routes under the rule prefix.
func (h Handler) RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware) {
	esc := r.Group("/sla-rules/escalations", mw.Auth())
	{
		esc.GET("", h.List)
		esc.POST("/:id/resolve", h.Resolve)
	}
}

// RegisterInternalRoutes registers the service-to-service routes.
func (h Handler) RegisterInternalRoutes(r *gin.RouterGroup, mw middleware.Middleware) {
	esc := r.Group("/escalations", mw.InternalKey())
	{
		esc.POST("/recheck", h.Recheck)
	}
}
