package http

import (
	"sla-srv/internal/middleware"

	"github.com/gin-gonic/gin"
)

func (h Handler) RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware) {
	rules := r.Group("/sla-rules", mw.Auth())
	{
		rules.GET("", h.List)
		rules.POST("", h.Create)
		rules.GET("/stats", h.Stats)
		rules.GET("/:id", h.Detail)
		rules.PUT("/:id", h.Update)
		rules.DELETE("/:id", h.Delete)
	}
}
