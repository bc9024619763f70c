package middleware

import (
	"sla-srv/pkg/discord"
	"sla-srv/pkg/log"
	"sla-srv/pkg/response"

	"github.com/gin-gonic/gin"
)

// Recovery turns a handler panic into a 500 response and a Discord report.
func Recovery(l log.Logger, d discord.IDiscord) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				l.Errorf(c.Request.Context(), "Panic recovered: %v | Method: %s | Path: %s",
					err, c.Request.Method, c.Request.URL.Path)

				response.PanicError(c, err, d)
				c.Abort()
			}
		}()
		c.Next()
	}
}
