package middleware

import (
	"crypto/subtle"
	"strings"
	"time"

	"sla-srv/pkg/log"
	"sla-srv/pkg/postgre"
	"sla-srv/pkg/response"
	"sla-srv/pkg/scope"

	"github.com/gin-gonic/gin"
)

const (
	bearerPrefix      = "Bearer "
	internalKeyHeader = "X-Internal-Key"
	requestIDHeader   = "X-Request-ID"
)

// Auth returns a middleware that validates JWT tokens and sets the payload
// and the derived scope in context.
func (m Middleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			m.l.Warnf(c.Request.Context(), "Missing Authorization header | Path: %s", c.Request.URL.Path)
			response.Unauthorized(c)
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, bearerPrefix) {
			m.l.Warnf(c.Request.Context(), "Invalid Authorization header format | Path: %s", c.Request.URL.Path)
			response.Unauthorized(c)
			c.Abort()
			return
		}

		tokenString := strings.TrimSpace(authHeader[len(bearerPrefix):])
		if tokenString == "" {
			m.l.Warnf(c.Request.Context(), "Empty token in Authorization header | Path: %s", c.Request.URL.Path)
			response.Unauthorized(c)
			c.Abort()
			return
		}

		payload, err := m.jwtManager.Verify(tokenString)
		if err != nil {
			m.l.Warnf(c.Request.Context(), "Token verification failed: %v | Path: %s", err, c.Request.URL.Path)
			response.Unauthorized(c)
			c.Abort()
			return
		}

		ctx := c.Request.Context()
		ctx = scope.SetPayloadToContext(ctx, payload)
		ctx = scope.SetScopeToContext(ctx, scope.NewScope(payload))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// InternalKey guards service-to-service routes with a shared key.
func (m Middleware) InternalKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(internalKeyHeader)
		if m.internalKey == "" || subtle.ConstantTimeCompare([]byte(key), []byte(m.internalKey)) != 1 {
			m.l.Warnf(c.Request.Context(), "Invalid internal key | Path: %s", c.Request.URL.Path)
			response.Unauthorized(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequestLogger tags the request context with a request id and logs the
// outcome of every request.
func (m Middleware) RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqID := c.GetHeader(requestIDHeader)
		if reqID == "" {
			reqID = postgres.NewUUID()
		}
		c.Header(requestIDHeader, reqID)

		ctx := log.WithContext(c.Request.Context(), m.l, "request_id", reqID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		m.l.Infof(ctx, "%s %s | %d | %s", c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
