package httpserver

import (
	"net/http"

	"sla-srv/config/postgre"
	pkgErrors "sla-srv/pkg/errors"
	"sla-srv/pkg/response"

	"github.com/gin-gonic/gin"
)

const serviceName = "sla-srv"

var (
	errRedisUnavailable    = pkgErrors.NewHTTPError(503, "Redis connection failed", http.StatusServiceUnavailable)
	errPostgresUnavailable = pkgErrors.NewHTTPError(503, "PostgreSQL connection failed", http.StatusServiceUnavailable)
)

// healthCheck handles health check requests
// @Summary Health Check
// @Description Check PostgreSQL, Redis and the dispatch queue
// @Tags Health
// @Produce json
// @Success 200 {object} response.Resp "Service is healthy"
// @Failure 503 {object} response.Resp "A dependency is down"
// @Router /health [get]
func (srv *HTTPServer) healthCheck(c *gin.Context) {
	ctx := c.Request.Context()

	if err := postgre.HealthCheck(ctx, srv.postgresDB); err != nil {
		srv.l.Warnf(ctx, "internal.httpserver.healthCheck.postgres: %v", err)
		response.Error(c, errPostgresUnavailable, nil)
		return
	}
	if err := srv.redis.Ping(ctx); err != nil {
		srv.l.Warnf(ctx, "internal.httpserver.healthCheck.redis: %v", err)
		response.Error(c, errRedisUnavailable, nil)
		return
	}

	queued := 0
	if srv.dispatchPool != nil {
		queued = srv.dispatchPool.Len()
	}
	response.OK(c, gin.H{
		"status":         "healthy",
		"service":        serviceName,
		"postgres":       "connected",
		"redis":          "connected",
		"dispatch_queue": queued,
	})
}

// readyCheck handles readiness check requests
// @Summary Readiness Check
// @Description Check if the service can serve traffic
// @Tags Health
// @Produce json
// @Success 200 {object} response.Resp "Service is ready"
// @Failure 503 {object} response.Resp "Service is not ready"
// @Router /ready [get]
func (srv *HTTPServer) readyCheck(c *gin.Context) {
	ctx := c.Request.Context()

	if err := srv.postgresDB.PingContext(ctx); err != nil {
		response.Error(c, errPostgresUnavailable, nil)
		return
	}
	if err := srv.redis.Ping(ctx); err != nil {
		response.Error(c, errRedisUnavailable, nil)
		return
	}

	response.OK(c, gin.H{
		"status":  "ready",
		"service": serviceName,
	})
}

// liveCheck handles liveness check requests
// @Summary Liveness Check
// @Tags Health
// @Produce json
// @Success 200 {object} response.Resp "Service is alive"
// @Router /live [get]
func (srv *HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "alive",
		"service": serviceName,
	})
}
