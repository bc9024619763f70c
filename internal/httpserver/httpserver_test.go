package httpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"sla-srv/config"
	"sla-srv/pkg/log"
	pkgRedis "sla-srv/pkg/redis"
	"sla-srv/pkg/scope"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*HTTPServer, *miniredis.Miniredis) {
	t.Helper()
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	srv, err := New(log.NewNop(), Config{
		Port:        8080,
		Mode:        gin.TestMode,
		PostgresDB:  db,
		Redis:       pkgRedis.NewFromClient(client),
		JWTManager:  scope.New("test-secret"),
		InternalKey: "internal-key",
		Escalation:  config.EscalationConfig{ScanSpec: "@every 5m", Workers: 2},
		Notification: config.NotificationConfig{
			Workers:   1,
			QueueSize: 8,
			DueSpec:   "@every 1m",
		},
	})
	require.NoError(t, err)
	return srv, mr
}

func get(srv *HTTPServer, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	srv.gin.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestNewValidates(t *testing.T) {
	_, err := New(log.NewNop(), Config{Mode: gin.TestMode})
	assert.Error(t, err)

	srv, _ := newTestServer(t)
	assert.Equal(t, defaultShutdownTimeout, srv.shutdownTimeout)
	assert.NotNil(t, srv.metrics)
}

func TestMapHandlersRegistersRoutes(t *testing.T) {
	srv, _ := newTestServer(t)
	require.NoError(t, srv.mapHandlers())

	routes := map[string]bool{}
	for _, r := range srv.gin.Routes() {
		routes[r.Method+" "+r.Path] = true
	}
	for _, want := range []string{
		"GET /health",
		"GET /metrics",
		"GET /api/v1/sla-rules",
		"GET /api/v1/sla-rules/escalations",
		"POST /api/v1/alerts/bulk",
		"GET /api/v1/notifications",
		"POST /api/v1/notifications/:id/retry",
		"POST /internal/api/v1/feedbacks/:id/detect",
		"POST /internal/api/v1/escalations/recheck",
		"POST /internal/api/v1/notifications/:id/delivered",
	} {
		assert.True(t, routes[want], want)
	}
	assert.NotNil(t, srv.dispatchPool)
	assert.NotNil(t, srv.alertSubscriber)
}

func TestMapHandlersRejectsBadSpec(t *testing.T) {
	srv, _ := newTestServer(t)
	srv.escalationCfg.ScanSpec = "sometimes"
	assert.Error(t, srv.mapHandlers())
}

func TestHealthChecks(t *testing.T) {
	srv, mr := newTestServer(t)
	require.NoError(t, srv.mapHandlers())

	assert.Equal(t, http.StatusOK, get(srv, "/live").Code)
	assert.Equal(t, http.StatusOK, get(srv, "/ready").Code)
	w := get(srv, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"dispatch_queue":0`)

	mr.Close()
	assert.Equal(t, http.StatusServiceUnavailable, get(srv, "/health").Code)
	assert.Equal(t, http.StatusServiceUnavailable, get(srv, "/ready").Code)
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	require.NoError(t, srv.mapHandlers())
	srv.metrics.SetQueueDepth(3)

	w := get(srv, "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "notification_dispatch_queue_depth 3")
}
