package httpserver

import (
	"database/sql"
	"errors"
	"time"

	"sla-srv/config"
	alertRedis "sla-srv/internal/alert/delivery/redis"
	"sla-srv/internal/notification"
	"sla-srv/internal/notification/delivery/queue"
	"sla-srv/pkg/discord"
	"sla-srv/pkg/gateway"
	"sla-srv/pkg/log"
	"sla-srv/pkg/mailer"
	"sla-srv/pkg/metrics"
	pkgRedis "sla-srv/pkg/redis"
	"sla-srv/pkg/scheduler"
	"sla-srv/pkg/scope"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

const defaultShutdownTimeout = 15 * time.Second

// HTTPServer represents the HTTP server with all dependencies.
// New() only wires dependencies and validates them.
// Run() (in httpserver.go) is responsible for starting background services and HTTP serving.
type HTTPServer struct {
	// Server configuration
	gin             *gin.Engine
	l               log.Logger
	host            string
	port            int
	shutdownTimeout time.Duration
	allowedOrigins  []string

	// Storage
	postgresDB *sql.DB
	redis      pkgRedis.IRedis

	// Auth & security
	jwtManager  scope.Manager
	internalKey string

	// External services
	discord discord.IDiscord
	mailer  mailer.Mailer
	gateway gateway.Client

	// Engine configuration
	escalationCfg   config.EscalationConfig
	notificationCfg config.NotificationConfig
	detectionCfg    config.DetectionConfig

	// Monitoring
	registry *prometheus.Registry
	metrics  *metrics.Metrics

	// Background services, built by mapHandlers
	scheduler       *scheduler.Scheduler
	dispatchPool    *queue.Pool
	notificationUC  notification.UseCase
	alertSubscriber alertRedis.Subscriber
}

// Config is the constructor input for HTTPServer.
type Config struct {
	// Server configuration
	Host            string
	Port            int
	Mode            string
	ShutdownTimeout time.Duration
	AllowedOrigins  []string

	// Storage
	PostgresDB *sql.DB
	Redis      pkgRedis.IRedis

	// Auth & security
	JWTManager  scope.Manager
	InternalKey string

	// External services. Mailer and Gateway are optional; without them the
	// matching channels have no sender and their notifications fail.
	Discord discord.IDiscord
	Mailer  mailer.Mailer
	Gateway gateway.Client

	// Engine configuration
	Escalation   config.EscalationConfig
	Notification config.NotificationConfig
	Detection    config.DetectionConfig
}

// New creates a new HTTPServer instance with the provided configuration.
// Note: This does NOT start any goroutines. Use (*HTTPServer).Run() to start the service.
func New(l log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	shutdownTimeout := cfg.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}
	registry := prometheus.NewRegistry()

	srv := &HTTPServer{
		gin:             gin.New(),
		l:               l,
		host:            cfg.Host,
		port:            cfg.Port,
		shutdownTimeout: shutdownTimeout,
		allowedOrigins:  cfg.AllowedOrigins,

		postgresDB: cfg.PostgresDB,
		redis:      cfg.Redis,

		jwtManager:  cfg.JWTManager,
		internalKey: cfg.InternalKey,

		discord: cfg.Discord,
		mailer:  cfg.Mailer,
		gateway: cfg.Gateway,

		escalationCfg:   cfg.Escalation,
		notificationCfg: cfg.Notification,
		detectionCfg:    cfg.Detection,

		registry: registry,
		metrics:  metrics.New(registry),
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

// validate ensures all required dependencies are provided.
func (srv *HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.postgresDB == nil {
		return errors.New("PostgreSQL connection is required")
	}
	if srv.redis == nil {
		return errors.New("Redis client is required")
	}
	if srv.jwtManager == nil {
		return errors.New("JWTManager is required")
	}
	if srv.internalKey == "" {
		return errors.New("internal key is required")
	}

	return nil
}
