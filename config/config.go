package config

import (
	"fmt"
	"strings"
	"time"

	"sla-srv/pkg/encrypter"

	"github.com/caarlos0/env/v9"
	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment Configuration
	Environment EnvironmentConfig

	// Server Configuration
	Server ServerConfig
	Logger LoggerConfig

	// Storage Configuration
	Postgres PostgresConfig
	Redis    RedisConfig

	// Authentication & Security Configuration
	JWT      JWTConfig
	Internal InternalConfig

	// Monitoring & Notification Configuration
	Discord DiscordConfig
	SMTP    SMTPConfig
	Gateway GatewayConfig

	// Engine Configuration
	Escalation   EscalationConfig
	Notification NotificationConfig
	Detection    DetectionConfig
}

// EnvironmentConfig is the configuration for the deployment environment.
type EnvironmentConfig struct {
	Name string
}

// ServerConfig is the configuration for the HTTP server
type ServerConfig struct {
	Host            string
	Port            int
	Mode            string
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

// LoggerConfig is the configuration for the logger
type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// PostgresConfig is the configuration for PostgreSQL
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig is the configuration for Redis
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int

	// Connection pool settings
	MaxRetries      int
	MinIdleConns    int
	PoolSize        int
	PoolTimeout     time.Duration
	ConnMaxIdleTime time.Duration
	ConnMaxLifetime time.Duration
}

// JWTConfig is the configuration for the JWT
type JWTConfig struct {
	SecretKey string
}

// InternalConfig guards the service-to-service endpoints.
type InternalConfig struct {
	Key string
}

// DiscordConfig is the configuration for Discord webhook notifications
type DiscordConfig struct {
	WebhookURL string
}

// SMTPConfig is the configuration for the email channel
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// GatewayConfig is the configuration for the SMS/push gateway
type GatewayConfig struct {
	BaseURL       string
	APIKey        string
	Timeout       time.Duration
	RetryCount    int
	RatePerSecond float64
	Burst         int
}

// EscalationConfig drives the SLA scan.
type EscalationConfig struct {
	ScanSpec                string
	Workers                 int
	PageSize                int
	AllowResolvedRecurrence bool
	LockTTL                 time.Duration
	LockWait                time.Duration
}

// NotificationConfig drives the dispatch pipeline.
type NotificationConfig struct {
	Workers     int
	QueueSize   int
	SendTimeout time.Duration
	DueSpec     string
	BatchSize   int
	Breaker     BreakerConfig
}

// BreakerConfig configures the per-channel circuit breakers.
type BreakerConfig struct {
	MaxRequests         uint32
	Interval            time.Duration
	Timeout             time.Duration
	ConsecutiveFailures uint32
}

// DetectionConfig is the alert detection policy. A nil score threshold keeps
// the built-in default; zero is a valid threshold.
type DetectionConfig struct {
	AlertThreshold    string
	CriticalThreshold *float64
	HighThreshold     *float64
	MediumThreshold   *float64
	Keywords          KeywordConfig

	// Workers and QueueSize size the feedback event worker pool.
	Workers   int
	QueueSize int
}

// KeywordConfig lists keywords per severity tier.
type KeywordConfig struct {
	Catastrophic []string
	Critical     []string
	High         []string
	Medium       []string
	Low          []string
}

// Secrets are read from the environment only, never from the config file.
type Secrets struct {
	JWTSecretKey     string `env:"JWT_SECRET_KEY"`
	InternalKey      string `env:"INTERNAL_API_KEY"`
	PostgresPassword string `env:"POSTGRES_PASSWORD"`
	RedisPassword    string `env:"REDIS_PASSWORD"`
	SMTPPassword     string `env:"SMTP_PASSWORD"`
	GatewayAPIKey    string `env:"GATEWAY_API_KEY"`
	EncrypterKey     string `env:"ENCRYPTER_KEY"`
}

// Load loads configuration using Viper
func Load() (*Config, error) {
	// Set config file name and paths
	viper.SetConfigName("sla-config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/sla/")

	// Enable environment variable override
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set defaults
	setDefaults()

	// Read config file (optional - will use env vars if file not found)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment
	cfg.Environment.Name = viper.GetString("environment.name")

	// Server
	cfg.Server.Host = viper.GetString("server.host")
	cfg.Server.Port = viper.GetInt("server.port")
	cfg.Server.Mode = viper.GetString("server.mode")
	cfg.Server.ShutdownTimeout = viper.GetDuration("server.shutdown_timeout")
	cfg.Server.AllowedOrigins = viper.GetStringSlice("server.allowed_origins")

	// Logger
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Postgres
	cfg.Postgres.Host = viper.GetString("postgres.host")
	cfg.Postgres.Port = viper.GetInt("postgres.port")
	cfg.Postgres.User = viper.GetString("postgres.user")
	cfg.Postgres.Password = viper.GetString("postgres.password")
	cfg.Postgres.DBName = viper.GetString("postgres.dbname")
	cfg.Postgres.SSLMode = viper.GetString("postgres.sslmode")

	// Redis
	cfg.Redis.Host = viper.GetString("redis.host")
	cfg.Redis.Port = viper.GetInt("redis.port")
	cfg.Redis.Password = viper.GetString("redis.password")
	cfg.Redis.DB = viper.GetInt("redis.db")
	cfg.Redis.MaxRetries = viper.GetInt("redis.max_retries")
	cfg.Redis.MinIdleConns = viper.GetInt("redis.min_idle_conns")
	cfg.Redis.PoolSize = viper.GetInt("redis.pool_size")
	cfg.Redis.PoolTimeout = viper.GetDuration("redis.pool_timeout")
	cfg.Redis.ConnMaxIdleTime = viper.GetDuration("redis.conn_max_idle_time")
	cfg.Redis.ConnMaxLifetime = viper.GetDuration("redis.conn_max_lifetime")

	// JWT and internal key
	cfg.JWT.SecretKey = viper.GetString("jwt.secret_key")
	cfg.Internal.Key = viper.GetString("internal.key")

	// Discord
	cfg.Discord.WebhookURL = viper.GetString("discord.webhook_url")

	// SMTP
	cfg.SMTP.Host = viper.GetString("smtp.host")
	cfg.SMTP.Port = viper.GetInt("smtp.port")
	cfg.SMTP.Username = viper.GetString("smtp.username")
	cfg.SMTP.Password = viper.GetString("smtp.password")
	cfg.SMTP.From = viper.GetString("smtp.from")
	cfg.SMTP.FromName = viper.GetString("smtp.from_name")

	// Gateway
	cfg.Gateway.BaseURL = viper.GetString("gateway.base_url")
	cfg.Gateway.APIKey = viper.GetString("gateway.api_key")
	cfg.Gateway.Timeout = viper.GetDuration("gateway.timeout")
	cfg.Gateway.RetryCount = viper.GetInt("gateway.retry_count")
	cfg.Gateway.RatePerSecond = viper.GetFloat64("gateway.rate_per_second")
	cfg.Gateway.Burst = viper.GetInt("gateway.burst")

	// Escalation
	cfg.Escalation.ScanSpec = viper.GetString("escalation.scan_spec")
	cfg.Escalation.Workers = viper.GetInt("escalation.workers")
	cfg.Escalation.PageSize = viper.GetInt("escalation.page_size")
	cfg.Escalation.AllowResolvedRecurrence = viper.GetBool("escalation.allow_resolved_recurrence")
	cfg.Escalation.LockTTL = viper.GetDuration("escalation.lock_ttl")
	cfg.Escalation.LockWait = viper.GetDuration("escalation.lock_wait")

	// Notification
	cfg.Notification.Workers = viper.GetInt("notification.workers")
	cfg.Notification.QueueSize = viper.GetInt("notification.queue_size")
	cfg.Notification.SendTimeout = viper.GetDuration("notification.send_timeout")
	cfg.Notification.DueSpec = viper.GetString("notification.due_spec")
	cfg.Notification.BatchSize = viper.GetInt("notification.batch_size")
	cfg.Notification.Breaker.MaxRequests = viper.GetUint32("notification.breaker.max_requests")
	cfg.Notification.Breaker.Interval = viper.GetDuration("notification.breaker.interval")
	cfg.Notification.Breaker.Timeout = viper.GetDuration("notification.breaker.timeout")
	cfg.Notification.Breaker.ConsecutiveFailures = viper.GetUint32("notification.breaker.consecutive_failures")

	// Detection
	cfg.Detection = loadDetection()

	if err := applySecrets(cfg); err != nil {
		return nil, err
	}

	// Validate required fields
	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applySecrets overlays environment secrets and reveals "enc:" sealed
// credentials with ENCRYPTER_KEY.
func applySecrets(cfg *Config) error {
	var s Secrets
	if err := env.Parse(&s); err != nil {
		return fmt.Errorf("error parsing secrets: %w", err)
	}

	override(&cfg.JWT.SecretKey, s.JWTSecretKey)
	override(&cfg.Internal.Key, s.InternalKey)
	override(&cfg.Postgres.Password, s.PostgresPassword)
	override(&cfg.Redis.Password, s.RedisPassword)
	override(&cfg.SMTP.Password, s.SMTPPassword)
	override(&cfg.Gateway.APIKey, s.GatewayAPIKey)

	sealed := []*string{&cfg.SMTP.Password, &cfg.Gateway.APIKey}
	needsKey := false
	for _, p := range sealed {
		if strings.HasPrefix(*p, encrypter.SealedPrefix) {
			needsKey = true
		}
	}
	if !needsKey {
		return nil
	}
	if s.EncrypterKey == "" {
		return fmt.Errorf("ENCRYPTER_KEY is required to reveal sealed credentials")
	}
	enc, err := encrypter.New(s.EncrypterKey)
	if err != nil {
		return fmt.Errorf("error creating encrypter: %w", err)
	}
	for _, p := range sealed {
		plain, err := enc.Reveal(*p)
		if err != nil {
			return fmt.Errorf("error revealing sealed credential: %w", err)
		}
		*p = plain
	}
	return nil
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDefaults() {
	// Environment
	viper.SetDefault("environment.name", "production")

	// Server
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "release")
	viper.SetDefault("server.shutdown_timeout", 15*time.Second)
	viper.SetDefault("server.allowed_origins", []string{"*"})

	// Logger
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.mode", "production")
	viper.SetDefault("logger.encoding", "json")
	viper.SetDefault("logger.color_enabled", false)

	// Postgres
	viper.SetDefault("postgres.host", "localhost")
	viper.SetDefault("postgres.port", 5432)
	viper.SetDefault("postgres.user", "postgres")
	viper.SetDefault("postgres.dbname", "feedback")
	viper.SetDefault("postgres.sslmode", "disable")

	// Redis
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.max_retries", 3)
	viper.SetDefault("redis.min_idle_conns", 10)
	viper.SetDefault("redis.pool_size", 100)
	viper.SetDefault("redis.pool_timeout", 4*time.Second)
	viper.SetDefault("redis.conn_max_idle_time", 5*time.Minute)
	viper.SetDefault("redis.conn_max_lifetime", 30*time.Minute)

	// SMTP
	viper.SetDefault("smtp.port", 587)
	viper.SetDefault("smtp.from_name", "SLA Monitor")

	// Gateway
	viper.SetDefault("gateway.timeout", 10*time.Second)
	viper.SetDefault("gateway.retry_count", 1)
	viper.SetDefault("gateway.rate_per_second", 20)
	viper.SetDefault("gateway.burst", 5)

	// Escalation
	viper.SetDefault("escalation.scan_spec", "@every 5m")
	viper.SetDefault("escalation.workers", 8)
	viper.SetDefault("escalation.page_size", 200)
	viper.SetDefault("escalation.allow_resolved_recurrence", false)
	viper.SetDefault("escalation.lock_ttl", 30*time.Second)
	viper.SetDefault("escalation.lock_wait", 5*time.Second)

	// Notification
	viper.SetDefault("notification.workers", 4)
	viper.SetDefault("notification.queue_size", 1024)
	viper.SetDefault("notification.send_timeout", 15*time.Second)
	viper.SetDefault("notification.due_spec", "@every 1m")
	viper.SetDefault("notification.batch_size", 100)
	viper.SetDefault("notification.breaker.max_requests", 1)
	viper.SetDefault("notification.breaker.interval", time.Minute)
	viper.SetDefault("notification.breaker.timeout", 30*time.Second)
	viper.SetDefault("notification.breaker.consecutive_failures", 5)

	// Detection
	viper.SetDefault("detection.alert_threshold", "medium")
	viper.SetDefault("detection.critical_threshold", -0.8)
	viper.SetDefault("detection.high_threshold", -0.6)
	viper.SetDefault("detection.medium_threshold", -0.3)
	viper.SetDefault("detection.workers", 4)
	viper.SetDefault("detection.queue_size", 256)
}

func loadDetection() DetectionConfig {
	return DetectionConfig{
		AlertThreshold:    viper.GetString("detection.alert_threshold"),
		CriticalThreshold: optionalFloat64("detection.critical_threshold"),
		HighThreshold:     optionalFloat64("detection.high_threshold"),
		MediumThreshold:   optionalFloat64("detection.medium_threshold"),
		Keywords: KeywordConfig{
			Catastrophic: viper.GetStringSlice("detection.keywords.catastrophic"),
			Critical:     viper.GetStringSlice("detection.keywords.critical"),
			High:         viper.GetStringSlice("detection.keywords.high"),
			Medium:       viper.GetStringSlice("detection.keywords.medium"),
			Low:          viper.GetStringSlice("detection.keywords.low"),
		},
		Workers:   viper.GetInt("detection.workers"),
		QueueSize: viper.GetInt("detection.queue_size"),
	}
}

// optionalFloat64 returns nil for a key set neither in the file, the
// environment nor the defaults.
func optionalFloat64(key string) *float64 {
	if !viper.IsSet(key) {
		return nil
	}
	v := viper.GetFloat64(key)
	return &v
}

func validate(cfg *Config) error {
	// Validate JWT
	if cfg.JWT.SecretKey == "" {
		return fmt.Errorf("jwt.secret_key is required")
	}
	if len(cfg.JWT.SecretKey) < 32 {
		return fmt.Errorf("jwt.secret_key must be at least 32 characters for security")
	}

	if cfg.Internal.Key == "" {
		return fmt.Errorf("internal.key is required")
	}

	// Validate storage
	if cfg.Postgres.Host == "" || cfg.Postgres.DBName == "" {
		return fmt.Errorf("postgres.host and postgres.dbname are required")
	}
	if cfg.Redis.Host == "" {
		return fmt.Errorf("redis.host is required")
	}
	if cfg.Redis.Port == 0 {
		return fmt.Errorf("redis.port is required")
	}

	// Validate engine settings
	if cfg.Escalation.Workers <= 0 {
		return fmt.Errorf("escalation.workers must be positive")
	}
	if cfg.Notification.Workers <= 0 || cfg.Notification.QueueSize <= 0 {
		return fmt.Errorf("notification.workers and notification.queue_size must be positive")
	}

	return nil
}
