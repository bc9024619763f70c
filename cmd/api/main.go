package main

import (
	"context"
	"fmt"

	"sla-srv/config"
	"sla-srv/config/postgre"
	configRedis "sla-srv/config/redis"
	"sla-srv/internal/httpserver"
	"sla-srv/pkg/discord"
	"sla-srv/pkg/gateway"
	"sla-srv/pkg/log"
	"sla-srv/pkg/mailer"
	"sla-srv/pkg/scope"
)

// @title       SLA Service API
// @description SLA compliance, alerting and notification service.
// @version     1.0
// @host        localhost:8080
// @schemes     http
// @BasePath    /api/v1
//
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Bearer token authentication. Format: "Bearer {token}"
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// Initialize logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
		Service:      "sla-srv",
	})

	ctx := context.Background()
	logger.Info(ctx, "Starting SLA service...")

	// Initialize PostgreSQL
	postgresDB, err := postgre.Connect(ctx, cfg.Postgres)
	if err != nil {
		logger.Errorf(ctx, "Failed to connect to PostgreSQL: %v", err)
		return
	}
	defer postgre.Disconnect(postgresDB)
	logger.Infof(ctx, "PostgreSQL connected successfully to %s:%d/%s", cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName)

	// Initialize Redis
	redisClient, err := configRedis.Connect(cfg.Redis)
	if err != nil {
		logger.Errorf(ctx, "Failed to connect to Redis: %v", err)
		return
	}
	defer configRedis.Disconnect(redisClient)
	logger.Infof(ctx, "Redis connected successfully to %s:%d", cfg.Redis.Host, cfg.Redis.Port)

	// Initialize Discord (optional)
	var discordClient discord.IDiscord
	if cfg.Discord.WebhookURL != "" {
		discordClient, err = discord.New(logger, cfg.Discord.WebhookURL)
		if err != nil {
			logger.Warnf(ctx, "Discord webhook not configured (optional): %v", err)
			discordClient = nil
		} else {
			defer discordClient.Close()
		}
	}

	// Initialize channel transports (optional)
	var mailClient mailer.Mailer
	if cfg.SMTP.Host != "" {
		mailClient, err = mailer.New(logger, mailer.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
			FromName: cfg.SMTP.FromName,
		})
		if err != nil {
			logger.Warnf(ctx, "Email channel disabled: %v", err)
			mailClient = nil
		}
	}

	var gatewayClient gateway.Client
	if cfg.Gateway.BaseURL != "" {
		gatewayClient, err = gateway.New(logger, gateway.Config{
			BaseURL:       cfg.Gateway.BaseURL,
			APIKey:        cfg.Gateway.APIKey,
			Timeout:       cfg.Gateway.Timeout,
			RetryCount:    cfg.Gateway.RetryCount,
			RatePerSecond: cfg.Gateway.RatePerSecond,
			Burst:         cfg.Gateway.Burst,
		})
		if err != nil {
			logger.Warnf(ctx, "SMS, push and webhook channels disabled: %v", err)
			gatewayClient = nil
		}
	}

	// Initialize HTTP server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		// Server Configuration
		Host:            cfg.Server.Host,
		Port:            cfg.Server.Port,
		Mode:            cfg.Server.Mode,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		AllowedOrigins:  cfg.Server.AllowedOrigins,

		// Storage Configuration
		PostgresDB: postgresDB,
		Redis:      redisClient,

		// Authentication & Security Configuration
		JWTManager:  scope.New(cfg.JWT.SecretKey),
		InternalKey: cfg.Internal.Key,

		// External services
		Discord: discordClient,
		Mailer:  mailClient,
		Gateway: gatewayClient,

		// Engine Configuration
		Escalation:   cfg.Escalation,
		Notification: cfg.Notification,
		Detection:    cfg.Detection,
	})
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize HTTP server: %v", err)
		return
	}

	if err := httpServer.Run(); err != nil {
		logger.Errorf(ctx, "Failed to run server: %v", err)
		return
	}
}
