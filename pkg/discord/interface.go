package discord

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"sla-srv/pkg/log"
)

// IDiscord posts ops messages to a Discord webhook.
type IDiscord interface {
	SendEmbed(ctx context.Context, options MessageOptions) error
	SendError(ctx context.Context, title, description string, err error) error
	ReportBug(ctx context.Context, message string) error
	GetWebhookURL() string
	Close() error
}

// parseWebhookURL validates a ".../webhooks/{id}/{token}" URL.
func parseWebhookURL(webhookURL string) (string, error) {
	webhookURL = strings.TrimSpace(webhookURL)
	u, err := url.Parse(webhookURL)
	if err != nil || (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
		return "", fmt.Errorf("%w: %q", errInvalidWebhookURL, webhookURL)
	}
	idx := strings.Index(u.Path, webhookPathMarker)
	if idx < 0 {
		return "", fmt.Errorf("%w: missing %s segment", errInvalidWebhookURL, webhookPathMarker)
	}
	parts := strings.SplitN(u.Path[idx+len(webhookPathMarker):], "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", fmt.Errorf("%w: webhook URL must be .../webhooks/{id}/{token}", errInvalidWebhookURL)
	}
	return webhookURL, nil
}

// New creates a Discord webhook client with DefaultConfig.
func New(l log.Logger, webhookURL string) (IDiscord, error) {
	return NewWithConfig(l, webhookURL, DefaultConfig())
}

// NewWithConfig creates a Discord webhook client with an explicit Config.
func NewWithConfig(l log.Logger, webhookURL string, cfg Config) (IDiscord, error) {
	if webhookURL == "" {
		return nil, errWebhookRequired
	}
	parsed, err := parseWebhookURL(webhookURL)
	if err != nil {
		return nil, err
	}
	if l == nil {
		l = log.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = DefaultRetryDelay
	}
	return &discordImpl{
		l:          l,
		webhookURL: parsed,
		config:     cfg,
		client:     newHTTPClient(l, cfg),
	}, nil
}
