package gateway

import (
	"context"
	"time"

	"sla-srv/pkg/log"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

// Client talks to the HTTP messaging gateway (SMS, push) and posts webhooks.
type Client interface {
	SendSMS(ctx context.Context, req SMSRequest) (*Receipt, error)
	SendPush(ctx context.Context, req PushRequest) (*Receipt, error)
	PostWebhook(ctx context.Context, url string, payload any) error
}

// New creates a gateway Client. SMS and push share one token bucket.
func New(l log.Logger, cfg Config) (Client, error) {
	if cfg.BaseURL == "" {
		return nil, ErrBaseURLRequired
	}
	if l == nil {
		l = log.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RatePerSecond <= 0 {
		cfg.RatePerSecond = DefaultRatePerSecond
	}
	if cfg.Burst <= 0 {
		cfg.Burst = DefaultBurst
	}

	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(3 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", UserAgent)
	if cfg.APIKey != "" {
		client.SetAuthToken(cfg.APIKey)
	}

	return &implClient{
		l:       l,
		http:    client,
		limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.Burst),
	}, nil
}
