package mailer

import (
	"context"

	"sla-srv/pkg/log"

	"gopkg.in/gomail.v2"
)

// Mailer sends one email message over SMTP.
type Mailer interface {
	Send(ctx context.Context, mail Mail) error
}

// New creates a Mailer dialing the configured SMTP server per message.
func New(l log.Logger, cfg Config) (Mailer, error) {
	if cfg.Host == "" {
		return nil, ErrHostRequired
	}
	if cfg.From == "" {
		return nil, ErrFromRequired
	}
	if l == nil {
		l = log.NewNop()
	}
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	return &implMailer{
		l:      l,
		cfg:    cfg,
		dialer: d,
	}, nil
}
