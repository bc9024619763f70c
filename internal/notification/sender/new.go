package sender

import (
	"time"

	"sla-srv/internal/model"
	"sla-srv/internal/notification"
	"sla-srv/pkg/gateway"
	"sla-srv/pkg/log"
	"sla-srv/pkg/mailer"
	"sla-srv/pkg/metrics"
	pkgRedis "sla-srv/pkg/redis"
)

const defaultSendTimeout = 15 * time.Second

// Deps are the transports behind the channel senders. A nil transport leaves
// its channels without a sender.
type Deps struct {
	Mailer  mailer.Mailer
	Gateway gateway.Client
	Redis   pkgRedis.IRedis
	Metrics *metrics.Metrics
}

// Config bounds every send attempt.
type Config struct {
	SendTimeout time.Duration
	Breaker     BreakerConfig
}

// New builds one guarded sender per channel with a configured transport.
func New(l log.Logger, deps Deps, cfg Config) map[model.Channel]notification.Sender {
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = defaultSendTimeout
	}

	raw := map[model.Channel]notification.Sender{}
	if deps.Mailer != nil {
		raw[model.ChannelEmail] = emailSender{mailer: deps.Mailer}
	}
	if deps.Gateway != nil {
		raw[model.ChannelSMS] = smsSender{gw: deps.Gateway}
		raw[model.ChannelPush] = pushSender{gw: deps.Gateway}
		raw[model.ChannelWebhook] = webhookSender{gw: deps.Gateway}
	}
	if deps.Redis != nil {
		raw[model.ChannelInApp] = inAppSender{redis: deps.Redis}
	}

	senders := make(map[model.Channel]notification.Sender, len(raw))
	for ch, s := range raw {
		senders[ch] = Guard(l, ch, s, cfg, deps.Metrics)
	}
	return senders
}
