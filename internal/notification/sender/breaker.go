package sender

import (
	"context"
	"errors"
	"time"

	"sla-srv/internal/model"
	"sla-srv/internal/notification"
	"sla-srv/pkg/log"
	"sla-srv/pkg/metrics"

	"github.com/sony/gobreaker"
)

// BreakerConfig configures one channel's circuit breaker.
type BreakerConfig struct {
	MaxRequests         uint32
	Interval            time.Duration
	Timeout             time.Duration
	ConsecutiveFailures uint32
}

const defaultConsecutiveFailures = 5

type guarded struct {
	channel model.Channel
	inner   notification.Sender
	cb      *gobreaker.CircuitBreaker
	timeout time.Duration
	metrics *metrics.Metrics
}

// Guard bounds each send of inner with cfg.SendTimeout and trips a circuit
// breaker after consecutive failures.
func Guard(l log.Logger, ch model.Channel, inner notification.Sender, cfg Config, m *metrics.Metrics) notification.Sender {
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = defaultSendTimeout
	}
	trip := cfg.Breaker.ConsecutiveFailures
	if trip == 0 {
		trip = defaultConsecutiveFailures
	}

	settings := gobreaker.Settings{
		Name:        "notification." + string(ch),
		MaxRequests: cfg.Breaker.MaxRequests,
		Interval:    cfg.Breaker.Interval,
		Timeout:     cfg.Breaker.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= trip
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, notification.ErrNoAddress)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			l.Warnf(context.Background(), "internal.notification.sender.Guard: breaker %s %s -> %s", name, from, to)
			m.SetBreakerState(string(ch), int(to))
		},
	}

	return &guarded{
		channel: ch,
		inner:   inner,
		cb:      gobreaker.NewCircuitBreaker(settings),
		timeout: cfg.SendTimeout,
		metrics: m,
	}
}

func (g *guarded) Send(ctx context.Context, msg notification.Message) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	_, err := g.cb.Execute(func() (interface{}, error) {
		return nil, g.inner.Send(ctx, msg)
	})
	g.metrics.SendResult(string(g.channel), time.Since(start), err)
	return err
}
