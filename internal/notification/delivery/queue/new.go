package queue

import (
	"context"
	"sync"
	"time"

	"sla-srv/internal/model"
	"sla-srv/pkg/log"
	"sla-srv/pkg/metrics"
)

const (
	defaultWorkers = 4
	defaultSize    = 1024
)

// Dispatcher sends one notification by id.
type Dispatcher interface {
	Dispatch(ctx context.Context, id string, now time.Time) (model.Notification, error)
}

type Config struct {
	Workers int
	Size    int
}

// Pool is a bounded in-process dispatch queue drained by a fixed set of
// workers. An id already waiting or in flight is not queued twice.
type Pool struct {
	l       log.Logger
	metrics *metrics.Metrics
	clock   func() time.Time
	workers int

	ch      chan string
	mu      sync.Mutex
	pending map[string]struct{}

	wg     sync.WaitGroup
	cancel context.CancelFunc
	quit   chan struct{}
}

func New(l log.Logger, cfg Config, m *metrics.Metrics) *Pool {
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	if cfg.Size <= 0 {
		cfg.Size = defaultSize
	}
	return &Pool{
		l:       l,
		metrics: m,
		clock:   time.Now,
		workers: cfg.Workers,
		ch:      make(chan string, cfg.Size),
		pending: make(map[string]struct{}),
		quit:    make(chan struct{}),
	}
}
