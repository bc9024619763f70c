package redis

import (
	"context"
	"sync"
	"time"

	"sla-srv/internal/alert"
	"sla-srv/pkg/log"
	pkgRedis "sla-srv/pkg/redis"

	"github.com/redis/go-redis/v9"
)

// FeedbackCreatedPattern matches the per-company feedback creation channels.
const FeedbackCreatedPattern = "feedback:*:created"

const (
	defaultWorkers   = 4
	defaultQueueSize = 256
)

// Config sizes the detection worker pool fed by the subscription.
type Config struct {
	Workers   int
	QueueSize int
}

type Subscriber interface {
	Start() error
	Shutdown(ctx context.Context) error
}

type subscriber struct {
	redis  pkgRedis.IRedis
	uc     alert.UseCase
	logger log.Logger
	clock  func() time.Time

	workers int
	jobs    chan *redis.Message

	pubsub *redis.PubSub
	wg     sync.WaitGroup
	quit   chan struct{}
	cancel context.CancelFunc
}

func New(redisClient pkgRedis.IRedis, uc alert.UseCase, logger log.Logger, cfg Config) Subscriber {
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = defaultQueueSize
	}
	return &subscriber{
		redis:   redisClient,
		uc:      uc,
		logger:  logger,
		clock:   time.Now,
		workers: cfg.Workers,
		jobs:    make(chan *redis.Message, cfg.QueueSize),
		quit:    make(chan struct{}),
	}
}
