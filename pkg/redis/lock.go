package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

var releaseScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker is a single-instance Redis mutex (SET NX PX + token-checked release).
// The TTL bounds how long a crashed holder can block others.
type Locker struct {
	client *goredis.Client
	prefix string
	ttl    time.Duration
	wait   time.Duration
}

// NewLocker builds a Locker whose keys are namespaced by prefix. Acquire
// retries until wait elapses.
func NewLocker(r IRedis, prefix string, ttl, wait time.Duration) *Locker {
	return &Locker{
		client: r.GetClient(),
		prefix: prefix,
		ttl:    ttl,
		wait:   wait,
	}
}

// Acquire blocks until the lock on key is held, ctx is done or the wait budget
// is spent. The returned func releases the lock if it is still owned.
func (l *Locker) Acquire(ctx context.Context, key string) (func(), error) {
	fullKey := l.prefix + key
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.client.SetNX(ctx, fullKey, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("redis lock %s: %w", fullKey, err)
		}
		if ok {
			return func() {
				releaseCtx, cancel := context.WithTimeout(context.Background(), DefaultConnectTimeout)
				defer cancel()
				_ = releaseScript.Run(releaseCtx, l.client, []string{fullKey}, token).Err()
			}, nil
		}
		if !time.Now().Before(deadline) {
			return nil, ErrLockNotAcquired
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(defaultLockRetryDelay):
		}
	}
}

// IsLockNotAcquired reports whether err came from an exhausted wait budget.
func IsLockNotAcquired(err error) bool {
	return errors.Is(err, ErrLockNotAcquired)
}
