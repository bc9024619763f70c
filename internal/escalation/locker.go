package escalation

import (
	"context"
	"sync"
)

type keyedLock struct {
	ch   chan struct{}
	refs int
}

// MemoryLocker is an in-process keyed mutex. It is enough on a single node
// and in tests; multi-node deployments use the Redis locker.
type MemoryLocker struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{locks: make(map[string]*keyedLock)}
}

func (m *MemoryLocker) Acquire(ctx context.Context, key string) (func(), error) {
	m.mu.Lock()
	lk, ok := m.locks[key]
	if !ok {
		lk = &keyedLock{ch: make(chan struct{}, 1)}
		m.locks[key] = lk
	}
	lk.refs++
	m.mu.Unlock()

	select {
	case lk.ch <- struct{}{}:
	case <-ctx.Done():
		m.drop(key, lk)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-lk.ch
			m.drop(key, lk)
		})
	}, nil
}

func (m *MemoryLocker) drop(key string, lk *keyedLock) {
	m.mu.Lock()
	defer m.mu.Unlock()
	lk.refs--
	if lk.refs == 0 {
		delete(m.locks, key)
	}
}
