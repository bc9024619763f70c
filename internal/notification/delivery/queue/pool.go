package queue

import (
	"context"
	"time"
)

// Enqueue queues id without blocking. It returns false when the queue is
// full.
func (p *Pool) Enqueue(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.pending[id]; ok {
		return true
	}
	select {
	case p.ch <- id:
		p.pending[id] = struct{}{}
		p.metrics.SetQueueDepth(len(p.ch))
		return true
	default:
		return false
	}
}

// Len is the number of ids waiting for a worker.
func (p *Pool) Len() int {
	return len(p.ch)
}

// Start runs the workers until Shutdown.
func (p *Pool) Start(d Dispatcher) {
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.work(ctx, d)
	}
	p.l.Infof(ctx, "internal.notification.delivery.queue.Start: %d dispatch workers", p.workers)
}

func (p *Pool) work(ctx context.Context, d Dispatcher) {
	defer p.wg.Done()
	for {
		select {
		case <-p.quit:
			return
		case id := <-p.ch:
			p.metrics.SetQueueDepth(len(p.ch))
			if _, err := d.Dispatch(ctx, id, p.clock()); err != nil {
				p.l.Warnf(ctx, "internal.notification.delivery.queue.work.Dispatch: id=%s: %v", id, err)
			}
			p.done(id)
		}
	}
}

func (p *Pool) done(id string) {
	p.mu.Lock()
	delete(p.pending, id)
	p.mu.Unlock()
}

// Shutdown stops the workers. Queued ids are left for the due job to pick up
// from the database.
func (p *Pool) Shutdown(ctx context.Context) error {
	close(p.quit)
	if p.cancel != nil {
		p.cancel()
	}

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(30 * time.Second):
		return context.DeadlineExceeded
	}
}
