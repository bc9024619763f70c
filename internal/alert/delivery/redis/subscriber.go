package redis

import (
	"context"
	"fmt"
)

func (s *subscriber) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	client := s.redis.GetClient()
	s.pubsub = client.PSubscribe(ctx, FeedbackCreatedPattern)

	// Wait for confirmation that subscription is created
	if _, err := s.pubsub.Receive(ctx); err != nil {
		cancel()
		return fmt.Errorf("failed to subscribe: %w", err)
	}

	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go s.work(ctx)
	}
	s.wg.Add(1)
	go s.listen(ctx)

	s.logger.Infof(ctx, "internal.alert.delivery.redis.Start: subscribed to %s with %d workers", FeedbackCreatedPattern, s.workers)
	return nil
}

func (s *subscriber) listen(ctx context.Context) {
	defer s.wg.Done()

	ch := s.pubsub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				s.logger.Warnf(ctx, "internal.alert.delivery.redis.listen: pubsub channel closed")
				return
			}
			select {
			case s.jobs <- msg:
			case <-s.quit:
				return
			}
		case <-s.quit:
			return
		}
	}
}

// work runs Detect for queued messages until Shutdown.
func (s *subscriber) work(ctx context.Context) {
	defer s.wg.Done()
	for {
		select {
		case <-s.quit:
			return
		case msg := <-s.jobs:
			s.handleMessage(ctx, msg)
		}
	}
}

func (s *subscriber) Shutdown(ctx context.Context) error {
	close(s.quit)
	if s.cancel != nil {
		s.cancel()
	}
	if s.pubsub != nil {
		if err := s.pubsub.Close(); err != nil {
			s.logger.Errorf(ctx, "internal.alert.delivery.redis.Shutdown.Close: %v", err)
		}
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	if n := len(s.jobs); n > 0 {
		s.logger.Warnf(ctx, "internal.alert.delivery.redis.Shutdown: %d feedback events left undetected", n)
	}
	s.logger.Infof(ctx, "internal.alert.delivery.redis.Shutdown: subscriber stopped")
	return nil
}
