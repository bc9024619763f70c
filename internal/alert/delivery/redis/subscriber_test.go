package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"sla-srv/internal/alert"
	"sla-srv/internal/model"
	"sla-srv/pkg/log"
	pkgRedis "sla-srv/pkg/redis"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUseCase struct {
	alert.UseCase
	mock.Mock
}

func (m *mockUseCase) Detect(ctx context.Context, ip alert.DetectInput) (alert.DetectOutput, error) {
	args := m.Called(ctx, ip)
	return args.Get(0).(alert.DetectOutput), args.Error(1)
}

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func startSubscriber(t *testing.T, uc alert.UseCase, cfg Config) (*goredis.Client, Subscriber) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	sub := New(pkgRedis.NewFromClient(client), uc, log.NewNop(), cfg)
	sub.(*subscriber).clock = func() time.Time { return fixedNow }
	require.NoError(t, sub.Start())
	return client, sub
}

func TestSubscriberDetectsCreatedFeedback(t *testing.T) {
	uc := &mockUseCase{}
	done := make(chan struct{})
	uc.On("Detect", mock.Anything, alert.DetectInput{FeedbackID: "fb-1", Now: fixedNow}).
		Return(alert.DetectOutput{FeedbackID: "fb-1", Created: true, Alert: &model.Alert{ID: "a1"}}, nil).
		Run(func(mock.Arguments) { close(done) }).
		Once()

	client, sub := startSubscriber(t, uc, Config{})
	defer sub.Shutdown(context.Background())

	require.NoError(t, client.Publish(context.Background(), "feedback:company-1:created", `{"feedback_id":"fb-1"}`).Err())

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Detect was not called")
	}
	uc.AssertExpectations(t)
}

func TestSubscriberSkipsBadPayloadAndSurvivesErrors(t *testing.T) {
	uc := &mockUseCase{}
	done := make(chan struct{})
	uc.On("Detect", mock.Anything, alert.DetectInput{FeedbackID: "fb-1", Now: fixedNow}).
		Return(alert.DetectOutput{}, errors.New("db down")).Once()
	uc.On("Detect", mock.Anything, alert.DetectInput{FeedbackID: "fb-2", Now: fixedNow}).
		Return(alert.DetectOutput{}, nil).
		Run(func(mock.Arguments) { close(done) }).
		Once()

	client, sub := startSubscriber(t, uc, Config{Workers: 1})
	defer sub.Shutdown(context.Background())

	ctx := context.Background()
	require.NoError(t, client.Publish(ctx, "feedback:company-1:created", `not json`).Err())
	require.NoError(t, client.Publish(ctx, "feedback:company-1:created", `{}`).Err())
	require.NoError(t, client.Publish(ctx, "feedback:company-1:created", `{"feedback_id":"fb-1"}`).Err())
	require.NoError(t, client.Publish(ctx, "feedback:company-1:updated", `{"feedback_id":"fb-9"}`).Err())
	require.NoError(t, client.Publish(ctx, "feedback:company-2:created", `{"feedback_id":"fb-2"}`).Err())

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Detect was not called for the last message")
	}
	uc.AssertExpectations(t)
	uc.AssertNumberOfCalls(t, "Detect", 2)
}

func TestSubscriberDetectsInParallel(t *testing.T) {
	uc := &mockUseCase{}
	gate := make(chan struct{})
	slowStarted := make(chan struct{})
	fastDone := make(chan struct{})
	uc.On("Detect", mock.Anything, alert.DetectInput{FeedbackID: "fb-slow", Now: fixedNow}).
		Return(alert.DetectOutput{}, nil).
		Run(func(mock.Arguments) {
			close(slowStarted)
			<-gate
		}).
		Once()
	uc.On("Detect", mock.Anything, alert.DetectInput{FeedbackID: "fb-fast", Now: fixedNow}).
		Return(alert.DetectOutput{}, nil).
		Run(func(mock.Arguments) { close(fastDone) }).
		Once()

	client, sub := startSubscriber(t, uc, Config{Workers: 2, QueueSize: 4})
	defer sub.Shutdown(context.Background())
	defer close(gate)

	ctx := context.Background()
	require.NoError(t, client.Publish(ctx, "feedback:company-1:created", `{"feedback_id":"fb-slow"}`).Err())
	select {
	case <-slowStarted:
	case <-time.After(2 * time.Second):
		t.Fatal("Detect was not called for the first message")
	}

	require.NoError(t, client.Publish(ctx, "feedback:company-1:created", `{"feedback_id":"fb-fast"}`).Err())
	select {
	case <-fastDone:
	case <-time.After(2 * time.Second):
		t.Fatal("second message waited for the first Detect")
	}
}

func TestNewAppliesPoolDefaults(t *testing.T) {
	s := New(nil, &mockUseCase{}, log.NewNop(), Config{}).(*subscriber)
	assert.Equal(t, defaultWorkers, s.workers)
	assert.Equal(t, defaultQueueSize, cap(s.jobs))
}

func TestSubscriberShutdown(t *testing.T) {
	_, sub := startSubscriber(t, &mockUseCase{}, Config{})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, sub.Shutdown(ctx))
}
