package job

import (
	"context"
	"errors"
	"testing"
	"time"

	"sla-srv/internal/notification"
	"sla-srv/pkg/log"
	"sla-srv/pkg/scheduler"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockUseCase struct {
	notification.UseCase
	mock.Mock
}

func (m *mockUseCase) ProcessDue(ctx context.Context, now time.Time) (notification.ProcessDueOutput, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(notification.ProcessDueOutput), args.Error(1)
}

func TestProcessDuePassesClock(t *testing.T) {
	at := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	uc := &mockUseCase{}
	uc.On("ProcessDue", mock.Anything, at).Return(notification.ProcessDueOutput{Scheduled: 2, Dropped: 1}, nil).Once()

	h := New(log.NewNop(), uc)
	h.clock = func() time.Time { return at }
	h.ProcessDue(context.Background())

	uc.AssertExpectations(t)
}

func TestProcessDueErrorIsLogged(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("ProcessDue", mock.Anything, mock.Anything).Return(notification.ProcessDueOutput{}, errors.New("db down")).Once()

	New(log.NewNop(), uc).ProcessDue(context.Background())
	uc.AssertExpectations(t)
}

func TestRegister(t *testing.T) {
	s := scheduler.New(log.NewNop())
	assert.NoError(t, New(log.NewNop(), &mockUseCase{}).Register(s, "@every 1m"))
}
