package job

import (
	"context"
	"errors"
	"testing"
	"time"

	"sla-srv/internal/escalation"
	"sla-srv/pkg/log"
	"sla-srv/pkg/scheduler"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockUseCase struct {
	escalation.UseCase
	mock.Mock
}

func (m *mockUseCase) Scan(ctx context.Context, now time.Time) (escalation.ScanResult, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(escalation.ScanResult), args.Error(1)
}

func TestScanPassesClock(t *testing.T) {
	at := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	uc := &mockUseCase{}
	uc.On("Scan", mock.Anything, at).Return(escalation.ScanResult{Evaluated: 3, Failed: 1}, nil).Once()

	h := New(log.NewNop(), uc)
	h.clock = func() time.Time { return at }
	h.Scan(context.Background())

	uc.AssertExpectations(t)
}

func TestScanErrorIsLogged(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Scan", mock.Anything, mock.Anything).Return(escalation.ScanResult{}, errors.New("db down")).Once()

	New(log.NewNop(), uc).Scan(context.Background())
	uc.AssertExpectations(t)
}

func TestRegisterValidatesSpec(t *testing.T) {
	h := New(log.NewNop(), &mockUseCase{})
	s := scheduler.New(log.NewNop())
	assert.NoError(t, h.Register(s, "@every 5m"))
	assert.Error(t, h.Register(s, "every five minutes"))
}
