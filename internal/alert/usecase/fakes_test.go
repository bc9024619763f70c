package usecase

import (
	"context"
	"fmt"
	"sync"

	"sla-srv/internal/alert/repository"
	"sla-srv/internal/escalation"
	fbRepo "sla-srv/internal/feedback/repository"
	"sla-srv/internal/model"
	"sla-srv/pkg/discord"
	"sla-srv/pkg/paginator"

	"github.com/stretchr/testify/mock"
)

// fakeRepo keeps alerts in memory with one alert per feedback and
// compare-and-set updates.
type fakeRepo struct {
	mu   sync.Mutex
	rows map[string]model.Alert
	seq  int
}

func newFakeRepo(seed ...model.Alert) *fakeRepo {
	f := &fakeRepo{rows: map[string]model.Alert{}}
	for _, a := range seed {
		f.rows[a.ID] = a
	}
	return f
}

func (f *fakeRepo) Create(_ context.Context, opts repository.CreateOptions) (model.Alert, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.rows {
		if a.FeedbackID == opts.Alert.FeedbackID {
			return a, false, nil
		}
	}
	f.seq++
	a := opts.Alert
	a.ID = fmt.Sprintf("alert-%d", f.seq)
	f.rows[a.ID] = a
	return a, true, nil
}

func (f *fakeRepo) Detail(_ context.Context, id string) (model.Alert, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.rows[id]
	if !ok {
		return model.Alert{}, repository.ErrNotFound
	}
	return a, nil
}

func (f *fakeRepo) Get(_ context.Context, opts repository.GetOptions) ([]model.Alert, paginator.Paginator, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var res []model.Alert
	for _, a := range f.rows {
		if matches(a, opts.Filter) {
			res = append(res, a)
		}
	}
	return res, paginator.Paginator{Total: int64(len(res)), Count: int64(len(res))}, nil
}

func (f *fakeRepo) Update(_ context.Context, opts repository.UpdateOptions) (model.Alert, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.rows[opts.Alert.ID]
	if !ok || cur.Status != opts.PrevStatus || cur.IsEscalated != opts.PrevEscalated {
		return model.Alert{}, repository.ErrStale
	}
	f.rows[opts.Alert.ID] = opts.Alert
	return opts.Alert, nil
}

func (f *fakeRepo) Count(_ context.Context, opts repository.CountOptions) (repository.Counts, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := repository.Counts{
		ByStatus:   map[model.AlertStatus]int64{},
		BySeverity: map[model.Severity]int64{},
	}
	for _, a := range f.rows {
		if !matches(a, opts.Filter) {
			continue
		}
		c.Total++
		c.ByStatus[a.Status]++
		c.BySeverity[a.Severity]++
	}
	return c, nil
}

func (f *fakeRepo) AvgMinutesToAcknowledge(_ context.Context, opts repository.CountOptions) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var sum float64
	var n int
	for _, a := range f.rows {
		if !matches(a, opts.Filter) || a.AcknowledgedAt == nil {
			continue
		}
		sum += a.AcknowledgedAt.Sub(a.CreatedAt).Minutes()
		n++
	}
	if n == 0 {
		return 0, nil
	}
	return sum / float64(n), nil
}

func (f *fakeRepo) get(id string) model.Alert {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rows[id]
}

func matches(a model.Alert, flt repository.Filter) bool {
	if !(model.TenantFilter{CompanyIDs: flt.CompanyIDs}).Allows(a.CompanyID) {
		return false
	}
	if flt.FeedbackID != "" && a.FeedbackID != flt.FeedbackID {
		return false
	}
	if len(flt.Statuses) > 0 && !containsStatus(flt.Statuses, a.Status) {
		return false
	}
	if len(flt.Severities) > 0 && !containsSeverity(flt.Severities, a.Severity) {
		return false
	}
	return true
}

func containsStatus(list []model.AlertStatus, s model.AlertStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func containsSeverity(list []model.Severity, s model.Severity) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

type fakeFeedbackRepo struct {
	items map[string]model.Feedback
}

func (f fakeFeedbackRepo) Detail(_ context.Context, id string) (model.Feedback, error) {
	fb, ok := f.items[id]
	if !ok {
		return model.Feedback{}, fbRepo.ErrNotFound
	}
	return fb, nil
}

func (f fakeFeedbackRepo) ListOpen(context.Context, fbRepo.ListOpenOptions) ([]model.Feedback, error) {
	return nil, nil
}

type mockEscalations struct {
	escalation.UseCase
	mock.Mock
}

func (m *mockEscalations) Trigger(ctx context.Context, ip escalation.TriggerInput) (escalation.EvaluateOutput, error) {
	args := m.Called(ctx, ip)
	return args.Get(0).(escalation.EvaluateOutput), args.Error(1)
}

type mockDiscord struct {
	mock.Mock
}

func (m *mockDiscord) SendEmbed(ctx context.Context, options discord.MessageOptions) error {
	return m.Called(ctx, options).Error(0)
}

func (m *mockDiscord) SendError(ctx context.Context, title, description string, err error) error {
	return m.Called(ctx, title, description, err).Error(0)
}

func (m *mockDiscord) ReportBug(ctx context.Context, message string) error {
	return m.Called(ctx, message).Error(0)
}

func (m *mockDiscord) GetWebhookURL() string {
	return ""
}

func (m *mockDiscord) Close() error {
	return nil
}
