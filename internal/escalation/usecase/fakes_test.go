package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"sla-srv/internal/escalation/repository"
	fbRepo "sla-srv/internal/feedback/repository"
	"sla-srv/internal/model"
	"sla-srv/internal/notification"
	"sla-srv/internal/slarule"
	"sla-srv/pkg/paginator"
)

// fakeRepo keeps escalations in memory and enforces the partial unique
// index on unresolved (feedback, level) pairs.
type fakeRepo struct {
	mu       sync.Mutex
	rows     []model.Escalation
	seq      int
	notified map[string]repository.RecordNotifiedOptions
}

func newFakeRepo(seed ...model.Escalation) *fakeRepo {
	return &fakeRepo{
		rows:     append([]model.Escalation(nil), seed...),
		notified: map[string]repository.RecordNotifiedOptions{},
	}
}

func (f *fakeRepo) ListByFeedback(_ context.Context, feedbackID string) ([]model.Escalation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var res []model.Escalation
	for _, e := range f.rows {
		if e.FeedbackID == feedbackID {
			res = append(res, e)
		}
	}
	return res, nil
}

func (f *fakeRepo) CreateIfAbsent(_ context.Context, opts repository.CreateOptions) (model.Escalation, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	esc := opts.Escalation
	for _, e := range f.rows {
		if e.FeedbackID == esc.FeedbackID && e.EscalationLevel == esc.EscalationLevel && !e.IsResolved {
			return model.Escalation{}, false, nil
		}
	}
	f.seq++
	esc.ID = fmt.Sprintf("esc-%d", f.seq)
	f.rows = append(f.rows, esc)
	return esc, true, nil
}

func (f *fakeRepo) RecordNotified(_ context.Context, opts repository.RecordNotifiedOptions) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notified[opts.ID] = opts
	return nil
}

func (f *fakeRepo) Resolve(_ context.Context, opts repository.ResolveOptions) (model.Escalation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, e := range f.rows {
		if e.ID != opts.ID {
			continue
		}
		if e.IsResolved {
			return model.Escalation{}, repository.ErrNotUnresolved
		}
		at := opts.At
		by := opts.ResolvedBy
		f.rows[i].IsResolved = true
		f.rows[i].ResolvedAt = &at
		f.rows[i].ResolvedBy = &by
		f.rows[i].ResolutionNotes = opts.Notes
		return f.rows[i], nil
	}
	return model.Escalation{}, repository.ErrNotUnresolved
}

func (f *fakeRepo) Detail(_ context.Context, id string) (model.Escalation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.rows {
		if e.ID == id {
			return e, nil
		}
	}
	return model.Escalation{}, repository.ErrNotFound
}

func (f *fakeRepo) Get(_ context.Context, opts repository.GetOptions) ([]model.Escalation, paginator.Paginator, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var res []model.Escalation
	for _, e := range f.rows {
		if opts.Filter.FeedbackID != "" && e.FeedbackID != opts.Filter.FeedbackID {
			continue
		}
		res = append(res, e)
	}
	return res, paginator.Paginator{Total: int64(len(res)), Count: int64(len(res))}, nil
}

func (f *fakeRepo) Count(_ context.Context, _ repository.CountOptions) (repository.Counts, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := repository.Counts{ByLevel: map[int]int64{}}
	for _, e := range f.rows {
		c.ByLevel[e.EscalationLevel]++
		if e.IsResolved {
			c.Resolved++
		} else {
			c.Open++
		}
	}
	return c, nil
}

// levels returns the sorted levels of fb, resolved or not.
func (f *fakeRepo) levels(feedbackID string) []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	var res []int
	for _, e := range f.rows {
		if e.FeedbackID == feedbackID {
			res = append(res, e.EscalationLevel)
		}
	}
	sort.Ints(res)
	return res
}

type fakeFeedbackRepo struct {
	items []model.Feedback
}

func (f *fakeFeedbackRepo) Detail(_ context.Context, id string) (model.Feedback, error) {
	for _, fb := range f.items {
		if fb.ID == id {
			return fb, nil
		}
	}
	return model.Feedback{}, fbRepo.ErrNotFound
}

func (f *fakeFeedbackRepo) ListOpen(_ context.Context, opts fbRepo.ListOpenOptions) ([]model.Feedback, error) {
	sorted := append([]model.Feedback(nil), f.items...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].ID < sorted[j].ID
		}
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	var page []model.Feedback
	for _, fb := range sorted {
		if !fb.Status.IsOpen() {
			continue
		}
		if a := opts.After; a != nil {
			if fb.CreatedAt.Before(a.CreatedAt) || (fb.CreatedAt.Equal(a.CreatedAt) && fb.ID <= a.ID) {
				continue
			}
		}
		page = append(page, fb)
		if len(page) == opts.Limit {
			break
		}
	}
	return page, nil
}

// fakeRules matches every feedback to rule, or to nothing when rule is nil.
type fakeRules struct {
	slarule.UseCase
	rule *model.SlaRule
}

func (f *fakeRules) Match(_ context.Context, fb model.Feedback) (slarule.MatchOutput, error) {
	if f.rule == nil {
		return slarule.MatchOutput{}, slarule.ErrNoApplicableRule
	}
	return slarule.MatchOutput{
		Rule:      *f.rule,
		Deadlines: slarule.ComputeDeadlines(*f.rule, fb.CreatedAt),
	}, nil
}

type fakeNotifier struct {
	notification.UseCase
	mu      sync.Mutex
	created []notification.CreateInput
	err     error
}

func (f *fakeNotifier) Create(_ context.Context, ip notification.CreateInput) (model.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, ip)
	if f.err != nil {
		return model.Notification{}, f.err
	}
	return model.Notification{ID: fmt.Sprintf("n-%d", len(f.created)), Status: model.NotificationStatusPending}, nil
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.created)
}

type noLock struct{}

func (noLock) Acquire(context.Context, string) (func(), error) {
	return func() {}, nil
}
