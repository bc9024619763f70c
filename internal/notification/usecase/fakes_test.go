package usecase

import (
	"context"
	"fmt"
	"sync"

	"sla-srv/internal/model"
	"sla-srv/internal/notification"
	"sla-srv/internal/notification/repository"
	"sla-srv/pkg/paginator"
)

// fakeRepo keeps notifications in memory with compare-and-set updates.
type fakeRepo struct {
	mu   sync.Mutex
	rows map[string]model.Notification
	seq  int
	due  []string
}

func newFakeRepo(seed ...model.Notification) *fakeRepo {
	f := &fakeRepo{rows: map[string]model.Notification{}}
	for _, n := range seed {
		f.rows[n.ID] = n
	}
	return f
}

func (f *fakeRepo) Create(_ context.Context, opts repository.CreateOptions) (model.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	n := opts.Notification
	n.ID = fmt.Sprintf("n-%d", f.seq)
	f.rows[n.ID] = n
	return n, nil
}

func (f *fakeRepo) Detail(_ context.Context, id string) (model.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.rows[id]
	if !ok {
		return model.Notification{}, repository.ErrNotFound
	}
	return n, nil
}

func (f *fakeRepo) Get(_ context.Context, opts repository.GetOptions) ([]model.Notification, paginator.Paginator, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var res []model.Notification
	for _, n := range f.rows {
		if matches(n, opts.Filter) {
			res = append(res, n)
		}
	}
	return res, paginator.Paginator{Total: int64(len(res)), Count: int64(len(res))}, nil
}

func (f *fakeRepo) CountUnread(_ context.Context, flt repository.Filter) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	flt.UnreadOnly = true
	var c int64
	for _, n := range f.rows {
		if matches(n, flt) {
			c++
		}
	}
	return c, nil
}

func (f *fakeRepo) Update(_ context.Context, opts repository.UpdateOptions) (model.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.rows[opts.Notification.ID]
	if !ok || cur.Status != opts.PrevStatus || cur.RetryCount != opts.PrevRetryCount {
		return model.Notification{}, repository.ErrStale
	}
	f.rows[opts.Notification.ID] = opts.Notification
	return opts.Notification, nil
}

func (f *fakeRepo) ListDue(_ context.Context, opts repository.ListDueOptions) ([]model.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var res []model.Notification
	for _, id := range f.due {
		n := f.rows[id]
		if n.Status == model.NotificationStatusPending && n.IsDue(opts.Now) {
			res = append(res, n)
		}
	}
	return res, nil
}

func (f *fakeRepo) ListRetryable(_ context.Context, opts repository.ListDueOptions) ([]model.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var res []model.Notification
	for _, n := range f.rows {
		if n.CanRetry() && !n.UpdatedAt.Add(notification.RetryBackoff(n.RetryCount)).After(opts.Now) {
			res = append(res, n)
		}
	}
	return res, nil
}

func (f *fakeRepo) ListStuck(_ context.Context, opts repository.ListDueOptions) ([]model.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var res []model.Notification
	for _, n := range f.rows {
		if n.Status == model.NotificationStatusSending && !n.UpdatedAt.After(opts.StaleBefore) {
			res = append(res, n)
		}
	}
	return res, nil
}

func (f *fakeRepo) get(id string) model.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rows[id]
}

func matches(n model.Notification, flt repository.Filter) bool {
	if !(model.TenantFilter{CompanyIDs: flt.CompanyIDs}).Allows(n.CompanyID) {
		return false
	}
	if flt.Recipient != nil && n.Recipient != *flt.Recipient {
		return false
	}
	if flt.Channel != "" && n.Channel != flt.Channel {
		return false
	}
	if flt.UnreadOnly && n.IsRead() {
		return false
	}
	return true
}

type fakeTemplates struct {
	items []model.NotificationTemplate
	err   error
}

func (f fakeTemplates) ListCandidates(_ context.Context, opts repository.TemplateOptions) ([]model.NotificationTemplate, error) {
	if f.err != nil {
		return nil, f.err
	}
	var res []model.NotificationTemplate
	for _, t := range f.items {
		if t.Type == opts.Type && t.Channel == opts.Channel {
			res = append(res, t)
		}
	}
	return res, nil
}

type fakeContacts map[model.Recipient]model.Contact

func (f fakeContacts) Contact(_ context.Context, r model.Recipient) (model.Contact, error) {
	c, ok := f[r]
	if !ok {
		return model.Contact{}, repository.ErrContactNotFound
	}
	return c, nil
}

// recordingSender stores every message and fails with err when set. When
// gate is set, Send reports on entered and blocks until gate is closed.
type recordingSender struct {
	mu      sync.Mutex
	msgs    []notification.Message
	err     error
	gate    chan struct{}
	entered chan struct{}
}

func (s *recordingSender) Send(_ context.Context, msg notification.Message) error {
	if s.gate != nil {
		s.entered <- struct{}{}
		<-s.gate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msgs = append(s.msgs, msg)
	return s.err
}

func (s *recordingSender) sent() []notification.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]notification.Message(nil), s.msgs...)
}

type fakeQueue struct {
	mu   sync.Mutex
	ids  []string
	full bool
}

func (q *fakeQueue) Enqueue(id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.full {
		return false
	}
	q.ids = append(q.ids, id)
	return true
}

func (q *fakeQueue) queued() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]string(nil), q.ids...)
}
