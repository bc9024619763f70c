package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"sla-srv/internal/model"
	"sla-srv/internal/notification"
	pkgLog "sla-srv/pkg/log"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	tenantA = "11111111-1111-4111-8111-111111111111"
	tenantB = "22222222-2222-4222-8222-222222222222"
	manager = "55555555-5555-4555-8555-555555555555"
)

var now = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	uc    *implUseCase
	repo  *fakeRepo
	queue *fakeQueue
	email *recordingSender
	inApp *recordingSender
	tmpl  *fakeTemplates
}

func newTestEnv(seed ...model.Notification) testEnv {
	env := testEnv{
		repo:  newFakeRepo(seed...),
		queue: &fakeQueue{},
		email: &recordingSender{},
		inApp: &recordingSender{},
		tmpl:  &fakeTemplates{},
	}
	env.uc = New(pkgLog.NewNop(), Deps{
		Repo:      env.repo,
		Templates: env.tmpl,
		Contacts: fakeContacts{
			model.UserRecipient(manager): {Recipient: model.UserRecipient(manager), Email: "manager@example.com"},
		},
		Senders: map[model.Channel]notification.Sender{
			model.ChannelEmail: env.email,
			model.ChannelInApp: env.inApp,
		},
		Queue: env.queue,
	}, notification.Config{}).(*implUseCase)
	return env
}

func pending(id string, ch model.Channel) model.Notification {
	return model.Notification{
		ID:        id,
		CompanyID: tenantA,
		Recipient: model.UserRecipient(manager),
		Type:      notification.TypeSlaEscalation,
		Title:     "Feedback overdue",
		Message:   "Feedback fb-1 passed level 1",
		Data:      map[string]any{"feedback_id": "fb-1", "level": 1},
		Channel:   ch,
		Status:    model.NotificationStatusPending,
		CreatedAt: now.Add(-time.Minute),
		UpdatedAt: now.Add(-time.Minute),
	}
}

func TestCreateQueuesDueNotification(t *testing.T) {
	env := newTestEnv()

	n, err := env.uc.Create(context.Background(), notification.CreateInput{
		CompanyID: tenantA,
		Recipient: model.UserRecipient(manager),
		Type:      notification.TypeSlaEscalation,
		Title:     "Feedback overdue",
		Channel:   model.ChannelEmail,
		Now:       now,
	})
	require.NoError(t, err)
	assert.Equal(t, model.NotificationStatusPending, n.Status)
	assert.Equal(t, []string{n.ID}, env.queue.queued())
}

func TestCreateScheduledIsNotQueued(t *testing.T) {
	env := newTestEnv()
	later := now.Add(time.Hour)

	n, err := env.uc.Create(context.Background(), notification.CreateInput{
		CompanyID:   tenantA,
		Recipient:   model.ClientRecipient("client-1"),
		Type:        notification.TypeFeedbackAlert,
		Title:       "Reminder",
		Channel:     model.ChannelSMS,
		ScheduledAt: &later,
		Now:         now,
	})
	require.NoError(t, err)
	assert.Equal(t, model.NotificationStatusPending, n.Status)
	assert.Empty(t, env.queue.queued())
}

func TestCreateValidation(t *testing.T) {
	env := newTestEnv()
	base := notification.CreateInput{
		CompanyID: tenantA,
		Recipient: model.UserRecipient(manager),
		Type:      notification.TypeSlaEscalation,
		Title:     "t",
		Channel:   model.ChannelEmail,
		Now:       now,
	}

	tcs := map[string]func(*notification.CreateInput){
		"no recipient": func(ip *notification.CreateInput) { ip.Recipient = model.Recipient{} },
		"bad kind":     func(ip *notification.CreateInput) { ip.Recipient.Kind = "team" },
		"bad channel":  func(ip *notification.CreateInput) { ip.Channel = "fax" },
		"blank title":  func(ip *notification.CreateInput) { ip.Title = "  " },
		"missing type": func(ip *notification.CreateInput) { ip.Type = "" },
	}
	for name, mutate := range tcs {
		t.Run(name, func(t *testing.T) {
			ip := base
			mutate(&ip)
			_, err := env.uc.Create(context.Background(), ip)
			assert.ErrorIs(t, err, notification.ErrInvalidInput)
		})
	}
}

func TestDispatchRendersTemplate(t *testing.T) {
	env := newTestEnv(pending("n-1", model.ChannelEmail))
	env.tmpl.items = []model.NotificationTemplate{
		{CompanyID: model.GlobalCompanyID, Type: notification.TypeSlaEscalation, Channel: model.ChannelEmail,
			Title: "Global {{title}}", Message: "global", IsDefault: true, IsActive: true},
		{CompanyID: tenantA, Type: notification.TypeSlaEscalation, Channel: model.ChannelEmail,
			Subject: "[L{{level}}] {{title}}", Title: "{{title}}", Message: "Feedback {{feedback_id}} level {{level}}", IsActive: true},
	}

	n, err := env.uc.Dispatch(context.Background(), "n-1", now)
	require.NoError(t, err)
	assert.Equal(t, model.NotificationStatusSent, n.Status)
	require.NotNil(t, n.SentAt)
	assert.Equal(t, now, *n.SentAt)

	msgs := env.email.sent()
	require.Len(t, msgs, 1)
	assert.Equal(t, "manager@example.com", msgs[0].Address)
	assert.Equal(t, "[L1] Feedback overdue", msgs[0].Subject)
	assert.Equal(t, "Feedback fb-1 level 1", msgs[0].Body)
}

func TestDispatchFallsBackToRawWithoutTemplate(t *testing.T) {
	env := newTestEnv(pending("n-1", model.ChannelEmail))
	env.tmpl.err = errors.New("db down")

	_, err := env.uc.Dispatch(context.Background(), "n-1", now)
	require.NoError(t, err)

	msgs := env.email.sent()
	require.Len(t, msgs, 1)
	assert.Equal(t, "Feedback overdue", msgs[0].Subject)
	assert.Equal(t, "Feedback fb-1 passed level 1", msgs[0].Body)
}

func TestDispatchInAppIsDelivered(t *testing.T) {
	env := newTestEnv(pending("n-1", model.ChannelInApp))

	n, err := env.uc.Dispatch(context.Background(), "n-1", now)
	require.NoError(t, err)
	assert.Equal(t, model.NotificationStatusDelivered, n.Status)
	require.NotNil(t, n.DeliveredAt)
	assert.Equal(t, manager, env.inApp.sent()[0].Address)
}

func TestDispatchRecordsFailures(t *testing.T) {
	tcs := map[string]struct {
		n       model.Notification
		prepare func(env testEnv)
		wantErr string
	}{
		"sender error": {
			n:       pending("n-1", model.ChannelEmail),
			prepare: func(env testEnv) { env.email.err = errors.New("smtp: 550") },
			wantErr: "smtp: 550",
		},
		"no sender": {
			n:       pending("n-1", model.ChannelWebhook),
			wantErr: notification.ErrNoSender.Error(),
		},
		"unknown contact": {
			n: func() model.Notification {
				n := pending("n-1", model.ChannelEmail)
				n.Recipient = model.ClientRecipient("ghost")
				return n
			}(),
			wantErr: notification.ErrUnknownContact.Error(),
		},
	}
	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			env := newTestEnv(tc.n)
			if tc.prepare != nil {
				tc.prepare(env)
			}

			n, err := env.uc.Dispatch(context.Background(), tc.n.ID, now)
			require.NoError(t, err)
			assert.Equal(t, model.NotificationStatusFailed, n.Status)
			assert.Equal(t, 1, n.RetryCount)
			require.NotNil(t, n.ErrorMessage)
			assert.Equal(t, tc.wantErr, *n.ErrorMessage)
		})
	}
}

func TestDispatchNoAddress(t *testing.T) {
	n := pending("n-1", model.ChannelEmail)
	env := newTestEnv(n)
	env.uc.contacts = fakeContacts{model.UserRecipient(manager): {Recipient: model.UserRecipient(manager)}}

	got, err := env.uc.Dispatch(context.Background(), "n-1", now)
	require.NoError(t, err)
	assert.Equal(t, model.NotificationStatusFailed, got.Status)
	assert.Empty(t, env.email.sent())
}

func TestDispatchSkipsNotDueOrNotPending(t *testing.T) {
	later := now.Add(time.Hour)
	scheduled := pending("n-1", model.ChannelEmail)
	scheduled.ScheduledAt = &later
	sent := pending("n-2", model.ChannelEmail)
	sent.Status = model.NotificationStatusSent

	env := newTestEnv(scheduled, sent)
	for _, id := range []string{"n-1", "n-2"} {
		_, err := env.uc.Dispatch(context.Background(), id, now)
		require.NoError(t, err)
	}
	assert.Empty(t, env.email.sent())
	assert.Equal(t, model.NotificationStatusPending, env.repo.get("n-1").Status)
}

func TestConcurrentDispatchSendsOnce(t *testing.T) {
	env := newTestEnv(pending("n-1", model.ChannelEmail))
	env.email.gate = make(chan struct{})
	env.email.entered = make(chan struct{}, 2)

	results := make(chan model.Notification, 2)
	for i := 0; i < 2; i++ {
		go func() {
			n, err := env.uc.Dispatch(context.Background(), "n-1", now)
			assert.NoError(t, err)
			results <- n
		}()
	}

	select {
	case <-env.email.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("no dispatcher reached the sender")
	}
	assert.Equal(t, model.NotificationStatusSending, env.repo.get("n-1").Status)

	select {
	case n := <-results:
		assert.NotEqual(t, model.NotificationStatusSent, n.Status)
		assert.Empty(t, env.email.sent())
	case <-time.After(2 * time.Second):
		close(env.email.gate)
		t.Fatal("second dispatcher did not skip the claimed notification")
	}

	close(env.email.gate)
	select {
	case n := <-results:
		assert.Equal(t, model.NotificationStatusSent, n.Status)
	case <-time.After(2 * time.Second):
		t.Fatal("claiming dispatcher did not finish")
	}

	assert.Len(t, env.email.sent(), 1)
	assert.Equal(t, model.NotificationStatusSent, env.repo.get("n-1").Status)
}

func TestDispatchSkipsClaimed(t *testing.T) {
	n := pending("n-1", model.ChannelEmail)
	n.Status = model.NotificationStatusSending
	env := newTestEnv(n)

	got, err := env.uc.Dispatch(context.Background(), "n-1", now)
	require.NoError(t, err)
	assert.Equal(t, model.NotificationStatusSending, got.Status)
	assert.Empty(t, env.email.sent())
}

func TestDispatchUnknownID(t *testing.T) {
	env := newTestEnv()
	_, err := env.uc.Dispatch(context.Background(), "missing", now)
	assert.ErrorIs(t, err, notification.ErrNotificationNotFound)
}

func TestRetryBudgetExhaustsAfterThreeFailures(t *testing.T) {
	env := newTestEnv(pending("n-1", model.ChannelEmail))
	env.email.err = errors.New("smtp down")
	ctx := context.Background()
	sc := model.Scope{UserID: manager, CompanyID: tenantA}
	tenant := model.TenantFilter{CompanyIDs: []string{tenantA}}

	_, err := env.uc.Dispatch(ctx, "n-1", now)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		_, err := env.uc.Retry(ctx, sc, notification.RetryInput{ID: "n-1", Tenant: tenant})
		require.NoError(t, err)
		_, err = env.uc.Dispatch(ctx, "n-1", now)
		require.NoError(t, err)
	}

	n := env.repo.get("n-1")
	assert.Equal(t, model.NotificationStatusFailed, n.Status)
	assert.Equal(t, 3, n.RetryCount)
	assert.False(t, n.CanRetry())

	_, err = env.uc.Retry(ctx, sc, notification.RetryInput{ID: "n-1", Tenant: tenant})
	assert.ErrorIs(t, err, notification.ErrGuardViolation)
	assert.Equal(t, 3, env.repo.get("n-1").RetryCount)
	assert.Len(t, env.queue.queued(), 2)
}

func TestRetryOtherTenantIsNotFound(t *testing.T) {
	n := pending("n-1", model.ChannelEmail)
	n.Status = model.NotificationStatusFailed
	n.RetryCount = 1
	env := newTestEnv(n)

	_, err := env.uc.Retry(context.Background(), model.Scope{}, notification.RetryInput{
		ID:     "n-1",
		Tenant: model.TenantFilter{CompanyIDs: []string{tenantB}},
	})
	assert.ErrorIs(t, err, notification.ErrNotificationNotFound)
}

func TestCancel(t *testing.T) {
	later := now.Add(time.Hour)
	scheduled := pending("n-1", model.ChannelEmail)
	scheduled.ScheduledAt = &later
	immediate := pending("n-2", model.ChannelEmail)
	env := newTestEnv(scheduled, immediate)
	ctx := context.Background()

	n, err := env.uc.Cancel(ctx, model.Scope{}, notification.CancelInput{ID: "n-1", Now: now})
	require.NoError(t, err)
	assert.Equal(t, model.NotificationStatusCancelled, n.Status)

	_, err = env.uc.Cancel(ctx, model.Scope{}, notification.CancelInput{ID: "n-2", Now: now})
	assert.ErrorIs(t, err, notification.ErrCannotCancel)
}

func TestMarkAsReadIsIdempotent(t *testing.T) {
	n := pending("n-1", model.ChannelInApp)
	n.Status = model.NotificationStatusDelivered
	env := newTestEnv(n)
	ctx := context.Background()
	sc := model.Scope{UserID: manager}

	first, err := env.uc.MarkAsRead(ctx, sc, notification.MarkAsReadInput{ID: "n-1", Now: now})
	require.NoError(t, err)
	require.NotNil(t, first.ReadAt)
	assert.Equal(t, model.NotificationStatusDelivered, first.Status)

	second, err := env.uc.MarkAsRead(ctx, sc, notification.MarkAsReadInput{ID: "n-1", Now: now.Add(time.Hour)})
	require.NoError(t, err)
	assert.Equal(t, now, *second.ReadAt)
}

func TestMarkAsReadGuards(t *testing.T) {
	email := pending("n-1", model.ChannelEmail)
	inApp := pending("n-2", model.ChannelInApp)
	env := newTestEnv(email, inApp)
	ctx := context.Background()

	_, err := env.uc.MarkAsRead(ctx, model.Scope{UserID: manager}, notification.MarkAsReadInput{ID: "n-1", Now: now})
	assert.ErrorIs(t, err, notification.ErrNotInApp)

	_, err = env.uc.MarkAsRead(ctx, model.Scope{UserID: "someone-else"}, notification.MarkAsReadInput{ID: "n-2", Now: now})
	assert.ErrorIs(t, err, notification.ErrNotificationNotFound)
}

func TestMarkDelivered(t *testing.T) {
	sent := pending("n-1", model.ChannelEmail)
	sent.Status = model.NotificationStatusSent
	env := newTestEnv(sent, pending("n-2", model.ChannelEmail))
	ctx := context.Background()

	n, err := env.uc.MarkDelivered(ctx, notification.MarkDeliveredInput{ID: "n-1", Now: now})
	require.NoError(t, err)
	assert.Equal(t, model.NotificationStatusDelivered, n.Status)

	_, err = env.uc.MarkDelivered(ctx, notification.MarkDeliveredInput{ID: "n-2", Now: now})
	assert.ErrorIs(t, err, notification.ErrNotDeliverable)
}

func TestListDefaultsToCaller(t *testing.T) {
	read := pending("n-1", model.ChannelInApp)
	read.ReadAt = &now
	unread := pending("n-2", model.ChannelInApp)
	other := pending("n-3", model.ChannelInApp)
	other.Recipient = model.UserRecipient("someone-else")
	env := newTestEnv(read, unread, other)

	out, err := env.uc.List(context.Background(), model.Scope{UserID: manager}, notification.ListInput{})
	require.NoError(t, err)
	assert.Len(t, out.Notifications, 2)
	assert.EqualValues(t, 1, out.Unread)

	out, err = env.uc.List(context.Background(), model.Scope{UserID: manager}, notification.ListInput{UnreadOnly: true})
	require.NoError(t, err)
	require.Len(t, out.Notifications, 1)
	assert.Equal(t, "n-2", out.Notifications[0].ID)
}

func TestProcessDue(t *testing.T) {
	due := pending("n-1", model.ChannelEmail)
	backedOff := pending("n-2", model.ChannelEmail)
	backedOff.Status = model.NotificationStatusFailed
	backedOff.RetryCount = 2
	backedOff.UpdatedAt = now.Add(-5 * time.Minute)
	waiting := pending("n-3", model.ChannelEmail)
	waiting.Status = model.NotificationStatusFailed
	waiting.RetryCount = 2
	waiting.UpdatedAt = now.Add(-time.Minute)
	exhausted := pending("n-4", model.ChannelEmail)
	exhausted.Status = model.NotificationStatusFailed
	exhausted.RetryCount = 3
	exhausted.UpdatedAt = now.Add(-time.Hour)

	env := newTestEnv(due, backedOff, waiting, exhausted)
	env.repo.due = []string{"n-1"}

	out, err := env.uc.ProcessDue(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, notification.ProcessDueOutput{Scheduled: 1, Retried: 1}, out)
	assert.ElementsMatch(t, []string{"n-1", "n-2"}, env.queue.queued())
	assert.Equal(t, model.NotificationStatusPending, env.repo.get("n-2").Status)
	assert.Equal(t, 2, env.repo.get("n-2").RetryCount)
	assert.Equal(t, model.NotificationStatusFailed, env.repo.get("n-3").Status)
}

func TestProcessDueFailsStuckSending(t *testing.T) {
	stuck := pending("n-1", model.ChannelEmail)
	stuck.Status = model.NotificationStatusSending
	stuck.UpdatedAt = now.Add(-10 * time.Minute)
	fresh := pending("n-2", model.ChannelEmail)
	fresh.Status = model.NotificationStatusSending
	fresh.UpdatedAt = now.Add(-10 * time.Second)

	env := newTestEnv(stuck, fresh)

	out, err := env.uc.ProcessDue(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Recovered)

	n := env.repo.get("n-1")
	assert.Equal(t, model.NotificationStatusFailed, n.Status)
	assert.Equal(t, 1, n.RetryCount)
	require.NotNil(t, n.ErrorMessage)
	assert.Equal(t, notification.ErrDispatchInterrupted.Error(), *n.ErrorMessage)
	assert.Equal(t, model.NotificationStatusSending, env.repo.get("n-2").Status)
	assert.Empty(t, env.email.sent())
}

func TestProcessDueCountsDropped(t *testing.T) {
	env := newTestEnv(pending("n-1", model.ChannelEmail))
	env.repo.due = []string{"n-1"}
	env.queue.full = true

	out, err := env.uc.ProcessDue(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Dropped)
	assert.Equal(t, model.NotificationStatusPending, env.repo.get("n-1").Status)
}
