package notification

import (
	"errors"
	"testing"
	"time"

	"sla-srv/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func TestRetryBudget(t *testing.T) {
	n := model.Notification{Channel: model.ChannelEmail, Status: model.NotificationStatusPending}
	sendErr := errors.New("smtp down")

	for i := 1; i <= model.MaxNotificationRetries; i++ {
		n = MarkFailed(n, sendErr)
		assert.Equal(t, i, n.RetryCount)
		require.NotNil(t, n.ErrorMessage)
		assert.Equal(t, "smtp down", *n.ErrorMessage)

		if i < model.MaxNotificationRetries {
			var err error
			n, err = Retry(n)
			require.NoError(t, err)
			assert.Equal(t, model.NotificationStatusPending, n.Status)
			assert.Nil(t, n.ErrorMessage)
			assert.Equal(t, i, n.RetryCount)
		}
	}

	assert.False(t, n.CanRetry())
	got, err := Retry(n)
	assert.ErrorIs(t, err, ErrCannotRetry)
	assert.ErrorIs(t, err, ErrGuardViolation)
	assert.Equal(t, n, got)
}

func TestRetryOnlyFromFailed(t *testing.T) {
	_, err := Retry(model.Notification{Status: model.NotificationStatusSent})
	assert.ErrorIs(t, err, ErrCannotRetry)
}

func TestClaim(t *testing.T) {
	n, err := Claim(model.Notification{Status: model.NotificationStatusPending, RetryCount: 1})
	require.NoError(t, err)
	assert.Equal(t, model.NotificationStatusSending, n.Status)
	assert.Equal(t, 1, n.RetryCount)

	for _, st := range []model.NotificationStatus{model.NotificationStatusSending, model.NotificationStatusSent, model.NotificationStatusFailed} {
		_, err := Claim(model.Notification{Status: st})
		assert.ErrorIs(t, err, ErrNotPending)
		assert.ErrorIs(t, err, ErrGuardViolation)
	}
}

func TestMarkSent(t *testing.T) {
	email := MarkSent(model.Notification{Channel: model.ChannelEmail}, fixedNow)
	assert.Equal(t, model.NotificationStatusSent, email.Status)
	assert.Nil(t, email.DeliveredAt)

	inApp := MarkSent(model.Notification{Channel: model.ChannelInApp}, fixedNow)
	assert.Equal(t, model.NotificationStatusDelivered, inApp.Status)
	require.NotNil(t, inApp.DeliveredAt)
	assert.Equal(t, fixedNow, *inApp.SentAt)
}

func TestCancel(t *testing.T) {
	future := fixedNow.Add(time.Hour)
	past := fixedNow.Add(-time.Hour)

	n, err := Cancel(model.Notification{Status: model.NotificationStatusPending, ScheduledAt: &future}, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, model.NotificationStatusCancelled, n.Status)

	_, err = Cancel(model.Notification{Status: model.NotificationStatusPending, ScheduledAt: &past}, fixedNow)
	assert.ErrorIs(t, err, ErrCannotCancel)
	_, err = Cancel(model.Notification{Status: model.NotificationStatusPending}, fixedNow)
	assert.ErrorIs(t, err, ErrCannotCancel)
	_, err = Cancel(model.Notification{Status: model.NotificationStatusSent, ScheduledAt: &future}, fixedNow)
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestMarkReadIsIdempotent(t *testing.T) {
	n := model.Notification{
		Channel:   model.ChannelInApp,
		Status:    model.NotificationStatusFailed,
		Recipient: model.UserRecipient("user-1"),
	}

	read, changed, err := MarkRead(n, "user-1", fixedNow)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, fixedNow, *read.ReadAt)
	assert.Equal(t, model.NotificationStatusFailed, read.Status)

	again, changed, err := MarkRead(read, "user-1", fixedNow.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, fixedNow, *again.ReadAt)
}

func TestMarkReadGuards(t *testing.T) {
	_, _, err := MarkRead(model.Notification{Channel: model.ChannelEmail, Recipient: model.UserRecipient("u")}, "u", fixedNow)
	assert.ErrorIs(t, err, ErrNotInApp)

	_, _, err = MarkRead(model.Notification{Channel: model.ChannelInApp, Recipient: model.ClientRecipient("u")}, "u", fixedNow)
	assert.ErrorIs(t, err, ErrNotRecipient)
}

func TestMarkDelivered(t *testing.T) {
	n, err := MarkDelivered(model.Notification{Status: model.NotificationStatusSent}, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, model.NotificationStatusDelivered, n.Status)

	_, err = MarkDelivered(model.Notification{Status: model.NotificationStatusFailed}, fixedNow)
	assert.ErrorIs(t, err, ErrNotDeliverable)
}

func TestRetryBackoff(t *testing.T) {
	assert.Equal(t, time.Minute, RetryBackoff(0))
	assert.Equal(t, 2*time.Minute, RetryBackoff(1))
	assert.Equal(t, 8*time.Minute, RetryBackoff(3))
}
