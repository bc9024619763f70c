package notification

import (
	"time"

	"sla-srv/internal/model"
)

// Claim reserves a pending notification for one dispatcher. Saving the claim
// with a compare-and-set on pending makes concurrent dispatchers skip it.
func Claim(n model.Notification) (model.Notification, error) {
	if n.Status != model.NotificationStatusPending {
		return n, ErrNotPending
	}
	n.Status = model.NotificationStatusSending
	return n, nil
}

// MarkSent records a successful send. In-app notifications are delivered as
// soon as they are published.
func MarkSent(n model.Notification, at time.Time) model.Notification {
	n.Status = model.NotificationStatusSent
	n.SentAt = &at
	n.ErrorMessage = nil
	if n.Channel == model.ChannelInApp {
		n.Status = model.NotificationStatusDelivered
		n.DeliveredAt = &at
	}
	return n
}

// MarkFailed records a failed attempt.
func MarkFailed(n model.Notification, cause error) model.Notification {
	msg := cause.Error()
	n.Status = model.NotificationStatusFailed
	n.RetryCount++
	n.ErrorMessage = &msg
	return n
}

// Retry moves a retryable notification back to pending. The retry count is
// kept.
func Retry(n model.Notification) (model.Notification, error) {
	if !n.CanRetry() {
		return n, ErrCannotRetry
	}
	n.Status = model.NotificationStatusPending
	n.ErrorMessage = nil
	return n, nil
}

// Cancel cancels a pending notification scheduled after now.
func Cancel(n model.Notification, now time.Time) (model.Notification, error) {
	if n.Status != model.NotificationStatusPending || n.ScheduledAt == nil || !n.ScheduledAt.After(now) {
		return n, ErrCannotCancel
	}
	n.Status = model.NotificationStatusCancelled
	return n, nil
}

// MarkRead sets ReadAt on an in-app notification of userID. A notification
// already read is returned unchanged with changed=false.
func MarkRead(n model.Notification, userID string, now time.Time) (model.Notification, bool, error) {
	if n.Channel != model.ChannelInApp {
		return n, false, ErrNotInApp
	}
	if n.Recipient != model.UserRecipient(userID) {
		return n, false, ErrNotRecipient
	}
	if n.ReadAt != nil {
		return n, false, nil
	}
	n.ReadAt = &now
	return n, true, nil
}

// MarkDelivered applies a provider delivery receipt.
func MarkDelivered(n model.Notification, at time.Time) (model.Notification, error) {
	if n.Status != model.NotificationStatusSent {
		return n, ErrNotDeliverable
	}
	n.Status = model.NotificationStatusDelivered
	n.DeliveredAt = &at
	return n, nil
}

// RetryBackoff is the wait after the n-th failure before an automatic retry.
func RetryBackoff(retryCount int) time.Duration {
	if retryCount < 0 {
		retryCount = 0
	}
	return time.Duration(1<<uint(retryCount)) * time.Minute
}
