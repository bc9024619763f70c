package sender

import (
	"context"

	"sla-srv/internal/notification"
	"sla-srv/pkg/mailer"
)

type emailSender struct {
	mailer mailer.Mailer
}

func (s emailSender) Send(ctx context.Context, msg notification.Message) error {
	if msg.Address == "" {
		return notification.ErrNoAddress
	}
	subject := msg.Subject
	if subject == "" {
		subject = msg.Title
	}
	return s.mailer.Send(ctx, mailer.Mail{
		To:      msg.Address,
		Subject: subject,
		Text:    msg.Body,
		Headers: map[string]string{"X-Notification-ID": msg.NotificationID},
	})
}
