package mailer

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

func (m *implMailer) buildMessage(mail Mail) *gomail.Message {
	msg := gomail.NewMessage()
	if m.cfg.FromName != "" {
		msg.SetAddressHeader("From", m.cfg.From, m.cfg.FromName)
	} else {
		msg.SetHeader("From", m.cfg.From)
	}
	msg.SetHeader("To", mail.To)
	msg.SetHeader("Subject", mail.Subject)
	for k, v := range mail.Headers {
		msg.SetHeader(k, v)
	}

	switch {
	case mail.HTML != "" && mail.Text != "":
		msg.SetBody("text/plain", mail.Text)
		msg.AddAlternative("text/html", mail.HTML)
	case mail.HTML != "":
		msg.SetBody("text/html", mail.HTML)
	default:
		msg.SetBody("text/plain", mail.Text)
	}
	return msg
}

// Send dials the SMTP server and delivers the message. gomail has no context
// support, so a cancelled ctx only stops the caller from waiting.
func (m *implMailer) Send(ctx context.Context, mail Mail) error {
	if mail.To == "" {
		return ErrRecipientRequired
	}
	if mail.Text == "" && mail.HTML == "" {
		return ErrEmptyBody
	}

	msg := m.buildMessage(mail)
	done := make(chan error, 1)
	go func() {
		done <- m.dialer.DialAndSend(msg)
	}()

	select {
	case <-ctx.Done():
		m.l.Warnf(ctx, "pkg.mailer.Send: gave up waiting for smtp: %v", ctx.Err())
		return ctx.Err()
	case err := <-done:
		if err != nil {
			m.l.Errorf(ctx, "pkg.mailer.Send.DialAndSend: %v", err)
			return fmt.Errorf("smtp send: %w", err)
		}
		return nil
	}
}
