package mailer

import (
	"sla-srv/pkg/log"

	"gopkg.in/gomail.v2"
)

// Config holds SMTP settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// Mail is a single outgoing message. HTML is used as the body when set,
// Text otherwise; when both are set Text becomes the alternative part.
type Mail struct {
	To      string
	Subject string
	Text    string
	HTML    string
	Headers map[string]string
}

type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type implMailer struct {
	l      log.Logger
	cfg    Config
	dialer sender
}
