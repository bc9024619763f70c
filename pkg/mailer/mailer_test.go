package mailer

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"sla-srv/pkg/log"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type fakeSender struct {
	sent  []*gomail.Message
	err   error
	delay time.Duration
}

func (f *fakeSender) DialAndSend(m ...*gomail.Message) error {
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	f.sent = append(f.sent, m...)
	return f.err
}

func newTestMailer(s sender) *implMailer {
	return &implMailer{
		l:      log.NewNop(),
		cfg:    Config{Host: "smtp.local", Port: 587, From: "sla@example.com", FromName: "SLA"},
		dialer: s,
	}
}

func TestNewValidatesConfig(t *testing.T) {
	_, err := New(nil, Config{From: "a@b.c"})
	assert.ErrorIs(t, err, ErrHostRequired)

	_, err = New(nil, Config{Host: "smtp.local"})
	assert.ErrorIs(t, err, ErrFromRequired)

	m, err := New(nil, Config{Host: "smtp.local", Port: 25, From: "a@b.c"})
	require.NoError(t, err)
	assert.NotNil(t, m)
}

func TestSend(t *testing.T) {
	s := &fakeSender{}
	m := newTestMailer(s)

	err := m.Send(context.Background(), Mail{To: "ops@example.com", Subject: "Breach", Text: "level 1"})
	require.NoError(t, err)
	require.Len(t, s.sent, 1)

	var buf bytes.Buffer
	_, err = s.sent[0].WriteTo(&buf)
	require.NoError(t, err)
	raw := buf.String()
	assert.Contains(t, raw, "To: ops@example.com")
	assert.Contains(t, raw, "Subject: Breach")
	assert.True(t, strings.Contains(raw, "level 1"))
}

func TestSendRejectsIncompleteMail(t *testing.T) {
	m := newTestMailer(&fakeSender{})

	assert.ErrorIs(t, m.Send(context.Background(), Mail{Text: "x"}), ErrRecipientRequired)
	assert.ErrorIs(t, m.Send(context.Background(), Mail{To: "a@b.c"}), ErrEmptyBody)
}

func TestSendWrapsDialError(t *testing.T) {
	boom := errors.New("connection refused")
	m := newTestMailer(&fakeSender{err: boom})

	err := m.Send(context.Background(), Mail{To: "a@b.c", HTML: "<b>x</b>"})
	assert.ErrorIs(t, err, boom)
}

func TestSendHonoursContext(t *testing.T) {
	m := newTestMailer(&fakeSender{delay: 200 * time.Millisecond})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := m.Send(ctx, Mail{To: "a@b.c", Text: "x"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
