package sender

import (
	"context"
	"fmt"

	"sla-srv/internal/notification"
	"sla-srv/pkg/gateway"
)

type smsSender struct {
	gw gateway.Client
}

func (s smsSender) Send(ctx context.Context, msg notification.Message) error {
	if msg.Address == "" {
		return notification.ErrNoAddress
	}
	text := msg.Body
	if msg.Title != "" {
		text = msg.Title + ": " + msg.Body
	}
	_, err := s.gw.SendSMS(ctx, gateway.SMSRequest{
		To:   msg.Address,
		Text: text,
		Ref:  msg.NotificationID,
	})
	return err
}

type pushSender struct {
	gw gateway.Client
}

func (s pushSender) Send(ctx context.Context, msg notification.Message) error {
	if msg.Address == "" {
		return notification.ErrNoAddress
	}
	_, err := s.gw.SendPush(ctx, gateway.PushRequest{
		Token: msg.Address,
		Title: msg.Title,
		Body:  msg.Body,
		Data:  stringData(msg.Data),
		Ref:   msg.NotificationID,
	})
	return err
}

type webhookSender struct {
	gw gateway.Client
}

type webhookPayload struct {
	NotificationID string         `json:"notification_id"`
	CompanyID      string         `json:"company_id"`
	Channel        string         `json:"channel"`
	Subject        string         `json:"subject,omitempty"`
	Title          string         `json:"title"`
	Message        string         `json:"message"`
	Data           map[string]any `json:"data,omitempty"`
}

func (s webhookSender) Send(ctx context.Context, msg notification.Message) error {
	if msg.Address == "" {
		return notification.ErrNoAddress
	}
	return s.gw.PostWebhook(ctx, msg.Address, webhookPayload{
		NotificationID: msg.NotificationID,
		CompanyID:      msg.CompanyID,
		Channel:        string(msg.Channel),
		Subject:        msg.Subject,
		Title:          msg.Title,
		Message:        msg.Body,
		Data:           msg.Data,
	})
}

// stringData flattens data for push payloads, which carry strings only.
func stringData(data map[string]any) map[string]string {
	if len(data) == 0 {
		return nil
	}
	out := make(map[string]string, len(data))
	for k, v := range data {
		if v == nil {
			continue
		}
		out[k] = fmt.Sprint(v)
	}
	return out
}
