package sender

import (
	"context"
	"encoding/json"
	"time"

	"sla-srv/internal/model"
	"sla-srv/internal/notification"
	pkgRedis "sla-srv/pkg/redis"
)

const inAppMessageType = "notification"

// InAppChannel is the Redis channel the websocket gateway relays to the
// recipient's open sessions.
func InAppChannel(r model.Recipient) string {
	if r.Kind == model.RecipientClient {
		return "client_noti:" + r.ID
	}
	return "user_noti:" + r.ID
}

type inAppMessage struct {
	Type    string       `json:"type"`
	Payload inAppPayload `json:"payload"`
}

type inAppPayload struct {
	NotificationID string         `json:"notification_id"`
	Title          string         `json:"title"`
	Message        string         `json:"message"`
	Data           map[string]any `json:"data,omitempty"`
	SentAt         time.Time      `json:"sent_at"`
}

type inAppSender struct {
	redis pkgRedis.IRedis
	clock func() time.Time
}

func (s inAppSender) Send(ctx context.Context, msg notification.Message) error {
	now := time.Now
	if s.clock != nil {
		now = s.clock
	}
	body, err := json.Marshal(inAppMessage{
		Type: inAppMessageType,
		Payload: inAppPayload{
			NotificationID: msg.NotificationID,
			Title:          msg.Title,
			Message:        msg.Body,
			Data:           msg.Data,
			SentAt:         now().UTC(),
		},
	})
	if err != nil {
		return err
	}
	return s.redis.Publish(ctx, InAppChannel(msg.Recipient), body)
}
