package redis

import (
	"context"
	"encoding/json"

	"sla-srv/internal/alert"

	"github.com/redis/go-redis/v9"
)

type feedbackCreatedMessage struct {
	FeedbackID string `json:"feedback_id"`
}

func (s *subscriber) handleMessage(ctx context.Context, msg *redis.Message) {
	var m feedbackCreatedMessage
	if err := json.Unmarshal([]byte(msg.Payload), &m); err != nil || m.FeedbackID == "" {
		s.logger.Warnf(ctx, "internal.alert.delivery.redis.handleMessage: bad payload on %s: %q", msg.Channel, msg.Payload)
		return
	}

	out, err := s.uc.Detect(ctx, alert.DetectInput{FeedbackID: m.FeedbackID, Now: s.clock()})
	if err != nil {
		s.logger.Warnf(ctx, "internal.alert.delivery.redis.handleMessage.Detect: channel=%s feedback=%s err=%v", msg.Channel, m.FeedbackID, err)
		return
	}
	if out.Created {
		s.logger.Debugf(ctx, "internal.alert.delivery.redis.handleMessage: alert %s for feedback %s", out.Alert.ID, m.FeedbackID)
	}
}
