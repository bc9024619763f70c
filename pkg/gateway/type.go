package gateway

import (
	"time"

	"sla-srv/pkg/log"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

type Config struct {
	BaseURL       string
	APIKey        string
	Timeout       time.Duration
	RetryCount    int
	RatePerSecond float64
	Burst         int
}

type SMSRequest struct {
	To   string `json:"to"`
	Text string `json:"text"`
	Ref  string `json:"ref,omitempty"`
}

type PushRequest struct {
	Token string            `json:"token"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
	Ref   string            `json:"ref,omitempty"`
}

// Receipt is the gateway's acknowledgement of an accepted message.
type Receipt struct {
	MessageID string `json:"message_id"`
	Status    string `json:"status"`
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type implClient struct {
	l       log.Logger
	http    *resty.Client
	limiter *rate.Limiter
}
