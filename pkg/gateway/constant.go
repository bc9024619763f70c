package gateway

import "time"

const (
	DefaultTimeout       = 10 * time.Second
	DefaultRatePerSecond = 20
	DefaultBurst         = 5
	UserAgent            = "sla-srv-gateway/1.0"

	smsPath  = "/v1/sms"
	pushPath = "/v1/push"
)
