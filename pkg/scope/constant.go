package scope

import "time"

const (
	// TokenTTL bounds tokens minted by CreateToken.
	TokenTTL = 24 * time.Hour
	Issuer   = "sla-srv"
)
