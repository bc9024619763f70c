package scope

import "errors"

var (
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired is wrapped together with ErrInvalidToken.
	ErrTokenExpired = errors.New("token expired")
)
