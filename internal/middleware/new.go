package middleware

import (
	"sla-srv/pkg/log"
	"sla-srv/pkg/scope"
)

type Middleware struct {
	l           log.Logger
	jwtManager  scope.Manager
	internalKey string
}

func New(l log.Logger, jwtManager scope.Manager, internalKey string) Middleware {
	return Middleware{
		l:           l,
		jwtManager:  jwtManager,
		internalKey: internalKey,
	}
}
