package http

import (
	"time"

	"sla-srv/internal/escalation"
	"sla-srv/pkg/discord"
	"sla-srv/pkg/log"
)

type Handler struct {
	l     log.Logger
	uc    escalation.UseCase
	d     discord.IDiscord
	clock func() time.Time
}

func New(l log.Logger, uc escalation.UseCase, d discord.IDiscord) Handler {
	return Handler{
		l:     l,
		uc:    uc,
		d:     d,
		clock: time.Now,
	}
}
