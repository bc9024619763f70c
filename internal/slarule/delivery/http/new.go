package http

import (
	"sla-srv/internal/escalation"
	"sla-srv/internal/slarule"
	"sla-srv/pkg/discord"
	"sla-srv/pkg/log"
)

type Handler struct {
	l     log.Logger
	uc    slarule.UseCase
	escUC escalation.UseCase
	d     discord.IDiscord
}

func New(l log.Logger, uc slarule.UseCase, escUC escalation.UseCase, d discord.IDiscord) Handler {
	return Handler{
		l:     l,
		uc:    uc,
		escUC: escUC,
		d:     d,
	}
}
