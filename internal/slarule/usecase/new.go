package usecase

import (
	"sla-srv/internal/slarule"
	"sla-srv/internal/slarule/repository"
	pkgLog "sla-srv/pkg/log"
)

type usecase struct {
	l    pkgLog.Logger
	repo repository.Repository
}

func New(l pkgLog.Logger, repo repository.Repository) slarule.UseCase {
	return &usecase{
		l:    l,
		repo: repo,
	}
}
