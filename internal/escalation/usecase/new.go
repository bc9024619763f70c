package usecase

import (
	"sla-srv/internal/escalation"
	"sla-srv/internal/escalation/repository"
	fbRepo "sla-srv/internal/feedback/repository"
	"sla-srv/internal/notification"
	"sla-srv/internal/slarule"
	pkgLog "sla-srv/pkg/log"
	"sla-srv/pkg/metrics"
)

const (
	defaultWorkers  = 8
	defaultPageSize = 200
)

type implUseCase struct {
	l        pkgLog.Logger
	repo     repository.Repository
	feedback fbRepo.Repository
	rules    slarule.UseCase
	notifier notification.UseCase
	locker   escalation.Locker
	metrics  *metrics.Metrics
	cfg      escalation.Config
}

// Deps groups the collaborators of the escalation usecase.
type Deps struct {
	Repo     repository.Repository
	Feedback fbRepo.Repository
	Rules    slarule.UseCase
	Notifier notification.UseCase
	Locker   escalation.Locker
	Metrics  *metrics.Metrics
}

func New(l pkgLog.Logger, deps Deps, cfg escalation.Config) escalation.UseCase {
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}
	locker := deps.Locker
	if locker == nil {
		locker = escalation.NewMemoryLocker()
	}

	return &implUseCase{
		l:        l,
		repo:     deps.Repo,
		feedback: deps.Feedback,
		rules:    deps.Rules,
		notifier: deps.Notifier,
		locker:   locker,
		metrics:  deps.Metrics,
		cfg:      cfg,
	}
}
