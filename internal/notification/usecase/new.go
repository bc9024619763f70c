package usecase

import (
	"time"

	"sla-srv/internal/model"
	"sla-srv/internal/notification"
	"sla-srv/internal/notification/repository"
	pkgLog "sla-srv/pkg/log"
	"sla-srv/pkg/metrics"
)

const (
	defaultBatchSize  = 500
	defaultStaleAfter = 2 * time.Minute
)

type implUseCase struct {
	l         pkgLog.Logger
	repo      repository.Repository
	templates repository.TemplateRepository
	contacts  repository.ContactRepository
	senders   map[model.Channel]notification.Sender
	queue     notification.Queue
	metrics   *metrics.Metrics
	cfg       notification.Config
}

// Deps groups the collaborators of the notification usecase. A nil Queue
// leaves every notification to the due sweep.
type Deps struct {
	Repo      repository.Repository
	Templates repository.TemplateRepository
	Contacts  repository.ContactRepository
	Senders   map[model.Channel]notification.Sender
	Queue     notification.Queue
	Metrics   *metrics.Metrics
}

func New(l pkgLog.Logger, deps Deps, cfg notification.Config) notification.UseCase {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	if cfg.StaleAfter <= 0 {
		cfg.StaleAfter = defaultStaleAfter
	}
	return &implUseCase{
		l:         l,
		repo:      deps.Repo,
		templates: deps.Templates,
		contacts:  deps.Contacts,
		senders:   deps.Senders,
		queue:     deps.Queue,
		metrics:   deps.Metrics,
		cfg:       cfg,
	}
}
