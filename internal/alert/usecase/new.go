package usecase

import (
	"sla-srv/internal/alert"
	"sla-srv/internal/alert/repository"
	"sla-srv/internal/escalation"
	fbRepo "sla-srv/internal/feedback/repository"
	"sla-srv/pkg/discord"
	"sla-srv/pkg/log"
	"sla-srv/pkg/metrics"
)

const defaultRecentLimit = 10

type implUseCase struct {
	l           log.Logger
	repo        repository.Repository
	feedback    fbRepo.Repository
	escalations escalation.UseCase
	discord     discord.IDiscord
	detector    alert.Detector
	metrics     *metrics.Metrics
}

// Deps groups the collaborators of the alert usecase. Discord and Metrics
// are optional.
type Deps struct {
	Repo        repository.Repository
	Feedback    fbRepo.Repository
	Escalations escalation.UseCase
	Discord     discord.IDiscord
	Metrics     *metrics.Metrics
}

func New(l log.Logger, deps Deps, policy alert.Policy) alert.UseCase {
	return &implUseCase{
		l:           l,
		repo:        deps.Repo,
		feedback:    deps.Feedback,
		escalations: deps.Escalations,
		discord:     deps.Discord,
		detector:    alert.NewDetector(policy),
		metrics:     deps.Metrics,
	}
}
