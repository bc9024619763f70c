package usecase

import (
	"context"

	"sla-srv/internal/model"
	"sla-srv/internal/slarule"
	"sla-srv/internal/slarule/repository"
)

func (uc *usecase) Match(ctx context.Context, fb model.Feedback) (slarule.MatchOutput, error) {
	active := true
	candidates, err := uc.repo.List(ctx, repository.ListOptions{
		Filter: repository.Filter{
			CompanyIDs:     []string{fb.CompanyID, model.GlobalCompanyID},
			FeedbackTypeID: fb.FeedbackTypeID,
			IsActive:       &active,
		},
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.slarule.usecase.Match.List: %v", err)
		return slarule.MatchOutput{}, err
	}

	rule, ok := slarule.MatchRule(slarule.DescriptorOf(fb), candidates)
	if !ok {
		return slarule.MatchOutput{}, slarule.ErrNoApplicableRule
	}

	return slarule.MatchOutput{
		Rule:      rule,
		Deadlines: slarule.ComputeDeadlines(rule, fb.CreatedAt),
	}, nil
}
