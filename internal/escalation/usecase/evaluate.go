package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sla-srv/internal/escalation"
	"sla-srv/internal/escalation/repository"
	"sla-srv/internal/feedback"
	"sla-srv/internal/model"
	"sla-srv/internal/notification"
	"sla-srv/internal/slarule"
)

func (uc *implUseCase) Evaluate(ctx context.Context, fb model.Feedback, now time.Time) (escalation.EvaluateOutput, error) {
	out := escalation.EvaluateOutput{FeedbackID: fb.ID}
	if !fb.Status.IsOpen() {
		return out, feedback.ErrFeedbackClosed
	}

	match, err := uc.rules.Match(ctx, fb)
	if err != nil {
		if errors.Is(err, slarule.ErrNoApplicableRule) {
			uc.l.Debugf(ctx, "internal.escalation.usecase.Evaluate: no sla rule applies to feedback %s", fb.ID)
			return out, nil
		}
		uc.l.Errorf(ctx, "internal.escalation.usecase.Evaluate.Match: %v", err)
		return out, err
	}

	return uc.escalate(ctx, fb, match, match.Deadlines.TargetLevel(now), model.TriggerSlaBreach, now)
}

func (uc *implUseCase) Trigger(ctx context.Context, ip escalation.TriggerInput) (escalation.EvaluateOutput, error) {
	out := escalation.EvaluateOutput{FeedbackID: ip.Feedback.ID}
	if !ip.Reason.IsValid() || ip.Reason == model.TriggerSlaBreach {
		return out, escalation.ErrInvalidReason
	}
	if !ip.Feedback.Status.IsOpen() {
		return out, feedback.ErrFeedbackClosed
	}

	match, err := uc.rules.Match(ctx, ip.Feedback)
	if err != nil {
		if !errors.Is(err, slarule.ErrNoApplicableRule) {
			uc.l.Errorf(ctx, "internal.escalation.usecase.Trigger.Match: %v", err)
		}
		return out, err
	}

	target := match.Deadlines.TargetLevel(ip.Now)
	if target < model.EscalationLevel1 {
		target = model.EscalationLevel1
	}
	return uc.escalate(ctx, ip.Feedback, match, target, ip.Reason, ip.Now)
}

// escalate creates the missing levels up to target under the feedback lock,
// then notifies the recipients of each level it created.
func (uc *implUseCase) escalate(
	ctx context.Context,
	fb model.Feedback,
	match slarule.MatchOutput,
	target int,
	reason model.TriggerReason,
	now time.Time,
) (escalation.EvaluateOutput, error) {
	if target > model.MaxEscalationLevel {
		target = model.MaxEscalationLevel
	}
	out := escalation.EvaluateOutput{
		FeedbackID:  fb.ID,
		RuleID:      match.Rule.ID,
		TargetLevel: target,
	}
	if target < model.EscalationLevel1 {
		return out, nil
	}

	release, err := uc.locker.Acquire(ctx, fb.ID)
	if err != nil {
		uc.l.Errorf(ctx, "internal.escalation.usecase.escalate.Acquire: %v", err)
		return out, err
	}
	created, level, err := uc.createMissing(ctx, fb, match.Rule, target, reason, now)
	release()

	out.Level = level
	for i := range created {
		uc.notify(ctx, &created[i], match, now)
	}
	out.Created = created

	return out, err
}

func (uc *implUseCase) createMissing(
	ctx context.Context,
	fb model.Feedback,
	rule model.SlaRule,
	target int,
	reason model.TriggerReason,
	now time.Time,
) ([]model.Escalation, int, error) {
	escs, err := uc.repo.ListByFeedback(ctx, fb.ID)
	if err != nil {
		uc.l.Errorf(ctx, "internal.escalation.usecase.createMissing.ListByFeedback: %v", err)
		return nil, 0, err
	}

	level := model.CurrentLevel(escs)
	var created []model.Escalation
	for n := level + 1; n <= target; n++ {
		if uc.present(escs, n) {
			continue
		}

		esc, ok, err := uc.repo.CreateIfAbsent(ctx, repository.CreateOptions{
			Escalation: model.Escalation{
				CompanyID:       fb.CompanyID,
				FeedbackID:      fb.ID,
				SlaRuleID:       rule.ID,
				EscalationLevel: n,
				TriggerReason:   reason,
				EscalatedAt:     now,
			},
		})
		if err != nil {
			uc.l.Errorf(ctx, "internal.escalation.usecase.createMissing.CreateIfAbsent: %v", err)
			return created, level, err
		}
		if !ok {
			continue
		}

		uc.metrics.EscalationCreated(n, string(reason))
		uc.l.Infof(ctx, "internal.escalation.usecase.createMissing: feedback %s escalated to level %d (%s)", fb.ID, n, reason)
		created = append(created, esc)
		level = n
	}

	return created, level, nil
}

// present reports whether level n must not be created again.
func (uc *implUseCase) present(escs []model.Escalation, n int) bool {
	for _, e := range escs {
		if e.EscalationLevel != n {
			continue
		}
		if !e.IsResolved || !uc.cfg.AllowResolvedRecurrence {
			return true
		}
	}
	return false
}

// notify queues one notification per recipient and channel. Failures are
// logged; the escalation stands regardless.
func (uc *implUseCase) notify(ctx context.Context, esc *model.Escalation, match slarule.MatchOutput, now time.Time) {
	recipients := match.Rule.Recipients(esc.EscalationLevel)
	channels := match.Rule.NotificationChannels
	if len(recipients) == 0 || len(channels) == 0 {
		uc.l.Warnf(ctx, "internal.escalation.usecase.notify: rule %s has no recipients for level %d", match.Rule.ID, esc.EscalationLevel)
		return
	}

	title := fmt.Sprintf("SLA escalation level %d", esc.EscalationLevel)
	message := fmt.Sprintf("Feedback %s passed the level %d deadline of rule %q.", esc.FeedbackID, esc.EscalationLevel, match.Rule.Name)
	data := map[string]any{
		"feedback_id":      esc.FeedbackID,
		"escalation_id":    esc.ID,
		"escalation_level": esc.EscalationLevel,
		"trigger_reason":   string(esc.TriggerReason),
		"rule_id":          match.Rule.ID,
		"rule_name":        match.Rule.Name,
		"deadline":         match.Deadlines.Level(esc.EscalationLevel).Format(time.RFC3339),
	}

	for _, userID := range recipients {
		for _, ch := range channels {
			_, err := uc.notifier.Create(ctx, notification.CreateInput{
				CompanyID: esc.CompanyID,
				Recipient: model.UserRecipient(userID),
				Type:      notification.TypeSlaEscalation,
				Title:     title,
				Message:   message,
				Channel:   ch,
				Data:      data,
				Now:       now,
			})
			if err != nil {
				uc.l.Warnf(ctx, "internal.escalation.usecase.notify.Create: user %s channel %s: %v", userID, ch, err)
			}
		}
	}

	esc.NotifiedUsers = recipients
	esc.NotificationChannelsUsed = channels
	if err := uc.repo.RecordNotified(ctx, repository.RecordNotifiedOptions{
		ID:       esc.ID,
		Users:    recipients,
		Channels: channels,
	}); err != nil {
		uc.l.Errorf(ctx, "internal.escalation.usecase.notify.RecordNotified: %v", err)
	}
}
