package usecase

import (
	"context"
	"errors"
	"time"

	"sla-srv/internal/alert"
	"sla-srv/internal/alert/repository"
	"sla-srv/internal/escalation"
	"sla-srv/internal/feedback"
	fbRepo "sla-srv/internal/feedback/repository"
	"sla-srv/internal/model"
)

// Detect classifies a created feedback and opens an alert when it reaches the
// threshold. Critical alerts escalate the feedback and page ops; failures of
// those side effects are logged only.
func (uc *implUseCase) Detect(ctx context.Context, ip alert.DetectInput) (alert.DetectOutput, error) {
	out := alert.DetectOutput{FeedbackID: ip.FeedbackID}

	fb, err := uc.feedback.Detail(ctx, ip.FeedbackID)
	if err != nil {
		if errors.Is(err, fbRepo.ErrNotFound) {
			return out, feedback.ErrFeedbackNotFound
		}
		uc.l.Errorf(ctx, "internal.alert.usecase.Detect.Detail: %v", err)
		return out, err
	}

	det := uc.detector.Detect(fb)
	out.Detection = det
	if !uc.detector.ShouldAlert(det) {
		uc.l.Debugf(ctx, "internal.alert.usecase.Detect: feedback %s below threshold (severity=%q)", fb.ID, det.Severity)
		return out, nil
	}

	a, created, err := uc.repo.Create(ctx, repository.CreateOptions{Alert: model.Alert{
		CompanyID:        fb.CompanyID,
		FeedbackID:       fb.ID,
		Severity:         det.Severity,
		AlertType:        det.AlertType(),
		DetectedKeywords: det.Keywords,
		SentimentScore:   det.Score,
		Status:           model.AlertStatusNew,
	}})
	if err != nil {
		uc.l.Errorf(ctx, "internal.alert.usecase.Detect.Create: %v", err)
		return out, err
	}
	out.Alert = &a
	out.Created = created
	if !created {
		uc.l.Debugf(ctx, "internal.alert.usecase.Detect: feedback %s already has alert %s", fb.ID, a.ID)
		return out, nil
	}

	uc.metrics.AlertCreated(string(det.Severity))
	uc.l.Infof(ctx, "internal.alert.usecase.Detect: alert %s (%s) for feedback %s", a.ID, a.Severity, fb.ID)

	if det.Escalates() {
		out.Escalated = uc.escalate(ctx, fb, &a, det.TriggerReason(), ip.Now)
		uc.notifyOps(ctx, fb, a)
	}
	return out, nil
}

// escalate triggers the escalation engine for fb and flags a as escalated.
// It reports whether both steps succeeded.
func (uc *implUseCase) escalate(ctx context.Context, fb model.Feedback, a *model.Alert, reason model.TriggerReason, now time.Time) bool {
	if _, err := uc.escalations.Trigger(ctx, escalation.TriggerInput{
		Feedback: fb,
		Reason:   reason,
		Now:      now,
	}); err != nil {
		uc.l.Warnf(ctx, "internal.alert.usecase.escalate.Trigger: feedback=%s reason=%s: %v", fb.ID, reason, err)
		return false
	}

	next, err := alert.Apply(*a, alert.Change{Action: alert.ActionEscalate, At: now})
	if err != nil {
		uc.l.Warnf(ctx, "internal.alert.usecase.escalate.Apply: alert=%s: %v", a.ID, err)
		return false
	}
	updated, err := uc.repo.Update(ctx, repository.UpdateOptions{
		Alert:         next,
		PrevStatus:    a.Status,
		PrevEscalated: a.IsEscalated,
	})
	if err != nil {
		uc.l.Warnf(ctx, "internal.alert.usecase.escalate.Update: alert=%s: %v", a.ID, err)
		return false
	}

	*a = updated
	return true
}
