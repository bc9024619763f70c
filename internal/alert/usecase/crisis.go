package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"sla-srv/internal/model"
	"sla-srv/pkg/discord"
)

const maxQuotedContent = 500

// notifyOps posts the crisis embed of a critical alert to the ops channel.
func (uc *implUseCase) notifyOps(ctx context.Context, fb model.Feedback, a model.Alert) {
	if uc.discord == nil {
		return
	}

	rating := "N/A"
	if fb.Rating != nil {
		rating = strconv.Itoa(*fb.Rating) + "/5"
	}
	escalated := "No"
	if a.IsEscalated {
		escalated = "Yes"
	}

	fields := []discord.EmbedField{
		buildField("Severity", strings.ToUpper(string(a.Severity)), true),
		buildField("Alert Type", string(a.AlertType), true),
		buildField("Sentiment Score", formatFloat(a.SentimentScore), true),
		buildField("Rating", rating, true),
		buildField("Feedback Type", fb.FeedbackTypeKind, true),
		buildField("Escalated", escalated, true),
		buildField("Company", a.CompanyID, false),
	}
	if len(a.DetectedKeywords) > 0 {
		fields = append(fields, buildField("Detected Keywords", strings.Join(a.DetectedKeywords, ", "), false))
	}
	if content := strings.TrimSpace(fb.Content); content != "" {
		fields = append(fields, buildField("Feedback", "> "+truncateText(content, maxQuotedContent), false))
	}

	opts := discord.MessageOptions{
		Type:        discord.MessageTypeError,
		Level:       discord.LevelUrgent,
		Color:       mapSeverityToColor(a.Severity),
		Title:       fmt.Sprintf("🚨 %s feedback alert", strings.ToUpper(string(a.Severity))),
		Description: fmt.Sprintf("Feedback **%s** needs immediate attention.", fb.ID),
		Fields:      fields,
		Timestamp:   a.CreatedAt,
		Footer: &discord.EmbedFooter{
			Text: "SLA Service • Alert Detector",
		},
	}

	if err := uc.discord.SendEmbed(ctx, opts); err != nil {
		uc.l.Warnf(ctx, "internal.alert.usecase.notifyOps.SendEmbed: alert=%s: %v", a.ID, err)
	}
}
