package discord

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"sla-srv/pkg/log"

	"github.com/go-resty/resty/v2"
)

func newHTTPClient(l log.Logger, cfg Config) *resty.Client {
	c := resty.New().
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(cfg.RetryDelay).
		SetRetryMaxWaitTime(cfg.RetryDelay).
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", UserAgent).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil || r == nil {
				return true
			}
			return r.StatusCode() == http.StatusTooManyRequests || r.StatusCode() >= http.StatusInternalServerError
		}).
		AddRetryHook(func(r *resty.Response, err error) {
			attempt := 0
			if r != nil && r.Request != nil {
				attempt = r.Request.Attempt
			}
			l.Infof(context.Background(), "pkg.discord.send: retrying after attempt %d: %v", attempt, retryReason(r, err))
		})
	return c
}

func retryReason(r *resty.Response, err error) string {
	if err != nil {
		return err.Error()
	}
	if r == nil {
		return "no response"
	}
	return r.Status()
}

// DefaultConfig returns the default Discord config.
func DefaultConfig() Config {
	return Config{
		Timeout:         DefaultTimeout,
		RetryCount:      DefaultRetryCount,
		RetryDelay:      DefaultRetryDelay,
		DefaultUsername: DefaultUsername,
	}
}

func (d *discordImpl) GetWebhookURL() string {
	return d.webhookURL
}

func (d *discordImpl) Close() error {
	if d.client != nil {
		d.client.GetClient().CloseIdleConnections()
	}
	return nil
}

func (d *discordImpl) send(ctx context.Context, payload *WebhookPayload) error {
	resp, err := d.client.R().
		SetContext(ctx).
		SetBody(payload).
		Post(d.webhookURL)
	if err != nil {
		d.l.Warnf(ctx, "pkg.discord.send.Post: %v", err)
		return fmt.Errorf("post webhook: %w", err)
	}
	if resp.StatusCode() != http.StatusOK && resp.StatusCode() != http.StatusNoContent {
		return fmt.Errorf("%w: status %d: %s", errWebhookRejected, resp.StatusCode(), truncateString(resp.String(), 200))
	}
	return nil
}

func (d *discordImpl) validateEmbedLength(embed *Embed) error {
	total := len(embed.Title) + len(embed.Description)
	for _, f := range embed.Fields {
		total += len(f.Name) + len(f.Value)
	}
	if total > MaxEmbedLength {
		return fmt.Errorf("embed too long: %d characters (max: %d)", total, MaxEmbedLength)
	}
	return nil
}

func colorForType(msgType MessageType) int {
	switch msgType {
	case MessageTypeSuccess:
		return ColorSuccess
	case MessageTypeWarning:
		return ColorWarning
	case MessageTypeError:
		return ColorError
	default:
		return ColorInfo
	}
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func (d *discordImpl) SendEmbed(ctx context.Context, options MessageOptions) error {
	color := options.Color
	if color == 0 {
		color = colorForType(options.Type)
	}
	embed := &Embed{
		Title:       truncateString(options.Title, MaxTitleLen),
		Description: truncateString(options.Description, MaxDescriptionLen),
		Color:       color,
		Fields:      options.Fields,
		Footer:      options.Footer,
	}
	if !options.Timestamp.IsZero() {
		embed.Timestamp = options.Timestamp.Format(time.RFC3339)
	}
	if err := d.validateEmbedLength(embed); err != nil {
		return err
	}
	payload := &WebhookPayload{
		Embeds:    []Embed{*embed},
		Username:  options.Username,
		AvatarURL: d.config.DefaultAvatarURL,
	}
	if payload.Username == "" {
		payload.Username = d.config.DefaultUsername
	}
	return d.send(ctx, payload)
}

func (d *discordImpl) SendError(ctx context.Context, title, description string, err error) error {
	var fields []EmbedField
	if err != nil {
		fields = append(fields, EmbedField{
			Name:  "Error",
			Value: truncateString(err.Error(), MaxFieldValueLen),
		})
	}
	return d.SendEmbed(ctx, MessageOptions{
		Type:        MessageTypeError,
		Level:       LevelHigh,
		Title:       title,
		Description: description,
		Fields:      fields,
		Timestamp:   time.Now(),
	})
}

func (d *discordImpl) ReportBug(ctx context.Context, message string) error {
	if len(message) > ReportBugDescLen-6 {
		message = message[:ReportBugDescLen-9] + "..."
	}
	return d.SendEmbed(ctx, MessageOptions{
		Type:        MessageTypeError,
		Level:       LevelUrgent,
		Title:       ReportBugTitle,
		Description: fmt.Sprintf("```%s```", message),
		Timestamp:   time.Now(),
	})
}
