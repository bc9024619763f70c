package usecase

import (
	"fmt"

	"sla-srv/internal/model"
	"sla-srv/pkg/discord"
)

// mapSeverityToColor maps alert severity to Discord embed color.
func mapSeverityToColor(severity model.Severity) int {
	switch severity {
	case model.SeverityCatastrophic:
		return 0x8B0000 // Dark red
	case model.SeverityCritical:
		return 0xFF0000 // Red
	case model.SeverityHigh:
		return 0xFFA500 // Orange
	case model.SeverityMedium:
		return 0xF1C40F // Yellow
	case model.SeverityLow:
		return 0x3498DB // Blue
	default:
		return 0x95A5A6 // Gray
	}
}

func buildField(name string, value string, inline bool) discord.EmbedField {
	if value == "" {
		value = "N/A"
	}
	// Discord rejects field values over 1024 characters.
	if len(value) > 1024 {
		value = truncateText(value, 1024)
	}
	return discord.EmbedField{
		Name:   name,
		Value:  value,
		Inline: inline,
	}
}

func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

func truncateText(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max < 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	res := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		res = append(res, id)
	}
	return res
}
