package alert

import (
	"testing"

	"sla-srv/config"
	"sla-srv/internal/model"

	"github.com/stretchr/testify/assert"
)

func intPtr(n int) *int { return &n }

func floatPtr(f float64) *float64 { return &f }

func strPtr(s string) *string { return &s }

func TestSentimentScore(t *testing.T) {
	tcs := map[string]struct {
		fb     model.Feedback
		score  float64
		source Driver
	}{
		"stored score wins": {
			fb:     model.Feedback{SentimentScore: floatPtr(-0.9), Sentiment: strPtr("positive"), Rating: intPtr(5)},
			score:  -0.9,
			source: DriverSentiment,
		},
		"negative label": {
			fb:     model.Feedback{Sentiment: strPtr("Negative"), Rating: intPtr(5)},
			score:  -0.6,
			source: DriverSentiment,
		},
		"neutral label": {
			fb:     model.Feedback{Sentiment: strPtr("neutral")},
			score:  0,
			source: DriverSentiment,
		},
		"unknown label falls back to rating": {
			fb:     model.Feedback{Sentiment: strPtr("mixed"), Rating: intPtr(1)},
			score:  -1,
			source: DriverRating,
		},
		"rating four": {
			fb:     model.Feedback{Rating: intPtr(4)},
			score:  0.5,
			source: DriverRating,
		},
		"nothing": {
			fb:     model.Feedback{},
			score:  0,
			source: DriverNone,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			score, source := SentimentScore(tc.fb)
			assert.InDelta(t, tc.score, score, 1e-9)
			assert.Equal(t, tc.source, source)
		})
	}
}

func TestDetect(t *testing.T) {
	d := NewDetector(DefaultPolicy())

	tcs := map[string]struct {
		fb       model.Feedback
		severity model.Severity
		driver   Driver
		keywords []string
	}{
		"catastrophic keyword beats a five star rating": {
			fb: model.Feedback{
				Content:          "My son got FOOD POISONING after the buffet",
				Rating:           intPtr(5),
				FeedbackTypeKind: model.FeedbackKindNegative,
			},
			severity: model.SeverityCatastrophic,
			driver:   DriverKeyword,
			keywords: []string{"food poisoning"},
		},
		"keywords of every tier are collected": {
			fb: model.Feedback{
				Content: "Rude staff, slow service, and I will take legal action",
			},
			severity: model.SeverityCatastrophic,
			driver:   DriverKeyword,
			keywords: []string{"legal action", "rude", "slow"},
		},
		"critical keyword": {
			fb:       model.Feedback{Content: "this place is a scam"},
			severity: model.SeverityCritical,
			driver:   DriverKeyword,
			keywords: []string{"scam"},
		},
		"very negative score on negative type": {
			fb: model.Feedback{
				Content:          "not happy",
				SentimentScore:   floatPtr(-0.85),
				FeedbackTypeKind: model.FeedbackKindNegative,
			},
			severity: model.SeverityCritical,
			driver:   DriverSentiment,
		},
		"very negative score on suggestion is only high": {
			fb: model.Feedback{
				SentimentScore:   floatPtr(-0.85),
				FeedbackTypeKind: model.FeedbackKindSuggestion,
			},
			severity: model.SeverityHigh,
			driver:   DriverSentiment,
		},
		"one star on negative type is attributed to the rating": {
			fb: model.Feedback{
				Rating:           intPtr(1),
				FeedbackTypeKind: model.FeedbackKindNegative,
			},
			severity: model.SeverityCritical,
			driver:   DriverRating,
		},
		"one star": {
			fb:       model.Feedback{Rating: intPtr(1), SentimentScore: floatPtr(0.2)},
			severity: model.SeverityHigh,
			driver:   DriverRating,
		},
		"two stars": {
			fb:       model.Feedback{Rating: intPtr(2), SentimentScore: floatPtr(0.1)},
			severity: model.SeverityMedium,
			driver:   DriverRating,
		},
		"medium score": {
			fb:       model.Feedback{SentimentScore: floatPtr(-0.4)},
			severity: model.SeverityMedium,
			driver:   DriverSentiment,
		},
		"low keyword": {
			fb:       model.Feedback{Content: "food was mediocre", Rating: intPtr(4)},
			severity: model.SeverityLow,
			driver:   DriverKeyword,
			keywords: []string{"mediocre"},
		},
		"slightly negative": {
			fb:       model.Feedback{SentimentScore: floatPtr(-0.1)},
			severity: model.SeverityLow,
			driver:   DriverSentiment,
		},
		"keyword inside another word does not match": {
			fb:       model.Feedback{Content: "badge scanner worked", Rating: intPtr(5)},
			severity: "",
			driver:   DriverNone,
		},
		"happy customer": {
			fb:       model.Feedback{Content: "great food", Rating: intPtr(5)},
			severity: "",
			driver:   DriverNone,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			det := d.Detect(tc.fb)
			assert.Equal(t, tc.severity, det.Severity)
			assert.Equal(t, tc.driver, det.Driver)
			assert.ElementsMatch(t, tc.keywords, det.Keywords)
		})
	}
}

func TestDetectionTriggerReason(t *testing.T) {
	d := NewDetector(DefaultPolicy())

	kw := d.Detect(model.Feedback{Content: "total fraud", Rating: intPtr(5), FeedbackTypeKind: model.FeedbackKindNegative})
	assert.True(t, kw.Escalates())
	assert.Equal(t, model.TriggerCriticalRating, kw.TriggerReason())
	assert.Equal(t, model.AlertTypeKeyword, kw.AlertType())

	score := d.Detect(model.Feedback{SentimentScore: floatPtr(-0.95), FeedbackTypeKind: model.FeedbackKindNegative})
	assert.True(t, score.Escalates())
	assert.Equal(t, model.TriggerUrgentSentiment, score.TriggerReason())
	assert.Equal(t, model.AlertTypeSentiment, score.AlertType())

	high := d.Detect(model.Feedback{Rating: intPtr(1)})
	assert.False(t, high.Escalates())
	assert.Equal(t, model.AlertTypeRating, high.AlertType())
}

func TestDetectIsMonotoneInRating(t *testing.T) {
	d := NewDetector(DefaultPolicy())
	prev := 0
	for rating := 5; rating >= 1; rating-- {
		det := d.Detect(model.Feedback{Rating: intPtr(rating), FeedbackTypeKind: model.FeedbackKindNegative})
		assert.GreaterOrEqual(t, det.Severity.Rank(), prev, "rating %d", rating)
		prev = det.Severity.Rank()
	}
}

func TestNewPolicy(t *testing.T) {
	p := NewPolicy(config.DetectionConfig{
		AlertThreshold:    "HIGH",
		CriticalThreshold: floatPtr(-0.9),
		Keywords: config.KeywordConfig{
			Critical: []string{"chargeback"},
		},
	})
	assert.Equal(t, model.SeverityHigh, p.Threshold)
	assert.Equal(t, -0.9, p.CriticalScore)
	assert.Equal(t, defaultHighScore, p.HighScore)
	assert.Equal(t, []string{"chargeback"}, p.Keywords[model.SeverityCritical])
	assert.Equal(t, defaultKeywords[model.SeverityCatastrophic], p.Keywords[model.SeverityCatastrophic])

	d := NewDetector(p)
	assert.False(t, d.ShouldAlert(Detection{Severity: model.SeverityMedium}))
	assert.True(t, d.ShouldAlert(Detection{Severity: model.SeverityHigh}))
	assert.False(t, d.ShouldAlert(Detection{}))
}

func TestNewPolicyHonorsZeroThreshold(t *testing.T) {
	p := NewPolicy(config.DetectionConfig{MediumThreshold: floatPtr(0)})
	assert.Equal(t, 0.0, p.MediumScore)
	assert.Equal(t, defaultHighScore, p.HighScore)

	neutral := model.Feedback{SentimentScore: floatPtr(0)}
	det := NewDetector(p).Detect(neutral)
	assert.Equal(t, model.SeverityMedium, det.Severity)
	assert.Equal(t, DriverSentiment, det.Driver)

	assert.Empty(t, NewDetector(DefaultPolicy()).Detect(neutral).Severity)
}

func TestNewPolicyIgnoresUnknownThreshold(t *testing.T) {
	p := NewPolicy(config.DetectionConfig{AlertThreshold: "urgent"})
	assert.Equal(t, model.SeverityMedium, p.Threshold)
}
