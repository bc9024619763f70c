package alert

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"sla-srv/config"
	"sla-srv/internal/model"
)

// Driver names the input that decided a severity.
type Driver string

const (
	DriverNone      Driver = ""
	DriverKeyword   Driver = "keyword"
	DriverRating    Driver = "rating"
	DriverSentiment Driver = "sentiment"
)

const (
	defaultCriticalScore = -0.8
	defaultHighScore     = -0.6
	defaultMediumScore   = -0.3

	labelScore = 0.6
)

var defaultKeywords = map[model.Severity][]string{
	model.SeverityCatastrophic: {"lawsuit", "legal action", "food poisoning", "injured", "injury", "fraud", "police"},
	model.SeverityCritical:     {"scam", "refund", "dangerous", "unsafe", "never again", "disgusting"},
	model.SeverityHigh:         {"terrible", "horrible", "worst", "rude", "unacceptable"},
	model.SeverityMedium:       {"bad", "slow", "disappointed", "dirty", "broken"},
	model.SeverityLow:          {"could be better", "mediocre", "meh"},
}

// Policy holds the tunable parts of detection.
type Policy struct {
	Threshold     model.Severity
	CriticalScore float64
	HighScore     float64
	MediumScore   float64
	Keywords      map[model.Severity][]string
}

// DefaultPolicy alerts from medium upwards with the built-in keyword tiers.
func DefaultPolicy() Policy {
	kw := make(map[model.Severity][]string, len(defaultKeywords))
	for sev, words := range defaultKeywords {
		kw[sev] = append([]string(nil), words...)
	}
	return Policy{
		Threshold:     model.SeverityMedium,
		CriticalScore: defaultCriticalScore,
		HighScore:     defaultHighScore,
		MediumScore:   defaultMediumScore,
		Keywords:      kw,
	}
}

// NewPolicy overlays cfg on DefaultPolicy. Unset score thresholds and empty
// keyword tiers keep their defaults.
func NewPolicy(cfg config.DetectionConfig) Policy {
	p := DefaultPolicy()
	if sev := model.Severity(strings.ToLower(cfg.AlertThreshold)); sev.IsValid() {
		p.Threshold = sev
	}
	if cfg.CriticalThreshold != nil {
		p.CriticalScore = *cfg.CriticalThreshold
	}
	if cfg.HighThreshold != nil {
		p.HighScore = *cfg.HighThreshold
	}
	if cfg.MediumThreshold != nil {
		p.MediumScore = *cfg.MediumThreshold
	}

	tiers := map[model.Severity][]string{
		model.SeverityCatastrophic: cfg.Keywords.Catastrophic,
		model.SeverityCritical:     cfg.Keywords.Critical,
		model.SeverityHigh:         cfg.Keywords.High,
		model.SeverityMedium:       cfg.Keywords.Medium,
		model.SeverityLow:          cfg.Keywords.Low,
	}
	for sev, words := range tiers {
		if len(words) > 0 {
			p.Keywords[sev] = words
		}
	}
	return p
}

// Detection is the classification of one feedback. Severity is empty when
// nothing qualifies.
type Detection struct {
	Severity    model.Severity
	Driver      Driver
	Score       float64
	ScoreSource Driver
	Keywords    []string
}

// AlertType is the alert_type recorded for the detection.
func (d Detection) AlertType() model.AlertType {
	switch d.Driver {
	case DriverKeyword:
		return model.AlertTypeKeyword
	case DriverRating:
		return model.AlertTypeRating
	}
	return model.AlertTypeSentiment
}

// TriggerReason is the escalation reason for a critical detection.
func (d Detection) TriggerReason() model.TriggerReason {
	if d.Driver == DriverSentiment {
		return model.TriggerUrgentSentiment
	}
	return model.TriggerCriticalRating
}

// Escalates reports whether the detection warrants an immediate escalation.
func (d Detection) Escalates() bool {
	return d.Severity.AtLeast(model.SeverityCritical)
}

// Detector classifies feedbacks. It is pure and safe for concurrent use.
type Detector struct {
	policy Policy
}

func NewDetector(p Policy) Detector {
	if !p.Threshold.IsValid() {
		p.Threshold = model.SeverityMedium
	}
	return Detector{policy: p}
}

// Threshold is the lowest severity that creates an alert.
func (d Detector) Threshold() model.Severity {
	return d.policy.Threshold
}

// ShouldAlert reports whether det reaches the alert threshold.
func (d Detector) ShouldAlert(det Detection) bool {
	return det.Severity.AtLeast(d.policy.Threshold)
}

func (d Detector) Detect(fb model.Feedback) Detection {
	score, source := SentimentScore(fb)
	det := Detection{Score: score, ScoreSource: source}

	tiers := make(map[model.Severity]bool, len(model.Severities))
	content := strings.ToLower(fb.Content)
	for i := len(model.Severities) - 1; i >= 0; i-- {
		sev := model.Severities[i]
		for _, kw := range d.policy.Keywords[sev] {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" || !containsWord(content, kw) {
				continue
			}
			tiers[sev] = true
			det.Keywords = appendUnique(det.Keywords, kw)
		}
	}

	// A score derived from the rating is attributed to the rating.
	scoreDriver := DriverSentiment
	if source == DriverRating {
		scoreDriver = DriverRating
	}
	ratingAtMost := func(n int) bool {
		return fb.Rating != nil && *fb.Rating <= n
	}

	switch {
	case tiers[model.SeverityCatastrophic]:
		det.Severity, det.Driver = model.SeverityCatastrophic, DriverKeyword
	case tiers[model.SeverityCritical]:
		det.Severity, det.Driver = model.SeverityCritical, DriverKeyword
	case fb.IsNegativeKind() && score <= d.policy.CriticalScore:
		det.Severity, det.Driver = model.SeverityCritical, scoreDriver
	case tiers[model.SeverityHigh]:
		det.Severity, det.Driver = model.SeverityHigh, DriverKeyword
	case ratingAtMost(1):
		det.Severity, det.Driver = model.SeverityHigh, DriverRating
	case score <= d.policy.HighScore:
		det.Severity, det.Driver = model.SeverityHigh, scoreDriver
	case tiers[model.SeverityMedium]:
		det.Severity, det.Driver = model.SeverityMedium, DriverKeyword
	case ratingAtMost(2):
		det.Severity, det.Driver = model.SeverityMedium, DriverRating
	case score <= d.policy.MediumScore:
		det.Severity, det.Driver = model.SeverityMedium, scoreDriver
	case tiers[model.SeverityLow]:
		det.Severity, det.Driver = model.SeverityLow, DriverKeyword
	case score < 0:
		det.Severity, det.Driver = model.SeverityLow, scoreDriver
	}
	return det
}

// SentimentScore returns the feedback's score in [-1, 1] and where it came
// from: the stored score, the sentiment label, the rating, or nothing.
func SentimentScore(fb model.Feedback) (float64, Driver) {
	if fb.SentimentScore != nil {
		return *fb.SentimentScore, DriverSentiment
	}
	if fb.Sentiment != nil {
		switch strings.ToLower(*fb.Sentiment) {
		case "positive":
			return labelScore, DriverSentiment
		case "neutral":
			return 0, DriverSentiment
		case "negative":
			return -labelScore, DriverSentiment
		}
	}
	if fb.Rating != nil {
		return float64(*fb.Rating-3) / 2, DriverRating
	}
	return 0, DriverNone
}

// containsWord reports whether kw occurs in s on word boundaries.
func containsWord(s, kw string) bool {
	for from := 0; from <= len(s)-len(kw); {
		i := strings.Index(s[from:], kw)
		if i < 0 {
			return false
		}
		start, end := from+i, from+i+len(kw)
		if isBoundary(s, start, true) && isBoundary(s, end, false) {
			return true
		}
		_, size := utf8.DecodeRuneInString(s[start:])
		from = start + size
	}
	return false
}

func isBoundary(s string, i int, before bool) bool {
	var r rune
	if before {
		if i == 0 {
			return true
		}
		r, _ = utf8.DecodeLastRuneInString(s[:i])
	} else {
		if i >= len(s) {
			return true
		}
		r, _ = utf8.DecodeRuneInString(s[i:])
	}
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func appendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}
