package model

import "time"

type Severity string

const (
	SeverityLow          Severity = "low"
	SeverityMedium       Severity = "medium"
	SeverityHigh         Severity = "high"
	SeverityCritical     Severity = "critical"
	SeverityCatastrophic Severity = "catastrophic"
)

// Severities lists every severity in ascending order.
var Severities = []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical, SeverityCatastrophic}

// Rank orders severities; 0 means none/unknown.
func (s Severity) Rank() int {
	for i, v := range Severities {
		if v == s {
			return i + 1
		}
	}
	return 0
}

func (s Severity) IsValid() bool {
	return s.Rank() > 0
}

// AtLeast reports whether s is at or above other.
func (s Severity) AtLeast(other Severity) bool {
	return s.Rank() >= other.Rank() && s.Rank() > 0
}

type AlertType string

const (
	AlertTypeKeyword   AlertType = "keyword"
	AlertTypeSentiment AlertType = "sentiment"
	AlertTypeRating    AlertType = "rating"
)

type AlertStatus string

const (
	AlertStatusNew          AlertStatus = "new"
	AlertStatusAcknowledged AlertStatus = "acknowledged"
	AlertStatusInProgress   AlertStatus = "in_progress"
	AlertStatusResolved     AlertStatus = "resolved"
	AlertStatusDismissed    AlertStatus = "dismissed"
)

var AlertStatuses = []AlertStatus{
	AlertStatusNew,
	AlertStatusAcknowledged,
	AlertStatusInProgress,
	AlertStatusResolved,
	AlertStatusDismissed,
}

func (s AlertStatus) IsValid() bool {
	for _, v := range AlertStatuses {
		if v == s {
			return true
		}
	}
	return false
}

func (s AlertStatus) IsTerminal() bool {
	return s == AlertStatusResolved || s == AlertStatusDismissed
}

type Alert struct {
	ID               string      `json:"id"`
	CompanyID        string      `json:"company_id"`
	FeedbackID       string      `json:"feedback_id"`
	Severity         Severity    `json:"severity"`
	AlertType        AlertType   `json:"alert_type"`
	DetectedKeywords []string    `json:"detected_keywords"`
	SentimentScore   float64     `json:"sentiment_score"`
	Status           AlertStatus `json:"status"`
	IsEscalated      bool        `json:"is_escalated"`
	EscalatedAt      *time.Time  `json:"escalated_at,omitempty"`
	AcknowledgedBy   *string     `json:"acknowledged_by,omitempty"`
	AcknowledgedAt   *time.Time  `json:"acknowledged_at,omitempty"`
	ResolvedAt       *time.Time  `json:"resolved_at,omitempty"`
	ResolutionNotes  *string     `json:"resolution_notes,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}
