package model

import "time"

type FeedbackStatus string

const (
	FeedbackStatusNew        FeedbackStatus = "new"
	FeedbackStatusSeen       FeedbackStatus = "seen"
	FeedbackStatusInProgress FeedbackStatus = "in_progress"
	FeedbackStatusResolved   FeedbackStatus = "resolved"
	FeedbackStatusClosed     FeedbackStatus = "closed"
)

// OpenFeedbackStatuses are the statuses the SLA monitor keeps evaluating.
var OpenFeedbackStatuses = []FeedbackStatus{
	FeedbackStatusNew,
	FeedbackStatusSeen,
	FeedbackStatusInProgress,
}

func (s FeedbackStatus) IsOpen() bool {
	for _, o := range OpenFeedbackStatuses {
		if s == o {
			return true
		}
	}
	return false
}

const (
	FeedbackKindPositive   = "positive"
	FeedbackKindNegative   = "negative"
	FeedbackKindSuggestion = "suggestion"
)

// Feedback is the read-only view of a customer feedback owned by the
// feedback service.
type Feedback struct {
	ID               string         `json:"id"`
	CompanyID        string         `json:"company_id"`
	FeedbackTypeID   string         `json:"feedback_type_id"`
	FeedbackTypeKind string         `json:"feedback_type_kind"`
	Rating           *int           `json:"rating,omitempty"`
	Sentiment        *string        `json:"sentiment,omitempty"`
	SentimentScore   *float64       `json:"sentiment_score,omitempty"`
	Content          string         `json:"content"`
	Status           FeedbackStatus `json:"status"`
	ClientID         *string        `json:"client_id,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
}

func (f Feedback) IsNegativeKind() bool {
	return f.FeedbackTypeKind == FeedbackKindNegative
}
