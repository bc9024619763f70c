package model

import "time"

type Channel string

const (
	ChannelEmail   Channel = "email"
	ChannelSMS     Channel = "sms"
	ChannelPush    Channel = "push"
	ChannelInApp   Channel = "in_app"
	ChannelWebhook Channel = "webhook"
)

var Channels = []Channel{ChannelEmail, ChannelSMS, ChannelPush, ChannelInApp, ChannelWebhook}

func (c Channel) IsValid() bool {
	for _, v := range Channels {
		if v == c {
			return true
		}
	}
	return false
}

type NotificationStatus string

const (
	NotificationStatusPending   NotificationStatus = "pending"
	// NotificationStatusSending marks a notification claimed by a dispatcher.
	NotificationStatusSending   NotificationStatus = "sending"
	NotificationStatusSent      NotificationStatus = "sent"
	NotificationStatusDelivered NotificationStatus = "delivered"
	NotificationStatusFailed    NotificationStatus = "failed"
	// NotificationStatusRead is accepted when reading old rows; reading is
	// tracked through ReadAt.
	NotificationStatusRead      NotificationStatus = "read"
	NotificationStatusCancelled NotificationStatus = "cancelled"
)

// MaxNotificationRetries bounds manual and automatic retries.
const MaxNotificationRetries = 3

type RecipientKind string

const (
	RecipientUser   RecipientKind = "user"
	RecipientClient RecipientKind = "client"
)

// Recipient addresses exactly one user or one client.
type Recipient struct {
	Kind RecipientKind `json:"kind"`
	ID   string        `json:"id"`
}

func UserRecipient(id string) Recipient {
	return Recipient{Kind: RecipientUser, ID: id}
}

func ClientRecipient(id string) Recipient {
	return Recipient{Kind: RecipientClient, ID: id}
}

func (r Recipient) IsValid() bool {
	return (r.Kind == RecipientUser || r.Kind == RecipientClient) && r.ID != ""
}

type Notification struct {
	ID           string             `json:"id"`
	CompanyID    string             `json:"company_id"`
	Recipient    Recipient          `json:"recipient"`
	Type         string             `json:"type"`
	Title        string             `json:"title"`
	Message      string             `json:"message"`
	Data         map[string]any     `json:"data,omitempty"`
	Channel      Channel            `json:"channel"`
	Status       NotificationStatus `json:"status"`
	ScheduledAt  *time.Time         `json:"scheduled_at,omitempty"`
	SentAt       *time.Time         `json:"sent_at,omitempty"`
	DeliveredAt  *time.Time         `json:"delivered_at,omitempty"`
	ReadAt       *time.Time         `json:"read_at,omitempty"`
	RetryCount   int                `json:"retry_count"`
	ErrorMessage *string            `json:"error_message,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// CanRetry reports whether a failed notification may be sent again.
func (n Notification) CanRetry() bool {
	return n.Status == NotificationStatusFailed && n.RetryCount < MaxNotificationRetries
}

// IsDue reports whether a pending notification may be sent at now.
func (n Notification) IsDue(now time.Time) bool {
	return n.ScheduledAt == nil || !n.ScheduledAt.After(now)
}

func (n Notification) IsRead() bool {
	return n.ReadAt != nil || n.Status == NotificationStatusRead
}

// NotificationTemplate renders notifications of one type on one channel.
type NotificationTemplate struct {
	ID        string  `json:"id"`
	CompanyID string  `json:"company_id"`
	Type      string  `json:"type"`
	Channel   Channel `json:"channel"`
	Subject   string  `json:"subject"`
	Title     string  `json:"title"`
	Message   string  `json:"message"`
	IsDefault bool    `json:"is_default"`
	IsActive  bool    `json:"is_active"`
}

// Contact is the address book entry of a recipient.
type Contact struct {
	Recipient  Recipient `json:"recipient"`
	Name       string    `json:"name"`
	Email      string    `json:"email,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	PushToken  string    `json:"push_token,omitempty"`
	WebhookURL string    `json:"webhook_url,omitempty"`
}

// Address returns the contact's address for ch, "" when unknown. In-app
// delivery is addressed by recipient id.
func (c Contact) Address(ch Channel) string {
	switch ch {
	case ChannelEmail:
		return c.Email
	case ChannelSMS:
		return c.Phone
	case ChannelPush:
		return c.PushToken
	case ChannelWebhook:
		return c.WebhookURL
	case ChannelInApp:
		return c.Recipient.ID
	}
	return ""
}
