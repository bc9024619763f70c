package http

import (
	"sla-srv/internal/model"
	"sla-srv/internal/notification"
	"sla-srv/pkg/paginator"
	"sla-srv/pkg/response"
)

type listReq struct {
	Channel    string `form:"channel"`
	UnreadOnly bool   `form:"unread_only"`
	Page       int    `form:"page"`
	Limit      int64  `form:"limit"`
}

func (r listReq) validate() error {
	if r.Channel != "" && !model.Channel(r.Channel).IsValid() {
		return errWrongQuery
	}
	return nil
}

func (r listReq) toInput(sc model.Scope) notification.ListInput {
	return notification.ListInput{
		Recipient:     model.UserRecipient(sc.UserID),
		UnreadOnly:    r.UnreadOnly,
		Channel:       model.Channel(r.Channel),
		PaginateQuery: paginator.PaginateQuery{Page: r.Page, Limit: r.Limit},
	}
}

type recipientResp struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
}

type notificationResp struct {
	ID           string             `json:"id"`
	CompanyID    string             `json:"company_id"`
	Recipient    recipientResp      `json:"recipient"`
	Type         string             `json:"type"`
	Title        string             `json:"title"`
	Message      string             `json:"message"`
	Data         map[string]any     `json:"data"`
	Channel      string             `json:"channel"`
	Status       string             `json:"status"`
	IsRead       bool               `json:"is_read"`
	CanRetry     bool               `json:"can_retry"`
	RetryCount   int                `json:"retry_count"`
	ErrorMessage *string            `json:"error_message,omitempty"`
	ScheduledAt  *response.DateTime `json:"scheduled_at,omitempty"`
	SentAt       *response.DateTime `json:"sent_at,omitempty"`
	DeliveredAt  *response.DateTime `json:"delivered_at,omitempty"`
	ReadAt       *response.DateTime `json:"read_at,omitempty"`
	CreatedAt    response.DateTime  `json:"created_at"`
}

func newNotificationResp(n model.Notification) notificationResp {
	data := n.Data
	if data == nil {
		data = map[string]any{}
	}
	return notificationResp{
		ID:        n.ID,
		CompanyID: n.CompanyID,
		Recipient: recipientResp{
			Kind: string(n.Recipient.Kind),
			ID:   n.Recipient.ID,
		},
		Type:         n.Type,
		Title:        n.Title,
		Message:      n.Message,
		Data:         data,
		Channel:      string(n.Channel),
		Status:       string(n.Status),
		IsRead:       n.IsRead(),
		CanRetry:     n.CanRetry(),
		RetryCount:   n.RetryCount,
		ErrorMessage: n.ErrorMessage,
		ScheduledAt:  response.NewDateTimePtr(n.ScheduledAt),
		SentAt:       response.NewDateTimePtr(n.SentAt),
		DeliveredAt:  response.NewDateTimePtr(n.DeliveredAt),
		ReadAt:       response.NewDateTimePtr(n.ReadAt),
		CreatedAt:    response.DateTime(n.CreatedAt),
	}
}

type listResp struct {
	Notifications []notificationResp          `json:"notifications"`
	Unread        int64                       `json:"unread"`
	Paginator     paginator.PaginatorResponse `json:"paginator"`
}

func newListResp(out notification.ListOutput) listResp {
	items := make([]notificationResp, len(out.Notifications))
	for i, n := range out.Notifications {
		items[i] = newNotificationResp(n)
	}
	return listResp{
		Notifications: items,
		Unread:        out.Unread,
		Paginator:     out.Paginator.ToResponse(),
	}
}
