package postgres

import (
	"context"

	"sla-srv/internal/model"
	"sla-srv/internal/notification/repository"
	"sla-srv/pkg/paginator"
	postgresPkg "sla-srv/pkg/postgre"

	"github.com/aarondl/sqlboiler/v4/queries/qm"
)

const (
	tableNotifications = "notifications"
	tableTemplates     = "notification_templates"
)

var notificationColumns = []string{
	"id", "company_id", "recipient_type", "recipient_id", "type", "title", "message", "data",
	"channel", "status", "scheduled_at", "sent_at", "delivered_at", "read_at",
	"retry_count", "error_message", "created_at", "updated_at",
}

var insertColumns = []string{
	"id", "company_id", "recipient_type", "recipient_id", "type", "title", "message", "data",
	"channel", "status", "scheduled_at", "retry_count", "created_at", "updated_at",
}

var updateColumns = []string{
	"status", "sent_at", "delivered_at", "read_at", "retry_count", "error_message", "updated_at",
}

var templateColumns = []string{
	"id", "company_id", "type", "channel", "subject", "title", "message", "is_default", "is_active",
}

// contactTables maps a recipient kind to its address book table and the
// column holding the display name.
var contactTables = map[model.RecipientKind]struct {
	table string
	name  string
}{
	model.RecipientUser:   {table: "users", name: "full_name"},
	model.RecipientClient: {table: "clients", name: "name"},
}

func (r *implRepository) buildFilterQuery(ctx context.Context, f repository.Filter) ([]qm.QueryMod, error) {
	mods := []qm.QueryMod{qm.From(tableNotifications)}

	if len(f.CompanyIDs) > 0 {
		if err := postgresPkg.ValidateUUIDs(f.CompanyIDs); err != nil {
			r.l.Errorf(ctx, "internal.notification.repository.postgres.buildFilterQuery.ValidateUUIDs: %v", err)
			return nil, err
		}
		mods = append(mods, qm.WhereIn("company_id IN ?", postgresPkg.Args(f.CompanyIDs)...))
	}
	if f.Recipient != nil {
		mods = append(mods,
			qm.Where("recipient_type = ?", string(f.Recipient.Kind)),
			qm.Where("recipient_id = ?", f.Recipient.ID),
		)
	}
	if f.Channel != "" {
		mods = append(mods, qm.Where("channel = ?", string(f.Channel)))
	}
	if f.UnreadOnly {
		mods = append(mods,
			qm.Where("read_at IS NULL"),
			qm.Where("status <> ?", string(model.NotificationStatusRead)),
		)
	}

	return mods, nil
}

func (r *implRepository) buildGetQuery(ctx context.Context, f repository.Filter, pq paginator.PaginateQuery) ([]qm.QueryMod, error) {
	mods, err := r.buildFilterQuery(ctx, f)
	if err != nil {
		return nil, err
	}

	pq.Adjust()
	return append(mods,
		qm.Select(notificationColumns...),
		qm.OrderBy("created_at DESC, id DESC"),
		qm.Limit(int(pq.Limit)),
		qm.Offset(int(pq.Offset())),
	), nil
}

func buildDueQuery(opts repository.ListDueOptions) []qm.QueryMod {
	return []qm.QueryMod{
		qm.Select(notificationColumns...),
		qm.From(tableNotifications),
		qm.Where("status = ?", string(model.NotificationStatusPending)),
		qm.Where("(scheduled_at <= ? OR (scheduled_at IS NULL AND created_at <= ?))", opts.Now, opts.StaleBefore),
		qm.OrderBy("COALESCE(scheduled_at, created_at) ASC"),
		qm.Limit(opts.Limit),
	}
}

func buildRetryableQuery(opts repository.ListDueOptions) []qm.QueryMod {
	return []qm.QueryMod{
		qm.Select(notificationColumns...),
		qm.From(tableNotifications),
		qm.Where("status = ?", string(model.NotificationStatusFailed)),
		qm.Where("retry_count < ?", model.MaxNotificationRetries),
		qm.Where("updated_at + power(2, retry_count) * interval '1 minute' <= ?", opts.Now),
		qm.OrderBy("updated_at ASC"),
		qm.Limit(opts.Limit),
	}
}

func buildStuckQuery(opts repository.ListDueOptions) []qm.QueryMod {
	return []qm.QueryMod{
		qm.Select(notificationColumns...),
		qm.From(tableNotifications),
		qm.Where("status = ?", string(model.NotificationStatusSending)),
		qm.Where("updated_at <= ?", opts.StaleBefore),
		qm.OrderBy("updated_at ASC"),
		qm.Limit(opts.Limit),
	}
}
