package postgres

import (
	"context"
	"fmt"
	"time"

	"sla-srv/internal/model"
	"sla-srv/internal/notification/repository"
	"sla-srv/pkg/paginator"
	postgresPkg "sla-srv/pkg/postgre"

	"github.com/aarondl/null/v8"
	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/aarondl/sqlboiler/v4/queries/qm"
	"github.com/aarondl/sqlboiler/v4/types"
	"github.com/friendsofgo/errors"
)

type notificationRow struct {
	ID            string      `boil:"id"`
	CompanyID     string      `boil:"company_id"`
	RecipientType string      `boil:"recipient_type"`
	RecipientID   string      `boil:"recipient_id"`
	Type          string      `boil:"type"`
	Title         string      `boil:"title"`
	Message       string      `boil:"message"`
	Data          types.JSON  `boil:"data"`
	Channel       string      `boil:"channel"`
	Status        string      `boil:"status"`
	ScheduledAt   null.Time   `boil:"scheduled_at"`
	SentAt        null.Time   `boil:"sent_at"`
	DeliveredAt   null.Time   `boil:"delivered_at"`
	ReadAt        null.Time   `boil:"read_at"`
	RetryCount    int         `boil:"retry_count"`
	ErrorMessage  null.String `boil:"error_message"`
	CreatedAt     time.Time   `boil:"created_at"`
	UpdatedAt     time.Time   `boil:"updated_at"`
}

func (row notificationRow) toModel() model.Notification {
	n := model.Notification{
		ID:        row.ID,
		CompanyID: row.CompanyID,
		Recipient: model.Recipient{
			Kind: model.RecipientKind(row.RecipientType),
			ID:   row.RecipientID,
		},
		Type:         row.Type,
		Title:        row.Title,
		Message:      row.Message,
		Channel:      model.Channel(row.Channel),
		Status:       model.NotificationStatus(row.Status),
		ScheduledAt:  row.ScheduledAt.Ptr(),
		SentAt:       row.SentAt.Ptr(),
		DeliveredAt:  row.DeliveredAt.Ptr(),
		ReadAt:       row.ReadAt.Ptr(),
		RetryCount:   row.RetryCount,
		ErrorMessage: row.ErrorMessage.Ptr(),
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
	if len(row.Data) > 0 {
		var data map[string]any
		if err := row.Data.Unmarshal(&data); err == nil && len(data) > 0 {
			n.Data = data
		}
	}
	return n
}

func toModels(rows []notificationRow) []model.Notification {
	res := make([]model.Notification, len(rows))
	for i, row := range rows {
		res[i] = row.toModel()
	}
	return res
}

func dataJSON(data map[string]any) (types.JSON, error) {
	if data == nil {
		return types.JSON("{}"), nil
	}
	var j types.JSON
	if err := j.Marshal(data); err != nil {
		return nil, err
	}
	return j, nil
}

func (r *implRepository) Create(ctx context.Context, opts repository.CreateOptions) (model.Notification, error) {
	n := opts.Notification
	if !n.Recipient.IsValid() {
		return model.Notification{}, errors.New("notification recipient is invalid")
	}
	if n.ID == "" {
		n.ID = postgresPkg.NewUUID()
	}
	if n.Status == "" {
		n.Status = model.NotificationStatusPending
	}
	data, err := dataJSON(n.Data)
	if err != nil {
		r.l.Errorf(ctx, "internal.notification.repository.postgres.Create.Marshal: %v", err)
		return model.Notification{}, errors.Wrap(err, "marshal notification data")
	}
	now := r.clock()

	sql := postgresPkg.InsertSQL(tableNotifications, insertColumns, postgresPkg.ReturningSQL(notificationColumns))

	var rows []notificationRow
	err = queries.Raw(sql,
		n.ID, n.CompanyID, string(n.Recipient.Kind), n.Recipient.ID, n.Type, n.Title, n.Message, data,
		string(n.Channel), string(n.Status), null.TimeFromPtr(n.ScheduledAt), n.RetryCount, now, now,
	).Bind(ctx, r.db, &rows)
	if err != nil {
		r.l.Errorf(ctx, "internal.notification.repository.postgres.Create.Insert: %v", err)
		return model.Notification{}, errors.Wrap(err, "insert notification")
	}
	if len(rows) == 0 {
		return model.Notification{}, errors.New("insert notification returned no row")
	}

	return rows[0].toModel(), nil
}

func (r *implRepository) Detail(ctx context.Context, id string) (model.Notification, error) {
	if err := postgresPkg.IsUUID(id); err != nil {
		r.l.Errorf(ctx, "internal.notification.repository.postgres.Detail.IsUUID: %v", err)
		return model.Notification{}, err
	}

	var rows []notificationRow
	err := postgresPkg.NewQuery(
		qm.Select(notificationColumns...),
		qm.From(tableNotifications),
		qm.Where("id = ?", id),
		qm.Limit(1),
	).Bind(ctx, r.db, &rows)
	if err != nil {
		r.l.Errorf(ctx, "internal.notification.repository.postgres.Detail.Bind: %v", err)
		return model.Notification{}, errors.Wrap(err, "notification detail")
	}
	if len(rows) == 0 {
		return model.Notification{}, repository.ErrNotFound
	}

	return rows[0].toModel(), nil
}

func (r *implRepository) Get(ctx context.Context, opts repository.GetOptions) ([]model.Notification, paginator.Paginator, error) {
	mods, err := r.buildGetQuery(ctx, opts.Filter, opts.PaginateQuery)
	if err != nil {
		return nil, paginator.Paginator{}, err
	}

	var rows []notificationRow
	if err := postgresPkg.NewQuery(mods...).Bind(ctx, r.db, &rows); err != nil {
		r.l.Errorf(ctx, "internal.notification.repository.postgres.Get.Bind: %v", err)
		return nil, paginator.Paginator{}, errors.Wrap(err, "get notifications")
	}

	total, err := r.count(ctx, opts.Filter)
	if err != nil {
		return nil, paginator.Paginator{}, err
	}

	return toModels(rows), opts.PaginateQuery.Result(total, len(rows)), nil
}

func (r *implRepository) CountUnread(ctx context.Context, f repository.Filter) (int64, error) {
	f.UnreadOnly = true
	return r.count(ctx, f)
}

func (r *implRepository) count(ctx context.Context, f repository.Filter) (int64, error) {
	mods, err := r.buildFilterQuery(ctx, f)
	if err != nil {
		return 0, err
	}
	q := postgresPkg.NewQuery(mods...)
	queries.SetCount(q)

	var total int64
	if err := q.QueryRowContext(ctx, r.db).Scan(&total); err != nil {
		r.l.Errorf(ctx, "internal.notification.repository.postgres.count.Scan: %v", err)
		return 0, errors.Wrap(err, "count notifications")
	}
	return total, nil
}

func (r *implRepository) Update(ctx context.Context, opts repository.UpdateOptions) (model.Notification, error) {
	n := opts.Notification
	if err := postgresPkg.IsUUID(n.ID); err != nil {
		r.l.Errorf(ctx, "internal.notification.repository.postgres.Update.IsUUID: %v", err)
		return model.Notification{}, err
	}

	c := len(updateColumns)
	sql := fmt.Sprintf(`UPDATE "notifications" SET %s WHERE "id" = $%d AND "status" = $%d AND "retry_count" = $%d %s`,
		postgresPkg.SetSQL(updateColumns, 1), c+1, c+2, c+3, postgresPkg.ReturningSQL(notificationColumns))

	var rows []notificationRow
	err := queries.Raw(sql,
		string(n.Status), null.TimeFromPtr(n.SentAt), null.TimeFromPtr(n.DeliveredAt), null.TimeFromPtr(n.ReadAt),
		n.RetryCount, null.StringFromPtr(n.ErrorMessage), r.clock(),
		n.ID, string(opts.PrevStatus), opts.PrevRetryCount,
	).Bind(ctx, r.db, &rows)
	if err != nil {
		r.l.Errorf(ctx, "internal.notification.repository.postgres.Update.Update: %v", err)
		return model.Notification{}, errors.Wrap(err, "update notification")
	}
	if len(rows) == 0 {
		return model.Notification{}, repository.ErrStale
	}

	return rows[0].toModel(), nil
}

func (r *implRepository) ListDue(ctx context.Context, opts repository.ListDueOptions) ([]model.Notification, error) {
	var rows []notificationRow
	if err := postgresPkg.NewQuery(buildDueQuery(opts)...).Bind(ctx, r.db, &rows); err != nil {
		r.l.Errorf(ctx, "internal.notification.repository.postgres.ListDue.Bind: %v", err)
		return nil, errors.Wrap(err, "list due notifications")
	}
	return toModels(rows), nil
}

func (r *implRepository) ListRetryable(ctx context.Context, opts repository.ListDueOptions) ([]model.Notification, error) {
	var rows []notificationRow
	if err := postgresPkg.NewQuery(buildRetryableQuery(opts)...).Bind(ctx, r.db, &rows); err != nil {
		r.l.Errorf(ctx, "internal.notification.repository.postgres.ListRetryable.Bind: %v", err)
		return nil, errors.Wrap(err, "list retryable notifications")
	}
	return toModels(rows), nil
}

func (r *implRepository) ListStuck(ctx context.Context, opts repository.ListDueOptions) ([]model.Notification, error) {
	var rows []notificationRow
	if err := postgresPkg.NewQuery(buildStuckQuery(opts)...).Bind(ctx, r.db, &rows); err != nil {
		r.l.Errorf(ctx, "internal.notification.repository.postgres.ListStuck.Bind: %v", err)
		return nil, errors.Wrap(err, "list stuck notifications")
	}
	return toModels(rows), nil
}
