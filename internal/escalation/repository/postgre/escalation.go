package postgres

import (
	"context"
	"time"

	"sla-srv/internal/escalation/repository"
	"sla-srv/internal/model"
	"sla-srv/pkg/paginator"
	postgresPkg "sla-srv/pkg/postgre"

	"github.com/aarondl/null/v8"
	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/aarondl/sqlboiler/v4/queries/qm"
	"github.com/aarondl/sqlboiler/v4/types"
	"github.com/friendsofgo/errors"
)

type escalationRow struct {
	ID                       string            `boil:"id"`
	CompanyID                string            `boil:"company_id"`
	FeedbackID               string            `boil:"feedback_id"`
	SlaRuleID                string            `boil:"sla_rule_id"`
	EscalationLevel          int               `boil:"escalation_level"`
	TriggerReason            string            `boil:"trigger_reason"`
	EscalatedAt              time.Time         `boil:"escalated_at"`
	NotifiedUsers            types.StringArray `boil:"notified_users"`
	NotificationChannelsUsed types.StringArray `boil:"notification_channels_used"`
	IsResolved               bool              `boil:"is_resolved"`
	ResolvedAt               null.Time         `boil:"resolved_at"`
	ResolvedBy               null.String       `boil:"resolved_by"`
	ResolutionNotes          null.String       `boil:"resolution_notes"`
	CreatedAt                time.Time         `boil:"created_at"`
	UpdatedAt                time.Time         `boil:"updated_at"`
}

func (row escalationRow) toModel() model.Escalation {
	esc := model.Escalation{
		ID:              row.ID,
		CompanyID:       row.CompanyID,
		FeedbackID:      row.FeedbackID,
		SlaRuleID:       row.SlaRuleID,
		EscalationLevel: row.EscalationLevel,
		TriggerReason:   model.TriggerReason(row.TriggerReason),
		EscalatedAt:     row.EscalatedAt,
		NotifiedUsers:   []string(row.NotifiedUsers),
		IsResolved:      row.IsResolved,
		ResolvedAt:      row.ResolvedAt.Ptr(),
		ResolvedBy:      row.ResolvedBy.Ptr(),
		ResolutionNotes: row.ResolutionNotes.Ptr(),
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
	for _, ch := range row.NotificationChannelsUsed {
		esc.NotificationChannelsUsed = append(esc.NotificationChannelsUsed, model.Channel(ch))
	}
	return esc
}

func toModels(rows []escalationRow) []model.Escalation {
	res := make([]model.Escalation, len(rows))
	for i, row := range rows {
		res[i] = row.toModel()
	}
	return res
}

func channelArray(chs []model.Channel) types.StringArray {
	arr := make(types.StringArray, len(chs))
	for i, ch := range chs {
		arr[i] = string(ch)
	}
	return arr
}

func stringArray(s []string) types.StringArray {
	if s == nil {
		return types.StringArray{}
	}
	return types.StringArray(s)
}

func (r *implRepository) ListByFeedback(ctx context.Context, feedbackID string) ([]model.Escalation, error) {
	if err := postgresPkg.IsUUID(feedbackID); err != nil {
		r.l.Errorf(ctx, "internal.escalation.repository.postgres.ListByFeedback.IsUUID: %v", err)
		return nil, err
	}

	var rows []escalationRow
	err := postgresPkg.NewQuery(
		qm.Select(escalationColumns...),
		qm.From(tableEscalations),
		qm.Where("feedback_id = ?", feedbackID),
		qm.OrderBy("escalation_level ASC, created_at ASC"),
	).Bind(ctx, r.db, &rows)
	if err != nil {
		r.l.Errorf(ctx, "internal.escalation.repository.postgres.ListByFeedback.Bind: %v", err)
		return nil, errors.Wrap(err, "list escalations by feedback")
	}

	return toModels(rows), nil
}

func (r *implRepository) CreateIfAbsent(ctx context.Context, opts repository.CreateOptions) (model.Escalation, bool, error) {
	esc := opts.Escalation
	if esc.ID == "" {
		esc.ID = postgresPkg.NewUUID()
	}
	now := r.clock()

	args := []interface{}{
		esc.ID, esc.CompanyID, esc.FeedbackID, esc.SlaRuleID, esc.EscalationLevel,
		string(esc.TriggerReason), esc.EscalatedAt,
		stringArray(esc.NotifiedUsers), channelArray(esc.NotificationChannelsUsed), false,
		now, now,
	}
	sql := postgresPkg.InsertSQL(tableEscalations, insertColumns,
		onConflictUnresolved+" "+postgresPkg.ReturningSQL(escalationColumns))

	var rows []escalationRow
	if err := queries.Raw(sql, args...).Bind(ctx, r.db, &rows); err != nil {
		r.l.Errorf(ctx, "internal.escalation.repository.postgres.CreateIfAbsent.Insert: %v", err)
		return model.Escalation{}, false, errors.Wrap(err, "insert escalation")
	}
	if len(rows) == 0 {
		return model.Escalation{}, false, nil
	}

	return rows[0].toModel(), true, nil
}

func (r *implRepository) RecordNotified(ctx context.Context, opts repository.RecordNotifiedOptions) error {
	res, err := queries.Raw(
		`UPDATE "sla_escalations" SET "notified_users" = $1, "notification_channels_used" = $2, "updated_at" = $3 WHERE "id" = $4`,
		stringArray(opts.Users), channelArray(opts.Channels), r.clock(), opts.ID,
	).ExecContext(ctx, r.db)
	if err != nil {
		r.l.Errorf(ctx, "internal.escalation.repository.postgres.RecordNotified.Exec: %v", err)
		return errors.Wrap(err, "record escalation notified")
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *implRepository) Resolve(ctx context.Context, opts repository.ResolveOptions) (model.Escalation, error) {
	if err := postgresPkg.IsUUID(opts.ID); err != nil {
		r.l.Errorf(ctx, "internal.escalation.repository.postgres.Resolve.IsUUID: %v", err)
		return model.Escalation{}, err
	}

	sql := `UPDATE "sla_escalations" SET "is_resolved" = true, "resolved_at" = $1, "resolved_by" = $2, "resolution_notes" = $3, "updated_at" = $4 ` +
		`WHERE "id" = $5 AND "is_resolved" = false ` + postgresPkg.ReturningSQL(escalationColumns)

	var rows []escalationRow
	err := queries.Raw(sql,
		opts.At, null.NewString(opts.ResolvedBy, opts.ResolvedBy != ""), null.StringFromPtr(opts.Notes), r.clock(), opts.ID,
	).Bind(ctx, r.db, &rows)
	if err != nil {
		r.l.Errorf(ctx, "internal.escalation.repository.postgres.Resolve.Update: %v", err)
		return model.Escalation{}, errors.Wrap(err, "resolve escalation")
	}
	if len(rows) == 0 {
		return model.Escalation{}, repository.ErrNotUnresolved
	}

	return rows[0].toModel(), nil
}

func (r *implRepository) Detail(ctx context.Context, id string) (model.Escalation, error) {
	mods, err := r.buildDetailQuery(ctx, id)
	if err != nil {
		return model.Escalation{}, err
	}

	var rows []escalationRow
	if err := postgresPkg.NewQuery(mods...).Bind(ctx, r.db, &rows); err != nil {
		r.l.Errorf(ctx, "internal.escalation.repository.postgres.Detail.Bind: %v", err)
		return model.Escalation{}, errors.Wrap(err, "escalation detail")
	}
	if len(rows) == 0 {
		return model.Escalation{}, repository.ErrNotFound
	}

	return rows[0].toModel(), nil
}

func (r *implRepository) Get(ctx context.Context, opts repository.GetOptions) ([]model.Escalation, paginator.Paginator, error) {
	mods, err := r.buildGetQuery(ctx, opts.Filter, opts.PaginateQuery)
	if err != nil {
		return nil, paginator.Paginator{}, err
	}

	var rows []escalationRow
	if err := postgresPkg.NewQuery(mods...).Bind(ctx, r.db, &rows); err != nil {
		r.l.Errorf(ctx, "internal.escalation.repository.postgres.Get.Bind: %v", err)
		return nil, paginator.Paginator{}, errors.Wrap(err, "get escalations")
	}

	cntMods, err := r.buildFilterQuery(ctx, opts.Filter)
	if err != nil {
		return nil, paginator.Paginator{}, err
	}
	cntQuery := postgresPkg.NewQuery(cntMods...)
	queries.SetCount(cntQuery)

	var total int64
	if err := cntQuery.QueryRowContext(ctx, r.db).Scan(&total); err != nil {
		r.l.Errorf(ctx, "internal.escalation.repository.postgres.Get.Count: %v", err)
		return nil, paginator.Paginator{}, errors.Wrap(err, "count escalations")
	}

	return toModels(rows), opts.PaginateQuery.Result(total, len(rows)), nil
}

type levelCountRow struct {
	EscalationLevel int   `boil:"escalation_level"`
	Total           int64 `boil:"total"`
	Resolved        int64 `boil:"resolved"`
}

func (r *implRepository) Count(ctx context.Context, opts repository.CountOptions) (repository.Counts, error) {
	mods, err := r.buildFilterQuery(ctx, opts.Filter)
	if err != nil {
		return repository.Counts{}, err
	}

	var rows []levelCountRow
	if err := postgresPkg.NewQuery(append(mods, qmSelectLevelCounts...)...).Bind(ctx, r.db, &rows); err != nil {
		r.l.Errorf(ctx, "internal.escalation.repository.postgres.Count.Bind: %v", err)
		return repository.Counts{}, errors.Wrap(err, "count escalations")
	}

	counts := repository.Counts{ByLevel: make(map[int]int64, model.MaxEscalationLevel)}
	for _, row := range rows {
		counts.ByLevel[row.EscalationLevel] = row.Total
		counts.Resolved += row.Resolved
		counts.Open += row.Total - row.Resolved
	}
	return counts, nil
}
