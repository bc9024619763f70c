package postgres

import (
	"context"
	"fmt"
	"time"

	"sla-srv/internal/alert/repository"
	"sla-srv/internal/model"
	"sla-srv/pkg/paginator"
	postgresPkg "sla-srv/pkg/postgre"

	"github.com/aarondl/null/v8"
	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/aarondl/sqlboiler/v4/queries/qm"
	"github.com/aarondl/sqlboiler/v4/types"
	"github.com/friendsofgo/errors"
)

type alertRow struct {
	ID               string            `boil:"id"`
	CompanyID        string            `boil:"company_id"`
	FeedbackID       string            `boil:"feedback_id"`
	Severity         string            `boil:"severity"`
	AlertType        string            `boil:"alert_type"`
	DetectedKeywords types.StringArray `boil:"detected_keywords"`
	SentimentScore   float64           `boil:"sentiment_score"`
	Status           string            `boil:"status"`
	IsEscalated      bool              `boil:"is_escalated"`
	EscalatedAt      null.Time         `boil:"escalated_at"`
	AcknowledgedBy   null.String       `boil:"acknowledged_by"`
	AcknowledgedAt   null.Time         `boil:"acknowledged_at"`
	ResolvedAt       null.Time         `boil:"resolved_at"`
	ResolutionNotes  null.String       `boil:"resolution_notes"`
	CreatedAt        time.Time         `boil:"created_at"`
	UpdatedAt        time.Time         `boil:"updated_at"`
}

func (row alertRow) toModel() model.Alert {
	keywords := []string(row.DetectedKeywords)
	if keywords == nil {
		keywords = []string{}
	}
	return model.Alert{
		ID:               row.ID,
		CompanyID:        row.CompanyID,
		FeedbackID:       row.FeedbackID,
		Severity:         model.Severity(row.Severity),
		AlertType:        model.AlertType(row.AlertType),
		DetectedKeywords: keywords,
		SentimentScore:   row.SentimentScore,
		Status:           model.AlertStatus(row.Status),
		IsEscalated:      row.IsEscalated,
		EscalatedAt:      row.EscalatedAt.Ptr(),
		AcknowledgedBy:   row.AcknowledgedBy.Ptr(),
		AcknowledgedAt:   row.AcknowledgedAt.Ptr(),
		ResolvedAt:       row.ResolvedAt.Ptr(),
		ResolutionNotes:  row.ResolutionNotes.Ptr(),
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
	}
}

func toModels(rows []alertRow) []model.Alert {
	res := make([]model.Alert, len(rows))
	for i, row := range rows {
		res[i] = row.toModel()
	}
	return res
}

func (r *implRepository) Create(ctx context.Context, opts repository.CreateOptions) (model.Alert, bool, error) {
	a := opts.Alert
	if a.ID == "" {
		a.ID = postgresPkg.NewUUID()
	}
	if a.Status == "" {
		a.Status = model.AlertStatusNew
	}
	keywords := types.StringArray(a.DetectedKeywords)
	if keywords == nil {
		keywords = types.StringArray{}
	}
	now := r.clock()

	sql := postgresPkg.InsertSQL(tableAlerts, insertColumns,
		onConflictFeedback+" "+postgresPkg.ReturningSQL(alertColumns))

	var rows []alertRow
	err := queries.Raw(sql,
		a.ID, a.CompanyID, a.FeedbackID, string(a.Severity), string(a.AlertType), keywords,
		a.SentimentScore, string(a.Status), a.IsEscalated, now, now,
	).Bind(ctx, r.db, &rows)
	if err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.Create.Insert: %v", err)
		return model.Alert{}, false, errors.Wrap(err, "insert alert")
	}
	if len(rows) > 0 {
		return rows[0].toModel(), true, nil
	}

	existing, err := r.detailBy(ctx, qm.Where("feedback_id = ?", a.FeedbackID))
	if err != nil {
		return model.Alert{}, false, err
	}
	return existing, false, nil
}

func (r *implRepository) Detail(ctx context.Context, id string) (model.Alert, error) {
	if err := postgresPkg.IsUUID(id); err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.Detail.IsUUID: %v", err)
		return model.Alert{}, err
	}
	return r.detailBy(ctx, qm.Where("id = ?", id))
}

func (r *implRepository) detailBy(ctx context.Context, where qm.QueryMod) (model.Alert, error) {
	var rows []alertRow
	err := postgresPkg.NewQuery(
		qm.Select(alertColumns...),
		qm.From(tableAlerts),
		where,
		qm.Limit(1),
	).Bind(ctx, r.db, &rows)
	if err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.detailBy.Bind: %v", err)
		return model.Alert{}, errors.Wrap(err, "alert detail")
	}
	if len(rows) == 0 {
		return model.Alert{}, repository.ErrNotFound
	}
	return rows[0].toModel(), nil
}

func (r *implRepository) Get(ctx context.Context, opts repository.GetOptions) ([]model.Alert, paginator.Paginator, error) {
	mods, err := r.buildGetQuery(ctx, opts.Filter, opts.PaginateQuery)
	if err != nil {
		return nil, paginator.Paginator{}, err
	}

	var rows []alertRow
	if err := postgresPkg.NewQuery(mods...).Bind(ctx, r.db, &rows); err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.Get.Bind: %v", err)
		return nil, paginator.Paginator{}, errors.Wrap(err, "get alerts")
	}

	cntMods, err := r.buildFilterQuery(ctx, opts.Filter)
	if err != nil {
		return nil, paginator.Paginator{}, err
	}
	cntQuery := postgresPkg.NewQuery(cntMods...)
	queries.SetCount(cntQuery)

	var total int64
	if err := cntQuery.QueryRowContext(ctx, r.db).Scan(&total); err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.Get.Count: %v", err)
		return nil, paginator.Paginator{}, errors.Wrap(err, "count alerts")
	}

	return toModels(rows), opts.PaginateQuery.Result(total, len(rows)), nil
}

func (r *implRepository) Update(ctx context.Context, opts repository.UpdateOptions) (model.Alert, error) {
	a := opts.Alert
	if err := postgresPkg.IsUUID(a.ID); err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.Update.IsUUID: %v", err)
		return model.Alert{}, err
	}

	n := len(updateColumns)
	sql := fmt.Sprintf(`UPDATE "feedback_alerts" SET %s WHERE "id" = $%d AND "status" = $%d AND "is_escalated" = $%d %s`,
		postgresPkg.SetSQL(updateColumns, 1), n+1, n+2, n+3, postgresPkg.ReturningSQL(alertColumns))

	var rows []alertRow
	err := queries.Raw(sql,
		string(a.Status), a.IsEscalated, null.TimeFromPtr(a.EscalatedAt),
		null.StringFromPtr(a.AcknowledgedBy), null.TimeFromPtr(a.AcknowledgedAt),
		null.TimeFromPtr(a.ResolvedAt), null.StringFromPtr(a.ResolutionNotes), r.clock(),
		a.ID, string(opts.PrevStatus), opts.PrevEscalated,
	).Bind(ctx, r.db, &rows)
	if err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.Update.Update: %v", err)
		return model.Alert{}, errors.Wrap(err, "update alert")
	}
	if len(rows) == 0 {
		return model.Alert{}, repository.ErrStale
	}

	return rows[0].toModel(), nil
}

type statusSeverityCountRow struct {
	Status   string `boil:"status"`
	Severity string `boil:"severity"`
	Total    int64  `boil:"total"`
}

func (r *implRepository) Count(ctx context.Context, opts repository.CountOptions) (repository.Counts, error) {
	mods, err := r.buildFilterQuery(ctx, opts.Filter)
	if err != nil {
		return repository.Counts{}, err
	}

	var rows []statusSeverityCountRow
	if err := postgresPkg.NewQuery(append(mods, qmSelectStatusSeverityCounts...)...).Bind(ctx, r.db, &rows); err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.Count.Bind: %v", err)
		return repository.Counts{}, errors.Wrap(err, "count alerts")
	}

	counts := repository.Counts{
		ByStatus:   make(map[model.AlertStatus]int64, len(model.AlertStatuses)),
		BySeverity: make(map[model.Severity]int64, len(model.Severities)),
	}
	for _, row := range rows {
		counts.Total += row.Total
		counts.ByStatus[model.AlertStatus(row.Status)] += row.Total
		counts.BySeverity[model.Severity(row.Severity)] += row.Total
	}
	return counts, nil
}

type avgRow struct {
	Minutes null.Float64 `boil:"minutes"`
}

func (r *implRepository) AvgMinutesToAcknowledge(ctx context.Context, opts repository.CountOptions) (float64, error) {
	mods, err := r.buildFilterQuery(ctx, opts.Filter)
	if err != nil {
		return 0, err
	}

	var rows []avgRow
	if err := postgresPkg.NewQuery(append(mods, qmSelectAvgAcknowledge...)...).Bind(ctx, r.db, &rows); err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.AvgMinutesToAcknowledge.Bind: %v", err)
		return 0, errors.Wrap(err, "average acknowledge time")
	}
	if len(rows) == 0 || !rows[0].Minutes.Valid {
		return 0, nil
	}
	return rows[0].Minutes.Float64, nil
}
