package postgres

import (
	"context"

	"sla-srv/internal/alert/repository"
	"sla-srv/pkg/paginator"
	postgresPkg "sla-srv/pkg/postgre"

	"github.com/aarondl/sqlboiler/v4/queries/qm"
)

const tableAlerts = "feedback_alerts"

var alertColumns = []string{
	"id", "company_id", "feedback_id", "severity", "alert_type", "detected_keywords",
	"sentiment_score", "status", "is_escalated", "escalated_at",
	"acknowledged_by", "acknowledged_at", "resolved_at", "resolution_notes",
	"created_at", "updated_at",
}

var insertColumns = []string{
	"id", "company_id", "feedback_id", "severity", "alert_type", "detected_keywords",
	"sentiment_score", "status", "is_escalated", "created_at", "updated_at",
}

var updateColumns = []string{
	"status", "is_escalated", "escalated_at", "acknowledged_by", "acknowledged_at",
	"resolved_at", "resolution_notes", "updated_at",
}

const onConflictFeedback = `ON CONFLICT ("feedback_id") DO NOTHING`

func (r *implRepository) buildFilterQuery(ctx context.Context, f repository.Filter) ([]qm.QueryMod, error) {
	mods := []qm.QueryMod{qm.From(tableAlerts)}

	if len(f.CompanyIDs) > 0 {
		if err := postgresPkg.ValidateUUIDs(f.CompanyIDs); err != nil {
			r.l.Errorf(ctx, "internal.alert.repository.postgres.buildFilterQuery.ValidateUUIDs: %v", err)
			return nil, err
		}
		mods = append(mods, qm.WhereIn("company_id IN ?", postgresPkg.Args(f.CompanyIDs)...))
	}
	if len(f.IDs) > 0 {
		if err := postgresPkg.ValidateUUIDs(f.IDs); err != nil {
			r.l.Errorf(ctx, "internal.alert.repository.postgres.buildFilterQuery.ValidateUUIDs: %v", err)
			return nil, err
		}
		mods = append(mods, qm.WhereIn("id IN ?", postgresPkg.Args(f.IDs)...))
	}
	if f.FeedbackID != "" {
		if err := postgresPkg.IsUUID(f.FeedbackID); err != nil {
			r.l.Errorf(ctx, "internal.alert.repository.postgres.buildFilterQuery.IsUUID: %v", err)
			return nil, err
		}
		mods = append(mods, qm.Where("feedback_id = ?", f.FeedbackID))
	}
	if len(f.Statuses) > 0 {
		mods = append(mods, qm.WhereIn("status IN ?", postgresPkg.Args(f.Statuses)...))
	}
	if len(f.Severities) > 0 {
		mods = append(mods, qm.WhereIn("severity IN ?", postgresPkg.Args(f.Severities)...))
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
		qm.Select(alertColumns...),
		qm.OrderBy("created_at DESC, id DESC"),
		qm.Limit(int(pq.Limit)),
		qm.Offset(int(pq.Offset())),
	), nil
}

func (r *implRepository) buildDetailQuery(ctx context.Context, id string) ([]qm.QueryMod, error) {
	if err := postgresPkg.IsUUID(id); err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.buildDetailQuery.IsUUID: %v", err)
		return nil, err
	}

	return []qm.QueryMod{
		qm.Select(alertColumns...),
		qm.From(tableAlerts),
		qm.Where("id = ?", id),
		qm.Limit(1),
	}, nil
}

var qmSelectStatusSeverityCounts = []qm.QueryMod{
	qm.Select("status", "severity", "COUNT(*) AS total"),
	qm.GroupBy("status, severity"),
}

var qmSelectAvgAcknowledge = []qm.QueryMod{
	qm.Select("AVG(EXTRACT(EPOCH FROM (acknowledged_at - created_at)) / 60) AS minutes"),
	qm.Where("acknowledged_at IS NOT NULL"),
}
