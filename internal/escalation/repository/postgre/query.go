package postgres

import (
	"context"

	"sla-srv/internal/escalation/repository"
	"sla-srv/pkg/paginator"
	postgresPkg "sla-srv/pkg/postgre"

	"github.com/aarondl/sqlboiler/v4/queries/qm"
)

const tableEscalations = "sla_escalations"

var escalationColumns = []string{
	"id", "company_id", "feedback_id", "sla_rule_id", "escalation_level", "trigger_reason",
	"escalated_at", "notified_users", "notification_channels_used",
	"is_resolved", "resolved_at", "resolved_by", "resolution_notes",
	"created_at", "updated_at",
}

var insertColumns = []string{
	"id", "company_id", "feedback_id", "sla_rule_id", "escalation_level", "trigger_reason",
	"escalated_at", "notified_users", "notification_channels_used", "is_resolved",
	"created_at", "updated_at",
}

// onConflictUnresolved targets the partial unique index
// (feedback_id, escalation_level) WHERE is_resolved = false.
const onConflictUnresolved = `ON CONFLICT ("feedback_id", "escalation_level") WHERE "is_resolved" = false DO NOTHING`

func (r *implRepository) buildFilterQuery(ctx context.Context, f repository.Filter) ([]qm.QueryMod, error) {
	mods := []qm.QueryMod{qm.From(tableEscalations)}

	if len(f.CompanyIDs) > 0 {
		if err := postgresPkg.ValidateUUIDs(f.CompanyIDs); err != nil {
			r.l.Errorf(ctx, "internal.escalation.repository.postgres.buildFilterQuery.ValidateUUIDs: %v", err)
			return nil, err
		}
		mods = append(mods, qm.WhereIn("company_id IN ?", postgresPkg.Args(f.CompanyIDs)...))
	}
	if f.FeedbackID != "" {
		if err := postgresPkg.IsUUID(f.FeedbackID); err != nil {
			r.l.Errorf(ctx, "internal.escalation.repository.postgres.buildFilterQuery.IsUUID: %v", err)
			return nil, err
		}
		mods = append(mods, qm.Where("feedback_id = ?", f.FeedbackID))
	}
	if f.Level > 0 {
		mods = append(mods, qm.Where("escalation_level = ?", f.Level))
	}
	if f.IsResolved != nil {
		mods = append(mods, qm.Where("is_resolved = ?", *f.IsResolved))
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
		qm.Select(escalationColumns...),
		qm.OrderBy("escalated_at DESC, escalation_level DESC"),
		qm.Limit(int(pq.Limit)),
		qm.Offset(int(pq.Offset())),
	), nil
}

func (r *implRepository) buildDetailQuery(ctx context.Context, id string) ([]qm.QueryMod, error) {
	if err := postgresPkg.IsUUID(id); err != nil {
		r.l.Errorf(ctx, "internal.escalation.repository.postgres.buildDetailQuery.IsUUID: %v", err)
		return nil, err
	}

	return []qm.QueryMod{
		qm.Select(escalationColumns...),
		qm.From(tableEscalations),
		qm.Where("id = ?", id),
		qm.Limit(1),
	}, nil
}

var qmSelectLevelCounts = []qm.QueryMod{
	qm.Select(
		"escalation_level",
		"COUNT(*) AS total",
		"COUNT(*) FILTER (WHERE is_resolved) AS resolved",
	),
	qm.GroupBy("escalation_level"),
	qm.OrderBy("escalation_level ASC"),
}
