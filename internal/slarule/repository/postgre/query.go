package postgres

import (
	"context"

	"sla-srv/internal/slarule/repository"
	"sla-srv/pkg/paginator"
	postgresPkg "sla-srv/pkg/postgre"

	"github.com/aarondl/sqlboiler/v4/queries/qm"
)

const tableSlaRules = "sla_rules"

var ruleColumns = []string{
	"id", "company_id", "name", "description", "feedback_type_id", "conditions",
	"priority_level", "sort_order", "first_response_minutes", "resolution_minutes",
	"escalation_level_1_minutes", "escalation_level_2_minutes", "escalation_level_3_minutes",
	"level_1_recipients", "level_2_recipients", "level_3_recipients",
	"notification_channels", "is_active", "created_at", "updated_at",
}

// writableColumns excludes id and created_at.
var writableColumns = []string{
	"company_id", "name", "description", "feedback_type_id", "conditions",
	"priority_level", "sort_order", "first_response_minutes", "resolution_minutes",
	"escalation_level_1_minutes", "escalation_level_2_minutes", "escalation_level_3_minutes",
	"level_1_recipients", "level_2_recipients", "level_3_recipients",
	"notification_channels", "is_active", "updated_at",
}

func (r *implRepository) buildFilterQuery(ctx context.Context, f repository.Filter) ([]qm.QueryMod, error) {
	mods := []qm.QueryMod{
		qm.From(tableSlaRules),
		qm.Where("deleted_at IS NULL"),
	}

	if len(f.IDs) > 0 {
		if err := postgresPkg.ValidateUUIDs(f.IDs); err != nil {
			r.l.Errorf(ctx, "internal.slarule.repository.postgres.buildFilterQuery.ValidateUUIDs: %v", err)
			return nil, err
		}
		mods = append(mods, qm.AndIn("id IN ?", postgresPkg.Args(f.IDs)...))
	}
	if len(f.CompanyIDs) > 0 {
		if err := postgresPkg.ValidateUUIDs(f.CompanyIDs); err != nil {
			r.l.Errorf(ctx, "internal.slarule.repository.postgres.buildFilterQuery.ValidateUUIDs: %v", err)
			return nil, err
		}
		mods = append(mods, qm.AndIn("company_id IN ?", postgresPkg.Args(f.CompanyIDs)...))
	}
	if f.FeedbackTypeID != "" {
		if err := postgresPkg.IsUUID(f.FeedbackTypeID); err != nil {
			r.l.Errorf(ctx, "internal.slarule.repository.postgres.buildFilterQuery.IsUUID: %v", err)
			return nil, err
		}
		mods = append(mods, qm.And("feedback_type_id = ?", f.FeedbackTypeID))
	}
	if f.IsActive != nil {
		mods = append(mods, qm.And("is_active = ?", *f.IsActive))
	}

	return mods, nil
}

func (r *implRepository) buildListQuery(ctx context.Context, opts repository.ListOptions) ([]qm.QueryMod, error) {
	mods, err := r.buildFilterQuery(ctx, opts.Filter)
	if err != nil {
		return nil, err
	}
	return append(mods,
		qm.Select(ruleColumns...),
		qm.OrderBy("priority_level DESC, sort_order ASC, created_at ASC"),
	), nil
}

func (r *implRepository) buildGetQuery(ctx context.Context, opts repository.GetOptions, pq paginator.PaginateQuery) ([]qm.QueryMod, error) {
	mods, err := r.buildFilterQuery(ctx, opts.Filter)
	if err != nil {
		return nil, err
	}

	pq.Adjust()
	return append(mods,
		qm.Select(ruleColumns...),
		qm.Limit(int(pq.Limit)),
		qm.Offset(int(pq.Offset())),
		qm.OrderBy("priority_level DESC, sort_order ASC, created_at DESC"),
	), nil
}

func (r *implRepository) buildDetailQuery(ctx context.Context, id string) ([]qm.QueryMod, error) {
	if err := postgresPkg.IsUUID(id); err != nil {
		r.l.Errorf(ctx, "internal.slarule.repository.postgres.buildDetailQuery.IsUUID: %v", err)
		return nil, err
	}

	return []qm.QueryMod{
		qm.Select(ruleColumns...),
		qm.From(tableSlaRules),
		qm.Where("id = ?", id),
		qm.And("deleted_at IS NULL"),
		qm.Limit(1),
	}, nil
}

var qmSelectCounts = qm.Select(
	"COUNT(*) AS total",
	"COUNT(*) FILTER (WHERE is_active) AS active",
)
