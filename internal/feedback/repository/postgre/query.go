package postgres

import (
	"context"

	"sla-srv/internal/feedback/repository"
	"sla-srv/internal/model"
	postgresPkg "sla-srv/pkg/postgre"

	"github.com/aarondl/sqlboiler/v4/queries/qm"
)

const defaultPageSize = 200

var feedbackColumns = []string{
	"f.id",
	"f.company_id",
	"f.feedback_type_id",
	"ft.kind AS feedback_type_kind",
	"f.rating",
	"f.sentiment",
	"f.sentiment_score",
	"f.content",
	"f.status",
	"f.client_id",
	"f.created_at",
}

func baseMods() []qm.QueryMod {
	return []qm.QueryMod{
		qm.Select(feedbackColumns...),
		qm.From(`"feedbacks" AS f`),
		qm.InnerJoin(`"feedback_types" AS ft ON ft.id = f.feedback_type_id`),
		qm.Where("f.deleted_at IS NULL"),
	}
}

func (r *implRepository) buildDetailQuery(ctx context.Context, id string) ([]qm.QueryMod, error) {
	if err := postgresPkg.IsUUID(id); err != nil {
		r.l.Errorf(ctx, "internal.feedback.repository.postgres.buildDetailQuery.IsUUID: %v", err)
		return nil, err
	}

	return append(baseMods(),
		qm.Where("f.id = ?", id),
		qm.Limit(1),
	), nil
}

func (r *implRepository) buildListOpenQuery(ctx context.Context, opts repository.ListOpenOptions) ([]qm.QueryMod, error) {
	mods := append(baseMods(), qm.WhereIn("f.status IN ?", postgresPkg.Args(model.OpenFeedbackStatuses)...))

	if len(opts.CompanyIDs) > 0 {
		if err := postgresPkg.ValidateUUIDs(opts.CompanyIDs); err != nil {
			r.l.Errorf(ctx, "internal.feedback.repository.postgres.buildListOpenQuery.ValidateUUIDs: %v", err)
			return nil, err
		}
		mods = append(mods, qm.AndIn("f.company_id IN ?", postgresPkg.Args(opts.CompanyIDs)...))
	}

	if opts.After != nil {
		mods = append(mods, qm.And("(f.created_at, f.id) > (?, ?)", opts.After.CreatedAt, opts.After.ID))
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	mods = append(mods,
		qm.OrderBy("f.created_at ASC, f.id ASC"),
		qm.Limit(limit),
	)

	return mods, nil
}
