package postgres

import (
	"context"
	"time"

	"sla-srv/internal/feedback/repository"
	"sla-srv/internal/model"
	postgresPkg "sla-srv/pkg/postgre"

	"github.com/aarondl/null/v8"
	"github.com/friendsofgo/errors"
)

type feedbackRow struct {
	ID               string       `boil:"id"`
	CompanyID        string       `boil:"company_id"`
	FeedbackTypeID   string       `boil:"feedback_type_id"`
	FeedbackTypeKind string       `boil:"feedback_type_kind"`
	Rating           null.Int     `boil:"rating"`
	Sentiment        null.String  `boil:"sentiment"`
	SentimentScore   null.Float64 `boil:"sentiment_score"`
	Content          null.String  `boil:"content"`
	Status           string       `boil:"status"`
	ClientID         null.String  `boil:"client_id"`
	CreatedAt        time.Time    `boil:"created_at"`
}

func (row feedbackRow) toModel() model.Feedback {
	fb := model.Feedback{
		ID:               row.ID,
		CompanyID:        row.CompanyID,
		FeedbackTypeID:   row.FeedbackTypeID,
		FeedbackTypeKind: row.FeedbackTypeKind,
		Content:          row.Content.String,
		Status:           model.FeedbackStatus(row.Status),
		CreatedAt:        row.CreatedAt,
	}
	if row.Rating.Valid {
		fb.Rating = &row.Rating.Int
	}
	if row.Sentiment.Valid {
		fb.Sentiment = &row.Sentiment.String
	}
	if row.SentimentScore.Valid {
		fb.SentimentScore = &row.SentimentScore.Float64
	}
	if row.ClientID.Valid {
		fb.ClientID = &row.ClientID.String
	}
	return fb
}

func (r *implRepository) Detail(ctx context.Context, id string) (model.Feedback, error) {
	mods, err := r.buildDetailQuery(ctx, id)
	if err != nil {
		r.l.Errorf(ctx, "internal.feedback.repository.postgres.Detail.buildDetailQuery: %v", err)
		return model.Feedback{}, err
	}

	var rows []feedbackRow
	if err := postgresPkg.NewQuery(mods...).Bind(ctx, r.db, &rows); err != nil {
		r.l.Errorf(ctx, "internal.feedback.repository.postgres.Detail.Bind: %v", err)
		return model.Feedback{}, errors.Wrap(err, "feedback detail")
	}
	if len(rows) == 0 {
		return model.Feedback{}, repository.ErrNotFound
	}

	return rows[0].toModel(), nil
}

func (r *implRepository) ListOpen(ctx context.Context, opts repository.ListOpenOptions) ([]model.Feedback, error) {
	mods, err := r.buildListOpenQuery(ctx, opts)
	if err != nil {
		r.l.Errorf(ctx, "internal.feedback.repository.postgres.ListOpen.buildListOpenQuery: %v", err)
		return nil, err
	}

	var rows []feedbackRow
	if err := postgresPkg.NewQuery(mods...).Bind(ctx, r.db, &rows); err != nil {
		r.l.Errorf(ctx, "internal.feedback.repository.postgres.ListOpen.Bind: %v", err)
		return nil, errors.Wrap(err, "list open feedbacks")
	}

	res := make([]model.Feedback, len(rows))
	for i, row := range rows {
		res[i] = row.toModel()
	}
	return res, nil
}
