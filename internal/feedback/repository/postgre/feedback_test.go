package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"sla-srv/internal/feedback/repository"
	"sla-srv/internal/model"
	pkgLog "sla-srv/pkg/log"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var feedbackCols = []string{
	"id", "company_id", "feedback_type_id", "feedback_type_kind", "rating", "sentiment",
	"sentiment_score", "content", "status", "client_id", "created_at",
}

const (
	fbID      = "6f1c2a7e-1b7a-4f0e-9a51-0a3c8f5e2d11"
	companyID = "0b3e8f5a-7c1d-4e2f-8a9b-1c2d3e4f5a6b"
	typeID    = "5a6b7c8d-9e0f-4a1b-8c2d-3e4f5a6b7c8d"
)

func newMockRepo(t *testing.T) (*implRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &implRepository{l: pkgLog.NewNop(), db: db}, mock
}

func TestDetail(t *testing.T) {
	repo, mock := newMockRepo(t)
	created := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM "feedbacks" AS f INNER JOIN "feedback_types" AS ft`)).
		WithArgs(fbID).
		WillReturnRows(sqlmock.NewRows(feedbackCols).
			AddRow(fbID, companyID, typeID, "negative", 2, "negative", nil, "slow service", "new", nil, created))

	fb, err := repo.Detail(context.Background(), fbID)
	require.NoError(t, err)
	assert.Equal(t, fbID, fb.ID)
	assert.Equal(t, "negative", fb.FeedbackTypeKind)
	require.NotNil(t, fb.Rating)
	assert.Equal(t, 2, *fb.Rating)
	assert.Nil(t, fb.SentimentScore)
	assert.Nil(t, fb.ClientID)
	assert.Equal(t, model.FeedbackStatusNew, fb.Status)
	assert.True(t, fb.CreatedAt.Equal(created))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDetailNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`FROM "feedbacks"`).
		WithArgs(fbID).
		WillReturnRows(sqlmock.NewRows(feedbackCols))

	_, err := repo.Detail(context.Background(), fbID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDetailRejectsInvalidID(t *testing.T) {
	repo, _ := newMockRepo(t)

	_, err := repo.Detail(context.Background(), "not-a-uuid")
	assert.Error(t, err)
}

func TestListOpenKeyset(t *testing.T) {
	repo, mock := newMockRepo(t)
	after := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`(?s)"?f"?\."?status"? IN \(\$1,\$2,\$3\).*"?f"?\."?company_id"? IN \(\$4\).*\(f\.created_at, f\.id\) > \(\$5, \$6\).*ORDER BY f\.created_at ASC, f\.id ASC LIMIT 50`).
		WithArgs("new", "seen", "in_progress", companyID, after, fbID).
		WillReturnRows(sqlmock.NewRows(feedbackCols).
			AddRow(fbID, companyID, typeID, "positive", nil, nil, 0.4, "ok", "seen", nil, after.Add(time.Minute)))

	res, err := repo.ListOpen(context.Background(), repository.ListOpenOptions{
		CompanyIDs: []string{companyID},
		After:      &repository.Cursor{CreatedAt: after, ID: fbID},
		Limit:      50,
	})
	require.NoError(t, err)
	require.Len(t, res, 1)
	require.NotNil(t, res[0].SentimentScore)
	assert.InDelta(t, 0.4, *res[0].SentimentScore, 1e-9)
	assert.NoError(t, mock.ExpectationsWereMet())
}
