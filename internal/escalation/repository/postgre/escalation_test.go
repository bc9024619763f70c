package postgres

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"sla-srv/internal/escalation/repository"
	"sla-srv/internal/model"
	pkgLog "sla-srv/pkg/log"
	"sla-srv/pkg/paginator"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	escID      = "1f2e3d4c-5b6a-4978-8695-a4b3c2d1e0f9"
	companyID  = "0b3e8f5a-7c1d-4e2f-8a9b-1c2d3e4f5a6b"
	feedbackID = "6c5d4e3f-2a1b-4c0d-9e8f-7a6b5c4d3e2f"
	ruleID     = "9a8b7c6d-5e4f-4a3b-8c2d-1e0f9a8b7c6d"
	userID     = "7d6c5b4a-3f2e-4d1c-9b0a-8f7e6d5c4b3a"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newMockRepo(t *testing.T) (*implRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &implRepository{
		l:     pkgLog.NewNop(),
		db:    db,
		clock: func() time.Time { return fixedNow },
	}, mock
}

func escRow(level int, resolved bool) []driver.Value {
	var resolvedAt, resolvedBy interface{}
	if resolved {
		resolvedAt, resolvedBy = fixedNow, userID
	}
	return []driver.Value{
		escID, companyID, feedbackID, ruleID, level, "sla_breach",
		fixedNow, "{" + userID + "}", "{email}",
		resolved, resolvedAt, resolvedBy, nil,
		fixedNow, fixedNow,
	}
}

func TestCreateIfAbsentInserted(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`(?s)INSERT INTO "sla_escalations" .* ON CONFLICT \("feedback_id", "escalation_level"\) WHERE "is_resolved" = false DO NOTHING RETURNING`).
		WithArgs(escID, companyID, feedbackID, ruleID, 2, "sla_breach", fixedNow,
			sqlmock.AnyArg(), sqlmock.AnyArg(), false, fixedNow, fixedNow).
		WillReturnRows(sqlmock.NewRows(escalationColumns).AddRow(escRow(2, false)...))

	esc, created, err := repo.CreateIfAbsent(context.Background(), repository.CreateOptions{
		Escalation: model.Escalation{
			ID: escID, CompanyID: companyID, FeedbackID: feedbackID, SlaRuleID: ruleID,
			EscalationLevel: 2, TriggerReason: model.TriggerSlaBreach, EscalatedAt: fixedNow,
		},
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 2, esc.EscalationLevel)
	assert.Equal(t, []string{userID}, esc.NotifiedUsers)
	assert.Equal(t, []model.Channel{model.ChannelEmail}, esc.NotificationChannelsUsed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateIfAbsentConflict(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`INSERT INTO "sla_escalations"`).
		WillReturnRows(sqlmock.NewRows(escalationColumns))

	_, created, err := repo.CreateIfAbsent(context.Background(), repository.CreateOptions{
		Escalation: model.Escalation{
			CompanyID: companyID, FeedbackID: feedbackID, SlaRuleID: ruleID,
			EscalationLevel: 1, TriggerReason: model.TriggerSlaBreach, EscalatedAt: fixedNow,
		},
	})
	require.NoError(t, err)
	assert.False(t, created)
}

func TestListByFeedback(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`(?s)FROM "sla_escalations" WHERE.*feedback_id = \$1.*ORDER BY escalation_level ASC`).
		WithArgs(feedbackID).
		WillReturnRows(sqlmock.NewRows(escalationColumns).
			AddRow(escRow(1, true)...).
			AddRow(escRow(2, false)...))

	escs, err := repo.ListByFeedback(context.Background(), feedbackID)
	require.NoError(t, err)
	require.Len(t, escs, 2)
	assert.True(t, escs[0].IsResolved)
	require.NotNil(t, escs[0].ResolvedBy)
	assert.Equal(t, userID, *escs[0].ResolvedBy)
	assert.Equal(t, 2, model.CurrentLevel(escs))
}

func TestListByFeedbackInvalidID(t *testing.T) {
	repo, _ := newMockRepo(t)
	_, err := repo.ListByFeedback(context.Background(), "nope")
	assert.Error(t, err)
}

func TestResolveCompareAndSet(t *testing.T) {
	repo, mock := newMockRepo(t)
	notes := "called back"

	mock.ExpectQuery(`(?s)UPDATE "sla_escalations" SET "is_resolved" = true.*WHERE "id" = \$5 AND "is_resolved" = false RETURNING`).
		WithArgs(fixedNow, userID, notes, fixedNow, escID).
		WillReturnRows(sqlmock.NewRows(escalationColumns).AddRow(escRow(1, true)...))

	esc, err := repo.Resolve(context.Background(), repository.ResolveOptions{
		ID: escID, ResolvedBy: userID, Notes: &notes, At: fixedNow,
	})
	require.NoError(t, err)
	assert.True(t, esc.IsResolved)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveAlreadyResolved(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`UPDATE "sla_escalations"`).
		WillReturnRows(sqlmock.NewRows(escalationColumns))

	_, err := repo.Resolve(context.Background(), repository.ResolveOptions{ID: escID, ResolvedBy: userID, At: fixedNow})
	assert.ErrorIs(t, err, repository.ErrNotUnresolved)
}

func TestRecordNotified(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE "sla_escalations" SET "notified_users" = \$1, "notification_channels_used" = \$2`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), fixedNow, escID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.RecordNotified(context.Background(), repository.RecordNotifiedOptions{
		ID: escID, Users: []string{userID}, Channels: []model.Channel{model.ChannelEmail},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordNotifiedMissingRow(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE "sla_escalations"`).WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.RecordNotified(context.Background(), repository.RecordNotifiedOptions{ID: escID})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGetPaginates(t *testing.T) {
	repo, mock := newMockRepo(t)
	resolved := false

	mock.ExpectQuery(`(?s)FROM "sla_escalations" WHERE.*"?company_id"? IN \(\$1\).*is_resolved = \$2.*LIMIT 10 OFFSET 10`).
		WithArgs(companyID, false).
		WillReturnRows(sqlmock.NewRows(escalationColumns).AddRow(escRow(1, false)...))
	mock.ExpectQuery(`(?s)SELECT COUNT\(\*\) FROM "sla_escalations"`).
		WithArgs(companyID, false).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))

	escs, pag, err := repo.Get(context.Background(), repository.GetOptions{
		Filter:        repository.Filter{CompanyIDs: []string{companyID}, IsResolved: &resolved},
		PaginateQuery: paginator.PaginateQuery{Page: 2, Limit: 10},
	})
	require.NoError(t, err)
	assert.Len(t, escs, 1)
	assert.Equal(t, int64(11), pag.Total)
	assert.Equal(t, 2, pag.CurrentPage)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountGroupsByLevel(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`(?s)SELECT "?escalation_level"?, COUNT\(\*\) AS total.*GROUP BY "?escalation_level"?`).
		WillReturnRows(sqlmock.NewRows([]string{"escalation_level", "total", "resolved"}).
			AddRow(1, 10, 7).
			AddRow(2, 4, 1).
			AddRow(3, 1, 0))

	counts, err := repo.Count(context.Background(), repository.CountOptions{})
	require.NoError(t, err)
	assert.Equal(t, map[int]int64{1: 10, 2: 4, 3: 1}, counts.ByLevel)
	assert.Equal(t, int64(8), counts.Resolved)
	assert.Equal(t, int64(7), counts.Open)
}
