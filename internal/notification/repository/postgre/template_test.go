package postgres

import (
	"context"
	"testing"

	"sla-srv/internal/model"
	"sla-srv/internal/notification/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCandidates(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`(?s)FROM "notification_templates" WHERE .*type = \$1.*channel = \$2.*is_active = \$3.*"?company_id"? IN \(\$4,\$5\)`).
		WithArgs("sla_escalation", "email", true, model.GlobalCompanyID, companyID).
		WillReturnRows(sqlmock.NewRows(templateColumns).
			AddRow("t1", companyID, "sla_escalation", "email", "Level {{escalation_level}}", nil, "body", false, true).
			AddRow("t2", model.GlobalCompanyID, "sla_escalation", "email", nil, "Title", nil, true, true))

	items, err := repo.ListCandidates(context.Background(), repository.TemplateOptions{
		CompanyID: companyID,
		Type:      "sla_escalation",
		Channel:   model.ChannelEmail,
	})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Level {{escalation_level}}", items[0].Subject)
	assert.Empty(t, items[0].Title)
	assert.True(t, items[1].IsDefault)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContact(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`(?s)SELECT .*full_name AS name.* FROM "users" WHERE .*id = \$1.*deleted_at IS NULL`).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "phone", "push_token", "webhook_url"}).
			AddRow(userID, "Ann", "ann@example.com", nil, "tok", nil))

	c, err := repo.Contact(context.Background(), model.UserRecipient(userID))
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", c.Address(model.ChannelEmail))
	assert.Equal(t, "tok", c.Address(model.ChannelPush))
	assert.Empty(t, c.Address(model.ChannelSMS))
	assert.Equal(t, userID, c.Address(model.ChannelInApp))
}

func TestContactClientNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`FROM "clients"`).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "phone", "push_token", "webhook_url"}))

	_, err := repo.Contact(context.Background(), model.ClientRecipient(userID))
	assert.ErrorIs(t, err, repository.ErrContactNotFound)
}
