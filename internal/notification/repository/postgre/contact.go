package postgres

import (
	"context"
	"fmt"

	"sla-srv/internal/model"
	"sla-srv/internal/notification/repository"
	postgresPkg "sla-srv/pkg/postgre"

	"github.com/aarondl/null/v8"
	"github.com/aarondl/sqlboiler/v4/queries/qm"
	"github.com/friendsofgo/errors"
)

type contactRow struct {
	ID         string      `boil:"id"`
	Name       null.String `boil:"name"`
	Email      null.String `boil:"email"`
	Phone      null.String `boil:"phone"`
	PushToken  null.String `boil:"push_token"`
	WebhookURL null.String `boil:"webhook_url"`
}

func (r *implRepository) Contact(ctx context.Context, rcpt model.Recipient) (model.Contact, error) {
	src, ok := contactTables[rcpt.Kind]
	if !ok {
		return model.Contact{}, fmt.Errorf("unknown recipient kind %q", rcpt.Kind)
	}
	if err := postgresPkg.IsUUID(rcpt.ID); err != nil {
		r.l.Errorf(ctx, "internal.notification.repository.postgres.Contact.IsUUID: %v", err)
		return model.Contact{}, err
	}

	var rows []contactRow
	err := postgresPkg.NewQuery(
		qm.Select("id", src.name+" AS name", "email", "phone", "push_token", "webhook_url"),
		qm.From(src.table),
		qm.Where("id = ?", rcpt.ID),
		qm.Where("deleted_at IS NULL"),
		qm.Limit(1),
	).Bind(ctx, r.db, &rows)
	if err != nil {
		r.l.Errorf(ctx, "internal.notification.repository.postgres.Contact.Bind: %v", err)
		return model.Contact{}, errors.Wrap(err, "contact detail")
	}
	if len(rows) == 0 {
		return model.Contact{}, repository.ErrContactNotFound
	}

	row := rows[0]
	return model.Contact{
		Recipient:  rcpt,
		Name:       row.Name.String,
		Email:      row.Email.String,
		Phone:      row.Phone.String,
		PushToken:  row.PushToken.String,
		WebhookURL: row.WebhookURL.String,
	}, nil
}
