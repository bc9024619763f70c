package postgres

import (
	"context"

	"sla-srv/internal/model"
	"sla-srv/internal/notification/repository"
	postgresPkg "sla-srv/pkg/postgre"

	"github.com/aarondl/null/v8"
	"github.com/aarondl/sqlboiler/v4/queries/qm"
	"github.com/friendsofgo/errors"
)

type templateRow struct {
	ID        string      `boil:"id"`
	CompanyID string      `boil:"company_id"`
	Type      string      `boil:"type"`
	Channel   string      `boil:"channel"`
	Subject   null.String `boil:"subject"`
	Title     null.String `boil:"title"`
	Message   null.String `boil:"message"`
	IsDefault bool        `boil:"is_default"`
	IsActive  bool        `boil:"is_active"`
}

func (row templateRow) toModel() model.NotificationTemplate {
	return model.NotificationTemplate{
		ID:        row.ID,
		CompanyID: row.CompanyID,
		Type:      row.Type,
		Channel:   model.Channel(row.Channel),
		Subject:   row.Subject.String,
		Title:     row.Title.String,
		Message:   row.Message.String,
		IsDefault: row.IsDefault,
		IsActive:  row.IsActive,
	}
}

func (r *implRepository) ListCandidates(ctx context.Context, opts repository.TemplateOptions) ([]model.NotificationTemplate, error) {
	companies := []interface{}{model.GlobalCompanyID}
	if opts.CompanyID != "" && !model.IsGlobalCompany(opts.CompanyID) {
		if err := postgresPkg.IsUUID(opts.CompanyID); err != nil {
			r.l.Errorf(ctx, "internal.notification.repository.postgres.ListCandidates.IsUUID: %v", err)
			return nil, err
		}
		companies = append(companies, opts.CompanyID)
	}

	var rows []templateRow
	err := postgresPkg.NewQuery(
		qm.Select(templateColumns...),
		qm.From(tableTemplates),
		qm.Where("type = ?", opts.Type),
		qm.Where("channel = ?", string(opts.Channel)),
		qm.Where("is_active = ?", true),
		qm.WhereIn("company_id IN ?", companies...),
		qm.OrderBy("is_default DESC, id ASC"),
	).Bind(ctx, r.db, &rows)
	if err != nil {
		r.l.Errorf(ctx, "internal.notification.repository.postgres.ListCandidates.Bind: %v", err)
		return nil, errors.Wrap(err, "list notification templates")
	}

	res := make([]model.NotificationTemplate, len(rows))
	for i, row := range rows {
		res[i] = row.toModel()
	}
	return res, nil
}
