package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"sla-srv/internal/model"
	"sla-srv/internal/slarule/repository"
	"sla-srv/pkg/paginator"
	postgresPkg "sla-srv/pkg/postgre"

	"github.com/aarondl/null/v8"
	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/aarondl/sqlboiler/v4/types"
	"github.com/friendsofgo/errors"
)

type slaRuleRow struct {
	ID                      string            `boil:"id"`
	CompanyID               string            `boil:"company_id"`
	Name                    string            `boil:"name"`
	Description             null.String       `boil:"description"`
	FeedbackTypeID          string            `boil:"feedback_type_id"`
	Conditions              types.JSON        `boil:"conditions"`
	PriorityLevel           int               `boil:"priority_level"`
	SortOrder               int               `boil:"sort_order"`
	FirstResponseMinutes    int               `boil:"first_response_minutes"`
	ResolutionMinutes       int               `boil:"resolution_minutes"`
	EscalationLevel1Minutes int               `boil:"escalation_level_1_minutes"`
	EscalationLevel2Minutes int               `boil:"escalation_level_2_minutes"`
	EscalationLevel3Minutes int               `boil:"escalation_level_3_minutes"`
	Level1Recipients        types.StringArray `boil:"level_1_recipients"`
	Level2Recipients        types.StringArray `boil:"level_2_recipients"`
	Level3Recipients        types.StringArray `boil:"level_3_recipients"`
	NotificationChannels    types.StringArray `boil:"notification_channels"`
	IsActive                bool              `boil:"is_active"`
	CreatedAt               time.Time         `boil:"created_at"`
	UpdatedAt               time.Time         `boil:"updated_at"`
}

func newSlaRuleRow(r model.SlaRule) (slaRuleRow, error) {
	conds := r.Conditions
	if conds == nil {
		conds = model.RuleConditions{}
	}
	raw, err := json.Marshal(conds)
	if err != nil {
		return slaRuleRow{}, err
	}

	channels := make(types.StringArray, len(r.NotificationChannels))
	for i, ch := range r.NotificationChannels {
		channels[i] = string(ch)
	}

	return slaRuleRow{
		ID:                      r.ID,
		CompanyID:               r.CompanyID,
		Name:                    r.Name,
		Description:             null.StringFromPtr(r.Description),
		FeedbackTypeID:          r.FeedbackTypeID,
		Conditions:              types.JSON(raw),
		PriorityLevel:           r.PriorityLevel,
		SortOrder:               r.SortOrder,
		FirstResponseMinutes:    r.FirstResponseMinutes,
		ResolutionMinutes:       r.ResolutionMinutes,
		EscalationLevel1Minutes: r.EscalationLevel1Minutes,
		EscalationLevel2Minutes: r.EscalationLevel2Minutes,
		EscalationLevel3Minutes: r.EscalationLevel3Minutes,
		Level1Recipients:        nonNil(r.Level1Recipients),
		Level2Recipients:        nonNil(r.Level2Recipients),
		Level3Recipients:        nonNil(r.Level3Recipients),
		NotificationChannels:    channels,
		IsActive:                r.IsActive,
		CreatedAt:               r.CreatedAt,
		UpdatedAt:               r.UpdatedAt,
	}, nil
}

func (row slaRuleRow) toModel() model.SlaRule {
	rule := model.SlaRule{
		ID:                      row.ID,
		CompanyID:               row.CompanyID,
		Name:                    row.Name,
		Description:             row.Description.Ptr(),
		FeedbackTypeID:          row.FeedbackTypeID,
		PriorityLevel:           row.PriorityLevel,
		SortOrder:               row.SortOrder,
		FirstResponseMinutes:    row.FirstResponseMinutes,
		ResolutionMinutes:       row.ResolutionMinutes,
		EscalationLevel1Minutes: row.EscalationLevel1Minutes,
		EscalationLevel2Minutes: row.EscalationLevel2Minutes,
		EscalationLevel3Minutes: row.EscalationLevel3Minutes,
		Level1Recipients:        []string(row.Level1Recipients),
		Level2Recipients:        []string(row.Level2Recipients),
		Level3Recipients:        []string(row.Level3Recipients),
		IsActive:                row.IsActive,
		CreatedAt:               row.CreatedAt,
		UpdatedAt:               row.UpdatedAt,
	}
	for _, ch := range row.NotificationChannels {
		rule.NotificationChannels = append(rule.NotificationChannels, model.Channel(ch))
	}
	// A row with unreadable conditions keeps a non-matchable marker so the
	// matcher skips it instead of treating it as unconditional.
	if len(row.Conditions) > 0 {
		var conds model.RuleConditions
		if err := json.Unmarshal(row.Conditions, &conds); err != nil {
			conds = model.RuleConditions{"_invalid": string(row.Conditions)}
		}
		rule.Conditions = conds
	}
	return rule
}

func (row slaRuleRow) writableArgs() []interface{} {
	return []interface{}{
		row.CompanyID, row.Name, row.Description, row.FeedbackTypeID, row.Conditions,
		row.PriorityLevel, row.SortOrder, row.FirstResponseMinutes, row.ResolutionMinutes,
		row.EscalationLevel1Minutes, row.EscalationLevel2Minutes, row.EscalationLevel3Minutes,
		row.Level1Recipients, row.Level2Recipients, row.Level3Recipients,
		row.NotificationChannels, row.IsActive, row.UpdatedAt,
	}
}

func nonNil(s []string) types.StringArray {
	if s == nil {
		return types.StringArray{}
	}
	return types.StringArray(s)
}

func toModels(rows []slaRuleRow) []model.SlaRule {
	res := make([]model.SlaRule, len(rows))
	for i, row := range rows {
		res[i] = row.toModel()
	}
	return res
}

func (r *implRepository) Detail(ctx context.Context, id string) (model.SlaRule, error) {
	mods, err := r.buildDetailQuery(ctx, id)
	if err != nil {
		r.l.Errorf(ctx, "internal.slarule.repository.postgres.Detail.buildDetailQuery: %v", err)
		return model.SlaRule{}, err
	}

	var rows []slaRuleRow
	if err := postgresPkg.NewQuery(mods...).Bind(ctx, r.db, &rows); err != nil {
		r.l.Errorf(ctx, "internal.slarule.repository.postgres.Detail.Bind: %v", err)
		return model.SlaRule{}, errors.Wrap(err, "sla rule detail")
	}
	if len(rows) == 0 {
		return model.SlaRule{}, repository.ErrNotFound
	}

	return rows[0].toModel(), nil
}

func (r *implRepository) List(ctx context.Context, opts repository.ListOptions) ([]model.SlaRule, error) {
	mods, err := r.buildListQuery(ctx, opts)
	if err != nil {
		r.l.Errorf(ctx, "internal.slarule.repository.postgres.List.buildListQuery: %v", err)
		return nil, err
	}

	var rows []slaRuleRow
	if err := postgresPkg.NewQuery(mods...).Bind(ctx, r.db, &rows); err != nil {
		r.l.Errorf(ctx, "internal.slarule.repository.postgres.List.Bind: %v", err)
		return nil, errors.Wrap(err, "list sla rules")
	}

	return toModels(rows), nil
}

func (r *implRepository) Get(ctx context.Context, opts repository.GetOptions) ([]model.SlaRule, paginator.Paginator, error) {
	mods, err := r.buildGetQuery(ctx, opts, opts.PaginateQuery)
	if err != nil {
		r.l.Errorf(ctx, "internal.slarule.repository.postgres.Get.buildGetQuery: %v", err)
		return nil, paginator.Paginator{}, err
	}

	var rows []slaRuleRow
	if err := postgresPkg.NewQuery(mods...).Bind(ctx, r.db, &rows); err != nil {
		r.l.Errorf(ctx, "internal.slarule.repository.postgres.Get.Bind: %v", err)
		return nil, paginator.Paginator{}, errors.Wrap(err, "get sla rules")
	}

	cntMods, err := r.buildFilterQuery(ctx, opts.Filter)
	if err != nil {
		return nil, paginator.Paginator{}, err
	}
	cntQuery := postgresPkg.NewQuery(cntMods...)
	queries.SetCount(cntQuery)

	var total int64
	if err := cntQuery.QueryRowContext(ctx, r.db).Scan(&total); err != nil {
		r.l.Errorf(ctx, "internal.slarule.repository.postgres.Get.Count: %v", err)
		return nil, paginator.Paginator{}, errors.Wrap(err, "count sla rules")
	}

	return toModels(rows), opts.PaginateQuery.Result(total, len(rows)), nil
}

func (r *implRepository) Create(ctx context.Context, opts repository.CreateOptions) (model.SlaRule, error) {
	rule := opts.Rule
	if rule.ID == "" {
		rule.ID = postgresPkg.NewUUID()
	} else if err := postgresPkg.IsUUID(rule.ID); err != nil {
		r.l.Errorf(ctx, "internal.slarule.repository.postgres.Create.IsUUID: %v", err)
		return model.SlaRule{}, err
	}
	now := r.clock()
	rule.CreatedAt, rule.UpdatedAt = now, now

	row, err := newSlaRuleRow(rule)
	if err != nil {
		r.l.Errorf(ctx, "internal.slarule.repository.postgres.Create.newSlaRuleRow: %v", err)
		return model.SlaRule{}, err
	}

	cols := append([]string{"id", "created_at"}, writableColumns...)
	args := append([]interface{}{row.ID, row.CreatedAt}, row.writableArgs()...)
	sql := postgresPkg.InsertSQL(tableSlaRules, cols, postgresPkg.ReturningSQL(ruleColumns))

	var rows []slaRuleRow
	if err := queries.Raw(sql, args...).Bind(ctx, r.db, &rows); err != nil {
		r.l.Errorf(ctx, "internal.slarule.repository.postgres.Create.Insert: %v", err)
		return model.SlaRule{}, errors.Wrap(err, "insert sla rule")
	}
	if len(rows) == 0 {
		return model.SlaRule{}, fmt.Errorf("insert sla rule: no row returned")
	}

	return rows[0].toModel(), nil
}

func (r *implRepository) Update(ctx context.Context, opts repository.UpdateOptions) (model.SlaRule, error) {
	rule := opts.Rule
	if err := postgresPkg.IsUUID(rule.ID); err != nil {
		r.l.Errorf(ctx, "internal.slarule.repository.postgres.Update.IsUUID: %v", err)
		return model.SlaRule{}, err
	}
	rule.UpdatedAt = r.clock()

	row, err := newSlaRuleRow(rule)
	if err != nil {
		r.l.Errorf(ctx, "internal.slarule.repository.postgres.Update.newSlaRuleRow: %v", err)
		return model.SlaRule{}, err
	}

	args := append(row.writableArgs(), row.ID)
	sql := fmt.Sprintf(`UPDATE "%s" SET %s WHERE "id" = $%d AND "deleted_at" IS NULL %s`,
		tableSlaRules,
		postgresPkg.SetSQL(writableColumns, 1),
		len(writableColumns)+1,
		postgresPkg.ReturningSQL(ruleColumns),
	)

	var rows []slaRuleRow
	if err := queries.Raw(sql, args...).Bind(ctx, r.db, &rows); err != nil {
		r.l.Errorf(ctx, "internal.slarule.repository.postgres.Update.Update: %v", err)
		return model.SlaRule{}, errors.Wrap(err, "update sla rule")
	}
	if len(rows) == 0 {
		return model.SlaRule{}, repository.ErrNotFound
	}

	return rows[0].toModel(), nil
}

// Delete soft-deletes a rule; escalations keep referencing it.
func (r *implRepository) Delete(ctx context.Context, id string) error {
	if err := postgresPkg.IsUUID(id); err != nil {
		r.l.Errorf(ctx, "internal.slarule.repository.postgres.Delete.IsUUID: %v", err)
		return err
	}

	now := r.clock()
	res, err := queries.Raw(
		`UPDATE "sla_rules" SET "deleted_at" = $1, "is_active" = false, "updated_at" = $1 WHERE "id" = $2 AND "deleted_at" IS NULL`,
		now, id,
	).ExecContext(ctx, r.db)
	if err != nil {
		r.l.Errorf(ctx, "internal.slarule.repository.postgres.Delete.Exec: %v", err)
		return errors.Wrap(err, "delete sla rule")
	}

	n, err := res.RowsAffected()
	if err != nil {
		r.l.Errorf(ctx, "internal.slarule.repository.postgres.Delete.RowsAffected: %v", err)
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

type countRow struct {
	Total  int64 `boil:"total"`
	Active int64 `boil:"active"`
}

func (r *implRepository) Count(ctx context.Context, opts repository.CountOptions) (repository.Counts, error) {
	mods, err := r.buildFilterQuery(ctx, opts.Filter)
	if err != nil {
		r.l.Errorf(ctx, "internal.slarule.repository.postgres.Count.buildFilterQuery: %v", err)
		return repository.Counts{}, err
	}

	mods = append(mods, qmSelectCounts)
	var rows []countRow
	if err := postgresPkg.NewQuery(mods...).Bind(ctx, r.db, &rows); err != nil {
		r.l.Errorf(ctx, "internal.slarule.repository.postgres.Count.Bind: %v", err)
		return repository.Counts{}, errors.Wrap(err, "count sla rules")
	}
	if len(rows) == 0 {
		return repository.Counts{}, nil
	}

	return repository.Counts{Total: rows[0].Total, Active: rows[0].Active}, nil
}
