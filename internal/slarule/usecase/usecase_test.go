package usecase

import (
	"context"
	"testing"
	"time"

	"sla-srv/internal/model"
	"sla-srv/internal/slarule"
	"sla-srv/internal/slarule/repository"
	pkgLog "sla-srv/pkg/log"
	"sla-srv/pkg/paginator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	tenantA = "11111111-1111-4111-8111-111111111111"
	tenantB = "22222222-2222-4222-8222-222222222222"
	typeNeg = "33333333-3333-4333-8333-333333333333"
	ruleID  = "44444444-4444-4444-8444-444444444444"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Get(ctx context.Context, opts repository.GetOptions) ([]model.SlaRule, paginator.Paginator, error) {
	args := m.Called(ctx, opts)
	return args.Get(0).([]model.SlaRule), args.Get(1).(paginator.Paginator), args.Error(2)
}

func (m *mockRepository) List(ctx context.Context, opts repository.ListOptions) ([]model.SlaRule, error) {
	args := m.Called(ctx, opts)
	return args.Get(0).([]model.SlaRule), args.Error(1)
}

func (m *mockRepository) Detail(ctx context.Context, id string) (model.SlaRule, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.SlaRule), args.Error(1)
}

func (m *mockRepository) Create(ctx context.Context, opts repository.CreateOptions) (model.SlaRule, error) {
	args := m.Called(ctx, opts)
	return args.Get(0).(model.SlaRule), args.Error(1)
}

func (m *mockRepository) Update(ctx context.Context, opts repository.UpdateOptions) (model.SlaRule, error) {
	args := m.Called(ctx, opts)
	return args.Get(0).(model.SlaRule), args.Error(1)
}

func (m *mockRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepository) Count(ctx context.Context, opts repository.CountOptions) (repository.Counts, error) {
	args := m.Called(ctx, opts)
	return args.Get(0).(repository.Counts), args.Error(1)
}

func newTestUsecase() (*usecase, *mockRepository) {
	repo := &mockRepository{}
	return &usecase{l: pkgLog.NewNop(), repo: repo}, repo
}

func validRuleInput(company string) slarule.RuleInput {
	return slarule.RuleInput{
		CompanyID:               company,
		Name:                    "Low ratings",
		FeedbackTypeID:          typeNeg,
		PriorityLevel:           3,
		FirstResponseMinutes:    60,
		ResolutionMinutes:       1440,
		EscalationLevel1Minutes: 120,
		EscalationLevel2Minutes: 360,
		EscalationLevel3Minutes: 720,
		NotificationChannels:    []model.Channel{model.ChannelEmail},
		IsActive:                true,
	}
}

var adminA = model.Scope{UserID: "u1", Role: model.RoleAdmin, CompanyID: tenantA}

func TestMatchUsesTenantAndGlobalCandidates(t *testing.T) {
	uc, repo := newTestUsecase()
	rating := 1
	fb := model.Feedback{
		ID:             "fb",
		CompanyID:      tenantA,
		FeedbackTypeID: typeNeg,
		Rating:         &rating,
		CreatedAt:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	active := true
	rule := model.SlaRule{
		ID: ruleID, CompanyID: model.GlobalCompanyID, FeedbackTypeID: typeNeg, IsActive: true,
		PriorityLevel: 2, EscalationLevel1Minutes: 30,
	}

	repo.On("List", mock.Anything, repository.ListOptions{Filter: repository.Filter{
		CompanyIDs:     []string{tenantA, model.GlobalCompanyID},
		FeedbackTypeID: typeNeg,
		IsActive:       &active,
	}}).Return([]model.SlaRule{rule}, nil)

	out, err := uc.Match(context.Background(), fb)
	require.NoError(t, err)
	assert.Equal(t, ruleID, out.Rule.ID)
	assert.Equal(t, fb.CreatedAt.Add(30*time.Minute), out.Deadlines.Escalation1)
	repo.AssertExpectations(t)
}

func TestMatchWithoutRule(t *testing.T) {
	uc, repo := newTestUsecase()
	repo.On("List", mock.Anything, mock.Anything).Return([]model.SlaRule{}, nil)

	_, err := uc.Match(context.Background(), model.Feedback{CompanyID: tenantA, FeedbackTypeID: typeNeg})
	assert.ErrorIs(t, err, slarule.ErrNoApplicableRule)
}

func TestCreate(t *testing.T) {
	t.Run("rejects invalid input without touching storage", func(t *testing.T) {
		uc, repo := newTestUsecase()
		ip := validRuleInput(tenantA)
		ip.EscalationLevel3Minutes = 10

		_, err := uc.Create(context.Background(), adminA, slarule.CreateInput{Rule: ip, Tenant: model.TenantFilterFor(adminA)})
		assert.Error(t, err)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects another tenant", func(t *testing.T) {
		uc, _ := newTestUsecase()
		_, err := uc.Create(context.Background(), adminA, slarule.CreateInput{
			Rule:   validRuleInput(tenantB),
			Tenant: model.TenantFilterFor(adminA),
		})
		assert.ErrorIs(t, err, slarule.ErrCompanyNotAllowed)
	})

	t.Run("stores the rule", func(t *testing.T) {
		uc, repo := newTestUsecase()
		repo.On("Create", mock.Anything, mock.MatchedBy(func(o repository.CreateOptions) bool {
			return o.Rule.CompanyID == tenantA && o.Rule.EscalationLevel2Minutes == 360
		})).Return(model.SlaRule{ID: ruleID, CompanyID: tenantA}, nil)

		rule, err := uc.Create(context.Background(), adminA, slarule.CreateInput{
			Rule:   validRuleInput(tenantA),
			Tenant: model.TenantFilterFor(adminA),
		})
		require.NoError(t, err)
		assert.Equal(t, ruleID, rule.ID)
	})
}

func TestDetailVisibility(t *testing.T) {
	uc, repo := newTestUsecase()
	repo.On("Detail", mock.Anything, "global").Return(model.SlaRule{ID: "global", CompanyID: model.GlobalCompanyID}, nil)
	repo.On("Detail", mock.Anything, "other").Return(model.SlaRule{ID: "other", CompanyID: tenantB}, nil)
	repo.On("Detail", mock.Anything, "missing").Return(model.SlaRule{}, repository.ErrNotFound)

	tenant := model.TenantFilterFor(adminA)

	_, err := uc.Detail(context.Background(), adminA, slarule.DetailInput{ID: "global", Tenant: tenant})
	assert.NoError(t, err)

	_, err = uc.Detail(context.Background(), adminA, slarule.DetailInput{ID: "other", Tenant: tenant})
	assert.ErrorIs(t, err, slarule.ErrRuleNotFound)

	_, err = uc.Detail(context.Background(), adminA, slarule.DetailInput{ID: "missing", Tenant: tenant})
	assert.ErrorIs(t, err, slarule.ErrRuleNotFound)
}

func TestUpdateAndDeleteGlobalRuleNeedSuperAdmin(t *testing.T) {
	uc, repo := newTestUsecase()
	repo.On("Detail", mock.Anything, ruleID).Return(model.SlaRule{ID: ruleID, CompanyID: model.GlobalCompanyID}, nil)

	tenant := model.TenantFilterFor(adminA)
	_, err := uc.Update(context.Background(), adminA, slarule.UpdateInput{ID: ruleID, Rule: validRuleInput(tenantA), Tenant: tenant})
	assert.ErrorIs(t, err, slarule.ErrGlobalRuleReadOnly)

	err = uc.Delete(context.Background(), adminA, slarule.DeleteInput{ID: ruleID, Tenant: tenant})
	assert.ErrorIs(t, err, slarule.ErrGlobalRuleReadOnly)

	super := model.Scope{UserID: "root", Role: model.RoleSuperAdmin}
	repo.On("Delete", mock.Anything, ruleID).Return(nil)
	assert.NoError(t, uc.Delete(context.Background(), super, slarule.DeleteInput{ID: ruleID, Tenant: model.TenantFilterFor(super)}))
}

func TestUpdateKeepsIdentity(t *testing.T) {
	uc, repo := newTestUsecase()
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.On("Detail", mock.Anything, ruleID).Return(model.SlaRule{ID: ruleID, CompanyID: tenantA, CreatedAt: created}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(o repository.UpdateOptions) bool {
		return o.Rule.ID == ruleID && o.Rule.CreatedAt.Equal(created) && o.Rule.Name == "Low ratings"
	})).Return(model.SlaRule{ID: ruleID, CompanyID: tenantA, Name: "Low ratings"}, nil)

	rule, err := uc.Update(context.Background(), adminA, slarule.UpdateInput{
		ID:     ruleID,
		Rule:   validRuleInput(tenantA),
		Tenant: model.TenantFilterFor(adminA),
	})
	require.NoError(t, err)
	assert.Equal(t, "Low ratings", rule.Name)
	repo.AssertExpectations(t)
}

func TestStats(t *testing.T) {
	uc, repo := newTestUsecase()
	repo.On("Count", mock.Anything, repository.CountOptions{Filter: repository.Filter{CompanyIDs: []string{tenantA}}}).
		Return(repository.Counts{Total: 4, Active: 3}, nil)

	st, err := uc.Stats(context.Background(), adminA, slarule.StatsInput{Tenant: model.TenantFilterFor(adminA)})
	require.NoError(t, err)
	assert.Equal(t, slarule.RuleStats{Total: 4, Active: 3}, st)
}
