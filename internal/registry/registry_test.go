package registry_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"obrapass/internal/compliance"
	"obrapass/internal/domain"
	"obrapass/internal/mapping"
	"obrapass/internal/registry"
	"obrapass/mocks"
)

func newRegistry() (*registry.Registry, *mocks.MockTemplateRepo, *mocks.MockRequirementRuleRepo) {
	tplRepo := new(mocks.MockTemplateRepo)
	ruleRepo := new(mocks.MockRequirementRuleRepo)
	return registry.New(tplRepo, ruleRepo), tplRepo, ruleRepo
}

func sampleTemplate(tenantID uuid.UUID, version int) *domain.MappingTemplate {
	return &domain.MappingTemplate{
		ID:       uuid.New(),
		TenantID: tenantID,
		Platform: domain.PlatformNalanda,
		Version:  version,
		Rules: domain.MappingRuleList{
			{From: "Company.cif", To: "company.taxId", Transform: "upper"},
		},
	}
}

func TestRegistry_LatestTemplate_Compiles(t *testing.T) {
	reg, tplRepo, _ := newRegistry()
	tenantID := uuid.New()

	tplRepo.On("GetLatest", mock.Anything, tenantID, domain.PlatformNalanda).
		Return(sampleTemplate(tenantID, 3), nil)

	ct, err := reg.LatestTemplate(context.Background(), tenantID, domain.PlatformNalanda)

	require.NoError(t, err)
	assert.Equal(t, 3, ct.Version)
	assert.Equal(t, 1, ct.RuleCount())
}

func TestRegistry_TemplateVersion_Cached(t *testing.T) {
	reg, tplRepo, _ := newRegistry()
	tenantID := uuid.New()

	tplRepo.On("GetVersion", mock.Anything, tenantID, domain.PlatformNalanda, 2).
		Return(sampleTemplate(tenantID, 2), nil).Once()

	first, err := reg.TemplateVersion(context.Background(), tenantID, domain.PlatformNalanda, 2)
	require.NoError(t, err)

	// Second resolution of the same version must hit the cache, not the repo.
	second, err := reg.TemplateVersion(context.Background(), tenantID, domain.PlatformNalanda, 2)
	require.NoError(t, err)

	assert.Same(t, first, second)
	tplRepo.AssertExpectations(t)
}

func TestRegistry_LatestThenVersion_SharesCache(t *testing.T) {
	reg, tplRepo, _ := newRegistry()
	tenantID := uuid.New()

	tplRepo.On("GetLatest", mock.Anything, tenantID, domain.PlatformNalanda).
		Return(sampleTemplate(tenantID, 5), nil).Once()

	latest, err := reg.LatestTemplate(context.Background(), tenantID, domain.PlatformNalanda)
	require.NoError(t, err)

	// The version resolved via GetLatest is cached under its number.
	byVersion, err := reg.TemplateVersion(context.Background(), tenantID, domain.PlatformNalanda, 5)
	require.NoError(t, err)

	assert.Same(t, latest, byVersion)
	tplRepo.AssertExpectations(t)
}

func TestRegistry_Template_NotFound(t *testing.T) {
	reg, tplRepo, _ := newRegistry()
	tenantID := uuid.New()

	tplRepo.On("GetLatest", mock.Anything, tenantID, domain.PlatformCTAIMA).
		Return(nil, domain.ErrTemplateNotFound)

	_, err := reg.LatestTemplate(context.Background(), tenantID, domain.PlatformCTAIMA)
	assert.ErrorIs(t, err, domain.ErrTemplateNotFound)
}

func TestRegistry_Template_CompileError(t *testing.T) {
	reg, tplRepo, _ := newRegistry()
	tenantID := uuid.New()

	bad := sampleTemplate(tenantID, 1)
	bad.Rules = domain.MappingRuleList{{From: "Company.cif", To: "workers[*].taxId"}}
	tplRepo.On("GetLatest", mock.Anything, tenantID, domain.PlatformNalanda).Return(bad, nil)

	_, err := reg.LatestTemplate(context.Background(), tenantID, domain.PlatformNalanda)
	require.Error(t, err)

	var cfgErr *mapping.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestRegistry_RuleSet_Cached(t *testing.T) {
	reg, _, ruleRepo := newRegistry()
	tenantID := uuid.New()

	rules := []domain.RequirementRule{{
		ID:          uuid.New(),
		TenantID:    tenantID,
		Platform:    domain.PlatformNalanda,
		AppliesTo:   domain.EntityWorker,
		RiskProfile: domain.RiskHigh,
		Category:    "formacion_prl",
		Mandatory:   true,
	}}
	ruleRepo.On("ListByPlatform", mock.Anything, tenantID, domain.PlatformNalanda).
		Return(rules, nil).Once()

	first, err := reg.RuleSet(context.Background(), tenantID, domain.PlatformNalanda)
	require.NoError(t, err)
	assert.Equal(t, 1, first.RuleCount())

	second, err := reg.RuleSet(context.Background(), tenantID, domain.PlatformNalanda)
	require.NoError(t, err)

	assert.Same(t, first, second)
	ruleRepo.AssertExpectations(t)
}

func TestRegistry_RuleSet_InvalidateReloads(t *testing.T) {
	reg, _, ruleRepo := newRegistry()
	tenantID := uuid.New()

	ruleRepo.On("ListByPlatform", mock.Anything, tenantID, domain.PlatformNalanda).
		Return([]domain.RequirementRule{}, nil).Twice()

	_, err := reg.RuleSet(context.Background(), tenantID, domain.PlatformNalanda)
	require.NoError(t, err)

	reg.InvalidateRules(tenantID, domain.PlatformNalanda)

	_, err = reg.RuleSet(context.Background(), tenantID, domain.PlatformNalanda)
	require.NoError(t, err)
	ruleRepo.AssertExpectations(t)
}

func TestRegistry_RuleSet_TenantIsolation(t *testing.T) {
	reg, _, ruleRepo := newRegistry()
	tenantA := uuid.New()
	tenantB := uuid.New()

	ruleRepo.On("ListByPlatform", mock.Anything, tenantA, domain.PlatformNalanda).
		Return([]domain.RequirementRule{{ID: uuid.New()}}, nil).Once()
	ruleRepo.On("ListByPlatform", mock.Anything, tenantB, domain.PlatformNalanda).
		Return([]domain.RequirementRule{}, nil).Once()

	rsA, err := reg.RuleSet(context.Background(), tenantA, domain.PlatformNalanda)
	require.NoError(t, err)
	rsB, err := reg.RuleSet(context.Background(), tenantB, domain.PlatformNalanda)
	require.NoError(t, err)

	assert.Equal(t, 1, rsA.RuleCount())
	assert.Equal(t, 0, rsB.RuleCount())
	ruleRepo.AssertExpectations(t)
}

func TestRegistry_RuleSet_CompileError(t *testing.T) {
	reg, _, ruleRepo := newRegistry()
	tenantID := uuid.New()

	bad := []domain.RequirementRule{{
		ID: uuid.New(),
		Predicates: domain.PredicateList{
			{Must: []domain.Assertion{{Field: "horas", Op: "between", Value: json.RawMessage(`10`)}}},
		},
	}}
	ruleRepo.On("ListByPlatform", mock.Anything, tenantID, domain.PlatformNalanda).Return(bad, nil)

	_, err := reg.RuleSet(context.Background(), tenantID, domain.PlatformNalanda)
	require.Error(t, err)

	var cfgErr *compliance.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}
