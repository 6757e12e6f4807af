package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"obrapass/internal/compliance"
	"obrapass/internal/domain"
	"obrapass/internal/registry"
	"obrapass/internal/service"
	"obrapass/mocks"
)

type complianceServiceMocks struct {
	ruleRepo  *mocks.MockRequirementRuleRepo
	sites     *mocks.MockSiteRepo
	companies *mocks.MockCompanyRepo
	workers   *mocks.MockWorkerRepo
	machines  *mocks.MockMachineRepo
	docs      *mocks.MockDocumentRepo
}

func newComplianceService(now time.Time) (service.ComplianceService, *complianceServiceMocks) {
	m := &complianceServiceMocks{
		ruleRepo:  new(mocks.MockRequirementRuleRepo),
		sites:     new(mocks.MockSiteRepo),
		companies: new(mocks.MockCompanyRepo),
		workers:   new(mocks.MockWorkerRepo),
		machines:  new(mocks.MockMachineRepo),
		docs:      new(mocks.MockDocumentRepo),
	}
	reg := registry.New(new(mocks.MockTemplateRepo), m.ruleRepo)
	engine := compliance.NewEngineWithClock(func() time.Time { return now })
	svc := service.NewComplianceService(reg, engine, m.sites, m.companies, m.workers, m.machines, m.docs)
	return svc, m
}

var evalNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func aptoMedicoRule(tenantID uuid.UUID) domain.RequirementRule {
	return domain.RequirementRule{
		ID:          uuid.New(),
		TenantID:    tenantID,
		Platform:    domain.PlatformNalanda,
		AppliesTo:   domain.EntityWorker,
		RiskProfile: domain.RiskHigh,
		Category:    "apto_medico",
		Mandatory:   true,
		Predicates: domain.PredicateList{
			{Must: []domain.Assertion{{Field: "fecha_caducidad", Op: ">", Value: "today"}}},
		},
		IsActive: true,
	}
}

func TestComplianceService_EvaluateEntity_UnknownPlatform(t *testing.T) {
	svc, m := newComplianceService(evalNow)

	result, err := svc.EvaluateEntity(context.Background(), uuid.New(), domain.Platform("sap"),
		domain.EntityWorker, uuid.New(), domain.RiskHigh)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrUnknownPlatform)
	m.docs.AssertNotCalled(t, "ListByEntity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestComplianceService_EvaluateEntity_MissingMandatoryDoc(t *testing.T) {
	svc, m := newComplianceService(evalNow)

	tenantID := uuid.New()
	workerID := uuid.New()
	m.ruleRepo.On("ListByPlatform", mock.Anything, tenantID, domain.PlatformNalanda).
		Return([]domain.RequirementRule{aptoMedicoRule(tenantID)}, nil)
	m.docs.On("ListByEntity", mock.Anything, tenantID, domain.EntityWorker, workerID).
		Return([]domain.ComplianceDocument{}, nil)

	result, err := svc.EvaluateEntity(context.Background(), tenantID, domain.PlatformNalanda,
		domain.EntityWorker, workerID, domain.RiskHigh)

	require.NoError(t, err)
	assert.False(t, result.Compliant)
	require.Len(t, result.Results, 1)
	assert.Contains(t, result.Results[0].Reasons[0], "apto_medico")
}

func TestComplianceService_EvaluateEntity_ValidDocument(t *testing.T) {
	svc, m := newComplianceService(evalNow)

	tenantID := uuid.New()
	workerID := uuid.New()
	expires := evalNow.AddDate(1, 0, 0)
	m.ruleRepo.On("ListByPlatform", mock.Anything, tenantID, domain.PlatformNalanda).
		Return([]domain.RequirementRule{aptoMedicoRule(tenantID)}, nil)
	m.docs.On("ListByEntity", mock.Anything, tenantID, domain.EntityWorker, workerID).
		Return([]domain.ComplianceDocument{{
			ID:        uuid.New(),
			Category:  "apto_medico",
			Status:    domain.ClassificationClassified,
			ExpiresAt: &expires,
		}}, nil)

	result, err := svc.EvaluateEntity(context.Background(), tenantID, domain.PlatformNalanda,
		domain.EntityWorker, workerID, domain.RiskHigh)

	require.NoError(t, err)
	assert.True(t, result.Compliant)
}

func TestComplianceService_EvaluateEntity_UnclassifiedDocSkipped(t *testing.T) {
	svc, m := newComplianceService(evalNow)

	tenantID := uuid.New()
	workerID := uuid.New()
	m.ruleRepo.On("ListByPlatform", mock.Anything, tenantID, domain.PlatformNalanda).
		Return([]domain.RequirementRule{aptoMedicoRule(tenantID)}, nil)
	// Pending classification: no category yet, so the mandatory category is
	// still unmet.
	m.docs.On("ListByEntity", mock.Anything, tenantID, domain.EntityWorker, workerID).
		Return([]domain.ComplianceDocument{{
			ID:     uuid.New(),
			Status: domain.ClassificationPending,
		}}, nil)

	result, err := svc.EvaluateEntity(context.Background(), tenantID, domain.PlatformNalanda,
		domain.EntityWorker, workerID, domain.RiskHigh)

	require.NoError(t, err)
	assert.False(t, result.Compliant)
}

func TestComplianceService_EvaluateSite_MissingCompanyIsVerdict(t *testing.T) {
	svc, m := newComplianceService(evalNow)

	tenantID := uuid.New()
	siteID := uuid.New()
	companyID := uuid.New()

	m.sites.On("GetByID", mock.Anything, tenantID, siteID).Return(&domain.Site{
		ID:          siteID,
		CompanyID:   companyID,
		Name:        "Obra Torre Este",
		RiskProfile: domain.RiskHigh,
	}, nil)
	m.ruleRepo.On("ListByPlatform", mock.Anything, tenantID, domain.PlatformNalanda).
		Return([]domain.RequirementRule{}, nil)
	m.companies.On("GetByID", mock.Anything, tenantID, companyID).
		Return(nil, domain.ErrCompanyNotFound)
	m.docs.On("ListByEntity", mock.Anything, tenantID, domain.EntitySite, siteID).
		Return([]domain.ComplianceDocument{}, nil)
	m.workers.On("ListBySite", mock.Anything, tenantID, siteID).Return([]domain.Worker{}, nil)
	m.machines.On("ListBySite", mock.Anything, tenantID, siteID).Return([]domain.Machine{}, nil)

	report, err := svc.EvaluateSite(context.Background(), tenantID, domain.PlatformNalanda, siteID)

	require.NoError(t, err)
	assert.False(t, report.Compliant)
	require.NotEmpty(t, report.Entities)
	companyVerdict := report.Entities[0]
	assert.Equal(t, domain.EntityCompany, companyVerdict.EntityType)
	assert.Equal(t, companyID, companyVerdict.EntityID)
	require.NotEmpty(t, companyVerdict.Result.Results)
	assert.Contains(t, companyVerdict.Result.Results[0].Reasons[0], "not found")
}

func TestComplianceService_EvaluateSite_AggregatesAllEntities(t *testing.T) {
	svc, m := newComplianceService(evalNow)

	tenantID := uuid.New()
	siteID := uuid.New()
	companyID := uuid.New()
	workerID := uuid.New()
	machineID := uuid.New()

	m.sites.On("GetByID", mock.Anything, tenantID, siteID).Return(&domain.Site{
		ID:          siteID,
		CompanyID:   companyID,
		Name:        "Obra Torre Este",
		RiskProfile: domain.RiskHigh,
	}, nil)
	m.ruleRepo.On("ListByPlatform", mock.Anything, tenantID, domain.PlatformNalanda).
		Return([]domain.RequirementRule{aptoMedicoRule(tenantID)}, nil)
	m.companies.On("GetByID", mock.Anything, tenantID, companyID).
		Return(&domain.Company{ID: companyID, Name: "Encofrados Levante SL"}, nil)
	m.workers.On("ListBySite", mock.Anything, tenantID, siteID).Return([]domain.Worker{
		{ID: workerID, FirstName: "Ana", LastName: "Garcia"},
	}, nil)
	m.machines.On("ListBySite", mock.Anything, tenantID, siteID).Return([]domain.Machine{
		{ID: machineID, SerialNumber: "GT-2020-0451"},
	}, nil)

	// No documents anywhere, so the worker fails its mandatory category.
	m.docs.On("ListByEntity", mock.Anything, tenantID, mock.AnythingOfType("domain.EntityType"), mock.AnythingOfType("uuid.UUID")).
		Return([]domain.ComplianceDocument{}, nil)

	report, err := svc.EvaluateSite(context.Background(), tenantID, domain.PlatformNalanda, siteID)

	require.NoError(t, err)
	assert.False(t, report.Compliant)
	require.Len(t, report.Entities, 4)
	assert.Equal(t, domain.EntityCompany, report.Entities[0].EntityType)
	assert.Equal(t, domain.EntitySite, report.Entities[1].EntityType)
	assert.Equal(t, "Ana Garcia", report.Entities[2].Name)
	assert.Equal(t, "GT-2020-0451", report.Entities[3].Name)

	// Only the worker matches the rule's scope.
	assert.True(t, report.Entities[0].Result.Compliant)
	assert.True(t, report.Entities[3].Result.Compliant)
	assert.False(t, report.Entities[2].Result.Compliant)
}

func TestComplianceService_EvaluateSite_SiteNotFound(t *testing.T) {
	svc, m := newComplianceService(evalNow)

	tenantID := uuid.New()
	siteID := uuid.New()
	m.sites.On("GetByID", mock.Anything, tenantID, siteID).Return(nil, domain.ErrSiteNotFound)

	report, err := svc.EvaluateSite(context.Background(), tenantID, domain.PlatformNalanda, siteID)

	assert.Nil(t, report)
	assert.ErrorIs(t, err, domain.ErrSiteNotFound)
}
