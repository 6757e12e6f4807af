package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"obrapass/internal/domain"
	"obrapass/internal/mapping"
	"obrapass/internal/service"
	"obrapass/mocks"
)

func newTemplateService() (service.TemplateService, *mocks.MockTemplateRepo) {
	repo := new(mocks.MockTemplateRepo)
	return service.NewTemplateService(repo), repo
}

func TestTemplateService_Create_Success(t *testing.T) {
	svc, repo := newTemplateService()

	tenantID := uuid.New()
	createdBy := uuid.New()
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.MappingTemplate")).Return(nil)

	tpl, err := svc.Create(context.Background(), tenantID, createdBy, service.CreateTemplateInput{
		Platform:     domain.PlatformNalanda,
		TargetSchema: json.RawMessage(`{"type":"object","properties":{"company":{"type":"object","properties":{"taxId":{"type":"string"}},"required":["taxId"]}}}`),
		Rules: []domain.MappingRule{
			{From: "Company.cif", To: "company.taxId"},
			{From: "Worker[*].dni", To: "workers[*].idNumber", Transform: "upper"},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, tenantID, tpl.TenantID)
	assert.Equal(t, domain.PlatformNalanda, tpl.Platform)
	assert.Equal(t, createdBy, tpl.CreatedBy)
	repo.AssertExpectations(t)
}

func TestTemplateService_Create_UnknownPlatform(t *testing.T) {
	svc, repo := newTemplateService()

	tpl, err := svc.Create(context.Background(), uuid.New(), uuid.New(), service.CreateTemplateInput{
		Platform: domain.Platform("sap"),
		Rules:    []domain.MappingRule{{From: "Company.cif", To: "company.taxId"}},
	})

	assert.Nil(t, tpl)
	assert.ErrorIs(t, err, domain.ErrUnknownPlatform)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTemplateService_Create_MalformedRuleRejected(t *testing.T) {
	svc, repo := newTemplateService()

	tpl, err := svc.Create(context.Background(), uuid.New(), uuid.New(), service.CreateTemplateInput{
		Platform: domain.PlatformNalanda,
		Rules:    []domain.MappingRule{{From: "Company..cif", To: "company.taxId"}},
	})

	assert.Nil(t, tpl)
	var cfgErr *mapping.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, 0, cfgErr.RuleIndex)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTemplateService_Create_CardinalityMismatchRejected(t *testing.T) {
	svc, repo := newTemplateService()

	_, err := svc.Create(context.Background(), uuid.New(), uuid.New(), service.CreateTemplateInput{
		Platform: domain.PlatformCTAIMA,
		Rules:    []domain.MappingRule{{From: "Worker[*].dni", To: "company.taxId"}},
	})

	var cfgErr *mapping.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTemplateService_DryRun_TransformsSampleGraph(t *testing.T) {
	svc, repo := newTemplateService()

	result, err := svc.DryRun(context.Background(), uuid.New(), service.DryRunTemplateInput{
		Platform:     domain.PlatformNalanda,
		TargetSchema: json.RawMessage(`{"type":"object","properties":{"company":{"type":"object","properties":{"taxId":{"type":"string"}},"required":["taxId"]}}}`),
		Rules: []domain.MappingRule{
			{From: "Company.cif", To: "company.taxId", Transform: "upper"},
			{From: "Worker[*].dni", To: "workers[*].idNumber"},
		},
		Entities: map[string]map[string]interface{}{
			"Company": {"cif": "b46123456"},
		},
		Collections: map[string][]map[string]interface{}{
			"Worker": {{"dni": "12345678Z"}, {"dni": "87654321X"}},
		},
	})

	require.NoError(t, err)
	assert.True(t, result.SchemaValid)
	company := result.Payload["company"].(map[string]interface{})
	assert.Equal(t, "B46123456", company["taxId"])
	workers := result.Payload["workers"].([]interface{})
	require.Len(t, workers, 2)
	assert.Equal(t, "12345678Z", workers[0].(map[string]interface{})["idNumber"])
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTemplateService_DryRun_SchemaMismatchReported(t *testing.T) {
	svc, _ := newTemplateService()

	result, err := svc.DryRun(context.Background(), uuid.New(), service.DryRunTemplateInput{
		Platform:     domain.PlatformNalanda,
		TargetSchema: json.RawMessage(`{"type":"object","required":["company"]}`),
		Rules:        []domain.MappingRule{{From: "Worker[*].dni", To: "workers[*].idNumber"}},
		Collections: map[string][]map[string]interface{}{
			"Worker": {{"dni": "12345678Z"}},
		},
	})

	require.NoError(t, err)
	assert.False(t, result.SchemaValid)
	assert.Contains(t, result.SchemaError, "company")
}

func TestTemplateService_DryRun_MalformedTemplateRejected(t *testing.T) {
	svc, _ := newTemplateService()

	result, err := svc.DryRun(context.Background(), uuid.New(), service.DryRunTemplateInput{
		Platform: domain.PlatformCTAIMA,
		Rules:    []domain.MappingRule{{From: "Company.cif", To: "company.taxId", Transform: "shout"}},
	})

	assert.Nil(t, result)
	var cfgErr *mapping.ConfigError
	require.True(t, errors.As(err, &cfgErr))
}

func TestTemplateService_GetLatest_UnknownPlatform(t *testing.T) {
	svc, repo := newTemplateService()

	tpl, err := svc.GetLatest(context.Background(), uuid.New(), domain.Platform("sap"))

	assert.Nil(t, tpl)
	assert.ErrorIs(t, err, domain.ErrUnknownPlatform)
	repo.AssertNotCalled(t, "GetLatest", mock.Anything, mock.Anything, mock.Anything)
}

func TestTemplateService_ListVersions(t *testing.T) {
	svc, repo := newTemplateService()

	tenantID := uuid.New()
	repo.On("ListVersions", mock.Anything, tenantID, domain.PlatformECoordina).
		Return([]domain.MappingTemplate{{Version: 1}, {Version: 2}}, nil)

	versions, err := svc.ListVersions(context.Background(), tenantID, domain.PlatformECoordina)

	require.NoError(t, err)
	assert.Len(t, versions, 2)
}
