package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"obrapass/internal/domain"
	"obrapass/internal/service"
)

// MockTemplateService is a mock implementation of service.TemplateService.
type MockTemplateService struct {
	mock.Mock
}

func (m *MockTemplateService) Create(ctx context.Context, tenantID, createdBy uuid.UUID, input service.CreateTemplateInput) (*domain.MappingTemplate, error) {
	args := m.Called(ctx, tenantID, createdBy, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MappingTemplate), args.Error(1)
}

func (m *MockTemplateService) DryRun(ctx context.Context, tenantID uuid.UUID, input service.DryRunTemplateInput) (*service.DryRunResult, error) {
	args := m.Called(ctx, tenantID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DryRunResult), args.Error(1)
}

func (m *MockTemplateService) GetLatest(ctx context.Context, tenantID uuid.UUID, platform domain.Platform) (*domain.MappingTemplate, error) {
	args := m.Called(ctx, tenantID, platform)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MappingTemplate), args.Error(1)
}

func (m *MockTemplateService) GetVersion(ctx context.Context, tenantID uuid.UUID, platform domain.Platform, version int) (*domain.MappingTemplate, error) {
	args := m.Called(ctx, tenantID, platform, version)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MappingTemplate), args.Error(1)
}

func (m *MockTemplateService) ListVersions(ctx context.Context, tenantID uuid.UUID, platform domain.Platform) ([]domain.MappingTemplate, error) {
	args := m.Called(ctx, tenantID, platform)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MappingTemplate), args.Error(1)
}
