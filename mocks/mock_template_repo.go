package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"obrapass/internal/domain"
)

// MockTemplateRepo is a mock implementation of port.MappingTemplateRepository.
type MockTemplateRepo struct {
	mock.Mock
}

func (m *MockTemplateRepo) Create(ctx context.Context, tpl *domain.MappingTemplate) error {
	args := m.Called(ctx, tpl)
	return args.Error(0)
}

func (m *MockTemplateRepo) GetLatest(ctx context.Context, tenantID uuid.UUID, platform domain.Platform) (*domain.MappingTemplate, error) {
	args := m.Called(ctx, tenantID, platform)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MappingTemplate), args.Error(1)
}

func (m *MockTemplateRepo) GetVersion(ctx context.Context, tenantID uuid.UUID, platform domain.Platform, version int) (*domain.MappingTemplate, error) {
	args := m.Called(ctx, tenantID, platform, version)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MappingTemplate), args.Error(1)
}

func (m *MockTemplateRepo) ListVersions(ctx context.Context, tenantID uuid.UUID, platform domain.Platform) ([]domain.MappingTemplate, error) {
	args := m.Called(ctx, tenantID, platform)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MappingTemplate), args.Error(1)
}
