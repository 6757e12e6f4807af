package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"obrapass/internal/domain"
	"obrapass/internal/service"
)

// MockRequirementService is a mock implementation of service.RequirementService.
type MockRequirementService struct {
	mock.Mock
}

func (m *MockRequirementService) Create(ctx context.Context, tenantID, createdBy uuid.UUID, input service.CreateRequirementInput) (*domain.RequirementRule, error) {
	args := m.Called(ctx, tenantID, createdBy, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RequirementRule), args.Error(1)
}

func (m *MockRequirementService) GetByID(ctx context.Context, tenantID, ruleID uuid.UUID) (*domain.RequirementRule, error) {
	args := m.Called(ctx, tenantID, ruleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RequirementRule), args.Error(1)
}

func (m *MockRequirementService) ListByPlatform(ctx context.Context, tenantID uuid.UUID, platform domain.Platform) ([]domain.RequirementRule, error) {
	args := m.Called(ctx, tenantID, platform)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RequirementRule), args.Error(1)
}

func (m *MockRequirementService) Update(ctx context.Context, tenantID, ruleID uuid.UUID, input service.UpdateRequirementInput) (*domain.RequirementRule, error) {
	args := m.Called(ctx, tenantID, ruleID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RequirementRule), args.Error(1)
}

func (m *MockRequirementService) Delete(ctx context.Context, tenantID, ruleID uuid.UUID) error {
	args := m.Called(ctx, tenantID, ruleID)
	return args.Error(0)
}
