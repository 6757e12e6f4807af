package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"obrapass/internal/domain"
)

// MockRequirementRuleRepo is a mock implementation of port.RequirementRuleRepository.
type MockRequirementRuleRepo struct {
	mock.Mock
}

func (m *MockRequirementRuleRepo) Create(ctx context.Context, rule *domain.RequirementRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockRequirementRuleRepo) GetByID(ctx context.Context, tenantID, ruleID uuid.UUID) (*domain.RequirementRule, error) {
	args := m.Called(ctx, tenantID, ruleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RequirementRule), args.Error(1)
}

func (m *MockRequirementRuleRepo) ListByPlatform(ctx context.Context, tenantID uuid.UUID, platform domain.Platform) ([]domain.RequirementRule, error) {
	args := m.Called(ctx, tenantID, platform)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RequirementRule), args.Error(1)
}

func (m *MockRequirementRuleRepo) Update(ctx context.Context, rule *domain.RequirementRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockRequirementRuleRepo) Delete(ctx context.Context, tenantID, ruleID uuid.UUID) error {
	args := m.Called(ctx, tenantID, ruleID)
	return args.Error(0)
}
