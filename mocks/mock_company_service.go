package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"obrapass/internal/domain"
	"obrapass/internal/service"
)

// MockCompanyService is a mock implementation of service.CompanyService.
type MockCompanyService struct {
	mock.Mock
}

func (m *MockCompanyService) Create(ctx context.Context, tenantID uuid.UUID, input service.CreateCompanyInput) (*domain.Company, error) {
	args := m.Called(ctx, tenantID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyService) GetByID(ctx context.Context, tenantID, companyID uuid.UUID) (*domain.Company, error) {
	args := m.Called(ctx, tenantID, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyService) List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Company, int, error) {
	args := m.Called(ctx, tenantID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Company), args.Int(1), args.Error(2)
}

func (m *MockCompanyService) Update(ctx context.Context, tenantID, companyID uuid.UUID, input service.UpdateCompanyInput) (*domain.Company, error) {
	args := m.Called(ctx, tenantID, companyID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyService) Delete(ctx context.Context, tenantID, companyID uuid.UUID) error {
	args := m.Called(ctx, tenantID, companyID)
	return args.Error(0)
}
