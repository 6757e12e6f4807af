package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"obrapass/internal/domain"
	"obrapass/internal/service"
)

// MockMachineService is a mock implementation of service.MachineService.
type MockMachineService struct {
	mock.Mock
}

func (m *MockMachineService) Create(ctx context.Context, tenantID uuid.UUID, input service.CreateMachineInput) (*domain.Machine, error) {
	args := m.Called(ctx, tenantID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Machine), args.Error(1)
}

func (m *MockMachineService) GetByID(ctx context.Context, tenantID, machineID uuid.UUID) (*domain.Machine, error) {
	args := m.Called(ctx, tenantID, machineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Machine), args.Error(1)
}

func (m *MockMachineService) ListByCompany(ctx context.Context, tenantID, companyID uuid.UUID, offset, limit int) ([]domain.Machine, int, error) {
	args := m.Called(ctx, tenantID, companyID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Machine), args.Int(1), args.Error(2)
}

func (m *MockMachineService) Update(ctx context.Context, tenantID, machineID uuid.UUID, input service.UpdateMachineInput) (*domain.Machine, error) {
	args := m.Called(ctx, tenantID, machineID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Machine), args.Error(1)
}

func (m *MockMachineService) Delete(ctx context.Context, tenantID, machineID uuid.UUID) error {
	args := m.Called(ctx, tenantID, machineID)
	return args.Error(0)
}
