package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"obrapass/internal/domain"
)

// MockMachineRepo is a mock implementation of port.MachineRepository.
type MockMachineRepo struct {
	mock.Mock
}

func (m *MockMachineRepo) Create(ctx context.Context, machine *domain.Machine) error {
	args := m.Called(ctx, machine)
	return args.Error(0)
}

func (m *MockMachineRepo) GetByID(ctx context.Context, tenantID, machineID uuid.UUID) (*domain.Machine, error) {
	args := m.Called(ctx, tenantID, machineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Machine), args.Error(1)
}

func (m *MockMachineRepo) ListByCompany(ctx context.Context, tenantID, companyID uuid.UUID, offset, limit int) ([]domain.Machine, int, error) {
	args := m.Called(ctx, tenantID, companyID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Machine), args.Int(1), args.Error(2)
}

func (m *MockMachineRepo) ListBySite(ctx context.Context, tenantID, siteID uuid.UUID) ([]domain.Machine, error) {
	args := m.Called(ctx, tenantID, siteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Machine), args.Error(1)
}

func (m *MockMachineRepo) AssignToSite(ctx context.Context, tenantID, machineID, siteID uuid.UUID) error {
	args := m.Called(ctx, tenantID, machineID, siteID)
	return args.Error(0)
}

func (m *MockMachineRepo) RemoveFromSite(ctx context.Context, tenantID, machineID, siteID uuid.UUID) error {
	args := m.Called(ctx, tenantID, machineID, siteID)
	return args.Error(0)
}

func (m *MockMachineRepo) Update(ctx context.Context, machine *domain.Machine) error {
	args := m.Called(ctx, machine)
	return args.Error(0)
}

func (m *MockMachineRepo) Delete(ctx context.Context, tenantID, machineID uuid.UUID) error {
	args := m.Called(ctx, tenantID, machineID)
	return args.Error(0)
}
