package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"obrapass/internal/domain"
	"obrapass/internal/service"
)

// MockWorkerService is a mock implementation of service.WorkerService.
type MockWorkerService struct {
	mock.Mock
}

func (m *MockWorkerService) Create(ctx context.Context, tenantID uuid.UUID, input service.CreateWorkerInput) (*domain.Worker, error) {
	args := m.Called(ctx, tenantID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Worker), args.Error(1)
}

func (m *MockWorkerService) GetByID(ctx context.Context, tenantID, workerID uuid.UUID) (*domain.Worker, error) {
	args := m.Called(ctx, tenantID, workerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Worker), args.Error(1)
}

func (m *MockWorkerService) ListByCompany(ctx context.Context, tenantID, companyID uuid.UUID, offset, limit int) ([]domain.Worker, int, error) {
	args := m.Called(ctx, tenantID, companyID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Worker), args.Int(1), args.Error(2)
}

func (m *MockWorkerService) Update(ctx context.Context, tenantID, workerID uuid.UUID, input service.UpdateWorkerInput) (*domain.Worker, error) {
	args := m.Called(ctx, tenantID, workerID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Worker), args.Error(1)
}

func (m *MockWorkerService) Delete(ctx context.Context, tenantID, workerID uuid.UUID) error {
	args := m.Called(ctx, tenantID, workerID)
	return args.Error(0)
}
