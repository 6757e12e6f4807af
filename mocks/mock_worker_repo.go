package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"obrapass/internal/domain"
)

// MockWorkerRepo is a mock implementation of port.WorkerRepository.
type MockWorkerRepo struct {
	mock.Mock
}

func (m *MockWorkerRepo) Create(ctx context.Context, worker *domain.Worker) error {
	args := m.Called(ctx, worker)
	return args.Error(0)
}

func (m *MockWorkerRepo) GetByID(ctx context.Context, tenantID, workerID uuid.UUID) (*domain.Worker, error) {
	args := m.Called(ctx, tenantID, workerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Worker), args.Error(1)
}

func (m *MockWorkerRepo) ListByCompany(ctx context.Context, tenantID, companyID uuid.UUID, offset, limit int) ([]domain.Worker, int, error) {
	args := m.Called(ctx, tenantID, companyID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Worker), args.Int(1), args.Error(2)
}

func (m *MockWorkerRepo) ListBySite(ctx context.Context, tenantID, siteID uuid.UUID) ([]domain.Worker, error) {
	args := m.Called(ctx, tenantID, siteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Worker), args.Error(1)
}

func (m *MockWorkerRepo) AssignToSite(ctx context.Context, tenantID, workerID, siteID uuid.UUID) error {
	args := m.Called(ctx, tenantID, workerID, siteID)
	return args.Error(0)
}

func (m *MockWorkerRepo) RemoveFromSite(ctx context.Context, tenantID, workerID, siteID uuid.UUID) error {
	args := m.Called(ctx, tenantID, workerID, siteID)
	return args.Error(0)
}

func (m *MockWorkerRepo) Update(ctx context.Context, worker *domain.Worker) error {
	args := m.Called(ctx, worker)
	return args.Error(0)
}

func (m *MockWorkerRepo) Delete(ctx context.Context, tenantID, workerID uuid.UUID) error {
	args := m.Called(ctx, tenantID, workerID)
	return args.Error(0)
}
