package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"obrapass/internal/domain"
)

// MockExportJobRepo is a mock implementation of port.ExportJobRepository.
type MockExportJobRepo struct {
	mock.Mock
}

func (m *MockExportJobRepo) Create(ctx context.Context, job *domain.ExportJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockExportJobRepo) GetByID(ctx context.Context, tenantID, jobID uuid.UUID) (*domain.ExportJob, error) {
	args := m.Called(ctx, tenantID, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExportJob), args.Error(1)
}

func (m *MockExportJobRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.ExportJob, int, error) {
	args := m.Called(ctx, tenantID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ExportJob), args.Int(1), args.Error(2)
}

func (m *MockExportJobRepo) ClaimQueued(ctx context.Context, limit int) ([]domain.ExportJob, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExportJob), args.Error(1)
}

func (m *MockExportJobRepo) Update(ctx context.Context, job *domain.ExportJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}
