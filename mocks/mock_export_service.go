package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"obrapass/internal/domain"
)

// MockExportService is a mock implementation of service.ExportService.
type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) Request(ctx context.Context, tenantID, requestedBy uuid.UUID, platform domain.Platform, siteID uuid.UUID) (*domain.ExportJob, error) {
	args := m.Called(ctx, tenantID, requestedBy, platform, siteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExportJob), args.Error(1)
}

func (m *MockExportService) GetByID(ctx context.Context, tenantID, jobID uuid.UUID) (*domain.ExportJob, error) {
	args := m.Called(ctx, tenantID, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExportJob), args.Error(1)
}

func (m *MockExportService) List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.ExportJob, int, error) {
	args := m.Called(ctx, tenantID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ExportJob), args.Int(1), args.Error(2)
}

func (m *MockExportService) ProcessJob(ctx context.Context, job *domain.ExportJob, maxAttempts int) {
	m.Called(ctx, job, maxAttempts)
}
