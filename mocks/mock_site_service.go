package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"obrapass/internal/domain"
	"obrapass/internal/service"
)

// MockSiteService is a mock implementation of service.SiteService.
type MockSiteService struct {
	mock.Mock
}

func (m *MockSiteService) Create(ctx context.Context, tenantID uuid.UUID, input service.CreateSiteInput) (*domain.Site, error) {
	args := m.Called(ctx, tenantID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Site), args.Error(1)
}

func (m *MockSiteService) GetByID(ctx context.Context, tenantID, siteID uuid.UUID) (*domain.Site, error) {
	args := m.Called(ctx, tenantID, siteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Site), args.Error(1)
}

func (m *MockSiteService) List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Site, int, error) {
	args := m.Called(ctx, tenantID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Site), args.Int(1), args.Error(2)
}

func (m *MockSiteService) Update(ctx context.Context, tenantID, siteID uuid.UUID, input service.UpdateSiteInput) (*domain.Site, error) {
	args := m.Called(ctx, tenantID, siteID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Site), args.Error(1)
}

func (m *MockSiteService) Delete(ctx context.Context, tenantID, siteID uuid.UUID) error {
	args := m.Called(ctx, tenantID, siteID)
	return args.Error(0)
}

func (m *MockSiteService) AssignWorker(ctx context.Context, tenantID, siteID, workerID uuid.UUID) error {
	args := m.Called(ctx, tenantID, siteID, workerID)
	return args.Error(0)
}

func (m *MockSiteService) RemoveWorker(ctx context.Context, tenantID, siteID, workerID uuid.UUID) error {
	args := m.Called(ctx, tenantID, siteID, workerID)
	return args.Error(0)
}

func (m *MockSiteService) ListWorkers(ctx context.Context, tenantID, siteID uuid.UUID) ([]domain.Worker, error) {
	args := m.Called(ctx, tenantID, siteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Worker), args.Error(1)
}

func (m *MockSiteService) AssignMachine(ctx context.Context, tenantID, siteID, machineID uuid.UUID) error {
	args := m.Called(ctx, tenantID, siteID, machineID)
	return args.Error(0)
}

func (m *MockSiteService) RemoveMachine(ctx context.Context, tenantID, siteID, machineID uuid.UUID) error {
	args := m.Called(ctx, tenantID, siteID, machineID)
	return args.Error(0)
}

func (m *MockSiteService) ListMachines(ctx context.Context, tenantID, siteID uuid.UUID) ([]domain.Machine, error) {
	args := m.Called(ctx, tenantID, siteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Machine), args.Error(1)
}
