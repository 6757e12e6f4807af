package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"obrapass/internal/domain"
)

// MockSiteRepo is a mock implementation of port.SiteRepository.
type MockSiteRepo struct {
	mock.Mock
}

func (m *MockSiteRepo) Create(ctx context.Context, site *domain.Site) error {
	args := m.Called(ctx, site)
	return args.Error(0)
}

func (m *MockSiteRepo) GetByID(ctx context.Context, tenantID, siteID uuid.UUID) (*domain.Site, error) {
	args := m.Called(ctx, tenantID, siteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Site), args.Error(1)
}

func (m *MockSiteRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Site, int, error) {
	args := m.Called(ctx, tenantID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Site), args.Int(1), args.Error(2)
}

func (m *MockSiteRepo) ListByCompany(ctx context.Context, tenantID, companyID uuid.UUID) ([]domain.Site, error) {
	args := m.Called(ctx, tenantID, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Site), args.Error(1)
}

func (m *MockSiteRepo) Update(ctx context.Context, site *domain.Site) error {
	args := m.Called(ctx, site)
	return args.Error(0)
}

func (m *MockSiteRepo) Delete(ctx context.Context, tenantID, siteID uuid.UUID) error {
	args := m.Called(ctx, tenantID, siteID)
	return args.Error(0)
}
