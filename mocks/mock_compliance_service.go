package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"obrapass/internal/compliance"
	"obrapass/internal/domain"
	"obrapass/internal/service"
)

// MockComplianceService is a mock implementation of service.ComplianceService.
type MockComplianceService struct {
	mock.Mock
}

func (m *MockComplianceService) EvaluateSite(ctx context.Context, tenantID uuid.UUID, platform domain.Platform, siteID uuid.UUID) (*service.SiteComplianceReport, error) {
	args := m.Called(ctx, tenantID, platform, siteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SiteComplianceReport), args.Error(1)
}

func (m *MockComplianceService) EvaluateEntity(ctx context.Context, tenantID uuid.UUID, platform domain.Platform, entityType domain.EntityType, entityID uuid.UUID, risk domain.RiskProfile) (*compliance.Result, error) {
	args := m.Called(ctx, tenantID, platform, entityType, entityID, risk)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*compliance.Result), args.Error(1)
}
