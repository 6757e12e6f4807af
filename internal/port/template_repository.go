package port

import (
	"context"

	"github.com/google/uuid"

	"obrapass/internal/domain"
)

// MappingTemplateRepository defines the contract for mapping template
// persistence. Templates are append-only: Create assigns the next version
// per (tenant, platform) and existing versions are never modified.
type MappingTemplateRepository interface {
	Create(ctx context.Context, tpl *domain.MappingTemplate) error
	GetLatest(ctx context.Context, tenantID uuid.UUID, platform domain.Platform) (*domain.MappingTemplate, error)
	GetVersion(ctx context.Context, tenantID uuid.UUID, platform domain.Platform, version int) (*domain.MappingTemplate, error)
	ListVersions(ctx context.Context, tenantID uuid.UUID, platform domain.Platform) ([]domain.MappingTemplate, error)
}

// RequirementRuleRepository defines the contract for requirement rule
// persistence.
type RequirementRuleRepository interface {
	Create(ctx context.Context, rule *domain.RequirementRule) error
	GetByID(ctx context.Context, tenantID, ruleID uuid.UUID) (*domain.RequirementRule, error)
	ListByPlatform(ctx context.Context, tenantID uuid.UUID, platform domain.Platform) ([]domain.RequirementRule, error)
	Update(ctx context.Context, rule *domain.RequirementRule) error
	Delete(ctx context.Context, tenantID, ruleID uuid.UUID) error
}
