package service

import (
	"context"

	"github.com/google/uuid"

	"obrapass/internal/compliance"
	"obrapass/internal/domain"
	"obrapass/internal/port"
	"obrapass/internal/registry"
)

// CreateRequirementInput is the DTO for creating a requirement rule.
type CreateRequirementInput struct {
	Platform    domain.Platform      `json:"plataforma" binding:"required"`
	AppliesTo   domain.EntityType    `json:"aplica_a" binding:"required"`
	RiskProfile domain.RiskProfile   `json:"perfil_riesgo" binding:"required"`
	Category    string               `json:"categoria" binding:"required"`
	Mandatory   bool                 `json:"obligatorio"`
	Predicates  domain.PredicateList `json:"reglas_validacion"`
}

// UpdateRequirementInput is the DTO for updating a requirement rule.
type UpdateRequirementInput struct {
	AppliesTo   *domain.EntityType    `json:"aplica_a"`
	RiskProfile *domain.RiskProfile   `json:"perfil_riesgo"`
	Category    *string               `json:"categoria"`
	Mandatory   *bool                 `json:"obligatorio"`
	Predicates  *domain.PredicateList `json:"reglas_validacion"`
	IsActive    *bool                 `json:"is_active"`
}

// RequirementService defines the requirement rule management contract. Every
// write is validated by compilation first and invalidates the registry's
// cached rule set for the affected (tenant, platform) pair.
type RequirementService interface {
	Create(ctx context.Context, tenantID, createdBy uuid.UUID, input CreateRequirementInput) (*domain.RequirementRule, error)
	GetByID(ctx context.Context, tenantID, ruleID uuid.UUID) (*domain.RequirementRule, error)
	ListByPlatform(ctx context.Context, tenantID uuid.UUID, platform domain.Platform) ([]domain.RequirementRule, error)
	Update(ctx context.Context, tenantID, ruleID uuid.UUID, input UpdateRequirementInput) (*domain.RequirementRule, error)
	Delete(ctx context.Context, tenantID, ruleID uuid.UUID) error
}

type requirementService struct {
	repo     port.RequirementRuleRepository
	registry *registry.Registry
}

// NewRequirementService creates a new RequirementService implementation.
func NewRequirementService(repo port.RequirementRuleRepository, reg *registry.Registry) RequirementService {
	return &requirementService{repo: repo, registry: reg}
}

func (s *requirementService) Create(ctx context.Context, tenantID, createdBy uuid.UUID, input CreateRequirementInput) (*domain.RequirementRule, error) {
	if !domain.AllowedPlatforms[input.Platform] {
		return nil, domain.ErrUnknownPlatform
	}
	if !domain.AllowedEntityTypes[input.AppliesTo] {
		return nil, domain.ErrInvalidEntityType
	}
	if !domain.AllowedRiskProfiles[input.RiskProfile] {
		return nil, domain.ErrInvalidRiskProfile
	}

	rule := &domain.RequirementRule{
		TenantID:    tenantID,
		Platform:    input.Platform,
		AppliesTo:   input.AppliesTo,
		RiskProfile: input.RiskProfile,
		Category:    input.Category,
		Mandatory:   input.Mandatory,
		Predicates:  input.Predicates,
		IsActive:    true,
		CreatedBy:   &createdBy,
	}

	// Dry-run compile so malformed predicates are rejected at write time.
	if _, err := compliance.CompileRuleSet(tenantID, input.Platform, []domain.RequirementRule{*rule}); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, rule); err != nil {
		return nil, err
	}
	s.registry.InvalidateRules(tenantID, rule.Platform)
	return rule, nil
}

func (s *requirementService) GetByID(ctx context.Context, tenantID, ruleID uuid.UUID) (*domain.RequirementRule, error) {
	return s.repo.GetByID(ctx, tenantID, ruleID)
}

func (s *requirementService) ListByPlatform(ctx context.Context, tenantID uuid.UUID, platform domain.Platform) ([]domain.RequirementRule, error) {
	if !domain.AllowedPlatforms[platform] {
		return nil, domain.ErrUnknownPlatform
	}
	return s.repo.ListByPlatform(ctx, tenantID, platform)
}

func (s *requirementService) Update(ctx context.Context, tenantID, ruleID uuid.UUID, input UpdateRequirementInput) (*domain.RequirementRule, error) {
	rule, err := s.repo.GetByID(ctx, tenantID, ruleID)
	if err != nil {
		return nil, err
	}

	if input.AppliesTo != nil {
		if !domain.AllowedEntityTypes[*input.AppliesTo] {
			return nil, domain.ErrInvalidEntityType
		}
		rule.AppliesTo = *input.AppliesTo
	}
	if input.RiskProfile != nil {
		if !domain.AllowedRiskProfiles[*input.RiskProfile] {
			return nil, domain.ErrInvalidRiskProfile
		}
		rule.RiskProfile = *input.RiskProfile
	}
	if input.Category != nil {
		rule.Category = *input.Category
	}
	if input.Mandatory != nil {
		rule.Mandatory = *input.Mandatory
	}
	if input.Predicates != nil {
		rule.Predicates = *input.Predicates
	}
	if input.IsActive != nil {
		rule.IsActive = *input.IsActive
	}

	if _, err := compliance.CompileRuleSet(tenantID, rule.Platform, []domain.RequirementRule{*rule}); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, rule); err != nil {
		return nil, err
	}
	s.registry.InvalidateRules(tenantID, rule.Platform)
	return rule, nil
}

func (s *requirementService) Delete(ctx context.Context, tenantID, ruleID uuid.UUID) error {
	rule, err := s.repo.GetByID(ctx, tenantID, ruleID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, tenantID, ruleID); err != nil {
		return err
	}
	s.registry.InvalidateRules(tenantID, rule.Platform)
	return nil
}
