package service

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"obrapass/internal/domain"
	"obrapass/internal/mapping"
	"obrapass/internal/port"
)

// CreateTemplateInput is the DTO for creating a mapping template version.
type CreateTemplateInput struct {
	Platform     domain.Platform    `json:"plataforma" binding:"required"`
	TargetSchema json.RawMessage    `json:"schema_destino"`
	Rules        []domain.MappingRule `json:"rules" binding:"required"`
}

// DryRunTemplateInput is the DTO for a dry-run transform: a template
// definition plus a sample entity graph. Nothing is persisted.
type DryRunTemplateInput struct {
	Platform     domain.Platform                     `json:"plataforma" binding:"required"`
	TargetSchema json.RawMessage                     `json:"schema_destino"`
	Rules        []domain.MappingRule                `json:"rules" binding:"required"`
	Entities     map[string]map[string]interface{}   `json:"entidades"`
	Collections  map[string][]map[string]interface{} `json:"colecciones"`
}

// DryRunResult carries the transformed payload plus the outcome of the
// target-schema check. A schema mismatch is reported here, not as an error:
// the transform itself succeeded and the caller wants to see the payload.
type DryRunResult struct {
	Payload     map[string]interface{} `json:"payload"`
	SchemaValid bool                   `json:"schema_valido"`
	SchemaError string                 `json:"schema_error,omitempty"`
}

// TemplateService defines the mapping template management contract. Templates
// are validated by compilation before any version is persisted, so a broken
// rule never reaches an export run.
type TemplateService interface {
	Create(ctx context.Context, tenantID, createdBy uuid.UUID, input CreateTemplateInput) (*domain.MappingTemplate, error)
	DryRun(ctx context.Context, tenantID uuid.UUID, input DryRunTemplateInput) (*DryRunResult, error)
	GetLatest(ctx context.Context, tenantID uuid.UUID, platform domain.Platform) (*domain.MappingTemplate, error)
	GetVersion(ctx context.Context, tenantID uuid.UUID, platform domain.Platform, version int) (*domain.MappingTemplate, error)
	ListVersions(ctx context.Context, tenantID uuid.UUID, platform domain.Platform) ([]domain.MappingTemplate, error)
}

type templateService struct {
	repo port.MappingTemplateRepository
}

// NewTemplateService creates a new TemplateService implementation.
func NewTemplateService(repo port.MappingTemplateRepository) TemplateService {
	return &templateService{repo: repo}
}

func (s *templateService) Create(ctx context.Context, tenantID, createdBy uuid.UUID, input CreateTemplateInput) (*domain.MappingTemplate, error) {
	if !domain.AllowedPlatforms[input.Platform] {
		return nil, domain.ErrUnknownPlatform
	}

	tpl := &domain.MappingTemplate{
		TenantID:     tenantID,
		Platform:     input.Platform,
		TargetSchema: input.TargetSchema,
		Rules:        input.Rules,
		CreatedBy:    createdBy,
	}

	// Dry-run compile so a malformed template is rejected at write time.
	if _, err := mapping.Compile(tpl); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, tpl); err != nil {
		return nil, err
	}
	return tpl, nil
}

func (s *templateService) DryRun(ctx context.Context, tenantID uuid.UUID, input DryRunTemplateInput) (*DryRunResult, error) {
	if !domain.AllowedPlatforms[input.Platform] {
		return nil, domain.ErrUnknownPlatform
	}

	tpl := &domain.MappingTemplate{
		TenantID:     tenantID,
		Platform:     input.Platform,
		TargetSchema: input.TargetSchema,
		Rules:        input.Rules,
	}
	compiled, err := mapping.Compile(tpl)
	if err != nil {
		return nil, err
	}

	g := mapping.NewEntityGraph()
	for name, fields := range input.Entities {
		g.SetEntity(name, fields)
	}
	for name, elems := range input.Collections {
		g.SetCollection(name, elems)
	}

	payload, err := compiled.Transform(g)
	if err != nil {
		return nil, err
	}

	result := &DryRunResult{Payload: payload, SchemaValid: true}
	if len(input.TargetSchema) > 0 {
		if err := compiled.CheckPayload(payload); err != nil {
			result.SchemaValid = false
			result.SchemaError = err.Error()
		}
	}
	return result, nil
}

func (s *templateService) GetLatest(ctx context.Context, tenantID uuid.UUID, platform domain.Platform) (*domain.MappingTemplate, error) {
	if !domain.AllowedPlatforms[platform] {
		return nil, domain.ErrUnknownPlatform
	}
	return s.repo.GetLatest(ctx, tenantID, platform)
}

func (s *templateService) GetVersion(ctx context.Context, tenantID uuid.UUID, platform domain.Platform, version int) (*domain.MappingTemplate, error) {
	if !domain.AllowedPlatforms[platform] {
		return nil, domain.ErrUnknownPlatform
	}
	return s.repo.GetVersion(ctx, tenantID, platform, version)
}

func (s *templateService) ListVersions(ctx context.Context, tenantID uuid.UUID, platform domain.Platform) ([]domain.MappingTemplate, error) {
	if !domain.AllowedPlatforms[platform] {
		return nil, domain.ErrUnknownPlatform
	}
	return s.repo.ListVersions(ctx, tenantID, platform)
}
