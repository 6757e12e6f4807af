package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"obrapass/internal/compliance"
	"obrapass/internal/domain"
	"obrapass/internal/port"
	"obrapass/internal/registry"
)

// EntityVerdict is the compliance outcome for one entity on a site.
type EntityVerdict struct {
	EntityType domain.EntityType  `json:"entidad_tipo"`
	EntityID   uuid.UUID          `json:"entidad_id"`
	Name       string             `json:"name"`
	Result     *compliance.Result `json:"result"`
}

// SiteComplianceReport aggregates the verdicts of a site, its company, and
// every worker and machine assigned to it.
type SiteComplianceReport struct {
	SiteID    uuid.UUID       `json:"site_id"`
	Platform  domain.Platform `json:"plataforma"`
	Compliant bool            `json:"compliant"`
	Entities  []EntityVerdict `json:"entities"`
}

// ComplianceService evaluates requirement rules against the documents on file.
type ComplianceService interface {
	EvaluateSite(ctx context.Context, tenantID uuid.UUID, platform domain.Platform, siteID uuid.UUID) (*SiteComplianceReport, error)
	EvaluateEntity(ctx context.Context, tenantID uuid.UUID, platform domain.Platform, entityType domain.EntityType, entityID uuid.UUID, risk domain.RiskProfile) (*compliance.Result, error)
}

type complianceService struct {
	registry  *registry.Registry
	engine    *compliance.Engine
	sites     port.SiteRepository
	companies port.CompanyRepository
	workers   port.WorkerRepository
	machines  port.MachineRepository
	docs      port.DocumentRepository
}

// NewComplianceService creates a new ComplianceService implementation.
func NewComplianceService(
	reg *registry.Registry,
	engine *compliance.Engine,
	sites port.SiteRepository,
	companies port.CompanyRepository,
	workers port.WorkerRepository,
	machines port.MachineRepository,
	docs port.DocumentRepository,
) ComplianceService {
	return &complianceService{
		registry:  reg,
		engine:    engine,
		sites:     sites,
		companies: companies,
		workers:   workers,
		machines:  machines,
		docs:      docs,
	}
}

func (s *complianceService) EvaluateSite(ctx context.Context, tenantID uuid.UUID, platform domain.Platform, siteID uuid.UUID) (*SiteComplianceReport, error) {
	if !domain.AllowedPlatforms[platform] {
		return nil, domain.ErrUnknownPlatform
	}

	site, err := s.sites.GetByID(ctx, tenantID, siteID)
	if err != nil {
		return nil, err
	}
	rs, err := s.registry.RuleSet(ctx, tenantID, platform)
	if err != nil {
		return nil, err
	}

	report := &SiteComplianceReport{
		SiteID:    siteID,
		Platform:  platform,
		Compliant: true,
	}

	addVerdict := func(et domain.EntityType, id uuid.UUID, name string) error {
		result, err := s.evaluateOne(ctx, rs, tenantID, et, id, site.RiskProfile)
		if err != nil {
			return err
		}
		if !result.Compliant {
			report.Compliant = false
		}
		report.Entities = append(report.Entities, EntityVerdict{
			EntityType: et,
			EntityID:   id,
			Name:       name,
			Result:     result,
		})
		return nil
	}

	// A missing company is reported as non-compliance on the site, not an
	// internal error: the site references it, but its documents cannot exist.
	company, err := s.companies.GetByID(ctx, tenantID, site.CompanyID)
	if err == nil {
		if err := addVerdict(domain.EntityCompany, company.ID, company.Name); err != nil {
			return nil, err
		}
	} else {
		report.Compliant = false
		report.Entities = append(report.Entities, EntityVerdict{
			EntityType: domain.EntityCompany,
			EntityID:   site.CompanyID,
			Result: &compliance.Result{
				Compliant: false,
				Results: []compliance.RuleResult{{
					Passed:  false,
					Reasons: []string{fmt.Sprintf("company %s not found", site.CompanyID)},
				}},
			},
		})
	}

	if err := addVerdict(domain.EntitySite, site.ID, site.Name); err != nil {
		return nil, err
	}

	workers, err := s.workers.ListBySite(ctx, tenantID, siteID)
	if err != nil {
		return nil, err
	}
	for _, w := range workers {
		if err := addVerdict(domain.EntityWorker, w.ID, w.FirstName+" "+w.LastName); err != nil {
			return nil, err
		}
	}

	machines, err := s.machines.ListBySite(ctx, tenantID, siteID)
	if err != nil {
		return nil, err
	}
	for _, m := range machines {
		if err := addVerdict(domain.EntityMachine, m.ID, m.SerialNumber); err != nil {
			return nil, err
		}
	}

	return report, nil
}

func (s *complianceService) EvaluateEntity(ctx context.Context, tenantID uuid.UUID, platform domain.Platform, entityType domain.EntityType, entityID uuid.UUID, risk domain.RiskProfile) (*compliance.Result, error) {
	if !domain.AllowedPlatforms[platform] {
		return nil, domain.ErrUnknownPlatform
	}
	if !domain.AllowedEntityTypes[entityType] {
		return nil, domain.ErrInvalidEntityType
	}
	if !domain.AllowedRiskProfiles[risk] {
		return nil, domain.ErrInvalidRiskProfile
	}

	rs, err := s.registry.RuleSet(ctx, tenantID, platform)
	if err != nil {
		return nil, err
	}
	return s.evaluateOne(ctx, rs, tenantID, entityType, entityID, risk)
}

func (s *complianceService) evaluateOne(ctx context.Context, rs *compliance.CompiledRuleSet, tenantID uuid.UUID, entityType domain.EntityType, entityID uuid.UUID, risk domain.RiskProfile) (*compliance.Result, error) {
	stored, err := s.docs.ListByEntity(ctx, tenantID, entityType, entityID)
	if err != nil {
		return nil, err
	}

	docs := make([]compliance.Document, 0, len(stored))
	for i := range stored {
		if stored[i].Category == "" {
			// Still awaiting classification; it cannot satisfy any category.
			continue
		}
		docs = append(docs, documentFields(&stored[i]))
	}

	ec := compliance.EntityContext{EntityType: entityType, RiskProfile: risk}
	return s.engine.Evaluate(rs, ec, docs), nil
}

// documentFields flattens a stored document into the engine's field map:
// extraction metadata first, then the canonical record fields on top so the
// record always wins for dates and category.
func documentFields(doc *domain.ComplianceDocument) compliance.Document {
	fields := make(map[string]interface{})

	if len(doc.Extraction) > 0 {
		var extracted map[string]interface{}
		if err := json.Unmarshal(doc.Extraction, &extracted); err == nil {
			for k, v := range extracted {
				fields[k] = v
			}
		}
	}

	fields["categoria"] = doc.Category
	fields["file_type"] = string(doc.FileType)
	if doc.IssuedAt != nil {
		fields["fecha_emision"] = *doc.IssuedAt
	}
	if doc.ExpiresAt != nil {
		fields["fecha_caducidad"] = *doc.ExpiresAt
	}

	return compliance.Document{
		ID:       doc.ID,
		Category: doc.Category,
		Fields:   fields,
	}
}
