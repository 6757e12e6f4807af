package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"obrapass/internal/compliance"
	"obrapass/internal/domain"
	"obrapass/internal/mapping"
	"obrapass/internal/port"
	"obrapass/internal/registry"
)

// ExportService manages export jobs: queuing a site for projection onto an
// external platform and running the transform itself.
type ExportService interface {
	Request(ctx context.Context, tenantID, requestedBy uuid.UUID, platform domain.Platform, siteID uuid.UUID) (*domain.ExportJob, error)
	GetByID(ctx context.Context, tenantID, jobID uuid.UUID) (*domain.ExportJob, error)
	List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.ExportJob, int, error)
	// ProcessJob runs one claimed job to completion. The job must already be
	// in running status with Attempts incremented.
	ProcessJob(ctx context.Context, job *domain.ExportJob, maxAttempts int)
}

type exportService struct {
	jobs      port.ExportJobRepository
	sites     port.SiteRepository
	companies port.CompanyRepository
	workers   port.WorkerRepository
	machines  port.MachineRepository
	docs      port.DocumentRepository
	registry  *registry.Registry
	engine    *compliance.Engine
}

// NewExportService creates a new ExportService implementation.
func NewExportService(
	jobs port.ExportJobRepository,
	sites port.SiteRepository,
	companies port.CompanyRepository,
	workers port.WorkerRepository,
	machines port.MachineRepository,
	docs port.DocumentRepository,
	reg *registry.Registry,
	engine *compliance.Engine,
) ExportService {
	return &exportService{
		jobs:      jobs,
		sites:     sites,
		companies: companies,
		workers:   workers,
		machines:  machines,
		docs:      docs,
		registry:  reg,
		engine:    engine,
	}
}

// Request queues an export. The active template version is pinned here, so a
// template published after the job is queued never changes what the job sends.
func (s *exportService) Request(ctx context.Context, tenantID, requestedBy uuid.UUID, platform domain.Platform, siteID uuid.UUID) (*domain.ExportJob, error) {
	if !domain.AllowedPlatforms[platform] {
		return nil, domain.ErrUnknownPlatform
	}
	if _, err := s.sites.GetByID(ctx, tenantID, siteID); err != nil {
		return nil, err
	}

	ct, err := s.registry.LatestTemplate(ctx, tenantID, platform)
	if err != nil {
		return nil, err
	}

	job := &domain.ExportJob{
		TenantID:        tenantID,
		Platform:        platform,
		SiteID:          siteID,
		TemplateVersion: ct.Version,
		Status:          domain.ExportStatusQueued,
		RequestedBy:     requestedBy,
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}

	log.Printf("exportService.Request: queued export job %s (site %s -> %s v%d)",
		job.ID, siteID, platform, ct.Version)
	return job, nil
}

func (s *exportService) GetByID(ctx context.Context, tenantID, jobID uuid.UUID) (*domain.ExportJob, error) {
	return s.jobs.GetByID(ctx, tenantID, jobID)
}

func (s *exportService) List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.ExportJob, int, error) {
	return s.jobs.ListByTenant(ctx, tenantID, offset, limit)
}

func (s *exportService) ProcessJob(ctx context.Context, job *domain.ExportJob, maxAttempts int) {
	payload, err := s.runTransform(ctx, job)
	if err != nil {
		s.handleJobError(ctx, job, err, maxAttempts)
		return
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		s.failJob(ctx, job, fmt.Sprintf("marshaling payload: %v", err))
		return
	}

	now := time.Now().UTC()
	job.Status = domain.ExportStatusCompleted
	job.Payload = raw
	job.ErrorMessage = ""
	job.CompletedAt = &now
	if err := s.jobs.Update(ctx, job); err != nil {
		log.Printf("exportService.ProcessJob: failed to save results for %s: %v", job.ID, err)
		return
	}
	log.Printf("exportService.ProcessJob: job %s completed", job.ID)
}

func (s *exportService) runTransform(ctx context.Context, job *domain.ExportJob) (map[string]interface{}, error) {
	ct, err := s.registry.TemplateVersion(ctx, job.TenantID, job.Platform, job.TemplateVersion)
	if err != nil {
		return nil, err
	}
	rs, err := s.registry.RuleSet(ctx, job.TenantID, job.Platform)
	if err != nil {
		return nil, err
	}

	graph, err := s.buildGraph(ctx, job.TenantID, job.SiteID, rs)
	if err != nil {
		return nil, err
	}

	payload, err := ct.Transform(graph)
	if err != nil {
		return nil, err
	}
	if err := ct.CheckPayload(payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// buildGraph assembles the entity graph for a site: the site and its company
// as singular entities, assigned workers and machines as ordered collections,
// and the eligible documents of all of them as a flat documentos collection.
// Eligibility is the validation gate: documents that fail the platform's
// requirement asserts, and documents still awaiting classification, never
// reach the transform. Field names come from the domain wire tags, so
// templates address the same names the API exposes.
func (s *exportService) buildGraph(ctx context.Context, tenantID, siteID uuid.UUID, rs *compliance.CompiledRuleSet) (*mapping.EntityGraph, error) {
	site, err := s.sites.GetByID(ctx, tenantID, siteID)
	if err != nil {
		return nil, err
	}
	company, err := s.companies.GetByID(ctx, tenantID, site.CompanyID)
	if err != nil {
		return nil, err
	}
	workers, err := s.workers.ListBySite(ctx, tenantID, siteID)
	if err != nil {
		return nil, err
	}
	machines, err := s.machines.ListBySite(ctx, tenantID, siteID)
	if err != nil {
		return nil, err
	}

	graph := mapping.NewEntityGraph()

	siteFields, err := wireFields(site)
	if err != nil {
		return nil, err
	}
	graph.SetEntity("obra", siteFields)

	companyFields, err := wireFields(company)
	if err != nil {
		return nil, err
	}
	graph.SetEntity("empresa", companyFields)

	workerElems := make([]map[string]interface{}, 0, len(workers))
	for i := range workers {
		f, err := wireFields(&workers[i])
		if err != nil {
			return nil, err
		}
		workerElems = append(workerElems, f)
	}
	graph.SetCollection("trabajadores", workerElems)

	machineElems := make([]map[string]interface{}, 0, len(machines))
	for i := range machines {
		f, err := wireFields(&machines[i])
		if err != nil {
			return nil, err
		}
		machineElems = append(machineElems, f)
	}
	graph.SetCollection("maquinas", machineElems)

	docElems := make([]map[string]interface{}, 0)
	appendDocs := func(et domain.EntityType, id uuid.UUID) error {
		eligible, err := s.eligibleDocuments(ctx, tenantID, et, id, site.RiskProfile, rs)
		if err != nil {
			return err
		}
		for i := range eligible {
			f, err := wireFields(&eligible[i])
			if err != nil {
				return err
			}
			docElems = append(docElems, f)
		}
		return nil
	}
	if err := appendDocs(domain.EntityCompany, company.ID); err != nil {
		return nil, err
	}
	if err := appendDocs(domain.EntitySite, site.ID); err != nil {
		return nil, err
	}
	for i := range workers {
		if err := appendDocs(domain.EntityWorker, workers[i].ID); err != nil {
			return nil, err
		}
	}
	for i := range machines {
		if err := appendDocs(domain.EntityMachine, machines[i].ID); err != nil {
			return nil, err
		}
	}
	graph.SetCollection("documentos", docElems)

	return graph, nil
}

// eligibleDocuments fetches an entity's documents and keeps the ones the
// platform's rules accept. Unclassified documents cannot satisfy any
// category and are always held back.
func (s *exportService) eligibleDocuments(ctx context.Context, tenantID uuid.UUID, et domain.EntityType, id uuid.UUID, risk domain.RiskProfile, rs *compliance.CompiledRuleSet) ([]domain.ComplianceDocument, error) {
	stored, err := s.docs.ListByEntity(ctx, tenantID, et, id)
	if err != nil {
		return nil, err
	}

	ec := compliance.EntityContext{EntityType: et, RiskProfile: risk}
	eligible := make([]domain.ComplianceDocument, 0, len(stored))
	for i := range stored {
		if stored[i].Category == "" {
			continue
		}
		doc := documentFields(&stored[i])
		if !s.engine.DocumentEligible(rs, ec, doc) {
			log.Printf("exportService.eligibleDocuments: holding back document %s (%s, category %q)",
				stored[i].ID, et, stored[i].Category)
			continue
		}
		eligible = append(eligible, stored[i])
	}
	return eligible, nil
}

// wireFields converts a domain struct to its JSON wire representation as a map.
func wireFields(v interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshaling entity: %w", err)
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("unmarshaling entity: %w", err)
	}
	return fields, nil
}

// handleJobError distinguishes configuration and data errors, which retries
// cannot fix, from transient ones, which go back to the queue while attempts
// remain.
func (s *exportService) handleJobError(ctx context.Context, job *domain.ExportJob, jobErr error, maxAttempts int) {
	var cfgErr *mapping.ConfigError
	var resErr *mapping.ResolutionError
	var ruleErr *compliance.ConfigError
	permanent := errors.As(jobErr, &cfgErr) || errors.As(jobErr, &resErr) ||
		errors.As(jobErr, &ruleErr) ||
		errors.Is(jobErr, domain.ErrTemplateNotFound) || errors.Is(jobErr, domain.ErrSiteNotFound)

	if !permanent && job.Attempts < maxAttempts {
		job.Status = domain.ExportStatusQueued
		job.ErrorMessage = jobErr.Error()
		if err := s.jobs.Update(ctx, job); err != nil {
			log.Printf("exportService.handleJobError: failed to requeue job %s: %v", job.ID, err)
			return
		}
		log.Printf("exportService.handleJobError: job %s requeued (attempt %d/%d): %v",
			job.ID, job.Attempts, maxAttempts, jobErr)
		return
	}

	s.failJob(ctx, job, jobErr.Error())
}

func (s *exportService) failJob(ctx context.Context, job *domain.ExportJob, errMsg string) {
	log.Printf("exportService.failJob: job %s failed: %s", job.ID, errMsg)
	job.Status = domain.ExportStatusFailed
	job.ErrorMessage = errMsg
	if err := s.jobs.Update(ctx, job); err != nil {
		log.Printf("exportService.failJob: failed to update status for %s: %v", job.ID, err)
	}
}
