package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"obrapass/internal/domain"
	"obrapass/internal/port"
)

// CreateSiteInput is the DTO for opening a construction site.
type CreateSiteInput struct {
	CompanyID   uuid.UUID          `json:"company_id" binding:"required"`
	Name        string             `json:"name" binding:"required"`
	Code        string             `json:"code" binding:"required"`
	Address     string             `json:"address"`
	RiskProfile domain.RiskProfile `json:"perfil_riesgo" binding:"required"`
	StartDate   *time.Time         `json:"start_date"`
	EndDate     *time.Time         `json:"end_date"`
}

// UpdateSiteInput is the DTO for updating a site.
type UpdateSiteInput struct {
	Name        *string             `json:"name"`
	Code        *string             `json:"code"`
	Address     *string             `json:"address"`
	RiskProfile *domain.RiskProfile `json:"perfil_riesgo"`
	StartDate   *time.Time          `json:"start_date"`
	EndDate     *time.Time          `json:"end_date"`
}

// SiteService defines the construction site management contract, including
// worker and machine assignments.
type SiteService interface {
	Create(ctx context.Context, tenantID uuid.UUID, input CreateSiteInput) (*domain.Site, error)
	GetByID(ctx context.Context, tenantID, siteID uuid.UUID) (*domain.Site, error)
	List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Site, int, error)
	Update(ctx context.Context, tenantID, siteID uuid.UUID, input UpdateSiteInput) (*domain.Site, error)
	Delete(ctx context.Context, tenantID, siteID uuid.UUID) error

	AssignWorker(ctx context.Context, tenantID, siteID, workerID uuid.UUID) error
	RemoveWorker(ctx context.Context, tenantID, siteID, workerID uuid.UUID) error
	ListWorkers(ctx context.Context, tenantID, siteID uuid.UUID) ([]domain.Worker, error)
	AssignMachine(ctx context.Context, tenantID, siteID, machineID uuid.UUID) error
	RemoveMachine(ctx context.Context, tenantID, siteID, machineID uuid.UUID) error
	ListMachines(ctx context.Context, tenantID, siteID uuid.UUID) ([]domain.Machine, error)
}

type siteService struct {
	sites    port.SiteRepository
	workers  port.WorkerRepository
	machines port.MachineRepository
}

// NewSiteService creates a new SiteService implementation.
func NewSiteService(
	sites port.SiteRepository,
	workers port.WorkerRepository,
	machines port.MachineRepository,
) SiteService {
	return &siteService{sites: sites, workers: workers, machines: machines}
}

func (s *siteService) Create(ctx context.Context, tenantID uuid.UUID, input CreateSiteInput) (*domain.Site, error) {
	if !domain.AllowedRiskProfiles[input.RiskProfile] {
		return nil, domain.ErrInvalidRiskProfile
	}

	site := &domain.Site{
		TenantID:    tenantID,
		CompanyID:   input.CompanyID,
		Name:        input.Name,
		Code:        input.Code,
		Address:     input.Address,
		RiskProfile: input.RiskProfile,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
	}
	if err := s.sites.Create(ctx, site); err != nil {
		return nil, err
	}
	return site, nil
}

func (s *siteService) GetByID(ctx context.Context, tenantID, siteID uuid.UUID) (*domain.Site, error) {
	return s.sites.GetByID(ctx, tenantID, siteID)
}

func (s *siteService) List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Site, int, error) {
	return s.sites.ListByTenant(ctx, tenantID, offset, limit)
}

func (s *siteService) Update(ctx context.Context, tenantID, siteID uuid.UUID, input UpdateSiteInput) (*domain.Site, error) {
	site, err := s.sites.GetByID(ctx, tenantID, siteID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		site.Name = *input.Name
	}
	if input.Code != nil {
		site.Code = *input.Code
	}
	if input.Address != nil {
		site.Address = *input.Address
	}
	if input.RiskProfile != nil {
		if !domain.AllowedRiskProfiles[*input.RiskProfile] {
			return nil, domain.ErrInvalidRiskProfile
		}
		site.RiskProfile = *input.RiskProfile
	}
	if input.StartDate != nil {
		site.StartDate = input.StartDate
	}
	if input.EndDate != nil {
		site.EndDate = input.EndDate
	}

	if err := s.sites.Update(ctx, site); err != nil {
		return nil, err
	}
	return site, nil
}

func (s *siteService) Delete(ctx context.Context, tenantID, siteID uuid.UUID) error {
	return s.sites.Delete(ctx, tenantID, siteID)
}

func (s *siteService) AssignWorker(ctx context.Context, tenantID, siteID, workerID uuid.UUID) error {
	if _, err := s.sites.GetByID(ctx, tenantID, siteID); err != nil {
		return err
	}
	if _, err := s.workers.GetByID(ctx, tenantID, workerID); err != nil {
		return err
	}
	return s.workers.AssignToSite(ctx, tenantID, workerID, siteID)
}

func (s *siteService) RemoveWorker(ctx context.Context, tenantID, siteID, workerID uuid.UUID) error {
	return s.workers.RemoveFromSite(ctx, tenantID, workerID, siteID)
}

func (s *siteService) ListWorkers(ctx context.Context, tenantID, siteID uuid.UUID) ([]domain.Worker, error) {
	if _, err := s.sites.GetByID(ctx, tenantID, siteID); err != nil {
		return nil, err
	}
	return s.workers.ListBySite(ctx, tenantID, siteID)
}

func (s *siteService) AssignMachine(ctx context.Context, tenantID, siteID, machineID uuid.UUID) error {
	if _, err := s.sites.GetByID(ctx, tenantID, siteID); err != nil {
		return err
	}
	if _, err := s.machines.GetByID(ctx, tenantID, machineID); err != nil {
		return err
	}
	return s.machines.AssignToSite(ctx, tenantID, machineID, siteID)
}

func (s *siteService) RemoveMachine(ctx context.Context, tenantID, siteID, machineID uuid.UUID) error {
	return s.machines.RemoveFromSite(ctx, tenantID, machineID, siteID)
}

func (s *siteService) ListMachines(ctx context.Context, tenantID, siteID uuid.UUID) ([]domain.Machine, error) {
	if _, err := s.sites.GetByID(ctx, tenantID, siteID); err != nil {
		return nil, err
	}
	return s.machines.ListBySite(ctx, tenantID, siteID)
}
