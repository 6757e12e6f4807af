package port

import (
	"context"

	"github.com/google/uuid"

	"obrapass/internal/domain"
)

// CompanyRepository defines the contract for subcontractor company persistence.
type CompanyRepository interface {
	Create(ctx context.Context, company *domain.Company) error
	GetByID(ctx context.Context, tenantID, companyID uuid.UUID) (*domain.Company, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Company, int, error)
	Update(ctx context.Context, company *domain.Company) error
	Delete(ctx context.Context, tenantID, companyID uuid.UUID) error
}

// SiteRepository defines the contract for construction site persistence.
type SiteRepository interface {
	Create(ctx context.Context, site *domain.Site) error
	GetByID(ctx context.Context, tenantID, siteID uuid.UUID) (*domain.Site, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Site, int, error)
	ListByCompany(ctx context.Context, tenantID, companyID uuid.UUID) ([]domain.Site, error)
	Update(ctx context.Context, site *domain.Site) error
	Delete(ctx context.Context, tenantID, siteID uuid.UUID) error
}

// WorkerRepository defines the contract for worker persistence, including
// site assignments.
type WorkerRepository interface {
	Create(ctx context.Context, worker *domain.Worker) error
	GetByID(ctx context.Context, tenantID, workerID uuid.UUID) (*domain.Worker, error)
	ListByCompany(ctx context.Context, tenantID, companyID uuid.UUID, offset, limit int) ([]domain.Worker, int, error)
	ListBySite(ctx context.Context, tenantID, siteID uuid.UUID) ([]domain.Worker, error)
	AssignToSite(ctx context.Context, tenantID, workerID, siteID uuid.UUID) error
	RemoveFromSite(ctx context.Context, tenantID, workerID, siteID uuid.UUID) error
	Update(ctx context.Context, worker *domain.Worker) error
	Delete(ctx context.Context, tenantID, workerID uuid.UUID) error
}

// MachineRepository defines the contract for machine persistence, including
// site assignments.
type MachineRepository interface {
	Create(ctx context.Context, machine *domain.Machine) error
	GetByID(ctx context.Context, tenantID, machineID uuid.UUID) (*domain.Machine, error)
	ListByCompany(ctx context.Context, tenantID, companyID uuid.UUID, offset, limit int) ([]domain.Machine, int, error)
	ListBySite(ctx context.Context, tenantID, siteID uuid.UUID) ([]domain.Machine, error)
	AssignToSite(ctx context.Context, tenantID, machineID, siteID uuid.UUID) error
	RemoveFromSite(ctx context.Context, tenantID, machineID, siteID uuid.UUID) error
	Update(ctx context.Context, machine *domain.Machine) error
	Delete(ctx context.Context, tenantID, machineID uuid.UUID) error
}
