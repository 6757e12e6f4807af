package service

import (
	"context"

	"github.com/google/uuid"

	"obrapass/internal/domain"
	"obrapass/internal/port"
)

// CreateWorkerInput is the DTO for registering a worker.
type CreateWorkerInput struct {
	CompanyID      uuid.UUID `json:"company_id" binding:"required"`
	NationalID     string    `json:"dni" binding:"required"`
	FirstName      string    `json:"nombre" binding:"required"`
	LastName       string    `json:"apellidos" binding:"required"`
	JobTitle       string    `json:"puesto"`
	SocialSecurity string    `json:"nss"`
	PRLLevel       string    `json:"nivel_prl"`
}

// UpdateWorkerInput is the DTO for updating a worker.
type UpdateWorkerInput struct {
	NationalID     *string `json:"dni"`
	FirstName      *string `json:"nombre"`
	LastName       *string `json:"apellidos"`
	JobTitle       *string `json:"puesto"`
	SocialSecurity *string `json:"nss"`
	PRLLevel       *string `json:"nivel_prl"`
}

// WorkerService defines the worker management contract.
type WorkerService interface {
	Create(ctx context.Context, tenantID uuid.UUID, input CreateWorkerInput) (*domain.Worker, error)
	GetByID(ctx context.Context, tenantID, workerID uuid.UUID) (*domain.Worker, error)
	ListByCompany(ctx context.Context, tenantID, companyID uuid.UUID, offset, limit int) ([]domain.Worker, int, error)
	Update(ctx context.Context, tenantID, workerID uuid.UUID, input UpdateWorkerInput) (*domain.Worker, error)
	Delete(ctx context.Context, tenantID, workerID uuid.UUID) error
}

type workerService struct {
	workers   port.WorkerRepository
	companies port.CompanyRepository
}

// NewWorkerService creates a new WorkerService implementation.
func NewWorkerService(workers port.WorkerRepository, companies port.CompanyRepository) WorkerService {
	return &workerService{workers: workers, companies: companies}
}

func (s *workerService) Create(ctx context.Context, tenantID uuid.UUID, input CreateWorkerInput) (*domain.Worker, error) {
	if _, err := s.companies.GetByID(ctx, tenantID, input.CompanyID); err != nil {
		return nil, err
	}

	worker := &domain.Worker{
		TenantID:       tenantID,
		CompanyID:      input.CompanyID,
		NationalID:     input.NationalID,
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		JobTitle:       input.JobTitle,
		SocialSecurity: input.SocialSecurity,
		PRLLevel:       input.PRLLevel,
	}
	if err := s.workers.Create(ctx, worker); err != nil {
		return nil, err
	}
	return worker, nil
}

func (s *workerService) GetByID(ctx context.Context, tenantID, workerID uuid.UUID) (*domain.Worker, error) {
	return s.workers.GetByID(ctx, tenantID, workerID)
}

func (s *workerService) ListByCompany(ctx context.Context, tenantID, companyID uuid.UUID, offset, limit int) ([]domain.Worker, int, error) {
	return s.workers.ListByCompany(ctx, tenantID, companyID, offset, limit)
}

func (s *workerService) Update(ctx context.Context, tenantID, workerID uuid.UUID, input UpdateWorkerInput) (*domain.Worker, error) {
	worker, err := s.workers.GetByID(ctx, tenantID, workerID)
	if err != nil {
		return nil, err
	}

	if input.NationalID != nil {
		worker.NationalID = *input.NationalID
	}
	if input.FirstName != nil {
		worker.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		worker.LastName = *input.LastName
	}
	if input.JobTitle != nil {
		worker.JobTitle = *input.JobTitle
	}
	if input.SocialSecurity != nil {
		worker.SocialSecurity = *input.SocialSecurity
	}
	if input.PRLLevel != nil {
		worker.PRLLevel = *input.PRLLevel
	}

	if err := s.workers.Update(ctx, worker); err != nil {
		return nil, err
	}
	return worker, nil
}

func (s *workerService) Delete(ctx context.Context, tenantID, workerID uuid.UUID) error {
	return s.workers.Delete(ctx, tenantID, workerID)
}
