package service

import (
	"context"

	"github.com/google/uuid"

	"obrapass/internal/domain"
	"obrapass/internal/port"
)

// CreateCompanyInput is the DTO for registering a subcontractor company.
type CreateCompanyInput struct {
	Name         string `json:"name" binding:"required"`
	TaxID        string `json:"cif" binding:"required"`
	Address      string `json:"address"`
	ContactEmail string `json:"contact_email" binding:"omitempty,email"`
	Phone        string `json:"phone"`
}

// UpdateCompanyInput is the DTO for updating a company.
type UpdateCompanyInput struct {
	Name         *string `json:"name"`
	TaxID        *string `json:"cif"`
	Address      *string `json:"address"`
	ContactEmail *string `json:"contact_email"`
	Phone        *string `json:"phone"`
}

// CompanyService defines the subcontractor company management contract.
type CompanyService interface {
	Create(ctx context.Context, tenantID uuid.UUID, input CreateCompanyInput) (*domain.Company, error)
	GetByID(ctx context.Context, tenantID, companyID uuid.UUID) (*domain.Company, error)
	List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Company, int, error)
	Update(ctx context.Context, tenantID, companyID uuid.UUID, input UpdateCompanyInput) (*domain.Company, error)
	Delete(ctx context.Context, tenantID, companyID uuid.UUID) error
}

type companyService struct {
	repo port.CompanyRepository
}

// NewCompanyService creates a new CompanyService implementation.
func NewCompanyService(repo port.CompanyRepository) CompanyService {
	return &companyService{repo: repo}
}

func (s *companyService) Create(ctx context.Context, tenantID uuid.UUID, input CreateCompanyInput) (*domain.Company, error) {
	company := &domain.Company{
		TenantID:     tenantID,
		Name:         input.Name,
		TaxID:        input.TaxID,
		Address:      input.Address,
		ContactEmail: input.ContactEmail,
		Phone:        input.Phone,
	}
	if err := s.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

func (s *companyService) GetByID(ctx context.Context, tenantID, companyID uuid.UUID) (*domain.Company, error) {
	return s.repo.GetByID(ctx, tenantID, companyID)
}

func (s *companyService) List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Company, int, error) {
	return s.repo.ListByTenant(ctx, tenantID, offset, limit)
}

func (s *companyService) Update(ctx context.Context, tenantID, companyID uuid.UUID, input UpdateCompanyInput) (*domain.Company, error) {
	company, err := s.repo.GetByID(ctx, tenantID, companyID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		company.Name = *input.Name
	}
	if input.TaxID != nil {
		company.TaxID = *input.TaxID
	}
	if input.Address != nil {
		company.Address = *input.Address
	}
	if input.ContactEmail != nil {
		company.ContactEmail = *input.ContactEmail
	}
	if input.Phone != nil {
		company.Phone = *input.Phone
	}

	if err := s.repo.Update(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

func (s *companyService) Delete(ctx context.Context, tenantID, companyID uuid.UUID) error {
	return s.repo.Delete(ctx, tenantID, companyID)
}
