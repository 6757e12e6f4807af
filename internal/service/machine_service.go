package service

import (
	"context"

	"github.com/google/uuid"

	"obrapass/internal/domain"
	"obrapass/internal/port"
)

// CreateMachineInput is the DTO for registering a machine.
type CreateMachineInput struct {
	CompanyID    uuid.UUID `json:"company_id" binding:"required"`
	SerialNumber string    `json:"numero_serie" binding:"required"`
	Make         string    `json:"marca"`
	Model        string    `json:"modelo"`
	MachineType  string    `json:"tipo"`
	Plate        string    `json:"matricula"`
}

// UpdateMachineInput is the DTO for updating a machine.
type UpdateMachineInput struct {
	SerialNumber *string `json:"numero_serie"`
	Make         *string `json:"marca"`
	Model        *string `json:"modelo"`
	MachineType  *string `json:"tipo"`
	Plate        *string `json:"matricula"`
}

// MachineService defines the machine management contract.
type MachineService interface {
	Create(ctx context.Context, tenantID uuid.UUID, input CreateMachineInput) (*domain.Machine, error)
	GetByID(ctx context.Context, tenantID, machineID uuid.UUID) (*domain.Machine, error)
	ListByCompany(ctx context.Context, tenantID, companyID uuid.UUID, offset, limit int) ([]domain.Machine, int, error)
	Update(ctx context.Context, tenantID, machineID uuid.UUID, input UpdateMachineInput) (*domain.Machine, error)
	Delete(ctx context.Context, tenantID, machineID uuid.UUID) error
}

type machineService struct {
	machines  port.MachineRepository
	companies port.CompanyRepository
}

// NewMachineService creates a new MachineService implementation.
func NewMachineService(machines port.MachineRepository, companies port.CompanyRepository) MachineService {
	return &machineService{machines: machines, companies: companies}
}

func (s *machineService) Create(ctx context.Context, tenantID uuid.UUID, input CreateMachineInput) (*domain.Machine, error) {
	if _, err := s.companies.GetByID(ctx, tenantID, input.CompanyID); err != nil {
		return nil, err
	}

	machine := &domain.Machine{
		TenantID:     tenantID,
		CompanyID:    input.CompanyID,
		SerialNumber: input.SerialNumber,
		Make:         input.Make,
		Model:        input.Model,
		MachineType:  input.MachineType,
		Plate:        input.Plate,
	}
	if err := s.machines.Create(ctx, machine); err != nil {
		return nil, err
	}
	return machine, nil
}

func (s *machineService) GetByID(ctx context.Context, tenantID, machineID uuid.UUID) (*domain.Machine, error) {
	return s.machines.GetByID(ctx, tenantID, machineID)
}

func (s *machineService) ListByCompany(ctx context.Context, tenantID, companyID uuid.UUID, offset, limit int) ([]domain.Machine, int, error) {
	return s.machines.ListByCompany(ctx, tenantID, companyID, offset, limit)
}

func (s *machineService) Update(ctx context.Context, tenantID, machineID uuid.UUID, input UpdateMachineInput) (*domain.Machine, error) {
	machine, err := s.machines.GetByID(ctx, tenantID, machineID)
	if err != nil {
		return nil, err
	}

	if input.SerialNumber != nil {
		machine.SerialNumber = *input.SerialNumber
	}
	if input.Make != nil {
		machine.Make = *input.Make
	}
	if input.Model != nil {
		machine.Model = *input.Model
	}
	if input.MachineType != nil {
		machine.MachineType = *input.MachineType
	}
	if input.Plate != nil {
		machine.Plate = *input.Plate
	}

	if err := s.machines.Update(ctx, machine); err != nil {
		return nil, err
	}
	return machine, nil
}

func (s *machineService) Delete(ctx context.Context, tenantID, machineID uuid.UUID) error {
	return s.machines.Delete(ctx, tenantID, machineID)
}
