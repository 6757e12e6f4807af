package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"obrapass/internal/domain"
	"obrapass/internal/port"
)

type machineRepo struct {
	db *sqlx.DB
}

// NewMachineRepo creates a new PostgreSQL-backed MachineRepository.
func NewMachineRepo(db *sqlx.DB) port.MachineRepository {
	return &machineRepo{db: db}
}

func (r *machineRepo) Create(ctx context.Context, machine *domain.Machine) error {
	if machine.ID == (uuid.UUID{}) {
		machine.ID = uuid.New()
	}
	now := time.Now().UTC()
	machine.CreatedAt = now
	machine.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO machines (id, tenant_id, company_id, serial_number, make, model,
			machine_type, plate, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		machine.ID, machine.TenantID, machine.CompanyID, machine.SerialNumber, machine.Make,
		machine.Model, machine.MachineType, machine.Plate, machine.CreatedAt, machine.UpdatedAt)
	if err != nil {
		return fmt.Errorf("machineRepo.Create: %w", err)
	}
	return nil
}

func (r *machineRepo) GetByID(ctx context.Context, tenantID, machineID uuid.UUID) (*domain.Machine, error) {
	var machine domain.Machine
	err := r.db.GetContext(ctx, &machine,
		"SELECT * FROM machines WHERE id = $1 AND tenant_id = $2", machineID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMachineNotFound
		}
		return nil, fmt.Errorf("machineRepo.GetByID: %w", err)
	}
	return &machine, nil
}

func (r *machineRepo) ListByCompany(ctx context.Context, tenantID, companyID uuid.UUID, offset, limit int) ([]domain.Machine, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM machines WHERE tenant_id = $1 AND company_id = $2",
		tenantID, companyID); err != nil {
		return nil, 0, fmt.Errorf("machineRepo.ListByCompany count: %w", err)
	}

	var machines []domain.Machine
	err := r.db.SelectContext(ctx, &machines,
		`SELECT * FROM machines WHERE tenant_id = $1 AND company_id = $2
		 ORDER BY serial_number OFFSET $3 LIMIT $4`,
		tenantID, companyID, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("machineRepo.ListByCompany: %w", err)
	}
	return machines, total, nil
}

func (r *machineRepo) ListBySite(ctx context.Context, tenantID, siteID uuid.UUID) ([]domain.Machine, error) {
	var machines []domain.Machine
	err := r.db.SelectContext(ctx, &machines,
		`SELECT m.* FROM machines m
		 JOIN site_machines sm ON sm.machine_id = m.id AND sm.tenant_id = m.tenant_id
		 WHERE m.tenant_id = $1 AND sm.site_id = $2
		 ORDER BY sm.assigned_at`,
		tenantID, siteID)
	if err != nil {
		return nil, fmt.Errorf("machineRepo.ListBySite: %w", err)
	}
	return machines, nil
}

func (r *machineRepo) AssignToSite(ctx context.Context, tenantID, machineID, siteID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO site_machines (tenant_id, site_id, machine_id, assigned_at)
		 VALUES ($1, $2, $3, $4)`,
		tenantID, siteID, machineID, time.Now().UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateAssignment
		}
		return fmt.Errorf("machineRepo.AssignToSite: %w", err)
	}
	return nil
}

func (r *machineRepo) RemoveFromSite(ctx context.Context, tenantID, machineID, siteID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM site_machines WHERE tenant_id = $1 AND site_id = $2 AND machine_id = $3",
		tenantID, siteID, machineID)
	if err != nil {
		return fmt.Errorf("machineRepo.RemoveFromSite: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrMachineNotFound
	}
	return nil
}

func (r *machineRepo) Update(ctx context.Context, machine *domain.Machine) error {
	machine.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE machines SET serial_number = $1, make = $2, model = $3, machine_type = $4,
			plate = $5, updated_at = $6
		 WHERE id = $7 AND tenant_id = $8`,
		machine.SerialNumber, machine.Make, machine.Model, machine.MachineType,
		machine.Plate, machine.UpdatedAt, machine.ID, machine.TenantID)
	if err != nil {
		return fmt.Errorf("machineRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrMachineNotFound
	}
	return nil
}

func (r *machineRepo) Delete(ctx context.Context, tenantID, machineID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM machines WHERE id = $1 AND tenant_id = $2", machineID, tenantID)
	if err != nil {
		return fmt.Errorf("machineRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrMachineNotFound
	}
	return nil
}
