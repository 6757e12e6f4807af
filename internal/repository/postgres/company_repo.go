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

type companyRepo struct {
	db *sqlx.DB
}

// NewCompanyRepo creates a new PostgreSQL-backed CompanyRepository.
func NewCompanyRepo(db *sqlx.DB) port.CompanyRepository {
	return &companyRepo{db: db}
}

func (r *companyRepo) Create(ctx context.Context, company *domain.Company) error {
	if company.ID == (uuid.UUID{}) {
		company.ID = uuid.New()
	}
	now := time.Now().UTC()
	company.CreatedAt = now
	company.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO companies (id, tenant_id, name, tax_id, address, contact_email, phone, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		company.ID, company.TenantID, company.Name, company.TaxID, company.Address,
		company.ContactEmail, company.Phone, company.CreatedAt, company.UpdatedAt)
	if err != nil {
		return fmt.Errorf("companyRepo.Create: %w", err)
	}
	return nil
}

func (r *companyRepo) GetByID(ctx context.Context, tenantID, companyID uuid.UUID) (*domain.Company, error) {
	var company domain.Company
	err := r.db.GetContext(ctx, &company,
		"SELECT * FROM companies WHERE id = $1 AND tenant_id = $2", companyID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("companyRepo.GetByID: %w", err)
	}
	return &company, nil
}

func (r *companyRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Company, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM companies WHERE tenant_id = $1", tenantID); err != nil {
		return nil, 0, fmt.Errorf("companyRepo.ListByTenant count: %w", err)
	}

	var companies []domain.Company
	err := r.db.SelectContext(ctx, &companies,
		"SELECT * FROM companies WHERE tenant_id = $1 ORDER BY name OFFSET $2 LIMIT $3",
		tenantID, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("companyRepo.ListByTenant: %w", err)
	}
	return companies, total, nil
}

func (r *companyRepo) Update(ctx context.Context, company *domain.Company) error {
	company.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE companies SET name = $1, tax_id = $2, address = $3, contact_email = $4,
			phone = $5, updated_at = $6
		 WHERE id = $7 AND tenant_id = $8`,
		company.Name, company.TaxID, company.Address, company.ContactEmail,
		company.Phone, company.UpdatedAt, company.ID, company.TenantID)
	if err != nil {
		return fmt.Errorf("companyRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrCompanyNotFound
	}
	return nil
}

func (r *companyRepo) Delete(ctx context.Context, tenantID, companyID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM companies WHERE id = $1 AND tenant_id = $2", companyID, tenantID)
	if err != nil {
		return fmt.Errorf("companyRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrCompanyNotFound
	}
	return nil
}
