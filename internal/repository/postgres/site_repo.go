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

type siteRepo struct {
	db *sqlx.DB
}

// NewSiteRepo creates a new PostgreSQL-backed SiteRepository.
func NewSiteRepo(db *sqlx.DB) port.SiteRepository {
	return &siteRepo{db: db}
}

func (r *siteRepo) Create(ctx context.Context, site *domain.Site) error {
	if site.ID == (uuid.UUID{}) {
		site.ID = uuid.New()
	}
	now := time.Now().UTC()
	site.CreatedAt = now
	site.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sites (id, tenant_id, company_id, name, code, address, risk_profile,
			start_date, end_date, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		site.ID, site.TenantID, site.CompanyID, site.Name, site.Code, site.Address,
		site.RiskProfile, site.StartDate, site.EndDate, site.CreatedAt, site.UpdatedAt)
	if err != nil {
		return fmt.Errorf("siteRepo.Create: %w", err)
	}
	return nil
}

func (r *siteRepo) GetByID(ctx context.Context, tenantID, siteID uuid.UUID) (*domain.Site, error) {
	var site domain.Site
	err := r.db.GetContext(ctx, &site,
		"SELECT * FROM sites WHERE id = $1 AND tenant_id = $2", siteID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSiteNotFound
		}
		return nil, fmt.Errorf("siteRepo.GetByID: %w", err)
	}
	return &site, nil
}

func (r *siteRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Site, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM sites WHERE tenant_id = $1", tenantID); err != nil {
		return nil, 0, fmt.Errorf("siteRepo.ListByTenant count: %w", err)
	}

	var sites []domain.Site
	err := r.db.SelectContext(ctx, &sites,
		"SELECT * FROM sites WHERE tenant_id = $1 ORDER BY name OFFSET $2 LIMIT $3",
		tenantID, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("siteRepo.ListByTenant: %w", err)
	}
	return sites, total, nil
}

func (r *siteRepo) ListByCompany(ctx context.Context, tenantID, companyID uuid.UUID) ([]domain.Site, error) {
	var sites []domain.Site
	err := r.db.SelectContext(ctx, &sites,
		"SELECT * FROM sites WHERE tenant_id = $1 AND company_id = $2 ORDER BY name",
		tenantID, companyID)
	if err != nil {
		return nil, fmt.Errorf("siteRepo.ListByCompany: %w", err)
	}
	return sites, nil
}

func (r *siteRepo) Update(ctx context.Context, site *domain.Site) error {
	site.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE sites SET name = $1, code = $2, address = $3, risk_profile = $4,
			start_date = $5, end_date = $6, updated_at = $7
		 WHERE id = $8 AND tenant_id = $9`,
		site.Name, site.Code, site.Address, site.RiskProfile,
		site.StartDate, site.EndDate, site.UpdatedAt, site.ID, site.TenantID)
	if err != nil {
		return fmt.Errorf("siteRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrSiteNotFound
	}
	return nil
}

func (r *siteRepo) Delete(ctx context.Context, tenantID, siteID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM sites WHERE id = $1 AND tenant_id = $2", siteID, tenantID)
	if err != nil {
		return fmt.Errorf("siteRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrSiteNotFound
	}
	return nil
}
