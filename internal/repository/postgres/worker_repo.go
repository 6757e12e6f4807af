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

type workerRepo struct {
	db *sqlx.DB
}

// NewWorkerRepo creates a new PostgreSQL-backed WorkerRepository.
func NewWorkerRepo(db *sqlx.DB) port.WorkerRepository {
	return &workerRepo{db: db}
}

func (r *workerRepo) Create(ctx context.Context, worker *domain.Worker) error {
	if worker.ID == (uuid.UUID{}) {
		worker.ID = uuid.New()
	}
	now := time.Now().UTC()
	worker.CreatedAt = now
	worker.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO workers (id, tenant_id, company_id, national_id, first_name, last_name,
			job_title, social_security, prl_level, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		worker.ID, worker.TenantID, worker.CompanyID, worker.NationalID, worker.FirstName,
		worker.LastName, worker.JobTitle, worker.SocialSecurity, worker.PRLLevel,
		worker.CreatedAt, worker.UpdatedAt)
	if err != nil {
		return fmt.Errorf("workerRepo.Create: %w", err)
	}
	return nil
}

func (r *workerRepo) GetByID(ctx context.Context, tenantID, workerID uuid.UUID) (*domain.Worker, error) {
	var worker domain.Worker
	err := r.db.GetContext(ctx, &worker,
		"SELECT * FROM workers WHERE id = $1 AND tenant_id = $2", workerID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrWorkerNotFound
		}
		return nil, fmt.Errorf("workerRepo.GetByID: %w", err)
	}
	return &worker, nil
}

func (r *workerRepo) ListByCompany(ctx context.Context, tenantID, companyID uuid.UUID, offset, limit int) ([]domain.Worker, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM workers WHERE tenant_id = $1 AND company_id = $2",
		tenantID, companyID); err != nil {
		return nil, 0, fmt.Errorf("workerRepo.ListByCompany count: %w", err)
	}

	var workers []domain.Worker
	err := r.db.SelectContext(ctx, &workers,
		`SELECT * FROM workers WHERE tenant_id = $1 AND company_id = $2
		 ORDER BY last_name, first_name OFFSET $3 LIMIT $4`,
		tenantID, companyID, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("workerRepo.ListByCompany: %w", err)
	}
	return workers, total, nil
}

func (r *workerRepo) ListBySite(ctx context.Context, tenantID, siteID uuid.UUID) ([]domain.Worker, error) {
	var workers []domain.Worker
	err := r.db.SelectContext(ctx, &workers,
		`SELECT w.* FROM workers w
		 JOIN site_workers sw ON sw.worker_id = w.id AND sw.tenant_id = w.tenant_id
		 WHERE w.tenant_id = $1 AND sw.site_id = $2
		 ORDER BY sw.assigned_at`,
		tenantID, siteID)
	if err != nil {
		return nil, fmt.Errorf("workerRepo.ListBySite: %w", err)
	}
	return workers, nil
}

func (r *workerRepo) AssignToSite(ctx context.Context, tenantID, workerID, siteID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO site_workers (tenant_id, site_id, worker_id, assigned_at)
		 VALUES ($1, $2, $3, $4)`,
		tenantID, siteID, workerID, time.Now().UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateAssignment
		}
		return fmt.Errorf("workerRepo.AssignToSite: %w", err)
	}
	return nil
}

func (r *workerRepo) RemoveFromSite(ctx context.Context, tenantID, workerID, siteID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM site_workers WHERE tenant_id = $1 AND site_id = $2 AND worker_id = $3",
		tenantID, siteID, workerID)
	if err != nil {
		return fmt.Errorf("workerRepo.RemoveFromSite: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrWorkerNotFound
	}
	return nil
}

func (r *workerRepo) Update(ctx context.Context, worker *domain.Worker) error {
	worker.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE workers SET national_id = $1, first_name = $2, last_name = $3, job_title = $4,
			social_security = $5, prl_level = $6, updated_at = $7
		 WHERE id = $8 AND tenant_id = $9`,
		worker.NationalID, worker.FirstName, worker.LastName, worker.JobTitle,
		worker.SocialSecurity, worker.PRLLevel, worker.UpdatedAt, worker.ID, worker.TenantID)
	if err != nil {
		return fmt.Errorf("workerRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrWorkerNotFound
	}
	return nil
}

func (r *workerRepo) Delete(ctx context.Context, tenantID, workerID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM workers WHERE id = $1 AND tenant_id = $2", workerID, tenantID)
	if err != nil {
		return fmt.Errorf("workerRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrWorkerNotFound
	}
	return nil
}
