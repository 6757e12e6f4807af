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

type exportJobRepo struct {
	db *sqlx.DB
}

// NewExportJobRepo creates a new PostgreSQL-backed ExportJobRepository.
func NewExportJobRepo(db *sqlx.DB) port.ExportJobRepository {
	return &exportJobRepo{db: db}
}

func (r *exportJobRepo) Create(ctx context.Context, job *domain.ExportJob) error {
	if job.ID == (uuid.UUID{}) {
		job.ID = uuid.New()
	}
	now := time.Now().UTC()
	job.CreatedAt = now
	job.UpdatedAt = now
	if job.Status == "" {
		job.Status = domain.ExportStatusQueued
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO export_jobs (id, tenant_id, platform, site_id, template_version,
			status, payload, error_message, attempts, requested_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		job.ID, job.TenantID, job.Platform, job.SiteID, job.TemplateVersion,
		job.Status, nullableJSON(job.Payload), job.ErrorMessage, job.Attempts,
		job.RequestedBy, job.CreatedAt, job.UpdatedAt)
	if err != nil {
		return fmt.Errorf("exportJobRepo.Create: %w", err)
	}
	return nil
}

func (r *exportJobRepo) GetByID(ctx context.Context, tenantID, jobID uuid.UUID) (*domain.ExportJob, error) {
	var job domain.ExportJob
	err := r.db.GetContext(ctx, &job,
		"SELECT * FROM export_jobs WHERE id = $1 AND tenant_id = $2", jobID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrExportJobNotFound
		}
		return nil, fmt.Errorf("exportJobRepo.GetByID: %w", err)
	}
	return &job, nil
}

func (r *exportJobRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.ExportJob, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM export_jobs WHERE tenant_id = $1", tenantID); err != nil {
		return nil, 0, fmt.Errorf("exportJobRepo.ListByTenant count: %w", err)
	}

	var jobs []domain.ExportJob
	err := r.db.SelectContext(ctx, &jobs,
		`SELECT * FROM export_jobs WHERE tenant_id = $1
		 ORDER BY created_at DESC OFFSET $2 LIMIT $3`,
		tenantID, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("exportJobRepo.ListByTenant: %w", err)
	}
	return jobs, total, nil
}

// ClaimQueued flips up to limit queued jobs to running and returns them.
// SKIP LOCKED keeps concurrent workers from claiming the same row.
func (r *exportJobRepo) ClaimQueued(ctx context.Context, limit int) ([]domain.ExportJob, error) {
	var jobs []domain.ExportJob
	err := r.db.SelectContext(ctx, &jobs,
		`UPDATE export_jobs SET status = $1, attempts = attempts + 1, updated_at = $2
		 WHERE id IN (
			SELECT id FROM export_jobs WHERE status = $3
			ORDER BY created_at
			LIMIT $4
			FOR UPDATE SKIP LOCKED
		 )
		 RETURNING *`,
		domain.ExportStatusRunning, time.Now().UTC(), domain.ExportStatusQueued, limit)
	if err != nil {
		return nil, fmt.Errorf("exportJobRepo.ClaimQueued: %w", err)
	}
	return jobs, nil
}

func (r *exportJobRepo) Update(ctx context.Context, job *domain.ExportJob) error {
	job.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE export_jobs SET status = $1, payload = $2, error_message = $3,
			attempts = $4, completed_at = $5, updated_at = $6
		 WHERE id = $7 AND tenant_id = $8`,
		job.Status, nullableJSON(job.Payload), job.ErrorMessage, job.Attempts,
		job.CompletedAt, job.UpdatedAt, job.ID, job.TenantID)
	if err != nil {
		return fmt.Errorf("exportJobRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrExportJobNotFound
	}
	return nil
}
