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

type mappingTemplateRepo struct {
	db *sqlx.DB
}

// NewMappingTemplateRepo creates a new PostgreSQL-backed MappingTemplateRepository.
func NewMappingTemplateRepo(db *sqlx.DB) port.MappingTemplateRepository {
	return &mappingTemplateRepo{db: db}
}

// Create inserts the template as the next version for its (tenant, platform)
// pair. The version is assigned inside a transaction so concurrent creates
// never produce duplicate versions; the unique index on (tenant_id, platform,
// version) backstops the race.
func (r *mappingTemplateRepo) Create(ctx context.Context, tpl *domain.MappingTemplate) error {
	if tpl.ID == (uuid.UUID{}) {
		tpl.ID = uuid.New()
	}
	tpl.CreatedAt = time.Now().UTC()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("mappingTemplateRepo.Create begin: %w", err)
	}
	defer tx.Rollback()

	if err := tx.GetContext(ctx, &tpl.Version,
		`SELECT COALESCE(MAX(version), 0) + 1 FROM mapping_templates
		 WHERE tenant_id = $1 AND platform = $2`,
		tpl.TenantID, tpl.Platform); err != nil {
		return fmt.Errorf("mappingTemplateRepo.Create next version: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO mapping_templates (id, tenant_id, platform, version, target_schema,
			rules, created_by, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		tpl.ID, tpl.TenantID, tpl.Platform, tpl.Version, nullableJSON(tpl.TargetSchema),
		tpl.Rules, tpl.CreatedBy, tpl.CreatedAt)
	if err != nil {
		return fmt.Errorf("mappingTemplateRepo.Create: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("mappingTemplateRepo.Create commit: %w", err)
	}
	return nil
}

func (r *mappingTemplateRepo) GetLatest(ctx context.Context, tenantID uuid.UUID, platform domain.Platform) (*domain.MappingTemplate, error) {
	var tpl domain.MappingTemplate
	err := r.db.GetContext(ctx, &tpl,
		`SELECT * FROM mapping_templates WHERE tenant_id = $1 AND platform = $2
		 ORDER BY version DESC LIMIT 1`,
		tenantID, platform)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTemplateNotFound
		}
		return nil, fmt.Errorf("mappingTemplateRepo.GetLatest: %w", err)
	}
	return &tpl, nil
}

func (r *mappingTemplateRepo) GetVersion(ctx context.Context, tenantID uuid.UUID, platform domain.Platform, version int) (*domain.MappingTemplate, error) {
	var tpl domain.MappingTemplate
	err := r.db.GetContext(ctx, &tpl,
		`SELECT * FROM mapping_templates
		 WHERE tenant_id = $1 AND platform = $2 AND version = $3`,
		tenantID, platform, version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTemplateNotFound
		}
		return nil, fmt.Errorf("mappingTemplateRepo.GetVersion: %w", err)
	}
	return &tpl, nil
}

func (r *mappingTemplateRepo) ListVersions(ctx context.Context, tenantID uuid.UUID, platform domain.Platform) ([]domain.MappingTemplate, error) {
	var tpls []domain.MappingTemplate
	err := r.db.SelectContext(ctx, &tpls,
		`SELECT * FROM mapping_templates WHERE tenant_id = $1 AND platform = $2
		 ORDER BY version DESC`,
		tenantID, platform)
	if err != nil {
		return nil, fmt.Errorf("mappingTemplateRepo.ListVersions: %w", err)
	}
	return tpls, nil
}
