package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"obrapass/internal/domain"
	"obrapass/internal/port"
)

type documentRepo struct {
	db *sqlx.DB
}

// NewDocumentRepo creates a new PostgreSQL-backed DocumentRepository.
func NewDocumentRepo(db *sqlx.DB) port.DocumentRepository {
	return &documentRepo{db: db}
}

func (r *documentRepo) Create(ctx context.Context, doc *domain.ComplianceDocument) error {
	if doc.ID == (uuid.UUID{}) {
		doc.ID = uuid.New()
	}
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now
	if doc.Status == "" {
		doc.Status = domain.ClassificationPending
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO compliance_documents (id, tenant_id, entity_type, entity_id, category,
			status, file_name, file_type, file_size, content_type, s3_bucket, s3_key,
			issued_at, expires_at, extraction, uploaded_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		doc.ID, doc.TenantID, doc.EntityType, doc.EntityID, doc.Category,
		doc.Status, doc.FileName, doc.FileType, doc.FileSize, doc.ContentType,
		doc.S3Bucket, doc.S3Key, doc.IssuedAt, doc.ExpiresAt, nullableJSON(doc.Extraction),
		doc.UploadedBy, doc.CreatedAt, doc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("documentRepo.Create: %w", err)
	}
	return nil
}

func (r *documentRepo) GetByID(ctx context.Context, tenantID, docID uuid.UUID) (*domain.ComplianceDocument, error) {
	var doc domain.ComplianceDocument
	err := r.db.GetContext(ctx, &doc,
		"SELECT * FROM compliance_documents WHERE id = $1 AND tenant_id = $2", docID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("documentRepo.GetByID: %w", err)
	}
	return &doc, nil
}

func (r *documentRepo) ListByEntity(ctx context.Context, tenantID uuid.UUID, entityType domain.EntityType, entityID uuid.UUID) ([]domain.ComplianceDocument, error) {
	var docs []domain.ComplianceDocument
	err := r.db.SelectContext(ctx, &docs,
		`SELECT * FROM compliance_documents
		 WHERE tenant_id = $1 AND entity_type = $2 AND entity_id = $3
		 ORDER BY created_at DESC`,
		tenantID, entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("documentRepo.ListByEntity: %w", err)
	}
	return docs, nil
}

func (r *documentRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.ComplianceDocument, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM compliance_documents WHERE tenant_id = $1", tenantID); err != nil {
		return nil, 0, fmt.Errorf("documentRepo.ListByTenant count: %w", err)
	}

	var docs []domain.ComplianceDocument
	err := r.db.SelectContext(ctx, &docs,
		`SELECT * FROM compliance_documents WHERE tenant_id = $1
		 ORDER BY created_at DESC OFFSET $2 LIMIT $3`,
		tenantID, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("documentRepo.ListByTenant: %w", err)
	}
	return docs, total, nil
}

func (r *documentRepo) ListExpiring(ctx context.Context, tenantID uuid.UUID, before time.Time) ([]domain.ComplianceDocument, error) {
	var docs []domain.ComplianceDocument
	err := r.db.SelectContext(ctx, &docs,
		`SELECT * FROM compliance_documents
		 WHERE tenant_id = $1 AND expires_at IS NOT NULL AND expires_at <= $2
		 ORDER BY expires_at`,
		tenantID, before)
	if err != nil {
		return nil, fmt.Errorf("documentRepo.ListExpiring: %w", err)
	}
	return docs, nil
}

func (r *documentRepo) UpdateClassification(ctx context.Context, tenantID, docID uuid.UUID, status domain.ClassificationStatus, category string, extraction json.RawMessage) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE compliance_documents
		 SET status = $1, category = $2, extraction = $3, updated_at = $4
		 WHERE id = $5 AND tenant_id = $6`,
		status, category, nullableJSON(extraction), time.Now().UTC(), docID, tenantID)
	if err != nil {
		return fmt.Errorf("documentRepo.UpdateClassification: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

func (r *documentRepo) Delete(ctx context.Context, tenantID, docID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM compliance_documents WHERE id = $1 AND tenant_id = $2", docID, tenantID)
	if err != nil {
		return fmt.Errorf("documentRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

// nullableJSON turns an empty RawMessage into SQL NULL so jsonb columns never
// receive a zero-length value, which Postgres rejects.
func nullableJSON(raw json.RawMessage) interface{} {
	if len(raw) == 0 {
		return nil
	}
	return []byte(raw)
}
