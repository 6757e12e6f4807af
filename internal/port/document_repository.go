package port

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"obrapass/internal/domain"
)

// DocumentRepository defines the contract for compliance document persistence.
// All query methods include tenantID for tenant isolation.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.ComplianceDocument) error
	GetByID(ctx context.Context, tenantID, docID uuid.UUID) (*domain.ComplianceDocument, error)
	ListByEntity(ctx context.Context, tenantID uuid.UUID, entityType domain.EntityType, entityID uuid.UUID) ([]domain.ComplianceDocument, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.ComplianceDocument, int, error)
	ListExpiring(ctx context.Context, tenantID uuid.UUID, before time.Time) ([]domain.ComplianceDocument, error)
	UpdateClassification(ctx context.Context, tenantID, docID uuid.UUID, status domain.ClassificationStatus, category string, extraction json.RawMessage) error
	Delete(ctx context.Context, tenantID, docID uuid.UUID) error
}
