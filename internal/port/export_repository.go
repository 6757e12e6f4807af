package port

import (
	"context"

	"github.com/google/uuid"

	"obrapass/internal/domain"
)

// ExportJobRepository defines the contract for export job persistence.
type ExportJobRepository interface {
	Create(ctx context.Context, job *domain.ExportJob) error
	GetByID(ctx context.Context, tenantID, jobID uuid.UUID) (*domain.ExportJob, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.ExportJob, int, error)
	// ClaimQueued atomically marks up to limit queued jobs as running and
	// returns them, so concurrent workers never pick up the same job.
	ClaimQueued(ctx context.Context, limit int) ([]domain.ExportJob, error)
	Update(ctx context.Context, job *domain.ExportJob) error
}
