package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"obrapass/internal/config"
	"obrapass/internal/domain"
	"obrapass/internal/port"
)

// UploadDocumentInput is the DTO for uploading a compliance document.
type UploadDocumentInput struct {
	TenantID   uuid.UUID
	UploadedBy uuid.UUID
	EntityType domain.EntityType
	EntityID   uuid.UUID
	Category   string
	IssuedAt   *time.Time
	ExpiresAt  *time.Time
	File       multipart.File
	Header     *multipart.FileHeader
}

// DocumentService defines the compliance document management contract.
type DocumentService interface {
	Upload(ctx context.Context, input UploadDocumentInput) (*domain.ComplianceDocument, error)
	GetByID(ctx context.Context, tenantID, docID uuid.UUID) (*domain.ComplianceDocument, error)
	ListByEntity(ctx context.Context, tenantID uuid.UUID, entityType domain.EntityType, entityID uuid.UUID) ([]domain.ComplianceDocument, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.ComplianceDocument, int, error)
	GetDownloadURL(ctx context.Context, tenantID, docID uuid.UUID) (string, error)
	RetryClassification(ctx context.Context, tenantID, docID uuid.UUID) (*domain.ComplianceDocument, error)
	Delete(ctx context.Context, tenantID, docID uuid.UUID) error
}

type documentService struct {
	docs       port.DocumentRepository
	workers    port.WorkerRepository
	machines   port.MachineRepository
	sites      port.SiteRepository
	companies  port.CompanyRepository
	storage    port.ObjectStorage
	classifier port.DocumentClassifier
	cfg        *config.S3Config
}

// NewDocumentService creates a new DocumentService implementation.
func NewDocumentService(
	docs port.DocumentRepository,
	workers port.WorkerRepository,
	machines port.MachineRepository,
	sites port.SiteRepository,
	companies port.CompanyRepository,
	storage port.ObjectStorage,
	classifier port.DocumentClassifier,
	cfg *config.S3Config,
) DocumentService {
	return &documentService{
		docs:       docs,
		workers:    workers,
		machines:   machines,
		sites:      sites,
		companies:  companies,
		storage:    storage,
		classifier: classifier,
		cfg:        cfg,
	}
}

// entityExists verifies the referenced entity is present in the tenant.
// Documents hold weak references, but uploads against a missing entity are
// almost always a caller bug, so they are rejected up front.
func (s *documentService) entityExists(ctx context.Context, tenantID uuid.UUID, entityType domain.EntityType, entityID uuid.UUID) error {
	switch entityType {
	case domain.EntityWorker:
		_, err := s.workers.GetByID(ctx, tenantID, entityID)
		return err
	case domain.EntityMachine:
		_, err := s.machines.GetByID(ctx, tenantID, entityID)
		return err
	case domain.EntitySite:
		_, err := s.sites.GetByID(ctx, tenantID, entityID)
		return err
	case domain.EntityCompany:
		_, err := s.companies.GetByID(ctx, tenantID, entityID)
		return err
	default:
		return domain.ErrInvalidEntityType
	}
}

func (s *documentService) Upload(ctx context.Context, input UploadDocumentInput) (*domain.ComplianceDocument, error) {
	if !domain.AllowedEntityTypes[input.EntityType] {
		return nil, domain.ErrInvalidEntityType
	}
	if err := s.entityExists(ctx, input.TenantID, input.EntityType, input.EntityID); err != nil {
		return nil, err
	}

	// Validate file extension
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Header.Filename), "."))
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	// Validate file size
	maxBytes := s.cfg.MaxFileSizeMB * 1024 * 1024
	if input.Header.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	// Read first 512 bytes for magic-byte content type detection
	buf := make([]byte, 512)
	n, err := input.File.Read(buf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading file header: %w", err)
	}
	detectedType := http.DetectContentType(buf[:n])
	if _, validContent := domain.AllowedContentTypes[detectedType]; !validContent {
		return nil, domain.ErrUnsupportedFileType
	}

	// Seek back to beginning for upload
	if _, err := input.File.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking file: %w", err)
	}

	docID := uuid.New()
	s3Key := fmt.Sprintf("tenants/%s/documents/%s/%s", input.TenantID, docID, input.Header.Filename)

	doc := &domain.ComplianceDocument{
		ID:          docID,
		TenantID:    input.TenantID,
		EntityType:  input.EntityType,
		EntityID:    input.EntityID,
		Category:    input.Category,
		Status:      domain.ClassificationPending,
		FileName:    input.Header.Filename,
		FileType:    fileType,
		FileSize:    input.Header.Size,
		ContentType: detectedType,
		S3Bucket:    s.cfg.Bucket,
		S3Key:       s3Key,
		IssuedAt:    input.IssuedAt,
		ExpiresAt:   input.ExpiresAt,
		UploadedBy:  input.UploadedBy,
	}

	log.Printf("documentService.Upload: uploading %s (%s, %d bytes) for %s/%s (tenant %s)",
		input.Header.Filename, detectedType, input.Header.Size, input.EntityType, input.EntityID, input.TenantID)

	if err := s.docs.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("creating document: %w", err)
	}

	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         s3Key,
		Body:        input.File,
		ContentType: detectedType,
		Size:        input.Header.Size,
		Metadata: map[string]string{
			"tenant-id":   input.TenantID.String(),
			"entity-type": string(input.EntityType),
			"entity-id":   input.EntityID.String(),
		},
	}); err != nil {
		log.Printf("documentService.Upload: S3 upload failed for document %s: %v", doc.ID, err)
		_ = s.docs.UpdateClassification(ctx, doc.TenantID, doc.ID, domain.ClassificationFailed, doc.Category, nil)
		return nil, domain.ErrUploadFailed
	}

	// Copy before launching goroutine so the caller's value is independent of background work
	result := *doc

	go s.classifyInBackground(doc.ID, doc.TenantID)

	return &result, nil
}

func (s *documentService) classifyInBackground(docID, tenantID uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	log.Printf("documentService.classifyInBackground: classifying document %s", docID)

	doc, err := s.docs.GetByID(ctx, tenantID, docID)
	if err != nil {
		log.Printf("documentService.classifyInBackground: failed to get document %s: %v", docID, err)
		return
	}

	content, err := s.storage.Download(ctx, doc.S3Bucket, doc.S3Key)
	if err != nil {
		log.Printf("documentService.classifyInBackground: download failed for %s: %v", docID, err)
		s.failClassification(ctx, doc)
		return
	}

	result, err := s.classifier.Classify(ctx, port.ClassifyInput{
		FileName:    doc.FileName,
		ContentType: doc.ContentType,
		Content:     content,
	})
	if err != nil {
		log.Printf("documentService.classifyInBackground: classifier failed for %s: %v", docID, err)
		s.failClassification(ctx, doc)
		return
	}

	// A user-provided category wins over the classifier's guess.
	category := doc.Category
	if category == "" {
		category = result.Category
	}

	if err := s.docs.UpdateClassification(ctx, tenantID, docID, domain.ClassificationClassified, category, result.Extraction); err != nil {
		log.Printf("documentService.classifyInBackground: failed to save results for %s: %v", docID, err)
		return
	}

	log.Printf("documentService.classifyInBackground: document %s classified as %q (confidence %.2f)",
		docID, category, result.Confidence)
}

func (s *documentService) failClassification(ctx context.Context, doc *domain.ComplianceDocument) {
	if err := s.docs.UpdateClassification(ctx, doc.TenantID, doc.ID, domain.ClassificationFailed, doc.Category, doc.Extraction); err != nil {
		log.Printf("documentService.failClassification: failed to update status for %s: %v", doc.ID, err)
	}
}

func (s *documentService) GetByID(ctx context.Context, tenantID, docID uuid.UUID) (*domain.ComplianceDocument, error) {
	return s.docs.GetByID(ctx, tenantID, docID)
}

func (s *documentService) ListByEntity(ctx context.Context, tenantID uuid.UUID, entityType domain.EntityType, entityID uuid.UUID) ([]domain.ComplianceDocument, error) {
	if !domain.AllowedEntityTypes[entityType] {
		return nil, domain.ErrInvalidEntityType
	}
	return s.docs.ListByEntity(ctx, tenantID, entityType, entityID)
}

func (s *documentService) ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.ComplianceDocument, int, error) {
	return s.docs.ListByTenant(ctx, tenantID, offset, limit)
}

func (s *documentService) GetDownloadURL(ctx context.Context, tenantID, docID uuid.UUID) (string, error) {
	doc, err := s.docs.GetByID(ctx, tenantID, docID)
	if err != nil {
		return "", err
	}
	return s.storage.GetPresignedURL(ctx, doc.S3Bucket, doc.S3Key, doc.FileName, s.cfg.PresignExpiry)
}

func (s *documentService) RetryClassification(ctx context.Context, tenantID, docID uuid.UUID) (*domain.ComplianceDocument, error) {
	doc, err := s.docs.GetByID(ctx, tenantID, docID)
	if err != nil {
		return nil, err
	}

	if err := s.docs.UpdateClassification(ctx, tenantID, docID, domain.ClassificationPending, doc.Category, nil); err != nil {
		return nil, fmt.Errorf("resetting document for retry: %w", err)
	}
	doc.Status = domain.ClassificationPending
	doc.Extraction = nil

	log.Printf("documentService.RetryClassification: retrying classification for document %s", docID)

	result := *doc

	go s.classifyInBackground(doc.ID, doc.TenantID)

	return &result, nil
}

func (s *documentService) Delete(ctx context.Context, tenantID, docID uuid.UUID) error {
	log.Printf("documentService.Delete: deleting document %s for tenant %s", docID, tenantID)

	doc, err := s.docs.GetByID(ctx, tenantID, docID)
	if err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, doc.S3Bucket, doc.S3Key); err != nil {
		log.Printf("documentService.Delete: failed to delete from S3: %v", err)
		return fmt.Errorf("deleting from storage: %w", err)
	}

	return s.docs.Delete(ctx, tenantID, docID)
}
