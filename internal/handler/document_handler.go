package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"obrapass/internal/domain"
	"obrapass/internal/service"
)

// DocumentHandler handles compliance document endpoints.
type DocumentHandler struct {
	documentService service.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documentService service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// Upload handles POST /api/v1/documents
// @Summary Upload a compliance document
// @Description Upload a document (PDF, JPG, PNG, max 50MB) attached to a worker, machine, site, or company. Classification runs asynchronously unless a category is provided.
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Document file (PDF, JPG, or PNG)"
// @Param entidad_tipo formData string true "Entity type" Enums(trabajador, maquinaria, obra, empresa)
// @Param entidad_id formData string true "Entity ID (UUID)"
// @Param categoria formData string false "Document category (skips automatic classification)"
// @Param fecha_emision formData string false "Issue date (YYYY-MM-DD)"
// @Param fecha_caducidad formData string false "Expiry date (YYYY-MM-DD)"
// @Success 201 {object} Response{data=domain.ComplianceDocument} "Document uploaded"
// @Failure 400 {object} ErrorResponseBody "Missing file or invalid fields"
// @Failure 404 {object} ErrorResponseBody "Entity not found"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Security BearerAuth
// @Router /documents [post]
func (h *DocumentHandler) Upload(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	entityType := domain.EntityType(c.PostForm("entidad_tipo"))
	if !domain.AllowedEntityTypes[entityType] {
		HandleError(c, domain.ErrInvalidEntityType)
		return
	}

	entityID, err := uuid.Parse(c.PostForm("entidad_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "entidad_id must be a valid UUID")
		return
	}

	issuedAt, err := parseFormDate(c.PostForm("fecha_emision"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid fecha_emision: must be YYYY-MM-DD")
		return
	}
	expiresAt, err := parseFormDate(c.PostForm("fecha_caducidad"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid fecha_caducidad: must be YYYY-MM-DD")
		return
	}

	input := service.UploadDocumentInput{
		TenantID:   tenantID,
		UploadedBy: userID,
		EntityType: entityType,
		EntityID:   entityID,
		Category:   c.PostForm("categoria"),
		IssuedAt:   issuedAt,
		ExpiresAt:  expiresAt,
		File:       file,
		Header:     header,
	}

	doc, err := h.documentService.Upload(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, doc)
}

// List handles GET /api/v1/documents
// @Summary List documents
// @Description List the tenant's documents; filter by entity with entidad_tipo and entidad_id
// @Tags documents
// @Produce json
// @Param entidad_tipo query string false "Entity type filter" Enums(trabajador, maquinaria, obra, empresa)
// @Param entidad_id query string false "Entity ID filter (UUID, requires entidad_tipo)"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.ComplianceDocument,meta=PagMeta} "List of documents"
// @Failure 400 {object} ErrorResponseBody "Invalid filter"
// @Security BearerAuth
// @Router /documents [get]
func (h *DocumentHandler) List(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	if typeStr := c.Query("entidad_tipo"); typeStr != "" {
		entityType := domain.EntityType(typeStr)
		if !domain.AllowedEntityTypes[entityType] {
			HandleError(c, domain.ErrInvalidEntityType)
			return
		}
		entityID, err := uuid.Parse(c.Query("entidad_id"))
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_ID", "entidad_id must be a valid UUID")
			return
		}

		docs, err := h.documentService.ListByEntity(c.Request.Context(), tenantID, entityType, entityID)
		if err != nil {
			HandleError(c, err)
			return
		}
		RespondOK(c, docs)
		return
	}

	offset, limit := parsePagination(c)

	docs, total, err := h.documentService.ListByTenant(c.Request.Context(), tenantID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, docs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/documents/:id
// @Summary Get document by ID
// @Description Get document metadata and a presigned download URL
// @Tags documents
// @Produce json
// @Param id path string true "Document ID (UUID)"
// @Success 200 {object} Response{data=DocumentWithDownloadURL} "Document with download URL"
// @Failure 404 {object} ErrorResponseBody "Document not found"
// @Security BearerAuth
// @Router /documents/{id} [get]
func (h *DocumentHandler) GetByID(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}

	doc, err := h.documentService.GetByID(c.Request.Context(), tenantID, docID)
	if err != nil {
		HandleError(c, err)
		return
	}

	downloadURL, err := h.documentService.GetDownloadURL(c.Request.Context(), tenantID, docID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{
		"document":     doc,
		"download_url": downloadURL,
	})
}

// RetryClassification handles POST /api/v1/documents/:id/classify
// @Summary Retry document classification
// @Description Re-run automatic classification for a document whose previous attempt failed
// @Tags documents
// @Produce json
// @Param id path string true "Document ID (UUID)"
// @Success 202 {object} Response{data=domain.ComplianceDocument} "Classification queued"
// @Failure 404 {object} ErrorResponseBody "Document not found"
// @Security BearerAuth
// @Router /documents/{id}/classify [post]
func (h *DocumentHandler) RetryClassification(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}

	doc, err := h.documentService.RetryClassification(c.Request.Context(), tenantID, docID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondAccepted(c, doc)
}

// Delete handles DELETE /api/v1/documents/:id
// @Summary Delete a document
// @Description Delete a document and its stored file (admin only)
// @Tags documents
// @Produce json
// @Param id path string true "Document ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Document deleted"
// @Failure 404 {object} ErrorResponseBody "Document not found"
// @Security BearerAuth
// @Router /documents/{id} [delete]
func (h *DocumentHandler) Delete(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}

	if err := h.documentService.Delete(c.Request.Context(), tenantID, docID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "document deleted"})
}

// parseFormDate parses an optional YYYY-MM-DD form value.
func parseFormDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
