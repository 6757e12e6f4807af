package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"obrapass/internal/service"
)

// ExportHandler handles export job endpoints. Jobs run asynchronously; the
// request endpoint only enqueues.
type ExportHandler struct {
	exportService service.ExportService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// RequestExportInput is the body for requesting an export job.
type RequestExportInput struct {
	Platform string    `json:"plataforma" binding:"required"`
	SiteID   uuid.UUID `json:"obra_id" binding:"required"`
}

// Request handles POST /api/v1/exports
// @Summary Request an export
// @Description Queue an export of a site's data to a platform using the latest mapping template version
// @Tags exports
// @Accept json
// @Produce json
// @Param request body RequestExportRequest true "Export target"
// @Success 202 {object} Response{data=domain.ExportJob} "Export queued"
// @Failure 400 {object} ErrorResponseBody "Unknown platform"
// @Failure 404 {object} ErrorResponseBody "Site or template not found"
// @Security BearerAuth
// @Router /exports [post]
func (h *ExportHandler) Request(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input RequestExportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	platform, err := parsePlatform(input.Platform)
	if err != nil {
		HandleError(c, err)
		return
	}

	job, err := h.exportService.Request(c.Request.Context(), tenantID, userID, platform, input.SiteID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondAccepted(c, job)
}

// List handles GET /api/v1/exports
// @Summary List export jobs
// @Tags exports
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.ExportJob,meta=PagMeta} "Export jobs, newest first"
// @Security BearerAuth
// @Router /exports [get]
func (h *ExportHandler) List(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	offset, limit := parsePagination(c)

	jobs, total, err := h.exportService.List(c.Request.Context(), tenantID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, jobs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/exports/:id
// @Summary Get export job by ID
// @Description Get an export job's status, and its payload once completed
// @Tags exports
// @Produce json
// @Param id path string true "Export job ID (UUID)"
// @Success 200 {object} Response{data=domain.ExportJob} "Export job"
// @Failure 404 {object} ErrorResponseBody "Export job not found"
// @Security BearerAuth
// @Router /exports/{id} [get]
func (h *ExportHandler) GetByID(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid export job ID")
		return
	}

	job, err := h.exportService.GetByID(c.Request.Context(), tenantID, jobID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, job)
}
