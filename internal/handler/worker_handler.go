package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"obrapass/internal/service"
)

// WorkerHandler handles worker endpoints.
type WorkerHandler struct {
	workerService service.WorkerService
}

// NewWorkerHandler creates a new WorkerHandler.
func NewWorkerHandler(workerService service.WorkerService) *WorkerHandler {
	return &WorkerHandler{workerService: workerService}
}

// Create handles POST /api/v1/workers
// @Summary Register a worker
// @Description Register a worker under a subcontractor company
// @Tags workers
// @Accept json
// @Produce json
// @Param request body CreateWorkerRequest true "Worker details"
// @Success 201 {object} Response{data=domain.Worker} "Worker registered"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 404 {object} ErrorResponseBody "Company not found"
// @Security BearerAuth
// @Router /workers [post]
func (h *WorkerHandler) Create(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.CreateWorkerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	worker, err := h.workerService.Create(c.Request.Context(), tenantID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, worker)
}

// GetByID handles GET /api/v1/workers/:id
// @Summary Get worker by ID
// @Tags workers
// @Produce json
// @Param id path string true "Worker ID (UUID)"
// @Success 200 {object} Response{data=domain.Worker} "Worker details"
// @Failure 404 {object} ErrorResponseBody "Worker not found"
// @Security BearerAuth
// @Router /workers/{id} [get]
func (h *WorkerHandler) GetByID(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	workerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid worker ID")
		return
	}

	worker, err := h.workerService.GetByID(c.Request.Context(), tenantID, workerID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, worker)
}

// Update handles PUT /api/v1/workers/:id
// @Summary Update a worker
// @Tags workers
// @Accept json
// @Produce json
// @Param id path string true "Worker ID (UUID)"
// @Param request body UpdateWorkerRequest true "Fields to update"
// @Success 200 {object} Response{data=domain.Worker} "Worker updated"
// @Failure 404 {object} ErrorResponseBody "Worker not found"
// @Security BearerAuth
// @Router /workers/{id} [put]
func (h *WorkerHandler) Update(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	workerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid worker ID")
		return
	}

	var input service.UpdateWorkerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	worker, err := h.workerService.Update(c.Request.Context(), tenantID, workerID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, worker)
}

// Delete handles DELETE /api/v1/workers/:id
// @Summary Delete a worker
// @Description Delete a worker (admin only)
// @Tags workers
// @Produce json
// @Param id path string true "Worker ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Worker deleted"
// @Failure 404 {object} ErrorResponseBody "Worker not found"
// @Security BearerAuth
// @Router /workers/{id} [delete]
func (h *WorkerHandler) Delete(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	workerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid worker ID")
		return
	}

	if err := h.workerService.Delete(c.Request.Context(), tenantID, workerID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "worker deleted"})
}
