package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"obrapass/internal/service"
)

// MachineHandler handles machine endpoints.
type MachineHandler struct {
	machineService service.MachineService
}

// NewMachineHandler creates a new MachineHandler.
func NewMachineHandler(machineService service.MachineService) *MachineHandler {
	return &MachineHandler{machineService: machineService}
}

// Create handles POST /api/v1/machines
// @Summary Register a machine
// @Description Register a machine under a subcontractor company
// @Tags machines
// @Accept json
// @Produce json
// @Param request body CreateMachineRequest true "Machine details"
// @Success 201 {object} Response{data=domain.Machine} "Machine registered"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 404 {object} ErrorResponseBody "Company not found"
// @Security BearerAuth
// @Router /machines [post]
func (h *MachineHandler) Create(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.CreateMachineInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	machine, err := h.machineService.Create(c.Request.Context(), tenantID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, machine)
}

// GetByID handles GET /api/v1/machines/:id
// @Summary Get machine by ID
// @Tags machines
// @Produce json
// @Param id path string true "Machine ID (UUID)"
// @Success 200 {object} Response{data=domain.Machine} "Machine details"
// @Failure 404 {object} ErrorResponseBody "Machine not found"
// @Security BearerAuth
// @Router /machines/{id} [get]
func (h *MachineHandler) GetByID(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	machineID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid machine ID")
		return
	}

	machine, err := h.machineService.GetByID(c.Request.Context(), tenantID, machineID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, machine)
}

// Update handles PUT /api/v1/machines/:id
// @Summary Update a machine
// @Tags machines
// @Accept json
// @Produce json
// @Param id path string true "Machine ID (UUID)"
// @Param request body UpdateMachineRequest true "Fields to update"
// @Success 200 {object} Response{data=domain.Machine} "Machine updated"
// @Failure 404 {object} ErrorResponseBody "Machine not found"
// @Security BearerAuth
// @Router /machines/{id} [put]
func (h *MachineHandler) Update(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	machineID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid machine ID")
		return
	}

	var input service.UpdateMachineInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	machine, err := h.machineService.Update(c.Request.Context(), tenantID, machineID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, machine)
}

// Delete handles DELETE /api/v1/machines/:id
// @Summary Delete a machine
// @Description Delete a machine (admin only)
// @Tags machines
// @Produce json
// @Param id path string true "Machine ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Machine deleted"
// @Failure 404 {object} ErrorResponseBody "Machine not found"
// @Security BearerAuth
// @Router /machines/{id} [delete]
func (h *MachineHandler) Delete(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	machineID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid machine ID")
		return
	}

	if err := h.machineService.Delete(c.Request.Context(), tenantID, machineID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "machine deleted"})
}
