package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"obrapass/internal/service"
)

// RequirementHandler handles requirement rule endpoints.
type RequirementHandler struct {
	requirementService service.RequirementService
}

// NewRequirementHandler creates a new RequirementHandler.
func NewRequirementHandler(requirementService service.RequirementService) *RequirementHandler {
	return &RequirementHandler{requirementService: requirementService}
}

// Create handles POST /api/v1/requirements
// @Summary Create a requirement rule
// @Description Create a requirement rule for a platform (admin only). The rule is compiled before it is stored; an unknown predicate is rejected.
// @Tags requirements
// @Accept json
// @Produce json
// @Param request body CreateRequirementRequest true "Rule definition"
// @Success 201 {object} Response{data=domain.RequirementRule} "Rule created"
// @Failure 400 {object} ErrorResponseBody "Malformed rule"
// @Security BearerAuth
// @Router /requirements [post]
func (h *RequirementHandler) Create(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.CreateRequirementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	rule, err := h.requirementService.Create(c.Request.Context(), tenantID, userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, rule)
}

// List handles GET /api/v1/requirements
// @Summary List active requirement rules for a platform
// @Tags requirements
// @Produce json
// @Param plataforma query string true "Target platform" Enums(nalanda, ctaima, ecoordina)
// @Success 200 {object} Response{data=[]domain.RequirementRule} "Active rules"
// @Failure 400 {object} ErrorResponseBody "Unknown platform"
// @Security BearerAuth
// @Router /requirements [get]
func (h *RequirementHandler) List(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	platform, err := parsePlatform(c.Query("plataforma"))
	if err != nil {
		HandleError(c, err)
		return
	}

	rules, err := h.requirementService.ListByPlatform(c.Request.Context(), tenantID, platform)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, rules)
}

// GetByID handles GET /api/v1/requirements/:id
// @Summary Get requirement rule by ID
// @Tags requirements
// @Produce json
// @Param id path string true "Rule ID (UUID)"
// @Success 200 {object} Response{data=domain.RequirementRule} "Rule details"
// @Failure 404 {object} ErrorResponseBody "Rule not found"
// @Security BearerAuth
// @Router /requirements/{id} [get]
func (h *RequirementHandler) GetByID(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	ruleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid rule ID")
		return
	}

	rule, err := h.requirementService.GetByID(c.Request.Context(), tenantID, ruleID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, rule)
}

// Update handles PUT /api/v1/requirements/:id
// @Summary Update a requirement rule
// @Description Update a requirement rule (admin only). The updated rule is recompiled before it is stored.
// @Tags requirements
// @Accept json
// @Produce json
// @Param id path string true "Rule ID (UUID)"
// @Param request body UpdateRequirementRequest true "Fields to update"
// @Success 200 {object} Response{data=domain.RequirementRule} "Rule updated"
// @Failure 400 {object} ErrorResponseBody "Malformed rule"
// @Failure 404 {object} ErrorResponseBody "Rule not found"
// @Security BearerAuth
// @Router /requirements/{id} [put]
func (h *RequirementHandler) Update(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	ruleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid rule ID")
		return
	}

	var input service.UpdateRequirementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	rule, err := h.requirementService.Update(c.Request.Context(), tenantID, ruleID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, rule)
}

// Delete handles DELETE /api/v1/requirements/:id
// @Summary Delete a requirement rule
// @Description Delete a requirement rule (admin only)
// @Tags requirements
// @Produce json
// @Param id path string true "Rule ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Rule deleted"
// @Failure 404 {object} ErrorResponseBody "Rule not found"
// @Security BearerAuth
// @Router /requirements/{id} [delete]
func (h *RequirementHandler) Delete(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	ruleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid rule ID")
		return
	}

	if err := h.requirementService.Delete(c.Request.Context(), tenantID, ruleID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "requirement rule deleted"})
}
