package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"obrapass/internal/service"
)

// TemplateHandler handles mapping template endpoints. Templates are
// versioned per platform; writes always create a new version.
type TemplateHandler struct {
	templateService service.TemplateService
}

// NewTemplateHandler creates a new TemplateHandler.
func NewTemplateHandler(templateService service.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

// Create handles POST /api/v1/templates
// @Summary Create a mapping template version
// @Description Create a new template version for a platform (admin only). The template is compiled before it is stored; a malformed rule is rejected.
// @Tags templates
// @Accept json
// @Produce json
// @Param request body CreateTemplateRequest true "Template definition"
// @Success 201 {object} Response{data=domain.MappingTemplate} "Template version created"
// @Failure 400 {object} ErrorResponseBody "Malformed template"
// @Security BearerAuth
// @Router /templates [post]
func (h *TemplateHandler) Create(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.CreateTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	tpl, err := h.templateService.Create(c.Request.Context(), tenantID, userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, tpl)
}

// DryRun handles POST /api/v1/templates/dry-run
// @Summary Dry-run a template against a sample entity graph
// @Description Compile the submitted template and run the transform over the supplied sample data. Nothing is persisted; the response carries the generated payload and the target-schema check outcome.
// @Tags templates
// @Accept json
// @Produce json
// @Param request body DryRunTemplateRequest true "Template definition plus sample entities"
// @Success 200 {object} Response{data=service.DryRunResult} "Transform output"
// @Failure 400 {object} ErrorResponseBody "Malformed template"
// @Failure 422 {object} ErrorResponseBody "Required source path unresolvable"
// @Security BearerAuth
// @Router /templates/dry-run [post]
func (h *TemplateHandler) DryRun(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.DryRunTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.templateService.DryRun(c.Request.Context(), tenantID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// GetLatest handles GET /api/v1/templates/:platform
// @Summary Get the latest template version for a platform
// @Tags templates
// @Produce json
// @Param platform path string true "Target platform" Enums(nalanda, ctaima, ecoordina)
// @Success 200 {object} Response{data=domain.MappingTemplate} "Latest template version"
// @Failure 400 {object} ErrorResponseBody "Unknown platform"
// @Failure 404 {object} ErrorResponseBody "No template for platform"
// @Security BearerAuth
// @Router /templates/{platform} [get]
func (h *TemplateHandler) GetLatest(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	platform, err := parsePlatform(c.Param("platform"))
	if err != nil {
		HandleError(c, err)
		return
	}

	tpl, err := h.templateService.GetLatest(c.Request.Context(), tenantID, platform)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, tpl)
}

// ListVersions handles GET /api/v1/templates/:platform/versions
// @Summary List template versions for a platform
// @Tags templates
// @Produce json
// @Param platform path string true "Target platform" Enums(nalanda, ctaima, ecoordina)
// @Success 200 {object} Response{data=[]domain.MappingTemplate} "Template versions, newest first"
// @Failure 400 {object} ErrorResponseBody "Unknown platform"
// @Security BearerAuth
// @Router /templates/{platform}/versions [get]
func (h *TemplateHandler) ListVersions(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	platform, err := parsePlatform(c.Param("platform"))
	if err != nil {
		HandleError(c, err)
		return
	}

	templates, err := h.templateService.ListVersions(c.Request.Context(), tenantID, platform)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, templates)
}

// GetVersion handles GET /api/v1/templates/:platform/versions/:version
// @Summary Get a specific template version
// @Tags templates
// @Produce json
// @Param platform path string true "Target platform" Enums(nalanda, ctaima, ecoordina)
// @Param version path int true "Template version"
// @Success 200 {object} Response{data=domain.MappingTemplate} "Template version"
// @Failure 400 {object} ErrorResponseBody "Unknown platform or invalid version"
// @Failure 404 {object} ErrorResponseBody "Version not found"
// @Security BearerAuth
// @Router /templates/{platform}/versions/{version} [get]
func (h *TemplateHandler) GetVersion(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	platform, err := parsePlatform(c.Param("platform"))
	if err != nil {
		HandleError(c, err)
		return
	}

	version, err := strconv.Atoi(c.Param("version"))
	if err != nil || version < 1 {
		RespondError(c, http.StatusBadRequest, "INVALID_VERSION", "version must be a positive integer")
		return
	}

	tpl, err := h.templateService.GetVersion(c.Request.Context(), tenantID, platform, version)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, tpl)
}
