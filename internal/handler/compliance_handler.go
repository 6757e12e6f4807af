package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"obrapass/internal/domain"
	"obrapass/internal/service"
)

// ComplianceHandler handles direct entity compliance checks. Site-level
// evaluation lives on the site routes.
type ComplianceHandler struct {
	complianceService service.ComplianceService
}

// NewComplianceHandler creates a new ComplianceHandler.
func NewComplianceHandler(complianceService service.ComplianceService) *ComplianceHandler {
	return &ComplianceHandler{complianceService: complianceService}
}

// CheckEntity handles GET /api/v1/compliance/check
// @Summary Check a single entity's compliance
// @Description Evaluate one worker, machine, site, or company against a platform's requirement rules at a given risk profile
// @Tags compliance
// @Produce json
// @Param plataforma query string true "Target platform" Enums(nalanda, ctaima, ecoordina)
// @Param entidad_tipo query string true "Entity type" Enums(trabajador, maquinaria, obra, empresa)
// @Param entidad_id query string true "Entity ID (UUID)"
// @Param perfil_riesgo query string false "Risk profile" Enums(low, medium, high) default(medium)
// @Success 200 {object} Response{data=compliance.Result} "Evaluation result"
// @Failure 400 {object} ErrorResponseBody "Invalid parameters"
// @Failure 404 {object} ErrorResponseBody "Entity not found"
// @Security BearerAuth
// @Router /compliance/check [get]
func (h *ComplianceHandler) CheckEntity(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	platform, err := parsePlatform(c.Query("plataforma"))
	if err != nil {
		HandleError(c, err)
		return
	}

	entityType := domain.EntityType(c.Query("entidad_tipo"))
	if !domain.AllowedEntityTypes[entityType] {
		HandleError(c, domain.ErrInvalidEntityType)
		return
	}

	entityID, err := uuid.Parse(c.Query("entidad_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "entidad_id must be a valid UUID")
		return
	}

	risk := domain.RiskProfile(c.DefaultQuery("perfil_riesgo", string(domain.RiskMedium)))
	if !domain.AllowedRiskProfiles[risk] {
		HandleError(c, domain.ErrInvalidRiskProfile)
		return
	}

	result, err := h.complianceService.EvaluateEntity(c.Request.Context(), tenantID, platform, entityType, entityID, risk)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}
