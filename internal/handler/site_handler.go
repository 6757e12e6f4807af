package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"obrapass/internal/service"
	"obrapass/internal/xlsxexport"
)

// SiteHandler handles construction site endpoints, including worker and
// machine assignments and site-level compliance evaluation.
type SiteHandler struct {
	siteService       service.SiteService
	complianceService service.ComplianceService
}

// NewSiteHandler creates a new SiteHandler.
func NewSiteHandler(siteService service.SiteService, complianceService service.ComplianceService) *SiteHandler {
	return &SiteHandler{siteService: siteService, complianceService: complianceService}
}

// Create handles POST /api/v1/sites
// @Summary Open a site
// @Description Open a construction site for a company
// @Tags sites
// @Accept json
// @Produce json
// @Param request body CreateSiteRequest true "Site details"
// @Success 201 {object} Response{data=domain.Site} "Site opened"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 404 {object} ErrorResponseBody "Company not found"
// @Security BearerAuth
// @Router /sites [post]
func (h *SiteHandler) Create(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.CreateSiteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	site, err := h.siteService.Create(c.Request.Context(), tenantID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, site)
}

// List handles GET /api/v1/sites
// @Summary List sites
// @Tags sites
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Site,meta=PagMeta} "List of sites"
// @Security BearerAuth
// @Router /sites [get]
func (h *SiteHandler) List(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	offset, limit := parsePagination(c)

	sites, total, err := h.siteService.List(c.Request.Context(), tenantID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, sites, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/sites/:id
// @Summary Get site by ID
// @Tags sites
// @Produce json
// @Param id path string true "Site ID (UUID)"
// @Success 200 {object} Response{data=domain.Site} "Site details"
// @Failure 404 {object} ErrorResponseBody "Site not found"
// @Security BearerAuth
// @Router /sites/{id} [get]
func (h *SiteHandler) GetByID(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	siteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid site ID")
		return
	}

	site, err := h.siteService.GetByID(c.Request.Context(), tenantID, siteID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, site)
}

// Update handles PUT /api/v1/sites/:id
// @Summary Update a site
// @Tags sites
// @Accept json
// @Produce json
// @Param id path string true "Site ID (UUID)"
// @Param request body UpdateSiteRequest true "Fields to update"
// @Success 200 {object} Response{data=domain.Site} "Site updated"
// @Failure 404 {object} ErrorResponseBody "Site not found"
// @Security BearerAuth
// @Router /sites/{id} [put]
func (h *SiteHandler) Update(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	siteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid site ID")
		return
	}

	var input service.UpdateSiteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	site, err := h.siteService.Update(c.Request.Context(), tenantID, siteID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, site)
}

// Delete handles DELETE /api/v1/sites/:id
// @Summary Close a site
// @Description Delete a site (admin only)
// @Tags sites
// @Produce json
// @Param id path string true "Site ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Site deleted"
// @Failure 404 {object} ErrorResponseBody "Site not found"
// @Security BearerAuth
// @Router /sites/{id} [delete]
func (h *SiteHandler) Delete(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	siteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid site ID")
		return
	}

	if err := h.siteService.Delete(c.Request.Context(), tenantID, siteID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "site deleted"})
}

// AssignWorker handles POST /api/v1/sites/:id/workers/:workerID
// @Summary Assign a worker to a site
// @Tags sites
// @Produce json
// @Param id path string true "Site ID (UUID)"
// @Param workerID path string true "Worker ID (UUID)"
// @Success 201 {object} Response{data=MessageResponse} "Worker assigned"
// @Failure 404 {object} ErrorResponseBody "Site or worker not found"
// @Failure 409 {object} ErrorResponseBody "Already assigned"
// @Security BearerAuth
// @Router /sites/{id}/workers/{workerID} [post]
func (h *SiteHandler) AssignWorker(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	siteID, workerID, ok := parseSiteChildIDs(c, "workerID", "worker")
	if !ok {
		return
	}

	if err := h.siteService.AssignWorker(c.Request.Context(), tenantID, siteID, workerID); err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, gin.H{"message": "worker assigned"})
}

// RemoveWorker handles DELETE /api/v1/sites/:id/workers/:workerID
// @Summary Remove a worker from a site
// @Tags sites
// @Produce json
// @Param id path string true "Site ID (UUID)"
// @Param workerID path string true "Worker ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Worker removed"
// @Failure 404 {object} ErrorResponseBody "Assignment not found"
// @Security BearerAuth
// @Router /sites/{id}/workers/{workerID} [delete]
func (h *SiteHandler) RemoveWorker(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	siteID, workerID, ok := parseSiteChildIDs(c, "workerID", "worker")
	if !ok {
		return
	}

	if err := h.siteService.RemoveWorker(c.Request.Context(), tenantID, siteID, workerID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "worker removed"})
}

// ListWorkers handles GET /api/v1/sites/:id/workers
// @Summary List workers assigned to a site
// @Tags sites
// @Produce json
// @Param id path string true "Site ID (UUID)"
// @Success 200 {object} Response{data=[]domain.Worker} "Assigned workers"
// @Failure 404 {object} ErrorResponseBody "Site not found"
// @Security BearerAuth
// @Router /sites/{id}/workers [get]
func (h *SiteHandler) ListWorkers(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	siteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid site ID")
		return
	}

	workers, err := h.siteService.ListWorkers(c.Request.Context(), tenantID, siteID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, workers)
}

// AssignMachine handles POST /api/v1/sites/:id/machines/:machineID
// @Summary Assign a machine to a site
// @Tags sites
// @Produce json
// @Param id path string true "Site ID (UUID)"
// @Param machineID path string true "Machine ID (UUID)"
// @Success 201 {object} Response{data=MessageResponse} "Machine assigned"
// @Failure 404 {object} ErrorResponseBody "Site or machine not found"
// @Failure 409 {object} ErrorResponseBody "Already assigned"
// @Security BearerAuth
// @Router /sites/{id}/machines/{machineID} [post]
func (h *SiteHandler) AssignMachine(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	siteID, machineID, ok := parseSiteChildIDs(c, "machineID", "machine")
	if !ok {
		return
	}

	if err := h.siteService.AssignMachine(c.Request.Context(), tenantID, siteID, machineID); err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, gin.H{"message": "machine assigned"})
}

// RemoveMachine handles DELETE /api/v1/sites/:id/machines/:machineID
// @Summary Remove a machine from a site
// @Tags sites
// @Produce json
// @Param id path string true "Site ID (UUID)"
// @Param machineID path string true "Machine ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Machine removed"
// @Failure 404 {object} ErrorResponseBody "Assignment not found"
// @Security BearerAuth
// @Router /sites/{id}/machines/{machineID} [delete]
func (h *SiteHandler) RemoveMachine(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	siteID, machineID, ok := parseSiteChildIDs(c, "machineID", "machine")
	if !ok {
		return
	}

	if err := h.siteService.RemoveMachine(c.Request.Context(), tenantID, siteID, machineID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "machine removed"})
}

// ListMachines handles GET /api/v1/sites/:id/machines
// @Summary List machines assigned to a site
// @Tags sites
// @Produce json
// @Param id path string true "Site ID (UUID)"
// @Success 200 {object} Response{data=[]domain.Machine} "Assigned machines"
// @Failure 404 {object} ErrorResponseBody "Site not found"
// @Security BearerAuth
// @Router /sites/{id}/machines [get]
func (h *SiteHandler) ListMachines(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	siteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid site ID")
		return
	}

	machines, err := h.siteService.ListMachines(c.Request.Context(), tenantID, siteID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, machines)
}

// Compliance handles GET /api/v1/sites/:id/compliance
// @Summary Evaluate site compliance
// @Description Evaluate the site, its company, and every assigned worker and machine against a platform's requirement rules
// @Tags compliance
// @Produce json
// @Param id path string true "Site ID (UUID)"
// @Param plataforma query string true "Target platform" Enums(nalanda, ctaima, ecoordina)
// @Success 200 {object} Response{data=service.SiteComplianceReport} "Compliance report"
// @Failure 400 {object} ErrorResponseBody "Unknown platform"
// @Failure 404 {object} ErrorResponseBody "Site not found"
// @Security BearerAuth
// @Router /sites/{id}/compliance [get]
func (h *SiteHandler) Compliance(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	siteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid site ID")
		return
	}

	platform, err := parsePlatform(c.Query("plataforma"))
	if err != nil {
		HandleError(c, err)
		return
	}

	report, err := h.complianceService.EvaluateSite(c.Request.Context(), tenantID, platform, siteID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, report)
}

// ComplianceReport handles GET /api/v1/sites/:id/compliance/report
// @Summary Download site compliance report
// @Description Evaluate the site and stream the result as an XLSX workbook
// @Tags compliance
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Site ID (UUID)"
// @Param plataforma query string true "Target platform" Enums(nalanda, ctaima, ecoordina)
// @Success 200 {file} binary "XLSX report"
// @Failure 400 {object} ErrorResponseBody "Unknown platform"
// @Failure 404 {object} ErrorResponseBody "Site not found"
// @Security BearerAuth
// @Router /sites/{id}/compliance/report [get]
func (h *SiteHandler) ComplianceReport(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	siteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid site ID")
		return
	}

	platform, err := parsePlatform(c.Query("plataforma"))
	if err != nil {
		HandleError(c, err)
		return
	}

	site, err := h.siteService.GetByID(c.Request.Context(), tenantID, siteID)
	if err != nil {
		HandleError(c, err)
		return
	}

	report, err := h.complianceService.EvaluateSite(c.Request.Context(), tenantID, platform, siteID)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := xlsxexport.BuildFilename(site.Name)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := xlsxexport.WriteReport(c.Writer, report); err != nil {
		// Headers are already sent; all we can do is log.
		log.Printf("siteHandler.ComplianceReport: write xlsx for site %s: %v", siteID, err)
	}
}

// parseSiteChildIDs parses the site ID and a child resource ID from the path.
// Returns false if either is malformed (error response already written).
func parseSiteChildIDs(c *gin.Context, param, label string) (siteID, childID uuid.UUID, ok bool) {
	siteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid site ID")
		return uuid.Nil, uuid.Nil, false
	}
	childID, err = uuid.Parse(c.Param(param))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid "+label+" ID")
		return uuid.Nil, uuid.Nil, false
	}
	return siteID, childID, true
}
