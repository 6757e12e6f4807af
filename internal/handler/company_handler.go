package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"obrapass/internal/service"
)

// CompanyHandler handles subcontractor company endpoints, including the
// nested worker and machine listings.
type CompanyHandler struct {
	companyService service.CompanyService
	workerService  service.WorkerService
	machineService service.MachineService
}

// NewCompanyHandler creates a new CompanyHandler.
func NewCompanyHandler(companyService service.CompanyService, workerService service.WorkerService, machineService service.MachineService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService, workerService: workerService, machineService: machineService}
}

// Create handles POST /api/v1/companies
// @Summary Register a company
// @Description Register a subcontractor company for the caller's tenant
// @Tags companies
// @Accept json
// @Produce json
// @Param request body CreateCompanyRequest true "Company details"
// @Success 201 {object} Response{data=domain.Company} "Company registered"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Security BearerAuth
// @Router /companies [post]
func (h *CompanyHandler) Create(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.CreateCompanyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	company, err := h.companyService.Create(c.Request.Context(), tenantID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, company)
}

// List handles GET /api/v1/companies
// @Summary List companies
// @Tags companies
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Company,meta=PagMeta} "List of companies"
// @Security BearerAuth
// @Router /companies [get]
func (h *CompanyHandler) List(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	offset, limit := parsePagination(c)

	companies, total, err := h.companyService.List(c.Request.Context(), tenantID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, companies, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/companies/:id
// @Summary Get company by ID
// @Tags companies
// @Produce json
// @Param id path string true "Company ID (UUID)"
// @Success 200 {object} Response{data=domain.Company} "Company details"
// @Failure 404 {object} ErrorResponseBody "Company not found"
// @Security BearerAuth
// @Router /companies/{id} [get]
func (h *CompanyHandler) GetByID(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	companyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid company ID")
		return
	}

	company, err := h.companyService.GetByID(c.Request.Context(), tenantID, companyID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, company)
}

// Update handles PUT /api/v1/companies/:id
// @Summary Update a company
// @Tags companies
// @Accept json
// @Produce json
// @Param id path string true "Company ID (UUID)"
// @Param request body UpdateCompanyRequest true "Fields to update"
// @Success 200 {object} Response{data=domain.Company} "Company updated"
// @Failure 404 {object} ErrorResponseBody "Company not found"
// @Security BearerAuth
// @Router /companies/{id} [put]
func (h *CompanyHandler) Update(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	companyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid company ID")
		return
	}

	var input service.UpdateCompanyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	company, err := h.companyService.Update(c.Request.Context(), tenantID, companyID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, company)
}

// Delete handles DELETE /api/v1/companies/:id
// @Summary Delete a company
// @Description Delete a company (admin only)
// @Tags companies
// @Produce json
// @Param id path string true "Company ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Company deleted"
// @Failure 404 {object} ErrorResponseBody "Company not found"
// @Security BearerAuth
// @Router /companies/{id} [delete]
func (h *CompanyHandler) Delete(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	companyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid company ID")
		return
	}

	if err := h.companyService.Delete(c.Request.Context(), tenantID, companyID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "company deleted"})
}

// ListWorkers handles GET /api/v1/companies/:id/workers
// @Summary List a company's workers
// @Tags companies
// @Produce json
// @Param id path string true "Company ID (UUID)"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Worker,meta=PagMeta} "List of workers"
// @Failure 404 {object} ErrorResponseBody "Company not found"
// @Security BearerAuth
// @Router /companies/{id}/workers [get]
func (h *CompanyHandler) ListWorkers(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	companyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid company ID")
		return
	}

	offset, limit := parsePagination(c)

	workers, total, err := h.workerService.ListByCompany(c.Request.Context(), tenantID, companyID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, workers, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// ListMachines handles GET /api/v1/companies/:id/machines
// @Summary List a company's machines
// @Tags companies
// @Produce json
// @Param id path string true "Company ID (UUID)"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Machine,meta=PagMeta} "List of machines"
// @Failure 404 {object} ErrorResponseBody "Company not found"
// @Security BearerAuth
// @Router /companies/{id}/machines [get]
func (h *CompanyHandler) ListMachines(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	companyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid company ID")
		return
	}

	offset, limit := parsePagination(c)

	machines, total, err := h.machineService.ListByCompany(c.Request.Context(), tenantID, companyID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, machines, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// parsePagination extracts offset/limit query params with the usual bounds.
func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}
