package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"obrapass/internal/compliance"
	"obrapass/internal/domain"
	"obrapass/internal/mapping"
	"obrapass/internal/middleware"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondAccepted sends a 202 success response for queued work.
func RespondAccepted(c *gin.Context, data interface{}) {
	c.JSON(http.StatusAccepted, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	var mappingCfgErr *mapping.ConfigError
	var resolutionErr *mapping.ResolutionError
	var ruleCfgErr *compliance.ConfigError

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN", "forbidden"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials"
	case errors.Is(err, domain.ErrTenantInactive):
		return http.StatusForbidden, "TENANT_INACTIVE", "tenant is inactive"
	case errors.Is(err, domain.ErrUserInactive):
		return http.StatusForbidden, "USER_INACTIVE", "user is inactive"
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusConflict, "DUPLICATE_EMAIL", "email already exists for this tenant"
	case errors.Is(err, domain.ErrDuplicateTenantSlug):
		return http.StatusConflict, "DUPLICATE_SLUG", "tenant slug already exists"
	case errors.Is(err, domain.ErrInvalidTenantSlug):
		return http.StatusBadRequest, "INVALID_SLUG", "tenant slug must be lowercase alphanumerics and dashes"
	case errors.Is(err, domain.ErrInvalidRole):
		return http.StatusBadRequest, "INVALID_ROLE", "invalid user role; allowed: admin, member"
	case errors.Is(err, domain.ErrCompanyNotFound):
		return http.StatusNotFound, "COMPANY_NOT_FOUND", "company not found"
	case errors.Is(err, domain.ErrSiteNotFound):
		return http.StatusNotFound, "SITE_NOT_FOUND", "site not found"
	case errors.Is(err, domain.ErrWorkerNotFound):
		return http.StatusNotFound, "WORKER_NOT_FOUND", "worker not found"
	case errors.Is(err, domain.ErrMachineNotFound):
		return http.StatusNotFound, "MACHINE_NOT_FOUND", "machine not found"
	case errors.Is(err, domain.ErrDocumentNotFound):
		return http.StatusNotFound, "DOCUMENT_NOT_FOUND", "document not found"
	case errors.Is(err, domain.ErrUnknownPlatform):
		return http.StatusBadRequest, "UNKNOWN_PLATFORM", "unknown platform; allowed: nalanda, ctaima, ecoordina"
	case errors.Is(err, domain.ErrInvalidEntityType):
		return http.StatusBadRequest, "INVALID_ENTITY_TYPE", "invalid entity type; allowed: trabajador, maquinaria, obra, empresa"
	case errors.Is(err, domain.ErrInvalidRiskProfile):
		return http.StatusBadRequest, "INVALID_RISK_PROFILE", "invalid risk profile; allowed: low, medium, high"
	case errors.Is(err, domain.ErrTemplateNotFound):
		return http.StatusNotFound, "TEMPLATE_NOT_FOUND", "mapping template not found"
	case errors.Is(err, domain.ErrRequirementRuleNotFound):
		return http.StatusNotFound, "REQUIREMENT_RULE_NOT_FOUND", "requirement rule not found"
	case errors.Is(err, domain.ErrExportJobNotFound):
		return http.StatusNotFound, "EXPORT_JOB_NOT_FOUND", "export job not found"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: pdf, jpg, png"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrUploadFailed):
		return http.StatusInternalServerError, "UPLOAD_FAILED", "file upload to storage failed"
	case errors.Is(err, domain.ErrDuplicateAssignment):
		return http.StatusConflict, "DUPLICATE_ASSIGNMENT", "entity is already assigned to this site"
	case errors.As(err, &mappingCfgErr):
		return http.StatusBadRequest, "INVALID_TEMPLATE", mappingCfgErr.Error()
	case errors.As(err, &resolutionErr):
		return http.StatusUnprocessableEntity, "UNRESOLVED_SOURCE", resolutionErr.Error()
	case errors.As(err, &ruleCfgErr):
		return http.StatusBadRequest, "INVALID_RULE", ruleCfgErr.Error()
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// extractAuthContext extracts tenant ID, user ID, and role from the request context.
// Returns false if auth context is missing (error response already written).
func extractAuthContext(c *gin.Context) (tenantID, userID uuid.UUID, role domain.UserRole, ok bool) {
	var err error
	tenantID, err = middleware.GetTenantID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing tenant context")
		return uuid.Nil, uuid.Nil, "", false
	}
	userID, err = middleware.GetUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return uuid.Nil, uuid.Nil, "", false
	}
	role = domain.UserRole(middleware.GetRole(c))
	return tenantID, userID, role, true
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}

// parsePlatform validates a platform path or query value.
func parsePlatform(value string) (domain.Platform, error) {
	p := domain.Platform(value)
	if !domain.AllowedPlatforms[p] {
		return "", domain.ErrUnknownPlatform
	}
	return p, nil
}
