package handler

import (
	"time"

	"github.com/google/uuid"

	"obrapass/internal/domain"
)

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// LoginRequest represents the login request body.
type LoginRequest struct {
	TenantSlug string `json:"tenant_slug" binding:"required" example:"constructora-norte"`
	Email      string `json:"email" binding:"required" example:"admin@constructora-norte.es"`
	Password   string `json:"password" binding:"required" example:"securepassword123"`
}

// RefreshRequest represents the token refresh request body.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// CreateTenantRequest represents the create tenant request body.
type CreateTenantRequest struct {
	Name string `json:"name" binding:"required" example:"Constructora Norte SA"`
	Slug string `json:"slug" binding:"required" example:"constructora-norte"`
}

// UpdateTenantRequest represents the update tenant request body.
type UpdateTenantRequest struct {
	Name     *string `json:"name" example:"Constructora Norte SL"`
	Slug     *string `json:"slug" example:"norte-sl"`
	IsActive *bool   `json:"is_active" example:"false"`
}

// CreateUserRequest represents the create user request body.
type CreateUserRequest struct {
	Email    string          `json:"email" binding:"required" example:"maria.lopez@constructora-norte.es"`
	Password string          `json:"password" binding:"required" example:"securepassword123"`
	FullName string          `json:"full_name" binding:"required" example:"Maria Lopez"`
	Role     domain.UserRole `json:"role" binding:"required" example:"member"`
}

// UpdateUserRequest represents the update user request body.
type UpdateUserRequest struct {
	Email    *string          `json:"email" example:"maria.garcia@constructora-norte.es"`
	FullName *string          `json:"full_name" example:"Maria Garcia"`
	Role     *domain.UserRole `json:"role" example:"admin"`
	IsActive *bool            `json:"is_active" example:"true"`
}

// CreateCompanyRequest represents the register company request body.
type CreateCompanyRequest struct {
	Name         string `json:"name" binding:"required" example:"Excavaciones Sur SL"`
	TaxID        string `json:"cif" binding:"required" example:"B12345678"`
	Address      string `json:"address" example:"Calle Mayor 12, Sevilla"`
	ContactEmail string `json:"contact_email" example:"info@excavacionessur.es"`
	Phone        string `json:"phone" example:"+34 600 123 456"`
}

// UpdateCompanyRequest represents the update company request body.
type UpdateCompanyRequest struct {
	Name         *string `json:"name" example:"Excavaciones Sur SLU"`
	TaxID        *string `json:"cif" example:"B87654321"`
	Address      *string `json:"address" example:"Calle Mayor 14, Sevilla"`
	ContactEmail *string `json:"contact_email" example:"contacto@excavacionessur.es"`
	Phone        *string `json:"phone" example:"+34 600 654 321"`
}

// CreateSiteRequest represents the open site request body.
type CreateSiteRequest struct {
	CompanyID   uuid.UUID          `json:"company_id" binding:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name        string             `json:"name" binding:"required" example:"Torre Sevilla Fase 2"`
	Code        string             `json:"code" binding:"required" example:"TSV-2"`
	Address     string             `json:"address" example:"Isla de la Cartuja, Sevilla"`
	RiskProfile domain.RiskProfile `json:"perfil_riesgo" binding:"required" example:"high"`
	StartDate   *time.Time         `json:"start_date" example:"2026-02-01T00:00:00Z"`
	EndDate     *time.Time         `json:"end_date" example:"2027-08-31T00:00:00Z"`
}

// UpdateSiteRequest represents the update site request body.
type UpdateSiteRequest struct {
	Name        *string             `json:"name" example:"Torre Sevilla Fase 2B"`
	Code        *string             `json:"code" example:"TSV-2B"`
	Address     *string             `json:"address" example:"Isla de la Cartuja, Sevilla"`
	RiskProfile *domain.RiskProfile `json:"perfil_riesgo" example:"medium"`
	StartDate   *time.Time          `json:"start_date" example:"2026-03-01T00:00:00Z"`
	EndDate     *time.Time          `json:"end_date" example:"2027-10-31T00:00:00Z"`
}

// CreateWorkerRequest represents the register worker request body.
type CreateWorkerRequest struct {
	CompanyID      uuid.UUID `json:"company_id" binding:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	NationalID     string    `json:"dni" binding:"required" example:"12345678Z"`
	FirstName      string    `json:"nombre" binding:"required" example:"Juan"`
	LastName       string    `json:"apellidos" binding:"required" example:"Garcia Perez"`
	JobTitle       string    `json:"puesto" example:"encofrador"`
	SocialSecurity string    `json:"nss" example:"281234567890"`
	PRLLevel       string    `json:"nivel_prl" example:"20h"`
}

// UpdateWorkerRequest represents the update worker request body.
type UpdateWorkerRequest struct {
	NationalID     *string `json:"dni" example:"12345678Z"`
	FirstName      *string `json:"nombre" example:"Juan"`
	LastName       *string `json:"apellidos" example:"Garcia Lopez"`
	JobTitle       *string `json:"puesto" example:"jefe de equipo"`
	SocialSecurity *string `json:"nss" example:"281234567890"`
	PRLLevel       *string `json:"nivel_prl" example:"60h"`
}

// CreateMachineRequest represents the register machine request body.
type CreateMachineRequest struct {
	CompanyID    uuid.UUID `json:"company_id" binding:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	SerialNumber string    `json:"numero_serie" binding:"required" example:"CAT-320-00451"`
	Make         string    `json:"marca" example:"Caterpillar"`
	Model        string    `json:"modelo" example:"320 GC"`
	MachineType  string    `json:"tipo" example:"excavadora"`
	Plate        string    `json:"matricula" example:"E-1234-BCD"`
}

// UpdateMachineRequest represents the update machine request body.
type UpdateMachineRequest struct {
	SerialNumber *string `json:"numero_serie" example:"CAT-320-00451"`
	Make         *string `json:"marca" example:"Caterpillar"`
	Model        *string `json:"modelo" example:"320 GX"`
	MachineType  *string `json:"tipo" example:"excavadora"`
	Plate        *string `json:"matricula" example:"E-5678-FGH"`
}

// CreateTemplateRequest represents the create mapping template request body.
type CreateTemplateRequest struct {
	Platform     domain.Platform      `json:"plataforma" binding:"required" example:"nalanda"`
	TargetSchema interface{}          `json:"schema_destino"`
	Rules        []domain.MappingRule `json:"rules" binding:"required"`
}

// DryRunTemplateRequest represents the template dry-run request body.
type DryRunTemplateRequest struct {
	Platform     domain.Platform                     `json:"plataforma" binding:"required" example:"nalanda"`
	TargetSchema interface{}                         `json:"schema_destino"`
	Rules        []domain.MappingRule                `json:"rules" binding:"required"`
	Entities     map[string]map[string]interface{}   `json:"entidades"`
	Collections  map[string][]map[string]interface{} `json:"colecciones"`
}

// CreateRequirementRequest represents the create requirement rule request body.
type CreateRequirementRequest struct {
	Platform    domain.Platform               `json:"plataforma" binding:"required" example:"nalanda"`
	AppliesTo   domain.EntityType             `json:"aplica_a" binding:"required" example:"trabajador"`
	RiskProfile domain.RiskProfile            `json:"perfil_riesgo" binding:"required" example:"high"`
	Category    string                        `json:"categoria" binding:"required" example:"formacion_prl"`
	Mandatory   bool                          `json:"obligatorio" example:"true"`
	Predicates  []domain.RequirementPredicate `json:"reglas_validacion"`
}

// UpdateRequirementRequest represents the update requirement rule request body.
type UpdateRequirementRequest struct {
	AppliesTo   *domain.EntityType             `json:"aplica_a" example:"maquinaria"`
	RiskProfile *domain.RiskProfile            `json:"perfil_riesgo" example:"medium"`
	Category    *string                        `json:"categoria" example:"itv"`
	Mandatory   *bool                          `json:"obligatorio" example:"false"`
	Predicates  *[]domain.RequirementPredicate `json:"reglas_validacion"`
	IsActive    *bool                          `json:"is_active" example:"true"`
}

// RequestExportRequest represents the request export body.
type RequestExportRequest struct {
	Platform string    `json:"plataforma" binding:"required" example:"nalanda"`
	SiteID   uuid.UUID `json:"obra_id" binding:"required" example:"660e8400-e29b-41d4-a716-446655440001"`
}

// --- Response Types ---

// TokenResponse represents the authentication token response.
type TokenResponse struct {
	AccessToken  string    `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	RefreshToken string    `json:"refresh_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresAt    time.Time `json:"expires_at" example:"2026-01-15T10:30:00Z"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"database not reachable"`
}

// MessageResponse represents a simple message response.
type MessageResponse struct {
	Message string `json:"message" example:"operation completed successfully"`
}

// DocumentWithDownloadURL represents a document with its download URL.
type DocumentWithDownloadURL struct {
	Document    domain.ComplianceDocument `json:"document"`
	DownloadURL string                    `json:"download_url" example:"https://s3.amazonaws.com/obrapass-uploads/...?X-Amz-Signature=..."`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
