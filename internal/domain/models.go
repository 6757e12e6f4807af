package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Tenant represents an isolated customer account. Every other entity is
// scoped to exactly one tenant.
type Tenant struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Slug      string    `db:"slug" json:"slug"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// User represents an authenticated user belonging to a tenant.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	TenantID     uuid.UUID `db:"tenant_id" json:"tenant_id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	Role         UserRole  `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Company represents a subcontractor company (empresa) whose compliance is tracked.
type Company struct {
	ID           uuid.UUID `db:"id" json:"id"`
	TenantID     uuid.UUID `db:"tenant_id" json:"tenant_id"`
	Name         string    `db:"name" json:"name"`
	TaxID        string    `db:"tax_id" json:"cif"`
	Address      string    `db:"address" json:"address"`
	ContactEmail string    `db:"contact_email" json:"contact_email"`
	Phone        string    `db:"phone" json:"phone"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Site represents a construction site (obra). Its risk profile decides which
// document categories are mandatory for entities working on it.
type Site struct {
	ID          uuid.UUID   `db:"id" json:"id"`
	TenantID    uuid.UUID   `db:"tenant_id" json:"tenant_id"`
	CompanyID   uuid.UUID   `db:"company_id" json:"company_id"`
	Name        string      `db:"name" json:"name"`
	Code        string      `db:"code" json:"code"`
	Address     string      `db:"address" json:"address"`
	RiskProfile RiskProfile `db:"risk_profile" json:"perfil_riesgo"`
	StartDate   *time.Time  `db:"start_date" json:"start_date"`
	EndDate     *time.Time  `db:"end_date" json:"end_date"`
	CreatedAt   time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time   `db:"updated_at" json:"updated_at"`
}

// Worker represents a worker (trabajador) employed by a company.
type Worker struct {
	ID             uuid.UUID `db:"id" json:"id"`
	TenantID       uuid.UUID `db:"tenant_id" json:"tenant_id"`
	CompanyID      uuid.UUID `db:"company_id" json:"company_id"`
	NationalID     string    `db:"national_id" json:"dni"`
	FirstName      string    `db:"first_name" json:"nombre"`
	LastName       string    `db:"last_name" json:"apellidos"`
	JobTitle       string    `db:"job_title" json:"puesto"`
	SocialSecurity string    `db:"social_security" json:"nss"`
	PRLLevel       string    `db:"prl_level" json:"nivel_prl"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// Machine represents a machine (maquinaria) owned by a company.
type Machine struct {
	ID           uuid.UUID `db:"id" json:"id"`
	TenantID     uuid.UUID `db:"tenant_id" json:"tenant_id"`
	CompanyID    uuid.UUID `db:"company_id" json:"company_id"`
	SerialNumber string    `db:"serial_number" json:"numero_serie"`
	Make         string    `db:"make" json:"marca"`
	Model        string    `db:"model" json:"modelo"`
	MachineType  string    `db:"machine_type" json:"tipo"`
	Plate        string    `db:"plate" json:"matricula"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// ComplianceDocument represents an uploaded compliance document. It weakly
// references its owning entity by type+id; a dangling reference is a
// compliance failure, never a crash.
type ComplianceDocument struct {
	ID          uuid.UUID            `db:"id" json:"id"`
	TenantID    uuid.UUID            `db:"tenant_id" json:"tenant_id"`
	EntityType  EntityType           `db:"entity_type" json:"entidad_tipo"`
	EntityID    uuid.UUID            `db:"entity_id" json:"entidad_id"`
	Category    string               `db:"category" json:"categoria"`
	Status      ClassificationStatus `db:"status" json:"status"`
	FileName    string               `db:"file_name" json:"file_name"`
	FileType    FileType             `db:"file_type" json:"file_type"`
	FileSize    int64                `db:"file_size" json:"file_size"`
	ContentType string               `db:"content_type" json:"content_type"`
	S3Bucket    string               `db:"s3_bucket" json:"-"`
	S3Key       string               `db:"s3_key" json:"-"`
	IssuedAt    *time.Time           `db:"issued_at" json:"fecha_emision"`
	ExpiresAt   *time.Time           `db:"expires_at" json:"fecha_caducidad"`
	Extraction  json.RawMessage      `db:"extraction" json:"metadatos"`
	UploadedBy  uuid.UUID            `db:"uploaded_by" json:"uploaded_by"`
	CreatedAt   time.Time            `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time            `db:"updated_at" json:"updated_at"`
}

// MappingRule projects one source field onto the target schema. From and to
// must agree on broadcast cardinality; the mapping package rejects mismatches
// at compile time, before any record is processed.
type MappingRule struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Transform string `json:"transform,omitempty"`
}

// MappingRuleList is a JSONB-backed ordered rule list.
type MappingRuleList []MappingRule

// Value implements driver.Valuer for JSONB storage.
func (l MappingRuleList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for JSONB storage.
func (l *MappingRuleList) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	case nil:
		*l = nil
		return nil
	default:
		return fmt.Errorf("MappingRuleList.Scan: unsupported type %T", src)
	}
}

// MappingTemplate is a versioned set of rules projecting internal entities
// onto an external platform's expected schema. Templates are immutable once
// created; edits produce a new version and the highest version is active.
type MappingTemplate struct {
	ID           uuid.UUID       `db:"id" json:"id"`
	TenantID     uuid.UUID       `db:"tenant_id" json:"tenant_id"`
	Platform     Platform        `db:"platform" json:"plataforma"`
	Version      int             `db:"version" json:"version"`
	TargetSchema json.RawMessage `db:"target_schema" json:"schema_destino"`
	Rules        MappingRuleList `db:"rules" json:"rules"`
	CreatedBy    uuid.UUID       `db:"created_by" json:"created_by"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
}

// Assertion is a single field-level check inside a requirement predicate.
type Assertion struct {
	Field string      `json:"field"`
	Op    string      `json:"op"`
	Value interface{} `json:"value,omitempty"`
}

// RequirementPredicate guards a list of assertions behind a field-equality match.
type RequirementPredicate struct {
	When map[string]interface{} `json:"when,omitempty"`
	Must []Assertion            `json:"must"`
}

// PredicateList is a JSONB-backed ordered predicate list.
type PredicateList []RequirementPredicate

// Value implements driver.Valuer for JSONB storage.
func (l PredicateList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for JSONB storage.
func (l *PredicateList) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	case nil:
		*l = nil
		return nil
	default:
		return fmt.Errorf("PredicateList.Scan: unsupported type %T", src)
	}
}

// RequirementRule declares whether a document category is mandatory for
// entities matching (applies-to, risk profile) on a platform, plus the
// field-level predicates documents of that category must satisfy.
type RequirementRule struct {
	ID          uuid.UUID     `db:"id" json:"id"`
	TenantID    uuid.UUID     `db:"tenant_id" json:"tenant_id"`
	Platform    Platform      `db:"platform" json:"plataforma"`
	AppliesTo   EntityType    `db:"applies_to" json:"aplica_a"`
	RiskProfile RiskProfile   `db:"risk_profile" json:"perfil_riesgo"`
	Category    string        `db:"category" json:"categoria"`
	Mandatory   bool          `db:"mandatory" json:"obligatorio"`
	Predicates  PredicateList `db:"predicates" json:"reglas_validacion"`
	IsActive    bool          `db:"is_active" json:"is_active"`
	// CreatedBy is nil for seeded rules, which have no authoring user.
	CreatedBy   *uuid.UUID    `db:"created_by" json:"created_by,omitempty"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at" json:"updated_at"`
}

// ExportJob represents one transform run of a site against a platform
// template. The template version is pinned when the job starts so a template
// never changes mid-run.
type ExportJob struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	TenantID        uuid.UUID       `db:"tenant_id" json:"tenant_id"`
	Platform        Platform        `db:"platform" json:"plataforma"`
	SiteID          uuid.UUID       `db:"site_id" json:"site_id"`
	TemplateVersion int             `db:"template_version" json:"template_version"`
	Status          ExportStatus    `db:"status" json:"status"`
	Payload         json.RawMessage `db:"payload" json:"payload,omitempty"`
	ErrorMessage    string          `db:"error_message" json:"error_message,omitempty"`
	Attempts        int             `db:"attempts" json:"attempts"`
	RequestedBy     uuid.UUID       `db:"requested_by" json:"requested_by"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`
	CompletedAt     *time.Time      `db:"completed_at" json:"completed_at"`
}
