package domain

// UserRole defines the role hierarchy within a tenant.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleMember UserRole = "member"
)

// AllowedUserRoles is the set of valid user role values.
var AllowedUserRoles = map[UserRole]bool{
	RoleAdmin:  true,
	RoleMember: true,
}

// Platform identifies an external compliance platform.
type Platform string

const (
	PlatformNalanda   Platform = "nalanda"
	PlatformCTAIMA    Platform = "ctaima"
	PlatformECoordina Platform = "ecoordina"
)

// AllowedPlatforms is the set of platforms exports can target.
var AllowedPlatforms = map[Platform]bool{
	PlatformNalanda:   true,
	PlatformCTAIMA:    true,
	PlatformECoordina: true,
}

// EntityType identifies which kind of entity a document or requirement rule
// applies to. Values match the wire format used by requirement rule records.
type EntityType string

const (
	EntityWorker  EntityType = "trabajador"
	EntityMachine EntityType = "maquinaria"
	EntitySite    EntityType = "obra"
	EntityCompany EntityType = "empresa"
)

// AllowedEntityTypes is the set of valid entity type values.
var AllowedEntityTypes = map[EntityType]bool{
	EntityWorker:  true,
	EntityMachine: true,
	EntitySite:    true,
	EntityCompany: true,
}

// RiskProfile classifies a site by risk; it changes which documents are mandatory.
type RiskProfile string

const (
	RiskLow    RiskProfile = "low"
	RiskMedium RiskProfile = "medium"
	RiskHigh   RiskProfile = "high"
)

// AllowedRiskProfiles is the set of valid risk profile values.
var AllowedRiskProfiles = map[RiskProfile]bool{
	RiskLow:    true,
	RiskMedium: true,
	RiskHigh:   true,
}

// ClassificationStatus tracks the AI classification lifecycle of a document.
type ClassificationStatus string

const (
	ClassificationPending    ClassificationStatus = "pending"
	ClassificationClassified ClassificationStatus = "classified"
	ClassificationFailed     ClassificationStatus = "failed"
)

// ExportStatus tracks the lifecycle of an export job.
type ExportStatus string

const (
	ExportStatusQueued    ExportStatus = "queued"
	ExportStatusRunning   ExportStatus = "running"
	ExportStatusCompleted ExportStatus = "completed"
	ExportStatusFailed    ExportStatus = "failed"
)

// FileType represents the allowed file types for document upload.
type FileType string

const (
	FileTypePDF FileType = "pdf"
	FileTypeJPG FileType = "jpg"
	FileTypePNG FileType = "png"
)

// AllowedContentTypes maps MIME content types to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
	"image/jpeg":      FileTypeJPG,
	"image/png":       FileTypePNG,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
}
