package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrTenantInactive      = errors.New("tenant is inactive")
	ErrUserInactive        = errors.New("user is inactive")
	ErrDuplicateEmail      = errors.New("email already exists for this tenant")
	ErrDuplicateTenantSlug = errors.New("tenant slug already exists")
	ErrInvalidTenantSlug   = errors.New("invalid tenant slug")
	ErrInvalidRole         = errors.New("invalid user role")

	ErrCompanyNotFound  = errors.New("company not found")
	ErrSiteNotFound     = errors.New("site not found")
	ErrWorkerNotFound   = errors.New("worker not found")
	ErrMachineNotFound  = errors.New("machine not found")
	ErrDocumentNotFound = errors.New("document not found")

	ErrUnknownPlatform    = errors.New("unknown compliance platform")
	ErrInvalidEntityType  = errors.New("invalid entity type")
	ErrInvalidRiskProfile = errors.New("invalid risk profile")

	ErrTemplateNotFound        = errors.New("mapping template not found")
	ErrRequirementRuleNotFound = errors.New("requirement rule not found")
	ErrExportJobNotFound       = errors.New("export job not found")

	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed        = errors.New("file upload to storage failed")

	ErrDuplicateAssignment = errors.New("entity already assigned to site")
)
