package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"obrapass/internal/domain"
	"obrapass/internal/handler"
	"obrapass/internal/middleware"
	"obrapass/internal/service"
)

// Handlers bundles every handler the router mounts.
type Handlers struct {
	Auth        *handler.AuthHandler
	Tenant      *handler.TenantHandler
	User        *handler.UserHandler
	Company     *handler.CompanyHandler
	Site        *handler.SiteHandler
	Worker      *handler.WorkerHandler
	Machine     *handler.MachineHandler
	Document    *handler.DocumentHandler
	Template    *handler.TemplateHandler
	Requirement *handler.RequirementHandler
	Compliance  *handler.ComplianceHandler
	Export      *handler.ExportHandler
	Health      *handler.HealthHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(authSvc service.AuthService, allowedOrigins []string, h Handlers) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	// API documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.RefreshToken)

	// Protected routes - require valid JWT and an active tenant
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))
	protected.Use(middleware.TenantGuard())

	// User management (tenant-scoped)
	users := protected.Group("/users")
	users.POST("", middleware.RequireRole(domain.RoleAdmin), h.User.Create)
	users.GET("", middleware.RequireRole(domain.RoleAdmin), h.User.List)
	users.GET("/:id", h.User.GetByID)
	users.PUT("/:id", h.User.Update)
	users.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), h.User.Delete)

	// Subcontractor companies
	companies := protected.Group("/companies")
	companies.POST("", h.Company.Create)
	companies.GET("", h.Company.List)
	companies.GET("/:id", h.Company.GetByID)
	companies.PUT("/:id", h.Company.Update)
	companies.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), h.Company.Delete)
	companies.GET("/:id/workers", h.Company.ListWorkers)
	companies.GET("/:id/machines", h.Company.ListMachines)

	// Construction sites, assignments, and site-level compliance
	sites := protected.Group("/sites")
	sites.POST("", h.Site.Create)
	sites.GET("", h.Site.List)
	sites.GET("/:id", h.Site.GetByID)
	sites.PUT("/:id", h.Site.Update)
	sites.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), h.Site.Delete)
	sites.GET("/:id/workers", h.Site.ListWorkers)
	sites.POST("/:id/workers/:workerID", h.Site.AssignWorker)
	sites.DELETE("/:id/workers/:workerID", h.Site.RemoveWorker)
	sites.GET("/:id/machines", h.Site.ListMachines)
	sites.POST("/:id/machines/:machineID", h.Site.AssignMachine)
	sites.DELETE("/:id/machines/:machineID", h.Site.RemoveMachine)
	sites.GET("/:id/compliance", h.Site.Compliance)
	sites.GET("/:id/compliance/report", h.Site.ComplianceReport)

	// Workers
	workers := protected.Group("/workers")
	workers.POST("", h.Worker.Create)
	workers.GET("/:id", h.Worker.GetByID)
	workers.PUT("/:id", h.Worker.Update)
	workers.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), h.Worker.Delete)

	// Machines
	machines := protected.Group("/machines")
	machines.POST("", h.Machine.Create)
	machines.GET("/:id", h.Machine.GetByID)
	machines.PUT("/:id", h.Machine.Update)
	machines.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), h.Machine.Delete)

	// Compliance documents
	documents := protected.Group("/documents")
	documents.POST("", h.Document.Upload)
	documents.GET("", h.Document.List)
	documents.GET("/:id", h.Document.GetByID)
	documents.POST("/:id/classify", h.Document.RetryClassification)
	documents.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), h.Document.Delete)

	// Mapping templates (versioned per platform)
	templates := protected.Group("/templates")
	templates.POST("", middleware.RequireRole(domain.RoleAdmin), h.Template.Create)
	templates.POST("/dry-run", middleware.RequireRole(domain.RoleAdmin), h.Template.DryRun)
	templates.GET("/:platform", h.Template.GetLatest)
	templates.GET("/:platform/versions", h.Template.ListVersions)
	templates.GET("/:platform/versions/:version", h.Template.GetVersion)

	// Requirement rules
	requirements := protected.Group("/requirements")
	requirements.POST("", middleware.RequireRole(domain.RoleAdmin), h.Requirement.Create)
	requirements.GET("", h.Requirement.List)
	requirements.GET("/:id", h.Requirement.GetByID)
	requirements.PUT("/:id", middleware.RequireRole(domain.RoleAdmin), h.Requirement.Update)
	requirements.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), h.Requirement.Delete)

	// Direct entity compliance checks
	protected.GET("/compliance/check", h.Compliance.CheckEntity)

	// Export jobs
	exports := protected.Group("/exports")
	exports.POST("", h.Export.Request)
	exports.GET("", h.Export.List)
	exports.GET("/:id", h.Export.GetByID)

	// Admin routes - tenant management
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(authSvc))
	admin.Use(middleware.RequireRole(domain.RoleAdmin))
	admin.POST("/tenants", h.Tenant.Create)
	admin.GET("/tenants", h.Tenant.List)
	admin.GET("/tenants/:id", h.Tenant.GetByID)
	admin.PUT("/tenants/:id", h.Tenant.Update)
	admin.DELETE("/tenants/:id", h.Tenant.Delete)

	return r
}
