package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"obrapass/internal/classifier"
	httpclassifier "obrapass/internal/classifier/http"
	noopclassifier "obrapass/internal/classifier/noop"
	"obrapass/internal/compliance"
	"obrapass/internal/config"
	"obrapass/internal/handler"
	"obrapass/internal/port"
	"obrapass/internal/registry"
	"obrapass/internal/repository/postgres"
	"obrapass/internal/router"
	"obrapass/internal/service"
	s3storage "obrapass/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Repositories
	tenantRepo := postgres.NewTenantRepo(db)
	userRepo := postgres.NewUserRepo(db)
	companyRepo := postgres.NewCompanyRepo(db)
	siteRepo := postgres.NewSiteRepo(db)
	workerRepo := postgres.NewWorkerRepo(db)
	machineRepo := postgres.NewMachineRepo(db)
	documentRepo := postgres.NewDocumentRepo(db)
	templateRepo := postgres.NewMappingTemplateRepo(db)
	ruleRepo := postgres.NewRequirementRuleRepo(db)
	exportJobRepo := postgres.NewExportJobRepo(db)

	// Object storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Document classifier
	classifier.RegisterProvider("http", func(c *config.ClassifierConfig) (port.DocumentClassifier, error) {
		return httpclassifier.NewClassifier(c), nil
	})
	classifier.RegisterProvider("noop", func(*config.ClassifierConfig) (port.DocumentClassifier, error) {
		return noopclassifier.NewClassifier(), nil
	})
	docClassifier, err := classifier.NewClassifier(&cfg.Classifier)
	if err != nil {
		return fmt.Errorf("failed to initialize classifier: %w", err)
	}

	// Registry and compliance engine
	reg := registry.New(templateRepo, ruleRepo)
	engine := compliance.NewEngine()

	// Services
	authSvc := service.NewAuthService(userRepo, tenantRepo, cfg.JWT)
	tenantSvc := service.NewTenantService(tenantRepo)
	userSvc := service.NewUserService(userRepo)
	companySvc := service.NewCompanyService(companyRepo)
	siteSvc := service.NewSiteService(siteRepo, workerRepo, machineRepo)
	workerSvc := service.NewWorkerService(workerRepo, companyRepo)
	machineSvc := service.NewMachineService(machineRepo, companyRepo)
	documentSvc := service.NewDocumentService(documentRepo, workerRepo, machineRepo, siteRepo, companyRepo, s3Client, docClassifier, &cfg.S3)
	templateSvc := service.NewTemplateService(templateRepo)
	requirementSvc := service.NewRequirementService(ruleRepo, reg)
	complianceSvc := service.NewComplianceService(reg, engine, siteRepo, companyRepo, workerRepo, machineRepo, documentRepo)
	exportSvc := service.NewExportService(exportJobRepo, siteRepo, companyRepo, workerRepo, machineRepo, documentRepo, reg, engine)

	// Export queue worker, created before the handlers so readiness can
	// watch its pulse.
	worker := service.NewExportQueueWorker(exportJobRepo, exportSvc, service.ExportQueueConfig{
		PollInterval: time.Duration(cfg.Queue.PollIntervalSecs) * time.Second,
		MaxRetries:   cfg.Queue.MaxRetries,
		Concurrency:  cfg.Queue.Concurrency,
	})
	queueStale := 3 * time.Duration(cfg.Queue.PollIntervalSecs) * time.Second

	// Handlers
	handlers := router.Handlers{
		Auth:        handler.NewAuthHandler(authSvc),
		Tenant:      handler.NewTenantHandler(tenantSvc),
		User:        handler.NewUserHandler(userSvc),
		Company:     handler.NewCompanyHandler(companySvc, workerSvc, machineSvc),
		Site:        handler.NewSiteHandler(siteSvc, complianceSvc),
		Worker:      handler.NewWorkerHandler(workerSvc),
		Machine:     handler.NewMachineHandler(machineSvc),
		Document:    handler.NewDocumentHandler(documentSvc),
		Template:    handler.NewTemplateHandler(templateSvc),
		Requirement: handler.NewRequirementHandler(requirementSvc),
		Compliance:  handler.NewComplianceHandler(complianceSvc),
		Export:      handler.NewExportHandler(exportSvc),
		Health:      handler.NewHealthHandler(db, worker, queueStale),
	}

	r := router.Setup(authSvc, cfg.CORS.AllowedOrigins, handlers)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		worker.Start(ctx)
	}()

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		stop()
		<-workerDone
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Printf("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	<-workerDone
	log.Printf("Shutdown complete")

	return nil
}
