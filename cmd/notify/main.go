// Command notify sends expiry digest emails to tenant admins for documents
// expiring inside the configured window. Intended to run once per day from
// cron or a scheduled job.
// Usage: go run ./cmd/notify
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"obrapass/internal/config"
	"obrapass/internal/email/noop"
	"obrapass/internal/email/ses"
	"obrapass/internal/port"
	"obrapass/internal/repository/postgres"
	"obrapass/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer func() { _ = db.Close() }()

	sender, err := newSender(&cfg.Email)
	if err != nil {
		return fmt.Errorf("initializing email sender: %w", err)
	}

	notifySvc := service.NewNotificationService(
		postgres.NewTenantRepo(db),
		postgres.NewUserRepo(db),
		postgres.NewDocumentRepo(db),
		postgres.NewWorkerRepo(db),
		postgres.NewMachineRepo(db),
		postgres.NewSiteRepo(db),
		postgres.NewCompanyRepo(db),
		sender,
		cfg.Notify.ExpiryWindowDays,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
	defer cancel()

	log.Printf("sending expiry digests (window=%d days)", cfg.Notify.ExpiryWindowDays)
	if err := notifySvc.SendExpiryDigests(ctx); err != nil {
		return fmt.Errorf("sending expiry digests: %w", err)
	}
	log.Println("expiry digests sent")
	return nil
}

func newSender(cfg *config.EmailConfig) (port.EmailSender, error) {
	switch cfg.Provider {
	case "ses":
		return ses.NewSESSender(cfg.Region, cfg.FromAddress, cfg.FromName)
	case "noop":
		return noop.NewNoopSender(), nil
	default:
		return nil, fmt.Errorf("unknown email provider: %s", cfg.Provider)
	}
}
