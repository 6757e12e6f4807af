package noop

import (
	"context"
	"log"

	"obrapass/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs digests to stdout.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendExpiryDigest(_ context.Context, toEmail, toName string, items []port.ExpiringDocument) error {
	log.Printf("[NOOP EMAIL] Expiry digest for %s (%s): %d document(s)", toName, toEmail, len(items))
	for _, it := range items {
		log.Printf("[NOOP EMAIL]   - %s / %s (%s), expires %s",
			it.Category, it.EntityName, it.FileName, it.ExpiresAt.Format("2006-01-02"))
	}
	return nil
}
