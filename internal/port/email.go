package port

import (
	"context"
	"time"
)

// ExpiringDocument is one line of an expiry digest email.
type ExpiringDocument struct {
	Category   string
	EntityName string
	FileName   string
	ExpiresAt  time.Time
}

// EmailSender defines the contract for sending notification emails.
type EmailSender interface {
	SendExpiryDigest(ctx context.Context, toEmail, toName string, items []ExpiringDocument) error
}
