package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"obrapass/internal/domain"
	"obrapass/internal/port"
)

// NotificationService sends expiry digest emails to tenant admins: one email
// per admin listing every document expiring inside the configured window.
type NotificationService interface {
	SendExpiryDigests(ctx context.Context) error
	SendTenantDigest(ctx context.Context, tenantID uuid.UUID) (int, error)
}

type notificationService struct {
	tenants    port.TenantRepository
	users      port.UserRepository
	docs       port.DocumentRepository
	workers    port.WorkerRepository
	machines   port.MachineRepository
	sites      port.SiteRepository
	companies  port.CompanyRepository
	sender     port.EmailSender
	windowDays int
}

// NewNotificationService creates a new NotificationService implementation.
func NewNotificationService(
	tenants port.TenantRepository,
	users port.UserRepository,
	docs port.DocumentRepository,
	workers port.WorkerRepository,
	machines port.MachineRepository,
	sites port.SiteRepository,
	companies port.CompanyRepository,
	sender port.EmailSender,
	windowDays int,
) NotificationService {
	return &notificationService{
		tenants:    tenants,
		users:      users,
		docs:       docs,
		workers:    workers,
		machines:   machines,
		sites:      sites,
		companies:  companies,
		sender:     sender,
		windowDays: windowDays,
	}
}

// SendExpiryDigests walks every active tenant. A failing tenant is logged and
// skipped; one tenant's bad data never blocks another's digest.
func (s *notificationService) SendExpiryDigests(ctx context.Context) error {
	const pageSize = 100

	for offset := 0; ; offset += pageSize {
		tenants, total, err := s.tenants.List(ctx, offset, pageSize)
		if err != nil {
			return fmt.Errorf("notificationService.SendExpiryDigests: listing tenants: %w", err)
		}

		for i := range tenants {
			if !tenants[i].IsActive {
				continue
			}
			sent, err := s.SendTenantDigest(ctx, tenants[i].ID)
			if err != nil {
				log.Printf("notificationService: digest failed for tenant %s: %v", tenants[i].ID, err)
				continue
			}
			if sent > 0 {
				log.Printf("notificationService: sent %d digest(s) for tenant %s", sent, tenants[i].ID)
			}
		}

		if offset+pageSize >= total {
			return nil
		}
	}
}

// SendTenantDigest sends the expiry digest to every admin of one tenant and
// returns how many emails went out.
func (s *notificationService) SendTenantDigest(ctx context.Context, tenantID uuid.UUID) (int, error) {
	before := time.Now().UTC().AddDate(0, 0, s.windowDays)
	expiring, err := s.docs.ListExpiring(ctx, tenantID, before)
	if err != nil {
		return 0, fmt.Errorf("listing expiring documents: %w", err)
	}
	if len(expiring) == 0 {
		return 0, nil
	}

	items := make([]port.ExpiringDocument, 0, len(expiring))
	for i := range expiring {
		doc := &expiring[i]
		items = append(items, port.ExpiringDocument{
			Category:   doc.Category,
			EntityName: s.entityName(ctx, tenantID, doc.EntityType, doc.EntityID),
			FileName:   doc.FileName,
			ExpiresAt:  *doc.ExpiresAt,
		})
	}

	admins, err := s.users.ListAdmins(ctx, tenantID)
	if err != nil {
		return 0, fmt.Errorf("listing admins: %w", err)
	}

	sent := 0
	for i := range admins {
		if err := s.sender.SendExpiryDigest(ctx, admins[i].Email, admins[i].FullName, items); err != nil {
			log.Printf("notificationService: sending digest to %s failed: %v", admins[i].Email, err)
			continue
		}
		sent++
	}
	return sent, nil
}

// entityName resolves a display name for the document's owning entity. A
// dangling reference just yields the raw ID.
func (s *notificationService) entityName(ctx context.Context, tenantID uuid.UUID, entityType domain.EntityType, entityID uuid.UUID) string {
	switch entityType {
	case domain.EntityWorker:
		if w, err := s.workers.GetByID(ctx, tenantID, entityID); err == nil {
			return w.FirstName + " " + w.LastName
		}
	case domain.EntityMachine:
		if m, err := s.machines.GetByID(ctx, tenantID, entityID); err == nil {
			return m.SerialNumber
		}
	case domain.EntitySite:
		if site, err := s.sites.GetByID(ctx, tenantID, entityID); err == nil {
			return site.Name
		}
	case domain.EntityCompany:
		if c, err := s.companies.GetByID(ctx, tenantID, entityID); err == nil {
			return c.Name
		}
	}
	return entityID.String()
}
