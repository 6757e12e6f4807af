package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"obrapass/internal/domain"
	"obrapass/internal/port"
)

type requirementRuleRepo struct {
	db *sqlx.DB
}

// NewRequirementRuleRepo creates a new PostgreSQL-backed RequirementRuleRepository.
func NewRequirementRuleRepo(db *sqlx.DB) port.RequirementRuleRepository {
	return &requirementRuleRepo{db: db}
}

func (r *requirementRuleRepo) Create(ctx context.Context, rule *domain.RequirementRule) error {
	if rule.ID == (uuid.UUID{}) {
		rule.ID = uuid.New()
	}
	now := time.Now().UTC()
	rule.CreatedAt = now
	rule.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO requirement_rules (id, tenant_id, platform, applies_to, risk_profile,
			category, mandatory, predicates, is_active, created_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		rule.ID, rule.TenantID, rule.Platform, rule.AppliesTo, rule.RiskProfile,
		rule.Category, rule.Mandatory, rule.Predicates, rule.IsActive,
		rule.CreatedBy, rule.CreatedAt, rule.UpdatedAt)
	if err != nil {
		return fmt.Errorf("requirementRuleRepo.Create: %w", err)
	}
	return nil
}

func (r *requirementRuleRepo) GetByID(ctx context.Context, tenantID, ruleID uuid.UUID) (*domain.RequirementRule, error) {
	var rule domain.RequirementRule
	err := r.db.GetContext(ctx, &rule,
		"SELECT * FROM requirement_rules WHERE id = $1 AND tenant_id = $2", ruleID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRequirementRuleNotFound
		}
		return nil, fmt.Errorf("requirementRuleRepo.GetByID: %w", err)
	}
	return &rule, nil
}

func (r *requirementRuleRepo) ListByPlatform(ctx context.Context, tenantID uuid.UUID, platform domain.Platform) ([]domain.RequirementRule, error) {
	var rules []domain.RequirementRule
	err := r.db.SelectContext(ctx, &rules,
		`SELECT * FROM requirement_rules
		 WHERE tenant_id = $1 AND platform = $2 AND is_active = true
		 ORDER BY category, applies_to`,
		tenantID, platform)
	if err != nil {
		return nil, fmt.Errorf("requirementRuleRepo.ListByPlatform: %w", err)
	}
	return rules, nil
}

func (r *requirementRuleRepo) Update(ctx context.Context, rule *domain.RequirementRule) error {
	rule.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE requirement_rules SET applies_to = $1, risk_profile = $2, category = $3,
			mandatory = $4, predicates = $5, is_active = $6, updated_at = $7
		 WHERE id = $8 AND tenant_id = $9`,
		rule.AppliesTo, rule.RiskProfile, rule.Category, rule.Mandatory,
		rule.Predicates, rule.IsActive, rule.UpdatedAt, rule.ID, rule.TenantID)
	if err != nil {
		return fmt.Errorf("requirementRuleRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrRequirementRuleNotFound
	}
	return nil
}

func (r *requirementRuleRepo) Delete(ctx context.Context, tenantID, ruleID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM requirement_rules WHERE id = $1 AND tenant_id = $2", ruleID, tenantID)
	if err != nil {
		return fmt.Errorf("requirementRuleRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrRequirementRuleNotFound
	}
	return nil
}
