// Package registry resolves "latest" template and rule-set requests to
// concrete immutable compiled versions before handing them to the engines,
// so no engine operation ever sees configuration change mid-evaluation.
package registry

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"obrapass/internal/compliance"
	"obrapass/internal/domain"
	"obrapass/internal/mapping"
	"obrapass/internal/port"
)

type templateKey struct {
	tenantID uuid.UUID
	platform domain.Platform
	version  int
}

type ruleSetKey struct {
	tenantID uuid.UUID
	platform domain.Platform
}

// Registry loads and caches compiled mapping templates and requirement rule
// sets. Template versions are immutable once superseded, so the cache needs
// no invalidation beyond "a newer version exists"; rule sets are invalidated
// explicitly when rules change.
type Registry struct {
	templates port.MappingTemplateRepository
	rules     port.RequirementRuleRepository

	mu        sync.RWMutex
	tplCache  map[templateKey]*mapping.CompiledTemplate
	ruleCache map[ruleSetKey]*compliance.CompiledRuleSet
}

// New creates a Registry backed by the given repositories.
func New(templates port.MappingTemplateRepository, rules port.RequirementRuleRepository) *Registry {
	return &Registry{
		templates: templates,
		rules:     rules,
		tplCache:  make(map[templateKey]*mapping.CompiledTemplate),
		ruleCache: make(map[ruleSetKey]*compliance.CompiledRuleSet),
	}
}

// LatestTemplate resolves the active (highest) template version for a
// (tenant, platform) pair and returns it compiled.
func (r *Registry) LatestTemplate(ctx context.Context, tenantID uuid.UUID, platform domain.Platform) (*mapping.CompiledTemplate, error) {
	tpl, err := r.templates.GetLatest(ctx, tenantID, platform)
	if err != nil {
		return nil, err
	}
	return r.compiledTemplate(tpl)
}

// TemplateVersion returns a specific compiled template version.
func (r *Registry) TemplateVersion(ctx context.Context, tenantID uuid.UUID, platform domain.Platform, version int) (*mapping.CompiledTemplate, error) {
	key := templateKey{tenantID: tenantID, platform: platform, version: version}

	r.mu.RLock()
	ct, ok := r.tplCache[key]
	r.mu.RUnlock()
	if ok {
		return ct, nil
	}

	tpl, err := r.templates.GetVersion(ctx, tenantID, platform, version)
	if err != nil {
		return nil, err
	}
	return r.compiledTemplate(tpl)
}

func (r *Registry) compiledTemplate(tpl *domain.MappingTemplate) (*mapping.CompiledTemplate, error) {
	key := templateKey{tenantID: tpl.TenantID, platform: tpl.Platform, version: tpl.Version}

	r.mu.RLock()
	ct, ok := r.tplCache[key]
	r.mu.RUnlock()
	if ok {
		return ct, nil
	}

	ct, err := mapping.Compile(tpl)
	if err != nil {
		return nil, fmt.Errorf("compiling template %s/%s v%d: %w", tpl.TenantID, tpl.Platform, tpl.Version, err)
	}

	r.mu.Lock()
	r.tplCache[key] = ct
	r.mu.Unlock()
	return ct, nil
}

// RuleSet returns the compiled requirement rule set for a (tenant, platform)
// pair, loading and compiling it on first use.
func (r *Registry) RuleSet(ctx context.Context, tenantID uuid.UUID, platform domain.Platform) (*compliance.CompiledRuleSet, error) {
	key := ruleSetKey{tenantID: tenantID, platform: platform}

	r.mu.RLock()
	rs, ok := r.ruleCache[key]
	r.mu.RUnlock()
	if ok {
		return rs, nil
	}

	rules, err := r.rules.ListByPlatform(ctx, tenantID, platform)
	if err != nil {
		return nil, err
	}
	rs, err = compliance.CompileRuleSet(tenantID, platform, rules)
	if err != nil {
		return nil, fmt.Errorf("compiling rule set %s/%s: %w", tenantID, platform, err)
	}

	r.mu.Lock()
	r.ruleCache[key] = rs
	r.mu.Unlock()
	return rs, nil
}

// InvalidateRules drops the cached rule set for a (tenant, platform) pair.
// Called by the requirement service after any rule write.
func (r *Registry) InvalidateRules(tenantID uuid.UUID, platform domain.Platform) {
	r.mu.Lock()
	delete(r.ruleCache, ruleSetKey{tenantID: tenantID, platform: platform})
	r.mu.Unlock()
}
