package compliance

import (
	"fmt"

	"github.com/google/uuid"

	"obrapass/internal/domain"
)

// Op is a validated assertion operator.
type Op string

const (
	OpNotEmpty Op = "notEmpty"
	OpGT       Op = ">"
	OpGTE      Op = ">="
	OpLT       Op = "<"
	OpLTE      Op = "<="
	OpEQ       Op = "=="
)

var knownOps = map[Op]bool{
	OpNotEmpty: true,
	OpGT:       true,
	OpGTE:      true,
	OpLT:       true,
	OpLTE:      true,
	OpEQ:       true,
}

// CompiledRuleSet is an immutable, pre-validated set of requirement rules
// for one (tenant, platform) pair. Predicates are checked once here; the
// engine never sees an unknown op at evaluation time.
type CompiledRuleSet struct {
	TenantID uuid.UUID
	Platform domain.Platform

	rules []compiledRule
}

type compiledRule struct {
	rule       domain.RequirementRule
	predicates []compiledPredicate
}

type compiledPredicate struct {
	when map[string]interface{}
	must []compiledAssert
}

type compiledAssert struct {
	field string
	op    Op
	value interface{}
}

// CompileRuleSet validates and compiles requirement rules. A malformed
// predicate aborts the whole set with a ConfigError; a bad rule set affects
// every document identically, so it fails fast.
func CompileRuleSet(tenantID uuid.UUID, platform domain.Platform, rules []domain.RequirementRule) (*CompiledRuleSet, error) {
	rs := &CompiledRuleSet{
		TenantID: tenantID,
		Platform: platform,
		rules:    make([]compiledRule, 0, len(rules)),
	}

	for i := range rules {
		rule := rules[i]
		cr := compiledRule{rule: rule, predicates: make([]compiledPredicate, 0, len(rule.Predicates))}
		for _, p := range rule.Predicates {
			cp := compiledPredicate{when: p.When, must: make([]compiledAssert, 0, len(p.Must))}
			for _, a := range p.Must {
				if a.Field == "" {
					return nil, &ConfigError{RuleID: rule.ID, Detail: "assertion without a field"}
				}
				op := Op(a.Op)
				if !knownOps[op] {
					return nil, &ConfigError{RuleID: rule.ID, Detail: fmt.Sprintf("unknown op %q", a.Op)}
				}
				if op != OpNotEmpty && a.Value == nil {
					return nil, &ConfigError{RuleID: rule.ID, Detail: fmt.Sprintf("op %q requires a value", a.Op)}
				}
				cp.must = append(cp.must, compiledAssert{field: a.Field, op: op, value: a.Value})
			}
			cr.predicates = append(cr.predicates, cp)
		}
		rs.rules = append(rs.rules, cr)
	}

	return rs, nil
}

// RuleCount returns the number of compiled rules.
func (rs *CompiledRuleSet) RuleCount() int { return len(rs.rules) }
