package mapping

import (
	"fmt"

	"github.com/google/uuid"

	"obrapass/internal/domain"
)

// CompiledTemplate is an immutable, pre-parsed mapping template. Paths and
// transforms are validated and parsed once here; Transform runs never
// re-parse rule strings.
type CompiledTemplate struct {
	TenantID uuid.UUID
	Platform domain.Platform
	Version  int

	rules    []compiledRule
	required map[string]bool
	schema   *schemaNode
}

type compiledRule struct {
	from      Path
	to        Path
	transform Transform
}

// Compile validates and compiles a mapping template. Any malformed rule
// aborts compilation with a ConfigError; no rule is ever partially applied.
func Compile(t *domain.MappingTemplate) (*CompiledTemplate, error) {
	schema, err := parseTargetSchema(t.TargetSchema)
	if err != nil {
		return nil, &ConfigError{RuleIndex: -1, Detail: err.Error()}
	}

	ct := &CompiledTemplate{
		TenantID: t.TenantID,
		Platform: t.Platform,
		Version:  t.Version,
		rules:    make([]compiledRule, 0, len(t.Rules)),
		required: requiredPaths(schema),
		schema:   schema,
	}

	for i, rule := range t.Rules {
		from, err := ParsePath(rule.From)
		if err != nil {
			return nil, &ConfigError{RuleIndex: i, Detail: fmt.Sprintf("from: %v", err)}
		}
		to, err := ParsePath(rule.To)
		if err != nil {
			return nil, &ConfigError{RuleIndex: i, Detail: fmt.Sprintf("to: %v", err)}
		}
		if from.Broadcast != to.Broadcast {
			return nil, &ConfigError{RuleIndex: i, Detail: fmt.Sprintf(
				"cardinality mismatch: from %q and to %q must both be scalar or both broadcast", rule.From, rule.To)}
		}
		if from.Broadcast && len(from.Head) != 1 {
			return nil, &ConfigError{RuleIndex: i, Detail: fmt.Sprintf(
				"from %q: broadcast source must name a top-level collection", rule.From)}
		}
		if !from.Broadcast && len(from.Head) < 2 {
			return nil, &ConfigError{RuleIndex: i, Detail: fmt.Sprintf(
				"from %q: scalar source must name an entity and a field", rule.From)}
		}
		tr, err := ParseTransform(rule.Transform)
		if err != nil {
			return nil, &ConfigError{RuleIndex: i, Detail: err.Error()}
		}
		ct.rules = append(ct.rules, compiledRule{from: from, to: to, transform: tr})
	}

	return ct, nil
}

// RuleCount returns the number of compiled rules.
func (t *CompiledTemplate) RuleCount() int { return len(t.rules) }

// CheckPayload validates a transform output against the template's target
// schema. Optional strictness mode; callers that hand payloads straight to a
// platform adapter may skip it.
func (t *CompiledTemplate) CheckPayload(payload map[string]interface{}) error {
	return checkPayload(t.schema, payload, "")
}
