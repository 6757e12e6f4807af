package compliance

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"obrapass/internal/domain"
)

// todayLiteral is the assertion value that resolves to the evaluation-time
// date, used for expiry-freshness checks.
const todayLiteral = "today"

const dateLayout = "2006-01-02"

// Document is the engine's view of a compliance document: its category plus
// a flat field map built by the caller from the stored record and its AI
// extraction metadata.
type Document struct {
	ID       uuid.UUID
	Category string
	Fields   map[string]interface{}
}

// EntityContext scopes an evaluation to one entity kind and risk profile.
type EntityContext struct {
	EntityType  domain.EntityType
	RiskProfile domain.RiskProfile
}

// RuleResult is the outcome of one requirement rule.
type RuleResult struct {
	RuleID    uuid.UUID `json:"rule_id"`
	Category  string    `json:"categoria"`
	Mandatory bool      `json:"obligatorio"`
	Passed    bool      `json:"passed"`
	Reasons   []string  `json:"reasons,omitempty"`
}

// Result aggregates all rule outcomes for an entity. A failing document is
// business-as-usual, not an error: callers render Reasons as actionable
// compliance messages.
type Result struct {
	Compliant bool         `json:"compliant"`
	Results   []RuleResult `json:"results"`
}

// Engine evaluates compiled requirement rule sets against documents. It is
// stateless apart from its clock and safe for concurrent use.
type Engine struct {
	now func() time.Time
}

// NewEngine creates an Engine using the real clock.
func NewEngine() *Engine {
	return &Engine{now: time.Now}
}

// NewEngineWithClock creates an Engine with a fixed clock, for tests and
// reproducible re-evaluation.
func NewEngineWithClock(now func() time.Time) *Engine {
	return &Engine{now: now}
}

// Evaluate runs every rule matching the entity context against the entity's
// documents. An entity is compliant iff every mandatory category has at
// least one document present and every present document satisfies all
// applicable assertions.
func (e *Engine) Evaluate(rs *CompiledRuleSet, ec EntityContext, docs []Document) *Result {
	today := truncateToDay(e.now().UTC())

	byCategory := make(map[string][]Document)
	for _, d := range docs {
		byCategory[d.Category] = append(byCategory[d.Category], d)
	}

	res := &Result{Compliant: true}
	for i := range rs.rules {
		cr := &rs.rules[i]
		if cr.rule.AppliesTo != ec.EntityType || cr.rule.RiskProfile != ec.RiskProfile {
			continue
		}

		rr := RuleResult{
			RuleID:    cr.rule.ID,
			Category:  cr.rule.Category,
			Mandatory: cr.rule.Mandatory,
			Passed:    true,
		}

		matching := byCategory[cr.rule.Category]
		if cr.rule.Mandatory && len(matching) == 0 {
			rr.Passed = false
			rr.Reasons = append(rr.Reasons,
				fmt.Sprintf("mandatory document category %q is missing", cr.rule.Category))
		}

		for _, doc := range matching {
			for _, p := range cr.predicates {
				if !guardMatches(p.when, doc.Fields) {
					continue
				}
				for _, a := range p.must {
					if reason := e.checkAssert(a, doc, today); reason != "" {
						rr.Passed = false
						rr.Reasons = append(rr.Reasons, reason)
					}
				}
			}
		}

		if !rr.Passed {
			res.Compliant = false
		}
		res.Results = append(res.Results, rr)
	}

	return res
}

// DocumentEligible reports whether one document satisfies every applicable
// assertion of the rules covering its category. It is the export-side gate:
// only documents that hold up under the platform's rules may be projected.
// A category no rule covers has nothing to fail and passes through.
// Presence rules do not apply here; missing categories are an entity
// verdict, not a property of any single document.
func (e *Engine) DocumentEligible(rs *CompiledRuleSet, ec EntityContext, doc Document) bool {
	today := truncateToDay(e.now().UTC())

	for i := range rs.rules {
		cr := &rs.rules[i]
		if cr.rule.AppliesTo != ec.EntityType || cr.rule.RiskProfile != ec.RiskProfile {
			continue
		}
		if cr.rule.Category != doc.Category {
			continue
		}
		for _, p := range cr.predicates {
			if !guardMatches(p.when, doc.Fields) {
				continue
			}
			for _, a := range p.must {
				if e.checkAssert(a, doc, today) != "" {
					return false
				}
			}
		}
	}
	return true
}

// guardMatches reports whether every when key/value pair equals the
// document's field. A mismatch means the predicate does not apply; it is a
// skip, not a failure.
func guardMatches(when map[string]interface{}, fields map[string]interface{}) bool {
	for k, want := range when {
		got, ok := fields[k]
		if !ok || !looseEqual(got, want) {
			return false
		}
	}
	return true
}

func (e *Engine) checkAssert(a compiledAssert, doc Document, today time.Time) string {
	val, present := doc.Fields[a.field]

	switch a.op {
	case OpNotEmpty:
		if !present || val == nil || fmt.Sprint(val) == "" {
			return fmt.Sprintf("field %q must not be empty", a.field)
		}
		return ""
	default:
		if !present || val == nil {
			return fmt.Sprintf("field %q is absent, expected %s %v", a.field, a.op, a.value)
		}
		if a.value == todayLiteral {
			return checkDateAssert(a, val, today)
		}
		return checkCompareAssert(a, val)
	}
}

func checkDateAssert(a compiledAssert, val interface{}, today time.Time) string {
	d, ok := parseDate(val)
	if !ok {
		return fmt.Sprintf("field %q: %v is not a date", a.field, val)
	}
	d = truncateToDay(d)

	var pass bool
	switch a.op {
	case OpGT:
		pass = d.After(today)
	case OpGTE:
		pass = !d.Before(today)
	case OpLT:
		pass = d.Before(today)
	case OpLTE:
		pass = !d.After(today)
	case OpEQ:
		pass = d.Equal(today)
	}
	if !pass {
		return fmt.Sprintf("field %q: expected date %s today, got %s",
			a.field, a.op, d.Format(dateLayout))
	}
	return ""
}

func checkCompareAssert(a compiledAssert, val interface{}) string {
	cmp, ok := compareValues(val, a.value)
	if !ok {
		return fmt.Sprintf("field %q: cannot compare %v with %v", a.field, val, a.value)
	}

	var pass bool
	switch a.op {
	case OpGT:
		pass = cmp > 0
	case OpGTE:
		pass = cmp >= 0
	case OpLT:
		pass = cmp < 0
	case OpLTE:
		pass = cmp <= 0
	case OpEQ:
		pass = cmp == 0
	}
	if !pass {
		return fmt.Sprintf("field %q: expected %s %v, got %v", a.field, a.op, a.value, val)
	}
	return ""
}

// compareValues compares numerically when both sides parse as numbers and
// lexically when both are strings. Booleans compare for equality with
// false < true. Anything else (objects, arrays, mixed kinds) is not
// comparable and surfaces as an assertion failure, not a silent coercion.
func compareValues(a, b interface{}) (int, bool) {
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if aok && bok {
		switch {
		case af < bf:
			return -1, true
		case af > bf:
			return 1, true
		default:
			return 0, true
		}
	}

	if as, ok := a.(string); ok {
		if bs, ok := b.(string); ok {
			switch {
			case as < bs:
				return -1, true
			case as > bs:
				return 1, true
			default:
				return 0, true
			}
		}
	}

	if ab, ok := a.(bool); ok {
		if bb, ok := b.(bool); ok {
			switch {
			case ab == bb:
				return 0, true
			case bb:
				return -1, true
			default:
				return 1, true
			}
		}
	}

	return 0, false
}

func looseEqual(a, b interface{}) bool {
	cmp, ok := compareValues(a, b)
	return ok && cmp == 0
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func parseDate(v interface{}) (time.Time, bool) {
	switch d := v.(type) {
	case time.Time:
		return d, true
	case string:
		if t, err := time.Parse(dateLayout, d); err == nil {
			return t, true
		}
		if t, err := time.Parse(time.RFC3339, d); err == nil {
			return t, true
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
