package compliance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"obrapass/internal/domain"
)

// fixedNow keeps date assertions reproducible.
var fixedNow = time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

func fixedEngine() *Engine {
	return NewEngineWithClock(func() time.Time { return fixedNow })
}

func compileRules(t *testing.T, rules ...domain.RequirementRule) *CompiledRuleSet {
	t.Helper()
	rs, err := CompileRuleSet(uuid.New(), domain.PlatformNalanda, rules)
	require.NoError(t, err)
	return rs
}

func workerContext() EntityContext {
	return EntityContext{EntityType: domain.EntityWorker, RiskProfile: domain.RiskHigh}
}

func TestEvaluate_MandatoryCategoryMissing(t *testing.T) {
	rs := compileRules(t, domain.RequirementRule{
		ID:          uuid.New(),
		AppliesTo:   domain.EntityWorker,
		RiskProfile: domain.RiskHigh,
		Category:    "formacion_prl",
		Mandatory:   true,
	})

	res := fixedEngine().Evaluate(rs, workerContext(), nil)

	assert.False(t, res.Compliant)
	require.Len(t, res.Results, 1)
	assert.False(t, res.Results[0].Passed)
	assert.Contains(t, res.Results[0].Reasons[0], "formacion_prl")
}

func TestEvaluate_OptionalCategoryMissing(t *testing.T) {
	rs := compileRules(t, domain.RequirementRule{
		ID:          uuid.New(),
		AppliesTo:   domain.EntityWorker,
		RiskProfile: domain.RiskHigh,
		Category:    "reconocimiento_medico",
		Mandatory:   false,
	})

	res := fixedEngine().Evaluate(rs, workerContext(), nil)

	assert.True(t, res.Compliant)
	require.Len(t, res.Results, 1)
	assert.True(t, res.Results[0].Passed)
	assert.Empty(t, res.Results[0].Reasons)
}

func TestEvaluate_RuleScopeFiltering(t *testing.T) {
	rs := compileRules(t,
		domain.RequirementRule{
			ID:          uuid.New(),
			AppliesTo:   domain.EntityMachine,
			RiskProfile: domain.RiskHigh,
			Category:    "itv",
			Mandatory:   true,
		},
		domain.RequirementRule{
			ID:          uuid.New(),
			AppliesTo:   domain.EntityWorker,
			RiskProfile: domain.RiskLow,
			Category:    "formacion_prl",
			Mandatory:   true,
		},
	)

	// Neither rule matches (worker, high): machine rule is the wrong entity
	// type, the worker rule the wrong risk profile.
	res := fixedEngine().Evaluate(rs, workerContext(), nil)

	assert.True(t, res.Compliant)
	assert.Empty(t, res.Results)
}

func TestEvaluate_NotEmpty(t *testing.T) {
	rs := compileRules(t, domain.RequirementRule{
		ID:          uuid.New(),
		AppliesTo:   domain.EntityWorker,
		RiskProfile: domain.RiskHigh,
		Category:    "formacion_prl",
		Mandatory:   true,
		Predicates: domain.PredicateList{
			{Must: []domain.Assertion{{Field: "centro_formador", Op: "notEmpty"}}},
		},
	})

	docs := []Document{{
		ID:       uuid.New(),
		Category: "formacion_prl",
		Fields:   map[string]interface{}{"centro_formador": ""},
	}}

	res := fixedEngine().Evaluate(rs, workerContext(), docs)

	assert.False(t, res.Compliant)
	assert.Contains(t, res.Results[0].Reasons[0], "centro_formador")

	docs[0].Fields["centro_formador"] = "Fundacion Laboral"
	res = fixedEngine().Evaluate(rs, workerContext(), docs)
	assert.True(t, res.Compliant)
}

func TestEvaluate_ExpiryAgainstToday(t *testing.T) {
	rs := compileRules(t, domain.RequirementRule{
		ID:          uuid.New(),
		AppliesTo:   domain.EntityWorker,
		RiskProfile: domain.RiskHigh,
		Category:    "reconocimiento_medico",
		Mandatory:   true,
		Predicates: domain.PredicateList{
			{Must: []domain.Assertion{{Field: "fecha_caducidad", Op: ">", Value: "today"}}},
		},
	})

	expired := []Document{{
		ID:       uuid.New(),
		Category: "reconocimiento_medico",
		Fields:   map[string]interface{}{"fecha_caducidad": "2026-03-01"},
	}}
	res := fixedEngine().Evaluate(rs, workerContext(), expired)
	assert.False(t, res.Compliant)
	assert.Contains(t, res.Results[0].Reasons[0], "fecha_caducidad")

	// Expiring exactly today fails a strict > check.
	sameDay := []Document{{
		ID:       uuid.New(),
		Category: "reconocimiento_medico",
		Fields:   map[string]interface{}{"fecha_caducidad": "2026-03-15"},
	}}
	res = fixedEngine().Evaluate(rs, workerContext(), sameDay)
	assert.False(t, res.Compliant)

	valid := []Document{{
		ID:       uuid.New(),
		Category: "reconocimiento_medico",
		Fields:   map[string]interface{}{"fecha_caducidad": "2027-01-01"},
	}}
	res = fixedEngine().Evaluate(rs, workerContext(), valid)
	assert.True(t, res.Compliant)
}

func TestEvaluate_DateAcceptsRFC3339AndTime(t *testing.T) {
	rs := compileRules(t, domain.RequirementRule{
		ID:          uuid.New(),
		AppliesTo:   domain.EntityWorker,
		RiskProfile: domain.RiskHigh,
		Category:    "reconocimiento_medico",
		Mandatory:   true,
		Predicates: domain.PredicateList{
			{Must: []domain.Assertion{{Field: "fecha_caducidad", Op: ">=", Value: "today"}}},
		},
	})

	cases := []interface{}{
		"2026-03-15T00:00:00Z",
		time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, v := range cases {
		docs := []Document{{
			ID:       uuid.New(),
			Category: "reconocimiento_medico",
			Fields:   map[string]interface{}{"fecha_caducidad": v},
		}}
		res := fixedEngine().Evaluate(rs, workerContext(), docs)
		assert.True(t, res.Compliant, "value %v should satisfy >= today", v)
	}
}

func TestEvaluate_NotADate(t *testing.T) {
	rs := compileRules(t, domain.RequirementRule{
		ID:          uuid.New(),
		AppliesTo:   domain.EntityWorker,
		RiskProfile: domain.RiskHigh,
		Category:    "reconocimiento_medico",
		Mandatory:   true,
		Predicates: domain.PredicateList{
			{Must: []domain.Assertion{{Field: "fecha_caducidad", Op: ">", Value: "today"}}},
		},
	})

	docs := []Document{{
		ID:       uuid.New(),
		Category: "reconocimiento_medico",
		Fields:   map[string]interface{}{"fecha_caducidad": "pronto"},
	}}

	res := fixedEngine().Evaluate(rs, workerContext(), docs)
	assert.False(t, res.Compliant)
	assert.Contains(t, res.Results[0].Reasons[0], "is not a date")
}

func TestEvaluate_NumericComparison(t *testing.T) {
	rs := compileRules(t, domain.RequirementRule{
		ID:          uuid.New(),
		AppliesTo:   domain.EntityWorker,
		RiskProfile: domain.RiskHigh,
		Category:    "formacion_prl",
		Mandatory:   true,
		Predicates: domain.PredicateList{
			{Must: []domain.Assertion{{Field: "horas", Op: ">=", Value: 20}}},
		},
	})

	// Extraction metadata arrives as JSON, so numbers may be float64 or strings.
	for _, v := range []interface{}{20, 60.0, "20"} {
		docs := []Document{{
			ID:       uuid.New(),
			Category: "formacion_prl",
			Fields:   map[string]interface{}{"horas": v},
		}}
		res := fixedEngine().Evaluate(rs, workerContext(), docs)
		assert.True(t, res.Compliant, "horas=%v should pass", v)
	}

	docs := []Document{{
		ID:       uuid.New(),
		Category: "formacion_prl",
		Fields:   map[string]interface{}{"horas": 8},
	}}
	res := fixedEngine().Evaluate(rs, workerContext(), docs)
	assert.False(t, res.Compliant)
}

func TestEvaluate_WhenGuardSkips(t *testing.T) {
	rs := compileRules(t, domain.RequirementRule{
		ID:          uuid.New(),
		AppliesTo:   domain.EntityWorker,
		RiskProfile: domain.RiskHigh,
		Category:    "formacion_prl",
		Mandatory:   true,
		Predicates: domain.PredicateList{
			{
				When: map[string]interface{}{"tipo": "basica"},
				Must: []domain.Assertion{{Field: "horas", Op: ">=", Value: 60}},
			},
		},
	})

	// Guard mismatch: predicate does not apply, rule passes.
	docs := []Document{{
		ID:       uuid.New(),
		Category: "formacion_prl",
		Fields:   map[string]interface{}{"tipo": "especifica", "horas": 6},
	}}
	res := fixedEngine().Evaluate(rs, workerContext(), docs)
	assert.True(t, res.Compliant)

	// Guard match: assertion is enforced.
	docs[0].Fields["tipo"] = "basica"
	res = fixedEngine().Evaluate(rs, workerContext(), docs)
	assert.False(t, res.Compliant)
}

func TestEvaluate_AbsentFieldFailsComparison(t *testing.T) {
	rs := compileRules(t, domain.RequirementRule{
		ID:          uuid.New(),
		AppliesTo:   domain.EntityWorker,
		RiskProfile: domain.RiskHigh,
		Category:    "formacion_prl",
		Mandatory:   true,
		Predicates: domain.PredicateList{
			{Must: []domain.Assertion{{Field: "horas", Op: ">=", Value: 20}}},
		},
	})

	docs := []Document{{
		ID:       uuid.New(),
		Category: "formacion_prl",
		Fields:   map[string]interface{}{},
	}}

	res := fixedEngine().Evaluate(rs, workerContext(), docs)
	assert.False(t, res.Compliant)
	assert.Contains(t, res.Results[0].Reasons[0], "absent")
}

func TestEvaluate_AllReasonsCollected(t *testing.T) {
	rs := compileRules(t, domain.RequirementRule{
		ID:          uuid.New(),
		AppliesTo:   domain.EntityWorker,
		RiskProfile: domain.RiskHigh,
		Category:    "formacion_prl",
		Mandatory:   true,
		Predicates: domain.PredicateList{
			{Must: []domain.Assertion{
				{Field: "horas", Op: ">=", Value: 20},
				{Field: "centro_formador", Op: "notEmpty"},
			}},
		},
	})

	docs := []Document{{
		ID:       uuid.New(),
		Category: "formacion_prl",
		Fields:   map[string]interface{}{"horas": 8},
	}}

	res := fixedEngine().Evaluate(rs, workerContext(), docs)
	assert.False(t, res.Compliant)
	// Both failing assertions are reported, not just the first.
	assert.Len(t, res.Results[0].Reasons, 2)
}

func TestEvaluate_NonComparableValueFails(t *testing.T) {
	rs := compileRules(t, domain.RequirementRule{
		ID:          uuid.New(),
		AppliesTo:   domain.EntityWorker,
		RiskProfile: domain.RiskHigh,
		Category:    "formacion_prl",
		Mandatory:   true,
		Predicates: domain.PredicateList{
			{Must: []domain.Assertion{{Field: "horas", Op: ">=", Value: 20}}},
		},
	})

	// Extraction noise: the field holds an object instead of a number.
	docs := []Document{{
		ID:       uuid.New(),
		Category: "formacion_prl",
		Fields:   map[string]interface{}{"horas": map[string]interface{}{"total": 20}},
	}}

	res := fixedEngine().Evaluate(rs, workerContext(), docs)
	assert.False(t, res.Compliant)
	assert.Contains(t, res.Results[0].Reasons[0], "cannot compare")
}

func TestEvaluate_BooleanGuardStillMatches(t *testing.T) {
	rs := compileRules(t, domain.RequirementRule{
		ID:          uuid.New(),
		AppliesTo:   domain.EntityWorker,
		RiskProfile: domain.RiskHigh,
		Category:    "formacion_prl",
		Mandatory:   true,
		Predicates: domain.PredicateList{
			{
				When: map[string]interface{}{"homologada": true},
				Must: []domain.Assertion{{Field: "horas", Op: ">=", Value: 60}},
			},
		},
	})

	docs := []Document{{
		ID:       uuid.New(),
		Category: "formacion_prl",
		Fields:   map[string]interface{}{"homologada": true, "horas": 6},
	}}
	res := fixedEngine().Evaluate(rs, workerContext(), docs)
	assert.False(t, res.Compliant)

	docs[0].Fields["homologada"] = false
	res = fixedEngine().Evaluate(rs, workerContext(), docs)
	assert.True(t, res.Compliant)
}

func TestDocumentEligible(t *testing.T) {
	rs := compileRules(t, domain.RequirementRule{
		ID:          uuid.New(),
		AppliesTo:   domain.EntityWorker,
		RiskProfile: domain.RiskHigh,
		Category:    "reconocimiento_medico",
		Mandatory:   true,
		Predicates: domain.PredicateList{
			{Must: []domain.Assertion{{Field: "fecha_caducidad", Op: ">", Value: "today"}}},
		},
	})
	e := fixedEngine()

	valid := Document{
		ID:       uuid.New(),
		Category: "reconocimiento_medico",
		Fields:   map[string]interface{}{"fecha_caducidad": "2027-01-01"},
	}
	assert.True(t, e.DocumentEligible(rs, workerContext(), valid))

	lapsed := Document{
		ID:       uuid.New(),
		Category: "reconocimiento_medico",
		Fields:   map[string]interface{}{"fecha_caducidad": "2026-03-01"},
	}
	assert.False(t, e.DocumentEligible(rs, workerContext(), lapsed))

	// No rule covers the category: nothing to fail.
	uncovered := Document{
		ID:       uuid.New(),
		Category: "seguro_rc",
		Fields:   map[string]interface{}{},
	}
	assert.True(t, e.DocumentEligible(rs, workerContext(), uncovered))

	// The rule scopes to workers on high-risk sites; out of scope it cannot
	// hold the document back.
	lowRisk := EntityContext{EntityType: domain.EntityWorker, RiskProfile: domain.RiskLow}
	assert.True(t, e.DocumentEligible(rs, lowRisk, lapsed))
}
