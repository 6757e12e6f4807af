package compliance

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"obrapass/internal/domain"
)

func TestCompileRuleSet_Valid(t *testing.T) {
	tenantID := uuid.New()
	rules := []domain.RequirementRule{
		{
			ID:          uuid.New(),
			AppliesTo:   domain.EntityWorker,
			RiskProfile: domain.RiskHigh,
			Category:    "formacion_prl",
			Mandatory:   true,
			Predicates: domain.PredicateList{
				{
					When: map[string]interface{}{"tipo": "basica"},
					Must: []domain.Assertion{
						{Field: "horas", Op: ">=", Value: 20},
						{Field: "fecha_caducidad", Op: ">", Value: "today"},
					},
				},
			},
		},
		{
			ID:        uuid.New(),
			AppliesTo: domain.EntityMachine,
			Category:  "itv",
			Predicates: domain.PredicateList{
				{Must: []domain.Assertion{{Field: "matricula", Op: "notEmpty"}}},
			},
		},
	}

	rs, err := CompileRuleSet(tenantID, domain.PlatformNalanda, rules)
	require.NoError(t, err)
	assert.Equal(t, 2, rs.RuleCount())
	assert.Equal(t, tenantID, rs.TenantID)
	assert.Equal(t, domain.PlatformNalanda, rs.Platform)
}

func TestCompileRuleSet_UnknownOp(t *testing.T) {
	ruleID := uuid.New()
	rules := []domain.RequirementRule{{
		ID: ruleID,
		Predicates: domain.PredicateList{
			{Must: []domain.Assertion{{Field: "horas", Op: "between", Value: 10}}},
		},
	}}

	rs, err := CompileRuleSet(uuid.New(), domain.PlatformNalanda, rules)
	require.Error(t, err)
	assert.Nil(t, rs)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, ruleID, cfgErr.RuleID)
	assert.Contains(t, cfgErr.Detail, "unknown op")
}

func TestCompileRuleSet_AssertionWithoutField(t *testing.T) {
	rules := []domain.RequirementRule{{
		ID: uuid.New(),
		Predicates: domain.PredicateList{
			{Must: []domain.Assertion{{Op: "notEmpty"}}},
		},
	}}

	_, err := CompileRuleSet(uuid.New(), domain.PlatformNalanda, rules)
	require.Error(t, err)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Detail, "without a field")
}

func TestCompileRuleSet_ComparisonWithoutValue(t *testing.T) {
	rules := []domain.RequirementRule{{
		ID: uuid.New(),
		Predicates: domain.PredicateList{
			{Must: []domain.Assertion{{Field: "horas", Op: ">="}}},
		},
	}}

	_, err := CompileRuleSet(uuid.New(), domain.PlatformNalanda, rules)
	require.Error(t, err)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Detail, "requires a value")
}

func TestCompileRuleSet_NotEmptyWithoutValue(t *testing.T) {
	rules := []domain.RequirementRule{{
		ID: uuid.New(),
		Predicates: domain.PredicateList{
			{Must: []domain.Assertion{{Field: "matricula", Op: "notEmpty"}}},
		},
	}}

	rs, err := CompileRuleSet(uuid.New(), domain.PlatformNalanda, rules)
	require.NoError(t, err)
	assert.Equal(t, 1, rs.RuleCount())
}
