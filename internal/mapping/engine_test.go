package mapping

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"obrapass/internal/domain"
)

func compileRules(t *testing.T, schema string, rules ...domain.MappingRule) *CompiledTemplate {
	t.Helper()
	tpl := &domain.MappingTemplate{
		ID:       uuid.New(),
		TenantID: uuid.New(),
		Platform: domain.PlatformNalanda,
		Version:  1,
		Rules:    rules,
	}
	if schema != "" {
		tpl.TargetSchema = json.RawMessage(schema)
	}
	ct, err := Compile(tpl)
	require.NoError(t, err)
	return ct
}

func TestCompile_ConfigErrors(t *testing.T) {
	cases := []struct {
		name   string
		rule   domain.MappingRule
		detail string
	}{
		{
			name:   "bad from path",
			rule:   domain.MappingRule{From: "Company..cif", To: "company.taxId"},
			detail: "from:",
		},
		{
			name:   "bad to path",
			rule:   domain.MappingRule{From: "Company.cif", To: "company..taxId"},
			detail: "to:",
		},
		{
			name:   "cardinality mismatch",
			rule:   domain.MappingRule{From: "Worker[*].dni", To: "workers.idNumber"},
			detail: "cardinality mismatch",
		},
		{
			name:   "broadcast source with nested head",
			rule:   domain.MappingRule{From: "Site.crew[*].dni", To: "workers[*].idNumber"},
			detail: "top-level collection",
		},
		{
			name:   "scalar source without field",
			rule:   domain.MappingRule{From: "Company", To: "company.name"},
			detail: "entity and a field",
		},
		{
			name:   "unknown transform",
			rule:   domain.MappingRule{From: "Company.cif", To: "company.taxId", Transform: "reverse"},
			detail: "unknown transform",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Compile(&domain.MappingTemplate{
				Platform: domain.PlatformNalanda,
				Rules:    domain.MappingRuleList{tc.rule},
			})
			require.Error(t, err)

			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, 0, cfgErr.RuleIndex)
			assert.Contains(t, cfgErr.Detail, tc.detail)
		})
	}
}

func TestCompile_BadSchema(t *testing.T) {
	_, err := Compile(&domain.MappingTemplate{
		Platform:     domain.PlatformNalanda,
		TargetSchema: json.RawMessage(`{not json`),
	})
	require.Error(t, err)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, -1, cfgErr.RuleIndex)
}

func TestTransform_Scalar(t *testing.T) {
	ct := compileRules(t, "",
		domain.MappingRule{From: "Company.cif", To: "company.taxId", Transform: "upper"},
		domain.MappingRule{From: "Company.nombre", To: "company.name"},
	)

	g := NewEntityGraph()
	g.SetEntity("Company", map[string]interface{}{
		"cif":    "b-1234",
		"nombre": "Construcciones Norte SL",
	})

	out, err := ct.Transform(g)
	require.NoError(t, err)

	company := out["company"].(map[string]interface{})
	assert.Equal(t, "B-1234", company["taxId"])
	assert.Equal(t, "Construcciones Norte SL", company["name"])
}

func TestTransform_OptionalMissingSkipped(t *testing.T) {
	ct := compileRules(t, "",
		domain.MappingRule{From: "Company.telefono", To: "company.phone"},
	)

	g := NewEntityGraph()
	g.SetEntity("Company", map[string]interface{}{"cif": "B1234"})

	out, err := ct.Transform(g)
	require.NoError(t, err)
	assert.NotContains(t, out, "company")
}

func TestTransform_RequiredMissing(t *testing.T) {
	schema := `{
		"type": "object",
		"properties": {
			"company": {
				"type": "object",
				"properties": {"taxId": {"type": "string"}},
				"required": ["taxId"]
			}
		}
	}`
	ct := compileRules(t, schema,
		domain.MappingRule{From: "Company.cif", To: "company.taxId"},
	)

	g := NewEntityGraph()
	g.SetEntity("Company", map[string]interface{}{"nombre": "Sin CIF SA"})

	_, err := ct.Transform(g)
	require.Error(t, err)

	var resErr *ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, "Company.cif", resErr.Path)
	assert.Equal(t, "company.taxId", resErr.Target)
}

func TestTransform_BroadcastPreservesOrder(t *testing.T) {
	ct := compileRules(t, "",
		domain.MappingRule{From: "Worker[*].dni", To: "workers[*].idNumber", Transform: "upper"},
	)

	g := NewEntityGraph()
	g.SetCollection("Worker", []map[string]interface{}{
		{"dni": "11111111a"},
		{"dni": "22222222b"},
		{"dni": "33333333c"},
	})

	out, err := ct.Transform(g)
	require.NoError(t, err)

	workers := out["workers"].([]interface{})
	require.Len(t, workers, 3)
	assert.Equal(t, "11111111A", workers[0].(map[string]interface{})["idNumber"])
	assert.Equal(t, "22222222B", workers[1].(map[string]interface{})["idNumber"])
	assert.Equal(t, "33333333C", workers[2].(map[string]interface{})["idNumber"])
}

func TestTransform_BroadcastMergesLaterRules(t *testing.T) {
	// Two broadcast rules over the same collection must fill the same
	// elements, not append a second array.
	ct := compileRules(t, "",
		domain.MappingRule{From: "Worker[*].dni", To: "workers[*].idNumber"},
		domain.MappingRule{From: "Worker[*].nombre", To: "workers[*].name"},
	)

	g := NewEntityGraph()
	g.SetCollection("Worker", []map[string]interface{}{
		{"dni": "11111111A", "nombre": "Ana"},
		{"dni": "22222222B", "nombre": "Luis"},
	})

	out, err := ct.Transform(g)
	require.NoError(t, err)

	workers := out["workers"].([]interface{})
	require.Len(t, workers, 2)

	first := workers[0].(map[string]interface{})
	assert.Equal(t, "11111111A", first["idNumber"])
	assert.Equal(t, "Ana", first["name"])

	second := workers[1].(map[string]interface{})
	assert.Equal(t, "22222222B", second["idNumber"])
	assert.Equal(t, "Luis", second["name"])
}

func TestTransform_BroadcastMissingElementField(t *testing.T) {
	ct := compileRules(t, "",
		domain.MappingRule{From: "Worker[*].nss", To: "workers[*].ssNumber"},
		domain.MappingRule{From: "Worker[*].dni", To: "workers[*].idNumber"},
	)

	g := NewEntityGraph()
	g.SetCollection("Worker", []map[string]interface{}{
		{"dni": "11111111A", "nss": "281234567890"},
		{"dni": "22222222B"}, // no nss
	})

	out, err := ct.Transform(g)
	require.NoError(t, err)

	workers := out["workers"].([]interface{})
	require.Len(t, workers, 2)

	second := workers[1].(map[string]interface{})
	assert.Equal(t, "22222222B", second["idNumber"])
	assert.NotContains(t, second, "ssNumber")
}

func TestTransform_MissingCollectionSkipped(t *testing.T) {
	ct := compileRules(t, "",
		domain.MappingRule{From: "Machine[*].serie", To: "machines[*].serialNumber"},
	)

	out, err := ct.Transform(NewEntityGraph())
	require.NoError(t, err)
	assert.NotContains(t, out, "machines")
}

func TestTransform_MixedScalarAndBroadcast(t *testing.T) {
	ct := compileRules(t, "",
		domain.MappingRule{From: "Site.codigo", To: "site.code"},
		domain.MappingRule{From: "Worker[*].puesto", To: "workers[*].role", Transform: "map:encofrador=formworker|gruista=crane_operator"},
	)

	g := NewEntityGraph()
	g.SetEntity("Site", map[string]interface{}{"codigo": "OBR-001"})
	g.SetCollection("Worker", []map[string]interface{}{
		{"puesto": "gruista"},
		{"puesto": "peon"},
	})

	out, err := ct.Transform(g)
	require.NoError(t, err)

	site := out["site"].(map[string]interface{})
	assert.Equal(t, "OBR-001", site["code"])

	workers := out["workers"].([]interface{})
	assert.Equal(t, "crane_operator", workers[0].(map[string]interface{})["role"])
	assert.Equal(t, "peon", workers[1].(map[string]interface{})["role"])
}

func TestCheckPayload(t *testing.T) {
	schema := `{
		"type": "object",
		"properties": {
			"company": {
				"type": "object",
				"properties": {"taxId": {"type": "string"}},
				"required": ["taxId"]
			},
			"workers": {
				"type": "array",
				"items": {
					"type": "object",
					"properties": {"idNumber": {"type": "string"}},
					"required": ["idNumber"]
				}
			}
		},
		"required": ["company"]
	}`
	ct := compileRules(t, schema,
		domain.MappingRule{From: "Company.cif", To: "company.taxId"},
		domain.MappingRule{From: "Worker[*].dni", To: "workers[*].idNumber"},
	)

	g := NewEntityGraph()
	g.SetEntity("Company", map[string]interface{}{"cif": "B1234"})
	g.SetCollection("Worker", []map[string]interface{}{{"dni": "11111111A"}})

	out, err := ct.Transform(g)
	require.NoError(t, err)
	assert.NoError(t, ct.CheckPayload(out))

	// A worker element missing its required field must be reported.
	out["workers"].([]interface{})[0] = map[string]interface{}{}
	err = ct.CheckPayload(out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "idNumber")
}
