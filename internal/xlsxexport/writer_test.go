package xlsxexport

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"obrapass/internal/compliance"
	"obrapass/internal/domain"
	"obrapass/internal/service"
)

func sampleReport() *service.SiteComplianceReport {
	return &service.SiteComplianceReport{
		SiteID:    uuid.New(),
		Platform:  domain.PlatformNalanda,
		Compliant: false,
		Entities: []service.EntityVerdict{
			{
				EntityType: domain.EntityWorker,
				EntityID:   uuid.New(),
				Name:       "Ana Garcia",
				Result: &compliance.Result{
					Compliant: true,
					Results: []compliance.RuleResult{
						{RuleID: uuid.New(), Category: "formacion_prl", Mandatory: true, Passed: true},
					},
				},
			},
			{
				EntityType: domain.EntityMachine,
				EntityID:   uuid.New(),
				Name:       "Grua Torre GT-20",
				Result: &compliance.Result{
					Compliant: false,
					Results: []compliance.RuleResult{
						{
							RuleID:    uuid.New(),
							Category:  "itv",
							Mandatory: true,
							Passed:    false,
							Reasons:   []string{`mandatory document category "itv" is missing`},
						},
					},
				},
			},
		},
	}
}

func TestWriteReport(t *testing.T) {
	report := sampleReport()

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, report))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	summary, err := f.GetCellValue(sheetName, "A1")
	require.NoError(t, err)
	assert.Contains(t, summary, "NON-COMPLIANT")
	assert.Contains(t, summary, report.SiteID.String())

	header, err := f.GetCellValue(sheetName, "A3")
	require.NoError(t, err)
	assert.Equal(t, "Entity Type", header)

	// One row per rule result, starting at row 4.
	for col, want := range map[string]string{
		"A4": "trabajador",
		"B4": "Ana Garcia",
		"C4": "formacion_prl",
		"D4": "Yes",
		"E4": "Yes",
		"A5": "maquinaria",
		"B5": "Grua Torre GT-20",
		"C5": "itv",
		"E5": "No",
	} {
		got, err := f.GetCellValue(sheetName, col)
		require.NoError(t, err)
		assert.Equal(t, want, got, "cell %s", col)
	}

	reasons, err := f.GetCellValue(sheetName, "F5")
	require.NoError(t, err)
	assert.Contains(t, reasons, "itv")
}

func TestWriteReport_Compliant(t *testing.T) {
	report := sampleReport()
	report.Compliant = true
	report.Entities = report.Entities[:1]

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, report))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	summary, err := f.GetCellValue(sheetName, "A1")
	require.NoError(t, err)
	assert.Contains(t, summary, ": COMPLIANT")
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"Obra Norte Fase 2":    "Obra_Norte_Fase_2",
		"torre/este\\sur":      "torre_este_sur",
		"  espacios  ":         "espacios",
		"ya_limpio-OK":         "ya_limpio-OK",
		"acentuación y eñes":   "acentuaci_n_y_e_es",
		"___":                  "",
	}
	for in, want := range cases {
		assert.Equal(t, want, SanitizeFilename(in), "input %q", in)
	}

	long := SanitizeFilename(string(bytes.Repeat([]byte{'a'}, 150)))
	assert.Len(t, long, 100)
}

func TestBuildFilename(t *testing.T) {
	got := BuildFilename("Obra Norte")
	want := fmt.Sprintf("Obra_Norte_%s.xlsx", time.Now().Format("2006-01-02"))
	assert.Equal(t, want, got)
}
