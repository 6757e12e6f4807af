// Command seedrules converts a platform requirement matrix Excel file into a
// SQL seed file. One sheet per platform (nalanda, ctaima, ecoordina): columns
// A=entity type, B=risk profile, C=category, D=mandatory (si/no), E=predicate
// JSON (optional).
// Usage: go run ./cmd/seedrules <matrix.xlsx> <tenant-slug>
// Output: db/seeds/requirement_rules.sql
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"obrapass/internal/domain"
)

const batchSize = 200

type ruleEntry struct {
	platform    string
	appliesTo   string
	riskProfile string
	category    string
	mandatory   bool
	predicates  string // JSON array, "[]" when absent
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if len(os.Args) < 3 {
		fmt.Println("Usage: seedrules <matrix.xlsx> <tenant-slug>")
		os.Exit(1)
	}
	xlsxPath := os.Args[1]
	tenantSlug := os.Args[2]
	outPath := "db/seeds/requirement_rules.sql"

	f, err := excelize.OpenFile(xlsxPath)
	if err != nil {
		return fmt.Errorf("open Excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var entries []ruleEntry
	seen := make(map[string]bool)
	for platform := range domain.AllowedPlatforms {
		platformEntries, err := parsePlatformSheet(f, string(platform), seen)
		if err != nil {
			return fmt.Errorf("parse sheet %s: %w", platform, err)
		}
		entries = append(entries, platformEntries...)
		log.Printf("%s sheet: %d rules", platform, len(platformEntries))
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() { _ = out.Close() }()

	w := func(s string) error { _, werr := fmt.Fprintln(out, s); return werr }

	for _, line := range []string{
		"-- Requirement rule seed data generated from the platform matrix.",
		fmt.Sprintf("-- %d rules for tenant %q.", len(entries), tenantSlug),
		"-- Run: make seed-rules",
		"BEGIN;",
		"",
	} {
		if werr := w(line); werr != nil {
			return fmt.Errorf("write header: %w", werr)
		}
	}

	for i := 0; i < len(entries); i += batchSize {
		end := i + batchSize
		if end > len(entries) {
			end = len(entries)
		}
		if err := writeBatch(out, tenantSlug, entries[i:end]); err != nil {
			return fmt.Errorf("write batch at offset %d: %w", i, err)
		}
	}

	for _, line := range []string{"", "COMMIT;"} {
		if werr := w(line); werr != nil {
			return fmt.Errorf("write footer: %w", werr)
		}
	}

	log.Printf("Generated %d rules in %s", len(entries), outPath)
	return nil
}

// parsePlatformSheet reads one platform's sheet. Header is row 0; data starts
// at row index 1. Sheets missing from the workbook are skipped.
func parsePlatformSheet(f *excelize.File, sheetName string, seen map[string]bool) ([]ruleEntry, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		log.Printf("WARN: sheet %q not found, skipping", sheetName)
		return nil, nil
	}

	var entries []ruleEntry
	for i := 1; i < len(rows); i++ {
		row := rows[i]

		appliesTo := strings.ToLower(strings.TrimSpace(cellVal(row, 0)))
		risk := strings.ToLower(strings.TrimSpace(cellVal(row, 1)))
		category := strings.TrimSpace(cellVal(row, 2))
		if appliesTo == "" || category == "" {
			continue
		}
		if !domain.AllowedEntityTypes[domain.EntityType(appliesTo)] {
			log.Printf("WARN: %s row %d: unknown entity type %q, skipping", sheetName, i+1, appliesTo)
			continue
		}
		if !domain.AllowedRiskProfiles[domain.RiskProfile(risk)] {
			log.Printf("WARN: %s row %d: unknown risk profile %q, skipping", sheetName, i+1, risk)
			continue
		}

		key := strings.Join([]string{sheetName, appliesTo, risk, category}, "|")
		if seen[key] {
			continue
		}
		seen[key] = true

		predicates := strings.TrimSpace(cellVal(row, 4))
		if predicates == "" {
			predicates = "[]"
		} else if !json.Valid([]byte(predicates)) {
			log.Printf("WARN: %s row %d: invalid predicate JSON, skipping", sheetName, i+1)
			continue
		}

		entries = append(entries, ruleEntry{
			platform:    sheetName,
			appliesTo:   appliesTo,
			riskProfile: risk,
			category:    category,
			mandatory:   parseMandatory(cellVal(row, 3)),
			predicates:  predicates,
		})
	}
	return entries, nil
}

// parseMandatory accepts the spellings the matrix uses for a required rule.
func parseMandatory(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "si", "sí", "yes", "true", "1", "x":
		return true
	default:
		return false
	}
}

func writeBatch(out *os.File, tenantSlug string, batch []ruleEntry) error {
	if len(batch) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString("INSERT INTO requirement_rules (id, tenant_id, platform, applies_to, risk_profile, category, mandatory, predicates, is_active) VALUES\n")

	for i := range batch {
		e := &batch[i]
		if i > 0 {
			b.WriteString(",\n")
		}
		fmt.Fprintf(&b, "  (gen_random_uuid(), (SELECT id FROM tenants WHERE slug = '%s'), '%s', '%s', '%s', '%s', %t, '%s'::jsonb, true)",
			escapeSQL(tenantSlug), e.platform, e.appliesTo, e.riskProfile,
			escapeSQL(e.category), e.mandatory, escapeSQL(e.predicates))
	}

	b.WriteString("\nON CONFLICT (tenant_id, platform, applies_to, risk_profile, category) DO NOTHING;\n")

	_, err := out.WriteString(b.String())
	return err
}

func cellVal(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
