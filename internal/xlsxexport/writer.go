// Package xlsxexport renders site compliance reports as Excel workbooks for
// the coordination departments that still live in spreadsheets.
package xlsxexport

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"obrapass/internal/service"
)

const sheetName = "Compliance"

var columns = []string{
	"Entity Type",
	"Entity",
	"Category",
	"Mandatory",
	"Passed",
	"Reasons",
}

// WriteReport renders a site compliance report into an xlsx workbook: one row
// per rule result, grouped by entity, with a summary row on top.
func WriteReport(w io.Writer, report *service.SiteComplianceReport) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	verdict := "NON-COMPLIANT"
	if report.Compliant {
		verdict = "COMPLIANT"
	}
	if err := f.SetCellValue(sheetName, "A1",
		fmt.Sprintf("Site %s on %s: %s", report.SiteID, report.Platform, verdict)); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}

	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 3)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, col); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	row := 4
	for _, entity := range report.Entities {
		for _, rr := range entity.Result.Results {
			values := []interface{}{
				string(entity.EntityType),
				entity.Name,
				rr.Category,
				formatBool(rr.Mandatory),
				formatBool(rr.Passed),
				strings.Join(rr.Reasons, "; "),
			}
			for i, v := range values {
				cell, err := excelize.CoordinatesToCellName(i+1, row)
				if err != nil {
					return fmt.Errorf("data cell: %w", err)
				}
				if err := f.SetCellValue(sheetName, cell, v); err != nil {
					return fmt.Errorf("writing row %d: %w", row, err)
				}
			}
			row++
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func formatBool(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a site name for use in Content-Disposition.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for the Content-Disposition
// header. Format: {sanitized_site_name}_{YYYY-MM-DD}.xlsx
func BuildFilename(siteName string) string {
	sanitized := SanitizeFilename(siteName)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.xlsx", sanitized, date)
}
