// Package export writes table data to spreadsheet formats.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// DefaultSheetName is the sheet used when none is given.
const DefaultSheetName = "Sheet1"

// XLSX renders header (optional) and rows into an .xlsx workbook with a
// single sheet. Every field is stored as a string cell so values such as
// "007" keep their exact text.
func XLSX(sheet string, header []string, rows [][]string) ([]byte, error) {
	if sheet == "" {
		sheet = DefaultSheetName
	}

	total := len(rows)
	if header != nil {
		total++
	}
	if total > excelize.TotalRows {
		return nil, fmt.Errorf("xlsx export: %d rows exceeds sheet limit of %d", total, excelize.TotalRows)
	}
	if len(header) > excelize.MaxColumns || (len(rows) > 0 && len(rows[0]) > excelize.MaxColumns) {
		return nil, fmt.Errorf("xlsx export: too many columns (limit %d)", excelize.MaxColumns)
	}

	f := excelize.NewFile()
	defer f.Close()

	if sheet != DefaultSheetName {
		if err := f.SetSheetName(DefaultSheetName, sheet); err != nil {
			return nil, fmt.Errorf("xlsx export: sheet name %q: %w", sheet, err)
		}
	}

	line := 1
	writeRow := func(values []string) error {
		cell, err := excelize.CoordinatesToCellName(1, line)
		if err != nil {
			return err
		}
		line++
		return f.SetSheetRow(sheet, cell, &values)
	}

	if header != nil {
		if err := writeRow(header); err != nil {
			return nil, fmt.Errorf("xlsx export: header: %w", err)
		}
	}
	for i, r := range rows {
		if err := writeRow(r); err != nil {
			return nil, fmt.Errorf("xlsx export: row %d: %w", i, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx export: %w", err)
	}
	return buf.Bytes(), nil
}
