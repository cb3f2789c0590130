// Package xlsx is the workbook boundary of the matcher: it reads input
// sheets into tables and writes the combined report. All other packages stay
// free of spreadsheet concerns.
package xlsx

import (
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/finploy/matcher/internal/matching"
)

// ReadTable loads the first sheet of the workbook at path. The first row is
// the header; data rows shorter than the header are padded with empty cells.
// A missing input satisfies errors.Is(err, os.ErrNotExist).
func ReadTable(path string) (*matching.Table, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("input file %q: %w", path, err)
	}

	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %q: %w", path, err)
	}
	defer file.Close()

	sheet := file.GetSheetName(0)
	rows, err := file.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q of %q: %w", sheet, path, err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("workbook %q: sheet %q has no header row", path, sheet)
	}

	table := matching.NewTable(rows[0])
	for _, row := range rows[1:] {
		table.AppendRow(row)
	}

	return table, nil
}

// WriteReport writes the report as a new workbook at path, header row first.
func WriteReport(path string, report *matching.Report) error {
	file := excelize.NewFile()
	defer file.Close()

	sheet := file.GetSheetName(0)

	header := make([]interface{}, len(report.Columns))
	for i, name := range report.Columns {
		header[i] = name
	}
	if err := file.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, row := range report.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("addressing row %d: %w", i+2, err)
		}
		cells := make([]interface{}, len(row))
		for j, value := range row {
			cells[j] = value
		}
		if err := file.SetSheetRow(sheet, cell, &cells); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if err := file.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook %q: %w", path, err)
	}

	return nil
}

// EnsureDir creates the output directory when it does not exist yet.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %q: %w", dir, err)
	}
	return nil
}

// Exists reports whether a file is already present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
