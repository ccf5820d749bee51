package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jonathan/af-prep/internal/types"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding the table in spreadsheet reports.
const SheetName = "Confidences"

// WriteCSV writes the header in types.ReportColumns order followed by one line per row.
// Null fields are written as empty cells.
func WriteCSV(w io.Writer, rows []types.ConfidenceRow) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(types.ReportColumns); err != nil {
		return err
	}

	record := make([]string, len(types.ReportColumns))
	for _, row := range rows {
		for i, v := range row.Values() {
			record[i] = FormatCell(v)
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteXLSX writes the same table as WriteCSV to a workbook at path.
// The workbook is written whatever the extension of path.
func WriteXLSX(path string, rows []types.ConfidenceRow) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WriteXLSXTo(out, rows); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// WriteXLSXTo streams the workbook to w.
func WriteXLSXTo(w io.Writer, rows []types.ConfidenceRow) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("xlsx sheet: %w", err)
	}

	for i, h := range types.ReportColumns {
		if err := setCell(f, i+1, 1, h); err != nil {
			return err
		}
	}

	for r, row := range rows {
		for c, v := range row.Values() {
			v = cellValue(v)
			if v == nil {
				continue
			}
			if err := setCell(f, c+1, r+2, v); err != nil {
				return err
			}
		}
	}

	if err := f.SetColWidth(SheetName, "A", "A", 32); err != nil {
		return fmt.Errorf("xlsx column width: %w", err)
	}
	if err := f.SetColWidth(SheetName, "B", "J", 16); err != nil {
		return fmt.Errorf("xlsx column width: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}

func setCell(f *excelize.File, col, row int, v any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("xlsx cell (%d,%d): %w", col, row, err)
	}
	if err := f.SetCellValue(SheetName, cell, v); err != nil {
		return fmt.Errorf("xlsx cell %s: %w", cell, err)
	}
	return nil
}

// IsXLSXPath reports whether path names a spreadsheet report.
func IsXLSXPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xlsx")
}

// WriteFile writes rows to path, as a workbook when asXLSX is set or path ends in .xlsx.
func WriteFile(path string, rows []types.ConfidenceRow, asXLSX bool) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	if asXLSX || IsXLSXPath(path) {
		return WriteXLSX(path, rows)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WriteCSV(f, rows); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

// cellValue unwraps typed nil pointers to nil and dereferences the rest.
func cellValue(v any) any {
	switch t := v.(type) {
	case *float64:
		if t == nil {
			return nil
		}
		return *t
	default:
		return v
	}
}

// FormatCell renders one report value as CSV text. Nil becomes the empty string.
func FormatCell(v any) string {
	switch t := cellValue(v).(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return formatFloat(t)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

// formatFloat prints the shortest decimal form, keeping a fractional part on
// whole numbers so 0 is written as 0.0.
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if math.IsInf(v, 0) || math.IsNaN(v) || strings.Contains(s, ".") {
		return s
	}
	return s + ".0"
}
