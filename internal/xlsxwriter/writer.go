// =============================================================================
// XML to CSV Converter - XLSX Writer Module
// =============================================================================
//
// This module serializes flattened rows to an XLSX workbook, for consumers
// that want to open feed exports directly in a spreadsheet instead of
// importing CSV. The row/column contract is identical to the CSV writer:
// header in first-seen order, one row per record in record order, missing
// columns as empty cells, and a placeholder column when there are no
// records at all.
//
// =============================================================================

package xlsxwriter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ginjaninja78/XML-to-CSV-conversion/internal/flattener"
	"github.com/xuri/excelize/v2"
)

// maxSheetNameLength is the hard limit Excel places on sheet names.
const maxSheetNameLength = 31

// =============================================================================
// WRITER OPTIONS
// =============================================================================

// Options contains options for XLSX serialization.
type Options struct {
	// SheetName names the single data sheet. Conventionally the detected
	// item tag, so the workbook says what its rows are.
	// Default: "records"
	SheetName string

	// PlaceholderColumn is the single column emitted when there are no
	// rows at all.
	// Default: "no_data"
	PlaceholderColumn string
}

// DefaultOptions returns the default serialization options.
func DefaultOptions() Options {
	return Options{
		SheetName:         "records",
		PlaceholderColumn: "no_data",
	}
}

// =============================================================================
// WRITER FUNCTIONS
// =============================================================================

// WriteFile serializes header and rows to an XLSX workbook at path,
// creating parent directories as needed.
//
// PARAMETERS:
//   - path: The destination file.
//   - header: The column set, in order.
//   - rows: The flattened records, in output order.
//   - options: Serialization options.
//
// RETURNS:
//   - An error if building or saving the workbook fails.
func WriteFile(path string, header []string, rows []flattener.Row, options Options) error {
	if options.SheetName == "" {
		options.SheetName = "records"
	}
	if options.PlaceholderColumn == "" {
		options.PlaceholderColumn = "no_data"
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := sanitizeSheetName(options.SheetName)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if len(rows) == 0 {
		header = []string{options.PlaceholderColumn}
	}

	// Header row, bold.
	headerCells := make([]interface{}, len(header))
	for i, h := range header {
		headerCells[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerCells); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil && len(header) > 0 {
		lastCell, cellErr := excelize.CoordinatesToCellName(len(header), 1)
		if cellErr == nil {
			f.SetCellStyle(sheet, "A1", lastCell, boldStyle)
		}
	}

	// Data rows.
	record := make([]interface{}, len(header))
	for i, row := range rows {
		for j, key := range header {
			record[j] = row.Get(key)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(sheet, cell, &record); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	return nil
}

// sanitizeSheetName makes an arbitrary item tag safe to use as an Excel
// sheet name: the characters Excel forbids become underscores and the
// result is truncated to the 31-character limit.
func sanitizeSheetName(name string) string {
	out := []rune(name)
	for i, r := range out {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			out[i] = '_'
		}
	}
	if len(out) > maxSheetNameLength {
		out = out[:maxSheetNameLength]
	}
	if len(out) == 0 {
		return "records"
	}
	return string(out)
}
