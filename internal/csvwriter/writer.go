// =============================================================================
// XML to CSV Converter - CSV Writer Module
// =============================================================================
//
// This module serializes flattened rows to CSV. The contract with the
// conversion core:
//   - one header row with the columns in first-seen order
//   - one data row per record, in record order
//   - columns a record is missing render as empty cells
//   - zero records still produce a well-formed file: a single placeholder
//     column instead of an empty file, so downstream imports never choke
//     on a zero-byte artifact
//
// =============================================================================

package csvwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ginjaninja78/XML-to-CSV-conversion/internal/flattener"
)

// utf8BOM is prepended when Options.IncludeBOM is set.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// =============================================================================
// WRITER OPTIONS
// =============================================================================

// Options contains options for CSV serialization.
type Options struct {
	// Delimiter is the field separator.
	// Default: ','
	Delimiter rune

	// IncludeBOM prepends a UTF-8 byte order mark.
	// Default: false
	IncludeBOM bool

	// PlaceholderColumn is the single column emitted when there are no
	// rows at all.
	// Default: "no_data"
	PlaceholderColumn string
}

// DefaultOptions returns the default serialization options.
func DefaultOptions() Options {
	return Options{
		Delimiter:         ',',
		PlaceholderColumn: "no_data",
	}
}

// =============================================================================
// WRITER FUNCTIONS
// =============================================================================

// Write serializes header and rows to w.
//
// PARAMETERS:
//   - w: The destination.
//   - header: The column set, in order. May be empty when rows is empty.
//   - rows: The flattened records, in output order.
//   - options: Serialization options.
//
// RETURNS:
//   - An error if writing fails.
func Write(w io.Writer, header []string, rows []flattener.Row, options Options) error {
	if options.Delimiter == 0 {
		options.Delimiter = ','
	}
	if options.PlaceholderColumn == "" {
		options.PlaceholderColumn = "no_data"
	}

	if options.IncludeBOM {
		if _, err := w.Write(utf8BOM); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	cw := csv.NewWriter(w)
	cw.Comma = options.Delimiter

	// No records: the empty-output policy lives here, not in the core.
	// The core signals "no records" with an empty row sequence and this
	// writer still produces a well-formed one-column file.
	if len(rows) == 0 {
		if err := cw.Write([]string{options.PlaceholderColumn}); err != nil {
			return err
		}
		cw.Flush()
		return cw.Error()
	}

	if err := cw.Write(header); err != nil {
		return err
	}

	record := make([]string, len(header))
	for _, row := range rows {
		for i, key := range header {
			record[i] = row.Get(key)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteFile serializes header and rows to the file at path, creating parent
// directories as needed.
func WriteFile(path string, header []string, rows []flattener.Row, options Options) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := Write(f, header, rows, options); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
