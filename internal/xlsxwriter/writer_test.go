package xlsxwriter

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/XML-to-CSV-conversion/internal/flattener"
)

func row(pairs ...string) flattener.Row {
	r := flattener.Row{Values: make(map[string]string)}
	for i := 0; i+1 < len(pairs); i += 2 {
		r.Keys = append(r.Keys, pairs[i])
		r.Values[pairs[i]] = pairs[i+1]
	}
	return r
}

func TestWriteFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feed.xlsx")

	header := []string{"name", "price", "price@currency"}
	rows := []flattener.Row{
		row("name", "Widget", "price", "9.99", "price@currency", "USD"),
		row("name", "Gadget", "price", "3.50"),
	}

	options := DefaultOptions()
	options.SheetName = "product"
	require.NoError(t, WriteFile(path, header, rows, options))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows("product")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, header, got[0])
	assert.Equal(t, []string{"Widget", "9.99", "USD"}, got[1])
	// Missing column renders as an empty trailing cell, which excelize
	// trims when reading back.
	assert.Equal(t, []string{"Gadget", "3.50"}, got[2])
}

func TestWriteFileEmptyRowsProducesPlaceholder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")

	require.NoError(t, WriteFile(path, nil, nil, DefaultOptions()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows("records")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"no_data"}, got[0])
}

func TestSanitizeSheetName(t *testing.T) {
	assert.Equal(t, "records", sanitizeSheetName(""))
	assert.Equal(t, "a_b_c", sanitizeSheetName("a:b/c"))
	assert.Len(t, []rune(sanitizeSheetName("averyveryverylongitemtagnamethatexcelrejects")), 31)
}
