package csvwriter

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

func TestWriteHeaderAndRowsInOrder(t *testing.T) {
	header := []string{"a", "b", "c"}
	rows := []flattener.Row{
		row("a", "1", "b", "2"),
		row("b", "3", "c", "4"),
	}

	var buf bytes.Buffer
	err := Write(&buf, header, rows, DefaultOptions())
	require.NoError(t, err)

	// Missing keys pad with empty cells, row order is preserved.
	assert.Equal(t, "a,b,c\n1,2,\n,3,4\n", buf.String())
}

func TestWriteEmptyRowsProducesPlaceholder(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, nil, nil, DefaultOptions())
	require.NoError(t, err)

	// Never an empty file: a single placeholder column is still a
	// well-formed CSV.
	assert.Equal(t, "no_data\n", buf.String())
}

func TestWriteCustomPlaceholderAndDelimiter(t *testing.T) {
	options := Options{Delimiter: ';', PlaceholderColumn: "empty"}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, nil, nil, options))
	assert.Equal(t, "empty\n", buf.String())

	buf.Reset()
	rows := []flattener.Row{row("x", "1", "y", "2")}
	require.NoError(t, Write(&buf, []string{"x", "y"}, rows, options))
	assert.Equal(t, "x;y\n1;2\n", buf.String())
}

func TestWriteQuotesValuesContainingDelimiter(t *testing.T) {
	rows := []flattener.Row{row("img", "a | b", "desc", `say "hi", twice`)}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []string{"img", "desc"}, rows, DefaultOptions()))

	assert.Equal(t, "img,desc\na | b,\"say \"\"hi\"\", twice\"\n", buf.String())
}

func TestWriteIncludesBOMWhenConfigured(t *testing.T) {
	options := DefaultOptions()
	options.IncludeBOM = true

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []string{"a"}, []flattener.Row{row("a", "1")}, options))

	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, buf.Bytes()[:3])
	assert.Equal(t, "a\n1\n", buf.String()[3:])
}

func TestWriteFileCreatesParentDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out", "feed.csv")

	rows := []flattener.Row{row("a", "1")}
	require.NoError(t, WriteFile(path, []string{"a"}, rows, DefaultOptions()))

	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "a\n1\n", string(data))
}
