// =============================================================================
// XML to CSV Converter - Converter Module
// =============================================================================
//
// This module contains the per-feed pipeline. It orchestrates the full
// conversion for a single feed, from retrieval to the written output file.
//
// CONVERSION PIPELINE:
//   1. Acquire the raw document (HTTP fetch or local file)
//   2. Parse it into an element tree
//   3. Detect the record elements (honoring a forced tag, if configured)
//   4. Flatten every record to a flat row
//   5. Derive the header set (ordered union of row keys)
//   6. Serialize to CSV or XLSX
//   7. Archive the output (optional)
//
// CONCURRENCY:
//   Feeds are processed in their own goroutines by the CLI layer. Within a
//   feed, records are flattened by a bounded worker pool; workers write
//   into an index-addressed slice so output row order always matches
//   detection order no matter how the work is scheduled.
//
// =============================================================================

package converter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ginjaninja78/XML-to-CSV-conversion/internal/config"
	"github.com/ginjaninja78/XML-to-CSV-conversion/internal/csvwriter"
	"github.com/ginjaninja78/XML-to-CSV-conversion/internal/detector"
	"github.com/ginjaninja78/XML-to-CSV-conversion/internal/fetcher"
	"github.com/ginjaninja78/XML-to-CSV-conversion/internal/flattener"
	"github.com/ginjaninja78/XML-to-CSV-conversion/internal/xlsxwriter"
	"github.com/ginjaninja78/XML-to-CSV-conversion/internal/xmltree"
	"github.com/ginjaninja78/XML-to-CSV-conversion/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of converting a single feed.
type Result struct {
	// Feed is the name of the feed that was processed.
	Feed string

	// OutputFile is the path to the generated file.
	// This is empty if processing failed or --dry-run was used.
	OutputFile string

	// ItemTag is the record tag that was used (detected or forced).
	ItemTag string

	// Success indicates whether the processing was successful.
	Success bool

	// Error contains the error if processing failed.
	Error error

	// Stats contains processing statistics.
	Stats Stats
}

// Stats contains statistics about one feed conversion.
type Stats struct {
	// Records is the number of records written.
	Records int

	// Columns is the number of columns in the derived header.
	Columns int

	// FetchTime is the time spent retrieving the document.
	FetchTime time.Duration

	// ProcessingTime is the total time for the feed, retrieval included.
	ProcessingTime time.Duration
}

// =============================================================================
// LOGGER
// =============================================================================

// Logger is the logging interface the converter reports through.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// stdLogger prints to stdout with level prefixes. Debug output is gated on
// the verbose flag.
type stdLogger struct {
	verbose bool
}

// NewLogger returns the default stdout logger.
func NewLogger(verbose bool) Logger {
	return &stdLogger{verbose: verbose}
}

func (l *stdLogger) Debug(msg string, args ...interface{}) {
	if l.verbose {
		fmt.Printf("[DEBUG] "+msg+"\n", args...)
	}
}

func (l *stdLogger) Info(msg string, args ...interface{}) {
	fmt.Printf("[INFO] "+msg+"\n", args...)
}

func (l *stdLogger) Warn(msg string, args ...interface{}) {
	fmt.Printf("[WARN] "+msg+"\n", args...)
}

func (l *stdLogger) Error(msg string, args ...interface{}) {
	fmt.Printf("[ERROR] "+msg+"\n", args...)
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter handles the conversion of a single feed.
type Converter struct {
	// feed is the feed being converted.
	feed config.FeedConfig

	// mainConfig is the global application configuration.
	mainConfig *config.MainConfig

	// fetch retrieves the document when the feed has a URL source.
	fetch *fetcher.Fetcher

	// logger reports progress and warnings.
	logger Logger

	// dryRun skips writing the output file.
	dryRun bool
}

// New creates a new Converter instance for one feed.
//
// PARAMETERS:
//   - feed: The feed to convert.
//   - mainConfig: The global application configuration.
//   - logger: The logger to report through. Pass nil for the default.
func New(feed config.FeedConfig, mainConfig *config.MainConfig, logger Logger) *Converter {
	if logger == nil {
		logger = NewLogger(false)
	}
	return &Converter{
		feed:       feed,
		mainConfig: mainConfig,
		fetch:      fetcher.New(mainConfig.Fetch),
		logger:     logger,
	}
}

// SetDryRun toggles dry-run mode: the full pipeline runs but no file is
// written.
func (c *Converter) SetDryRun(dryRun bool) {
	c.dryRun = dryRun
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the conversion pipeline for the feed.
//
// RETURNS:
//   - A Result struct containing the outcome of the processing.
func (c *Converter) Run(ctx context.Context) Result {
	startTime := time.Now()
	result := Result{
		Feed:    c.feed.Name,
		Success: false,
	}

	// =========================================================================
	// STEP 1: ACQUIRE THE DOCUMENT
	// =========================================================================

	c.logger.Info("Processing feed: %s", c.feed.Name)

	fetchStart := time.Now()
	data, err := c.acquire(ctx)
	if err != nil {
		result.Error = fmt.Errorf("failed to acquire feed: %w", err)
		return result
	}
	result.Stats.FetchTime = time.Since(fetchStart)

	c.logger.Debug("Acquired %d bytes in %s", len(data), result.Stats.FetchTime)

	// =========================================================================
	// STEP 2: PARSE THE ELEMENT TREE
	// =========================================================================
	// Malformed documents fail here. Everything after this step operates
	// on a well-formed tree and cannot fail.

	root, err := xmltree.ParseBytes(data)
	if err != nil {
		result.Error = fmt.Errorf("failed to parse feed: %w", err)
		return result
	}

	c.logger.Debug("Parsed tree with %d elements", root.Count())

	// =========================================================================
	// STEP 3: DETECT RECORDS
	// =========================================================================
	// The forced tag from the feed configuration wins when it matches;
	// when it matches nothing we warn and use automatic detection, as a
	// stale force_tag should degrade the run, not kill it.

	detection := detector.Detect(root, c.feed.ForceTag)
	if detection.FellBack {
		c.logger.Warn("Tag %q not found in feed %s, detected %q automatically",
			c.feed.ForceTag, c.feed.Name, detection.Tag)
	}

	result.ItemTag = detection.Tag
	c.logger.Debug("Detected %d record(s) with tag %q", len(detection.Items), detection.Tag)

	// =========================================================================
	// STEP 4: FLATTEN RECORDS
	// =========================================================================

	rows := c.flattenRecords(detection.Items)
	result.Stats.Records = len(rows)

	// =========================================================================
	// STEP 5: DERIVE THE HEADER SET
	// =========================================================================

	header := flattener.Header(rows)
	result.Stats.Columns = len(header)
	c.logger.Debug("Derived %d column(s)", len(header))

	// =========================================================================
	// STEP 6: SERIALIZE
	// =========================================================================

	outputPath := c.outputPath()

	if c.dryRun {
		c.logger.Info("Dry run: would write %d record(s), %d column(s) to %s",
			len(rows), len(header), outputPath)
		result.Success = true
		result.Stats.ProcessingTime = time.Since(startTime)
		return result
	}

	if err := c.serialize(outputPath, detection.Tag, header, rows); err != nil {
		result.Error = fmt.Errorf("failed to write output: %w", err)
		return result
	}

	result.OutputFile = outputPath
	c.logger.Info("Wrote %d record(s) to %s", len(rows), outputPath)

	// =========================================================================
	// STEP 7: ARCHIVE
	// =========================================================================

	if c.mainConfig.ArchiveDir != "" {
		if err := utils.ArchiveFile(outputPath, c.mainConfig.ArchiveDir); err != nil {
			// Archival is best-effort; the output itself is already safe.
			c.logger.Warn("Failed to archive output: %v", err)
		}
	}

	result.Success = true
	result.Stats.ProcessingTime = time.Since(startTime)

	return result
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// acquire returns the raw feed document, from the network or from disk.
func (c *Converter) acquire(ctx context.Context) ([]byte, error) {
	if c.feed.File != "" {
		data, err := os.ReadFile(c.feed.File)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", c.feed.File, err)
		}
		return data, nil
	}
	return c.fetch.Fetch(ctx, c.feed.URL)
}

// flattenRecords flattens all records on a bounded worker pool.
//
// Flattening is side-effect-free per record, so records are distributed
// over MaxConcurrency workers. Each worker writes its row into the slot
// matching the record's detection index, which keeps output row order
// identical to detection order regardless of scheduling.
func (c *Converter) flattenRecords(items []*xmltree.Node) []flattener.Row {
	rows := make([]flattener.Row, len(items))

	workers := c.mainConfig.MaxConcurrency
	if workers < 1 {
		workers = 1
	}
	if workers == 1 || len(items) < 2 {
		for i, item := range items {
			rows[i] = flattener.Flatten(item)
		}
		return rows
	}

	indexes := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				rows[i] = flattener.Flatten(items[i])
			}
		}()
	}

	for i := range items {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	return rows
}

// serialize writes the output file in the feed's configured format.
func (c *Converter) serialize(path, itemTag string, header []string, rows []flattener.Row) error {
	switch c.feed.Format {
	case "xlsx":
		options := xlsxwriter.DefaultOptions()
		options.SheetName = itemTag
		options.PlaceholderColumn = c.mainConfig.CSV.PlaceholderColumn
		return xlsxwriter.WriteFile(path, header, rows, options)
	default:
		options := csvwriter.DefaultOptions()
		options.Delimiter = c.mainConfig.CSV.DelimiterRune()
		options.IncludeBOM = c.mainConfig.CSV.IncludeBOM
		options.PlaceholderColumn = c.mainConfig.CSV.PlaceholderColumn
		return csvwriter.WriteFile(path, header, rows, options)
	}
}

// outputPath resolves the feed's output path, generating a name from
// OutputNameFormat when the feed has no explicit output.
//
// FILE NAMING:
//   Placeholders in the format are replaced with actual values:
//   - {feed}: Feed name
//   - {uuid}: A random UUID
//   - {timestamp}: Current timestamp (YYYYMMDD_HHMMSS)
func (c *Converter) outputPath() string {
	if c.feed.Output != "" {
		return c.feed.Output
	}

	fileName := c.mainConfig.OutputNameFormat
	fileName = strings.ReplaceAll(fileName, "{feed}", c.feed.Name)
	fileName = strings.ReplaceAll(fileName, "{uuid}", uuid.New().String())
	fileName = strings.ReplaceAll(fileName, "{timestamp}", time.Now().Format("20060102_150405"))

	// Keep the extension honest with the configured format.
	wantExt := "." + c.feed.Format
	if !strings.EqualFold(filepath.Ext(fileName), wantExt) {
		fileName = strings.TrimSuffix(fileName, filepath.Ext(fileName)) + wantExt
	}

	return filepath.Join(c.mainConfig.OutputDir, fileName)
}
