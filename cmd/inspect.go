// =============================================================================
// XML to CSV Converter - Inspect Command
// =============================================================================
//
// This file defines the 'inspect' command, which runs detection and
// flattening on a source and reports what the conversion would produce —
// the detected record tag, the record count and the derived column set —
// without writing any output file. Useful for checking an unfamiliar feed
// before wiring it into the configuration.
//
// COMMAND USAGE:
//   xml2csv inspect --url https://shop.example/feed.xml
//   xml2csv inspect --file feed.xml --force-tag offer
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/XML-to-CSV-conversion/internal/config"
	"github.com/ginjaninja78/XML-to-CSV-conversion/internal/detector"
	"github.com/ginjaninja78/XML-to-CSV-conversion/internal/fetcher"
	"github.com/ginjaninja78/XML-to-CSV-conversion/internal/flattener"
	"github.com/ginjaninja78/XML-to-CSV-conversion/internal/xmltree"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// inspectURL is the feed URL to inspect.
var inspectURL string

// inspectFile is the local document to inspect.
var inspectFile string

// inspectForceTag forces the record tag for the inspection.
var inspectForceTag string

// =============================================================================
// INSPECT COMMAND DEFINITION
// =============================================================================

// inspectCmd represents the 'inspect' command.
var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Detect a feed's record structure without converting it",
	Long: `The inspect command fetches and parses a feed, runs item detection and
flattening, and prints what a conversion would produce: the detected record
tag, how many records matched and the full derived column set in output
order. No files are written.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runInspect(cmd.Context())
	},
}

// init registers the inspect command with the root command and sets up flags.
func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().StringVar(&inspectURL, "url", "", "Feed URL to inspect")
	inspectCmd.Flags().StringVar(&inspectFile, "file", "", "Local document to inspect")
	inspectCmd.Flags().StringVar(&inspectForceTag, "force-tag", "",
		"Force the record tag instead of detecting it")
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runInspect acquires the document, detects records and prints the report.
func runInspect(ctx context.Context) error {
	if inspectURL == "" && inspectFile == "" {
		return fmt.Errorf("either --url or --file is required")
	}
	if inspectURL != "" && inspectFile != "" {
		return fmt.Errorf("--url and --file are mutually exclusive")
	}

	mainConfig, err := config.Load(cfgFile)
	if err != nil {
		mainConfig = config.Default()
	}

	var data []byte
	if inspectFile != "" {
		data, err = os.ReadFile(inspectFile)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", inspectFile, err)
		}
	} else {
		data, err = fetcher.New(mainConfig.Fetch).Fetch(ctx, inspectURL)
		if err != nil {
			return err
		}
	}

	root, err := xmltree.ParseBytes(data)
	if err != nil {
		return err
	}

	detection := detector.Detect(root, inspectForceTag)
	if detection.FellBack {
		fmt.Fprintf(os.Stderr, "WARNING: tag %q not found, detected %q automatically\n",
			inspectForceTag, detection.Tag)
	}

	rows := make([]flattener.Row, len(detection.Items))
	for i, item := range detection.Items {
		rows[i] = flattener.Flatten(item)
	}
	header := flattener.Header(rows)

	fmt.Printf("Record tag:  <%s>\n", detection.Tag)
	fmt.Printf("Records:     %d\n", len(detection.Items))
	fmt.Printf("Columns:     %d\n", len(header))
	for _, column := range header {
		fmt.Printf("  - %s\n", column)
	}

	return nil
}
