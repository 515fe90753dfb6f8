// =============================================================================
// XML to CSV Converter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands (like 'convert', 'inspect') are
// attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (xml2csv)
//   ├── convertCmd (xml2csv convert)
//   ├── inspectCmd (xml2csv inspect)
//   └── versionCmd (xml2csv version)
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables verbose logging when set to true.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "xml2csv",

	Short: "XML to CSV Converter - Flatten XML feeds with unknown schema into CSV",

	Long: `XML to CSV Converter turns arbitrary XML feeds (product catalogs, offer
exports, any repeated-element document) into flat CSV files without a
predefined schema.

The converter infers the structure from the document itself:
  - It detects which repeated element represents one record
  - It flattens each record's subtree into path-named columns
    (seller_name, price@currency, ...)
  - Repeated values (image galleries and the like) collapse into one cell

Example Usage:
  xml2csv convert --url https://shop.example/feed.xml --out data/feed.csv
  xml2csv convert                      # Convert every feed in config.yaml
  xml2csv convert --force-tag product  # Override item detection
  xml2csv inspect --url https://shop.example/feed.xml`,

	// If no subcommand is provided, print the help message.
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init sets up the global flags.
func init() {
	// Persistent flags are available to this command and all subcommands.

	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file (default is config.yaml)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}
