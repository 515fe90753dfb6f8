// =============================================================================
// XML to CSV Converter - Main Entry Point
// =============================================================================
//
// This is the main entry point for the XML to CSV Converter CLI application.
// It initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   xml2csv convert       - Convert configured feeds (or an ad-hoc --url/--file)
//   xml2csv inspect       - Report a feed's detected structure without converting
//   xml2csv version       - Display the application version
//
// ARCHITECTURE:
//   This application follows a modular design where:
//   - cmd/           : Contains all CLI command definitions (Cobra)
//   - internal/      : Contains core business logic (not for external import)
//   - pkg/           : Contains shared utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/XML-to-CSV-conversion/cmd"
)

// main is the entry point of the application.
func main() {
	cmd.Execute()
}
