// =============================================================================
// XML to CSV Converter - Configuration Module
// =============================================================================
//
// This module loads and manages the application configuration. One YAML file
// holds both the global settings and the list of feeds to convert.
//
// CONFIGURATION LAYOUT (config.yaml):
//
//   output_dir: ./output
//   archive_dir: ./output_archive
//   max_concurrency: 4
//   fetch:
//     timeout_seconds: 60
//     user_agent: "Mozilla/5.0 (xml2csv bot)"
//   csv:
//     delimiter: ","
//     placeholder_column: no_data
//   feeds:
//     - name: konopnysklep
//       url: https://example.com/feed.xml
//       output: data/konopnysklep.csv
//       force_tag: product
//
// Feeds are independent: a broken feed never blocks the others.
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
type MainConfig struct {
	// OutputDir is the directory where generated files are placed when a
	// feed does not specify an explicit output path.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// ArchiveDir is the directory where copies of generated files are
	// kept for long-term storage. Leave empty to disable archival.
	ArchiveDir string `yaml:"archive_dir"`

	// LogFile is the path to the application log file.
	// Default: "./logs/xml2csv.log"
	LogFile string `yaml:"log_file"`

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// OutputNameFormat defines generated output file names when a feed has
	// no explicit output path. Placeholders:
	//   {feed}      - Feed name
	//   {uuid}      - A random UUID
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	// Default: "{feed}_{timestamp}.csv"
	OutputNameFormat string `yaml:"output_name_format"`

	// MaxConcurrency caps how many feeds are converted at the same time,
	// and how many records are flattened in parallel within one feed.
	// Set to 1 for fully sequential processing.
	// Default: 4
	MaxConcurrency int `yaml:"max_concurrency"`

	// ContinueOnError determines whether remaining feeds are processed
	// when one feed fails.
	// Default: true
	ContinueOnError bool `yaml:"continue_on_error"`

	// Fetch contains the HTTP retrieval settings shared by all feeds.
	Fetch FetchSettings `yaml:"fetch"`

	// CSV contains the CSV serialization settings shared by all feeds.
	CSV CSVSettings `yaml:"csv"`

	// Feeds is the list of feeds to convert.
	Feeds []FeedConfig `yaml:"feeds"`
}

// =============================================================================
// FETCH SETTINGS STRUCTURE
// =============================================================================

// FetchSettings contains settings for retrieving feeds over HTTP.
type FetchSettings struct {
	// TimeoutSeconds is the request timeout for a single feed download.
	// Default: 60
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// UserAgent is sent with every request. Several feed providers reject
	// requests without a browser-looking agent string.
	// Default: "Mozilla/5.0 (xml2csv bot)"
	UserAgent string `yaml:"user_agent"`
}

// =============================================================================
// CSV SETTINGS STRUCTURE
// =============================================================================

// CSVSettings contains settings for writing the CSV output.
type CSVSettings struct {
	// Delimiter is the field separator.
	// Common values: "," (comma), ";" (semicolon), "\t" or "tab"
	// Default: ","
	Delimiter string `yaml:"delimiter"`

	// IncludeBOM prepends a UTF-8 byte order mark so spreadsheet tools
	// that guess encodings (Excel, mostly) open the file correctly.
	// Default: false
	IncludeBOM bool `yaml:"include_bom"`

	// PlaceholderColumn is the single column written when a feed yields
	// zero records, so the output is still a well-formed CSV.
	// Default: "no_data"
	PlaceholderColumn string `yaml:"placeholder_column"`
}

// =============================================================================
// FEED CONFIGURATION STRUCTURE
// =============================================================================

// FeedConfig describes a single feed to convert.
type FeedConfig struct {
	// Name identifies the feed in logs, reports and generated file names.
	Name string `yaml:"name"`

	// URL is the source feed address. Exactly one of URL and File must
	// be set.
	URL string `yaml:"url"`

	// File is a local path to the source document, for feeds delivered by
	// other means (sftp drops, manual exports).
	File string `yaml:"file"`

	// Output is the explicit output path. When empty, a name is generated
	// from OutputNameFormat into OutputDir.
	Output string `yaml:"output"`

	// ForceTag overrides item detection with a known record tag
	// (e.g. "product", "item", "offer"). When the tag does not occur in
	// the document the converter falls back to automatic detection and
	// logs a warning.
	ForceTag string `yaml:"force_tag"`

	// Format selects the output format: "csv" or "xlsx".
	// Default: "csv", or "xlsx" when Output ends in ".xlsx".
	Format string `yaml:"format"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Load reads the configuration from a YAML file, applies defaults and
// validates it.
//
// PARAMETERS:
//   - configPath: The path to the configuration file.
//
// RETURNS:
//   - A pointer to the MainConfig struct.
//   - An error if the file cannot be read, parsed or validated.
func Load(configPath string) (*MainConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config MainConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	ApplyDefaults(&config)

	if err := Validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Default returns a configuration with all defaults applied and no feeds.
// Used by ad-hoc conversions that run without a config file.
func Default() *MainConfig {
	var config MainConfig
	ApplyDefaults(&config)
	return &config
}

// ApplyDefaults sets default values for any unset configuration options.
func ApplyDefaults(config *MainConfig) {
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}
	if config.LogFile == "" {
		config.LogFile = "./logs/xml2csv.log"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.OutputNameFormat == "" {
		config.OutputNameFormat = "{feed}_{timestamp}.csv"
	}
	if config.MaxConcurrency == 0 {
		config.MaxConcurrency = 4
	}
	if config.Fetch.TimeoutSeconds == 0 {
		config.Fetch.TimeoutSeconds = 60
	}
	if config.Fetch.UserAgent == "" {
		config.Fetch.UserAgent = "Mozilla/5.0 (xml2csv bot)"
	}
	if config.CSV.Delimiter == "" {
		config.CSV.Delimiter = ","
	}
	if config.CSV.PlaceholderColumn == "" {
		config.CSV.PlaceholderColumn = "no_data"
	}

	for i := range config.Feeds {
		if config.Feeds[i].Format == "" {
			if strings.EqualFold(filepath.Ext(config.Feeds[i].Output), ".xlsx") {
				config.Feeds[i].Format = "xlsx"
			} else {
				config.Feeds[i].Format = "csv"
			}
		}
	}
}

// Validate checks the configuration for problems that would otherwise only
// surface halfway through a run.
func Validate(config *MainConfig) error {
	switch config.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", config.LogLevel)
	}

	if config.MaxConcurrency < 1 {
		return fmt.Errorf("max_concurrency must be at least 1, got %d", config.MaxConcurrency)
	}

	names := make(map[string]bool, len(config.Feeds))
	for i, feed := range config.Feeds {
		if feed.Name == "" {
			return fmt.Errorf("feed %d has no name", i+1)
		}
		if names[feed.Name] {
			return fmt.Errorf("duplicate feed name %q", feed.Name)
		}
		names[feed.Name] = true

		if feed.URL == "" && feed.File == "" {
			return fmt.Errorf("feed %q: either url or file must be set", feed.Name)
		}
		if feed.URL != "" && feed.File != "" {
			return fmt.Errorf("feed %q: url and file are mutually exclusive", feed.Name)
		}

		switch feed.Format {
		case "csv", "xlsx":
		default:
			return fmt.Errorf("feed %q: unknown format %q", feed.Name, feed.Format)
		}
	}

	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// DelimiterRune resolves the configured delimiter to a rune, accepting the
// spelled-out forms used in hand-edited YAML.
func (s CSVSettings) DelimiterRune() rune {
	switch s.Delimiter {
	case "\\t", "tab", "TAB":
		return '\t'
	case ";", "semicolon":
		return ';'
	case "|", "pipe", "PIPE":
		return '|'
	default:
		if s.Delimiter != "" {
			return rune(s.Delimiter[0])
		}
		return ','
	}
}
