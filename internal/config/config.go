// =============================================================================
// CSV Wizard - Configuration Module
// =============================================================================
//
// This module loads the application configuration from a YAML file. Every
// setting has a default, so the tool runs without any configuration file.
//
// CONFIGURATION FILE (csvwizard.yaml):
//
//   base_dir: ~/Documents/POINTDATA
//   sort_by: date            # date | name
//   descending: true
//   page_size: 100
//   csv:
//     encoding: utf-8        # utf-8 | latin1 | windows-1252
//     line_ending: crlf      # crlf | lf
//   atomic_write: true
//   backup: false
//   log_level: info          # debug | info | warn | error
//   log_format: text         # text | json
//   log_file: ""
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/csv-wizard/internal/csvparser"
	"github.com/ginjaninja78/csv-wizard/internal/csvwriter"
	"github.com/ginjaninja78/csv-wizard/pkg/utils"
)

// =============================================================================
// CONSTANTS
// =============================================================================

// DefaultPageSize is the number of rows shown per preview page.
const DefaultPageSize = 100

// DefaultConfigFile is the configuration file looked for when --config is not set.
const DefaultConfigFile = "csvwizard.yaml"

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the application configuration.
type Config struct {
	// BaseDir is the directory scanned for point files.
	// Default: ~/Documents/POINTDATA, or "." when there is no home directory.
	BaseDir string `yaml:"base_dir"`

	// SortBy orders the listing: "date" or "name".
	SortBy string `yaml:"sort_by"`

	// Descending reverses the listing order.
	// A pointer so an explicit false survives defaulting.
	Descending *bool `yaml:"descending"`

	// PageSize is the number of rows per preview page.
	PageSize int `yaml:"page_size"`

	// CSV holds file encoding settings.
	CSV CSVSettings `yaml:"csv"`

	// AtomicWrite rewrites files through a temporary file and rename.
	AtomicWrite *bool `yaml:"atomic_write"`

	// Backup keeps a .bak copy of each file before it is rewritten.
	Backup bool `yaml:"backup"`

	// LogLevel is "debug", "info", "warn" or "error".
	LogLevel string `yaml:"log_level"`

	// LogFormat is "text" or "json".
	LogFormat string `yaml:"log_format"`

	// LogFile receives log output. Empty means stderr.
	LogFile string `yaml:"log_file"`
}

// CSVSettings holds the settings used to read and write point files.
type CSVSettings struct {
	// Encoding is "utf-8", "latin1" or "windows-1252".
	Encoding string `yaml:"encoding"`

	// LineEnding is "crlf" or "lf".
	LineEnding string `yaml:"line_ending"`
}

// =============================================================================
// LOADING
// =============================================================================

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads the configuration file at configPath.
//
// PARAMETERS:
//   - configPath: Path to the YAML file.
//   - explicit: Whether the operator asked for this file. A missing file is
//     an error only when explicit is true; otherwise defaults are used.
//
// RETURNS:
//   - The configuration with defaults applied.
//   - An error if the file cannot be read or parsed, or a value is invalid.
func Load(configPath string, explicit bool) (*Config, error) {
	cfg := &Config{}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		case errors.Is(err, os.ErrNotExist) && !explicit:
			// Fall through to defaults.
		default:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// applyDefaults fills in every unset field.
func applyDefaults(cfg *Config) {
	if cfg.BaseDir == "" {
		cfg.BaseDir = defaultBaseDir()
	}
	cfg.BaseDir = utils.ExpandHome(cfg.BaseDir)

	if cfg.SortBy == "" {
		cfg.SortBy = utils.SortByDate
	}
	if cfg.Descending == nil {
		cfg.Descending = boolPtr(true)
	}
	if cfg.PageSize == 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.CSV.Encoding == "" {
		cfg.CSV.Encoding = "utf-8"
	}
	if cfg.CSV.LineEnding == "" {
		cfg.CSV.LineEnding = "crlf"
	}
	if cfg.AtomicWrite == nil {
		cfg.AtomicWrite = boolPtr(true)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
}

// defaultBaseDir is the POINTDATA folder under the user's documents.
func defaultBaseDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "Documents", "POINTDATA")
}

// Validate checks every enumerated setting.
func (c *Config) Validate() error {
	var errs []error

	switch strings.ToLower(c.SortBy) {
	case utils.SortByDate, utils.SortByName:
	default:
		errs = append(errs, fmt.Errorf("sort_by must be %q or %q, got %q", utils.SortByDate, utils.SortByName, c.SortBy))
	}

	if c.PageSize < 0 {
		errs = append(errs, fmt.Errorf("page_size must be positive, got %d", c.PageSize))
	}

	if _, err := csvparser.LookupEncoding(c.CSV.Encoding); err != nil {
		errs = append(errs, fmt.Errorf("csv.encoding: %w", err))
	}

	switch strings.ToLower(c.CSV.LineEnding) {
	case "crlf", "lf":
	default:
		errs = append(errs, fmt.Errorf("csv.line_ending must be \"crlf\" or \"lf\", got %q", c.CSV.LineEnding))
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("log_level %q is not recognised", c.LogLevel))
	}

	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log_format must be \"text\" or \"json\", got %q", c.LogFormat))
	}

	return errors.Join(errs...)
}

// =============================================================================
// DERIVED SETTINGS
// =============================================================================

// ParserSettings returns the settings for reading point files.
func (c *Config) ParserSettings() csvparser.Settings {
	return csvparser.Settings{Encoding: c.CSV.Encoding}
}

// WriterOptions returns the options for rewriting point files.
func (c *Config) WriterOptions() csvwriter.Options {
	return csvwriter.Options{
		Encoding: c.CSV.Encoding,
		UseCRLF:  strings.EqualFold(c.CSV.LineEnding, "crlf"),
		Atomic:   c.AtomicWrite == nil || *c.AtomicWrite,
		Backup:   c.Backup,
	}
}

// IsDescending reports the configured listing direction.
func (c *Config) IsDescending() bool {
	return c.Descending == nil || *c.Descending
}

func boolPtr(b bool) *bool {
	return &b
}
