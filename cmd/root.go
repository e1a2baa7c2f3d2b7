// =============================================================================
// CSV Wizard - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. Every subcommand is
// attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (csvwizard)
//   ├── listCmd        (csvwizard list)
//   ├── previewCmd     (csvwizard preview <index|path>)
//   ├── convertCmd     (csvwizard convert <index|path>)
//   ├── exportCmd      (csvwizard export <index|path>)
//   ├── interactiveCmd (csvwizard interactive, alias ui)
//   └── versionCmd     (csvwizard version)
//
// CONFIGURATION:
//   The root command owns the flags shared by every subcommand and builds
//   the runtime environment (configuration and logger) each command runs in.
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/csv-wizard/internal/catalog"
	"github.com/ginjaninja78/csv-wizard/internal/config"
	"github.com/ginjaninja78/csv-wizard/internal/logging"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
var cfgFile string

// baseDir overrides base_dir from the configuration file.
var baseDir string

// verbose forces debug logging.
var verbose bool

// sortBy and ascending override the listing order. Ordinal arguments resolve
// against the same order, so they are shared by every subcommand.
var (
	sortBy    string
	ascending bool
)

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "csvwizard",
	Short: "CSV Wizard - Normalize survey point files for CAD import",
	Long: `CSV Wizard lists the point files in a working directory, tags each one
with the layout its header suggests, and rewrites a chosen file in place into
the canonical four-column layout (Name, Longitude, Latitude, Ellipsoidal height).

Example Usage:
  csvwizard list                 # Numbered listing, newest first
  csvwizard preview 0            # First page of the newest file
  csvwizard convert 0            # Convert the newest file after confirmation
  csvwizard convert pts.csv -y   # Convert a file by path without asking
  csvwizard ui                   # Interactive terminal UI`,

	SilenceUsage:  true,
	SilenceErrors: true,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		config.DefaultConfigFile,
		"Path to the configuration file",
	)

	rootCmd.PersistentFlags().StringVarP(
		&baseDir,
		"dir",
		"d",
		"",
		"Directory holding the point files (overrides base_dir)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug logging",
	)

	rootCmd.PersistentFlags().StringVar(
		&sortBy,
		"sort",
		"",
		"Listing order: date or name (overrides sort_by)",
	)

	rootCmd.PersistentFlags().BoolVar(
		&ascending,
		"asc",
		false,
		"List oldest or A-Z first",
	)
}

// =============================================================================
// RUNTIME ENVIRONMENT
// =============================================================================

// environment is what every subcommand runs with.
type environment struct {
	cfg    *config.Config
	logger *slog.Logger
	closer io.Closer
}

// Close releases the log file, if any.
func (e *environment) Close() error {
	return e.closer.Close()
}

// setup loads the configuration and builds the logger.
//
// PARAMETERS:
//   - cmd: The running command; used to tell an explicit --config apart.
//   - quietLogs: Discard log output unless log_file is set. The terminal UI
//     owns the screen, so stray log lines would corrupt it.
//
// RETURNS:
//   - The environment. Callers must Close it.
//   - An error if the configuration is invalid or the log file cannot be opened.
func setup(cmd *cobra.Command, quietLogs bool) (*environment, error) {
	explicit := cmd.Flags().Changed("config")
	cfg, err := config.Load(cfgFile, explicit)
	if err != nil {
		return nil, err
	}

	if baseDir != "" {
		cfg.BaseDir = baseDir
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	if sortBy != "" {
		cfg.SortBy = sortBy
	}
	if ascending {
		descending := false
		cfg.Descending = &descending
	}

	opts := logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
		Output: cmd.ErrOrStderr(),
	}
	if quietLogs && cfg.LogFile == "" {
		opts.Output = io.Discard
	}

	logger, closer, err := logging.Setup(opts)
	if err != nil {
		return nil, err
	}

	logger.Debug("configuration loaded",
		"config", cfgFile,
		"base_dir", cfg.BaseDir,
		"sort_by", cfg.SortBy,
		"descending", cfg.IsDescending(),
	)
	return &environment{cfg: cfg, logger: logger, closer: closer}, nil
}

// listing builds the numbered listing of the working directory.
func (e *environment) listing(sortBy string, descending bool) ([]catalog.Entry, error) {
	entries, err := catalog.Build(catalog.Options{
		Dir:        e.cfg.BaseDir,
		SortBy:     sortBy,
		Descending: descending,
		Parser:     e.cfg.ParserSettings(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", e.cfg.BaseDir, err)
	}
	return entries, nil
}

// resolve turns an ordinal or path argument into a file path, using the
// configured listing order for ordinals.
func (e *environment) resolve(arg string) (string, error) {
	return catalog.Resolve(arg, func() ([]catalog.Entry, error) {
		return e.listing(e.cfg.SortBy, e.cfg.IsDescending())
	})
}
