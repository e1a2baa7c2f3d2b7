// =============================================================================
// CSV Wizard - Convert Command
// =============================================================================
//
// This file defines the 'convert' command, which normalizes one point file in
// place.
//
// COMMAND USAGE:
//   csvwizard convert <index|path> [flags]
//
// FLAGS:
//   --dry-run : Transform the file and report, without writing it
//   --yes     : Skip the confirmation prompt
//
// PROCESSING PIPELINE:
//   1. Resolve the argument to a file (ordinal in the listing, or a path)
//   2. Ask for confirmation unless --yes or --dry-run
//   3. Convert the file, printing each skipped row as it is found
//   4. Print the completion summary
//
// =============================================================================

package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/csv-wizard/internal/classifier"
	"github.com/ginjaninja78/csv-wizard/internal/converter"
	"github.com/ginjaninja78/csv-wizard/internal/csvparser"
	"github.com/ginjaninja78/csv-wizard/internal/report"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// dryRun transforms without writing.
var dryRun bool

// assumeYes skips the confirmation prompt.
var assumeYes bool

// errConversionFailed is returned after the failure has already been printed.
var errConversionFailed = errors.New("conversion failed")

// =============================================================================
// CONVERT COMMAND DEFINITION
// =============================================================================

var convertCmd = &cobra.Command{
	Use:   "convert <index|path>",
	Short: "Normalize one point file in place",
	Long: `Convert rewrites one point file in place, choosing the conversion from its
header:

  Name, Longitude, Latitude, Ellipsoidal height (exactly)  -> points only, header dropped
  any header containing Name, Longitude, Latitude and
  Ellipsoidal height                                       -> canonical four columns
  anything else                                            -> canonical header prepended

Malformed rows are reported and skipped. A file missing a required column is
left untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer env.Close()

		path, err := env.resolve(args[0])
		if err != nil {
			return err
		}

		console := report.NewConsole(cmd.OutOrStdout())

		if !assumeYes && !dryRun {
			if !confirm(cmd, path, env) {
				fmt.Fprintln(cmd.OutOrStdout(), "Conversion cancelled.")
				return nil
			}
		}

		conv := converter.New(converter.Options{
			Parser: env.cfg.ParserSettings(),
			Writer: env.cfg.WriterOptions(),
			DryRun: dryRun,
			Logger: env.logger,
			Sink:   console,
		})

		if _, err := conv.ConvertFile(path); err != nil {
			console.Failed(path, err)
			return errConversionFailed
		}
		return nil
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Transform and report without writing the file",
	)

	convertCmd.Flags().BoolVarP(
		&assumeYes,
		"yes",
		"y",
		false,
		"Convert without asking for confirmation",
	)
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// confirm asks the operator whether to convert path. Only "y" or "yes"
// (any case) confirms.
func confirm(cmd *cobra.Command, path string, env *environment) bool {
	tag := classifier.Unknown
	if header, err := csvparser.ReadHeader(path, env.cfg.ParserSettings()); err == nil {
		tag = classifier.Classify(header)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Do you want to convert %s (%s)? [y/N] ", filepath.Base(path), tag)

	// A read error leaves answer empty, which counts as no.
	answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
