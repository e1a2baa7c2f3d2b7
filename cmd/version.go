// =============================================================================
// CSV Wizard - Version Command
// =============================================================================
//
// COMMAND USAGE:
//   csvwizard version
//
// OUTPUT:
//   CSV Wizard
//   Version:    1.0.0
//   Build Date: 2024-01-01
//   Go Version: go1.24.0
//
// =============================================================================

package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// These are set at build time:
//   go build -ldflags "-X 'github.com/ginjaninja78/csv-wizard/cmd.Version=1.0.0' -X 'github.com/ginjaninja78/csv-wizard/cmd.BuildDate=2024-01-01'"

// Version is the application version.
var Version = "dev"

// BuildDate is the date the application was built.
var BuildDate = "unknown"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the application version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "CSV Wizard")
		fmt.Fprintf(out, "Version:    %s\n", Version)
		fmt.Fprintf(out, "Build Date: %s\n", BuildDate)
		fmt.Fprintf(out, "Go Version: %s\n", runtime.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
