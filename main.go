// =============================================================================
// CSV Wizard - Main Entry Point
// =============================================================================
//
// USAGE:
//   csvwizard list           - Numbered listing of the point files
//   csvwizard preview <n>    - Show a page of a file's raw rows
//   csvwizard convert <n>    - Normalize a file in place
//   csvwizard export <n>     - Write a file's points to an Excel workbook
//   csvwizard ui             - Interactive terminal UI
//   csvwizard version        - Display the application version
//
// ARCHITECTURE:
//   - cmd/      : CLI command definitions (Cobra)
//   - internal/ : Classification, conversion and file handling
//   - pkg/      : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/csv-wizard/cmd"
)

func main() {
	cmd.Execute()
}
