package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/csv-wizard/internal/converter"
	"github.com/ginjaninja78/csv-wizard/internal/xlsxexport"
)

var (
	exportOut   string
	exportSheet string
)

// exportCmd writes the converted rows of a file to a workbook, leaving the
// CSV as it is.
var exportCmd = &cobra.Command{
	Use:   "export <index|path>",
	Short: "Write a file's normalized points to an Excel workbook",
	Long: `Export runs the same conversion as convert but writes the result to an
.xlsx workbook instead of over the source file. The CSV is never modified.`,
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

		out := exportOut
		if out == "" {
			out = strings.TrimSuffix(path, filepath.Ext(path)) + ".xlsx"
		}

		conv := converter.New(converter.Options{
			Parser: env.cfg.ParserSettings(),
			Logger: env.logger,
		})
		outcome, total, err := conv.Plan(path)
		if err != nil {
			return fmt.Errorf("failed to convert %s: %w", filepath.Base(path), err)
		}

		n, err := xlsxexport.ExportFile(outcome.Rows, out, xlsxexport.Options{SheetName: exportSheet})
		if err != nil {
			return err
		}

		env.logger.Info("export finished",
			"file", filepath.Base(path),
			"out", out,
			"branch", outcome.Branch.Name,
			"rows", n,
			"skipped", len(outcome.Skipped),
		)
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d rows from %s (%d total rows, %d skipped) to %s\n",
			n, filepath.Base(path), total, len(outcome.Skipped), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Workbook path (default: the CSV path with .xlsx)")
	exportCmd.Flags().StringVar(&exportSheet, "sheet", xlsxexport.DefaultSheetName, "Worksheet name")
}
