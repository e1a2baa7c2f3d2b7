package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/csv-wizard/internal/csvparser"
	"github.com/ginjaninja78/csv-wizard/internal/report"
)

// previewPage is the one-based page to show.
var previewPage int

// previewCmd prints one page of a file's raw rows.
var previewCmd = &cobra.Command{
	Use:   "preview <index|path>",
	Short: "Show one page of a file's raw rows",
	Long: `Show one page of raw rows, header included, exactly as they are stored.
Pages hold page_size rows (100 by default).`,
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

		settings := env.cfg.ParserSettings()
		total, err := csvparser.CountRows(path, settings)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		pageSize := env.cfg.PageSize
		pages := csvparser.PageCount(total, pageSize)
		if previewPage < 1 || (pages > 0 && previewPage > pages) {
			return fmt.Errorf("page %d is out of range (1-%d)", previewPage, max(pages, 1))
		}

		rows, err := csvparser.ReadPage(path, settings, previewPage-1, pageSize)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		report.NewConsole(cmd.OutOrStdout()).Preview(path, previewPage-1, pages, pageSize, rows)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().IntVarP(&previewPage, "page", "p", 1, "Page to show, starting at 1")
}
