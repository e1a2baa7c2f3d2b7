package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/csv-wizard/internal/converter"
	"github.com/ginjaninja78/csv-wizard/internal/csvparser"
	"github.com/ginjaninja78/csv-wizard/internal/report"
	"github.com/ginjaninja78/csv-wizard/internal/tui"
	"github.com/ginjaninja78/csv-wizard/internal/types"
)

// interactiveCmd runs the terminal UI.
var interactiveCmd = &cobra.Command{
	Use:     "interactive",
	Aliases: []string{"ui"},
	Short:   "Browse, preview and convert files in a terminal UI",
	Long: `Interactive opens a terminal UI over the working directory:

  list     ↑/↓ select · enter preview · n sort by name · d sort by date · r refresh
  preview  ←/→ page · y convert · esc cancel
  result   any key returns to the refreshed list

Log output is discarded unless log_file is set.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup(cmd, true)
		if err != nil {
			return err
		}
		defer env.Close()

		settings := env.cfg.ParserSettings()
		pageSize := env.cfg.PageSize
		conv := converter.New(converter.Options{
			Parser: settings,
			Writer: env.cfg.WriterOptions(),
			Logger: env.logger,
		})

		deps := tui.Deps{
			Dir:      env.cfg.BaseDir,
			PageSize: pageSize,
			Load:     env.listing,
			Preview: func(path string, page int) ([]types.Row, int, error) {
				total, err := csvparser.CountRows(path, settings)
				if err != nil {
					return nil, 0, err
				}
				rows, err := csvparser.ReadPage(path, settings, page, pageSize)
				return rows, csvparser.PageCount(total, pageSize), err
			},
			Convert: conv.ConvertFile,
			Console: report.NewConsole(cmd.OutOrStdout()),
		}

		env.logger.Info("interactive session started", "dir", env.cfg.BaseDir)
		return tui.Run(deps, env.cfg.SortBy, env.cfg.IsDescending())
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}
