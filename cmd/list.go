package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/csv-wizard/internal/report"
)

// listCmd prints the numbered listing of the working directory.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the point files with their detected format",
	Long: `List every .csv file in the working directory, numbered in listing order,
with the format tag its header suggests (EMLID, CIVIL3D or Unknown).

The numbers are the ordinals accepted by preview, convert and export.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer env.Close()

		entries, err := env.listing(env.cfg.SortBy, env.cfg.IsDescending())
		if err != nil {
			return err
		}

		report.NewConsole(cmd.OutOrStdout()).Listing(env.cfg.BaseDir, entries)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
