package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/todo/internal/output"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show collection statistics",
	Long: `Summarizes the todo file: totals, per-project and per-context counts,
and how many tasks are overdue or due today.`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st := openStore(cfg)
	list, err := loadList(cfg, st)
	if err != nil {
		return err
	}

	ov := list.Summarize(clock.Today())

	format := outputFormat()
	if format == output.FormatJSON {
		return output.JSON(os.Stdout, ov)
	}
	if format == output.FormatCompact {
		output.StatsCompact(os.Stdout, ov)
		return nil
	}

	output.StatsTable(os.Stdout, ov)
	return nil
}
