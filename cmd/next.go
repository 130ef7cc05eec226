package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/todo/internal/output"
	"github.com/twiced-technology-gmbh/todo/internal/tasklist"
)

var nextCmd = &cobra.Command{
	Use:   "next [TERM...]",
	Short: "Show the most urgent task",
	Long: `Shows the highest-priority open task, optionally narrowed by the same
filter terms as list. Ties keep file order.`,
	RunE: runNext,
}

func init() {
	rootCmd.AddCommand(nextCmd)
}

func runNext(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st := openStore(cfg)
	list, err := loadList(cfg, st)
	if err != nil {
		return err
	}

	today := clock.Today()
	q := tasklist.ParseQuery(args, today)
	open := false
	q.Completed = &open

	// Sort a copy so the on-disk order stays untouched; Match positions
	// would otherwise report against the sorted view.
	sorted := make(tasklist.List, len(list))
	copy(sorted, list)
	sorted.SortByPriority()

	for _, t := range sorted {
		if !q.Matches(t) {
			continue
		}
		// Recover the task's position in the stored list.
		pos := 0
		for i, x := range list {
			if x == t {
				pos = i + 1
				break
			}
		}
		entry := tasklist.Entry{Pos: pos, Task: t}

		format := outputFormat()
		if format == output.FormatJSON {
			return output.JSON(os.Stdout, output.TaskRows([]tasklist.Entry{entry})[0])
		}
		if format == output.FormatCompact {
			output.TaskCompact(os.Stdout, []tasklist.Entry{entry})
			return nil
		}
		output.TaskDetail(os.Stdout, entry, today)
		return nil
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, []output.TaskRow{})
	}
	output.Messagef(os.Stdout, "No matching tasks found.")
	return nil
}
