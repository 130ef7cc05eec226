package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/todo/internal/date"
	"github.com/twiced-technology-gmbh/todo/internal/output"
	"github.com/twiced-technology-gmbh/todo/internal/tasklist"
)

var listCmd = &cobra.Command{
	Use:     "list [TERM...]",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long: `Lists tasks, open ones by default. Filter terms narrow the view:
+Project and @Context match tags, (A) matches a priority, key:value matches
metadata (due:today resolves to the current date), anything else searches
the description. All terms must match.`,
	RunE: runList,
}

func init() {
	listCmd.Flags().Bool("all", false, "include completed tasks")
	listCmd.Flags().Bool("completed", false, "show only completed tasks")
	listCmd.Flags().IntP("top", "n", 0, "limit number of results")
	listCmd.Flags().Bool("sort", false, "sort the view by priority")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st := openStore(cfg)
	list, err := loadList(cfg, st)
	if err != nil {
		return err
	}

	all, _ := cmd.Flags().GetBool("all")
	completedOnly, _ := cmd.Flags().GetBool("completed")
	top, _ := cmd.Flags().GetInt("top")
	sortView, _ := cmd.Flags().GetBool("sort")

	if sortView {
		list.SortByPriority()
	}

	today := clock.Today()
	q := tasklist.ParseQuery(args, today)
	switch {
	case completedOnly:
		v := true
		q.Completed = &v
	case !all:
		v := false
		q.Completed = &v
	}

	entries := list.Match(q)
	if top > 0 && len(entries) > top {
		entries = entries[:top]
	}

	return outputEntries(entries, today)
}

// outputEntries renders a filtered task view in the active format.
func outputEntries(entries []tasklist.Entry, today date.Date) error {
	format := outputFormat()
	if format == output.FormatJSON {
		return output.JSON(os.Stdout, output.TaskRows(entries))
	}
	if len(entries) == 0 {
		output.Messagef(os.Stdout, "No matching tasks found.")
		return nil
	}
	if format == output.FormatCompact {
		output.TaskCompact(os.Stdout, entries)
		return nil
	}

	output.TaskTable(os.Stdout, entries, today)
	return nil
}
