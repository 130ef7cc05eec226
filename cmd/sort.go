package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/todo/internal/output"
)

var sortCmd = &cobra.Command{
	Use:   "sort",
	Short: "Sort the todo file by priority",
	Long: `Reorders the todo file by priority, highest first. Tasks without a
priority keep their relative order at the end.`,
	RunE: runSort,
}

func init() {
	rootCmd.AddCommand(sortCmd)
}

func runSort(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st := openStore(cfg)
	list, err := loadList(cfg, st)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		output.Messagef(os.Stdout, "No tasks found.")
		return nil
	}

	list.SortByPriority()
	if err := saveList(cfg, st, list); err != nil {
		return err
	}
	logHistory(cfg, "sort", 0, "")

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]interface{}{
			"status": "sorted",
			"count":  len(list),
		})
	}
	output.Messagef(os.Stdout, "Sorted %d tasks by priority.", len(list))
	return nil
}
