package cmd

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/todo/internal/clierr"
	"github.com/twiced-technology-gmbh/todo/internal/output"
	"github.com/twiced-technology-gmbh/todo/internal/task"
	"github.com/twiced-technology-gmbh/todo/internal/tasklist"
)

var priCmd = &cobra.Command{
	Use:   "pri N P",
	Short: "Set or clear a task's priority",
	Long:  `Sets the priority of task N to the letter P. Use "-" or "none" to clear it.`,
	Args:  cobra.ExactArgs(2), //nolint:mnd // position and priority
	RunE:  runPri,
}

func init() {
	rootCmd.AddCommand(priCmd)
}

func runPri(_ *cobra.Command, args []string) error {
	pos, err := strconv.Atoi(args[0])
	if err != nil {
		return task.ValidateTaskNumber(args[0])
	}

	priority := args[1]
	clear := priority == "-" || priority == "none"
	if !clear {
		if err := task.ValidatePriority(priority); err != nil {
			return err
		}
	}

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
		return clierr.New(clierr.IndexOutOfRange, "no tasks found")
	}

	t, err := list.At(pos)
	if err != nil {
		return err
	}

	original := t.String()
	if clear {
		t.ClearPriority()
	} else if err := t.SetPriority(priority); err != nil {
		return err
	}
	updated := t.String()

	if err := saveList(cfg, st, list); err != nil {
		return err
	}
	logHistory(cfg, "pri", pos, updated)

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, output.TaskRows([]tasklist.Entry{{Pos: pos, Task: t}})[0])
	}
	output.Messagef(os.Stdout, "Updated: %s → %s", original, updated)
	return nil
}
