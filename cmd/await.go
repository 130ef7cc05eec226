package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/todo/internal/date"
	"github.com/twiced-technology-gmbh/todo/internal/output"
	"github.com/twiced-technology-gmbh/todo/internal/task"
	"github.com/twiced-technology-gmbh/todo/internal/tasklist"
)

var awaitCmd = &cobra.Command{
	Use:   "await DESCRIPTION DUE",
	Short: "Add a waiting-for task",
	Long: `Adds a task tagged @waiting with a due: date, for tracking things you
are waiting on from someone else. DUE must be YYYY-MM-DD.`,
	Args: cobra.ExactArgs(2), //nolint:mnd // description and due date
	RunE: runAwait,
}

func init() {
	awaitCmd.Flags().StringP("priority", "p", "", "priority letter A-Z")
	rootCmd.AddCommand(awaitCmd)
}

func runAwait(cmd *cobra.Command, args []string) error {
	due, err := date.Parse(args[1])
	if err != nil {
		return task.ValidateDate("due", args[1])
	}

	priority, _ := cmd.Flags().GetString("priority")
	if priority != "" {
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

	t := task.New(args[0], priority, clock.Today())
	t.AddContext("waiting")
	t.SetMeta("due", due.String())
	list = append(list, t)

	if err := saveList(cfg, st, list); err != nil {
		return err
	}

	// auto_sort may have moved the new task; report where it landed.
	pos := len(list)
	for i, x := range list {
		if x == t {
			pos = i + 1
			break
		}
	}
	logHistory(cfg, "await", pos, t.String())

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, output.TaskRows([]tasklist.Entry{{Pos: pos, Task: t}})[0])
	}
	output.Messagef(os.Stdout, "Added waiting-for task: %s", t.String())
	return nil
}
