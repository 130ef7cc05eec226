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

var showCmd = &cobra.Command{
	Use:   "show N",
	Short: "Show task details",
	Long:  `Displays full details of a single task including its raw todo.txt line.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(_ *cobra.Command, args []string) error {
	pos, err := strconv.Atoi(args[0])
	if err != nil {
		return task.ValidateTaskNumber(args[0])
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
	entry := tasklist.Entry{Pos: pos, Task: t}

	format := outputFormat()
	if format == output.FormatJSON {
		return output.JSON(os.Stdout, output.TaskRows([]tasklist.Entry{entry})[0])
	}
	if format == output.FormatCompact {
		output.TaskCompact(os.Stdout, []tasklist.Entry{entry})
		return nil
	}

	output.TaskDetail(os.Stdout, entry, clock.Today())
	return nil
}
