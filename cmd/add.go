package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/todo/internal/output"
	"github.com/twiced-technology-gmbh/todo/internal/task"
	"github.com/twiced-technology-gmbh/todo/internal/tasklist"
)

var addCmd = &cobra.Command{
	Use:     "add TEXT...",
	Aliases: []string{"a"},
	Short:   "Add a new task",
	Long: `Adds a task stamped with today as the creation date. Embedded
+Project, @Context, and key:value tokens are recognized the next time the
file is read.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringP("priority", "p", "", "priority letter A-Z (default from config)")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	priority, _ := cmd.Flags().GetString("priority")
	if priority == "" {
		priority = cfg.DefaultPriority
	}
	if priority != "" {
		if err := task.ValidatePriority(priority); err != nil {
			return err
		}
	}

	st := openStore(cfg)
	list, err := loadList(cfg, st)
	if err != nil {
		return err
	}

	t := task.New(strings.Join(args, " "), priority, clock.Today())
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
	logHistory(cfg, "add", pos, t.String())

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, output.TaskRows([]tasklist.Entry{{Pos: pos, Task: t}})[0])
	}
	output.Messagef(os.Stdout, "Added: %s", t.String())
	return nil
}
