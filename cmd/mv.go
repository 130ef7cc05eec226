package cmd

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/todo/internal/output"
	"github.com/twiced-technology-gmbh/todo/internal/task"
)

var mvCmd = &cobra.Command{
	Use:   "mv FROM TO",
	Short: "Move a task to another position",
	Long: `Moves the task at position FROM to position TO, shifting the tasks in
between. With auto_sort enabled the priority order wins again on the next
write.`,
	Args: cobra.ExactArgs(2), //nolint:mnd // from and to
	RunE: runMv,
}

func init() {
	rootCmd.AddCommand(mvCmd)
}

func runMv(_ *cobra.Command, args []string) error {
	from, err := strconv.Atoi(args[0])
	if err != nil {
		return task.ValidateTaskNumber(args[0])
	}
	to, err := strconv.Atoi(args[1])
	if err != nil {
		return task.ValidateTaskNumber(args[1])
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

	if err := list.MoveTo(from, to); err != nil {
		return err
	}
	t, err := list.At(to)
	if err != nil {
		return err
	}
	line := t.String()

	// Save directly: running the auto_sort pipeline here would undo the move.
	if err := st.Save(list); err != nil {
		return err
	}
	autoCommit(cfg, []string{st.TodoPath}, "Update "+filepath.Base(st.TodoPath))
	logHistory(cfg, "mv", to, line)

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]interface{}{
			"status": "moved",
			"from":   from,
			"to":     to,
			"raw":    line,
		})
	}
	output.Messagef(os.Stdout, "Moved task %d to position %d.", from, to)
	return nil
}
