package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/todo/internal/clierr"
	"github.com/twiced-technology-gmbh/todo/internal/config"
	"github.com/twiced-technology-gmbh/todo/internal/output"
	"github.com/twiced-technology-gmbh/todo/internal/store"
	"github.com/twiced-technology-gmbh/todo/internal/tasklist"
)

var doneCmd = &cobra.Command{
	Use:     "done N[,N,...]",
	Aliases: []string{"do"},
	Short:   "Mark tasks as done",
	Long: `Marks tasks completed with today as the completion date. When
archive_on_done is set the completed tasks move straight to the done file.
Multiple positions can be provided as a comma-separated list.`,
	Args: cobra.ExactArgs(1),
	RunE: runDone,
}

func init() {
	rootCmd.AddCommand(doneCmd)
}

func runDone(_ *cobra.Command, args []string) error {
	positions, err := tasklist.ParsePositions(args[0])
	if err != nil {
		return err
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

	today := clock.Today()

	if len(positions) == 1 {
		pos := positions[0]
		t, err := list.At(pos)
		if err != nil {
			return err
		}
		t.Complete(today)
		line := t.String()
		if err := persistDone(cfg, st, list, positions[:1], []string{line}); err != nil {
			return err
		}
		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, output.TaskRows([]tasklist.Entry{{Pos: pos, Task: t}})[0])
		}
		output.Messagef(os.Stdout, "Completed: %s", line)
		return nil
	}

	// Batch: mutate in memory first so every position resolves against the
	// order the user saw, then persist once.
	var (
		donePos   []int
		doneLines []string
	)
	batchErr := runBatch(positions, func(pos int) error {
		t, err := list.At(pos)
		if err != nil {
			return err
		}
		t.Complete(today)
		donePos = append(donePos, pos)
		doneLines = append(doneLines, t.String())
		return nil
	})
	if len(donePos) > 0 {
		if err := persistDone(cfg, st, list, donePos, doneLines); err != nil {
			return err
		}
	}
	return batchErr
}

// persistDone saves after completions, logs them, and applies
// archive_on_done.
func persistDone(cfg *config.Config, st *store.Store, list tasklist.List, positions []int, lines []string) error {
	if err := saveList(cfg, st, list); err != nil {
		return err
	}
	for i, pos := range positions {
		logHistory(cfg, "done", pos, lines[i])
	}
	if !cfg.ArchiveOnDone {
		return nil
	}
	_, _, err := archiveTasks(cfg, st, list)
	return err
}
