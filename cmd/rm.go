package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/todo/internal/clierr"
	"github.com/twiced-technology-gmbh/todo/internal/config"
	"github.com/twiced-technology-gmbh/todo/internal/output"
	"github.com/twiced-technology-gmbh/todo/internal/store"
	"github.com/twiced-technology-gmbh/todo/internal/tasklist"
)

var rmCmd = &cobra.Command{
	Use:   "rm N[,N,...]",
	Short: "Remove tasks",
	Long: `Removes tasks without archiving them. Prompts for confirmation in
interactive mode. Multiple positions can be provided as a comma-separated
list (requires --yes).`,
	Args: cobra.ExactArgs(1),
	RunE: runRm,
}

func init() {
	rmCmd.Flags().BoolP("yes", "y", false, "skip confirmation prompt")
	rootCmd.AddCommand(rmCmd)
}

func runRm(cmd *cobra.Command, args []string) error {
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

	yes, _ := cmd.Flags().GetBool("yes")

	// Batch mode requires --yes.
	if len(positions) > 1 && !yes {
		return clierr.New(clierr.ConfirmationReq, "batch removal requires --yes")
	}

	if len(positions) == 1 {
		return removeSingle(cfg, st, list, positions[0], yes)
	}

	// Remove highest position first so earlier removals do not shift the
	// remaining ones.
	sort.Sort(sort.Reverse(sort.IntSlice(positions)))

	var (
		rmPos   []int
		rmLines []string
	)
	batchErr := runBatch(positions, func(pos int) error {
		t, err := list.RemoveAt(pos)
		if err != nil {
			return err
		}
		rmPos = append(rmPos, pos)
		rmLines = append(rmLines, t.String())
		return nil
	})
	if len(rmPos) > 0 {
		if err := saveList(cfg, st, list); err != nil {
			return err
		}
		for i, pos := range rmPos {
			logHistory(cfg, "rm", pos, rmLines[i])
		}
	}
	return batchErr
}

func removeSingle(cfg *config.Config, st *store.Store, list tasklist.List, pos int, yes bool) error {
	t, err := list.At(pos)
	if err != nil {
		return err
	}

	if !yes {
		ok, err := confirm(fmt.Sprintf("Delete task #%d: %s?", pos, t.String()))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(os.Stderr, "Canceled.")
			return nil
		}
	}

	if _, err := list.RemoveAt(pos); err != nil {
		return err
	}
	line := t.String()
	if err := saveList(cfg, st, list); err != nil {
		return err
	}
	logHistory(cfg, "rm", pos, line)

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]interface{}{
			"status": "removed",
			"pos":    pos,
			"raw":    line,
		})
	}
	output.Messagef(os.Stdout, "Removed: %s", line)
	return nil
}
