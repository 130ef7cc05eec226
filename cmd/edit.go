package cmd

import (
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/twiced-technology-gmbh/todo/internal/clierr"
	"github.com/twiced-technology-gmbh/todo/internal/date"
	"github.com/twiced-technology-gmbh/todo/internal/output"
	"github.com/twiced-technology-gmbh/todo/internal/task"
	"github.com/twiced-technology-gmbh/todo/internal/tasklist"
)

var editCmd = &cobra.Command{
	Use:   "edit N",
	Short: "Edit task fields",
	Long: `Edits individual fields of a task. Only the fields named by flags
change; everything else keeps its current value.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().String("text", "", "replace the description")
	editCmd.Flags().String("priority", "", `set priority letter, or "-" to clear`)
	editCmd.Flags().StringSlice("add-project", nil, "add a +Project tag (repeatable)")
	editCmd.Flags().StringSlice("remove-project", nil, "remove a +Project tag (repeatable)")
	editCmd.Flags().StringSlice("add-context", nil, "add an @Context tag (repeatable)")
	editCmd.Flags().StringSlice("remove-context", nil, "remove an @Context tag (repeatable)")
	editCmd.Flags().StringSlice("meta", nil, "set key:value metadata (repeatable)")
	editCmd.Flags().StringSlice("remove-meta", nil, "remove metadata by key (repeatable)")
	editCmd.Flags().String("created", "", "set the creation date (YYYY-MM-DD)")
	editCmd.Flags().SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		if name == "description" {
			name = "text"
		}
		return pflag.NormalizedName(name)
	})
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
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

	t, err := list.At(pos)
	if err != nil {
		return err
	}

	original := t.String()
	changed, err := applyEditFlags(cmd, t)
	if err != nil {
		return err
	}
	if !changed {
		return clierr.New(clierr.NoChanges, "no changes specified")
	}
	updated := t.String()

	if err := saveList(cfg, st, list); err != nil {
		return err
	}
	logHistory(cfg, "edit", pos, updated)

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, output.TaskRows([]tasklist.Entry{{Pos: pos, Task: t}})[0])
	}
	output.Messagef(os.Stdout, "Updated: %s → %s", original, updated)
	return nil
}

func applyEditFlags(cmd *cobra.Command, t *task.Task) (bool, error) {
	changed := false

	if cmd.Flags().Changed("text") {
		v, _ := cmd.Flags().GetString("text")
		if strings.TrimSpace(v) == "" {
			return false, clierr.New(clierr.InvalidInput, "description must not be empty")
		}
		t.SetDescription(v)
		changed = true
	}
	if cmd.Flags().Changed("priority") {
		v, _ := cmd.Flags().GetString("priority")
		if v == "-" || v == "none" {
			t.ClearPriority()
		} else if err := t.SetPriority(v); err != nil {
			return false, err
		}
		changed = true
	}
	if v, _ := cmd.Flags().GetStringSlice("add-project"); len(v) > 0 {
		for _, name := range v {
			t.AddProject(strings.TrimPrefix(name, "+"))
		}
		changed = true
	}
	if v, _ := cmd.Flags().GetStringSlice("remove-project"); len(v) > 0 {
		for _, name := range v {
			t.RemoveProject(strings.TrimPrefix(name, "+"))
		}
		changed = true
	}
	if v, _ := cmd.Flags().GetStringSlice("add-context"); len(v) > 0 {
		for _, name := range v {
			t.AddContext(strings.TrimPrefix(name, "@"))
		}
		changed = true
	}
	if v, _ := cmd.Flags().GetStringSlice("remove-context"); len(v) > 0 {
		for _, name := range v {
			t.RemoveContext(strings.TrimPrefix(name, "@"))
		}
		changed = true
	}
	if v, _ := cmd.Flags().GetStringSlice("meta"); len(v) > 0 {
		for _, pair := range v {
			key, value, ok := strings.Cut(pair, ":")
			if !ok || key == "" {
				return false, clierr.Newf(clierr.InvalidInput, "invalid metadata %q (expected key:value)", pair)
			}
			t.SetMeta(key, value)
		}
		changed = true
	}
	if v, _ := cmd.Flags().GetStringSlice("remove-meta"); len(v) > 0 {
		for _, key := range v {
			t.RemoveMeta(key)
		}
		changed = true
	}
	if cmd.Flags().Changed("created") {
		v, _ := cmd.Flags().GetString("created")
		d, err := date.Parse(v)
		if err != nil {
			return false, task.ValidateDate("created", v)
		}
		t.SetCreationDate(d)
		changed = true
	}

	return changed, nil
}
