package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/todo/internal/clierr"
	"github.com/twiced-technology-gmbh/todo/internal/output"
	"github.com/twiced-technology-gmbh/todo/internal/task"
	"github.com/twiced-technology-gmbh/todo/internal/tasklist"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Bulk operations on a project",
	Long:  `Renames, removes, or re-prioritizes every task carrying a project tag.`,
}

var projectMvCmd = &cobra.Command{
	Use:   "mv OLD NEW",
	Short: "Rename a project across all tasks",
	Args:  cobra.ExactArgs(2), //nolint:mnd // old and new name
	RunE:  runProjectMv,
}

var projectRmCmd = &cobra.Command{
	Use:   "rm NAME",
	Short: "Remove every task in a project",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectRm,
}

var projectPriCmd = &cobra.Command{
	Use:   "pri NAME P",
	Short: "Set the priority for every task in a project",
	Long:  `Sets the priority of every task carrying the project. Use "-" to clear.`,
	Args:  cobra.ExactArgs(2), //nolint:mnd // name and priority
	RunE:  runProjectPri,
}

func init() {
	projectRmCmd.Flags().BoolP("yes", "y", false, "skip confirmation prompt")
	projectCmd.AddCommand(projectMvCmd)
	projectCmd.AddCommand(projectRmCmd)
	projectCmd.AddCommand(projectPriCmd)
	rootCmd.AddCommand(projectCmd)
}

func runProjectMv(_ *cobra.Command, args []string) error {
	oldName := strings.TrimPrefix(args[0], "+")
	newName := strings.TrimPrefix(args[1], "+")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st := openStore(cfg)
	list, err := loadList(cfg, st)
	if err != nil {
		return err
	}

	count := list.RenameProject(oldName, newName)
	if count == 0 {
		return projectNotFound(oldName)
	}

	if err := saveList(cfg, st, list); err != nil {
		return err
	}
	logHistory(cfg, "project mv", 0, "+"+oldName+" -> +"+newName)

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]interface{}{
			"status":  "renamed",
			"project": newName,
			"count":   count,
		})
	}
	output.Messagef(os.Stdout, "Renamed project +%s to +%s in %d task(s)", oldName, newName, count)
	return nil
}

func runProjectRm(cmd *cobra.Command, args []string) error {
	name := strings.TrimPrefix(args[0], "+")
	yes, _ := cmd.Flags().GetBool("yes")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st := openStore(cfg)
	list, err := loadList(cfg, st)
	if err != nil {
		return err
	}

	matching := list.Match(tasklist.Query{Projects: []string{name}})
	if len(matching) == 0 {
		return projectNotFound(name)
	}

	if !yes {
		ok, err := confirm(fmt.Sprintf("Remove %d task(s) with project +%s?", len(matching), name))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(os.Stderr, "Canceled.")
			return nil
		}
	}

	count := list.RemoveByProject(name)
	if err := saveList(cfg, st, list); err != nil {
		return err
	}
	logHistory(cfg, "project rm", 0, fmt.Sprintf("+%s (%d task(s))", name, count))

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]interface{}{
			"status":  "removed",
			"project": name,
			"count":   count,
		})
	}
	output.Messagef(os.Stdout, "Removed %d task(s) with project +%s", count, name)
	return nil
}

func runProjectPri(_ *cobra.Command, args []string) error {
	name := strings.TrimPrefix(args[0], "+")
	priority := args[1]
	clear := priority == "-" || priority == "none"
	if clear {
		priority = ""
	} else if err := task.ValidatePriority(priority); err != nil {
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

	count, err := list.SetProjectPriority(name, priority)
	if err != nil {
		return err
	}
	if count == 0 {
		return projectNotFound(name)
	}

	if err := saveList(cfg, st, list); err != nil {
		return err
	}
	logHistory(cfg, "project pri", 0, fmt.Sprintf("+%s (%s)", name, args[1]))

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]interface{}{
			"status":  "prioritized",
			"project": name,
			"count":   count,
		})
	}
	if clear {
		output.Messagef(os.Stdout, "Removed priority from %d task(s) in project +%s", count, name)
		return nil
	}
	output.Messagef(os.Stdout, "Set priority (%s) for %d task(s) in project +%s", priority, count, name)
	return nil
}

func projectNotFound(name string) error {
	return clierr.Newf(clierr.ProjectNotFound, "no tasks found with project +%s", name).
		WithDetails(map[string]any{"project": name})
}
