package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/todo/internal/output"
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Move completed tasks to the done file",
	Long: `Appends every completed task to the done file and removes it from the
todo file. Both files are written atomically.`,
	RunE: runArchive,
}

func init() {
	rootCmd.AddCommand(archiveCmd)
}

func runArchive(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st := openStore(cfg)
	list, err := loadList(cfg, st)
	if err != nil {
		return err
	}

	_, moved, err := archiveTasks(cfg, st, list)
	if err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]interface{}{
			"status": "archived",
			"moved":  moved,
		})
	}
	if moved == 0 {
		output.Messagef(os.Stdout, "No completed tasks to archive.")
		return nil
	}
	output.Messagef(os.Stdout, "Archived %d completed task(s).", moved)
	return nil
}
