package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/todo/internal/output"
	"github.com/twiced-technology-gmbh/todo/internal/tasklist"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List all projects",
	Long:  `Lists every +Project tag in use, sorted alphabetically.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runTagListing("Projects", "No projects found.", tasklist.List.Projects)
	},
}

func init() {
	rootCmd.AddCommand(projectsCmd)
}

func runTagListing(header, emptyMsg string, tags func(tasklist.List) []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st := openStore(cfg)
	list, err := loadList(cfg, st)
	if err != nil {
		return err
	}
	names := tags(list)

	if outputFormat() == output.FormatJSON {
		if names == nil {
			names = []string{}
		}
		return output.JSON(os.Stdout, names)
	}

	if len(names) == 0 {
		output.Messagef(os.Stdout, "%s", emptyMsg)
		return nil
	}
	output.Messagef(os.Stdout, "%s:", header)
	for _, name := range names {
		output.Messagef(os.Stdout, "  %s", name)
	}
	return nil
}
