package cmd

import (
	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/todo/internal/tasklist"
)

var contextsCmd = &cobra.Command{
	Use:   "contexts",
	Short: "List all contexts",
	Long:  `Lists every @Context tag in use, sorted alphabetically.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runTagListing("Contexts", "No contexts found.", tasklist.List.Contexts)
	},
}

func init() {
	rootCmd.AddCommand(contextsCmd)
}
