package cmd

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/todo/internal/clierr"
	"github.com/twiced-technology-gmbh/todo/internal/config"
	"github.com/twiced-technology-gmbh/todo/internal/gitsvc"
	"github.com/twiced-technology-gmbh/todo/internal/output"
)

var gitCmd = &cobra.Command{
	Use:   "git",
	Short: "Version the todo directory with git",
	Long: `Manages the git repository backing the todo directory. With auto_commit
and auto_sync enabled, every mutation is committed and shared automatically;
these commands cover setup and manual syncing.`,
}

var gitInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a git repository in the todo directory",
	RunE:  runGitInit,
}

var gitRemoteCmd = &cobra.Command{
	Use:   "remote NAME URL",
	Short: "Add or update a remote",
	Args:  cobra.ExactArgs(2), //nolint:mnd // name and url
	RunE:  runGitRemote,
}

var gitSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Commit local changes and sync with the remote",
	RunE:  runGitSync,
}

func init() {
	gitSyncCmd.Flags().StringP("message", "m", "Manual sync of todo files", "commit message")
	gitCmd.AddCommand(gitInitCmd)
	gitCmd.AddCommand(gitRemoteCmd)
	gitCmd.AddCommand(gitSyncCmd)
	rootCmd.AddCommand(gitCmd)
}

// gitignoreBody keeps the CLI's bookkeeping files out of version control.
const gitignoreBody = "history.jsonl\n.sync.lock\n"

func runGitInit(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	svc, created, err := gitsvc.Init(cfg.Dir())
	if err != nil {
		return err
	}

	if created {
		writeGitignore(cfg.Dir())
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{
			"status":  "initialized",
			"dir":     svc.Dir(),
			"created": created,
		})
	}
	if created {
		output.Messagef(os.Stdout, "Initialized git repository at %s", svc.Dir())
	} else {
		output.Messagef(os.Stdout, "Git repository already exists at %s", svc.Dir())
	}
	return nil
}

// writeGitignore seeds a .gitignore so history and lock files stay
// untracked. Best-effort; an existing file is left alone.
func writeGitignore(dir string) {
	path := filepath.Join(dir, ".gitignore")
	if _, err := os.Stat(path); err == nil {
		return
	}
	if err := os.WriteFile(path, []byte(gitignoreBody), 0o600); err != nil {
		logger.Warn("writing .gitignore failed", "err", err)
	}
}

func runGitRemote(_ *cobra.Command, args []string) error {
	name, url := args[0], args[1]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	svc, err := openRepo(cfg)
	if err != nil {
		return err
	}

	replaced, err := svc.AddRemote(name, url)
	if err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{
			"status":   "remote-set",
			"name":     name,
			"url":      url,
			"replaced": replaced,
		})
	}
	if replaced {
		output.Messagef(os.Stdout, "Updated remote '%s' to %s", name, url)
	} else {
		output.Messagef(os.Stdout, "Added remote '%s' at %s", name, url)
	}
	return nil
}

func runGitSync(cmd *cobra.Command, _ []string) error {
	msg, _ := cmd.Flags().GetString("message")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	svc, err := openRepo(cfg)
	if err != nil {
		return err
	}

	st := openStore(cfg)
	committed, err := svc.Sync([]string{st.TodoPath, st.DonePath}, msg)
	if err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{
			"status":    "synced",
			"committed": committed,
			"remote":    svc.HasRemote(gitsvc.DefaultRemote),
		})
	}
	if !committed {
		output.Messagef(os.Stdout, "No changes to sync.")
		return nil
	}
	if !svc.HasRemote(gitsvc.DefaultRemote) {
		output.Messagef(os.Stdout, "Committed changes (no remote configured).")
		return nil
	}
	output.Messagef(os.Stdout, "Successfully synced changes with remote repository.")
	return nil
}

// openRepo opens the repository backing the todo directory, pointing the
// user at git init when there is none.
func openRepo(cfg *config.Config) (*gitsvc.Service, error) {
	svc, err := gitsvc.Open(cfg.Dir())
	if err != nil {
		var cliErr *clierr.Error
		if errors.As(err, &cliErr) && cliErr.Code == clierr.NotARepository {
			return nil, clierr.Newf(clierr.NotARepository,
				"not a git repository: %s (run 'todo git init' first)", cfg.Dir())
		}
		return nil, err
	}
	return svc, nil
}
