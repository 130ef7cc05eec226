// Package cmd implements the todo CLI commands.
package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/twiced-technology-gmbh/todo/internal/clierr"
	"github.com/twiced-technology-gmbh/todo/internal/config"
	"github.com/twiced-technology-gmbh/todo/internal/date"
	"github.com/twiced-technology-gmbh/todo/internal/gitsvc"
	"github.com/twiced-technology-gmbh/todo/internal/history"
	"github.com/twiced-technology-gmbh/todo/internal/output"
	"github.com/twiced-technology-gmbh/todo/internal/store"
	"github.com/twiced-technology-gmbh/todo/internal/tasklist"
)

// version is set at build time via ldflags.
var version = "dev"

// Global flags.
var (
	flagJSON     bool
	flagTable    bool
	flagCompact  bool
	flagDir      string
	flagFile     string
	flagDoneFile string
	flagNoColor  bool
	flagVerbose  bool
)

// clock supplies "today" for every command.
var clock date.Clock = date.SystemClock{}

var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "todo",
	Level:  log.WarnLevel,
})

var rootCmd = &cobra.Command{
	Use:   "todo",
	Short: "Manage tasks in the todo.txt format",
	Long: `todo keeps your tasks in plain todo.txt files and optionally versions
them with git. Run todo with no arguments to open the interactive list.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runTUI,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagNoColor || termenv.EnvNoColor() {
			output.DisableColor()
		}
		if flagVerbose {
			logger.SetLevel(log.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagTable, "table", false, "output as table")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "compact", false, "compact raw-line output")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "oneline", false, "alias for --compact")
	rootCmd.PersistentFlags().StringVar(&flagDir, "dir", "", "path to todo directory")
	rootCmd.PersistentFlags().StringVar(&flagFile, "file", "", "todo file (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagDoneFile, "done-file", "", "done file (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable color output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command.
func Execute() {
	_, err := rootCmd.ExecuteC()
	if err == nil {
		return
	}

	// Handle SilentError — exit with code, no output.
	var silent *clierr.SilentError
	if errors.As(err, &silent) {
		os.Exit(silent.Code)
	}

	// Determine if JSON mode is active.
	jsonMode := flagJSON
	if !jsonMode {
		jsonMode = os.Getenv("TODO_OUTPUT") == "json"
	}

	if jsonMode {
		var cliErr *clierr.Error
		if errors.As(err, &cliErr) {
			output.JSONError(os.Stdout, cliErr.Code, cliErr.Message, cliErr.Details)
			os.Exit(cliErr.ExitCode())
		}
		// Unknown error — wrap as INTERNAL_ERROR.
		output.JSONError(os.Stdout, clierr.InternalError, err.Error(), nil)
		os.Exit(2) //nolint:mnd // exit code 2 for internal errors
	}

	// Non-JSON mode: print to stderr.
	fmt.Fprintln(os.Stderr, err)
	var cliErr *clierr.Error
	if errors.As(err, &cliErr) {
		os.Exit(cliErr.ExitCode())
	}
	os.Exit(1)
}

// loadConfig resolves the todo directory, creates it if needed, and loads
// (or defaults) its configuration.
func loadConfig() (*config.Config, error) {
	dir, err := config.ResolveDir(flagDir)
	if err != nil {
		return nil, err
	}
	if err := config.EnsureDir(dir); err != nil {
		return nil, err
	}
	return config.Load(dir)
}

// openStore returns the Store over the resolved data files. The --file and
// --done-file flags override both config values and environment variables.
func openStore(cfg *config.Config) *store.Store {
	todoPath := cfg.TodoPath()
	if flagFile != "" {
		todoPath = absOrJoin(cfg.Dir(), flagFile)
	}
	donePath := cfg.DonePath()
	if flagDoneFile != "" {
		donePath = absOrJoin(cfg.Dir(), flagDoneFile)
	}
	return store.New(todoPath, donePath)
}

func absOrJoin(dir, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dir, name)
}

// loadList reads the active file, pulling from origin first when auto_sync
// is on and the todo directory is a repository with a remote.
func loadList(cfg *config.Config, st *store.Store) (tasklist.List, error) {
	pullBeforeRead(cfg)
	return st.Load()
}

func pullBeforeRead(cfg *config.Config) {
	if !cfg.AutoSync || !gitsvc.IsRepo(cfg.Dir()) {
		return
	}
	svc, err := gitsvc.Open(cfg.Dir())
	if err != nil || !svc.HasRemote(gitsvc.DefaultRemote) {
		return
	}
	if err := svc.Pull(gitsvc.DefaultRemote); err != nil {
		logger.Warn("pull before read failed", "err", err)
		return
	}
	logger.Debug("pulled latest changes", "remote", gitsvc.DefaultRemote)
}

// saveList persists the active list: priority sort when auto_sort is on,
// atomic write, then auto-commit and push per config. Git failures are
// logged, never fatal — the file write is the operation; versioning is
// best-effort.
func saveList(cfg *config.Config, st *store.Store, l tasklist.List) error {
	if cfg.AutoSort {
		l.SortByPriority()
	}
	if err := st.Save(l); err != nil {
		return err
	}
	autoCommit(cfg, []string{st.TodoPath}, "Update "+filepath.Base(st.TodoPath))
	return nil
}

// logHistory appends an entry to the activity log. Errors are silently
// discarded because logging should never fail a command.
func logHistory(cfg *config.Config, action string, pos int, line string) {
	history.Record(cfg.Dir(), action, pos, line)
}

// archiveTasks moves completed tasks to the done file and commits both
// files when versioning is on. Returns the remaining active list.
func archiveTasks(cfg *config.Config, st *store.Store, list tasklist.List) (tasklist.List, int, error) {
	remaining, moved, err := st.Archive(list)
	if err != nil || moved == 0 {
		return remaining, moved, err
	}
	logHistory(cfg, "archive", 0, fmt.Sprintf("%d task(s)", moved))
	autoCommit(cfg, []string{st.TodoPath, st.DonePath}, "Archive completed tasks")
	return remaining, moved, nil
}

func autoCommit(cfg *config.Config, paths []string, msg string) {
	if !cfg.AutoCommit || !gitsvc.IsRepo(cfg.Dir()) {
		return
	}
	svc, err := gitsvc.Open(cfg.Dir())
	if err != nil {
		logger.Warn("auto-commit skipped", "err", err)
		return
	}
	committed, err := svc.CommitPaths(paths, msg)
	if err != nil {
		logger.Warn("auto-commit failed", "err", err)
		return
	}
	if !committed {
		return
	}
	logger.Debug("committed", "msg", msg)
	if cfg.AutoSync && svc.HasRemote(gitsvc.DefaultRemote) {
		if err := svc.Push(gitsvc.DefaultRemote); err != nil {
			logger.Warn("push failed", "err", err)
			return
		}
		logger.Debug("pushed", "remote", gitsvc.DefaultRemote)
	}
}

// outputFormat returns the detected output format from flags/env.
func outputFormat() output.Format {
	return output.Detect(flagJSON, flagTable, flagCompact)
}

// confirm prompts on stderr and reads a y/N answer from stdin. Returns an
// error when stdin is not a terminal, so scripts must pass --yes.
func confirm(prompt string) (bool, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, clierr.New(clierr.ConfirmationReq,
			"cannot prompt for confirmation (not a terminal); use --yes")
	}
	fmt.Fprintf(os.Stderr, "%s [y/N] ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, _ := reader.ReadString('\n')
	answer = strings.TrimSpace(strings.ToLower(answer))
	return answer == "y" || answer == "yes", nil
}

// runBatch executes fn for each position and collects results. Returns a
// SilentError with exit code 1 if any operation failed (after outputting
// results).
func runBatch(positions []int, fn func(int) error) error {
	results := make([]output.BatchResult, 0, len(positions))
	anyFailed := false

	for _, pos := range positions {
		err := fn(pos)
		if err != nil {
			anyFailed = true
			var cliErr *clierr.Error
			if errors.As(err, &cliErr) {
				results = append(results, output.BatchResult{Pos: pos, OK: false, Error: cliErr.Message, Code: cliErr.Code})
			} else {
				results = append(results, output.BatchResult{Pos: pos, OK: false, Error: err.Error()})
			}
		} else {
			results = append(results, output.BatchResult{Pos: pos, OK: true})
		}
	}

	if outputFormat() == output.FormatJSON {
		if err := output.JSON(os.Stdout, results); err != nil {
			return err
		}
	} else {
		var succeeded int
		for _, r := range results {
			if r.OK {
				succeeded++
			} else {
				fmt.Fprintf(os.Stderr, "Error: task #%d: %s\n", r.Pos, r.Error)
			}
		}
		output.Messagef(os.Stdout, "Completed %d/%d operations", succeeded, len(positions))
	}

	if anyFailed {
		return &clierr.SilentError{Code: 1}
	}
	return nil
}
