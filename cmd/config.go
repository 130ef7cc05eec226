package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/todo/internal/clierr"
	"github.com/twiced-technology-gmbh/todo/internal/config"
	"github.com/twiced-technology-gmbh/todo/internal/output"
	"github.com/twiced-technology-gmbh/todo/internal/task"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify configuration",
	Long:  `View the full configuration, get a specific key, set a writable value, or reset to defaults.`,
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2), //nolint:mnd // key and value
	RunE:  runConfigSet,
}

var configResetCmd = &cobra.Command{
	Use:   "reset [KEY]",
	Short: "Reset configuration to defaults",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigReset,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configResetCmd)
	rootCmd.AddCommand(configCmd)
}

// configAccessor describes how to get and set a config key.
type configAccessor struct {
	get      func(*config.Config) any
	set      func(*config.Config, string) error
	writable bool
}

func configAccessors() map[string]configAccessor {
	return map[string]configAccessor{
		"version": {
			get: func(c *config.Config) any { return c.Version },
		},
		"todo_file": {
			get: func(c *config.Config) any { return c.TodoFile },
			set: func(c *config.Config, v string) error {
				if v == "" {
					return clierr.New(clierr.InvalidInput, "todo_file must not be empty")
				}
				c.TodoFile = v
				return nil
			},
			writable: true,
		},
		"done_file": {
			get: func(c *config.Config) any { return c.DoneFile },
			set: func(c *config.Config, v string) error {
				if v == "" {
					return clierr.New(clierr.InvalidInput, "done_file must not be empty")
				}
				c.DoneFile = v
				return nil
			},
			writable: true,
		},
		"default_priority": {
			get: func(c *config.Config) any { return c.DefaultPriority },
			set: func(c *config.Config, v string) error {
				if v == "-" || v == "none" {
					v = ""
				}
				if v != "" {
					if err := task.ValidatePriority(v); err != nil {
						return err
					}
				}
				c.DefaultPriority = v
				return nil
			},
			writable: true,
		},
		"auto_sort": {
			get: func(c *config.Config) any { return c.AutoSort },
			set: func(c *config.Config, v string) error {
				b, err := parseConfigBool("auto_sort", v)
				if err != nil {
					return err
				}
				c.AutoSort = b
				return nil
			},
			writable: true,
		},
		"archive_on_done": {
			get: func(c *config.Config) any { return c.ArchiveOnDone },
			set: func(c *config.Config, v string) error {
				b, err := parseConfigBool("archive_on_done", v)
				if err != nil {
					return err
				}
				c.ArchiveOnDone = b
				return nil
			},
			writable: true,
		},
		"auto_commit": {
			get: func(c *config.Config) any { return c.AutoCommit },
			set: func(c *config.Config, v string) error {
				b, err := parseConfigBool("auto_commit", v)
				if err != nil {
					return err
				}
				c.AutoCommit = b
				return nil
			},
			writable: true,
		},
		"auto_sync": {
			get: func(c *config.Config) any { return c.AutoSync },
			set: func(c *config.Config, v string) error {
				b, err := parseConfigBool("auto_sync", v)
				if err != nil {
					return err
				}
				c.AutoSync = b
				return nil
			},
			writable: true,
		},
	}
}

// allConfigKeys returns config keys in display order.
func allConfigKeys() []string {
	return []string{
		"version",
		"todo_file",
		"done_file",
		"default_priority",
		"auto_sort",
		"archive_on_done",
		"auto_commit",
		"auto_sync",
	}
}

// parseConfigBool coerces true/false, yes/no, and 1/0 into a bool.
func parseConfigBool(key, v string) (bool, error) {
	switch strings.ToLower(v) {
	case "true", "yes", "1":
		return true, nil
	case "false", "no", "0":
		return false, nil
	}
	return false, clierr.Newf(clierr.InvalidInput, "invalid %s %q: expected true or false", key, v)
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return outputConfig(cfg)
}

func outputConfig(cfg *config.Config) error {
	accessors := configAccessors()

	if outputFormat() == output.FormatJSON {
		m := make(map[string]any, len(accessors))
		for _, key := range allConfigKeys() {
			m[key] = accessors[key].get(cfg)
		}
		return output.JSON(os.Stdout, m)
	}

	for _, key := range allConfigKeys() {
		val := accessors[key].get(cfg)
		fmt.Fprintf(os.Stdout, "%-18s %v\n", key, formatConfigValue(val))
	}
	return nil
}

func runConfigGet(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	key := args[0]
	acc, ok := configAccessors()[key]
	if !ok {
		return clierr.Newf(clierr.InvalidInput, "unknown config key %q", key)
	}

	val := acc.get(cfg)

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, val)
	}

	fmt.Fprintln(os.Stdout, formatConfigValue(val))
	return nil
}

func runConfigSet(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	key, value := args[0], args[1]
	acc, ok := configAccessors()[key]
	if !ok {
		return clierr.Newf(clierr.InvalidInput, "unknown config key %q", key)
	}
	if !acc.writable {
		return clierr.Newf(clierr.InvalidInput, "config key %q is read-only", key)
	}

	if err := acc.set(cfg, value); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{"key": key, "value": acc.get(cfg)})
	}

	output.Messagef(os.Stdout, "Set %s = %v", key, formatConfigValue(acc.get(cfg)))
	return nil
}

func runConfigReset(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	def := config.NewDefault()
	def.SetDir(cfg.Dir())

	if len(args) == 1 {
		key := args[0]
		acc, ok := configAccessors()[key]
		if !ok {
			return clierr.Newf(clierr.InvalidInput, "unknown config key %q", key)
		}
		if !acc.writable {
			return clierr.Newf(clierr.InvalidInput, "config key %q is read-only", key)
		}
		if err := acc.set(cfg, fmt.Sprintf("%v", acc.get(def))); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, map[string]any{"key": key, "value": acc.get(cfg)})
		}
		output.Messagef(os.Stdout, "Reset %s = %v", key, formatConfigValue(acc.get(cfg)))
		return nil
	}

	*cfg = *def
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	if outputFormat() == output.FormatJSON {
		return outputConfig(cfg)
	}
	output.Messagef(os.Stdout, "Reset configuration to defaults:")
	return outputConfig(cfg)
}

func formatConfigValue(val any) string {
	switch v := val.(type) {
	case string:
		if v == "" {
			return "--"
		}
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
