package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

const (
	fileMode = 0o600
	dirMode  = 0o750
)

// ErrInvalid marks configs that fail validation.
var ErrInvalid = errors.New("invalid config")

// Config represents the todo directory configuration.
type Config struct {
	Version         int    `yaml:"version"`
	TodoFile        string `yaml:"todo_file"`
	DoneFile        string `yaml:"done_file"`
	DefaultPriority string `yaml:"default_priority"`
	AutoSort        bool   `yaml:"auto_sort"`
	ArchiveOnDone   bool   `yaml:"archive_on_done"`
	AutoCommit      bool   `yaml:"auto_commit"`
	AutoSync        bool   `yaml:"auto_sync"`

	// dir is the absolute path to the todo directory (not serialized).
	dir string `yaml:"-"`
}

// NewDefault creates a Config with default values.
func NewDefault() *Config {
	return &Config{
		Version:       CurrentVersion,
		TodoFile:      DefaultTodoFile,
		DoneFile:      DefaultDoneFile,
		AutoSort:      true,
		ArchiveOnDone: true,
		AutoCommit:    true,
		AutoSync:      true,
	}
}

// Dir returns the absolute path to the todo directory.
func (c *Config) Dir() string {
	return c.dir
}

// SetDir sets the todo directory path on the config.
func (c *Config) SetDir(dir string) {
	c.dir = dir
}

// ConfigPath returns the absolute path to the config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.dir, ConfigFileName)
}

// TodoPath returns the absolute path to the active file. $TODO_FILE
// overrides the configured name; relative names join the todo directory.
func (c *Config) TodoPath() string {
	return c.resolveFile(os.Getenv("TODO_FILE"), c.TodoFile)
}

// DonePath returns the absolute path to the done file. $DONE_FILE
// overrides the configured name; relative names join the todo directory.
func (c *Config) DonePath() string {
	return c.resolveFile(os.Getenv("DONE_FILE"), c.DoneFile)
}

func (c *Config) resolveFile(override, name string) string {
	if override != "" {
		name = override
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.dir, name)
}

// Validate checks the config for errors.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("%w: unsupported version %d (expected %d)", ErrInvalid, c.Version, CurrentVersion)
	}
	if c.TodoFile == "" {
		return fmt.Errorf("%w: todo_file is required", ErrInvalid)
	}
	if c.DoneFile == "" {
		return fmt.Errorf("%w: done_file is required", ErrInvalid)
	}
	if c.TodoFile == c.DoneFile {
		return fmt.Errorf("%w: todo_file and done_file must differ", ErrInvalid)
	}
	if c.DefaultPriority != "" && !validPriority(c.DefaultPriority) {
		return fmt.Errorf("%w: default_priority %q must be empty or a single letter A-Z", ErrInvalid, c.DefaultPriority)
	}
	return nil
}

func validPriority(p string) bool {
	return len(p) == 1 && p[0] >= 'A' && p[0] <= 'Z'
}

// ResolveDir returns the todo directory: flagDir if set, else $TODO_DIR,
// else ~/.todo.
func ResolveDir(flagDir string) (string, error) {
	dir := flagDir
	if dir == "" {
		dir = os.Getenv("TODO_DIR")
	}
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		dir = filepath.Join(home, DefaultDirName)
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	return absDir, nil
}

// EnsureDir creates the todo directory if it does not exist.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return fmt.Errorf("creating todo directory: %w", err)
	}
	return nil
}

// Load reads and validates the config from the given todo directory.
// A missing config file yields the defaults; unknown versions migrate
// forward and the migrated file is persisted.
func Load(dir string) (*Config, error) {
	cfg := NewDefault()
	cfg.dir = dir

	data, err := os.ReadFile(cfg.ConfigPath()) //nolint:gosec // config path from trusted source
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Unmarshal over the defaults so missing keys keep their default
	// values. Version is zeroed first: a file without a version key is
	// pre-versioned and must go through migration.
	cfg.Version = 0
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	oldVersion := cfg.Version
	if err := migrate(cfg); err != nil {
		return nil, err
	}

	// Persist migrated config so future loads skip re-migration.
	if cfg.Version != oldVersion {
		if err := cfg.Save(); err != nil {
			return nil, fmt.Errorf("saving migrated config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the config to its config file.
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(c.ConfigPath(), data, fileMode)
}
