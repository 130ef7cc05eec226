package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, CurrentVersion, cfg.Version)
	assert.Equal(t, "todo.txt", cfg.TodoFile)
	assert.Equal(t, "done.txt", cfg.DoneFile)
	assert.Empty(t, cfg.DefaultPriority)
	assert.True(t, cfg.AutoSort)
	assert.True(t, cfg.ArchiveOnDone)
	assert.True(t, cfg.AutoCommit)
	assert.True(t, cfg.AutoSync)
	assert.Equal(t, dir, cfg.Dir())

	// Nothing is written until the user changes a value.
	_, err = os.Stat(cfg.ConfigPath())
	assert.True(t, os.IsNotExist(err))
}

func TestLoadMergesMissingKeysWithDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "todo_file: tasks.txt\n")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "tasks.txt", cfg.TodoFile)
	assert.Equal(t, "done.txt", cfg.DoneFile)
	assert.True(t, cfg.AutoCommit)
}

func TestLoadMigratesUnversionedFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "todo_file: tasks.txt\nauto_commit: false\n")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, CurrentVersion, cfg.Version)
	assert.False(t, cfg.AutoCommit)

	// The migrated config is persisted with its new version.
	data, err := os.ReadFile(cfg.ConfigPath())
	require.NoError(t, err)
	assert.Contains(t, string(data), "version: 2")

	again, err := Load(dir)
	require.NoError(t, err)
	assert.False(t, again.AutoCommit)
}

func TestLoadMigratesV1(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "version: 1\ndefault_priority: B\n")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, CurrentVersion, cfg.Version)
	assert.Equal(t, "B", cfg.DefaultPriority)
}

func TestLoadRejectsNewerVersion(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "version: 99\n")

	_, err := Load(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad version", func(c *Config) { c.Version = 3 }},
		{"empty todo_file", func(c *Config) { c.TodoFile = "" }},
		{"empty done_file", func(c *Config) { c.DoneFile = "" }},
		{"same files", func(c *Config) { c.DoneFile = c.TodoFile }},
		{"lowercase priority", func(c *Config) { c.DefaultPriority = "c" }},
		{"long priority", func(c *Config) { c.DefaultPriority = "AB" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := NewDefault()
			tc.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}

	cfg := NewDefault()
	cfg.DefaultPriority = "A"
	assert.NoError(t, cfg.Validate())
}

func TestFilePathResolution(t *testing.T) {
	dir := t.TempDir()
	cfg := NewDefault()
	cfg.SetDir(dir)

	assert.Equal(t, filepath.Join(dir, "todo.txt"), cfg.TodoPath())
	assert.Equal(t, filepath.Join(dir, "done.txt"), cfg.DonePath())

	cfg.TodoFile = "/tmp/elsewhere.txt"
	assert.Equal(t, "/tmp/elsewhere.txt", cfg.TodoPath())
}

func TestFilePathEnvOverride(t *testing.T) {
	dir := t.TempDir()
	cfg := NewDefault()
	cfg.SetDir(dir)

	t.Setenv("TODO_FILE", "work.txt")
	t.Setenv("DONE_FILE", "/var/log/done.txt")

	assert.Equal(t, filepath.Join(dir, "work.txt"), cfg.TodoPath())
	assert.Equal(t, "/var/log/done.txt", cfg.DonePath())
}

func TestResolveDir(t *testing.T) {
	t.Setenv("TODO_DIR", "")
	t.Setenv("HOME", "/home/someone")

	dir, err := ResolveDir("")
	require.NoError(t, err)
	assert.Equal(t, "/home/someone/.todo", dir)

	t.Setenv("TODO_DIR", "/data/todo")
	dir, err = ResolveDir("")
	require.NoError(t, err)
	assert.Equal(t, "/data/todo", dir)

	// An explicit flag wins over the environment.
	dir, err = ResolveDir("/explicit")
	require.NoError(t, err)
	assert.Equal(t, "/explicit", dir)
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := NewDefault()
	cfg.SetDir(dir)
	cfg.DefaultPriority = "C"
	cfg.AutoSort = false

	require.NoError(t, cfg.Save())

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "C", loaded.DefaultPriority)
	assert.False(t, loaded.AutoSort)
	assert.True(t, loaded.AutoCommit)
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", ".todo")
	require.NoError(t, EnsureDir(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Idempotent on an existing directory.
	assert.NoError(t, EnsureDir(dir))
}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o600))
}
