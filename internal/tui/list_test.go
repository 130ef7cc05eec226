package tui

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/todo/internal/config"
	"github.com/twiced-technology-gmbh/todo/internal/date"
	"github.com/twiced-technology-gmbh/todo/internal/store"
)

func newTestModel(t *testing.T, lines string) (*Model, string) {
	t.Helper()
	t.Setenv("TODO_FILE", "")
	t.Setenv("DONE_FILE", "")
	dir := t.TempDir()
	todoPath := filepath.Join(dir, "todo.txt")
	if lines != "" {
		require.NoError(t, os.WriteFile(todoPath, []byte(lines), 0o600))
	}

	cfg := config.NewDefault()
	cfg.SetDir(dir)
	st := store.New(todoPath, filepath.Join(dir, "done.txt"))
	clock := date.Fixed{Date: date.New(2024, time.March, 10)}
	return New(cfg, st, clock), todoPath
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewShowsOpenTasksOnly(t *testing.T) {
	m, _ := newTestModel(t, "(A) Call mom\nx 2024-03-01 Ship release\nWater plants\n")

	assert.Len(t, m.tasks, 3)
	require.Len(t, m.visible, 2)
	assert.Equal(t, "(A) Call mom", m.visible[0].Task.String())
	assert.Equal(t, 0, m.cursor)
}

func TestShowAllKeyIncludesCompleted(t *testing.T) {
	m, _ := newTestModel(t, "Call mom\nx 2024-03-01 Ship release\n")
	require.Len(t, m.visible, 1)

	_, _ = m.Update(keyRunes("a"))
	assert.True(t, m.showAll)
	assert.Len(t, m.visible, 2)

	_, _ = m.Update(keyRunes("a"))
	assert.Len(t, m.visible, 1)
}

func TestToggleDoneStampsClockAndPersists(t *testing.T) {
	m, todoPath := newTestModel(t, "Call mom\n")

	m.toggleDone()

	data, err := os.ReadFile(todoPath)
	require.NoError(t, err)
	assert.Equal(t, "x 2024-03-10 Call mom\n", string(data))
	// The completed task drops out of the default open-only view.
	assert.Empty(t, m.visible)
	assert.Len(t, m.tasks, 1)
}

func TestAddTaskStampsCreationDate(t *testing.T) {
	m, todoPath := newTestModel(t, "")

	m.addTask("Buy milk")

	data, err := os.ReadFile(todoPath)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-10 Buy milk\n", string(data))
	require.Len(t, m.visible, 1)
	assert.Equal(t, 1, m.visible[0].Pos)
}

func TestDeleteFlowRemovesSelectedTask(t *testing.T) {
	m, todoPath := newTestModel(t, "Call mom\nWater plants\n")

	m.handleDeleteStart()
	assert.Equal(t, viewConfirmDelete, m.view)
	assert.Equal(t, 1, m.deletePos)

	_, _ = m.Update(keyRunes("y"))
	assert.Equal(t, viewList, m.view)

	data, err := os.ReadFile(todoPath)
	require.NoError(t, err)
	assert.Equal(t, "Water plants\n", string(data))
	require.Len(t, m.visible, 1)
}

func TestWatchTargets(t *testing.T) {
	m, todoPath := newTestModel(t, "")

	dir, files := m.WatchTargets()
	assert.Equal(t, filepath.Dir(todoPath), dir)
	assert.Equal(t, []string{"todo.txt", "done.txt"}, files)
}
