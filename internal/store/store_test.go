package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/todo/internal/clierr"
	"github.com/twiced-technology-gmbh/todo/internal/task"
	"github.com/twiced-technology-gmbh/todo/internal/tasklist"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	return New(filepath.Join(dir, "todo.txt"), filepath.Join(dir, "done.txt"))
}

func TestLoadMissingFileReturnsEmpty(t *testing.T) {
	s := newTestStore(t)

	l, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, l)

	l, err = s.LoadDone()
	require.NoError(t, err)
	assert.Empty(t, l)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	l := tasklist.List{
		task.Parse("(A) Buy milk +Errand @Store"),
		task.Parse("x 2023-04-02 Ship it"),
	}

	require.NoError(t, s.Save(l))

	data, err := os.ReadFile(s.TodoPath)
	require.NoError(t, err)
	assert.Equal(t, "(A) Buy milk +Errand @Store\nx 2023-04-02 Ship it\n", string(data))

	loaded, err := s.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "Buy milk", loaded[0].Description)
	assert.True(t, loaded[1].Completed)
}

func TestLoadSkipsBlankLines(t *testing.T) {
	s := newTestStore(t)
	content := "first\n\n   \nsecond\n"
	require.NoError(t, os.WriteFile(s.TodoPath, []byte(content), 0o600))

	l, err := s.Load()
	require.NoError(t, err)
	require.Len(t, l, 2)
	assert.Equal(t, "first", l[0].Description)
	assert.Equal(t, "second", l[1].Description)
}

func TestSavePreservesUnmodifiedLines(t *testing.T) {
	s := newTestStore(t)
	content := "Call +Family mom\n2023-13-45 not a date but kept\n"
	require.NoError(t, os.WriteFile(s.TodoPath, []byte(content), 0o600))

	l, err := s.Load()
	require.NoError(t, err)
	require.NoError(t, s.Save(l))

	data, err := os.ReadFile(s.TodoPath)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestSaveLeavesNoTempFile(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(tasklist.List{task.Parse("one")}))

	_, err := os.Stat(s.TodoPath + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestLoadReadError(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, filepath.Join(dir, "done.txt")) // a directory is not readable as a file

	_, err := s.Load()
	require.Error(t, err)

	var cerr *clierr.Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, clierr.FileReadError, cerr.Code)
}

func TestArchiveMovesCompletedTasks(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.DonePath, []byte("x 2023-01-01 Old done\n"), 0o600))

	active := tasklist.List{
		task.Parse("open one"),
		task.Parse("x 2023-04-02 finished"),
		task.Parse("open two"),
	}

	remaining, moved, err := s.Archive(active)
	require.NoError(t, err)
	assert.Equal(t, 1, moved)
	require.Len(t, remaining, 2)
	assert.Equal(t, "open one", remaining[0].Description)
	assert.Equal(t, "open two", remaining[1].Description)

	activeData, err := os.ReadFile(s.TodoPath)
	require.NoError(t, err)
	assert.Equal(t, "open one\nopen two\n", string(activeData))

	doneData, err := os.ReadFile(s.DonePath)
	require.NoError(t, err)
	assert.Equal(t, "x 2023-01-01 Old done\nx 2023-04-02 finished\n", string(doneData))
}

func TestArchiveNothingToMove(t *testing.T) {
	s := newTestStore(t)
	active := tasklist.List{task.Parse("still open")}

	remaining, moved, err := s.Archive(active)
	require.NoError(t, err)
	assert.Zero(t, moved)
	assert.Len(t, remaining, 1)

	// Neither file is touched when there is nothing to archive.
	_, err = os.Stat(s.TodoPath)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(s.DonePath)
	assert.True(t, os.IsNotExist(err))
}
