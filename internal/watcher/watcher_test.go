package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, dir string, files []string, callback func()) {
	t.Helper()
	w, err := New(dir, files, callback)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go w.Run(ctx, nil)
}

func TestWatcherFiresOnWatchedFile(t *testing.T) {
	dir := t.TempDir()
	fired := make(chan struct{}, 1)
	startWatcher(t, dir, []string{"todo.txt"}, func() {
		select {
		case fired <- struct{}{}:
		default:
		}
	})

	require.NoError(t, os.WriteFile(filepath.Join(dir, "todo.txt"), []byte("Call mom\n"), 0o600))

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not report the change")
	}
}

func TestWatcherSurvivesRenameReplace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "todo.txt")
	require.NoError(t, os.WriteFile(path, []byte("Call mom\n"), 0o600))

	fired := make(chan struct{}, 1)
	startWatcher(t, dir, []string{"todo.txt"}, func() {
		select {
		case fired <- struct{}{}:
		default:
		}
	})

	// Replace the file the way a save does: temp file, then rename over it.
	tmp := path + ".tmp"
	require.NoError(t, os.WriteFile(tmp, []byte("Call mom\nWater plants\n"), 0o600))
	require.NoError(t, os.Rename(tmp, path))

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher missed the rename replace")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	fired := make(chan struct{}, 1)
	startWatcher(t, dir, []string{"todo.txt"}, func() { fired <- struct{}{} })

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("scratch\n"), 0o600))

	select {
	case <-fired:
		t.Fatal("watcher fired for an unwatched file")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherCoalescesBursts(t *testing.T) {
	dir := t.TempDir()
	var calls atomic.Int32
	startWatcher(t, dir, []string{"todo.txt"}, func() { calls.Add(1) })

	path := filepath.Join(dir, "todo.txt")
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte("Call mom\n"), 0o600))
	}

	time.Sleep(debounceDelay * 4)
	require.EqualValues(t, 1, calls.Load())
}
