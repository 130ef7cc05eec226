package history

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendWritesJSONLines(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, Append(dir, Entry{
		Timestamp: time.Date(2023, 4, 2, 12, 0, 0, 0, time.UTC),
		Action:    "done",
		Position:  3,
		Line:      "x 2023-04-02 Ship it",
	}))
	require.NoError(t, Append(dir, Entry{
		Timestamp: time.Date(2023, 4, 2, 12, 1, 0, 0, time.UTC),
		Action:    "add",
		Position:  4,
		Line:      "New task",
	}))

	entries := readEntries(t, dir)
	require.Len(t, entries, 2)
	assert.Equal(t, "done", entries[0].Action)
	assert.Equal(t, 3, entries[0].Position)
	assert.Equal(t, "x 2023-04-02 Ship it", entries[0].Line)
	assert.Equal(t, "add", entries[1].Action)
}

func TestRecordNeverFails(t *testing.T) {
	// Recording into a nonexistent directory is silently dropped.
	Record(filepath.Join(t.TempDir(), "missing"), "add", 1, "task")
}

func TestAppendTruncatesOldEntries(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, logFileName)

	var buf []byte
	for i := 0; i < maxLogEntries+5; i++ {
		line, err := json.Marshal(Entry{Action: "add", Position: i})
		require.NoError(t, err)
		buf = append(buf, line...)
		buf = append(buf, '\n')
	}
	require.NoError(t, os.WriteFile(path, buf, 0o600))

	require.NoError(t, Append(dir, Entry{Action: "done", Position: 1}))

	entries := readEntries(t, dir)
	assert.Len(t, entries, maxLogEntries)
	assert.Equal(t, "done", entries[len(entries)-1].Action)
}

func readEntries(t *testing.T, dir string) []Entry {
	t.Helper()

	f, err := os.Open(filepath.Join(dir, logFileName))
	require.NoError(t, err)
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e Entry
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &e))
		entries = append(entries, e)
	}
	require.NoError(t, scanner.Err())
	return entries
}
