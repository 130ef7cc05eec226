// Package history records task mutations to a JSONL activity log.
package history

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	logFileName   = "history.jsonl"
	logFileMode   = 0o600
	maxLogEntries = 10000 // truncate oldest entries when log exceeds this size
)

// Entry represents a single history entry.
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	Position  int       `json:"position,omitempty"`
	Line      string    `json:"line,omitempty"`
}

// Append appends an entry to the history log in the given todo directory.
// If the log exceeds maxLogEntries, the oldest entries are truncated.
func Append(todoDir string, entry Entry) error {
	path := filepath.Join(todoDir, logFileName)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, logFileMode) //nolint:gosec // log path from trusted todo dir
	if err != nil {
		return fmt.Errorf("opening history file: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshaling history entry: %w", err)
	}

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing history entry: %w", err)
	}

	// Truncate if needed (best-effort; errors are non-fatal).
	_ = truncateIfNeeded(path)

	return nil
}

// truncateIfNeeded reads the history file and, if it exceeds maxLogEntries,
// rewrites it keeping only the most recent entries.
func truncateIfNeeded(path string) error {
	f, err := os.Open(path) //nolint:gosec // trusted path
	if err != nil {
		return err
	}

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	_ = f.Close()

	if err := scanner.Err(); err != nil {
		return err
	}

	if len(lines) <= maxLogEntries {
		return nil
	}

	// Keep only the last maxLogEntries lines.
	lines = lines[len(lines)-maxLogEntries:]

	var buf strings.Builder
	for _, line := range lines {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}

	return os.WriteFile(path, []byte(buf.String()), logFileMode)
}

// Record appends a history entry. Errors are silently discarded because
// history should never fail a command.
func Record(todoDir, action string, position int, line string) {
	entry := Entry{
		Timestamp: time.Now(),
		Action:    action,
		Position:  position,
		Line:      line,
	}
	_ = Append(todoDir, entry)
}
