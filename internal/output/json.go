package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/twiced-technology-gmbh/todo/internal/task"
	"github.com/twiced-technology-gmbh/todo/internal/tasklist"
)

// JSON writes data as indented JSON to the given writer.
func JSON(w io.Writer, data interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// ErrorResponse is the JSON envelope for structured error output.
type ErrorResponse struct {
	Error   string         `json:"error"`
	Code    string         `json:"code"`
	Details map[string]any `json:"details,omitempty"`
}

// JSONError writes a structured error to the given writer as JSON.
func JSONError(w io.Writer, code, msg string, details map[string]any) {
	resp := ErrorResponse{Error: msg, Code: code, Details: details}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(resp) // best-effort; if writer fails, nothing we can do
}

// BatchResult represents the outcome of a single operation within a batch.
type BatchResult struct {
	Pos   int    `json:"pos"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
	Code  string `json:"code,omitempty"`
}

// TaskRow is the JSON row for a task listing, pairing the 1-based
// position and the raw line with the structured task fields.
type TaskRow struct {
	Pos  int        `json:"pos"`
	Raw  string     `json:"raw"`
	Task *task.Task `json:"task"`
}

// TaskRows converts query entries into JSON rows.
func TaskRows(entries []tasklist.Entry) []TaskRow {
	rows := make([]TaskRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, TaskRow{Pos: e.Pos, Raw: e.Task.String(), Task: e.Task})
	}
	return rows
}
