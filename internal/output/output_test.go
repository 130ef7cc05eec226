package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/todo/internal/date"
	"github.com/twiced-technology-gmbh/todo/internal/task"
	"github.com/twiced-technology-gmbh/todo/internal/tasklist"
)

func TestDetectFlagsWinOverEnv(t *testing.T) {
	t.Setenv("TODO_OUTPUT", "json")

	assert.Equal(t, FormatJSON, Detect(true, false, false))
	assert.Equal(t, FormatCompact, Detect(false, false, true))
	assert.Equal(t, FormatTable, Detect(false, true, false))
}

func TestDetectEnv(t *testing.T) {
	t.Setenv("TODO_OUTPUT", "json")
	assert.Equal(t, FormatJSON, Detect(false, false, false))

	t.Setenv("TODO_OUTPUT", "compact")
	assert.Equal(t, FormatCompact, Detect(false, false, false))

	t.Setenv("TODO_OUTPUT", "")
	assert.Equal(t, FormatTable, Detect(false, false, false))
}

func TestTaskCompactNumbersLines(t *testing.T) {
	entries := []tasklist.Entry{
		{Pos: 2, Task: task.Parse("(A) Buy milk +Errand")},
		{Pos: 10, Task: task.Parse("x 2023-04-02 Ship it")},
	}

	var buf bytes.Buffer
	TaskCompact(&buf, entries)

	assert.Equal(t, " 2 (A) Buy milk +Errand\n10 x 2023-04-02 Ship it\n", buf.String())
}

func TestTaskRows(t *testing.T) {
	entries := []tasklist.Entry{
		{Pos: 3, Task: task.Parse("(B) Call mom +Family due:2023-04-20")},
	}

	data, err := json.Marshal(TaskRows(entries))
	require.NoError(t, err)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(data, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, float64(3), rows[0]["pos"])
	assert.Equal(t, "(B) Call mom +Family due:2023-04-20", rows[0]["raw"])

	tk, ok := rows[0]["task"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Call mom", tk["description"])
	assert.Equal(t, "B", tk["priority"])
}

func TestJSONError(t *testing.T) {
	var buf bytes.Buffer
	JSONError(&buf, "INVALID_PRIORITY", "invalid priority \"9\"", map[string]any{"priority": "9"})

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "INVALID_PRIORITY", resp.Code)
	assert.Equal(t, "invalid priority \"9\"", resp.Error)
	assert.Equal(t, "9", resp.Details["priority"])
}

func TestTaskTable(t *testing.T) {
	DisableColor()
	today := date.New(2023, time.April, 15)
	entries := []tasklist.Entry{
		{Pos: 1, Task: task.Parse("(A) Buy milk +Errand @Store due:2023-04-10")},
		{Pos: 3, Task: task.Parse("x 2023-04-02 Ship it")},
	}

	var buf bytes.Buffer
	TaskTable(&buf, entries, today)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "DESCRIPTION")
	assert.Contains(t, lines[1], "(A)")
	assert.Contains(t, lines[1], "Buy milk")
	assert.Contains(t, lines[1], "+Errand")
	assert.Contains(t, lines[1], "@Store")
	assert.Contains(t, lines[1], "2023-04-10!")
	assert.Contains(t, lines[2], "x")
	assert.Contains(t, lines[2], "Ship it")
}

func TestTaskDetailShowsRawLine(t *testing.T) {
	DisableColor()
	today := date.New(2023, time.April, 15)
	line := "x (A) 2023-04-02 2023-04-01 Finish +Work @Desk due:2023-04-15"

	var buf bytes.Buffer
	TaskDetail(&buf, tasklist.Entry{Pos: 2, Task: task.Parse(line)}, today)

	out := buf.String()
	assert.Contains(t, out, "Task #2: Finish")
	assert.Contains(t, out, "done")
	assert.Contains(t, out, "Raw format: "+line)
}

func TestStatsCompact(t *testing.T) {
	ov := tasklist.Overview{
		Total: 3, Open: 2, Completed: 1, Overdue: 1,
		Projects: []tasklist.TagCount{{Name: "Work", Count: 2}},
	}

	var buf bytes.Buffer
	StatsCompact(&buf, ov)

	out := buf.String()
	assert.Contains(t, out, "3 tasks (2 open, 1 completed)")
	assert.Contains(t, out, "1 overdue")
	assert.Contains(t, out, "+Work=2")
}
