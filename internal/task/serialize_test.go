package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/todo/internal/date"
)

func TestStringCanonicalOrder(t *testing.T) {
	created := date.New(2023, time.April, 1)
	tk := New("Complete the project documentation", "A", created)
	tk.AddProject("Work")
	tk.AddContext("Computer")
	tk.SetMeta("due", "2023-04-15")
	tk.Complete(date.New(2023, time.April, 2))

	assert.Equal(t,
		"x (A) 2023-04-02 2023-04-01 Complete the project documentation +Work @Computer due:2023-04-15",
		tk.String())
}

func TestStringRoundTripPreservesRawLine(t *testing.T) {
	lines := []string{
		"x (A) 2023-04-02 2023-04-01 Complete the project documentation +Work @Computer due:2023-04-15",
		"(B) Call mom",
		"Buy milk",
		"Call +Family mom about @Phone dinner", // tags embedded mid-text
		"x 2023-04-02 Ship the release",
		"weird   spacing   kept",
		"due:tomorrow only metadata",
	}
	for _, line := range lines {
		assert.Equal(t, line, Parse(line).String(), "line %q", line)
	}
}

func TestStringRebuildsAfterMutation(t *testing.T) {
	tk := Parse("Call +Family mom")
	require.Equal(t, "Call +Family mom", tk.String())

	tk.SetDescription("Call mom tonight")

	// The cached line is gone; tags now serialize after the description.
	assert.Equal(t, "Call mom tonight +Family", tk.String())
}

func TestStringOmitsEmptyDescription(t *testing.T) {
	tk := &Task{Priority: "C"}
	tk.AddProject("Chores")
	assert.Equal(t, "(C) +Chores", tk.String())
}

func TestStringCompletionDateOnlyWhenCompleted(t *testing.T) {
	d := date.New(2023, time.April, 2)
	tk := &Task{Description: "Stale entry", CompletionDate: &d}
	assert.Equal(t, "Stale entry", tk.String())

	tk.Completed = true
	assert.Equal(t, "x 2023-04-02 Stale entry", tk.String())
}

func TestStringKeepsDuplicateTagsAndMetadata(t *testing.T) {
	tk := Parse("Stack +Work things +Work size:10 size:20")
	tk.SetDescription("Stack things")

	assert.Equal(t, "Stack things +Work +Work size:10 size:20", tk.String())
}

func TestParseStringParseStable(t *testing.T) {
	tk := Parse("x (A) 2023-04-02 2023-04-01 Finish +Work @Desk due:2023-04-15")
	again := Parse(tk.String())

	assert.Equal(t, tk.Completed, again.Completed)
	assert.Equal(t, tk.Priority, again.Priority)
	assert.Equal(t, tk.Description, again.Description)
	assert.Equal(t, tk.Projects, again.Projects)
	assert.Equal(t, tk.Contexts, again.Contexts)
	assert.Equal(t, tk.Metadata, again.Metadata)
	assert.Equal(t, tk.String(), again.String())
}
