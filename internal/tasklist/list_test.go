package tasklist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/todo/internal/clierr"
	"github.com/twiced-technology-gmbh/todo/internal/task"
)

func listFrom(lines ...string) List {
	l := make(List, 0, len(lines))
	for _, line := range lines {
		l = append(l, task.Parse(line))
	}
	return l
}

func TestAt(t *testing.T) {
	l := listFrom("first", "second", "third")

	tk, err := l.At(2)
	require.NoError(t, err)
	assert.Equal(t, "second", tk.Description)
}

func TestAtOutOfRange(t *testing.T) {
	l := listFrom("only one")

	for _, pos := range []int{0, -1, 2} {
		_, err := l.At(pos)
		require.Error(t, err, "position %d", pos)

		var cerr *clierr.Error
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, clierr.IndexOutOfRange, cerr.Code)
	}
}

func TestRemoveAtShiftsLaterPositions(t *testing.T) {
	l := listFrom("first", "second", "third")

	removed, err := l.RemoveAt(2)
	require.NoError(t, err)
	assert.Equal(t, "second", removed.Description)
	require.Len(t, l, 2)

	tk, err := l.At(2)
	require.NoError(t, err)
	assert.Equal(t, "third", tk.Description)
}

func TestMoveTo(t *testing.T) {
	l := listFrom("a", "b", "c", "d")

	require.NoError(t, l.MoveTo(1, 3))
	assert.Equal(t, []string{"b", "c", "a", "d"}, descriptions(l))

	require.NoError(t, l.MoveTo(4, 1))
	assert.Equal(t, []string{"d", "b", "c", "a"}, descriptions(l))

	require.NoError(t, l.MoveTo(2, 2))
	assert.Equal(t, []string{"d", "b", "c", "a"}, descriptions(l))
}

func TestMoveToOutOfRange(t *testing.T) {
	l := listFrom("a", "b")

	var cerr *clierr.Error
	require.ErrorAs(t, l.MoveTo(3, 1), &cerr)
	assert.Equal(t, clierr.IndexOutOfRange, cerr.Code)
	require.ErrorAs(t, l.MoveTo(1, 0), &cerr)
	assert.Equal(t, clierr.IndexOutOfRange, cerr.Code)
}

func TestMatchKeepsOriginalPositions(t *testing.T) {
	l := listFrom(
		"(A) Buy milk +Errand @Store",
		"Call mom +Family",
		"Pick up package +Errand",
	)

	entries := l.Match(Query{Projects: []string{"Errand"}})
	require.Len(t, entries, 2)
	assert.Equal(t, 1, entries[0].Pos)
	assert.Equal(t, "Buy milk", entries[0].Task.Description)
	assert.Equal(t, 3, entries[1].Pos)
	assert.Equal(t, "Pick up package", entries[1].Task.Description)
}

func TestEntriesReturnsFullListInOrder(t *testing.T) {
	l := listFrom("a", "b", "c")

	entries := l.Entries()
	require.Len(t, entries, 3)
	for i, e := range entries {
		assert.Equal(t, i+1, e.Pos)
		assert.Same(t, l[i], e.Task)
	}
}

func TestParsePositions(t *testing.T) {
	positions, err := ParsePositions("3, 1,2")
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1, 2}, positions)
}

func TestParsePositionsDeduplicates(t *testing.T) {
	positions, err := ParsePositions("2,2,1,2")
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1}, positions)
}

func TestParsePositionsRejectsNonNumeric(t *testing.T) {
	_, err := ParsePositions("1,two")
	require.Error(t, err)

	var cerr *clierr.Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, clierr.InvalidTaskNumber, cerr.Code)

	_, err = ParsePositions(" , ")
	require.Error(t, err)
}

func descriptions(l List) []string {
	out := make([]string, len(l))
	for i, tk := range l {
		out[i] = tk.Description
	}
	return out
}
