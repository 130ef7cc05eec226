package tasklist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/todo/internal/clierr"
)

func TestRenameProjectAcrossList(t *testing.T) {
	l := listFrom(
		"one +Alpha",
		"x two +Alpha",
		"three +Beta",
	)

	count := l.RenameProject("Alpha", "Gamma")
	assert.Equal(t, 2, count)
	assert.Equal(t, []string{"Gamma"}, l[0].Projects)
	assert.Equal(t, []string{"Gamma"}, l[1].Projects)
	assert.Equal(t, []string{"Beta"}, l[2].Projects)

	assert.Zero(t, l.RenameProject("Missing", "Other"))
}

func TestRemoveByProject(t *testing.T) {
	l := listFrom(
		"one +Alpha",
		"two +Beta",
		"x three +Alpha",
	)

	removed := l.RemoveByProject("Alpha")
	assert.Equal(t, 2, removed)
	require.Len(t, l, 1)
	assert.Equal(t, "two", l[0].Description)

	assert.Zero(t, l.RemoveByProject("Alpha"))
}

func TestSetProjectPriority(t *testing.T) {
	l := listFrom(
		"one +Alpha",
		"(C) two +Alpha",
		"three +Beta",
	)

	count, err := l.SetProjectPriority("Alpha", "B")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, "B", l[0].Priority)
	assert.Equal(t, "B", l[1].Priority)
	assert.Empty(t, l[2].Priority)
}

func TestSetProjectPriorityClears(t *testing.T) {
	l := listFrom("(A) one +Alpha", "(B) two +Alpha")

	count, err := l.SetProjectPriority("Alpha", "")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Empty(t, l[0].Priority)
	assert.Empty(t, l[1].Priority)
}

func TestSetProjectPriorityRejectsInvalid(t *testing.T) {
	l := listFrom("one +Alpha")

	_, err := l.SetProjectPriority("Alpha", "bb")
	require.Error(t, err)

	var cerr *clierr.Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, clierr.InvalidPriority, cerr.Code)
	assert.Empty(t, l[0].Priority)
}
