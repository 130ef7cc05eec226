package tasklist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortByPriority(t *testing.T) {
	l := listFrom(
		"no priority one",
		"(C) third",
		"(A) first",
		"no priority two",
		"(B) second",
	)

	l.SortByPriority()

	assert.Equal(t, []string{
		"first",
		"second",
		"third",
		"no priority one",
		"no priority two",
	}, descriptions(l))
}

func TestSortByPriorityTiesKeepFileOrder(t *testing.T) {
	l := listFrom(
		"(A) earlier",
		"plain earlier",
		"(A) later",
		"plain later",
	)

	l.SortByPriority()

	assert.Equal(t, []string{
		"earlier",
		"later",
		"plain earlier",
		"plain later",
	}, descriptions(l))
}
