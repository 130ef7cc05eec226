// Package tasklist provides position-based operations on task collections.
package tasklist

import (
	"strconv"
	"strings"

	"github.com/twiced-technology-gmbh/todo/internal/clierr"
	"github.com/twiced-technology-gmbh/todo/internal/task"
)

// List is an ordered task collection. Positions are 1-based and dense:
// removing a task shifts every later task up by one, so positions are
// only stable until the next mutation.
type List []*task.Task

// Entry pairs a task with its current position in the list.
type Entry struct {
	Pos  int
	Task *task.Task
}

// At returns the task at the given 1-based position.
func (l List) At(pos int) (*task.Task, error) {
	if pos < 1 || pos > len(l) {
		return nil, outOfRange(pos, len(l))
	}
	return l[pos-1], nil
}

// RemoveAt removes and returns the task at the given 1-based position.
func (l *List) RemoveAt(pos int) (*task.Task, error) {
	t, err := l.At(pos)
	if err != nil {
		return nil, err
	}
	s := *l
	*l = append(s[:pos-1], s[pos:]...)
	return t, nil
}

// MoveTo moves the task at position from to position to, shifting the
// tasks in between. Both positions are 1-based against the current list.
func (l List) MoveTo(from, to int) error {
	if from < 1 || from > len(l) {
		return outOfRange(from, len(l))
	}
	if to < 1 || to > len(l) {
		return outOfRange(to, len(l))
	}
	if from == to {
		return nil
	}
	t := l[from-1]
	if from < to {
		copy(l[from-1:], l[from:to])
	} else {
		copy(l[to:], l[to-1:from-1])
	}
	l[to-1] = t
	return nil
}

// Match returns the entries matching q in file order, each carrying its
// original position in the full list.
func (l List) Match(q Query) []Entry {
	var result []Entry
	for i, t := range l {
		if q.Matches(t) {
			result = append(result, Entry{Pos: i + 1, Task: t})
		}
	}
	return result
}

// Entries returns every task paired with its position.
func (l List) Entries() []Entry {
	return l.Match(Query{})
}

func outOfRange(pos, size int) *clierr.Error {
	return clierr.Newf(clierr.IndexOutOfRange, "no task at position %d (list has %d)", pos, size).
		WithDetails(map[string]any{"position": pos, "size": size})
}

// ParsePositions splits a comma-separated position string into deduplicated
// 1-based positions.
func ParsePositions(arg string) ([]int, error) {
	parts := strings.Split(arg, ",")
	seen := make(map[int]bool, len(parts))
	positions := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, task.ValidateTaskNumber(p)
		}
		if !seen[n] {
			positions = append(positions, n)
			seen[n] = true
		}
	}
	if len(positions) == 0 {
		return nil, clierr.New(clierr.InvalidTaskNumber, "no valid task numbers provided")
	}
	return positions, nil
}
