package tasklist

import (
	"sort"

	"github.com/twiced-technology-gmbh/todo/internal/task"
)

// SortByPriority stably sorts the list by priority letter. Tasks without
// a priority sort after all prioritized tasks; ties keep file order.
func (l List) SortByPriority() {
	sort.SliceStable(l, func(i, j int) bool {
		return lessPriority(l[i], l[j])
	})
}

func lessPriority(a, b *task.Task) bool {
	if a.Priority == "" {
		return false
	}
	if b.Priority == "" {
		return true
	}
	return a.Priority < b.Priority
}
