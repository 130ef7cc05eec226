package tasklist

import (
	"github.com/twiced-technology-gmbh/todo/internal/task"
)

// RenameProject renames a project tag on every task carrying it and
// returns the number of tasks changed.
func (l List) RenameProject(oldName, newName string) int {
	count := 0
	for _, t := range l {
		if t.RenameProject(oldName, newName) {
			count++
		}
	}
	return count
}

// RemoveByProject deletes every task carrying the project and returns
// the number of tasks removed.
func (l *List) RemoveByProject(name string) int {
	s := *l
	kept := s[:0]
	removed := 0
	for _, t := range s {
		if t.HasProject(name) {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	*l = kept
	return removed
}

// SetProjectPriority sets the priority on every task carrying the project
// and returns the number of tasks changed. An empty priority clears instead.
func (l List) SetProjectPriority(name, priority string) (int, error) {
	if priority != "" {
		if err := task.ValidatePriority(priority); err != nil {
			return 0, err
		}
	}
	count := 0
	for _, t := range l {
		if !t.HasProject(name) {
			continue
		}
		if priority == "" {
			t.ClearPriority()
		} else if err := t.SetPriority(priority); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}
