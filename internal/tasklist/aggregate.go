package tasklist

import (
	"sort"

	"github.com/twiced-technology-gmbh/todo/internal/date"
	"github.com/twiced-technology-gmbh/todo/internal/task"
)

// Projects returns the unique project names across the list, sorted.
func (l List) Projects() []string {
	return l.uniqueTags(func(t *task.Task) []string { return t.Projects })
}

// Contexts returns the unique context names across the list, sorted.
func (l List) Contexts() []string {
	return l.uniqueTags(func(t *task.Task) []string { return t.Contexts })
}

func (l List) uniqueTags(tags func(*task.Task) []string) []string {
	seen := make(map[string]bool)
	for _, t := range l {
		for _, name := range tags(t) {
			seen[name] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TagCount holds a task count for a single project or context.
type TagCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Overview is the aggregate collection summary.
type Overview struct {
	Total       int        `json:"total"`
	Open        int        `json:"open"`
	Completed   int        `json:"completed"`
	Prioritized int        `json:"prioritized"`
	Overdue     int        `json:"overdue"`
	DueToday    int        `json:"due_today"`
	Projects    []TagCount `json:"projects,omitempty"`
	Contexts    []TagCount `json:"contexts,omitempty"`
}

// Summarize computes an overview of the list against the given date.
func (l List) Summarize(today date.Date) Overview {
	ov := Overview{Total: len(l)}
	projects := make(map[string]int)
	contexts := make(map[string]int)

	for _, t := range l {
		if t.Completed {
			ov.Completed++
		} else {
			ov.Open++
		}
		if t.Priority != "" && !t.Completed {
			ov.Prioritized++
		}
		if Overdue(t, today) {
			ov.Overdue++
		}
		if due, ok := dueDate(t); ok && !t.Completed && due.Equal(today) {
			ov.DueToday++
		}
		for _, p := range t.Projects {
			projects[p]++
		}
		for _, c := range t.Contexts {
			contexts[c]++
		}
	}

	ov.Projects = sortedCounts(projects)
	ov.Contexts = sortedCounts(contexts)
	return ov
}

func sortedCounts(counts map[string]int) []TagCount {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]TagCount, 0, len(names))
	for _, name := range names {
		result = append(result, TagCount{Name: name, Count: counts[name]})
	}
	return result
}

// Overdue reports whether the task has a due date strictly before today.
// Completed tasks are never overdue.
func Overdue(t *task.Task, today date.Date) bool {
	if t.Completed {
		return false
	}
	due, ok := dueDate(t)
	if !ok {
		return false
	}
	return due.Before(today.Time)
}

// dueDate reads the task's due metadata as a date. Values that do not
// parse as YYYY-MM-DD are ignored.
func dueDate(t *task.Task) (date.Date, bool) {
	v, ok := t.Meta("due")
	if !ok {
		return date.Date{}, false
	}
	d, err := date.Parse(v)
	if err != nil {
		return date.Date{}, false
	}
	return d, true
}
