package tasklist

import (
	"strings"

	"github.com/twiced-technology-gmbh/todo/internal/date"
	"github.com/twiced-technology-gmbh/todo/internal/task"
)

// Query defines which tasks to select. All criteria must match (AND logic).
type Query struct {
	Projects   []string     // +Name terms, exact tag membership
	Contexts   []string     // @Name terms, exact tag membership
	Metadata   []task.Field // key:value terms, matched against the stored value
	Priorities []string     // (X) terms, exact single-letter match
	Search     []string     // bare terms, case-insensitive substring on the description
	Completed  *bool        // nil=no filter, true=only completed, false=only open
}

// ParseQuery builds a Query from free-form filter terms. A term starting
// with + or @ filters by tag, (X) filters by priority, key:value filters
// by metadata, and anything else matches the description as a substring.
// The special term due:today resolves against the supplied date.
func ParseQuery(terms []string, today date.Date) Query {
	var q Query
	for _, term := range terms {
		switch {
		case len(term) > 1 && strings.HasPrefix(term, "+"):
			q.Projects = append(q.Projects, term[1:])
		case len(term) > 1 && strings.HasPrefix(term, "@"):
			q.Contexts = append(q.Contexts, term[1:])
		case isPriorityTerm(term):
			q.Priorities = append(q.Priorities, term[1:2])
		case strings.IndexByte(term, ':') > 0:
			key, value, _ := strings.Cut(term, ":")
			if key == "due" && value == "today" {
				value = today.String()
			}
			q.Metadata = append(q.Metadata, task.Field{Key: key, Value: value})
		default:
			q.Search = append(q.Search, term)
		}
	}
	return q
}

func isPriorityTerm(term string) bool {
	return len(term) == 3 && term[0] == '(' && term[2] == ')' &&
		task.ValidatePriority(term[1:2]) == nil
}

// Matches reports whether the task satisfies every criterion in the query.
func (q Query) Matches(t *task.Task) bool {
	if q.Completed != nil && t.Completed != *q.Completed {
		return false
	}
	for _, p := range q.Projects {
		if !t.HasProject(p) {
			return false
		}
	}
	for _, c := range q.Contexts {
		if !t.HasContext(c) {
			return false
		}
	}
	for _, f := range q.Metadata {
		v, ok := t.Meta(f.Key)
		if !ok || v != f.Value {
			return false
		}
	}
	for _, p := range q.Priorities {
		if t.Priority != p {
			return false
		}
	}
	for _, s := range q.Search {
		if !strings.Contains(strings.ToLower(t.Description), strings.ToLower(s)) {
			return false
		}
	}
	return true
}
