package task

import "strings"

// String renders the task as a todo.txt line. An unmodified parsed task
// returns its original line verbatim; otherwise the line is synthesized
// from fields: marker, priority, completion date (completed tasks only),
// creation date, description, then projects, contexts and metadata in
// stored order. Serialization is total and idempotent.
func (t *Task) String() string {
	if t.raw != "" {
		return t.raw
	}

	var parts []string
	if t.Completed {
		parts = append(parts, "x")
	}
	if t.Priority != "" {
		parts = append(parts, "("+t.Priority+")")
	}
	if t.Completed && t.CompletionDate != nil {
		parts = append(parts, t.CompletionDate.String())
	}
	if t.CreationDate != nil {
		parts = append(parts, t.CreationDate.String())
	}
	if t.Description != "" {
		parts = append(parts, t.Description)
	}
	for _, p := range t.Projects {
		parts = append(parts, "+"+p)
	}
	for _, c := range t.Contexts {
		parts = append(parts, "@"+c)
	}
	for _, f := range t.Metadata {
		parts = append(parts, f.Key+":"+f.Value)
	}

	return strings.Join(parts, " ")
}
