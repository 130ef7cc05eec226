// Package task implements the todo.txt task model and its line format.
package task

import (
	"github.com/twiced-technology-gmbh/todo/internal/date"
)

// Field is one key:value metadata pair. Duplicate keys are allowed: the last
// occurrence wins for lookup, every occurrence is kept for serialization.
type Field struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Task represents a single todo.txt line. Tag slices preserve first-appearance
// order and may contain duplicates, matching what the line actually says.
//
// Mutations must go through the methods below: they invalidate the cached raw
// line so the next serialization re-synthesizes the line from fields.
type Task struct {
	Completed      bool       `json:"completed"`
	Priority       string     `json:"priority,omitempty"`
	CompletionDate *date.Date `json:"completion_date,omitempty"`
	CreationDate   *date.Date `json:"creation_date,omitempty"`
	Description    string     `json:"description"`
	Projects       []string   `json:"projects,omitempty"`
	Contexts       []string   `json:"contexts,omitempty"`
	Metadata       []Field    `json:"metadata,omitempty"`

	// raw is the original line text, retained until the first mutation so
	// unmodified tasks round-trip byte-for-byte.
	raw string
}

// New creates a task with the given description, priority ("" for none,
// otherwise a validated A-Z letter) and creation date.
func New(description, priority string, created date.Date) *Task {
	return &Task{
		Description:  description,
		Priority:     priority,
		CreationDate: &created,
	}
}

func (t *Task) invalidate() { t.raw = "" }

// Complete marks the task done with the supplied date. Completing an
// already-completed task is a no-op: the original completion date stands.
func (t *Task) Complete(today date.Date) {
	if t.Completed {
		return
	}
	t.Completed = true
	t.CompletionDate = &today
	t.invalidate()
}

// Reopen clears the completed state and its completion date.
func (t *Task) Reopen() {
	if !t.Completed && t.CompletionDate == nil {
		return
	}
	t.Completed = false
	t.CompletionDate = nil
	t.invalidate()
}

// SetPriority sets the priority to a single uppercase letter A-Z.
func (t *Task) SetPriority(p string) error {
	if err := ValidatePriority(p); err != nil {
		return err
	}
	t.Priority = p
	t.invalidate()
	return nil
}

// ClearPriority removes the priority.
func (t *Task) ClearPriority() {
	if t.Priority == "" {
		return
	}
	t.Priority = ""
	t.invalidate()
}

// SetDescription replaces the free-text description.
func (t *Task) SetDescription(s string) {
	t.Description = s
	t.invalidate()
}

// SetCreationDate sets the creation date.
func (t *Task) SetCreationDate(d date.Date) {
	t.CreationDate = &d
	t.invalidate()
}

// AddProject appends a project tag.
func (t *Task) AddProject(name string) {
	t.Projects = append(t.Projects, name)
	t.invalidate()
}

// RemoveProject removes every occurrence of the project tag.
// Reports whether anything was removed.
func (t *Task) RemoveProject(name string) bool {
	kept, removed := removeString(t.Projects, name)
	if removed {
		t.Projects = kept
		t.invalidate()
	}
	return removed
}

// HasProject reports whether the task carries the project tag.
func (t *Task) HasProject(name string) bool {
	return containsString(t.Projects, name)
}

// RenameProject replaces every occurrence of oldName with newName.
// Reports whether anything changed.
func (t *Task) RenameProject(oldName, newName string) bool {
	changed := false
	for i, p := range t.Projects {
		if p == oldName {
			t.Projects[i] = newName
			changed = true
		}
	}
	if changed {
		t.invalidate()
	}
	return changed
}

// AddContext appends a context tag.
func (t *Task) AddContext(name string) {
	t.Contexts = append(t.Contexts, name)
	t.invalidate()
}

// RemoveContext removes every occurrence of the context tag.
// Reports whether anything was removed.
func (t *Task) RemoveContext(name string) bool {
	kept, removed := removeString(t.Contexts, name)
	if removed {
		t.Contexts = kept
		t.invalidate()
	}
	return removed
}

// HasContext reports whether the task carries the context tag.
func (t *Task) HasContext(name string) bool {
	return containsString(t.Contexts, name)
}

// Meta returns the value for key. With duplicate keys the last occurrence
// wins. The second return reports whether the key is present at all.
func (t *Task) Meta(key string) (string, bool) {
	for i := len(t.Metadata) - 1; i >= 0; i-- {
		if t.Metadata[i].Key == key {
			return t.Metadata[i].Value, true
		}
	}
	return "", false
}

// SetMeta sets key to value. If the key is present the last occurrence (the
// one lookup sees) is updated in place; otherwise the pair is appended.
func (t *Task) SetMeta(key, value string) {
	for i := len(t.Metadata) - 1; i >= 0; i-- {
		if t.Metadata[i].Key == key {
			t.Metadata[i].Value = value
			t.invalidate()
			return
		}
	}
	t.Metadata = append(t.Metadata, Field{Key: key, Value: value})
	t.invalidate()
}

// RemoveMeta removes every occurrence of key.
// Reports whether anything was removed.
func (t *Task) RemoveMeta(key string) bool {
	kept := t.Metadata[:0:0]
	removed := false
	for _, f := range t.Metadata {
		if f.Key == key {
			removed = true
			continue
		}
		kept = append(kept, f)
	}
	if removed {
		t.Metadata = kept
		t.invalidate()
	}
	return removed
}

func removeString(slice []string, item string) ([]string, bool) {
	kept := slice[:0:0]
	removed := false
	for _, s := range slice {
		if s == item {
			removed = true
			continue
		}
		kept = append(kept, s)
	}
	return kept, removed
}

func containsString(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
