package task

import (
	"regexp"
	"strings"

	"github.com/twiced-technology-gmbh/todo/internal/date"
)

// completedPrefix marks a finished task at the start of a line.
const completedPrefix = "x "

// priorityRe matches a whole priority token, e.g. "(A)".
var priorityRe = regexp.MustCompile(`^\([A-Z]\)$`)

// Parse converts one todo.txt line into a Task. It is total: any input
// yields a Task, with unrecognized leading tokens degrading into
// description text. The original line is cached on the task so that
// serializing an unmodified task reproduces it exactly.
//
// Recognized shape, in order: "x " completion marker, "(P)" priority,
// completion date (completed tasks only), creation date, then free text
// mixed with +project / @context / key:value tokens.
func Parse(line string) *Task {
	t := &Task{raw: line}

	rest := line
	if strings.HasPrefix(rest, completedPrefix) {
		t.Completed = true
		rest = rest[len(completedPrefix):]
	}

	rest = strings.TrimSpace(rest)
	if rest == "" {
		return t
	}

	// Split on single spaces: runs of whitespace inside plain text produce
	// empty tokens that rejoin into the description, preserving spacing.
	parts := strings.Split(rest, " ")

	if priorityRe.MatchString(parts[0]) {
		t.Priority = parts[0][1:2]
		parts = parts[1:]
	}

	// A completed task may lead with its completion date; the next date
	// token (or the first, when not completed) is the creation date.
	if t.Completed && len(parts) > 0 {
		if d, ok := parseDate(parts[0]); ok {
			t.CompletionDate = &d
			parts = parts[1:]
		}
	}
	if len(parts) > 0 {
		if d, ok := parseDate(parts[0]); ok {
			t.CreationDate = &d
			parts = parts[1:]
		}
	}

	var words []string
	for _, part := range parts {
		switch {
		case len(part) > 1 && strings.HasPrefix(part, "+"):
			t.Projects = append(t.Projects, part[1:])
		case len(part) > 1 && strings.HasPrefix(part, "@"):
			t.Contexts = append(t.Contexts, part[1:])
		case strings.IndexByte(part, ':') > 0:
			key, value, _ := strings.Cut(part, ":")
			t.Metadata = append(t.Metadata, Field{Key: key, Value: value})
		default:
			words = append(words, part)
		}
	}
	t.Description = strings.TrimSpace(strings.Join(words, " "))

	return t
}

// parseDate recognizes a strict YYYY-MM-DD calendar date token.
func parseDate(s string) (date.Date, bool) {
	if len(s) != len("2006-01-02") {
		return date.Date{}, false
	}
	d, err := date.Parse(s)
	if err != nil {
		return date.Date{}, false
	}
	return d, true
}
