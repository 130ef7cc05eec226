package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/twiced-technology-gmbh/todo/internal/tasklist"
)

// TaskCompact renders query entries as numbered raw todo.txt lines.
func TaskCompact(w io.Writer, entries []tasklist.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "No matching tasks found.")
		return
	}

	// Right-align numbers against the widest position.
	width := 1
	for _, e := range entries {
		width = max(width, len(strconv.Itoa(e.Pos)))
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%*d %s\n", width, e.Pos, e.Task.String())
	}
}

// StatsCompact renders a collection overview in compact format.
func StatsCompact(w io.Writer, ov tasklist.Overview) {
	fmt.Fprintf(w, "%d tasks (%d open, %d completed)\n", ov.Total, ov.Open, ov.Completed)

	var annotations []string
	if ov.Prioritized > 0 {
		annotations = append(annotations, strconv.Itoa(ov.Prioritized)+" prioritized")
	}
	if ov.Overdue > 0 {
		annotations = append(annotations, strconv.Itoa(ov.Overdue)+" overdue")
	}
	if ov.DueToday > 0 {
		annotations = append(annotations, strconv.Itoa(ov.DueToday)+" due today")
	}
	if len(annotations) > 0 {
		fmt.Fprintln(w, "  "+strings.Join(annotations, ", "))
	}

	if len(ov.Projects) > 0 {
		parts := make([]string, 0, len(ov.Projects))
		for _, tc := range ov.Projects {
			parts = append(parts, "+"+tc.Name+"="+strconv.Itoa(tc.Count))
		}
		fmt.Fprintln(w, "Projects: "+strings.Join(parts, " "))
	}
	if len(ov.Contexts) > 0 {
		parts := make([]string, 0, len(ov.Contexts))
		for _, tc := range ov.Contexts {
			parts = append(parts, "@"+tc.Name+"="+strconv.Itoa(tc.Count))
		}
		fmt.Fprintln(w, "Contexts: "+strings.Join(parts, " "))
	}
}
