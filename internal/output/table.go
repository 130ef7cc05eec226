package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/twiced-technology-gmbh/todo/internal/date"
	"github.com/twiced-technology-gmbh/todo/internal/task"
	"github.com/twiced-technology-gmbh/todo/internal/tasklist"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	// Palette follows the classic todo.txt highlighting: yellow priorities,
	// green completion marks, blue projects, cyan contexts.
	priorityStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)
	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	projectStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	contextStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("44"))
	metaStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("170"))
	overdueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// DisableColor strips all styling from table output.
func DisableColor() {
	headerStyle = lipgloss.NewStyle()
	dimStyle = lipgloss.NewStyle()
	priorityStyle = lipgloss.NewStyle()
	doneStyle = lipgloss.NewStyle()
	projectStyle = lipgloss.NewStyle()
	contextStyle = lipgloss.NewStyle()
	metaStyle = lipgloss.NewStyle()
	overdueStyle = lipgloss.NewStyle()
}

// TaskTable renders query entries as a formatted table. Positions are the
// entries' original 1-based positions in the file.
func TaskTable(w io.Writer, entries []tasklist.Entry, today date.Date) {
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "No matching tasks found.")
		return
	}

	// Calculate column widths.
	const pad = 2
	posW, priW, descW, projW, ctxW, dueW := 3, 5, 6, 10, 10, 12
	for _, e := range entries {
		posW = max(posW, len(strconv.Itoa(e.Pos))+pad)
		descW = max(descW, min(len(e.Task.Description)+pad, 50)) //nolint:mnd // max description column width
		projW = max(projW, min(len(joinTags("+", e.Task.Projects))+pad, 30)) //nolint:mnd // max projects column width
		ctxW = max(ctxW, min(len(joinTags("@", e.Task.Contexts))+pad, 30)) //nolint:mnd // max contexts column width
	}

	// Print header.
	header := fmt.Sprintf("%-*s %-*s %-*s %-*s %-*s %-*s",
		posW, "#", priW, "PRI", descW, "DESCRIPTION",
		projW, "PROJECTS", ctxW, "CONTEXTS", dueW, "DUE")
	fmt.Fprintln(w, headerStyle.Render(strings.TrimRight(header, " ")))

	// Print rows.
	for _, e := range entries {
		fmt.Fprintln(w, strings.TrimRight(taskRow(e, posW, priW, descW, projW, ctxW, today), " "))
	}
}

func taskRow(e tasklist.Entry, posW, priW, descW, projW, ctxW int, today date.Date) string {
	t := e.Task

	desc := t.Description
	const maxDesc = 48
	if len(desc) > maxDesc {
		desc = desc[:maxDesc-3] + "..."
	}
	if t.Completed {
		desc = dimStyle.Render(desc)
	}

	projects := joinTags("+", t.Projects)
	if projects == "" {
		projects = dimStyle.Render("--")
	} else {
		projects = projectStyle.Render(projects)
	}
	contexts := joinTags("@", t.Contexts)
	if contexts == "" {
		contexts = dimStyle.Render("--")
	} else {
		contexts = contextStyle.Render(contexts)
	}

	return fmt.Sprintf("%-*d %s %s %s %s %s",
		posW, e.Pos,
		padRight(priCell(t), priW),
		padRight(desc, descW),
		padRight(projects, projW),
		padRight(contexts, ctxW),
		dueCell(t, today))
}

// priCell renders the priority column: a green x for completed tasks,
// the (A) letter for prioritized ones, a dimmed dash otherwise.
func priCell(t *task.Task) string {
	if t.Completed {
		return doneStyle.Render("x")
	}
	if t.Priority != "" {
		return priorityStyle.Render("(" + t.Priority + ")")
	}
	return dimStyle.Render("--")
}

func dueCell(t *task.Task, today date.Date) string {
	due, ok := t.Meta("due")
	if !ok {
		return dimStyle.Render("--")
	}
	if tasklist.Overdue(t, today) {
		return overdueStyle.Render(due + "!")
	}
	return due
}

// TaskDetail renders a single task with full detail plus its raw line.
func TaskDetail(w io.Writer, e tasklist.Entry, today date.Date) {
	t := e.Task

	titleLine := fmt.Sprintf("Task #%d: %s", e.Pos, t.Description)
	fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Render(titleLine))
	fmt.Fprintln(w, strings.Repeat("─", len(titleLine)))

	status := "open"
	if t.Completed {
		status = doneStyle.Render("done")
	}
	printField(w, "Status", status)
	if t.Priority != "" {
		printField(w, "Priority", priorityStyle.Render("("+t.Priority+")"))
	} else {
		printField(w, "Priority", dimStyle.Render("--"))
	}
	if t.CreationDate != nil {
		printField(w, "Created", t.CreationDate.String())
	}
	if t.CompletionDate != nil {
		printField(w, "Completed", t.CompletionDate.String())
	}
	if len(t.Projects) > 0 {
		printField(w, "Projects", projectStyle.Render(joinTags("+", t.Projects)))
	}
	if len(t.Contexts) > 0 {
		printField(w, "Contexts", contextStyle.Render(joinTags("@", t.Contexts)))
	}
	for _, f := range t.Metadata {
		printField(w, metaStyle.Render(f.Key), f.Value)
	}
	if tasklist.Overdue(t, today) {
		printField(w, "Due", overdueStyle.Render("overdue"))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Raw format: %s\n", t.String())
}

// StatsTable renders a collection overview as a formatted dashboard.
func StatsTable(w io.Writer, ov tasklist.Overview) {
	fmt.Fprintf(w, "Total: %d tasks\n\n", ov.Total)

	header := fmt.Sprintf("%-12s %6s", "", "COUNT")
	fmt.Fprintln(w, headerStyle.Render(header))
	fmt.Fprintf(w, "%-12s %6d\n", "open", ov.Open)
	fmt.Fprintf(w, "%-12s %6d\n", "completed", ov.Completed)
	fmt.Fprintf(w, "%-12s %6d\n", "prioritized", ov.Prioritized)
	fmt.Fprintf(w, "%s %6d\n", padRight(overdueIfPositive("overdue", ov.Overdue), 12), ov.Overdue) //nolint:mnd // column width
	fmt.Fprintf(w, "%-12s %6d\n", "due today", ov.DueToday)

	if len(ov.Projects) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-16s %6s", "PROJECT", "COUNT")))
		for _, tc := range ov.Projects {
			fmt.Fprintf(w, "%s %6d\n", padRight(projectStyle.Render("+"+tc.Name), 16), tc.Count) //nolint:mnd // column width
		}
	}
	if len(ov.Contexts) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-16s %6s", "CONTEXT", "COUNT")))
		for _, tc := range ov.Contexts {
			fmt.Fprintf(w, "%s %6d\n", padRight(contextStyle.Render("@"+tc.Name), 16), tc.Count) //nolint:mnd // column width
		}
	}
}

// Messagef prints a simple formatted message line.
func Messagef(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, format+"\n", args...)
}

func printField(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %s %s\n", padRight(label+":", 12), value) //nolint:mnd // label column width
}

func overdueIfPositive(label string, n int) string {
	if n > 0 {
		return overdueStyle.Render(label)
	}
	return label
}

// joinTags joins names with a space, prefixing each with the sigil.
func joinTags(sigil string, names []string) string {
	if len(names) == 0 {
		return ""
	}
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = sigil + n
	}
	return strings.Join(parts, " ")
}

// padRight pads s with spaces to the given visible width, accounting for ANSI
// escape codes that are invisible but consume bytes.
func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}
