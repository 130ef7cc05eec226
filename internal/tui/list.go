// Package tui implements an interactive terminal UI for the task list.
package tui

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/twiced-technology-gmbh/todo/internal/config"
	"github.com/twiced-technology-gmbh/todo/internal/date"
	"github.com/twiced-technology-gmbh/todo/internal/history"
	"github.com/twiced-technology-gmbh/todo/internal/store"
	"github.com/twiced-technology-gmbh/todo/internal/task"
	"github.com/twiced-technology-gmbh/todo/internal/tasklist"
)

// view represents the current screen state.
type view int

const (
	viewList view = iota
	viewConfirmDelete
	viewAdd
)

// Layout constants.
const (
	listChrome   = 3 // header + blank line + status bar below the list area
	errorChrome  = 1 // extra line when the error toast is displayed
	tickInterval = 30 * time.Second // keeps overdue highlighting on today's date
)

// keyMap declares the list view bindings. The status bar renders its help.
type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	Delete  key.Binding
	Add     key.Binding
	ShowAll key.Binding
	Reload  key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "up")),
		Down:    key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j", "down")),
		Toggle:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "done")),
		Delete:  key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete")),
		Add:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		ShowAll: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "all")),
		Reload:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Quit:    key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "quit")),
	}
}

// Model is the top-level bubbletea model: a single scrolling task list.
type Model struct {
	cfg   *config.Config
	store *store.Store
	clock date.Clock
	keys  keyMap
	input textinput.Model

	tasks     tasklist.List
	visible   []tasklist.Entry
	cursor    int
	scrollOff int
	showAll   bool
	view      view
	width     int
	height    int
	err       error

	// Delete confirmation.
	deletePos  int
	deleteLine string
}

// New creates a Model backed by the given store.
func New(cfg *config.Config, st *store.Store, clock date.Clock) *Model {
	ti := textinput.New()
	ti.Placeholder = "(A) Call mom +Family @Phone"
	m := &Model{cfg: cfg, store: st, clock: clock, keys: defaultKeyMap(), input: ti}
	m.reload()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = inputWidth(msg.Width)
		return m, nil
	case ReloadMsg:
		m.reload()
		return m, nil
	case TickMsg:
		return m, tickCmd()
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	switch m.view {
	case viewConfirmDelete:
		return m.viewDeleteConfirm()
	case viewAdd:
		return m.viewAdd()
	default:
		return m.viewList()
	}
}

// WatchTargets returns the directory to watch for changes plus the data file
// names that should trigger a reload.
func (m *Model) WatchTargets() (string, []string) {
	todo := m.cfg.TodoPath()
	return filepath.Dir(todo), []string{filepath.Base(todo), filepath.Base(m.cfg.DonePath())}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys.
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.view {
	case viewList:
		return m.handleListKey(msg)
	case viewConfirmDelete:
		return m.handleDeleteKey(msg)
	case viewAdd:
		return m.handleAddKey(msg)
	}

	return m, nil
}

func (m *Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visible)-1 {
			m.cursor++
			m.ensureVisible()
		}
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.ensureVisible()
		}
	case key.Matches(msg, m.keys.Toggle):
		m.toggleDone()
	case key.Matches(msg, m.keys.Delete):
		m.handleDeleteStart()
	case key.Matches(msg, m.keys.Add):
		m.view = viewAdd
		m.input.SetValue("")
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.ShowAll):
		m.showAll = !m.showAll
		m.refreshVisible()
	case key.Matches(msg, m.keys.Reload):
		m.reload()
	}
	return m, nil
}

func (m *Model) handleDeleteStart() {
	e, ok := m.selected()
	if !ok {
		return
	}
	m.deletePos = e.Pos
	m.deleteLine = e.Task.String()
	m.view = viewConfirmDelete
}

func (m *Model) handleDeleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.executeDelete()
	case "n", "N", "esc", "q":
		m.view = viewList
	}
	return m, nil
}

func (m *Model) executeDelete() {
	m.view = viewList
	if _, err := m.tasks.RemoveAt(m.deletePos); err != nil {
		m.err = err
		return
	}
	m.persist("rm", m.deletePos, m.deleteLine)
}

func (m *Model) handleAddKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.view = viewList
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		text := strings.TrimSpace(m.input.Value())
		m.view = viewList
		m.input.Blur()
		if text != "" {
			m.addTask(text)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) addTask(text string) {
	t := task.New(text, m.cfg.DefaultPriority, m.clock.Today())
	m.tasks = append(m.tasks, t)
	m.persist("add", len(m.tasks), t.String())
}

func (m *Model) toggleDone() {
	e, ok := m.selected()
	if !ok {
		return
	}
	action := "done"
	if e.Task.Completed {
		e.Task.Reopen()
		action = "reopen"
	} else {
		e.Task.Complete(m.clock.Today())
	}
	m.persist(action, e.Pos, e.Task.String())
}

// persist saves the full list, records the mutation and reloads from disk so
// the view reflects what was actually written.
func (m *Model) persist(action string, pos int, line string) {
	if err := m.store.Save(m.tasks); err != nil {
		m.err = err
		return
	}
	history.Record(m.cfg.Dir(), action, pos, line)
	m.reload()
}

// reload reads the task list from disk and rebuilds the visible entries.
func (m *Model) reload() {
	list, err := m.store.Load()
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.tasks = list
	m.refreshVisible()
}

func (m *Model) refreshVisible() {
	q := tasklist.Query{}
	if !m.showAll {
		open := false
		q.Completed = &open
	}
	m.visible = m.tasks.Match(q)
	m.clampCursor()
}

func (m *Model) selected() (tasklist.Entry, bool) {
	if m.cursor >= 0 && m.cursor < len(m.visible) {
		return m.visible[m.cursor], true
	}
	return tasklist.Entry{}, false
}

func (m *Model) clampCursor() {
	if len(m.visible) == 0 {
		m.cursor = 0
		m.scrollOff = 0
		return
	}
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	m.ensureVisible()
}

// chromeHeight returns the number of lines consumed by non-row elements:
// header, blank line and status bar (+ error line when an error is shown).
func (m *Model) chromeHeight() int {
	h := listChrome
	if m.err != nil {
		h += errorChrome
	}
	return h
}

// maxVisible returns the number of rows that fit in the list area,
// accounting for scroll indicator lines ("↑ N more" / "↓ N more") that
// consume vertical space.
func (m *Model) maxVisible() int {
	avail := m.height - m.chromeHeight()
	if m.scrollOff > 0 {
		avail--
	}
	n := avail
	if m.scrollOff+n < len(m.visible) {
		n--
	}
	if n < 1 {
		n = 1
	}
	return n
}

// ensureVisible adjusts the scroll offset so the cursor row is within the
// visible window.
func (m *Model) ensureVisible() {
	for range len(m.visible) + 1 {
		vis := m.maxVisible()

		switch {
		case m.cursor >= m.scrollOff+vis:
			// Scroll down: cursor is below the visible window.
			m.scrollOff = m.cursor - vis + 1
		case m.cursor < m.scrollOff:
			// Scroll up: cursor is above the visible window.
			m.scrollOff = m.cursor
		default:
			return // cursor is visible
		}
	}
}

// --- Messages ---

// ReloadMsg is sent by the file watcher to trigger a list refresh.
type ReloadMsg struct{}

// TickMsg is sent periodically so overdue highlighting follows the date.
type TickMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg { return TickMsg{} })
}

// --- Styles ---

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236")).
			Padding(0, 1)

	activeRowStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62"))

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	overdueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	dialogPadY = 1
	dialogPadX = 2

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(dialogPadY, dialogPadX)
)

// --- View rendering ---

func (m *Model) viewList() string {
	header := m.renderHeader()
	body := strings.Join(m.renderRows(), "\n")

	// Clamp the list area to the available height, padding when short so the
	// status bar stays pinned to the bottom.
	target := m.height - m.chromeHeight()
	if target > 0 {
		actual := strings.Count(body, "\n") + 1
		if actual > target {
			lines := strings.SplitN(body, "\n", target+1)
			body = strings.Join(lines[:target], "\n")
		} else if actual < target {
			body += strings.Repeat("\n", target-actual)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, "", m.renderStatusBar())
}

func (m *Model) renderHeader() string {
	title := "todo"
	if m.showAll {
		title = "todo (all)"
	}
	const headerPad = 2
	text := truncate(title+"  "+m.cfg.TodoPath(), m.width-headerPad)
	return headerStyle.Width(m.width).Render(text)
}

func (m *Model) renderRows() []string {
	if len(m.visible) == 0 {
		if m.showAll {
			return []string{dimStyle.Render("  (no tasks)")}
		}
		return []string{dimStyle.Render("  (no open tasks)")}
	}

	vis := m.maxVisible()
	start := m.scrollOff
	end := start + vis
	if end > len(m.visible) {
		end = len(m.visible)
	}
	if start > len(m.visible) {
		start = len(m.visible)
	}

	var rows []string

	// Show "↑ N more" indicator if scrolled down.
	if start > 0 {
		rows = append(rows, dimStyle.Render(fmt.Sprintf("  ↑ %d more", start)))
	}

	today := m.clock.Today()
	posW := len(strconv.Itoa(len(m.tasks)))
	for i := start; i < end; i++ {
		rows = append(rows, m.renderRow(m.visible[i], i == m.cursor, posW, today))
	}

	// Show "↓ N more" indicator if more rows below.
	if end < len(m.visible) {
		rows = append(rows, dimStyle.Render(fmt.Sprintf("  ↓ %d more", len(m.visible)-end)))
	}

	return rows
}

// renderRow styles a row by state: the selection gets the highlight, done
// tasks are dimmed, overdue tasks are red. Text is truncated before styling
// so escape sequences are never cut.
func (m *Model) renderRow(e tasklist.Entry, active bool, posW int, today date.Date) string {
	text := fmt.Sprintf(" %*d %s", posW, e.Pos, e.Task.String())
	text = truncate(text, m.width-2) //nolint:mnd // cursor marker width

	switch {
	case active:
		return activeRowStyle.Render(">" + text)
	case e.Task.Completed:
		return dimStyle.Render(" " + text)
	case tasklist.Overdue(e.Task, today):
		return overdueStyle.Render(" " + text)
	default:
		return " " + text
	}
}

func (m *Model) renderStatusBar() string {
	open, done := 0, 0
	for _, t := range m.tasks {
		if t.Completed {
			done++
		} else {
			open++
		}
	}

	status := fmt.Sprintf(" %d open | %d done | %s", open, done, m.helpLine())
	status = truncate(status, m.width)

	if m.err != nil {
		errStr := errorStyle.Render(truncate("Error: "+m.err.Error(), m.width))
		return errStr + "\n" + statusBarStyle.Render(status)
	}

	return statusBarStyle.Render(status)
}

func (m *Model) helpLine() string {
	bindings := []key.Binding{m.keys.Toggle, m.keys.Add, m.keys.Delete, m.keys.ShowAll, m.keys.Reload, m.keys.Quit}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+":"+h.Desc)
	}
	return strings.Join(parts, " ")
}

func (m *Model) viewDeleteConfirm() string {
	content := errorStyle.Render("Delete task?") + "\n\n" +
		fmt.Sprintf("  #%d: %s", m.deletePos, m.deleteLine) + "\n\n" +
		dimStyle.Render("y:yes  n:no")

	return dialogStyle.Render(content)
}

func (m *Model) viewAdd() string {
	content := headerStyle.Render("New task") + "\n\n" +
		m.input.View() + "\n\n" +
		dimStyle.Render("enter:add  esc:cancel")

	return dialogStyle.Render(content)
}

func inputWidth(termWidth int) int {
	const chrome = 10 // dialog border + padding
	w := termWidth - chrome
	if w < 20 { //nolint:mnd // minimum usable input width
		return 20
	}
	return w
}

func truncate(s string, maxLen int) string {
	if maxLen < 4 { //nolint:mnd // minimum length for truncation
		maxLen = 4
	}
	if lipgloss.Width(s) <= maxLen {
		return s
	}
	// Slice by runes to avoid breaking multi-byte UTF-8 characters.
	runes := []rune(s)
	target := maxLen - 3 //nolint:mnd // room for "..."
	if target > len(runes) {
		target = len(runes)
	}
	// Trim runes from the end until the display width fits.
	for target > 0 && lipgloss.Width(string(runes[:target])) > maxLen-3 {
		target--
	}
	return string(runes[:target]) + "..."
}
