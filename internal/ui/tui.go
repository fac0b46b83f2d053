// Package ui provides the terminal interface for the task list.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nibzard/todue/internal/app"
	"github.com/nibzard/todue/internal/config"
	"github.com/nibzard/todue/internal/pref"
	"github.com/nibzard/todue/internal/sweep"
	"github.com/nibzard/todue/internal/task"
)

const (
	title      = "My To-Do List"
	emptyState = "No tasks yet. Add one above!"
	deleteHint = "Complete task first to delete"
	rejectHint = "Enter a task and a due date (YYYY-MM-DD)"
	sweepNote  = "Tasks whose due date has passed are removed automatically."
)

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiConfig)

type tuiConfig struct {
	tickInterval time.Duration
	altScreen    bool
}

// WithTickInterval sets how often the view re-classifies due dates.
func WithTickInterval(d time.Duration) TUIOption {
	return func(c *tuiConfig) {
		if d > 0 {
			c.tickInterval = d
		}
	}
}

// WithAltScreen toggles the alternate screen buffer.
func WithAltScreen(enabled bool) TUIOption {
	return func(c *tuiConfig) {
		c.altScreen = enabled
	}
}

// RunTUI runs the interactive list until the user quits or ctx is done.
// Expired tasks are swept in the background for the lifetime of the program.
func RunTUI(ctx context.Context, a *app.App, opts ...TUIOption) error {
	c := &tuiConfig{
		tickInterval: time.Second,
		altScreen:    true,
	}
	for _, opt := range opts {
		opt(c)
	}

	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan sweep.Event, 16)
	go a.Sweeper.Run(ctx, events)

	model := newTUIModel(a, events)
	model.tickInterval = c.tickInterval

	progOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if c.altScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	program := tea.NewProgram(model, progOpts...)
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}

type focus int

const (
	focusList focus = iota
	focusText
	focusDate
)

type tuiModel struct {
	tasks        *task.Store
	prefs        *pref.Store
	logger       *log.Logger
	events       <-chan sweep.Event
	dateFormat   string
	tickInterval time.Duration

	keys   keyMap
	help   help.Model
	styles styles
	now    time.Time
	focus  focus
	text   textinput.Model
	date   textinput.Model
	cursor int
	notice string
}

type tickMsg time.Time

type sweepMsg struct {
	event sweep.Event
}

type sweepDoneMsg struct{}

func newTUIModel(a *app.App, events <-chan sweep.Event) *tuiModel {
	format := config.DefaultDateFormat
	if a.Config != nil && a.Config.DateFormat != "" {
		format = a.Config.DateFormat
	}

	text := textinput.New()
	text.Prompt = ""
	text.Placeholder = "What needs to be done?"
	text.CharLimit = 0

	date := textinput.New()
	date.Prompt = ""
	date.Placeholder = "YYYY-MM-DD"
	date.CharLimit = 25

	m := &tuiModel{
		tasks:        a.Tasks,
		prefs:        a.Prefs,
		logger:       a.Logger.WithPrefix("ui"),
		events:       events,
		dateFormat:   format,
		tickInterval: time.Second,
		keys:         newKeyMap(),
		help:         help.New(),
		text:         text,
		date:         date,
		now:          a.Tasks.Now(),
	}
	m.styles = newStyles(m.prefs.Theme())
	m.setFocus(focusText)
	return m
}

func (m *tuiModel) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.tickInterval), textinput.Blink}
	if m.events != nil {
		cmds = append(cmds, waitForSweep(m.events))
	}
	return tea.Batch(cmds...)
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		if m.focus == focusList {
			return m.updateList(msg)
		}
		return m.updateInput(msg)
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	case tickMsg:
		m.now = m.tasks.Now()
		return m, tickCmd(m.tickInterval)
	case sweepMsg:
		m.now = m.tasks.Now()
		m.logger.Debug("sweep event", "removed", len(msg.event.Removed))
		m.notice = fmt.Sprintf("Removed %d expired %s", len(msg.event.Removed), plural(len(msg.event.Removed), "task"))
		m.clampCursor()
		return m, waitForSweep(m.events)
	case sweepDoneMsg:
		m.events = nil
		return m, nil
	}
	return m, m.updateFocused(msg)
}

func (m *tuiModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Add):
		m.notice = ""
		return m, m.setFocus(focusText)
	case key.Matches(msg, m.keys.Down):
		if m.cursor < m.tasks.Len()-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Toggle):
		if t, ok := m.selected(); ok {
			m.tasks.Toggle(t.ID)
			m.notice = ""
		}
	case key.Matches(msg, m.keys.Delete):
		m.deleteSelected()
	case key.Matches(msg, m.keys.Theme):
		m.toggleTheme()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m *tuiModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m, m.setFocus(focusList)
	case key.Matches(msg, m.keys.NextField):
		if m.focus == focusText {
			return m, m.setFocus(focusDate)
		}
		return m, m.setFocus(focusText)
	case key.Matches(msg, m.keys.Submit):
		m.submit()
		return m, nil
	}
	return m, m.updateFocused(msg)
}

// updateFocused forwards msg to the focused input, if any.
func (m *tuiModel) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.focus {
	case focusText:
		m.text, cmd = m.text.Update(msg)
	case focusDate:
		m.date, cmd = m.date.Update(msg)
	}
	return cmd
}

func (m *tuiModel) setFocus(f focus) tea.Cmd {
	m.focus = f
	m.text.Blur()
	m.date.Blur()
	switch f {
	case focusText:
		return m.text.Focus()
	case focusDate:
		return m.date.Focus()
	}
	return nil
}

func (m *tuiModel) submit() {
	t, ok := m.tasks.AddInput(m.text.Value(), m.date.Value())
	if !ok {
		m.notice = rejectHint
		return
	}
	m.text.Reset()
	m.date.Reset()
	m.setFocus(focusText)
	m.notice = ""
	for i, item := range m.tasks.Tasks() {
		if item.ID == t.ID {
			m.cursor = i
			break
		}
	}
}

func (m *tuiModel) deleteSelected() {
	t, ok := m.selected()
	if !ok {
		return
	}
	if !t.Completed {
		m.notice = deleteHint
		return
	}
	if m.tasks.Delete(t.ID) {
		m.notice = ""
		m.clampCursor()
	}
}

func (m *tuiModel) toggleTheme() {
	dark, err := m.prefs.Toggle()
	if err != nil {
		m.notice = "Theme changed but could not be saved"
	}
	m.logger.Debug("theme toggled", "dark", dark)
	m.styles = newStyles(m.prefs.Theme())
}

func (m *tuiModel) selected() (task.Task, bool) {
	tasks := m.tasks.Tasks()
	if m.cursor < 0 || m.cursor >= len(tasks) {
		return task.Task{}, false
	}
	return tasks[m.cursor], true
}

func (m *tuiModel) clampCursor() {
	n := m.tasks.Len()
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *tuiModel) View() string {
	var b strings.Builder
	m.writeTitle(&b)
	m.writeInputs(&b)
	if m.notice != "" {
		b.WriteString(m.styles.notice.Render(m.notice) + "\n")
	}
	b.WriteString("\n")

	tasks := m.tasks.Tasks()
	if len(tasks) == 0 {
		b.WriteString(m.styles.muted.Render(emptyState) + "\n\n")
	} else {
		for i, t := range tasks {
			b.WriteString(m.formatTask(t, i == m.cursor) + "\n")
		}
		b.WriteString("\n")
	}

	m.writeFooter(&b)
	return b.String()
}

func (m *tuiModel) writeTitle(b *strings.Builder) {
	b.WriteString(m.styles.title.Render(title))
	b.WriteString("   " + m.styles.muted.Render(themeIcon(m.prefs.Theme())) + "\n")
	b.WriteString(m.styles.muted.Render(strings.Repeat("=", len(title))) + "\n\n")
}

func (m *tuiModel) writeInputs(b *strings.Builder) {
	b.WriteString(m.inputLabel("Task:", m.focus == focusText) + " " + m.text.View() + "\n")
	b.WriteString(m.inputLabel("Due: ", m.focus == focusDate) + " " + m.date.View() + "\n")
}

func (m *tuiModel) inputLabel(label string, focused bool) string {
	if focused {
		return m.styles.focused.Render(label)
	}
	return m.styles.input.Render(label)
}

func (m *tuiModel) formatTask(t task.Task, selected bool) string {
	pointer := "  "
	if selected && m.focus == focusList {
		pointer = m.styles.cursor.Render("> ")
	}

	check := "[ ]"
	text := m.styles.text.Render(t.Text)
	if t.Completed {
		check = m.styles.check.Render("[x]")
		text = m.styles.done.Render(t.Text)
	}

	line := pointer + check + " " + text + "  " + m.styles.date.Render(t.Due.Format(m.dateFormat))
	switch c := t.Classify(m.now); c {
	case task.Overdue:
		line += " " + m.styles.overdue.Render(c.Label())
	case task.DueToday:
		line += " " + m.styles.today.Render(c.Label())
	}
	return line
}

func (m *tuiModel) writeFooter(b *strings.Builder) {
	stats := m.tasks.Stats()
	if stats.Total > 0 {
		footer := fmt.Sprintf("%d %s total", stats.Total, plural(stats.Total, "task"))
		if stats.Completed > 0 {
			footer += fmt.Sprintf(" • %d completed", stats.Completed)
		}
		b.WriteString(m.styles.muted.Render(footer) + "\n")
	}
	if m.focus == focusList {
		b.WriteString(m.help.View(listHelp{m.keys}) + "\n")
		if m.help.ShowAll {
			b.WriteString(m.styles.muted.Render(sweepNote) + "\n")
		}
		return
	}
	b.WriteString(m.help.View(inputHelp{m.keys}) + "\n")
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func waitForSweep(ch <-chan sweep.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return sweepDoneMsg{}
		}
		return sweepMsg{event: ev}
	}
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
