package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/umx/internal/tasks"
)

// progressMsg wraps one driver progress update as a [tea.Msg].
type progressMsg tasks.ProgressUpdate

// doneMsg signals that the driver closed the progress channel.
type doneMsg struct{}

// Model renders a live progress view for a migration or cleanup run:
// a spinner, the current record message, and running outcome counters.
type Model struct {
	title   string
	spinner spinner.Model
	updates <-chan tasks.ProgressUpdate

	current   tasks.ProgressUpdate
	migrated  int
	existing  int
	skipped   int
	retries   int
	deleted   int
	done      bool
	interrupt bool
}

// NewModel creates a progress view fed by the given driver channel.
func NewModel(title string, updates <-chan tasks.ProgressUpdate) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.title

	return Model{title: title, spinner: s, updates: updates}
}

// Interrupted reports whether the operator quit before the run finished.
func (m Model) Interrupted() bool { return m.interrupt }

// waitForUpdate blocks on the driver channel and converts the next update
// (or channel close) into a message.
func waitForUpdate(updates <-chan tasks.ProgressUpdate) tea.Cmd {
	return func() tea.Msg {
		update, ok := <-updates
		if !ok {
			return doneMsg{}
		}
		return progressMsg(update)
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForUpdate(m.updates))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			m.interrupt = true
			return m, tea.Quit
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case progressMsg:
		m.current = tasks.ProgressUpdate(msg)
		switch m.current.Phase {
		case tasks.Migrated:
			m.migrated++
		case tasks.Duplicate:
			m.existing++
		case tasks.Skipped:
			m.skipped++
		case tasks.Retry:
			m.retries++
		case tasks.DeleteUser:
			m.deleted++
		}
		return m, waitForUpdate(m.updates)

	case doneMsg:
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(styles.title.Render(m.title))
	b.WriteString("\n")

	if m.done {
		b.WriteString(styles.ok.Render("✓ Complete"))
	} else {
		b.WriteString(fmt.Sprintf("%s %s", m.spinner.View(), m.current.Message))
	}
	b.WriteString("\n\n")

	counters := []string{
		styles.ok.Render(fmt.Sprintf("migrated %d", m.migrated)),
		styles.warn.Render(fmt.Sprintf("existing %d", m.existing)),
		styles.err.Render(fmt.Sprintf("failed %d", m.skipped)),
	}
	if m.retries > 0 {
		counters = append(counters, styles.warn.Render(fmt.Sprintf("retries %d", m.retries)))
	}
	if m.deleted > 0 {
		counters = []string{styles.ok.Render(fmt.Sprintf("deleted %d", m.deleted))}
	}

	b.WriteString(strings.Join(counters, "  "))
	b.WriteString("\n")
	b.WriteString(styles.help.Render("q / ctrl+c to quit"))
	b.WriteString("\n")

	return b.String()
}
