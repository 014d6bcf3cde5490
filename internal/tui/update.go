package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/bantamhq/studiodash/internal/backend"
	"github.com/bantamhq/studiodash/internal/dashboard"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.summary = m.renderSummary()
		return m, nil

	case viewMsg:
		m.view = msg.view
		m.summary = m.renderSummary()
		return m, nil

	case locationMsg:
		return m.handleLocation(msg)

	case outcomeMsg:
		return m.handleOutcome(msg)

	case ActionErrorMsg:
		return m.handleActionError(msg)

	case statusMsg:
		return m.setStatus(string(msg))

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.modal == modalInit {
		return m.updateForm(msg)
	}
	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modal {
	case modalHelp:
		return m.handleHelpKey(msg)
	case modalInit:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.closeForm()
			return m.setStatus("Project init cancelled")
		}
		return m.updateForm(msg)
	}
	return m.handleKey(msg)
}

func (m Model) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "?":
		m.modal = modalNone
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.rows()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.modal = modalHelp
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(rows)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Open):
		if m.cursor >= len(rows) {
			return m, nil
		}
		row := rows[m.cursor]
		if row.parent {
			return m, m.goUp()
		}
		if !row.entry.IsDir {
			return m.setStatus(row.entry.Name + " is not a folder")
		}
		return m, m.openEntry(row.entry)

	case key.Matches(msg, m.keys.Back):
		return m, m.goUp()

	case key.Matches(msg, m.keys.Refresh):
		m.statusMsg = "Refreshing..."
		return m, m.refreshAll()

	case key.Matches(msg, m.keys.Init):
		return m.openInitForm()
	}

	return m, nil
}

func (m Model) handleLocation(msg locationMsg) (tea.Model, tea.Cmd) {
	previous := m.location.Path
	m.location = msg.location
	if msg.location.Path != previous {
		m.cursor = 0
	}
	m.cursor = min(m.cursor, max(len(m.rows())-1, 0))
	if m.statusMsg == "Refreshing..." {
		m.statusMsg = ""
	}
	return m, nil
}

func (m Model) handleOutcome(msg outcomeMsg) (tea.Model, tea.Cmd) {
	m.outcome = msg.outcome

	switch o := msg.outcome.(type) {
	case dashboard.Submitting:
		m.statusMsg = ""
		return m, m.spinner.Tick
	case dashboard.Succeeded:
		return m.setStatus("Project created at " + o.ProjectRoot)
	case dashboard.Failed:
		return m.setStatus("Project init failed: " + o.Message)
	}
	return m, nil
}

func (m Model) handleActionError(msg ActionErrorMsg) (tea.Model, tea.Cmd) {
	var f *dashboard.Failure
	if errors.As(msg.Err, &f) {
		return m.setStatus(fmt.Sprintf("Failed to %s: %s", msg.Operation, f.Message))
	}
	if se, ok := backend.AsStatusError(msg.Err); ok {
		return m.setStatus(fmt.Sprintf("Failed to %s: %s", msg.Operation, se.Message()))
	}
	if errors.Is(msg.Err, backend.ErrUnreachable) {
		return m.setStatus(fmt.Sprintf("Failed to %s: backend unreachable", msg.Operation))
	}
	return m.setStatus(fmt.Sprintf("Failed to %s: %v", msg.Operation, msg.Err))
}

func (m Model) setStatus(status string) (tea.Model, tea.Cmd) {
	m.statusMsg = status
	return m, nil
}

func (m Model) openInitForm() (tea.Model, tea.Cmd) {
	if m.dash.Init.Pending() {
		return m.setStatus("Project initialization is already in progress")
	}

	basePath := ""
	if m.view.Document != nil {
		basePath = m.view.Document.ProjectRoot
	}
	m.formValues = newInitFormValues(basePath)
	m.form = newInitForm(m.formValues)
	m.modal = modalInit
	return m, m.form.Init()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.form == nil {
		m.modal = modalNone
		return m, nil
	}

	updated, cmd := m.form.Update(msg)
	if f, ok := updated.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		req := m.formValues.request()
		m.closeForm()
		return m, m.submitInit(req)
	case huh.StateAborted:
		m.closeForm()
		return m.setStatus("Project init cancelled")
	}
	return m, cmd
}

func (m *Model) closeForm() {
	m.modal = modalNone
	m.form = nil
	m.formValues = nil
}

func (m Model) renderSummary() string {
	if m.width == 0 {
		return ""
	}
	width := max(m.layoutSizes().infoWidth-2, 10)
	return renderMarkdown(projectMarkdown(m.view), width)
}

type browserRow struct {
	entry  backend.Entry
	parent bool
}

// rows is the file browser content, with a parent row below the root.
func (m Model) rows() []browserRow {
	rows := make([]browserRow, 0, len(m.location.Entries)+1)
	if m.location.Loaded && !m.location.AtRoot() {
		rows = append(rows, browserRow{parent: true})
	}
	for _, e := range m.location.Entries {
		rows = append(rows, browserRow{entry: e})
	}
	return rows
}
