package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bantamhq/studiodash/internal/backend"
	"github.com/bantamhq/studiodash/internal/dashboard"
)

// navResult maps a navigation error to a message. A superseded navigation
// is not reported; the later one already moved the cursor.
func navResult(operation string, err error) tea.Msg {
	if err == nil || errors.Is(err, dashboard.ErrSuperseded) {
		return nil
	}
	return ActionErrorMsg{Operation: operation, Err: err}
}

func (m Model) loadRoot() tea.Cmd {
	return func() tea.Msg {
		return navResult("load files", m.dash.LoadRoot(context.Background()))
	}
}

func (m Model) openEntry(entry backend.Entry) tea.Cmd {
	return func() tea.Msg {
		return navResult("open "+entry.Name, m.dash.Nav.Enter(context.Background(), entry))
	}
}

func (m Model) goUp() tea.Cmd {
	return func() tea.Msg {
		moved, err := m.dash.Nav.Up(context.Background())
		if err != nil {
			return navResult("open parent folder", err)
		}
		if !moved {
			return statusMsg("Already at the project root")
		}
		return nil
	}
}

func (m Model) refreshAll() tea.Cmd {
	nav := func() tea.Msg {
		return navResult("refresh files", m.dash.Nav.Refresh(context.Background()))
	}
	doc := func() tea.Msg {
		_ = m.dash.Sync.RefreshDocumentState(context.Background())
		return nil
	}
	info := func() tea.Msg {
		_ = m.dash.Sync.RefreshProjectInfo(context.Background())
		return nil
	}
	return tea.Batch(nav, doc, info)
}

// submitInit runs the workflow. Phase changes reach the model through the
// outcome observer, so only local refusals come back from here.
func (m Model) submitInit(req backend.InitRequest) tea.Cmd {
	return func() tea.Msg {
		if err := req.Validate(); err != nil {
			return ActionErrorMsg{Operation: "initialize project", Err: err}
		}
		_, err := m.dash.Init.Submit(context.Background(), req)
		if errors.Is(err, dashboard.ErrSubmitInFlight) {
			return statusMsg("Project initialization is already in progress")
		}
		if err != nil {
			return ActionErrorMsg{Operation: "initialize project", Err: err}
		}
		return nil
	}
}
