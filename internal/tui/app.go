package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/bantamhq/studiodash/internal/dashboard"
)

type modalKind int

const (
	modalNone modalKind = iota
	modalHelp
	modalInit
)

type Model struct {
	dash   *dashboard.Dashboard
	server string

	view     dashboard.View
	location dashboard.Location
	outcome  dashboard.Outcome
	cursor   int
	summary  string

	statusMsg string

	modal      modalKind
	form       *huh.Form
	formValues *initFormValues

	spinner spinner.Model
	help    help.Model
	keys    KeyMap
	width   int
	height  int
}

func NewModel(d *dashboard.Dashboard, server string) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorPrimary)

	return Model{
		dash:     d,
		server:   server,
		view:     d.Sync.Snapshot(),
		location: d.Nav.Location(),
		outcome:  d.Init.Outcome(),
		spinner:  s,
		help:     help.New(),
		keys:     DefaultKeyMap,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadRoot())
}

// busy reports whether something the user is waiting on is in progress.
func (m Model) busy() bool {
	if m.view.Loading {
		return true
	}
	_, submitting := m.outcome.(dashboard.Submitting)
	return submitting
}

// Run builds a dashboard over b and runs the TUI on it. Polling runs for as
// long as the program does.
func Run(ctx context.Context, b dashboard.Backend, server string, opts ...dashboard.Option) error {
	var p *tea.Program
	send := func(msg tea.Msg) {
		if p != nil {
			p.Send(msg)
		}
	}

	opts = append(opts,
		dashboard.WithOnView(func(v dashboard.View) { send(viewMsg{v}) }),
		dashboard.WithOnLocation(func(l dashboard.Location) { send(locationMsg{l}) }),
		dashboard.WithOnOutcome(func(o dashboard.Outcome) { send(outcomeMsg{o}) }),
	)
	d := dashboard.New(b, opts...)

	p = tea.NewProgram(
		NewModel(d, server),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if err := d.Activate(ctx); err != nil {
		return err
	}
	defer d.Deactivate()

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
