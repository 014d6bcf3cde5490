package tui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bantamhq/studiodash/internal/backend"
	"github.com/bantamhq/studiodash/internal/dashboard"
)

type stubBackend struct{}

func (stubBackend) DocumentState(context.Context) (*backend.DocumentState, error) {
	return &backend.DocumentState{}, nil
}

func (stubBackend) ProjectInfo(context.Context) (*backend.ProjectInfo, error) {
	return &backend.ProjectInfo{}, nil
}

func (stubBackend) ListFiles(_ context.Context, path string) (*backend.Listing, error) {
	return &backend.Listing{Path: path}, nil
}

func (stubBackend) InitProject(context.Context, backend.InitRequest) (*backend.InitResponse, error) {
	return &backend.InitResponse{Success: true}, nil
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	m := NewModel(dashboard.New(stubBackend{}), "http://127.0.0.1:5000")
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return updated.(Model)
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	model, ok := updated.(Model)
	require.True(t, ok)
	return model
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func sampleLocation() dashboard.Location {
	return dashboard.Location{
		Path:   "shots",
		Loaded: true,
		Entries: []backend.Entry{
			{Name: "010", Path: "shots/010", IsDir: true},
			{Name: "notes.txt", Path: "shots/notes.txt", Size: 2048},
		},
	}
}

func TestLocationAddsParentRow(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, locationMsg{sampleLocation()})

	rows := m.rows()
	require.Len(t, rows, 3)
	assert.True(t, rows[0].parent)
	assert.Equal(t, "010", rows[1].entry.Name)

	m = send(t, m, locationMsg{dashboard.Location{Path: "", Loaded: true}})
	assert.Empty(t, m.rows())
}

func TestCursorMovesWithinRows(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, locationMsg{sampleLocation()})

	for range 5 {
		m = send(t, m, keyRune('j'))
	}
	assert.Equal(t, 2, m.cursor)

	m = send(t, m, keyRune('k'))
	assert.Equal(t, 1, m.cursor)

	m = send(t, m, locationMsg{dashboard.Location{Path: "other", Loaded: true}})
	assert.Equal(t, 0, m.cursor)
}

func TestOpenFileSetsStatus(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, locationMsg{sampleLocation()})
	m = send(t, m, keyRune('j'))
	m = send(t, m, keyRune('j'))

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, "notes.txt is not a folder", updated.(Model).statusMsg)
}

func TestOutcomeUpdatesStatus(t *testing.T) {
	m := newTestModel(t)

	m = send(t, m, outcomeMsg{dashboard.Failed{ID: "1", Message: "duplicate code"}})
	assert.Equal(t, "Project init failed: duplicate code", m.statusMsg)

	m = send(t, m, outcomeMsg{dashboard.Succeeded{ID: "2", ProjectRoot: "/x/proj"}})
	assert.Equal(t, "Project created at /x/proj", m.statusMsg)
}

func TestProjectMarkdown(t *testing.T) {
	missing := dashboard.View{InfoErr: &dashboard.Failure{Kind: dashboard.FailureRejected, Message: "no project found"}}
	assert.Contains(t, projectMarkdown(missing), "No project found")

	down := dashboard.View{InfoErr: &dashboard.Failure{Kind: dashboard.FailureUnreachable, Message: "connection refused"}}
	assert.Contains(t, projectMarkdown(down), "Backend unreachable")

	info := dashboard.View{Info: &backend.ProjectInfo{
		ProjectRoot: "/x/proj",
		Metadata: &backend.ProjectMetadata{
			Project: backend.ProjectSection{Code: "proj", Type: "short_film"},
			Author:  backend.AuthorSection{Name: "Ada", Studio: "North"},
		},
	}}
	md := projectMarkdown(info)
	assert.Contains(t, md, "# proj")
	assert.Contains(t, md, "Short film")
	assert.Contains(t, md, "/x/proj")
}

func TestViewShowsConnectionBadge(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, viewMsg{dashboard.View{
		InfoErr: &dashboard.Failure{Kind: dashboard.FailureUnreachable, Message: "connection refused"},
	}})

	assert.Contains(t, m.View(), "unreachable")
}

func TestInitFormValuesRequest(t *testing.T) {
	v := newInitFormValues(" /projects ")
	v.projectCode = "my_short "
	v.authorName = "Ada"
	v.studio = "North"

	req := v.request()
	assert.Equal(t, "/projects", req.BasePath)
	assert.Equal(t, "my_short", req.ProjectCode)
	assert.Equal(t, backend.ProjectSingleShot, req.ProjectType)
	require.NoError(t, req.Validate())
}

type recordingBackend struct {
	stubBackend

	mu  sync.Mutex
	got []backend.InitRequest
}

func (r *recordingBackend) InitProject(_ context.Context, req backend.InitRequest) (*backend.InitResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, req)
	return &backend.InitResponse{Success: true, ProjectRoot: "/projects/wing_it"}, nil
}

func TestSubmitInitSendsCodeAsTyped(t *testing.T) {
	rec := &recordingBackend{}
	d := dashboard.New(rec, dashboard.WithSettleDelay(time.Hour))
	t.Cleanup(d.Deactivate)
	m := NewModel(d, "http://127.0.0.1:5000")

	v := newInitFormValues("/projects")
	v.projectCode = "Wing-It"

	msg := m.submitInit(v.request())()
	assert.Nil(t, msg)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	require.Len(t, rec.got, 1)
	assert.Equal(t, "Wing-It", rec.got[0].ProjectCode)
	assert.Empty(t, rec.got[0].AuthorName)
	assert.Empty(t, rec.got[0].Studio)
}

func TestCodeHint(t *testing.T) {
	assert.Equal(t, "Stored as wing_it", codeHint("Wing-It"))
	assert.Equal(t, "Short identifier for the project folder", codeHint("wing_it"))
	assert.Equal(t, "Short identifier for the project folder", codeHint(""))
}

func TestNavResultIgnoresSuperseded(t *testing.T) {
	assert.Nil(t, navResult("refresh files", nil))
	assert.Nil(t, navResult("refresh files", dashboard.ErrSuperseded))

	err := errors.New("connection refused")
	msg, ok := navResult("refresh files", err).(ActionErrorMsg)
	require.True(t, ok)
	assert.Equal(t, "refresh files", msg.Operation)
	assert.ErrorIs(t, msg.Err, err)
}
