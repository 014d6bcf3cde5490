package gateway

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bantamhq/studiodash/internal/backend"
)

type recordedRequest struct {
	method    string
	path      string
	rawQuery  string
	body      string
	requestID string
}

type upstream struct {
	mu       sync.Mutex
	requests    []recordedRequest
	status      int
	body        string
	contentType string
}

func (u *upstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	u.mu.Lock()
	u.requests = append(u.requests, recordedRequest{
		method:    r.Method,
		path:      r.URL.Path,
		rawQuery:  r.URL.RawQuery,
		body:      string(body),
		requestID: r.Header.Get(backend.RequestIDHeader),
	})
	status, payload, contentType := u.status, u.body, u.contentType
	u.mu.Unlock()

	if status == 0 {
		status = http.StatusOK
	}
	if payload == "" {
		payload = `{"ok":true}`
	}
	if contentType == "" {
		contentType = "application/json"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	w.Write([]byte(payload))
}

func (u *upstream) last(t *testing.T) recordedRequest {
	t.Helper()
	u.mu.Lock()
	defer u.mu.Unlock()
	require.NotEmpty(t, u.requests)
	return u.requests[len(u.requests)-1]
}

func (u *upstream) count() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.requests)
}

func setup(t *testing.T, up *upstream) *Server {
	t.Helper()
	ts := httptest.NewServer(up)
	t.Cleanup(ts.Close)
	return NewServer(backend.New(ts.URL, 5*time.Second), nil)
}

func serve(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s := setup(t, &upstream{})

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestForwardsStatusAndBody(t *testing.T) {
	up := &upstream{status: http.StatusNotFound, body: `{"detail":"no project found"}`}
	s := setup(t, up)

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/api/project/info", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail":"no project found"}`, rec.Body.String())
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "/api/project/info", up.last(t).path)
}

func TestListFilesForwardsOnlyPath(t *testing.T) {
	up := &upstream{body: `{"path":"shots/010","files":[]}`}
	s := setup(t, up)

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/api/files/list?path=shots%2F010&debug=1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "path=shots%2F010", up.last(t).rawQuery)

	rec = serve(s, httptest.NewRequest(http.MethodGet, "/api/files/list", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, up.last(t).rawQuery)
}

func TestWriteForwardsBodyUnmodified(t *testing.T) {
	up := &upstream{body: `{"success":true,"project_root":"/x/proj"}`}
	s := setup(t, up)

	payload := `{"base_path":"/x","project_code":"proj","project_type":"single_shot"}`
	req := httptest.NewRequest(http.MethodPost, "/api/project/init", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := serve(s, req)

	require.Equal(t, http.StatusOK, rec.Code)
	got := up.last(t)
	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, payload, got.body)
}

func TestWriteRejectsInvalidJSON(t *testing.T) {
	up := &upstream{}
	s := setup(t, up)

	rec := serve(s, httptest.NewRequest(http.MethodPost, "/api/project/state", strings.NewReader("{nope")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, up.count())

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "invalid JSON body", body.Error)
}

func TestUnreachableBackendIsBadGateway(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()
	s := NewServer(backend.New(url, time.Second), nil)

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/api/project/state", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Error)
}

func TestMalformedBackendReplyIsBadGateway(t *testing.T) {
	s := setup(t, &upstream{body: "<html>oops</html>"})

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/api/project/state", nil))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestBackendErrorWithTextBodyPassesThrough(t *testing.T) {
	s := setup(t, &upstream{
		status:      http.StatusInternalServerError,
		body:        "Internal Server Error",
		contentType: "text/plain; charset=utf-8",
	})

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/api/project/info", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "Internal Server Error", rec.Body.String())
}

func TestRequestIDPropagates(t *testing.T) {
	up := &upstream{}
	s := setup(t, up)

	req := httptest.NewRequest(http.MethodGet, "/api/project/state", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	rec := serve(s, req)

	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-Id"))
	assert.Equal(t, "abc-123", up.last(t).requestID)

	rec = serve(s, httptest.NewRequest(http.MethodGet, "/api/project/state", nil))
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
	assert.Equal(t, rec.Header().Get("X-Request-Id"), up.last(t).requestID)
}

func TestUnknownMethodNotForwarded(t *testing.T) {
	up := &upstream{}
	s := setup(t, up)

	rec := serve(s, httptest.NewRequest(http.MethodDelete, "/api/project/state", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Zero(t, up.count())
}
