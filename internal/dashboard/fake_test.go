package dashboard

import (
	"context"
	"errors"
	"sync"

	"github.com/bantamhq/studiodash/internal/backend"
)

var errRefused = &backend.TransportError{Op: "fake", Err: errors.New("connection refused")}

type fakeBackend struct {
	mu        sync.Mutex
	docCalls  int
	infoCalls int
	initCalls int
	listCalls []string

	docFn  func(ctx context.Context) (*backend.DocumentState, error)
	infoFn func(ctx context.Context) (*backend.ProjectInfo, error)
	listFn func(ctx context.Context, path string) (*backend.Listing, error)
	initFn func(ctx context.Context, req backend.InitRequest) (*backend.InitResponse, error)
}

func (f *fakeBackend) DocumentState(ctx context.Context) (*backend.DocumentState, error) {
	f.mu.Lock()
	f.docCalls++
	fn := f.docFn
	f.mu.Unlock()
	if fn == nil {
		return &backend.DocumentState{Filename: "shot.blend", ProjectRoot: "/x/proj"}, nil
	}
	return fn(ctx)
}

func (f *fakeBackend) ProjectInfo(ctx context.Context) (*backend.ProjectInfo, error) {
	f.mu.Lock()
	f.infoCalls++
	fn := f.infoFn
	f.mu.Unlock()
	if fn == nil {
		return &backend.ProjectInfo{ProjectRoot: "/x/proj", Exists: true}, nil
	}
	return fn(ctx)
}

func (f *fakeBackend) ListFiles(ctx context.Context, path string) (*backend.Listing, error) {
	f.mu.Lock()
	f.listCalls = append(f.listCalls, path)
	fn := f.listFn
	f.mu.Unlock()
	if fn == nil {
		return dirListing(path), nil
	}
	return fn(ctx, path)
}

func (f *fakeBackend) InitProject(ctx context.Context, req backend.InitRequest) (*backend.InitResponse, error) {
	f.mu.Lock()
	f.initCalls++
	fn := f.initFn
	f.mu.Unlock()
	if fn == nil {
		return &backend.InitResponse{Success: true, ProjectRoot: "/x/proj"}, nil
	}
	return fn(ctx, req)
}

func (f *fakeBackend) setInfo(fn func(ctx context.Context) (*backend.ProjectInfo, error)) {
	f.mu.Lock()
	f.infoFn = fn
	f.mu.Unlock()
}

func (f *fakeBackend) counts() (doc, info, init int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.docCalls, f.infoCalls, f.initCalls
}

func (f *fakeBackend) lists() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.listCalls...)
}

// dirListing serves one subdirectory named "sub" and one file per level.
func dirListing(path string) *backend.Listing {
	join := func(name string) string {
		if path == "" {
			return name
		}
		return path + "/" + name
	}
	return &backend.Listing{
		Path: path,
		Files: []backend.Entry{
			{Name: "sub", Path: join("sub"), IsDir: true},
			{Name: "notes.txt", Path: join("notes.txt"), Size: 12},
		},
	}
}
