package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/bantamhq/studiodash/internal/backend"
)

var (
	// ErrNotDirectory is returned by Enter for entries that are not directories.
	ErrNotDirectory = errors.New("not a directory")
	// ErrSuperseded is returned by Open when a later navigation was applied
	// first and this listing was dropped.
	ErrSuperseded = errors.New("navigation superseded")
)

// ListingSource lists one level of the remote tree.
type ListingSource interface {
	ListFiles(ctx context.Context, path string) (*backend.Listing, error)
}

// Location is a confirmed directory path and the listing served for it.
type Location struct {
	Path    string
	Entries []backend.Entry
	Loaded  bool
}

func (l Location) AtRoot() bool {
	return l.Path == ""
}

// Navigator is a cursor over the remote directory tree.
type Navigator struct {
	src      ListingSource
	logger   *zap.Logger
	onChange func(Location)

	mu      sync.Mutex
	loc     Location
	issued  uint64
	applied uint64
}

func NewNavigator(src ListingSource, opts ...Option) *Navigator {
	o := buildOptions(opts)
	return &Navigator{
		src:      src,
		logger:   o.logger.Named("nav"),
		onChange: o.onLocation,
	}
}

// Location returns the current path and listing.
func (n *Navigator) Location() Location {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.loc
}

func (n *Navigator) Path() string {
	return n.Location().Path
}

// Open lists path and, on success, moves there. The stored path is the one
// reported by the backend. On failure nothing changes. When several
// navigations overlap, the most recently issued one wins and the others
// return ErrSuperseded. A listing that arrives after ctx is done is dropped.
func (n *Navigator) Open(ctx context.Context, path string) error {
	n.mu.Lock()
	n.issued++
	seq := n.issued
	n.mu.Unlock()

	listing, err := n.src.ListFiles(ctx, path)
	if err != nil {
		n.logger.Debug("list failed", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("list %q: %w", displayPath(path), err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	entries := listing.Files
	if entries == nil {
		entries = []backend.Entry{}
	}
	loc := Location{Path: listing.Path, Entries: entries, Loaded: true}

	n.mu.Lock()
	if seq < n.applied {
		n.mu.Unlock()
		n.logger.Debug("stale listing dropped", zap.String("path", loc.Path))
		return ErrSuperseded
	}
	n.applied = seq
	n.loc = loc
	n.mu.Unlock()

	if n.onChange != nil {
		n.onChange(loc)
	}
	return nil
}

// Enter descends into a directory entry.
func (n *Navigator) Enter(ctx context.Context, entry backend.Entry) error {
	if !entry.IsDir {
		return fmt.Errorf("%s: %w", entry.Name, ErrNotDirectory)
	}
	return n.Open(ctx, entry.Path)
}

// Up moves to the parent directory. It reports false, without contacting the
// backend, when already at the root.
func (n *Navigator) Up(ctx context.Context) (bool, error) {
	current := n.Path()
	if current == "" {
		return false, nil
	}
	return true, n.Open(ctx, ParentPath(current))
}

// Refresh reloads the current directory.
func (n *Navigator) Refresh(ctx context.Context) error {
	return n.Open(ctx, n.Path())
}

// ParentPath drops the last segment of a "/"-separated relative path.
func ParentPath(path string) string {
	segments := strings.FieldsFunc(path, func(r rune) bool { return r == '/' })
	if len(segments) <= 1 {
		return ""
	}
	return strings.Join(segments[:len(segments)-1], "/")
}

func displayPath(path string) string {
	if path == "" {
		return "/"
	}
	return path
}
