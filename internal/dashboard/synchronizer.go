package dashboard

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/bantamhq/studiodash/internal/backend"
	"github.com/bantamhq/studiodash/internal/metrics"
)

const (
	resourceDocument = "document_state"
	resourceInfo     = "project_info"

	noProjectMessage  = "no project found"
	noDocumentMessage = "document state unavailable"
)

// ErrAlreadyActive is returned when Activate is called on a running
// synchronizer.
var ErrAlreadyActive = errors.New("synchronizer already active")

// StateSource is the part of the backend the synchronizer polls.
type StateSource interface {
	DocumentState(ctx context.Context) (*backend.DocumentState, error)
	ProjectInfo(ctx context.Context) (*backend.ProjectInfo, error)
}

type snapshot[T any] struct {
	value *T
	err   *Failure
	at    time.Time
	done  bool
}

// Synchronizer keeps the document state and project info snapshots fresh.
type Synchronizer struct {
	src      StateSource
	interval time.Duration
	logger   *zap.Logger
	onChange func(View)

	doc      atomic.Pointer[snapshot[backend.DocumentState]]
	info     atomic.Pointer[snapshot[backend.ProjectInfo]]
	docBusy  atomic.Bool
	infoBusy atomic.Bool

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func NewSynchronizer(src StateSource, opts ...Option) *Synchronizer {
	o := buildOptions(opts)
	return &Synchronizer{
		src:      src,
		interval: o.pollInterval,
		logger:   o.logger.Named("sync"),
		onChange: o.onView,
	}
}

// Activate starts polling. Both resources are refreshed immediately and then
// once per interval until Deactivate is called or ctx is cancelled.
func (s *Synchronizer) Activate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return ErrAlreadyActive
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.running = true

	s.wg.Add(1)
	go s.loop(runCtx)

	s.logger.Info("polling started", zap.Duration("interval", s.interval))
	return nil
}

// Deactivate stops polling and waits for in-flight refreshes to finish.
// Results that arrive after Deactivate are discarded. Safe to call more than
// once.
func (s *Synchronizer) Deactivate() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	cancel := s.cancel
	s.running = false
	s.cancel = nil
	s.mu.Unlock()

	cancel()
	s.wg.Wait()
	s.logger.Info("polling stopped")
}

// Active reports whether polling is running.
func (s *Synchronizer) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Synchronizer) loop(ctx context.Context) {
	defer s.wg.Done()

	s.poll(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.poll(ctx)
		}
	}
}

func (s *Synchronizer) poll(ctx context.Context) {
	s.spawn(ctx, &s.docBusy, func() { _ = s.RefreshDocumentState(ctx) })
	s.spawn(ctx, &s.infoBusy, func() { _ = s.RefreshProjectInfo(ctx) })
}

// spawn runs fn unless the previous scheduled refresh of the same resource
// is still outstanding.
func (s *Synchronizer) spawn(ctx context.Context, busy *atomic.Bool, fn func()) {
	if ctx.Err() != nil {
		return
	}
	if !busy.CompareAndSwap(false, true) {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer busy.Store(false)
		fn()
	}()
}

// RefreshDocumentState fetches the open document state once. On failure the
// previous value is kept and the failure is recorded next to it.
func (s *Synchronizer) RefreshDocumentState(ctx context.Context) error {
	state, err := s.src.DocumentState(ctx)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		f := classify(err, noDocumentMessage)
		prev := storeFailure(&s.doc, f)
		s.logFailure(resourceDocument, prev, f)
		metrics.RecordRefresh(resourceDocument, f.Kind.String())
		s.notify()
		return f
	}

	prev := s.doc.Swap(&snapshot[backend.DocumentState]{value: state, at: time.Now(), done: true})
	s.logRecovery(resourceDocument, prev)
	metrics.RecordRefresh(resourceDocument, "ok")
	s.notify()
	return nil
}

// RefreshProjectInfo fetches the project info once. A rejection means the
// backend has no project; a transport failure means it could not be asked.
func (s *Synchronizer) RefreshProjectInfo(ctx context.Context) error {
	info, err := s.src.ProjectInfo(ctx)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		f := classify(err, noProjectMessage)
		prev := storeFailure(&s.info, f)
		s.logFailure(resourceInfo, prev, f)
		metrics.RecordRefresh(resourceInfo, f.Kind.String())
		s.notify()
		return f
	}

	prev := s.info.Swap(&snapshot[backend.ProjectInfo]{value: info, at: time.Now(), done: true})
	s.logRecovery(resourceInfo, prev)
	metrics.RecordRefresh(resourceInfo, "ok")
	s.notify()
	return nil
}

// Snapshot returns the current merged view.
func (s *Synchronizer) Snapshot() View {
	v := View{Loading: true}
	if d := s.doc.Load(); d != nil {
		v.Document = d.value
		v.DocumentErr = d.err
		v.DocumentAt = d.at
	}
	if i := s.info.Load(); i != nil {
		v.Info = i.value
		v.InfoErr = i.err
		v.InfoAt = i.at
		v.Loading = !i.done
	}
	return v
}

func (s *Synchronizer) notify() {
	if s.onChange != nil {
		s.onChange(s.Snapshot())
	}
}

func (s *Synchronizer) logFailure(resource string, prev *Failure, f *Failure) {
	fields := []zap.Field{
		zap.String("resource", resource),
		zap.Stringer("kind", f.Kind),
		zap.String("message", f.Message),
	}
	if f.StatusCode != 0 {
		fields = append(fields, zap.Int("status", f.StatusCode))
	}
	if prev == nil || prev.Kind != f.Kind {
		s.logger.Warn("refresh failed", fields...)
		return
	}
	s.logger.Debug("refresh failed", fields...)
}

func (s *Synchronizer) logRecovery(resource string, prev any) {
	var had *Failure
	switch p := prev.(type) {
	case *snapshot[backend.DocumentState]:
		if p != nil {
			had = p.err
		}
	case *snapshot[backend.ProjectInfo]:
		if p != nil {
			had = p.err
		}
	}
	if had != nil {
		s.logger.Info("refresh recovered", zap.String("resource", resource), zap.Stringer("after", had.Kind))
	}
}

// storeFailure records f while keeping the last good value. It returns the
// failure that was recorded before, if any.
func storeFailure[T any](p *atomic.Pointer[snapshot[T]], f *Failure) *Failure {
	for {
		prev := p.Load()
		next := &snapshot[T]{err: f, done: true}
		var had *Failure
		if prev != nil {
			next.value = prev.value
			next.at = prev.at
			had = prev.err
		}
		if p.CompareAndSwap(prev, next) {
			return had
		}
	}
}
