package dashboard

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/bantamhq/studiodash/internal/backend"
	"github.com/bantamhq/studiodash/internal/metrics"
)

const (
	initFailedMessage    = "initialization failed"
	settleRefreshTimeout = 30 * time.Second
)

// ErrSubmitInFlight is returned by Submit while a previous submission is
// pending.
var ErrSubmitInFlight = errors.New("project initialization already in progress")

// InitSubmitter sends the init command.
type InitSubmitter interface {
	InitProject(ctx context.Context, req backend.InitRequest) (*backend.InitResponse, error)
}

// Refresher is run once after a successful init.
type Refresher interface {
	RefreshAfterInit(ctx context.Context)
}

// Outcome is the phase of the init workflow. It is one of Idle, Submitting,
// Succeeded or Failed.
type Outcome interface {
	Phase() string
	outcome()
}

type Idle struct{}

type Submitting struct {
	ID string
}

type Succeeded struct {
	ID          string
	ProjectRoot string
}

type Failed struct {
	ID      string
	Message string
}

func (Idle) Phase() string       { return "idle" }
func (Submitting) Phase() string { return "submitting" }
func (Succeeded) Phase() string  { return "succeeded" }
func (Failed) Phase() string     { return "failed" }

func (Idle) outcome()       {}
func (Submitting) outcome() {}
func (Succeeded) outcome()  {}
func (Failed) outcome()     {}

// Workflow drives project initialization. At most one submission is pending
// at any time.
type Workflow struct {
	src       InitSubmitter
	refresher Refresher
	settle    time.Duration
	logger    *zap.Logger
	observe   func(Outcome)
	newID     func() string

	mu      sync.Mutex
	current Outcome
	timer   *time.Timer
	ctx     context.Context
	cancel  context.CancelFunc
	closed  bool
	pending sync.WaitGroup
}

func NewWorkflow(src InitSubmitter, refresher Refresher, opts ...Option) *Workflow {
	o := buildOptions(opts)
	ctx, cancel := context.WithCancel(context.Background())
	return &Workflow{
		src:       src,
		refresher: refresher,
		settle:    o.settleDelay,
		logger:    o.logger.Named("init"),
		observe:   o.onOutcome,
		newID:     o.newID,
		current:   Idle{},
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Open runs later post-init refreshes under ctx. It drops a refresh scheduled
// under the previous context and re-arms a closed Workflow.
func (w *Workflow) Open(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stopLocked()
	w.ctx, w.cancel = context.WithCancel(ctx)
	w.closed = false
}

// Outcome returns the current phase.
func (w *Workflow) Outcome() Outcome {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// Pending reports whether a submission is in flight.
func (w *Workflow) Pending() bool {
	_, ok := w.Outcome().(Submitting)
	return ok
}

// Submit sends req and blocks until the backend answers. It returns the
// terminal outcome, or ErrSubmitInFlight without contacting the backend when
// a submission is already pending. Backend rejections are reported through
// the Failed outcome, not the error.
func (w *Workflow) Submit(ctx context.Context, req backend.InitRequest) (Outcome, error) {
	w.mu.Lock()
	if _, busy := w.current.(Submitting); busy {
		w.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	id := w.newID()
	w.current = Submitting{ID: id}
	w.mu.Unlock()

	w.emit(Submitting{ID: id})
	logger := w.logger.With(zap.String("submission_id", id), zap.String("project_code", req.ProjectCode))
	logger.Info("submitting project init", zap.String("base_path", req.BasePath), zap.String("project_type", string(req.ProjectType)))

	resp, err := w.src.InitProject(backend.WithRequestID(ctx, id), req)

	var result Outcome
	switch {
	case err != nil:
		result = Failed{ID: id, Message: failureMessage(err)}
	case !resp.Success:
		msg := resp.Reason()
		if msg == "" {
			msg = initFailedMessage
		}
		result = Failed{ID: id, Message: msg}
	default:
		result = Succeeded{ID: id, ProjectRoot: resp.ProjectRoot}
	}

	w.mu.Lock()
	w.current = result
	w.mu.Unlock()

	switch r := result.(type) {
	case Succeeded:
		logger.Info("project initialized", zap.String("project_root", r.ProjectRoot))
		w.scheduleRefresh()
	case Failed:
		logger.Warn("project init failed", zap.String("message", r.Message))
	}
	metrics.RecordInitSubmission(result.Phase())
	w.emit(result)
	return result, nil
}

// Reset returns a terminal outcome to Idle. It has no effect while a
// submission is pending.
func (w *Workflow) Reset() {
	w.mu.Lock()
	if _, busy := w.current.(Submitting); busy {
		w.mu.Unlock()
		return
	}
	w.current = Idle{}
	w.mu.Unlock()
	w.emit(Idle{})
}

// Close cancels a pending or running post-init refresh and waits for it to
// return. Later successes no longer schedule one until Open is called.
func (w *Workflow) Close() {
	w.mu.Lock()
	w.closed = true
	w.stopLocked()
	w.mu.Unlock()

	w.pending.Wait()
}

func (w *Workflow) stopLocked() {
	w.cancel()
	if w.timer != nil {
		if w.timer.Stop() {
			w.pending.Done()
		}
		w.timer = nil
	}
}

func (w *Workflow) scheduleRefresh() {
	if w.refresher == nil {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.timer != nil && w.timer.Stop() {
		w.pending.Done()
	}

	ctx := w.ctx
	w.pending.Add(1)
	var t *time.Timer
	t = time.AfterFunc(w.settle, func() {
		defer w.pending.Done()

		w.mu.Lock()
		if w.timer == t {
			w.timer = nil
		}
		w.mu.Unlock()
		if ctx.Err() != nil {
			return
		}

		refreshCtx, cancel := context.WithTimeout(ctx, settleRefreshTimeout)
		defer cancel()
		w.refresher.RefreshAfterInit(refreshCtx)
	})
	w.timer = t
}

func (w *Workflow) emit(o Outcome) {
	if w.observe != nil {
		w.observe(o)
	}
}

func failureMessage(err error) string {
	if se, ok := backend.AsStatusError(err); ok {
		if se.Reason != "" {
			return se.Reason
		}
		return initFailedMessage
	}
	return initFailedMessage + ": " + err.Error()
}
