package dashboard

import (
	"time"

	"github.com/bantamhq/studiodash/internal/backend"
)

// FailureKind separates "the backend said no" from "the backend could not
// be asked".
type FailureKind int

const (
	FailureRejected FailureKind = iota + 1
	FailureUnreachable
)

func (k FailureKind) String() string {
	switch k {
	case FailureRejected:
		return "rejected"
	case FailureUnreachable:
		return "unreachable"
	}
	return "unknown"
}

// Failure is the normalized, user-facing form of a failed request.
type Failure struct {
	Kind       FailureKind
	StatusCode int
	Message    string
}

func (f *Failure) Error() string {
	return f.Message
}

// classify converts a backend error into a Failure. fallback is shown for
// rejections that came without a reason.
func classify(err error, fallback string) *Failure {
	if se, ok := backend.AsStatusError(err); ok {
		msg := se.Reason
		if msg == "" {
			msg = fallback
		}
		return &Failure{Kind: FailureRejected, StatusCode: se.StatusCode, Message: msg}
	}
	return &Failure{Kind: FailureUnreachable, Message: err.Error()}
}

// View is the merged, read-only picture of the backend. Values reachable
// from a View are shared between snapshots and must not be modified.
type View struct {
	Document    *backend.DocumentState
	Info        *backend.ProjectInfo
	DocumentErr *Failure
	InfoErr     *Failure

	// Loading is true until the first project info refresh finished.
	Loading bool

	DocumentAt time.Time
	InfoAt     time.Time
}

// ProjectMissing reports that the backend answered but has no project.
func (v View) ProjectMissing() bool {
	return v.InfoErr != nil && v.InfoErr.Kind == FailureRejected
}

// Unreachable reports that the last project info refresh never reached the
// backend.
func (v View) Unreachable() bool {
	return v.InfoErr != nil && v.InfoErr.Kind == FailureUnreachable
}

// Connected reports whether the backend has a document open inside a project.
func (v View) Connected() bool {
	return v.Document != nil && v.Document.ProjectRoot != ""
}

// UpdatedAt is the time of the most recent successful refresh.
func (v View) UpdatedAt() time.Time {
	if v.DocumentAt.After(v.InfoAt) {
		return v.DocumentAt
	}
	return v.InfoAt
}
