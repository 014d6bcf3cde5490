// Package dashboard is the state synchronization engine behind the dashboard
// views.
//
// It keeps a local, read-only picture of the backend in sync and lets the
// user act on it:
//
//   - Synchronizer polls the open document state and the project info on a
//     fixed interval. Each resource is an immutable snapshot that is swapped
//     wholesale; a failed refresh keeps the last good value and records why.
//   - Navigator is a cursor over the remote directory tree. It fetches one
//     level at a time and only ever stores a path the backend confirmed,
//     together with the listing served for it.
//   - Workflow runs the one-shot project init command through the phases
//     Idle, Submitting, Succeeded and Failed, and refreshes everything else
//     once the backend has had a moment to settle.
//
// Dashboard wires the three together over a single backend and owns the
// activate/deactivate lifetime. Presentation lives in internal/tui; the
// gateway in internal/gateway exposes the same backend operations over HTTP.
package dashboard
