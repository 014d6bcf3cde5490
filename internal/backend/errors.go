package backend

import (
	"errors"
	"fmt"
)

// ErrUnreachable matches every transport-level failure: DNS, refused
// connections, timeouts and responses that could not be read or decoded.
var ErrUnreachable = errors.New("backend unreachable")

// TransportError reports that the backend could not be reached or that its
// response was unusable.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrUnreachable
}

// StatusError is a response the backend produced with a non-success status.
// Reason holds the backend's own explanation and is empty when it gave none.
type StatusError struct {
	Op         string
	StatusCode int
	Reason     string
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message())
}

// Message returns the backend reason, falling back to the status text.
func (e *StatusError) Message() string {
	if e.Reason != "" {
		return e.Reason
	}
	return fmt.Sprintf("status %d", e.StatusCode)
}

// AsStatusError unwraps err to a *StatusError.
func AsStatusError(err error) (*StatusError, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
