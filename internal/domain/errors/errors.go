package errors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrEmptySelection = errors.New("selection is empty")
	ErrSubmitInFlight = errors.New("submission already in progress")
	ErrStaleQuery     = errors.New("superseded by a newer query")
)

// FetchError reports a failed list or stats read: transport failure,
// non-2xx status, or an unparseable body. The previously committed page
// stays in place when one of these surfaces.
type FetchError struct {
	Op     string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// MutationError reports a failed create/delete/duplicate/status change.
// Body carries the server response verbatim so callers can surface it.
type MutationError struct {
	Op     string
	Status int
	Body   string
}

func (e *MutationError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Body)
	}
	return fmt.Sprintf("%s: request failed (%d)", e.Op, e.Status)
}

// ValidationError reports a client-side form check failure. It never
// reaches the network.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsStale reports whether err is a discarded stale-query result, either
// the sentinel itself or a cancellation caused by a newer issue.
func IsStale(err error) bool {
	return errors.Is(err, ErrStaleQuery)
}
