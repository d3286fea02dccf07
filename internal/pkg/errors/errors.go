// Package errors provides the error taxonomy for FleetPulse.
//
// Three failure classes matter to callers:
//   - fetch: a remote read failed; the previous snapshot is kept.
//   - mutation: a remote write failed; the snapshot was never touched.
//   - validation: input rejected before any remote call was made.
//
// Stale cross-domain references are not errors at all: consumers skip
// records whose foreign key no longer resolves.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure scenarios.
var (
	ErrNotFound       = errors.New("not found")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrUnavailable    = errors.New("remote unavailable")
	ErrInvalidInput   = errors.New("invalid input")
	ErrStaleReference = errors.New("stale cross-domain reference")
)

// Kind classifies a SyncError.
type Kind string

const (
	KindFetch      Kind = "fetch"
	KindMutation   Kind = "mutation"
	KindValidation Kind = "validation"
)

// SyncError is a structured error raised by a domain store or the
// remote gateway. It records which domain and operation failed and,
// when the remote answered at all, the HTTP status it returned.
type SyncError struct {
	Kind   Kind
	Domain string // equipment, maintenance, inspections, remarks, tasks
	Op     string // list, create, update, delete
	Status int    // HTTP status from the remote; 0 for transport failures
	Err    error
}

// Error implements the error interface.
func (e *SyncError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s %s/%s: status %d: %v", e.Kind, e.Domain, e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s %s/%s: %v", e.Kind, e.Domain, e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *SyncError) Unwrap() error {
	return e.Err
}

// FetchFailed wraps a failed remote read.
func FetchFailed(domain string, err error) *SyncError {
	return &SyncError{Kind: KindFetch, Domain: domain, Op: "list", Err: err}
}

// MutationFailed wraps a failed remote write.
func MutationFailed(domain, op string, err error) *SyncError {
	return &SyncError{Kind: KindMutation, Domain: domain, Op: op, Err: err}
}

// InvalidInput wraps a validation failure detected before any remote call.
func InvalidInput(domain, op string, err error) *SyncError {
	return &SyncError{
		Kind:   KindValidation,
		Domain: domain,
		Op:     op,
		Err:    fmt.Errorf("%w: %w", ErrInvalidInput, err),
	}
}

// WithStatus attaches the remote HTTP status to the error.
func (e *SyncError) WithStatus(status int) *SyncError {
	if e == nil {
		return nil
	}
	e.Status = status
	return e
}

// AsSyncError checks whether err carries a SyncError and returns it.
func AsSyncError(err error) (*SyncError, bool) {
	var se *SyncError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// IsFetch reports whether err is a fetch failure.
func IsFetch(err error) bool {
	se, ok := AsSyncError(err)
	return ok && se.Kind == KindFetch
}

// IsMutation reports whether err is a mutation failure.
func IsMutation(err error) bool {
	se, ok := AsSyncError(err)
	return ok && se.Kind == KindMutation
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	se, ok := AsSyncError(err)
	return ok && se.Kind == KindValidation
}
