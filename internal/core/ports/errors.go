package ports

import "errors"

var (
	// ErrNotFound marks an expected absence: an unknown id. It is never a fault.
	ErrNotFound = errors.New("not found")
	// ErrBackendUnavailable marks an unreachable, failing or timed out backend.
	ErrBackendUnavailable = errors.New("backend unavailable")
	// ErrMalformedDocument marks a backend document that does not decode into
	// the expected entity.
	ErrMalformedDocument = errors.New("malformed document")
)
