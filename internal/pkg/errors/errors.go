package errors

import "errors"

var (
	// ErrNotFound is the sentinel for a missing vendor, review, or document.
	ErrNotFound = errors.New("not found")
	// ErrInvalidState marks an operation whose status precondition failed.
	ErrInvalidState = errors.New("invalid state transition")
	// ErrPermissionDenied marks a gate failure (NDA not confirmed). The HTTP
	// layer maps it to 403, distinct from ErrInvalidState's 400.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrNotImplemented marks an operation with no analyzer for its stage.
	ErrNotImplemented = errors.New("not implemented")
)
