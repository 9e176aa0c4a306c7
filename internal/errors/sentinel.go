package errors

import "errors"

// Sentinel errors for known conditions.
var (
	// ErrValidation indicates a manifest or flag value failed validation.
	ErrValidation = errors.New("validation error")

	// ErrPermission indicates insufficient filesystem permissions.
	ErrPermission = errors.New("permission denied")

	// ErrNotFound indicates a manifest, directory, or file was not found.
	ErrNotFound = errors.New("not found")

	// ErrExists indicates the target of a create operation is already present.
	ErrExists = errors.New("already exists")
)
