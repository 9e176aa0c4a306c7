// Package errors provides sentinel errors and exit codes for the fyg CLI.
package errors

import (
	"fmt"
	"sort"
	"strings"
)

// DetailError is an error rendered as a headline, optional location and
// field lines, the message, and a hint.
type DetailError struct {
	// Type is the error category, e.g. "invalid manifest" (required).
	Type string

	// Message is the specific description (required).
	Message string

	// Location is a file path, optionally suffixed with :line:column.
	Location string

	// Field is the dotted manifest key path, e.g. "targets.jvm.enabled".
	Field string

	// Context holds extra key-value lines, printed in key order.
	Context map[string]string

	// Hint tells the user what to do next.
	Hint string

	// Cause is the underlying error. Exit codes are derived from it.
	Cause error
}

// Error implements the error interface.
func (e *DetailError) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Error: %s\n", e.Type)
	if e.Location != "" {
		fmt.Fprintf(&b, "  Location: %s\n", e.Location)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, "  Field: %s\n", e.Field)
	}

	keys := make([]string, 0, len(e.Context))
	for k := range e.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "  %s: %s\n", k, e.Context[k])
	}

	fmt.Fprintf(&b, "\n  %s\n", e.Message)
	if e.Hint != "" {
		fmt.Fprintf(&b, "\nHint: %s\n", e.Hint)
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *DetailError) Unwrap() error {
	return e.Cause
}

// NewValidationError reports invalid input: a bad flag value, name, or
// manifest key.
func NewValidationError(message, location, field, hint string) error {
	return &DetailError{
		Type:     "validation failed",
		Message:  message,
		Location: location,
		Field:    field,
		Hint:     hint,
		Cause:    ErrValidation,
	}
}

// NewExistsError reports that a file a command would create is already
// present.
func NewExistsError(kind, location, hint string) error {
	return &DetailError{
		Type:     kind + " already exists",
		Message:  location + " already exists",
		Location: location,
		Hint:     hint,
		Cause:    ErrExists,
	}
}

// NewNotFoundError reports a missing manifest or file. cause, when non-nil,
// is kept alongside ErrNotFound.
func NewNotFoundError(kind, message, location string, cause error) error {
	return &DetailError{
		Type:     kind,
		Message:  message,
		Location: location,
		Cause:    withSentinel(cause, ErrNotFound),
	}
}

// NewPermissionError reports a filesystem permission failure on location.
func NewPermissionError(message, location, hint string, cause error) error {
	return &DetailError{
		Type:     "permission denied",
		Message:  message,
		Location: location,
		Hint:     hint,
		Cause:    withSentinel(cause, ErrPermission),
	}
}

// Wrap wraps an error with a sentinel error type.
func Wrap(sentinel error, message string) error {
	return fmt.Errorf("%s: %w", message, sentinel)
}

func withSentinel(cause, sentinel error) error {
	if cause == nil {
		return sentinel
	}
	return fmt.Errorf("%w: %w", sentinel, cause)
}
