package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	oerrors "github.com/fygbuild/fyg/internal/errors"
)

// ErrAlreadyInitialized is returned when a manifest already exists where a
// new one would be created.
var ErrAlreadyInitialized = fmt.Errorf("project already initialized: %w", oerrors.ErrExists)

// FormatError reports malformed manifest text: a syntax error, a missing
// required field, an unknown key, or a value of the wrong shape.
type FormatError struct {
	// File is the manifest path when the text came from disk.
	File string

	// Path is the dotted key path of the offending value, if known.
	Path string

	// Line and Column locate syntax errors (1-based, 0 when unknown).
	Line   int
	Column int

	Message string
	Err     error
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	var b strings.Builder
	if e.File != "" {
		b.WriteString(e.File)
		if e.Line > 0 {
			fmt.Fprintf(&b, ":%d:%d", e.Line, e.Column)
		}
		b.WriteString(": ")
	} else if e.Line > 0 {
		fmt.Fprintf(&b, "line %d, column %d: ", e.Line, e.Column)
	}
	if e.Path != "" {
		b.WriteString(e.Path)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	return b.String()
}

// Location renders file, line and column for display.
func (e *FormatError) Location() string {
	if e.Line == 0 {
		return e.File
	}
	return fmt.Sprintf("%s:%d:%d", e.File, e.Line, e.Column)
}

// Unwrap exposes the cause and the validation sentinel.
func (e *FormatError) Unwrap() []error {
	if e.Err == nil {
		return []error{oerrors.ErrValidation}
	}
	return []error{e.Err, oerrors.ErrValidation}
}

// IOError reports a filesystem failure on a named path.
type IOError struct {
	Op   string
	Path string
	Err  error
}

// Error implements the error interface.
func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap exposes the OS cause plus the matching CLI sentinel, so both
// errors.Is(err, fs.ErrNotExist) and errors.Is(err, oerrors.ErrNotFound) hold.
func (e *IOError) Unwrap() []error {
	switch {
	case errors.Is(e.Err, fs.ErrNotExist):
		return []error{e.Err, oerrors.ErrNotFound}
	case errors.Is(e.Err, fs.ErrPermission):
		return []error{e.Err, oerrors.ErrPermission}
	default:
		return []error{e.Err}
	}
}

func formatErrorf(path, format string, args ...any) *FormatError {
	return &FormatError{Path: path, Message: fmt.Sprintf(format, args...)}
}
