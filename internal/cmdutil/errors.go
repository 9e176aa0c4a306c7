package cmdutil

import (
	"errors"

	oerrors "github.com/fygbuild/fyg/internal/errors"
	"github.com/fygbuild/fyg/internal/manifest"
	"github.com/fygbuild/fyg/internal/output"
)

// ManifestError converts manifest and filesystem errors into a DetailError
// with a hint. Other errors are returned unchanged.
func ManifestError(err error) error {
	if err == nil {
		return nil
	}

	var detail *oerrors.DetailError
	if errors.As(err, &detail) {
		return err
	}

	var formatErr *manifest.FormatError
	if errors.As(err, &formatErr) {
		return &oerrors.DetailError{
			Type:     "invalid manifest",
			Message:  formatErr.Message,
			Location: formatErr.Location(),
			Field:    formatErr.Path,
			Hint:     "Fix " + manifest.FileName + " and run the command again.",
			Cause:    err,
		}
	}

	if errors.Is(err, manifest.ErrAlreadyInitialized) {
		return &oerrors.DetailError{
			Type:    "project already initialized",
			Message: manifest.FileName + " already exists in this directory",
			Hint:    "Edit the existing " + manifest.FileName + ", or use 'fyg new' to create a project elsewhere.",
			Cause:   err,
		}
	}

	var ioErr *manifest.IOError
	if errors.As(err, &ioErr) {
		switch {
		case errors.Is(err, oerrors.ErrNotFound) && ioErr.Op == "read":
			return oerrors.NewNotFoundError("no manifest",
				"No "+manifest.FileName+" found. Run 'fyg init' first.", ioErr.Path, err)
		case errors.Is(err, oerrors.ErrPermission):
			return oerrors.NewPermissionError(ioErr.Error(), ioErr.Path,
				"Check the permissions of the project directory.", err)
		default:
			return &oerrors.DetailError{
				Type:     "filesystem error",
				Message:  ioErr.Error(),
				Location: ioErr.Path,
				Cause:    err,
			}
		}
	}

	return err
}

// PrintedError logs a DetailError through the package logger and wraps it in
// an ExitError marked as printed, so main only sets the exit code. Other
// errors are returned unchanged.
func PrintedError(err error) error {
	var detail *oerrors.DetailError
	if !errors.As(err, &detail) {
		return err
	}

	var keyvals []any
	if detail.Location != "" {
		keyvals = append(keyvals, "location", detail.Location)
	}
	if detail.Field != "" {
		keyvals = append(keyvals, "field", detail.Field)
	}
	output.Error(detail.Type+": "+detail.Message, keyvals...)
	if detail.Hint != "" {
		output.Info(detail.Hint)
	}

	return &oerrors.ExitError{Err: err, Code: oerrors.ExitCodeFromError(err), Printed: true}
}
