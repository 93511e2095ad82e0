// Package errors defines the failure kinds that abort an envman operation.
//
// Only filesystem failures abort an operation. Template lines that do not
// parse, validation problems and per-line cipher failures are reported as
// data by their packages and never surface here.
package errors

import (
	"io/fs"

	crdberrors "github.com/cockroachdb/errors"
)

var (
	// ErrIO marks read or write failures on templates and env files.
	ErrIO = crdberrors.New("i/o failure")

	// ErrMissingFile marks failures caused by a file that does not exist.
	// The CLI checks for it before invoking an operation.
	ErrMissingFile = crdberrors.New("file not found")
)

// IO wraps err as an I/O failure for the given operation and path. A
// not-exist cause is additionally marked with ErrMissingFile.
func IO(err error, op, path string) error {
	if err == nil {
		return nil
	}

	wrapped := crdberrors.Wrapf(err, "%s %s", op, path)
	if crdberrors.Is(err, fs.ErrNotExist) {
		wrapped = crdberrors.Mark(wrapped, ErrMissingFile)
	}
	return crdberrors.Mark(wrapped, ErrIO)
}

// IsIO reports whether err is an I/O failure.
func IsIO(err error) bool {
	return crdberrors.Is(err, ErrIO)
}

// IsMissingFile reports whether err was caused by a missing file.
func IsMissingFile(err error) bool {
	return crdberrors.Is(err, ErrMissingFile)
}
