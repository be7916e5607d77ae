// Package errors provides error handling for rglue.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Hints and details for user-facing diagnostics
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "failed to do something")
//	}
//
//	// Check errors
//	if errors.Is(err, errors.ErrOverwriteUnsafe) {
//	    // handle unsafe target
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is     = crdb.Is
	IsAny  = crdb.IsAny
	As     = crdb.As
	Unwrap = crdb.Unwrap
)

// Sentinel errors for the generation run. Wrap these with errors.Wrap()
// to add the offending path while preserving the type for errors.Is().
var (
	// ErrOverwriteUnsafe indicates a generator's target file exists, is
	// non-empty, and does not carry the generator token marking it as a
	// previous rglue output. Fatal: the run aborts before writing anything.
	ErrOverwriteUnsafe = New("file exists and is not safe to overwrite")

	// ErrFileIO indicates an open/read/write failure on a generator target.
	// Fatal: the run aborts; rglue never retries file operations.
	ErrFileIO = New("file i/o error")
)

// IsOverwriteUnsafe checks if an error is or wraps ErrOverwriteUnsafe.
func IsOverwriteUnsafe(err error) bool {
	return err != nil && Is(err, ErrOverwriteUnsafe)
}

// IsFileIO checks if an error is or wraps ErrFileIO.
func IsFileIO(err error) bool {
	return err != nil && Is(err, ErrFileIO)
}

// NewOverwriteUnsafe creates an overwrite-unsafe error naming the target path.
func NewOverwriteUnsafe(path string) error {
	return Wrapf(ErrOverwriteUnsafe, "%s", path)
}

// WrapFileIO wraps an underlying i/o failure as a fatal file error naming the path.
func WrapFileIO(err error, path string) error {
	return Wrapf(Wrap(ErrFileIO, err.Error()), "%s", path)
}
