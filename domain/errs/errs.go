// Package errs defines the error taxonomy shared by capture, collation and
// the pipeline. Match with errors.Is; concrete errors wrap these sentinels.
package errs

import "errors"

var (
	// ErrInvalidConfiguration rejects a run before any side effect.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrCaptureFailure marks a single page that could not be grabbed or saved.
	ErrCaptureFailure = errors.New("capture failure")
	// ErrNoInputFound means no file matched the input pattern.
	ErrNoInputFound = errors.New("no input found")
	// ErrNoUsableInput means files matched but none could be decoded.
	ErrNoUsableInput = errors.New("no usable input")
	// ErrDecodeFailure marks a single image that was skipped.
	ErrDecodeFailure = errors.New("decode failure")
	// ErrWriteFailure is fatal for the document write.
	ErrWriteFailure = errors.New("write failure")
	// ErrCleanupFailure marks an intermediate file that could not be removed.
	ErrCleanupFailure = errors.New("cleanup failure")
	// ErrRunInProgress rejects a second concurrent run.
	ErrRunInProgress = errors.New("run already in progress")
	// ErrCancelled reports cooperative cancellation.
	ErrCancelled = errors.New("cancelled")
)
