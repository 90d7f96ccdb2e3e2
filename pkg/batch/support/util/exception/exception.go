// Package exception provides the custom error type used throughout the Riptide
// configuration toolkit. Every failure raised while loading, resolving, or
// registering a job definition is a construction-time error: it aborts the load
// and is never downgraded to a warning or retried.
package exception

import (
	"errors"
	"fmt"
	"runtime"
)

// BatchError is the error type raised by the configuration layer.
// It holds the module where the error occurred, a message, the wrapped
// original error, and the stack trace captured at construction.
type BatchError struct {
	// Module indicates the module where the error occurred (e.g., "jobxml", "transition", "registry").
	Module string
	// Message is a concise description of the error.
	Message string
	// OriginalErr is the wrapped original error.
	OriginalErr error
	// StackTrace is the stack trace at the time of the error (for debugging).
	StackTrace string
}

// NewBatchError creates a new BatchError instance.
// module: The module where the error occurred.
// message: The error message.
// originalErr: The original error to wrap, or nil.
// Returns: A new BatchError instance.
func NewBatchError(module, message string, originalErr error) *BatchError {
	return &BatchError{
		Module:      module,
		Message:     message,
		OriginalErr: originalErr,
		StackTrace:  captureStack(),
	}
}

// NewBatchErrorf creates a new BatchError instance using a format string.
// If the final variadic argument is an error it is extracted and wrapped as
// the original error; the remaining arguments are used for fmt.Sprintf.
//
// Examples:
// NewBatchErrorf("jobxml", "failed to decode definition '%s'", path, err)
// -> message: "failed to decode definition '<path>'", originalErr: err
func NewBatchErrorf(module, format string, a ...interface{}) *BatchError {
	var originalErr error
	args := a

	if len(args) > 0 {
		if err, ok := args[len(args)-1].(error); ok {
			originalErr = err
			args = args[:len(args)-1]
		}
	}

	return &BatchError{
		Module:      module,
		Message:     fmt.Sprintf(format, args...),
		OriginalErr: originalErr,
		StackTrace:  captureStack(),
	}
}

// captureStack records the calling goroutine's stack for later debugging.
func captureStack() string {
	buf := make([]byte, 2048)
	n := runtime.Stack(buf, false)
	return string(buf[:n])
}

// Error implements the error interface.
// It returns the error's module, message, and the string representation of the original error.
func (e *BatchError) Error() string {
	if e.OriginalErr != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Module, e.Message, e.OriginalErr)
	}
	return fmt.Sprintf("[%s] %s", e.Module, e.Message)
}

// Unwrap returns the original error for errors.Unwrap.
func (e *BatchError) Unwrap() error {
	return e.OriginalErr
}

// IsBatchError determines if the given error is of type BatchError.
// err: The error to check.
// Returns: true if it is a BatchError, false otherwise.
func IsBatchError(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(*BatchError)
	return ok
}

// ExtractErrorMessage extracts the error message string from an error.
// For BatchError, it returns the cleaner Message field.
// Otherwise, it returns the standard Error() string.
// err: The error from which to extract the message.
// Returns: The error message string.
func ExtractErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	if be, ok := err.(*BatchError); ok {
		return be.Message
	}
	return err.Error()
}

// ModuleOf returns the module tag of the innermost BatchError in the chain,
// or "unknown" when the error carries none. Useful as a low-cardinality label
// on failure metrics.
func ModuleOf(err error) string {
	module := "unknown"
	for err != nil {
		if be, ok := err.(*BatchError); ok {
			module = be.Module
			err = be.OriginalErr
			continue
		}
		err = errors.Unwrap(err)
	}
	return module
}
