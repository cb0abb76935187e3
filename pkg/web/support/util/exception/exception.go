// Package exception provides the error type used across the pipelines web framework.
// Errors are tagged with the module they originate from so that startup diagnostics
// name the failing component ("config", "server", "view", ...).
package exception

import (
	"errors"
	"fmt"
	"runtime"
)

// Sentinel errors. Callers classify failures with errors.Is.
var (
	// ErrAddressInUse reports that the configured listen address is already bound.
	ErrAddressInUse = errors.New("address already in use")
	// ErrInvalidConfig reports a configuration value that failed validation.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrViewNotFound reports a view identifier with no matching template.
	ErrViewNotFound = errors.New("view not found")
	// ErrDuplicateMapping reports two handlers registered for the same method and path.
	ErrDuplicateMapping = errors.New("duplicate request mapping")
)

// AppError is the framework's error type.
// It holds the module where the error occurred, a message, and the wrapped original error.
type AppError struct {
	// Module indicates the module where the error occurred (e.g., "config", "server", "view").
	Module string
	// Message is a concise description of the error.
	Message string
	// OriginalErr is the wrapped original error.
	OriginalErr error
	// StackTrace is the stack trace at the time of the error (for debugging).
	StackTrace string
}

// NewAppError creates a new AppError instance.
func NewAppError(module, message string, originalErr error) *AppError {
	return &AppError{
		Module:      module,
		Message:     message,
		OriginalErr: originalErr,
		StackTrace:  captureStack(),
	}
}

// NewAppErrorf creates a new AppError using a format string.
// If the last argument is an error it is wrapped instead of being formatted.
//
// Example:
//
//	NewAppErrorf("server", "failed to listen on %s", addr, err)
func NewAppErrorf(module, format string, a ...interface{}) *AppError {
	var originalErr error
	args := a
	if len(args) > 0 {
		if err, ok := args[len(args)-1].(error); ok {
			originalErr = err
			args = args[:len(args)-1]
		}
	}
	return &AppError{
		Module:      module,
		Message:     fmt.Sprintf(format, args...),
		OriginalErr: originalErr,
		StackTrace:  captureStack(),
	}
}

func captureStack() string {
	buf := make([]byte, 2048)
	n := runtime.Stack(buf, false)
	return string(buf[:n])
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.OriginalErr != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Module, e.Message, e.OriginalErr)
	}
	return fmt.Sprintf("[%s] %s", e.Module, e.Message)
}

// Unwrap returns the original error for errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.OriginalErr
}

// IsAppError reports whether err, or any error it wraps, is an *AppError.
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// ExtractErrorMessage extracts the error message string from an error.
// For AppError, it returns the cleaner Message field.
// Otherwise, it returns the standard Error() string.
func ExtractErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Message
	}
	return err.Error()
}
