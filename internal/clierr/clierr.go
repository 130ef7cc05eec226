// Package clierr defines structured error types for CLI commands.
// Errors carry a machine-readable code, a human-readable message,
// and optional details for script consumption.
package clierr

import (
	"fmt"
	"strconv"
)

// Error code constants — uppercase, underscore-separated, stable across minor versions.
const (
	InvalidPriority   = "INVALID_PRIORITY"
	InvalidDate       = "INVALID_DATE"
	InvalidTaskNumber = "INVALID_TASK_NUMBER"
	IndexOutOfRange   = "INDEX_OUT_OF_RANGE"
	FileReadError     = "FILE_READ_ERROR"
	FileWriteError    = "FILE_WRITE_ERROR"
	InvalidInput      = "INVALID_INPUT"
	NoChanges         = "NO_CHANGES"
	ConfirmationReq   = "CONFIRMATION_REQUIRED"
	ProjectNotFound   = "PROJECT_NOT_FOUND"
	GitError          = "GIT_ERROR"
	NotARepository    = "NOT_A_REPOSITORY"
	RemoteNotFound    = "REMOTE_NOT_FOUND"
	RemoteExists      = "REMOTE_EXISTS"
	InternalError     = "INTERNAL_ERROR"
)

// Error represents a structured CLI error with a machine-readable code.
type Error struct {
	Code    string
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string { return e.Message }

// New creates an Error with the given code and message.
func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an Error with a formatted message.
func Newf(code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error whose message chains an underlying cause.
func Wrap(code string, err error, context string) *Error {
	return &Error{Code: code, Message: context + ": " + err.Error()}
}

// WithDetails returns the error with the given details map attached.
func (e *Error) WithDetails(details map[string]any) *Error {
	e.Details = details
	return e
}

// ExitCode returns 2 for InternalError, 1 for all others.
func (e *Error) ExitCode() int {
	if e.Code == InternalError {
		return 2 //nolint:mnd // exit code 2 for internal errors
	}
	return 1
}

// SilentError signals an exit code without additional output.
// Used by batch operations where results are already written to stdout.
type SilentError struct {
	Code int
}

// Error implements the error interface.
func (e *SilentError) Error() string { return "exit " + strconv.Itoa(e.Code) }
