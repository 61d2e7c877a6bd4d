// Package exception provides the error type used across the Tripwind
// pipeline. It tags failures with the component they came from so that run
// histories and notifications can report a clean message.
package exception

import (
	"fmt"
	"runtime"
	"strings"
)

// PipelineError is the error type raised by pipeline components.
// It carries the originating component, a concise message, the wrapped
// cause, and a flag marking whether a later run may succeed.
type PipelineError struct {
	// Component names the part of the pipeline that failed
	// (e.g. "dataset", "view", "store", "generation", "notify").
	Component string
	// Message is a concise description of the failure.
	Message string
	// Cause is the wrapped original error, if any.
	Cause error
	// retryable marks errors that a subsequent scheduled run may clear.
	retryable bool
	// StackTrace is the stack captured at construction time, for debugging.
	StackTrace string
}

// New creates a PipelineError.
func New(component, message string, cause error, retryable bool) *PipelineError {
	buf := make([]byte, 2048)
	n := runtime.Stack(buf, false)

	return &PipelineError{
		Component:  component,
		Message:    message,
		Cause:      cause,
		retryable:  retryable,
		StackTrace: string(buf[:n]),
	}
}

// Newf creates a PipelineError with a formatted message. The error is not
// retryable; wrap a cause with Errorf when retry semantics matter.
func Newf(component, format string, a ...interface{}) *PipelineError {
	return New(component, fmt.Sprintf(format, a...), nil, false)
}

// Error implements the error interface.
func (e *PipelineError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Component, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Component, e.Message)
}

// Unwrap returns the wrapped cause for errors.Is / errors.As.
func (e *PipelineError) Unwrap() error {
	return e.Cause
}

// IsRetryable reports whether a later run may succeed.
func (e *PipelineError) IsRetryable() bool {
	return e.retryable
}

// IsPipelineError reports whether err is a *PipelineError.
func IsPipelineError(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(*PipelineError)
	return ok
}

// IsTemporary reports whether an error looks transient. A PipelineError's
// retryable flag takes precedence; otherwise common transport failure
// substrings are matched.
func IsTemporary(err error) bool {
	if err == nil {
		return false
	}
	if pe, ok := err.(*PipelineError); ok {
		return pe.IsRetryable()
	}
	errStr := err.Error()
	return strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "EOF")
}

// ExtractErrorMessage returns the cleaner Message field for a PipelineError
// and the full Error() string for anything else.
func ExtractErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	if pe, ok := err.(*PipelineError); ok {
		return pe.Message
	}
	return err.Error()
}
