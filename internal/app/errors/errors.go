package errors

import (
	stderrors "errors"
	"fmt"
)

// Common error types
var (
	// Configuration errors
	ErrMissingAPIKey = New("API key is required")
	ErrInvalidAPIKey = New("invalid API key format")
	ErrInvalidConfig = New("invalid configuration")

	// Provider errors
	ErrProviderNotFound = New("provider not found")
	ErrRemoteAPI        = New("remote transcription failed")

	// File errors
	ErrFileNotFound     = New("file not found")
	ErrFileWriteFailed  = New("file write failed")
	ErrNoEligibleFiles  = New("no eligible files found")
	ErrUnsupportedInput = New("unsupported input")

	// Transcoding errors
	ErrEngine        = New("transcoding engine error")
	ErrEngineMissing = New("transcoding engine not installed")

	// Storage errors
	ErrStorage = New("storage error")
)

// Error represents a standardized error
type Error struct {
	message string
	cause   error
	kind    *Error
}

// New creates a new error
func New(message string) *Error {
	return &Error{message: message}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: message,
		cause:   err,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: fmt.Sprintf(format, args...),
		cause:   err,
	}
}

// Kind builds an error that matches the sentinel kind with errors.Is while
// keeping its own message.
func Kind(kind *Error, format string, args ...interface{}) error {
	return &Error{message: fmt.Sprintf(format, args...), kind: kind}
}

// KindWrap is Kind with an underlying cause.
func KindWrap(kind *Error, cause error, format string, args ...interface{}) error {
	return &Error{message: fmt.Sprintf(format, args...), cause: cause, kind: kind}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// Is checks if the error matches target
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if e.kind != nil && e.kind.Is(t) {
		return true
	}
	return e.message == t.message
}

// Helper functions for common patterns

// RequiredField returns an ErrInvalidConfig error naming the missing field.
func RequiredField(field string) error {
	return Kind(ErrInvalidConfig, "%s is required", field)
}

// InvalidField returns an error for invalid field values
func InvalidField(field string, reason string) error {
	return Wrapf(ErrInvalidConfig, "%s is invalid: %s", field, reason)
}

// IsValidationError reports whether err comes from bad input on the command
// line, the settings file or the environment rather than from a failed run.
func IsValidationError(err error) bool {
	return stderrors.Is(err, ErrInvalidConfig) ||
		stderrors.Is(err, ErrInvalidAPIKey) ||
		stderrors.Is(err, ErrMissingAPIKey) ||
		stderrors.Is(err, ErrProviderNotFound)
}
