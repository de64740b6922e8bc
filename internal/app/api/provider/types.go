package provider

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"

	apperrors "audio2text/internal/app/errors"
)

// Error codes shared by every remote backend.
const (
	CodeAuthenticationFailed = "authentication_failed"
	CodeRateLimitExceeded    = "rate_limit_exceeded"
	CodeUnsupportedFormat    = "unsupported_format"
	CodeFileTooLarge         = "file_too_large"
	CodeNetworkError         = "network_error"
	CodeAPIError             = "api_error"
)

// TranscriptionError represents provider-specific errors
type TranscriptionError struct {
	Code        string   `json:"code"`
	Message     string   `json:"message"`
	Provider    string   `json:"provider"`
	StatusCode  int      `json:"status_code,omitempty"`
	Retryable   bool     `json:"retryable"`
	Suggestions []string `json:"suggestions,omitempty"`
	Cause       error    `json:"-"`
}

func (e *TranscriptionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (%s): %v", e.Provider, e.Message, e.Code, e.Cause)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Provider, e.Message, e.Code)
}

func (e *TranscriptionError) Unwrap() error {
	return e.Cause
}

// Is makes every TranscriptionError match apperrors.ErrRemoteAPI.
func (e *TranscriptionError) Is(target error) bool {
	return errors.Is(apperrors.ErrRemoteAPI, target)
}

// FromStatus classifies an HTTP failure returned by a remote backend.
func FromStatus(providerName string, status int, detail string, cause error) *TranscriptionError {
	e := &TranscriptionError{Provider: providerName, StatusCode: status, Cause: cause}
	switch status {
	case 401, 403:
		e.Code = CodeAuthenticationFailed
		e.Message = "API key is invalid or lacks access"
		e.Suggestions = []string{"Check the API key environment variable"}
	case 429:
		e.Code = CodeRateLimitExceeded
		e.Message = "rate limit or quota exceeded"
		e.Retryable = true
		e.Suggestions = []string{"Wait a moment and try again", "Check the account quota"}
	case 413:
		e.Code = CodeFileTooLarge
		e.Message = "audio file is too large"
		e.Suggestions = []string{"Convert to a lower bitrate", "Split into smaller chunks"}
	case 400, 415:
		e.Code = CodeUnsupportedFormat
		e.Message = "audio format rejected"
		e.Suggestions = []string{"Convert the file to mp3 with 'a2t convert'"}
	default:
		e.Code = CodeAPIError
		e.Message = fmt.Sprintf("request failed with status %d", status)
		e.Retryable = status >= 500
	}
	if detail != "" {
		e.Message += ": " + detail
	}
	return e
}

// NetworkError wraps a transport failure.
func NetworkError(providerName string, cause error) *TranscriptionError {
	return &TranscriptionError{
		Code:        CodeNetworkError,
		Message:     "could not reach the transcription service",
		Provider:    providerName,
		Retryable:   true,
		Suggestions: []string{"Check network connectivity and the base URL"},
		Cause:       cause,
	}
}

// IsTransportError reports whether err happened below HTTP.
func IsTransportError(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
