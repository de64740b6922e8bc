package errors

import (
	"fmt"
	"net/http"
)

// ErrorKind doubles as the "type" field of the OpenAI error envelope so
// clients classify stub failures exactly like real ones.
type ErrorKind string

const (
	KindInvalidRequest ErrorKind = "invalid_request_error"
	KindAuthentication ErrorKind = "authentication_error"
	KindRateLimit      ErrorKind = "rate_limit_error"
	KindTooLarge       ErrorKind = "request_too_large"
	KindNotFound       ErrorKind = "not_found_error"
	KindInternal       ErrorKind = "server_error"
)

// APIError is the body of an error response.
type APIError struct {
	Kind      ErrorKind `json:"type"`
	Message   string    `json:"message"`
	Param     string    `json:"param,omitempty"`
	Code      string    `json:"code,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
}

// Envelope wraps an APIError the way the OpenAI API does.
type Envelope struct {
	Error *APIError `json:"error"`
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) HTTPStatus() int {
	switch e.Kind {
	case KindInvalidRequest:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindRateLimit:
		return http.StatusTooManyRequests
	case KindTooLarge:
		return http.StatusRequestEntityTooLarge
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// NewMissingParamError reports a required multipart field that was absent.
func NewMissingParamError(param string) *APIError {
	return &APIError{
		Kind:    KindInvalidRequest,
		Message: fmt.Sprintf("you must provide a %s", param),
		Param:   param,
	}
}

func NewInvalidRequestError(message string) *APIError {
	return &APIError{Kind: KindInvalidRequest, Message: message}
}

func NewUnauthorizedError(message string) *APIError {
	return &APIError{Kind: KindAuthentication, Message: message, Code: "invalid_api_key"}
}

func NewTooLargeError(size, limit int64) *APIError {
	return &APIError{
		Kind:    KindTooLarge,
		Message: fmt.Sprintf("maximum content size is %d bytes, received %d", limit, size),
		Param:   "file",
	}
}

func NewNotFoundError(resource string) *APIError {
	return &APIError{Kind: KindNotFound, Message: fmt.Sprintf("%s not found", resource)}
}

func NewInternalError(message string) *APIError {
	return &APIError{Kind: KindInternal, Message: message}
}
