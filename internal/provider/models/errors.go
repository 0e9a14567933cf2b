package models

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrMissingAPIKey  = errors.New("api key is required")
	ErrContentBlocked = errors.New("content blocked by safety filters")
	ErrEmptyResponse  = errors.New("model returned no text")
	ErrRateLimit      = errors.New("rate limit exceeded")
	ErrAuthentication = errors.New("authentication failed")
)

// ErrorCode classifies a failed model request.
type ErrorCode string

const (
	ErrorCodeContextLength  ErrorCode = "context_length_exceeded"
	ErrorCodeContentBlocked ErrorCode = "content_blocked"
	ErrorCodeEmptyResponse  ErrorCode = "empty_response"
	ErrorCodeRateLimit      ErrorCode = "rate_limit"
	ErrorCodeAuth           ErrorCode = "authentication_failed"
	ErrorCodeNetwork        ErrorCode = "network_error"
	ErrorCodeUnavailable    ErrorCode = "service_unavailable"
	ErrorCodeInvalidRequest ErrorCode = "invalid_request"
)

// sentinels lets errors.Is match a ProviderError by code.
var sentinels = map[ErrorCode]error{
	ErrorCodeContentBlocked: ErrContentBlocked,
	ErrorCodeEmptyResponse:  ErrEmptyResponse,
	ErrorCodeRateLimit:      ErrRateLimit,
	ErrorCodeAuth:           ErrAuthentication,
}

// ProviderError is returned by every provider backend. Generate may return
// partial text together with a ProviderError (ErrorCodeContextLength).
type ProviderError struct {
	Code       ErrorCode
	Message    string
	Underlying error
	Retryable  bool
}

func (e *ProviderError) Error() string {
	if e.Underlying == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Underlying)
}

func (e *ProviderError) Unwrap() error { return e.Underlying }

func (e *ProviderError) Is(target error) bool {
	sentinel, ok := sentinels[e.Code]
	return ok && sentinel == target
}

// FromStatus builds a ProviderError from an HTTP status returned by a model
// API. Statuses it does not recognise are treated as retryable network
// failures.
func FromStatus(status int, message string, underlying error) *ProviderError {
	pe := &ProviderError{Underlying: underlying}
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		pe.Code, pe.Message = ErrorCodeAuth, "authentication failed"
	case status == http.StatusTooManyRequests:
		pe.Code, pe.Message, pe.Retryable = ErrorCodeRateLimit, "rate limit exceeded", true
	case status == http.StatusBadRequest, status == http.StatusNotFound, status == http.StatusUnprocessableEntity:
		pe.Code, pe.Message = ErrorCodeInvalidRequest, "invalid request: "+message
	case status >= http.StatusInternalServerError:
		pe.Code, pe.Message, pe.Retryable = ErrorCodeUnavailable, "service unavailable", true
	default:
		pe.Code, pe.Message, pe.Retryable = ErrorCodeNetwork, "API error: "+message, true
	}
	return pe
}

// IsRetryable reports whether err wraps a retryable ProviderError.
func IsRetryable(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Retryable
}
