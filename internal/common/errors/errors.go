// Package errors provides standardized error handling for the HTTP API.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

// Client errors
const (
	ErrCodeInvalidRequestBody   ErrorCode = "INVALID_REQUEST_BODY"
	ErrCodePayloadTooLarge      ErrorCode = "PAYLOAD_TOO_LARGE"
	ErrCodeInvalidEnvelope      ErrorCode = "INVALID_ENVELOPE"
	ErrCodeUnsupportedOperation ErrorCode = "UNSUPPORTED_OPERATION"
	ErrCodeValidationFailed     ErrorCode = "VALIDATION_FAILED"
	ErrCodeRouteNotFound        ErrorCode = "ROUTE_NOT_FOUND"
	ErrCodeMethodNotAllowed     ErrorCode = "METHOD_NOT_ALLOWED"
)

// Generative text service errors
const (
	ErrCodeGenAINotConfigured   ErrorCode = "GENAI_NOT_CONFIGURED"
	ErrCodeGenAITransportFailed ErrorCode = "GENAI_TRANSPORT_FAILED"
	ErrCodeGenAIDecodeFailed    ErrorCode = "GENAI_DECODE_FAILED"
	ErrCodeGenAIServiceError    ErrorCode = "GENAI_SERVICE_ERROR"
	ErrCodeGenAITimeout         ErrorCode = "GENAI_TIMEOUT"
)

const ErrCodeInternal ErrorCode = "INTERNAL_ERROR"

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// ==========================
// 2. Error Constructors
// ==========================

// NewInvalidRequestBodyError reports a body that is not a JSON object.
func NewInvalidRequestBodyError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRequestBody,
		Message:   "Request body must be a JSON object",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewPayloadTooLargeError(limit int64) *StandardError {
	return &StandardError{
		Code:      ErrCodePayloadTooLarge,
		Message:   "Request body too large",
		Details:   fmt.Sprintf("limit: %d bytes", limit),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidEnvelopeError reports a body that does not carry exactly one key.
func NewInvalidEnvelopeError(keyCount int) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidEnvelope,
		Message:   "Request must contain exactly one operation key",
		Details:   fmt.Sprintf("keys: %d", keyCount),
		Retryable: false,
		Metadata:  map[string]interface{}{"keyCount": keyCount},
		Timestamp: time.Now().UTC(),
	}
}

func NewUnsupportedOperationError(key string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnsupportedOperation,
		Message:   "Unsupported operation",
		Details:   fmt.Sprintf("key: %s", key),
		Retryable: false,
		Metadata:  map[string]interface{}{"operation": key},
		Timestamp: time.Now().UTC(),
	}
}

// NewValidationFailedError reports an operation value that failed its schema or semantic checks.
func NewValidationFailedError(operation string, messages []string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Operation input validation failed",
		Details:   strings.Join(messages, "; "),
		Retryable: false,
		Metadata:  map[string]interface{}{"operation": operation},
		Timestamp: time.Now().UTC(),
	}
}

func NewRouteNotFoundError(path string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRouteNotFound,
		Message:   "Route not found",
		Details:   fmt.Sprintf("path: %s", path),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewMethodNotAllowedError(method, path string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMethodNotAllowed,
		Message:   "Method not allowed",
		Details:   fmt.Sprintf("method: %s, path: %s", method, path),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewGenAINotConfiguredError() *StandardError {
	return &StandardError{
		Code:      ErrCodeGenAINotConfigured,
		Message:   "Generative text service is not configured",
		Details:   "GEMINI_API_KEY is empty",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewGenAITransportError reports a failure to reach the generative text service.
func NewGenAITransportError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeGenAITransportFailed,
		Message:   "Generative text service request failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewGenAIDecodeError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeGenAIDecodeFailed,
		Message:   "Generative text service returned an unparseable body",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewGenAIServiceError reports a non-2xx status or an embedded error object.
func NewGenAIServiceError(statusCode int, message string) *StandardError {
	return &StandardError{
		Code:      ErrCodeGenAIServiceError,
		Message:   "Generative text service reported an error",
		Details:   fmt.Sprintf("status: %d, error: %s", statusCode, message),
		Retryable: statusCode == http.StatusTooManyRequests || statusCode >= 500,
		Metadata:  map[string]interface{}{"upstreamStatus": statusCode},
		Timestamp: time.Now().UTC(),
	}
}

func NewGenAITimeoutError(timeout time.Duration) *StandardError {
	return &StandardError{
		Code:      ErrCodeGenAITimeout,
		Message:   "Generative text service timeout",
		Details:   fmt.Sprintf("call exceeded %s", timeout),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewInternalError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Error Conversion to HTTP
// ==========================

// HTTPStatusMapping maps internal error codes to response status codes.
var HTTPStatusMapping = map[ErrorCode]int{
	ErrCodeInvalidRequestBody:   http.StatusBadRequest,
	ErrCodePayloadTooLarge:      http.StatusRequestEntityTooLarge,
	ErrCodeInvalidEnvelope:      http.StatusBadRequest,
	ErrCodeUnsupportedOperation: http.StatusBadRequest,
	ErrCodeValidationFailed:     http.StatusBadRequest,
	ErrCodeRouteNotFound:        http.StatusNotFound,
	ErrCodeMethodNotAllowed:     http.StatusMethodNotAllowed,
	ErrCodeGenAINotConfigured:   http.StatusInternalServerError,
	ErrCodeGenAITransportFailed: http.StatusInternalServerError,
	ErrCodeGenAIDecodeFailed:    http.StatusInternalServerError,
	ErrCodeGenAIServiceError:    http.StatusInternalServerError,
	ErrCodeGenAITimeout:         http.StatusInternalServerError,
	ErrCodeInternal:             http.StatusInternalServerError,
}

// HTTPStatus returns the response status for an error code; unknown codes are 500.
func HTTPStatus(code ErrorCode) int {
	if status, ok := HTTPStatusMapping[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// Normalize converts any error into a *StandardError.
func Normalize(err error) *StandardError {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	internal := NewInternalError(err.Error())
	internal.cause = err
	return internal
}

// ==========================
// 4. Utility Functions
// ==========================

// IsClientError reports whether the code is caused by the caller's request.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatus(code)
	return status >= 400 && status < 500
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	switch {
	case IsClientError(code):
		return "CLIENT"
	case strings.HasPrefix(string(code), "GENAI"):
		return "UPSTREAM"
	default:
		return "INTERNAL"
	}
}
