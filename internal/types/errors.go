package types

import (
	"errors"
	"fmt"
)

// ErrorCode represents a namespaced error code for toolkit errors.
type ErrorCode string

// Configuration error codes
const (
	CONFIG_LOAD_FAILED       ErrorCode = "CONFIG_LOAD_FAILED"
	CONFIG_PARSE_FAILED      ErrorCode = "CONFIG_PARSE_FAILED"
	CONFIG_VALIDATION_FAILED ErrorCode = "CONFIG_VALIDATION_FAILED"
	CONFIG_KEY_MISSING       ErrorCode = "CONFIG_KEY_MISSING"
)

// Audit trail error codes
const (
	AUDIT_STORE_FAILED  ErrorCode = "AUDIT_STORE_FAILED"
	AUDIT_QUERY_FAILED  ErrorCode = "AUDIT_QUERY_FAILED"
	AUDIT_STORE_CLOSED  ErrorCode = "AUDIT_STORE_CLOSED"
	AUDIT_INVALID_INPUT ErrorCode = "AUDIT_INVALID_INPUT"
)

// Embedding and vector store error codes
const (
	EMBEDDING_FAILED         ErrorCode = "EMBEDDING_FAILED"
	EMBEDDER_INVALID_CONFIG  ErrorCode = "EMBEDDER_INVALID_CONFIG"
	VECTOR_STORE_FAILED      ErrorCode = "VECTOR_STORE_FAILED"
	VECTOR_SEARCH_FAILED     ErrorCode = "VECTOR_SEARCH_FAILED"
	VECTOR_NOT_FOUND         ErrorCode = "VECTOR_NOT_FOUND"
	VECTOR_STORE_UNAVAILABLE ErrorCode = "VECTOR_STORE_UNAVAILABLE"
)

// Validation error codes
const (
	VALIDATION_FAILED        ErrorCode = "VALIDATION_FAILED"
	VALIDATION_EMPTY_CONTENT ErrorCode = "VALIDATION_EMPTY_CONTENT"
)

// Confidence scoring error codes
const (
	CONFIDENCE_NO_SCORES ErrorCode = "CONFIDENCE_NO_SCORES"
)

// ToolkitError represents a structured error with error code, message, and
// optional cause. It supports error wrapping and retryability hints.
type ToolkitError struct {
	Code      ErrorCode
	Message   string
	Retryable bool
	Cause     error
}

// Error implements the error interface.
// Format: "[CODE] message" or "[CODE] message: cause" if cause exists.
func (e *ToolkitError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error for error unwrapping chains.
func (e *ToolkitError) Unwrap() error {
	return e.Cause
}

// Is checks if the target error matches this error by error code.
func (e *ToolkitError) Is(target error) bool {
	var terr *ToolkitError
	if errors.As(target, &terr) {
		return e.Code == terr.Code
	}
	return false
}

// NewError creates a new non-retryable ToolkitError with the given code and message.
func NewError(code ErrorCode, message string) *ToolkitError {
	return &ToolkitError{
		Code:      code,
		Message:   message,
		Retryable: false,
	}
}

// NewRetryableError creates a new retryable ToolkitError.
// Use this for transient errors that may succeed on retry (e.g., network timeouts).
func NewRetryableError(code ErrorCode, message string) *ToolkitError {
	return &ToolkitError{
		Code:      code,
		Message:   message,
		Retryable: true,
	}
}

// WrapError creates a new non-retryable ToolkitError that wraps an existing error.
// The wrapped error is accessible via Unwrap() for error chain inspection.
func WrapError(code ErrorCode, message string, cause error) *ToolkitError {
	return &ToolkitError{
		Code:      code,
		Message:   message,
		Retryable: false,
		Cause:     cause,
	}
}

// WrapRetryableError creates a retryable ToolkitError that wraps an existing error.
func WrapRetryableError(code ErrorCode, message string, cause error) *ToolkitError {
	return &ToolkitError{
		Code:      code,
		Message:   message,
		Retryable: true,
		Cause:     cause,
	}
}

// IsRetryable reports whether err (or any error in its chain) is a
// ToolkitError marked retryable.
func IsRetryable(err error) bool {
	var terr *ToolkitError
	if errors.As(err, &terr) {
		return terr.Retryable
	}
	return false
}
