package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Rule errors
	ErrInvalidPattern ErrorCode = "INVALID_PATTERN"
	ErrRuleInvalid    ErrorCode = "RULE_INVALID"

	// Override errors
	ErrOverrideNotAllowed    ErrorCode = "OVERRIDE_NOT_ALLOWED"
	ErrJustificationRequired ErrorCode = "JUSTIFICATION_REQUIRED"

	// Pipeline errors
	ErrTimeout         ErrorCode = "TIMEOUT"
	ErrPipelineFailure ErrorCode = "PIPELINE_FAILURE"

	// Persistence errors
	ErrStoreLoad ErrorCode = "STORE_LOAD"
	ErrStoreSave ErrorCode = "STORE_SAVE"
)

// FailsafeError represents a structured error with code and details
type FailsafeError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *FailsafeError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *FailsafeError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *FailsafeError) Is(target error) bool {
	var targetErr *FailsafeError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new FailsafeError with the given code and message
func New(code ErrorCode, message string) *FailsafeError {
	return &FailsafeError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new FailsafeError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *FailsafeError {
	return &FailsafeError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a FailsafeError
func Wrap(err error, code ErrorCode, message string) *FailsafeError {
	if err == nil {
		return nil
	}
	return &FailsafeError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *FailsafeError {
	if err == nil {
		return nil
	}
	return &FailsafeError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *FailsafeError) WithDetail(key string, value interface{}) *FailsafeError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var fsErr *FailsafeError
	if errors.As(err, &fsErr) {
		return fsErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a FailsafeError
func GetErrorCode(err error) ErrorCode {
	var fsErr *FailsafeError
	if errors.As(err, &fsErr) {
		return fsErr.Code
	}
	return ErrUnknown
}
