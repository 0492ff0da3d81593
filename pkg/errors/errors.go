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
	ErrPermission   ErrorCode = "PERMISSION"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"

	// Link tool errors
	ErrLinkToolNotFound ErrorCode = "LINK_TOOL_NOT_FOUND"
	ErrLinkTool         ErrorCode = "LINK_TOOL"

	// Path errors
	ErrSourceNotFound ErrorCode = "SOURCE_NOT_FOUND"
	ErrTargetNotFound ErrorCode = "TARGET_NOT_FOUND"

	// Registry errors
	ErrAlreadyRegistered ErrorCode = "ALREADY_REGISTERED"
	ErrNotRegistered     ErrorCode = "NOT_REGISTERED"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigSave  ErrorCode = "CONFIG_SAVE"

	// ErrIssuesFound marks a command that completed but found warnings or
	// errors worth a non-zero exit. It is never printed.
	ErrIssuesFound ErrorCode = "ISSUES_FOUND"
)

// AmuError represents a structured error with code and details
type AmuError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *AmuError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Wrapped)
	}
	return e.Message
}

// Unwrap implements the errors.Unwrap interface
func (e *AmuError) Unwrap() error {
	return e.Wrapped
}

// Is matches any AmuError carrying the same code
func (e *AmuError) Is(target error) bool {
	var targetErr *AmuError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new AmuError with the given code and message
func New(code ErrorCode, message string) *AmuError {
	return &AmuError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new AmuError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *AmuError {
	return &AmuError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with an AmuError. A nil err yields nil.
func Wrap(err error, code ErrorCode, message string) *AmuError {
	if err == nil {
		return nil
	}
	return &AmuError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *AmuError {
	if err == nil {
		return nil
	}
	return &AmuError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *AmuError) WithDetail(key string, value interface{}) *AmuError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var amuErr *AmuError
	if errors.As(err, &amuErr) {
		return amuErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an AmuError
func GetErrorCode(err error) ErrorCode {
	var amuErr *AmuError
	if errors.As(err, &amuErr) {
		return amuErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not an AmuError
func GetErrorDetails(err error) map[string]interface{} {
	var amuErr *AmuError
	if errors.As(err, &amuErr) {
		return amuErr.Details
	}
	return nil
}
