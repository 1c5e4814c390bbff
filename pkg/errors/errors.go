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
	ErrCancelled    ErrorCode = "CANCELLED"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Catalog errors
	ErrSchema          ErrorCode = "SCHEMA"
	ErrProfileNotFound ErrorCode = "PROFILE_NOT_FOUND"

	// Option model errors
	ErrIndex ErrorCode = "INDEX"

	// Template errors
	ErrTemplate ErrorCode = "TEMPLATE"

	// Materialization errors
	ErrPathExists ErrorCode = "PATH_EXISTS"
	ErrSubprocess ErrorCode = "SUBPROCESS"
	ErrWorkspace  ErrorCode = "WORKSPACE"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
	ErrDirCreate  ErrorCode = "DIR_CREATE"
)

// PyProjectError represents a structured error with code and details
type PyProjectError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *PyProjectError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *PyProjectError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *PyProjectError) Is(target error) bool {
	var targetErr *PyProjectError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new PyProjectError with the given code and message
func New(code ErrorCode, message string) *PyProjectError {
	return &PyProjectError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new PyProjectError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *PyProjectError {
	return &PyProjectError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a PyProjectError
func Wrap(err error, code ErrorCode, message string) *PyProjectError {
	if err == nil {
		return nil
	}
	return &PyProjectError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *PyProjectError {
	if err == nil {
		return nil
	}
	return &PyProjectError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *PyProjectError) WithDetail(key string, value interface{}) *PyProjectError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *PyProjectError) WithDetails(details map[string]interface{}) *PyProjectError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var pErr *PyProjectError
	if errors.As(err, &pErr) {
		return pErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a PyProjectError
func GetErrorCode(err error) ErrorCode {
	var pErr *PyProjectError
	if errors.As(err, &pErr) {
		return pErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a PyProjectError
func GetErrorDetails(err error) map[string]interface{} {
	var pErr *PyProjectError
	if errors.As(err, &pErr) {
		return pErr.Details
	}
	return nil
}

// GetDetailString returns a string detail from an error, or "" when absent.
func GetDetailString(err error, key string) string {
	details := GetErrorDetails(err)
	if details == nil {
		return ""
	}
	s, _ := details[key].(string)
	return s
}
