package errors

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a failure category independent of its message
type ErrorCode string

const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Markup and style parsing
	ErrMarkupSyntax ErrorCode = "MARKUP_SYNTAX"
	ErrStyleSyntax  ErrorCode = "STYLE_SYNTAX"
	ErrColorParse   ErrorCode = "COLOR_PARSE"

	// Rendering
	ErrLayoutContract     ErrorCode = "LAYOUT_CONTRACT"
	ErrCapabilityMismatch ErrorCode = "CAPABILITY_MISMATCH"
	ErrBackendWrite       ErrorCode = "BACKEND_WRITE"
	ErrExport             ErrorCode = "EXPORT"

	// Live sessions
	ErrLiveState  ErrorCode = "LIVE_STATE"
	ErrLiveActive ErrorCode = "LIVE_ACTIVE"

	// Configuration
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"
	ErrThemeLoad   ErrorCode = "THEME_LOAD"
)

// TintaError is a structured error carrying a code and free-form details
type TintaError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

func (e *TintaError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *TintaError) Unwrap() error {
	return e.Wrapped
}

// Is matches any TintaError with the same code
func (e *TintaError) Is(target error) bool {
	var targetErr *TintaError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a TintaError with the given code and message
func New(code ErrorCode, message string) *TintaError {
	return &TintaError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a TintaError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *TintaError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps err with a code. A nil err yields nil.
func Wrap(err error, code ErrorCode, message string) *TintaError {
	if err == nil {
		return nil
	}
	e := New(code, message)
	e.Wrapped = err
	return e
}

// Wrapf wraps err with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *TintaError {
	if err == nil {
		return nil
	}
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WithDetail adds a detail to the error
func (e *TintaError) WithDetail(key string, value interface{}) *TintaError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *TintaError) WithDetails(details map[string]interface{}) *TintaError {
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
	var tErr *TintaError
	if errors.As(err, &tErr) {
		return tErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a TintaError
func GetErrorCode(err error) ErrorCode {
	var tErr *TintaError
	if errors.As(err, &tErr) {
		return tErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a TintaError
func GetErrorDetails(err error) map[string]interface{} {
	var tErr *TintaError
	if errors.As(err, &tErr) {
		return tErr.Details
	}
	return nil
}
