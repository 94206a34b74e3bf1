package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Session persistence errors
	ErrCodeSessionNotFound ErrorCode = "SESSION_NOT_FOUND"
	ErrCodeSessionCorrupt  ErrorCode = "SESSION_CORRUPT"
	ErrCodeSessionWrite    ErrorCode = "SESSION_WRITE"

	// Session state machine errors
	ErrCodeInvalidTransition ErrorCode = "INVALID_TRANSITION"

	// Broadcast service errors
	ErrCodeServiceFailed ErrorCode = "SERVICE_FAILED"
	ErrCodeServicePanic  ErrorCode = "SERVICE_PANIC"

	// General errors
	ErrCodeConfigInvalid ErrorCode = "CONFIG_INVALID"
	ErrCodeInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrCodeInternal      ErrorCode = "INTERNAL_ERROR"
)

// PlayError represents a structured error with context
type PlayError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *PlayError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *PlayError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *PlayError) WithDetail(key string, value interface{}) *PlayError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *PlayError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new PlayError
func New(code ErrorCode, message string) *PlayError {
	return &PlayError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a PlayError
func Wrap(err error, code ErrorCode, message string) *PlayError {
	return &PlayError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Is checks if an error is a specific PlayError code
func Is(err error, code ErrorCode) bool {
	return GetCode(err) == code && code != ""
}

// GetCode extracts the error code from an error, walking the Unwrap chain.
func GetCode(err error) ErrorCode {
	for err != nil {
		if pe, ok := err.(*PlayError); ok {
			return pe.Code
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return ""
		}
		err = unwrapper.Unwrap()
	}
	return ""
}
