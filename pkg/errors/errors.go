package errors

import "fmt"

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeConfig   ErrorType = "config"
	ErrorTypeFetch    ErrorType = "fetch"
	ErrorTypeNetwork  ErrorType = "network"
	ErrorTypeData     ErrorType = "data"
	ErrorTypeSend     ErrorType = "send"
	ErrorTypeInternal ErrorType = "internal"
)

// AppError represents a structured application error
type AppError struct {
	Type     ErrorType `json:"type"`
	Message  string    `json:"message"`
	Details  string    `json:"details,omitempty"`
	ExitCode int       `json:"-"`
	Cause    error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewConfigError creates an error for missing or invalid configuration.
// Configuration errors are fatal and surface before any network call.
func NewConfigError(message string, details ...string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:     ErrorTypeConfig,
		Message:  message,
		Details:  detail,
		ExitCode: 1,
	}
}

// NewFetchError creates an error for an upstream fetch that failed after the
// retry budget was exhausted.
func NewFetchError(message string, cause error) *AppError {
	return &AppError{
		Type:     ErrorTypeFetch,
		Message:  message,
		ExitCode: 1,
		Cause:    cause,
	}
}

// NewNetworkError creates a new network error
func NewNetworkError(message string, cause error) *AppError {
	return &AppError{
		Type:     ErrorTypeNetwork,
		Message:  message,
		ExitCode: 1,
		Cause:    cause,
	}
}

// NewDataError creates an error for a malformed upstream record. Data errors
// are recorded for observability but never fail a run.
func NewDataError(message string, details ...string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:     ErrorTypeData,
		Message:  message,
		Details:  detail,
		ExitCode: 0,
	}
}

// NewSendError creates an error for a failed webhook delivery.
func NewSendError(message string, cause error) *AppError {
	return &AppError{
		Type:     ErrorTypeSend,
		Message:  message,
		ExitCode: 1,
		Cause:    cause,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:     ErrorTypeInternal,
		Message:  message,
		ExitCode: 1,
		Cause:    cause,
	}
}

// IsType checks if the error is of a specific type
func IsType(err error, errorType ErrorType) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type == errorType
	}
	return false
}

// GetExitCode returns the process exit code for an error
func GetExitCode(err error) int {
	if err == nil {
		return 0
	}
	if appErr, ok := err.(*AppError); ok {
		return appErr.ExitCode
	}
	return 1
}
