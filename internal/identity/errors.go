package identity

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorCategory classifies connector errors into the small taxonomy the host
// dispatches on.
type ErrorCategory string

const (
	ErrorCategoryInvalidValue  ErrorCategory = "invalid_value"  // Bad attribute or argument
	ErrorCategoryAlreadyExists ErrorCategory = "already_exists" // Object with the same identity exists
	ErrorCategoryUnknownUID    ErrorCategory = "unknown_uid"    // Addressed object does not exist
	ErrorCategoryConnection    ErrorCategory = "connection"     // Connectivity or credential failure
	ErrorCategoryIO            ErrorCategory = "io"             // Provider call failed for any other reason
	ErrorCategoryProtocol      ErrorCategory = "protocol"       // Provider violated expected API behavior
	ErrorCategoryConfiguration ErrorCategory = "configuration"  // Connector configuration is unusable
	ErrorCategoryUnknown       ErrorCategory = "unknown"
)

// Error provides categorized error information for connector operations.
type Error struct {
	Operation  string        // The operation that failed
	Category   ErrorCategory // Error category
	StatusCode int           // HTTP status code, when the provider answered
	Message    string        // Human-readable message
	Cause      error         // Underlying error
}

func (e *Error) Error() string {
	var parts []string

	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("datadog %s failed (status %d)", e.Operation, e.StatusCode))
	} else {
		parts = append(parts, fmt.Sprintf("datadog %s failed", e.Operation))
	}

	if e.Message != "" {
		parts = append(parts, e.Message)
	}

	return strings.Join(parts, ": ")
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// GetCategory returns the error category.
func (e *Error) GetCategory() ErrorCategory {
	return e.Category
}

// NewError creates a categorized error.
func NewError(operation string, category ErrorCategory, message string) *Error {
	return &Error{
		Operation: operation,
		Category:  category,
		Message:   message,
	}
}

// NewInvalidValueError creates an invalid-value error, the category used for
// rejected attributes and arguments before any provider call.
func NewInvalidValueError(operation, message string) *Error {
	return NewError(operation, ErrorCategoryInvalidValue, message)
}

// WrapError wraps an error with operation context. Already-categorized errors
// pass through with the operation filled in when missing.
func WrapError(operation string, err error) error {
	if err == nil {
		return nil
	}

	var connErr *Error
	if errors.As(err, &connErr) {
		if connErr.Operation == "" {
			connErr.Operation = operation
		}
		return err
	}

	return &Error{
		Operation: operation,
		Category:  categorizeGenericError(err),
		Message:   err.Error(),
		Cause:     err,
	}
}

// CategorizeStatus maps a provider HTTP status code to an error category.
func CategorizeStatus(status int) ErrorCategory {
	switch status {
	case http.StatusBadRequest:
		return ErrorCategoryInvalidValue
	case http.StatusForbidden:
		return ErrorCategoryConnection
	case http.StatusNotFound:
		return ErrorCategoryUnknownUID
	case http.StatusConflict:
		return ErrorCategoryAlreadyExists
	default:
		return ErrorCategoryIO
	}
}

// categorizeGenericError categorizes errors that carry no HTTP status.
func categorizeGenericError(err error) ErrorCategory {
	errStr := strings.ToLower(err.Error())

	if strings.Contains(errStr, "connection") ||
		strings.Contains(errStr, "network") ||
		strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "broken pipe") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "no such host") {
		return ErrorCategoryConnection
	}

	return ErrorCategoryIO
}

// GetErrorCategory returns the category of an error.
func GetErrorCategory(err error) ErrorCategory {
	if err == nil {
		return ErrorCategoryUnknown
	}

	var connErr *Error
	if errors.As(err, &connErr) {
		return connErr.GetCategory()
	}

	return categorizeGenericError(err)
}

// IsInvalidValueError checks if an error indicates a rejected value.
func IsInvalidValueError(err error) bool {
	return GetErrorCategory(err) == ErrorCategoryInvalidValue
}

// IsAlreadyExistsError checks if an error indicates an identity conflict.
func IsAlreadyExistsError(err error) bool {
	return GetErrorCategory(err) == ErrorCategoryAlreadyExists
}

// IsUnknownUIDError checks if an error indicates a missing object.
func IsUnknownUIDError(err error) bool {
	return GetErrorCategory(err) == ErrorCategoryUnknownUID
}

// IsConnectionError checks if an error indicates a connectivity or credential
// problem.
func IsConnectionError(err error) bool {
	return GetErrorCategory(err) == ErrorCategoryConnection
}

// IsProtocolError checks if an error indicates the provider violated expected
// API behavior.
func IsProtocolError(err error) bool {
	return GetErrorCategory(err) == ErrorCategoryProtocol
}
