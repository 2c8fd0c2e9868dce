// Package errors provides structured error handling for the catalog server.
// It defines custom error types that map to JSON-RPC error codes and carry
// enough context for logging and programmatic handling.
package errors

import (
	"encoding/json"
	"fmt"
	"time"
)

// Category classifies an error for dispatch-time policy decisions.
type Category string

const (
	CategoryValidation  Category = "validation"
	CategoryNotFound    Category = "not_found"
	CategoryCircuitOpen Category = "circuit_open"
	CategoryHandler     Category = "handler"
	CategoryInternal    Category = "internal"
	CategoryProtocol    Category = "protocol"
)

// Severity indicates how critical an error is.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityError    Severity = "error"
	SeverityCritical Severity = "critical"
)

// Context records where and when an error occurred.
type Context struct {
	RequestID string    `json:"request_id,omitempty"`
	Method    string    `json:"method,omitempty"`
	Component string    `json:"component,omitempty"`
	Operation string    `json:"operation,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// CatalogError is the interface implemented by all errors produced by this
// module. The concrete kind is carried by Category; Code maps the error onto
// the wire protocol.
type CatalogError interface {
	error

	// Code returns the JSON-RPC error code
	Code() int

	// Message returns a human-readable error message
	Message() string

	// Details returns detailed technical description for debugging
	Details() string

	// Data returns structured error data for programmatic handling
	Data() interface{}

	// Category returns the error category for classification
	Category() Category

	// Severity returns the error severity level
	Severity() Severity

	// Context returns the error context information
	Context() *Context

	// WithContext returns a new error with the provided context
	WithContext(ctx *Context) CatalogError

	// WithDetail returns a new error with additional detail
	WithDetail(detail string) CatalogError

	// Unwrap returns the underlying error for error chain traversal
	Unwrap() error

	// ToJSON returns the error as a JSON-serializable map
	ToJSON() map[string]interface{}
}

type baseError struct {
	code     int
	message  string
	details  string
	data     interface{}
	category Category
	severity Severity
	context  *Context
	cause    error
}

func (e *baseError) Error() string {
	if e.details != "" {
		return fmt.Sprintf("%s: %s", e.message, e.details)
	}
	return e.message
}

func (e *baseError) Code() int           { return e.code }
func (e *baseError) Message() string     { return e.message }
func (e *baseError) Details() string     { return e.details }
func (e *baseError) Data() interface{}   { return e.data }
func (e *baseError) Category() Category  { return e.category }
func (e *baseError) Severity() Severity  { return e.severity }
func (e *baseError) Context() *Context   { return e.context }
func (e *baseError) Unwrap() error       { return e.cause }

// WithContext returns a new error with the provided context
func (e *baseError) WithContext(ctx *Context) CatalogError {
	newErr := *e
	newErr.context = ctx
	return &newErr
}

// WithDetail returns a new error with additional detail
func (e *baseError) WithDetail(detail string) CatalogError {
	newErr := *e
	if newErr.details != "" {
		newErr.details = fmt.Sprintf("%s; %s", newErr.details, detail)
	} else {
		newErr.details = detail
	}
	return &newErr
}

// ToJSON returns the error as a JSON-serializable map
func (e *baseError) ToJSON() map[string]interface{} {
	result := map[string]interface{}{
		"code":     e.code,
		"message":  e.message,
		"category": string(e.category),
		"severity": string(e.severity),
	}

	if e.details != "" {
		result["details"] = e.details
	}
	if e.data != nil {
		result["data"] = e.data
	}
	if e.context != nil {
		result["context"] = e.context
	}
	if e.cause != nil {
		result["cause"] = e.cause.Error()
	}

	return result
}

// MarshalJSON implements json.Marshaler for baseError
func (e *baseError) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.ToJSON())
}

// NewError creates a new CatalogError with the specified parameters
func NewError(code int, message string, category Category, severity Severity) CatalogError {
	return &baseError{
		code:     code,
		message:  message,
		category: category,
		severity: severity,
		context: &Context{
			Timestamp: time.Now(),
		},
	}
}

// NewErrorf creates a new CatalogError with a formatted message
func NewErrorf(code int, category Category, severity Severity, format string, args ...interface{}) CatalogError {
	return &baseError{
		code:     code,
		message:  fmt.Sprintf(format, args...),
		category: category,
		severity: severity,
		context: &Context{
			Timestamp: time.Now(),
		},
	}
}

// WrapError wraps an existing error as a CatalogError
func WrapError(err error, code int, message string, category Category, severity Severity) CatalogError {
	return &baseError{
		code:     code,
		message:  message,
		category: category,
		severity: severity,
		cause:    err,
		context: &Context{
			Timestamp: time.Now(),
		},
	}
}

// AsCatalogError extracts a CatalogError from any error.
func AsCatalogError(err error) (CatalogError, bool) {
	if err == nil {
		return nil, false
	}
	if catErr, ok := err.(CatalogError); ok {
		return catErr, true
	}
	return nil, false
}

// IsCategory checks if an error is of a specific category
func IsCategory(err error, category Category) bool {
	if catErr, ok := AsCatalogError(err); ok {
		return catErr.Category() == category
	}
	return false
}

// IsCode checks if an error has a specific error code
func IsCode(err error, code int) bool {
	if catErr, ok := AsCatalogError(err); ok {
		return catErr.Code() == code
	}
	return false
}
