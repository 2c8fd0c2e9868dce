package errors

import "fmt"

// ValidationErrorData carries the offending field(s) of a validation failure.
type ValidationErrorData struct {
	Field  string      `json:"field"`
	Value  interface{} `json:"value,omitempty"`
	Reason string      `json:"reason,omitempty"`
}

// MissingParameter reports a required parameter that was not supplied.
func MissingParameter(field string) CatalogError {
	err := NewErrorf(CodeMissingParameter, CategoryValidation, SeverityError,
		"missing required parameter %q", field)
	return err.(*baseError).withData(&ValidationErrorData{Field: field, Reason: "required"})
}

// InvalidParameter reports a parameter whose value failed validation.
func InvalidParameter(field string, value interface{}, reason string) CatalogError {
	err := NewErrorf(CodeInvalidParameter, CategoryValidation, SeverityError,
		"invalid value for parameter %q", field)
	return err.(*baseError).withData(&ValidationErrorData{Field: field, Value: value, Reason: reason})
}

// OperationNotFound reports a tool name with no registered descriptor.
func OperationNotFound(name string) CatalogError {
	return NewErrorf(CodeOperationNotFound, CategoryNotFound, SeverityError,
		"operation %q not found", name)
}

// ResourceNotFound reports a URI that matched neither a literal registration
// nor any declared template.
func ResourceNotFound(uri string) CatalogError {
	return NewErrorf(CodeResourceNotFound, CategoryNotFound, SeverityError,
		"resource %q not found", uri)
}

// PromptNotFound reports a prompt name with no registered descriptor.
func PromptNotFound(name string) CatalogError {
	return NewErrorf(CodePromptNotFound, CategoryNotFound, SeverityError,
		"prompt %q not found", name)
}

// ComponentNotFound reports an absent result from the catalog store for an
// otherwise valid component name.
func ComponentNotFound(name string) CatalogError {
	return NewErrorf(CodeComponentNotFound, CategoryNotFound, SeverityError,
		"component %q not found in catalog", name)
}

// CircuitOpen reports a call rejected by the breaker without being attempted.
func CircuitOpen(dependency string) CatalogError {
	return NewErrorf(CodeCircuitOpen, CategoryCircuitOpen, SeverityWarning,
		"circuit breaker open for dependency %q", dependency)
}

// HandlerFailed wraps a failure raised by a handler's own logic, preserving
// the original message and cause.
func HandlerFailed(operation string, err error) CatalogError {
	return WrapError(err, CodeHandlerError,
		fmt.Sprintf("operation %q failed", operation),
		CategoryHandler, SeverityError).WithDetail(err.Error())
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool { return IsCategory(err, CategoryValidation) }

// IsNotFound reports whether err is a registry or catalog miss.
func IsNotFound(err error) bool { return IsCategory(err, CategoryNotFound) }

// IsCircuitOpen reports whether err was produced by an open breaker.
func IsCircuitOpen(err error) bool { return IsCategory(err, CategoryCircuitOpen) }

// IsHandler reports whether err was raised by handler logic.
func IsHandler(err error) bool { return IsCategory(err, CategoryHandler) }

func (e *baseError) withData(data interface{}) CatalogError {
	newErr := *e
	newErr.data = data
	return &newErr
}
