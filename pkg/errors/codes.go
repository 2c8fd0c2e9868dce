package errors

// JSON-RPC 2.0 standard error codes.
const (
	// CodeParseError indicates invalid JSON was received by the server
	CodeParseError int = -32700

	// CodeInvalidRequest indicates the JSON sent is not a valid Request object
	CodeInvalidRequest int = -32600

	// CodeMethodNotFound indicates the method does not exist / is not available
	CodeMethodNotFound int = -32601

	// CodeInvalidParams indicates invalid method parameter(s)
	CodeInvalidParams int = -32602

	// CodeInternalError indicates internal JSON-RPC error
	CodeInternalError int = -32603
)

// Server-specific error codes.
const (
	// Registry lookup errors (-32200 to -32299)
	CodeOperationNotFound int = -32200 // Named operation not registered
	CodeResourceNotFound  int = -32201 // No literal or template match for URI
	CodePromptNotFound    int = -32202 // Named prompt not registered
	CodeComponentNotFound int = -32203 // Catalog store returned absent

	// Fault isolation errors (-32300 to -32399)
	CodeCircuitOpen  int = -32300 // Breaker rejected the call without attempting it
	CodeHandlerError int = -32302 // Handler logic or collaborator I/O failed

	// Validation errors (-32750 to -32799)
	CodeValidationError  int = -32750 // Generic validation error
	CodeMissingParameter int = -32751 // Required parameter missing
	CodeInvalidParameter int = -32752 // Parameter has invalid value
)

// ErrorCodeInfo provides human-readable information about error codes
type ErrorCodeInfo struct {
	Code        int
	Name        string
	Description string
	Category    Category
	Severity    Severity
}

var errorCodeRegistry = map[int]ErrorCodeInfo{
	CodeParseError:     {CodeParseError, "ParseError", "Invalid JSON was received", CategoryProtocol, SeverityError},
	CodeInvalidRequest: {CodeInvalidRequest, "InvalidRequest", "Invalid Request object", CategoryProtocol, SeverityError},
	CodeMethodNotFound: {CodeMethodNotFound, "MethodNotFound", "Method does not exist", CategoryProtocol, SeverityError},
	CodeInvalidParams:  {CodeInvalidParams, "InvalidParams", "Invalid method parameters", CategoryValidation, SeverityError},
	CodeInternalError:  {CodeInternalError, "InternalError", "Internal JSON-RPC error", CategoryInternal, SeverityError},

	CodeOperationNotFound: {CodeOperationNotFound, "OperationNotFound", "Operation not registered", CategoryNotFound, SeverityError},
	CodeResourceNotFound:  {CodeResourceNotFound, "ResourceNotFound", "Resource not found", CategoryNotFound, SeverityError},
	CodePromptNotFound:    {CodePromptNotFound, "PromptNotFound", "Prompt not registered", CategoryNotFound, SeverityError},
	CodeComponentNotFound: {CodeComponentNotFound, "ComponentNotFound", "Component not in catalog", CategoryNotFound, SeverityError},

	CodeCircuitOpen:  {CodeCircuitOpen, "CircuitOpen", "Circuit breaker is open", CategoryCircuitOpen, SeverityWarning},
	CodeHandlerError: {CodeHandlerError, "HandlerError", "Handler execution failed", CategoryHandler, SeverityError},

	CodeValidationError:  {CodeValidationError, "ValidationError", "Validation error", CategoryValidation, SeverityError},
	CodeMissingParameter: {CodeMissingParameter, "MissingParameter", "Required parameter missing", CategoryValidation, SeverityError},
	CodeInvalidParameter: {CodeInvalidParameter, "InvalidParameter", "Invalid parameter value", CategoryValidation, SeverityError},
}

// GetErrorCodeInfo returns information about an error code
func GetErrorCodeInfo(code int) (ErrorCodeInfo, bool) {
	info, exists := errorCodeRegistry[code]
	return info, exists
}

// GetErrorCodeName returns the name of an error code
func GetErrorCodeName(code int) string {
	if info, exists := errorCodeRegistry[code]; exists {
		return info.Name
	}
	return "UnknownError"
}
