// Package protocol defines the wire types for the catalog server: JSON-RPC
// framing, the method names clients may call, and the descriptor and result
// shapes for tools, resources and prompts.
package protocol

// ProtocolVersion is the protocol revision this server speaks.
const ProtocolVersion = "2025-03-26"

// Method names for requests handled by the server.
const (
	MethodInitialize    = "initialize"
	MethodPing          = "ping"
	MethodListTools     = "tools/list"
	MethodCallTool      = "tools/call"
	MethodListResources = "resources/list"
	MethodReadResource  = "resources/read"
	MethodListPrompts   = "prompts/list"
	MethodGetPrompt     = "prompts/get"
)
