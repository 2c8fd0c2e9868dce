package protocol

import "encoding/json"

// Tool describes an invocable operation in the catalog surface.
type Tool struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	InputSchema json.RawMessage `json:"inputSchema,omitempty"`
}

// Resource describes a literally-addressed, read-only piece of content.
type Resource struct {
	URI         string `json:"uri"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	MIMEType    string `json:"mimeType,omitempty"`
}

// ResourceTemplate describes a family of resources addressed through a URI
// template with {placeholder} segments.
type ResourceTemplate struct {
	URITemplate string `json:"uriTemplate"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	MIMEType    string `json:"mimeType,omitempty"`
}

// Prompt describes a parameterized prompt template.
type Prompt struct {
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Arguments   []PromptArgument `json:"arguments,omitempty"`
}

// PromptArgument describes one argument accepted by a prompt. Prompt
// arguments are advisory; the server never enforces them as a schema.
type PromptArgument struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Required    bool   `json:"required,omitempty"`
}

// Content is one element of a response envelope. Only text content is
// produced by this server.
type Content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// TextContent wraps a string as a content element.
func TextContent(text string) Content {
	return Content{Type: "text", Text: text}
}

// CallToolResult is the uniform envelope returned by every tool handler.
// On failure IsError is set and Content carries a readable message; the
// envelope is never empty.
type CallToolResult struct {
	Content []Content `json:"content"`
	IsError bool      `json:"isError,omitempty"`
}

// ErrorResult wraps an error message as a well-formed envelope.
func ErrorResult(message string) *CallToolResult {
	return &CallToolResult{
		Content: []Content{TextContent(message)},
		IsError: true,
	}
}

// TextResult wraps one or more text blocks as a success envelope.
func TextResult(texts ...string) *CallToolResult {
	contents := make([]Content, 0, len(texts))
	for _, text := range texts {
		contents = append(contents, TextContent(text))
	}
	return &CallToolResult{Content: contents}
}

// ListToolsParams defines parameters for listing tools
type ListToolsParams struct {
	Category string `json:"category,omitempty"`
}

// ListToolsResult defines the response for listing tools
type ListToolsResult struct {
	Tools []Tool `json:"tools"`
}

// CallToolParams defines parameters for calling a tool
type CallToolParams struct {
	Name      string                 `json:"name"`
	Arguments map[string]interface{} `json:"arguments,omitempty"`
}

// ListResourcesParams defines parameters for listing resources
type ListResourcesParams struct{}

// ListResourcesResult defines the response for listing resources
type ListResourcesResult struct {
	Resources []Resource         `json:"resources"`
	Templates []ResourceTemplate `json:"resourceTemplates,omitempty"`
}

// ReadResourceParams defines parameters for reading a resource
type ReadResourceParams struct {
	URI string `json:"uri"`
}

// ResourceContents is the payload returned for one resource read.
type ResourceContents struct {
	URI      string `json:"uri"`
	MIMEType string `json:"mimeType,omitempty"`
	Text     string `json:"text"`
}

// ReadResourceResult defines the response for reading a resource
type ReadResourceResult struct {
	Contents []ResourceContents `json:"contents"`
}

// ListPromptsParams defines parameters for listing prompts
type ListPromptsParams struct{}

// ListPromptsResult defines the response for listing prompts
type ListPromptsResult struct {
	Prompts []Prompt `json:"prompts"`
}

// GetPromptParams defines parameters for getting a prompt
type GetPromptParams struct {
	Name      string            `json:"name"`
	Arguments map[string]string `json:"arguments,omitempty"`
}

// PromptMessage is one rendered message of a prompt template.
type PromptMessage struct {
	Role    string  `json:"role"`
	Content Content `json:"content"`
}

// GetPromptResult defines the response for getting a prompt
type GetPromptResult struct {
	Description string          `json:"description,omitempty"`
	Messages    []PromptMessage `json:"messages"`
}

// InitializeParams carries client identification during the handshake.
type InitializeParams struct {
	ProtocolVersion string     `json:"protocolVersion,omitempty"`
	ClientInfo      ClientInfo `json:"clientInfo,omitempty"`
}

// ClientInfo identifies the connecting client.
type ClientInfo struct {
	Name    string `json:"name,omitempty"`
	Version string `json:"version,omitempty"`
}

// InitializeResult describes the server during the handshake.
type InitializeResult struct {
	ProtocolVersion string                 `json:"protocolVersion"`
	ServerInfo      ServerInfo             `json:"serverInfo"`
	Capabilities    map[string]interface{} `json:"capabilities"`
}

// ServerInfo identifies this server.
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}
