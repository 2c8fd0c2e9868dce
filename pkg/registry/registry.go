// Package registry holds the static catalog of invocable operations and
// addressable resources. The registry is built once at startup and never
// mutated afterwards, so lookups and enumeration need no locking.
package registry

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/uicatalog/catalog-mcp-go/pkg/errors"
	"github.com/uicatalog/catalog-mcp-go/pkg/protocol"
	"github.com/uicatalog/catalog-mcp-go/pkg/uritemplate"
)

// ToolHandler executes one tool invocation. Arguments arrive already
// validated against the descriptor's validator.
type ToolHandler func(ctx context.Context, args map[string]interface{}) (*protocol.CallToolResult, error)

// ResourceHandler produces the contents for one resource read. For template
// resources, params carries the extracted placeholder values.
type ResourceHandler func(ctx context.Context, uri string, params map[string]string) (*protocol.ReadResourceResult, error)

// PromptHandler renders one prompt template with free-form arguments.
type PromptHandler func(ctx context.Context, args map[string]string) (*protocol.GetPromptResult, error)

// ArgsValidator checks a tool's argument map before the handler runs.
type ArgsValidator func(args map[string]interface{}) error

// OperationDescriptor declares one invocable tool.
type OperationDescriptor struct {
	Name        string
	Description string
	// InputSchema is the JSON schema document advertised to clients.
	InputSchema json.RawMessage
	// Validate enforces the schema structurally; nil means no validation.
	Validate ArgsValidator
	// External marks operations that reach a dependency outside process
	// memory; the dispatcher routes those through the circuit breaker.
	External bool
	Handler  ToolHandler
}

// PromptDescriptor declares one retrievable prompt template.
type PromptDescriptor struct {
	Name        string
	Description string
	Arguments   []protocol.PromptArgument
	Handler     PromptHandler
}

// ResourceDescriptor declares one addressable resource, literal or templated.
type ResourceDescriptor struct {
	// URI is the literal URI, or the declared template when IsTemplate is set.
	URI         string
	Name        string
	Description string
	MIMEType    string
	IsTemplate  bool
	Handler     ResourceHandler

	template *uritemplate.Template
}

// Builder accumulates declarations; Build freezes them into a Registry.
type Builder struct {
	tools     []OperationDescriptor
	resources []ResourceDescriptor
	prompts   []PromptDescriptor
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Tool declares a tool. Declaration order is the enumeration order.
func (b *Builder) Tool(desc OperationDescriptor) *Builder {
	b.tools = append(b.tools, desc)
	return b
}

// Resource declares a literal resource.
func (b *Builder) Resource(desc ResourceDescriptor) *Builder {
	desc.IsTemplate = false
	b.resources = append(b.resources, desc)
	return b
}

// Template declares a templated resource family. Templates are scanned in
// declaration order; the first match wins.
func (b *Builder) Template(desc ResourceDescriptor) *Builder {
	desc.IsTemplate = true
	b.resources = append(b.resources, desc)
	return b
}

// Prompt declares a prompt template.
func (b *Builder) Prompt(desc PromptDescriptor) *Builder {
	b.prompts = append(b.prompts, desc)
	return b
}

// Build validates the declarations, compiles resource templates and returns
// the immutable registry.
func (b *Builder) Build() (*Registry, error) {
	r := &Registry{
		tools:       b.tools,
		resources:   b.resources,
		prompts:     b.prompts,
		toolIndex:   make(map[string]int, len(b.tools)),
		promptIndex: make(map[string]int, len(b.prompts)),
		literals:    make(map[string]int, len(b.resources)),
	}

	for i, tool := range b.tools {
		if tool.Name == "" {
			return nil, fmt.Errorf("tool %d: name required", i)
		}
		if tool.Handler == nil {
			return nil, fmt.Errorf("tool %q: handler required", tool.Name)
		}
		if _, dup := r.toolIndex[tool.Name]; dup {
			return nil, fmt.Errorf("tool %q declared twice", tool.Name)
		}
		r.toolIndex[tool.Name] = i
	}

	for i := range r.resources {
		res := &r.resources[i]
		if res.URI == "" {
			return nil, fmt.Errorf("resource %d: uri required", i)
		}
		if res.Handler == nil {
			return nil, fmt.Errorf("resource %q: handler required", res.URI)
		}
		if res.IsTemplate {
			tmpl, err := uritemplate.Compile(res.URI)
			if err != nil {
				return nil, err
			}
			res.template = tmpl
			continue
		}
		if _, dup := r.literals[res.URI]; dup {
			return nil, fmt.Errorf("resource %q declared twice", res.URI)
		}
		r.literals[res.URI] = i
	}

	for i, prompt := range b.prompts {
		if prompt.Name == "" {
			return nil, fmt.Errorf("prompt %d: name required", i)
		}
		if prompt.Handler == nil {
			return nil, fmt.Errorf("prompt %q: handler required", prompt.Name)
		}
		if _, dup := r.promptIndex[prompt.Name]; dup {
			return nil, fmt.Errorf("prompt %q declared twice", prompt.Name)
		}
		r.promptIndex[prompt.Name] = i
	}

	return r, nil
}

// Registry is the immutable operation and resource catalog.
type Registry struct {
	tools       []OperationDescriptor
	resources   []ResourceDescriptor
	prompts     []PromptDescriptor
	toolIndex   map[string]int
	promptIndex map[string]int
	literals    map[string]int
}

// Operation returns the descriptor for a tool name.
func (r *Registry) Operation(name string) (*OperationDescriptor, error) {
	i, ok := r.toolIndex[name]
	if !ok {
		return nil, errors.OperationNotFound(name)
	}
	return &r.tools[i], nil
}

// Prompt returns the descriptor for a prompt name.
func (r *Registry) Prompt(name string) (*PromptDescriptor, error) {
	i, ok := r.promptIndex[name]
	if !ok {
		return nil, errors.PromptNotFound(name)
	}
	return &r.prompts[i], nil
}

// ResolveResource resolves a concrete URI: literal registrations first by
// direct equality, then the declared templates in declaration order. On a
// template match, the returned params map carries the extracted values.
func (r *Registry) ResolveResource(uri string) (*ResourceDescriptor, map[string]string, error) {
	if i, ok := r.literals[uri]; ok {
		return &r.resources[i], nil, nil
	}

	for i := range r.resources {
		res := &r.resources[i]
		if !res.IsTemplate {
			continue
		}
		if captures, ok := res.template.Match(uri); ok {
			return res, res.template.Params(captures), nil
		}
	}

	return nil, nil, errors.ResourceNotFound(uri)
}

// Tools enumerates the tool catalog in declaration order.
func (r *Registry) Tools() []protocol.Tool {
	out := make([]protocol.Tool, 0, len(r.tools))
	for _, tool := range r.tools {
		out = append(out, protocol.Tool{
			Name:        tool.Name,
			Description: tool.Description,
			InputSchema: tool.InputSchema,
		})
	}
	return out
}

// Resources enumerates the literal resources in declaration order.
func (r *Registry) Resources() []protocol.Resource {
	out := make([]protocol.Resource, 0, len(r.resources))
	for _, res := range r.resources {
		if res.IsTemplate {
			continue
		}
		out = append(out, protocol.Resource{
			URI:         res.URI,
			Name:        res.Name,
			Description: res.Description,
			MIMEType:    res.MIMEType,
		})
	}
	return out
}

// Templates enumerates the resource templates in declaration order.
func (r *Registry) Templates() []protocol.ResourceTemplate {
	out := make([]protocol.ResourceTemplate, 0, len(r.resources))
	for _, res := range r.resources {
		if !res.IsTemplate {
			continue
		}
		out = append(out, protocol.ResourceTemplate{
			URITemplate: res.URI,
			Name:        res.Name,
			Description: res.Description,
			MIMEType:    res.MIMEType,
		})
	}
	return out
}

// Prompts enumerates the prompt catalog in declaration order.
func (r *Registry) Prompts() []protocol.Prompt {
	out := make([]protocol.Prompt, 0, len(r.prompts))
	for _, prompt := range r.prompts {
		out = append(out, protocol.Prompt{
			Name:        prompt.Name,
			Description: prompt.Description,
			Arguments:   prompt.Arguments,
		})
	}
	return out
}
