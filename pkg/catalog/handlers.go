package catalog

import (
	"context"
	"fmt"

	"github.com/uicatalog/catalog-mcp-go/pkg/errors"
	"github.com/uicatalog/catalog-mcp-go/pkg/protocol"
	"github.com/uicatalog/catalog-mcp-go/pkg/registry"
)

// Resource URIs exposed by the catalog.
const (
	ComponentsListURI    = "resource:components/list"
	ComponentTemplateURI = "resource:component/{name}"
)

// Handlers binds the catalog store to the registry's handler signatures.
type Handlers struct {
	store Store
}

// NewHandlers wraps a store.
func NewHandlers(store Store) *Handlers {
	return &Handlers{store: store}
}

// BuildRegistry declares the full operation catalog over the given store:
// five tools, the component resources and the prompt templates. Declaration
// order here is the stable listing order clients observe.
func BuildRegistry(store Store) (*registry.Registry, error) {
	h := NewHandlers(store)

	return registry.NewBuilder().
		Tool(registry.OperationDescriptor{
			Name:        "get_component",
			Description: "Get the source code for a named component.",
			InputSchema: getComponentSchema,
			Validate:    validateComponentArgs,
			External:    true,
			Handler:     h.GetComponent,
		}).
		Tool(registry.OperationDescriptor{
			Name:        "get_component_demo",
			Description: "Get demo code showing how a named component is used.",
			InputSchema: getComponentSchema,
			Validate:    validateComponentArgs,
			External:    true,
			Handler:     h.GetComponentDemo,
		}).
		Tool(registry.OperationDescriptor{
			Name:        "list_components",
			Description: "List available components, optionally filtered by category.",
			InputSchema: listComponentsSchema,
			Validate:    validateListArgs,
			External:    true,
			Handler:     h.ListComponents,
		}).
		Tool(registry.OperationDescriptor{
			Name:        "get_component_metadata",
			Description: "Get dependencies and props metadata for a named component.",
			InputSchema: getComponentMetadataSchema,
			Validate:    validateMetadataArgs,
			External:    true,
			Handler:     h.GetComponentMetadata,
		}).
		Tool(registry.OperationDescriptor{
			Name:        "search_components",
			Description: "Search components by name or description, optionally filtered by category.",
			InputSchema: searchComponentsSchema,
			Validate:    validateSearchArgs,
			External:    true,
			Handler:     h.SearchComponents,
		}).
		Resource(registry.ResourceDescriptor{
			URI:         ComponentsListURI,
			Name:        "Component list",
			Description: "All components grouped by category.",
			MIMEType:    "text/markdown",
			Handler:     h.ReadComponentsList,
		}).
		Template(registry.ResourceDescriptor{
			URI:         ComponentTemplateURI,
			Name:        "Component source",
			Description: "Source code for a single component.",
			MIMEType:    "text/plain",
			Handler:     h.ReadComponent,
		}).
		Prompt(registry.PromptDescriptor{
			Name:        "component_usage",
			Description: "Guidance for wiring a named component into an application.",
			Arguments: []protocol.PromptArgument{
				{Name: "componentName", Description: "Component to explain", Required: true},
			},
			Handler: h.ComponentUsagePrompt,
		}).
		Prompt(registry.PromptDescriptor{
			Name:        "browse_catalog",
			Description: "An overview of the component catalog for exploration.",
			Handler:     h.BrowseCatalogPrompt,
		}).
		Build()
}

func stringArg(args map[string]interface{}, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

// matchesCategory applies the optional category filter of the get_* tools:
// a component outside the requested category is treated as absent.
func (h *Handlers) matchesCategory(ctx context.Context, name, category string) (bool, error) {
	if category == "" {
		return true, nil
	}
	meta, ok, err := h.store.GetComponentMetadata(ctx, name)
	if err != nil {
		return false, err
	}
	return ok && meta.Category == category, nil
}

// GetComponent returns a component's source text.
func (h *Handlers) GetComponent(ctx context.Context, args map[string]interface{}) (*protocol.CallToolResult, error) {
	name := stringArg(args, "componentName")

	ok, err := h.matchesCategory(ctx, name, stringArg(args, "category"))
	if err != nil {
		return nil, errors.HandlerFailed("get_component", err)
	}
	if !ok {
		return nil, errors.ComponentNotFound(name)
	}

	source, ok, err := h.store.GetComponentSource(ctx, name)
	if err != nil {
		return nil, errors.HandlerFailed("get_component", err)
	}
	if !ok {
		return nil, errors.ComponentNotFound(name)
	}
	return protocol.TextResult(source), nil
}

// GetComponentDemo returns a component's demo text.
func (h *Handlers) GetComponentDemo(ctx context.Context, args map[string]interface{}) (*protocol.CallToolResult, error) {
	name := stringArg(args, "componentName")

	ok, err := h.matchesCategory(ctx, name, stringArg(args, "category"))
	if err != nil {
		return nil, errors.HandlerFailed("get_component_demo", err)
	}
	if !ok {
		return nil, errors.ComponentNotFound(name)
	}

	demo, ok, err := h.store.GetComponentDemo(ctx, name)
	if err != nil {
		return nil, errors.HandlerFailed("get_component_demo", err)
	}
	if !ok {
		return nil, errors.ComponentNotFound(name).WithDetail("no demo available")
	}
	return protocol.TextResult(demo), nil
}

// ListComponents returns the catalog listing.
func (h *Handlers) ListComponents(ctx context.Context, args map[string]interface{}) (*protocol.CallToolResult, error) {
	rows, err := h.store.ListComponents(ctx, stringArg(args, "category"))
	if err != nil {
		return nil, errors.HandlerFailed("list_components", err)
	}
	return protocol.TextResult(formatSummaries(rows)), nil
}

// GetComponentMetadata returns the formatted metadata record.
func (h *Handlers) GetComponentMetadata(ctx context.Context, args map[string]interface{}) (*protocol.CallToolResult, error) {
	name := stringArg(args, "componentName")

	meta, ok, err := h.store.GetComponentMetadata(ctx, name)
	if err != nil {
		return nil, errors.HandlerFailed("get_component_metadata", err)
	}
	if !ok {
		return nil, errors.ComponentNotFound(name)
	}
	return protocol.TextResult(formatMetadata(meta)), nil
}

// SearchComponents returns matching summaries grouped by category.
func (h *Handlers) SearchComponents(ctx context.Context, args map[string]interface{}) (*protocol.CallToolResult, error) {
	rows, err := h.store.SearchComponents(ctx, stringArg(args, "query"), stringArg(args, "category"))
	if err != nil {
		return nil, errors.HandlerFailed("search_components", err)
	}
	return protocol.TextResult(formatSummaries(rows)), nil
}

// ReadComponentsList serves the static catalog listing resource.
func (h *Handlers) ReadComponentsList(ctx context.Context, uri string, params map[string]string) (*protocol.ReadResourceResult, error) {
	rows, err := h.store.ListComponents(ctx, "")
	if err != nil {
		return nil, errors.HandlerFailed("read_resource", err)
	}
	return &protocol.ReadResourceResult{
		Contents: []protocol.ResourceContents{{
			URI:      uri,
			MIMEType: "text/markdown",
			Text:     formatSummaries(rows),
		}},
	}, nil
}

// ReadComponent serves the per-component detail resource.
func (h *Handlers) ReadComponent(ctx context.Context, uri string, params map[string]string) (*protocol.ReadResourceResult, error) {
	name := params["name"]
	source, ok, err := h.store.GetComponentSource(ctx, name)
	if err != nil {
		return nil, errors.HandlerFailed("read_resource", err)
	}
	if !ok {
		return nil, errors.ComponentNotFound(name)
	}
	return &protocol.ReadResourceResult{
		Contents: []protocol.ResourceContents{{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     source,
		}},
	}, nil
}

// ComponentUsagePrompt renders usage guidance for a named component.
func (h *Handlers) ComponentUsagePrompt(ctx context.Context, args map[string]string) (*protocol.GetPromptResult, error) {
	name := args["componentName"]
	if name == "" {
		return &protocol.GetPromptResult{
			Description: "Component usage guidance",
			Messages: []protocol.PromptMessage{{
				Role:    "user",
				Content: protocol.TextContent("Explain how to pick and wire a component from the catalog into my application."),
			}},
		}, nil
	}

	text := fmt.Sprintf("Show me how to use the %s component.", name)
	if meta, ok, err := h.store.GetComponentMetadata(ctx, name); err == nil && ok {
		text = fmt.Sprintf("Show me how to use the %s component (%s). %s Include installation of any dependencies and a minimal working example.",
			meta.Name, meta.Category, meta.Description)
	}

	return &protocol.GetPromptResult{
		Description: fmt.Sprintf("Usage guidance for %s", name),
		Messages: []protocol.PromptMessage{{
			Role:    "user",
			Content: protocol.TextContent(text),
		}},
	}, nil
}

// BrowseCatalogPrompt renders a catalog overview prompt.
func (h *Handlers) BrowseCatalogPrompt(ctx context.Context, args map[string]string) (*protocol.GetPromptResult, error) {
	rows, err := h.store.ListComponents(ctx, "")
	if err != nil {
		return nil, errors.HandlerFailed("get_prompt", err)
	}
	return &protocol.GetPromptResult{
		Description: "Catalog overview",
		Messages: []protocol.PromptMessage{{
			Role:    "user",
			Content: protocol.TextContent("Here is the component catalog. Suggest components for my use case.\n\n" + formatSummaries(rows)),
		}},
	}, nil
}
