package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	caterrors "github.com/uicatalog/catalog-mcp-go/pkg/errors"
	"github.com/uicatalog/catalog-mcp-go/pkg/protocol"
)

func noopTool(ctx context.Context, args map[string]interface{}) (*protocol.CallToolResult, error) {
	return protocol.TextResult("ok"), nil
}

func noopResource(ctx context.Context, uri string, params map[string]string) (*protocol.ReadResourceResult, error) {
	return &protocol.ReadResourceResult{}, nil
}

func noopPrompt(ctx context.Context, args map[string]string) (*protocol.GetPromptResult, error) {
	return &protocol.GetPromptResult{}, nil
}

func buildTestRegistry(t *testing.T) *Registry {
	t.Helper()
	reg, err := NewBuilder().
		Tool(OperationDescriptor{Name: "get_component", Handler: noopTool}).
		Tool(OperationDescriptor{Name: "list_components", Handler: noopTool}).
		Tool(OperationDescriptor{Name: "search_components", Handler: noopTool}).
		Resource(ResourceDescriptor{URI: "resource:components/list", Handler: noopResource}).
		Template(ResourceDescriptor{URI: "resource:component/{name}", Handler: noopResource}).
		Prompt(PromptDescriptor{Name: "component_usage", Handler: noopPrompt}).
		Build()
	require.NoError(t, err)
	return reg
}

func TestOperationLookup(t *testing.T) {
	reg := buildTestRegistry(t)

	op, err := reg.Operation("get_component")
	require.NoError(t, err)
	assert.Equal(t, "get_component", op.Name)

	_, err = reg.Operation("nonexistent")
	assert.True(t, caterrors.IsNotFound(err))
}

func TestPromptLookup(t *testing.T) {
	reg := buildTestRegistry(t)

	prompt, err := reg.Prompt("component_usage")
	require.NoError(t, err)
	assert.Equal(t, "component_usage", prompt.Name)

	_, err = reg.Prompt("get_component")
	assert.True(t, caterrors.IsNotFound(err), "tools are not prompts")
}

func TestResolveResourceLiteralBeforeTemplates(t *testing.T) {
	literalHit := false
	reg, err := NewBuilder().
		Resource(ResourceDescriptor{URI: "resource:component/list", Handler: func(ctx context.Context, uri string, params map[string]string) (*protocol.ReadResourceResult, error) {
			literalHit = true
			return &protocol.ReadResourceResult{}, nil
		}}).
		Template(ResourceDescriptor{URI: "resource:component/{name}", Handler: noopResource}).
		Build()
	require.NoError(t, err)

	// "list" also matches the template; the literal must win.
	desc, params, err := reg.ResolveResource("resource:component/list")
	require.NoError(t, err)
	assert.Nil(t, params)
	_, _ = desc.Handler(context.Background(), "resource:component/list", params)
	assert.True(t, literalHit)
}

func TestResolveResourceTemplateExtraction(t *testing.T) {
	reg := buildTestRegistry(t)

	desc, params, err := reg.ResolveResource("resource:component/AnimatedList")
	require.NoError(t, err)
	assert.True(t, desc.IsTemplate)
	assert.Equal(t, map[string]string{"name": "AnimatedList"}, params)
}

func TestResolveResourceFirstTemplateWins(t *testing.T) {
	var winner string
	mk := func(tag string) ResourceHandler {
		return func(ctx context.Context, uri string, params map[string]string) (*protocol.ReadResourceResult, error) {
			winner = tag
			return &protocol.ReadResourceResult{}, nil
		}
	}
	reg, err := NewBuilder().
		Template(ResourceDescriptor{URI: "resource:component/{name}", Handler: mk("first")}).
		Template(ResourceDescriptor{URI: "resource:{anything}", Handler: mk("second")}).
		Build()
	require.NoError(t, err)

	desc, params, err := reg.ResolveResource("resource:component/Globe")
	require.NoError(t, err)
	_, _ = desc.Handler(context.Background(), "resource:component/Globe", params)
	assert.Equal(t, "first", winner)
}

func TestResolveResourceNotFound(t *testing.T) {
	reg := buildTestRegistry(t)

	_, _, err := reg.ResolveResource("resource:unknown/thing with spaces but no match prefix")
	assert.True(t, caterrors.IsNotFound(err))
}

func TestEnumerationOrderIsStable(t *testing.T) {
	reg := buildTestRegistry(t)

	first := reg.Tools()
	second := reg.Tools()
	require.Equal(t, first, second)

	names := make([]string, 0, len(first))
	for _, tool := range first {
		names = append(names, tool.Name)
	}
	assert.Equal(t, []string{"get_component", "list_components", "search_components"}, names)
}

func TestEnumerationSeparatesLiteralsAndTemplates(t *testing.T) {
	reg := buildTestRegistry(t)

	resources := reg.Resources()
	require.Len(t, resources, 1)
	assert.Equal(t, "resource:components/list", resources[0].URI)

	templates := reg.Templates()
	require.Len(t, templates, 1)
	assert.Equal(t, "resource:component/{name}", templates[0].URITemplate)
}

func TestBuildRejectsDuplicates(t *testing.T) {
	_, err := NewBuilder().
		Tool(OperationDescriptor{Name: "get_component", Handler: noopTool}).
		Tool(OperationDescriptor{Name: "get_component", Handler: noopTool}).
		Build()
	assert.Error(t, err)
}

func TestBuildRejectsMissingHandler(t *testing.T) {
	_, err := NewBuilder().
		Tool(OperationDescriptor{Name: "broken"}).
		Build()
	assert.Error(t, err)
}

func TestBuildRejectsInvalidTemplate(t *testing.T) {
	_, err := NewBuilder().
		Template(ResourceDescriptor{URI: "resource:no-placeholders", Handler: noopResource}).
		Build()
	assert.Error(t, err)
}
