package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequestMarshalsParams(t *testing.T) {
	req, err := NewRequest("1", MethodCallTool, CallToolParams{
		Name:      "get_component",
		Arguments: map[string]interface{}{"componentName": "AnimatedList"},
	})
	require.NoError(t, err)
	assert.Equal(t, JSONRPCVersion, req.JSONRPC)
	assert.Equal(t, MethodCallTool, req.Method)

	var params CallToolParams
	require.NoError(t, json.Unmarshal(req.Params, &params))
	assert.Equal(t, "get_component", params.Name)
}

func TestNewErrorResponse(t *testing.T) {
	resp, err := NewErrorResponse(7, -32601, "method not found", nil)
	require.NoError(t, err)
	require.NotNil(t, resp.Error)
	assert.Equal(t, -32601, resp.Error.Code)
	assert.Contains(t, resp.Error.Error(), "method not found")
	assert.Nil(t, resp.Result)
}

func TestTextResultEnvelopeNeverEmpty(t *testing.T) {
	res := TextResult("source text")
	require.Len(t, res.Content, 1)
	assert.Equal(t, "text", res.Content[0].Type)
	assert.False(t, res.IsError)

	errRes := ErrorResult("component \"Ghost\" not found in catalog")
	require.Len(t, errRes.Content, 1)
	assert.True(t, errRes.IsError)
	assert.NotEmpty(t, errRes.Content[0].Text)
}

func TestResponseJSONShape(t *testing.T) {
	resp, err := NewResponse("abc", ListToolsResult{Tools: []Tool{{Name: "list_components"}}})
	require.NoError(t, err)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"jsonrpc":"2.0"`)
	assert.Contains(t, string(raw), `"list_components"`)
}
