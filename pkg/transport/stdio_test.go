package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uicatalog/catalog-mcp-go/pkg/errors"
	"github.com/uicatalog/catalog-mcp-go/pkg/logging"
	"github.com/uicatalog/catalog-mcp-go/pkg/protocol"
)

func runTransport(t *testing.T, input string, register func(*StdioTransport)) []protocol.Response {
	t.Helper()

	var out bytes.Buffer
	tr := NewStdioTransport(logging.Nop(), WithReader(strings.NewReader(input)), WithWriter(&out))
	register(tr)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, tr.Initialize(ctx))
	require.NoError(t, tr.Start(ctx))
	require.NoError(t, tr.Stop(ctx))

	var responses []protocol.Response
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		if line == "" {
			continue
		}
		var resp protocol.Response
		require.NoError(t, json.Unmarshal([]byte(line), &resp))
		responses = append(responses, resp)
	}
	return responses
}

func TestStdioTransportDispatchesRequest(t *testing.T) {
	input := `{"jsonrpc":"2.0","id":1,"method":"ping"}` + "\n"

	responses := runTransport(t, input, func(tr *StdioTransport) {
		tr.RegisterRequestHandler(protocol.MethodPing, func(ctx context.Context, req *protocol.Request) (interface{}, error) {
			return map[string]string{"status": "ok"}, nil
		})
	})

	require.Len(t, responses, 1)
	resp := responses[0]
	assert.Equal(t, float64(1), resp.ID)
	require.Nil(t, resp.Error)
	assert.JSONEq(t, `{"status":"ok"}`, string(resp.Result))
}

func TestStdioTransportResponseOrderMatchesRequests(t *testing.T) {
	input := `{"jsonrpc":"2.0","id":"a","method":"echo","params":{"n":1}}` + "\n" +
		`{"jsonrpc":"2.0","id":"b","method":"echo","params":{"n":2}}` + "\n"

	responses := runTransport(t, input, func(tr *StdioTransport) {
		tr.RegisterRequestHandler("echo", func(ctx context.Context, req *protocol.Request) (interface{}, error) {
			var params map[string]int
			require.NoError(t, json.Unmarshal(req.Params, &params))
			return params, nil
		})
	})

	require.Len(t, responses, 2)
	assert.Equal(t, "a", responses[0].ID)
	assert.Equal(t, "b", responses[1].ID)
}

func TestStdioTransportUnknownMethod(t *testing.T) {
	input := `{"jsonrpc":"2.0","id":7,"method":"no/such"}` + "\n"

	responses := runTransport(t, input, func(tr *StdioTransport) {})

	require.Len(t, responses, 1)
	require.NotNil(t, responses[0].Error)
	assert.Equal(t, errors.CodeMethodNotFound, responses[0].Error.Code)
}

func TestStdioTransportCatalogErrorCodeSurfaces(t *testing.T) {
	input := `{"jsonrpc":"2.0","id":3,"method":"tools/call"}` + "\n"

	responses := runTransport(t, input, func(tr *StdioTransport) {
		tr.RegisterRequestHandler(protocol.MethodCallTool, func(ctx context.Context, req *protocol.Request) (interface{}, error) {
			return nil, errors.OperationNotFound("bogus_tool")
		})
	})

	require.Len(t, responses, 1)
	require.NotNil(t, responses[0].Error)
	assert.Equal(t, errors.CodeOperationNotFound, responses[0].Error.Code)
	assert.Contains(t, responses[0].Error.Message, "bogus_tool")
}

func TestStdioTransportMalformedFrame(t *testing.T) {
	input := "{not json}\n" + `{"jsonrpc":"2.0","id":1,"method":"ping"}` + "\n"

	responses := runTransport(t, input, func(tr *StdioTransport) {
		tr.RegisterRequestHandler(protocol.MethodPing, func(ctx context.Context, req *protocol.Request) (interface{}, error) {
			return map[string]string{}, nil
		})
	})

	// Parse error answered with a null id, then the valid request proceeds.
	require.Len(t, responses, 2)
	require.NotNil(t, responses[0].Error)
	assert.Equal(t, errors.CodeParseError, responses[0].Error.Code)
	assert.Nil(t, responses[1].Error)
}

func TestStdioTransportIgnoresNotifications(t *testing.T) {
	input := `{"jsonrpc":"2.0","method":"notifications/initialized"}` + "\n" +
		`{"jsonrpc":"2.0","id":1,"method":"ping"}` + "\n"

	calls := 0
	responses := runTransport(t, input, func(tr *StdioTransport) {
		tr.RegisterRequestHandler(protocol.MethodPing, func(ctx context.Context, req *protocol.Request) (interface{}, error) {
			calls++
			return map[string]string{}, nil
		})
	})

	assert.Equal(t, 1, calls)
	require.Len(t, responses, 1)
}

func TestStdioTransportHandlerPanicIsContained(t *testing.T) {
	input := `{"jsonrpc":"2.0","id":1,"method":"boom"}` + "\n" +
		`{"jsonrpc":"2.0","id":2,"method":"ping"}` + "\n"

	responses := runTransport(t, input, func(tr *StdioTransport) {
		tr.RegisterRequestHandler("boom", func(ctx context.Context, req *protocol.Request) (interface{}, error) {
			panic("handler exploded")
		})
		tr.RegisterRequestHandler(protocol.MethodPing, func(ctx context.Context, req *protocol.Request) (interface{}, error) {
			return map[string]string{}, nil
		})
	})

	// The panicking request produces no response; the next one still works.
	require.Len(t, responses, 1)
	assert.Equal(t, float64(2), responses[0].ID)
}

func TestStdioTransportStopIsIdempotent(t *testing.T) {
	tr := NewStdioTransport(logging.Nop(), WithReader(strings.NewReader("")), WithWriter(&bytes.Buffer{}))
	ctx := context.Background()
	require.NoError(t, tr.Stop(ctx))
	require.NoError(t, tr.Stop(ctx))
}
