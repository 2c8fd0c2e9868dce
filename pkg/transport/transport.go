// Package transport moves JSON-RPC frames between the client and the
// dispatch core. The catalog server speaks newline-delimited JSON over
// stdio, so protocol frames own stdout and logs go to stderr.
package transport

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/uicatalog/catalog-mcp-go/pkg/errors"
	"github.com/uicatalog/catalog-mcp-go/pkg/logging"
	"github.com/uicatalog/catalog-mcp-go/pkg/protocol"
)

// RequestHandler services one decoded request and returns the result payload.
type RequestHandler func(ctx context.Context, req *protocol.Request) (interface{}, error)

// Transport is the server-side frame pump.
type Transport interface {
	// Initialize prepares the transport for use.
	Initialize(ctx context.Context) error
	// Start runs the receive loop; it blocks until the context is
	// canceled, Stop is called, or the peer closes the connection.
	Start(ctx context.Context) error
	// Stop halts the transport and flushes pending output.
	Stop(ctx context.Context) error
	// Send writes one frame to the peer.
	Send(data []byte) error
	// RegisterRequestHandler routes the named method to a handler.
	RegisterRequestHandler(method string, handler RequestHandler)
}

// BaseTransport carries the method routing table shared by transport
// implementations. Handlers are usually all registered before Start, but
// the table is locked anyway since registration is exposed.
type BaseTransport struct {
	mu       sync.RWMutex
	handlers map[string]RequestHandler
	logger   logging.Logger
}

// NewBaseTransport returns a routing table with a no-op logger.
func NewBaseTransport(logger logging.Logger) *BaseTransport {
	if logger == nil {
		logger = logging.Nop()
	}
	return &BaseTransport{
		handlers: make(map[string]RequestHandler),
		logger:   logger,
	}
}

// RegisterRequestHandler routes the named method to a handler.
func (b *BaseTransport) RegisterRequestHandler(method string, handler RequestHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[method] = handler
}

func (b *BaseTransport) handler(method string) (RequestHandler, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	h, ok := b.handlers[method]
	return h, ok
}

// HandleRequest runs the registered handler for req and shapes the outcome
// into a JSON-RPC response. Unknown methods and handler errors become error
// responses; they never tear down the transport.
func (b *BaseTransport) HandleRequest(ctx context.Context, req *protocol.Request) *protocol.Response {
	handler, ok := b.handler(req.Method)
	if !ok {
		return errorResponse(req.ID, errors.NewErrorf(
			errors.CodeMethodNotFound, errors.CategoryProtocol, errors.SeverityError,
			"method %q not supported", req.Method))
	}

	result, err := handler(ctx, req)
	if err != nil {
		return errorResponse(req.ID, err)
	}

	resp, err := protocol.NewResponse(req.ID, result)
	if err != nil {
		b.logger.Error("failed to encode response",
			logging.String("method", req.Method), logging.ErrorField(err))
		return errorResponse(req.ID, errors.WrapError(err,
			errors.CodeInternalError, "failed to encode response",
			errors.CategoryInternal, errors.SeverityError))
	}
	return resp
}

// errorResponse maps an error onto the JSON-RPC error object. Catalog
// errors carry their own code and structured data; anything else is an
// internal error.
func errorResponse(id interface{}, err error) *protocol.Response {
	code := errors.CodeInternalError
	message := err.Error()
	var data interface{}

	if catErr, ok := errors.AsCatalogError(err); ok {
		code = catErr.Code()
		message = catErr.Message()
		data = catErr.Data()
	}

	resp, encErr := protocol.NewErrorResponse(id, code, message, data)
	if encErr != nil {
		// The error data would not marshal; degrade to the bare message.
		resp, _ = protocol.NewErrorResponse(id, code, message, nil)
	}
	return resp
}

// EncodeResponse marshals a response frame.
func EncodeResponse(resp *protocol.Response) ([]byte, error) {
	return json.Marshal(resp)
}
