// Package dispatch routes decoded protocol requests to registry handlers.
// It is the single entry point between the transport and the catalog:
// argument validation, circuit breaking for external operations, error
// normalization, logging, metrics and tracing all happen here.
package dispatch

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/uicatalog/catalog-mcp-go/pkg/breaker"
	"github.com/uicatalog/catalog-mcp-go/pkg/errors"
	"github.com/uicatalog/catalog-mcp-go/pkg/logging"
	"github.com/uicatalog/catalog-mcp-go/pkg/observability"
	"github.com/uicatalog/catalog-mcp-go/pkg/protocol"
	"github.com/uicatalog/catalog-mcp-go/pkg/registry"
	"github.com/uicatalog/catalog-mcp-go/pkg/transport"
)

// Options configures a Dispatcher. Registry is required; the rest default
// to inert implementations.
type Options struct {
	Registry *registry.Registry
	// Breaker guards operations flagged External. Nil disables breaking.
	Breaker *breaker.Breaker
	Logger  logging.Logger
	Metrics observability.MetricsProvider
	// Tracer adds a span per request when set.
	Tracer *observability.TracingProvider

	ServerName    string
	ServerVersion string
}

// Dispatcher services protocol requests against an immutable registry.
type Dispatcher struct {
	registry *registry.Registry
	breaker  *breaker.Breaker
	logger   logging.Logger
	metrics  observability.MetricsProvider
	tracer   *observability.TracingProvider

	serverInfo protocol.ServerInfo
}

// New builds a Dispatcher.
func New(opts Options) *Dispatcher {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	var metrics observability.MetricsProvider = opts.Metrics
	if metrics == nil {
		metrics = observability.NopMetrics{}
	}
	name := opts.ServerName
	if name == "" {
		name = "catalog-mcp"
	}
	version := opts.ServerVersion
	if version == "" {
		version = "dev"
	}
	return &Dispatcher{
		registry:   opts.Registry,
		breaker:    opts.Breaker,
		logger:     logger,
		metrics:    metrics,
		tracer:     opts.Tracer,
		serverInfo: protocol.ServerInfo{Name: name, Version: version},
	}
}

// Register routes every protocol method onto the transport.
func (d *Dispatcher) Register(t transport.Transport) {
	t.RegisterRequestHandler(protocol.MethodInitialize, d.instrumented(protocol.MethodInitialize, d.handleInitialize))
	t.RegisterRequestHandler(protocol.MethodPing, d.instrumented(protocol.MethodPing, d.handlePing))
	t.RegisterRequestHandler(protocol.MethodListTools, d.instrumented(protocol.MethodListTools, d.handleListTools))
	t.RegisterRequestHandler(protocol.MethodCallTool, d.instrumented(protocol.MethodCallTool, d.handleCallTool))
	t.RegisterRequestHandler(protocol.MethodListResources, d.instrumented(protocol.MethodListResources, d.handleListResources))
	t.RegisterRequestHandler(protocol.MethodReadResource, d.instrumented(protocol.MethodReadResource, d.handleReadResource))
	t.RegisterRequestHandler(protocol.MethodListPrompts, d.instrumented(protocol.MethodListPrompts, d.handleListPrompts))
	t.RegisterRequestHandler(protocol.MethodGetPrompt, d.instrumented(protocol.MethodGetPrompt, d.handleGetPrompt))
}

// instrumented wraps a method handler with request-scoped logging, metrics
// and an optional span. Logs carry the method name only, never parameter
// contents; component payloads can be large and resource URIs are enough.
func (d *Dispatcher) instrumented(method string, handler transport.RequestHandler) transport.RequestHandler {
	return func(ctx context.Context, req *protocol.Request) (interface{}, error) {
		requestID := uuid.NewString()
		ctx = logging.ContextWithRequestID(ctx, requestID)
		logger := d.logger.WithContext(ctx)

		if d.tracer != nil {
			spanCtx, span := d.tracer.StartMethodSpan(ctx, method)
			ctx = spanCtx
			defer span.End()
		}

		logger.Debug("request received", logging.String("method", method))
		start := time.Now()

		result, err := handler(ctx, req)

		duration := time.Since(start)
		status := "success"
		if err != nil {
			status = "error"
			if d.tracer != nil {
				d.tracer.RecordError(ctx, err)
			}
			logger.WithError(err).Error("request failed",
				logging.String("method", method),
				logging.Duration("duration", duration))
		} else {
			logger.Debug("request completed",
				logging.String("method", method),
				logging.Duration("duration", duration))
		}
		d.metrics.RecordRequest(ctx, method, status, duration)

		return result, err
	}
}

func unmarshalParams(req *protocol.Request, target interface{}) error {
	if len(req.Params) == 0 {
		return nil
	}
	if err := json.Unmarshal(req.Params, target); err != nil {
		return errors.WrapError(err, errors.CodeInvalidParams,
			"invalid parameters for "+req.Method,
			errors.CategoryValidation, errors.SeverityError)
	}
	return nil
}

func (d *Dispatcher) handleInitialize(ctx context.Context, req *protocol.Request) (interface{}, error) {
	var params protocol.InitializeParams
	if err := unmarshalParams(req, &params); err != nil {
		return nil, err
	}

	if params.ClientInfo.Name != "" {
		d.logger.Info("client connected",
			logging.String("client", params.ClientInfo.Name),
			logging.String("clientVersion", params.ClientInfo.Version))
	}

	return &protocol.InitializeResult{
		ProtocolVersion: protocol.ProtocolVersion,
		ServerInfo:      d.serverInfo,
		Capabilities: map[string]interface{}{
			"tools":     map[string]interface{}{},
			"resources": map[string]interface{}{},
			"prompts":   map[string]interface{}{},
		},
	}, nil
}

func (d *Dispatcher) handlePing(ctx context.Context, req *protocol.Request) (interface{}, error) {
	return map[string]interface{}{}, nil
}

func (d *Dispatcher) handleListTools(ctx context.Context, req *protocol.Request) (interface{}, error) {
	return &protocol.ListToolsResult{Tools: d.registry.Tools()}, nil
}

// handleCallTool is the one path where errors split: lookup and validation
// failures are protocol errors raised before the handler runs, while
// handler faults and breaker rejections come back as an IsError text
// result so the calling agent sees a readable message.
func (d *Dispatcher) handleCallTool(ctx context.Context, req *protocol.Request) (interface{}, error) {
	var params protocol.CallToolParams
	if err := unmarshalParams(req, &params); err != nil {
		return nil, err
	}

	op, err := d.registry.Operation(params.Name)
	if err != nil {
		return nil, err
	}

	if op.Validate != nil {
		if err := op.Validate(params.Arguments); err != nil {
			return nil, err
		}
	}

	start := time.Now()
	result, err := d.invoke(ctx, op, params.Arguments)
	duration := time.Since(start)

	if err != nil {
		d.metrics.RecordToolCall(ctx, params.Name, "error", duration)
		d.logger.WithContext(ctx).WithError(err).Warn("tool call failed",
			logging.String("tool", params.Name))
		return protocol.ErrorResult(errorText(err)), nil
	}

	d.metrics.RecordToolCall(ctx, params.Name, "success", duration)
	return result, nil
}

// invoke runs the handler, through the breaker when the operation is
// flagged External.
func (d *Dispatcher) invoke(ctx context.Context, op *registry.OperationDescriptor, args map[string]interface{}) (*protocol.CallToolResult, error) {
	if !op.External || d.breaker == nil {
		return op.Handler(ctx, args)
	}

	out, err := d.breaker.Execute(ctx, func(ctx context.Context) (interface{}, error) {
		return op.Handler(ctx, args)
	})
	if err != nil {
		if errors.IsCircuitOpen(err) {
			d.metrics.RecordBreakerRejection(d.breaker.Name())
		}
		return nil, err
	}
	result, ok := out.(*protocol.CallToolResult)
	if !ok {
		return nil, errors.NewError(errors.CodeInternalError,
			"tool handler returned unexpected result type",
			errors.CategoryInternal, errors.SeverityError)
	}
	return result, nil
}

func (d *Dispatcher) handleListResources(ctx context.Context, req *protocol.Request) (interface{}, error) {
	return &protocol.ListResourcesResult{
		Resources: d.registry.Resources(),
		Templates: d.registry.Templates(),
	}, nil
}

func (d *Dispatcher) handleReadResource(ctx context.Context, req *protocol.Request) (interface{}, error) {
	var params protocol.ReadResourceParams
	if err := unmarshalParams(req, &params); err != nil {
		return nil, err
	}
	if params.URI == "" {
		return nil, errors.MissingParameter("uri")
	}

	res, uriParams, err := d.registry.ResolveResource(params.URI)
	if err != nil {
		return nil, err
	}
	return res.Handler(ctx, params.URI, uriParams)
}

func (d *Dispatcher) handleListPrompts(ctx context.Context, req *protocol.Request) (interface{}, error) {
	return &protocol.ListPromptsResult{Prompts: d.registry.Prompts()}, nil
}

// handleGetPrompt mirrors tool-call error shaping: the prompt must exist
// and required arguments must be present, but a handler fault is rendered
// into the prompt text rather than failing the request.
func (d *Dispatcher) handleGetPrompt(ctx context.Context, req *protocol.Request) (interface{}, error) {
	var params protocol.GetPromptParams
	if err := unmarshalParams(req, &params); err != nil {
		return nil, err
	}

	prompt, err := d.registry.Prompt(params.Name)
	if err != nil {
		return nil, err
	}

	for _, arg := range prompt.Arguments {
		if arg.Required && params.Arguments[arg.Name] == "" {
			return nil, errors.MissingParameter(arg.Name)
		}
	}

	result, err := prompt.Handler(ctx, params.Arguments)
	if err != nil {
		d.logger.WithContext(ctx).WithError(err).Warn("prompt rendering failed",
			logging.String("prompt", params.Name))
		return &protocol.GetPromptResult{
			Description: "Error rendering prompt",
			Messages: []protocol.PromptMessage{{
				Role:    "user",
				Content: protocol.TextContent("Error: " + errorText(err)),
			}},
		}, nil
	}
	return result, nil
}

// errorText produces the client-facing message for an error envelope.
func errorText(err error) string {
	if catErr, ok := errors.AsCatalogError(err); ok {
		return catErr.Message()
	}
	return err.Error()
}
