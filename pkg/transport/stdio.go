package transport

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os"
	"runtime/debug"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/uicatalog/catalog-mcp-go/pkg/errors"
	"github.com/uicatalog/catalog-mcp-go/pkg/logging"
	"github.com/uicatalog/catalog-mcp-go/pkg/protocol"
)

// maxFrameSize bounds a single newline-delimited frame. Component source
// payloads travel in responses, not requests, so inbound frames stay small.
const maxFrameSize = 1024 * 1024

// StdioTransport reads newline-delimited JSON-RPC frames from stdin and
// writes responses to stdout.
type StdioTransport struct {
	*BaseTransport
	reader    io.Reader
	rawWriter *bufio.Writer
	logger    logging.Logger

	mu       sync.Mutex // protects rawWriter
	done     chan struct{}
	stopOnce sync.Once
}

// StdioOption configures a StdioTransport.
type StdioOption func(*StdioTransport)

// WithReader overrides stdin, mainly for tests.
func WithReader(r io.Reader) StdioOption {
	return func(t *StdioTransport) { t.reader = r }
}

// WithWriter overrides stdout, mainly for tests.
func WithWriter(w io.Writer) StdioOption {
	return func(t *StdioTransport) { t.rawWriter = bufio.NewWriter(w) }
}

// NewStdioTransport builds a transport over stdin/stdout.
func NewStdioTransport(logger logging.Logger, opts ...StdioOption) *StdioTransport {
	if logger == nil {
		logger = logging.Nop()
	}
	t := &StdioTransport{
		BaseTransport: NewBaseTransport(logger),
		reader:        os.Stdin,
		rawWriter:     bufio.NewWriter(os.Stdout),
		logger:        logger,
		done:          make(chan struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Initialize prepares the transport. Stdio needs no setup.
func (t *StdioTransport) Initialize(ctx context.Context) error {
	return nil
}

// Start reads frames until EOF, cancellation or Stop. Each frame is handled
// synchronously; ordering of responses matches ordering of requests.
func (t *StdioTransport) Start(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	scanner := bufio.NewScanner(t.reader)
	scanner.Buffer(make([]byte, 0, 64*1024), maxFrameSize)
	scannerDone := make(chan struct{})

	g.Go(func() error {
		defer close(scannerDone)
		for scanner.Scan() {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case <-t.done:
				return nil
			default:
			}

			line := scanner.Bytes()
			if len(line) == 0 {
				continue
			}
			data := make([]byte, len(line))
			copy(data, line)
			t.processFrame(gctx, data)
		}
		if err := scanner.Err(); err != nil && err != io.EOF {
			return errors.WrapError(err, errors.CodeInternalError,
				"failed to read input stream", errors.CategoryProtocol, errors.SeverityCritical)
		}
		return nil
	})

	g.Go(func() error {
		select {
		case <-gctx.Done():
			t.closeReader()
			return gctx.Err()
		case <-t.done:
			t.closeReader()
			return nil
		case <-scannerDone:
			return nil
		}
	})

	err := g.Wait()
	if err == context.Canceled {
		return nil
	}
	return err
}

// Stop halts the receive loop and flushes buffered output.
func (t *StdioTransport) Stop(ctx context.Context) error {
	var flushErr error
	t.stopOnce.Do(func() {
		close(t.done)
		t.mu.Lock()
		flushErr = t.rawWriter.Flush()
		t.mu.Unlock()
	})
	if flushErr != nil {
		return errors.WrapError(flushErr, errors.CodeInternalError,
			"failed to flush output on stop", errors.CategoryProtocol, errors.SeverityError)
	}
	return nil
}

// Send writes one frame followed by a newline and flushes.
func (t *StdioTransport) Send(data []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, err := t.rawWriter.Write(data); err != nil {
		return errors.WrapError(err, errors.CodeInternalError,
			"failed to write frame", errors.CategoryProtocol, errors.SeverityError)
	}
	if err := t.rawWriter.WriteByte('\n'); err != nil {
		return errors.WrapError(err, errors.CodeInternalError,
			"failed to terminate frame", errors.CategoryProtocol, errors.SeverityError)
	}
	if err := t.rawWriter.Flush(); err != nil {
		return errors.WrapError(err, errors.CodeInternalError,
			"failed to flush frame", errors.CategoryProtocol, errors.SeverityError)
	}
	return nil
}

func (t *StdioTransport) closeReader() {
	if closer, ok := t.reader.(io.Closer); ok {
		_ = closer.Close()
	}
}

// processFrame decodes one inbound frame and writes the response. A handler
// panic is contained to the offending request.
func (t *StdioTransport) processFrame(ctx context.Context, data []byte) {
	defer func() {
		if r := recover(); r != nil {
			t.logger.Error("panic while processing frame",
				logging.Any("panic", r),
				logging.String("stack", string(debug.Stack())))
		}
	}()

	var req protocol.Request
	if err := json.Unmarshal(data, &req); err != nil {
		t.logger.Warn("discarding malformed frame", logging.ErrorField(err))
		t.respond(errorResponse(nil, errors.NewError(errors.CodeParseError,
			"invalid JSON in request frame", errors.CategoryProtocol, errors.SeverityError)))
		return
	}
	if req.Method == "" {
		t.respond(errorResponse(req.ID, errors.NewError(errors.CodeInvalidRequest,
			"request frame has no method", errors.CategoryProtocol, errors.SeverityError)))
		return
	}
	if req.ID == nil {
		// A notification; nothing to answer. The catalog server keeps no
		// notification state, so these are logged and dropped.
		t.logger.Debug("ignoring notification", logging.String("method", req.Method))
		return
	}

	t.respond(t.HandleRequest(ctx, &req))
}

func (t *StdioTransport) respond(resp *protocol.Response) {
	data, err := EncodeResponse(resp)
	if err != nil {
		t.logger.Error("failed to encode response frame", logging.ErrorField(err))
		return
	}
	if err := t.Send(data); err != nil {
		t.logger.Error("failed to send response frame", logging.ErrorField(err))
	}
}
