package logging

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	caterrors "github.com/uicatalog/catalog-mcp-go/pkg/errors"
)

func newTestLogger(buf *bytes.Buffer) Logger {
	return New(buf, &TextFormatter{DisableColors: true, DisableTimestamp: true})
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf)
	logger.SetLevel(WarnLevel)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	out := buf.String()
	assert.NotContains(t, out, "debug message")
	assert.NotContains(t, out, "info message")
	assert.Contains(t, out, "warn message")
	assert.Contains(t, out, "error message")
}

func TestFieldsAreRendered(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf)

	logger.Info("dispatching", String("operation", "get_component"), Int("attempt", 1))

	out := buf.String()
	assert.Contains(t, out, "attempt=1")
	// operation promoted into the line header when component is absent
	assert.Contains(t, out, "operation=get_component")
}

func TestWithFieldsDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := newTestLogger(&buf)
	child := parent.WithFields(String("component", "dispatcher"))

	parent.Info("from parent")
	child.Info("from child")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.NotContains(t, lines[0], "dispatcher")
	assert.Contains(t, lines[1], "dispatcher")
}

func TestWithContextRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf)

	ctx := ContextWithRequestID(context.Background(), "req-42")
	logger.WithContext(ctx).Info("handled")

	assert.Contains(t, buf.String(), "[req-42]")
}

func TestWithErrorExtractsCatalogErrorContext(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf)

	logger.WithError(caterrors.CircuitOpen("catalog-store")).Warn("call shed")

	out := buf.String()
	assert.Contains(t, out, "error_category=circuit_open")
	assert.Contains(t, out, "call shed")
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, &JSONFormatter{DisableTimestamp: true})

	logger.Error("lookup failed", ErrorField(stderrors.New("absent")), String("operation", "get_component"))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "ERROR", decoded["level"])
	assert.Equal(t, "lookup failed", decoded["message"])
	assert.Equal(t, "absent", decoded["error"])
	assert.Equal(t, "get_component", decoded["operation"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DebugLevel, ParseLevel("debug"))
	assert.Equal(t, ErrorLevel, ParseLevel("error"))
	assert.Equal(t, InfoLevel, ParseLevel("unknown"))
}
