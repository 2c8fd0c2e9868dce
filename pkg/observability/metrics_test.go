package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uicatalog/catalog-mcp-go/pkg/breaker"
)

func gatherValue(t *testing.T, p *PrometheusMetricsProvider, name string) float64 {
	t.Helper()
	families, err := p.Gatherer().Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		require.NotEmpty(t, mf.GetMetric())
		m := mf.GetMetric()[0]
		if m.GetCounter() != nil {
			return m.GetCounter().GetValue()
		}
		if m.GetGauge() != nil {
			return m.GetGauge().GetValue()
		}
	}
	t.Fatalf("metric %s not found", name)
	return 0
}

func TestMetricsProviderRecordsRequests(t *testing.T) {
	p, err := NewMetricsProvider(MetricsConfig{ServiceName: "test", ServiceVersion: "0"})
	require.NoError(t, err)

	p.RecordRequest(context.Background(), "tools/call", "success", 12*time.Millisecond)
	p.RecordRequest(context.Background(), "tools/call", "success", 8*time.Millisecond)

	assert.Equal(t, float64(2), gatherValue(t, p, "catalog_request_total"))
}

func TestMetricsProviderRecordsToolCalls(t *testing.T) {
	p, err := NewMetricsProvider(MetricsConfig{ServiceName: "test", ServiceVersion: "0"})
	require.NoError(t, err)

	p.RecordToolCall(context.Background(), "get_component", "error", time.Millisecond)

	assert.Equal(t, float64(1), gatherValue(t, p, "catalog_tool_call_total"))
}

func TestMetricsProviderRecordsBreakerState(t *testing.T) {
	p, err := NewMetricsProvider(MetricsConfig{ServiceName: "test", ServiceVersion: "0"})
	require.NoError(t, err)

	p.RecordBreakerState("catalog-store", breaker.StateOpen)
	assert.Equal(t, float64(breaker.StateOpen), gatherValue(t, p, "catalog_breaker_state"))

	p.RecordBreakerState("catalog-store", breaker.StateClosed)
	assert.Equal(t, float64(breaker.StateClosed), gatherValue(t, p, "catalog_breaker_state"))

	p.RecordBreakerRejection("catalog-store")
	assert.Equal(t, float64(1), gatherValue(t, p, "catalog_breaker_rejections_total"))
}

func TestSeparateProvidersDoNotCollide(t *testing.T) {
	_, err := NewMetricsProvider(MetricsConfig{ServiceName: "a", ServiceVersion: "0"})
	require.NoError(t, err)
	_, err = NewMetricsProvider(MetricsConfig{ServiceName: "b", ServiceVersion: "0"})
	require.NoError(t, err)
}
