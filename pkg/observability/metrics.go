// Package observability provides Prometheus metrics and OpenTelemetry
// tracing for the catalog server. The transport owns stdout, so metrics are
// scraped from a separate HTTP listener.
package observability

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/uicatalog/catalog-mcp-go/pkg/breaker"
)

// MetricsConfig configures the metrics provider.
type MetricsConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string

	MetricsPath string // default /metrics
	MetricsPort int    // default 9090

	Namespace        string    // default catalog
	HistogramBuckets []float64 // request latency buckets in milliseconds

	ConstLabels prometheus.Labels
}

// MetricsProvider records the catalog server's operational metrics.
type MetricsProvider interface {
	RecordRequest(ctx context.Context, method, status string, duration time.Duration)
	RecordToolCall(ctx context.Context, tool, status string, duration time.Duration)
	RecordBreakerState(dependency string, state breaker.State)
	RecordBreakerRejection(dependency string)

	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// PrometheusMetricsProvider implements MetricsProvider over a private
// registry, so repeated construction in tests never collides.
type PrometheusMetricsProvider struct {
	config   MetricsConfig
	registry *prometheus.Registry
	server   *http.Server

	requestDuration  *prometheus.HistogramVec
	requestTotal     *prometheus.CounterVec
	toolCallDuration *prometheus.HistogramVec
	toolCallTotal    *prometheus.CounterVec

	breakerState      *prometheus.GaugeVec
	breakerRejections *prometheus.CounterVec
}

// NewMetricsProvider creates a Prometheus metrics provider.
func NewMetricsProvider(config MetricsConfig) (*PrometheusMetricsProvider, error) {
	if config.Namespace == "" {
		config.Namespace = "catalog"
	}
	if config.MetricsPath == "" {
		config.MetricsPath = "/metrics"
	}
	if config.MetricsPort == 0 {
		config.MetricsPort = 9090
	}
	if config.HistogramBuckets == nil {
		config.HistogramBuckets = []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000}
	}
	if config.ConstLabels == nil {
		config.ConstLabels = prometheus.Labels{}
	}
	config.ConstLabels["service"] = config.ServiceName
	config.ConstLabels["version"] = config.ServiceVersion
	config.ConstLabels["environment"] = config.Environment

	p := &PrometheusMetricsProvider{
		config:   config,
		registry: prometheus.NewRegistry(),
	}
	p.initializeMetrics()
	if err := p.registerMetrics(); err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}
	return p, nil
}

func (p *PrometheusMetricsProvider) initializeMetrics() {
	p.requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   p.config.Namespace,
			Name:        "request_duration_milliseconds",
			Help:        "Duration of handled requests in milliseconds",
			Buckets:     p.config.HistogramBuckets,
			ConstLabels: p.config.ConstLabels,
		},
		[]string{"method", "status"},
	)

	p.requestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   p.config.Namespace,
			Name:        "request_total",
			Help:        "Total number of handled requests",
			ConstLabels: p.config.ConstLabels,
		},
		[]string{"method", "status"},
	)

	p.toolCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   p.config.Namespace,
			Name:        "tool_call_duration_milliseconds",
			Help:        "Duration of tool invocations in milliseconds",
			Buckets:     p.config.HistogramBuckets,
			ConstLabels: p.config.ConstLabels,
		},
		[]string{"tool", "status"},
	)

	p.toolCallTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   p.config.Namespace,
			Name:        "tool_call_total",
			Help:        "Total number of tool invocations",
			ConstLabels: p.config.ConstLabels,
		},
		[]string{"tool", "status"},
	)

	p.breakerState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace:   p.config.Namespace,
			Name:        "breaker_state",
			Help:        "Circuit breaker state (0=closed, 1=open, 2=half-open)",
			ConstLabels: p.config.ConstLabels,
		},
		[]string{"dependency"},
	)

	p.breakerRejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   p.config.Namespace,
			Name:        "breaker_rejections_total",
			Help:        "Calls rejected by an open circuit breaker",
			ConstLabels: p.config.ConstLabels,
		},
		[]string{"dependency"},
	)
}

func (p *PrometheusMetricsProvider) registerMetrics() error {
	collectors := []prometheus.Collector{
		p.requestDuration,
		p.requestTotal,
		p.toolCallDuration,
		p.toolCallTotal,
		p.breakerState,
		p.breakerRejections,
	}
	for _, c := range collectors {
		if err := p.registry.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// RecordRequest records one handled request.
func (p *PrometheusMetricsProvider) RecordRequest(ctx context.Context, method, status string, duration time.Duration) {
	ms := float64(duration.Milliseconds())
	p.requestDuration.WithLabelValues(method, status).Observe(ms)
	p.requestTotal.WithLabelValues(method, status).Inc()
}

// RecordToolCall records one tool invocation.
func (p *PrometheusMetricsProvider) RecordToolCall(ctx context.Context, tool, status string, duration time.Duration) {
	ms := float64(duration.Milliseconds())
	p.toolCallDuration.WithLabelValues(tool, status).Observe(ms)
	p.toolCallTotal.WithLabelValues(tool, status).Inc()
}

// RecordBreakerState records a breaker state transition.
func (p *PrometheusMetricsProvider) RecordBreakerState(dependency string, state breaker.State) {
	p.breakerState.WithLabelValues(dependency).Set(float64(state))
}

// RecordBreakerRejection counts a call rejected without being attempted.
func (p *PrometheusMetricsProvider) RecordBreakerRejection(dependency string) {
	p.breakerRejections.WithLabelValues(dependency).Inc()
}

// Gatherer exposes the private registry, mainly for tests.
func (p *PrometheusMetricsProvider) Gatherer() prometheus.Gatherer {
	return p.registry
}

// Start serves the scrape endpoint in the background.
func (p *PrometheusMetricsProvider) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.Handle(p.config.MetricsPath, promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{}))

	p.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", p.config.MetricsPort),
		Handler: mux,
	}

	go func() {
		_ = p.server.ListenAndServe()
	}()

	return nil
}

// Shutdown stops the scrape endpoint.
func (p *PrometheusMetricsProvider) Shutdown(ctx context.Context) error {
	if p.server != nil {
		return p.server.Shutdown(ctx)
	}
	return nil
}

// NopMetrics discards all recordings.
type NopMetrics struct{}

func (NopMetrics) RecordRequest(context.Context, string, string, time.Duration)  {}
func (NopMetrics) RecordToolCall(context.Context, string, string, time.Duration) {}
func (NopMetrics) RecordBreakerState(string, breaker.State)                      {}
func (NopMetrics) RecordBreakerRejection(string)                                 {}
func (NopMetrics) Start(context.Context) error                                   { return nil }
func (NopMetrics) Shutdown(context.Context) error                                { return nil }
