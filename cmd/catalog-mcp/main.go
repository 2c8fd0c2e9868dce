// catalog-mcp serves a UI component catalog to agent clients over stdio.
// Protocol frames own stdout; logs go to stderr and metrics, when enabled,
// are scraped from a separate HTTP listener.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/uicatalog/catalog-mcp-go/pkg/breaker"
	"github.com/uicatalog/catalog-mcp-go/pkg/catalog"
	"github.com/uicatalog/catalog-mcp-go/pkg/config"
	"github.com/uicatalog/catalog-mcp-go/pkg/dispatch"
	"github.com/uicatalog/catalog-mcp-go/pkg/logging"
	"github.com/uicatalog/catalog-mcp-go/pkg/observability"
	"github.com/uicatalog/catalog-mcp-go/pkg/transport"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath string
		logLevel   string
		apiKey     string
	)

	flagSet := pflag.NewFlagSet("catalog-mcp", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to config file (default: ./config/config.yaml)")
	flagSet.StringVar(&logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	flagSet.StringVar(&apiKey, "api-key", "", "API key for authenticated catalog stores (unused with the built-in catalog)")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if apiKey != "" {
		cfg.Server.APIKey = apiKey
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := buildLogger(cfg)
	logger.Info("starting catalog server",
		logging.String("name", cfg.Server.Name),
		logging.String("version", cfg.Server.Version))

	var metrics observability.MetricsProvider = observability.NopMetrics{}
	if cfg.Metrics.Enabled {
		provider, err := observability.NewMetricsProvider(observability.MetricsConfig{
			ServiceName:    cfg.Server.Name,
			ServiceVersion: cfg.Server.Version,
			MetricsPort:    cfg.Metrics.Port,
			MetricsPath:    cfg.Metrics.Path,
		})
		if err != nil {
			return fmt.Errorf("failed to set up metrics: %w", err)
		}
		metrics = provider
	}

	var tracer *observability.TracingProvider
	if cfg.Tracing.Enabled {
		tracer, err = observability.NewTracingProvider(observability.TracingConfig{
			ServiceName:    cfg.Server.Name,
			ServiceVersion: cfg.Server.Version,
			ExporterType:   observability.ExporterType(cfg.Tracing.Exporter),
			Endpoint:       cfg.Tracing.Endpoint,
			Insecure:       cfg.Tracing.Insecure,
			SampleRate:     cfg.Tracing.SampleRate,
		})
		if err != nil {
			return fmt.Errorf("failed to set up tracing: %w", err)
		}
	}

	policy := breaker.IOFailuresOnly
	if cfg.Breaker.FailurePolicy == config.FailurePolicyAll {
		policy = breaker.CountAllFailures
	}
	brk := breaker.New(breaker.Options{
		Name:             "catalog-store",
		FailureThreshold: cfg.Breaker.FailureThreshold,
		ResetTimeout:     cfg.ResetTimeout(),
		FailurePolicy:    policy,
		Logger:           logger,
		OnStateChange: func(name string, state breaker.State) {
			metrics.RecordBreakerState(name, state)
		},
	})

	store := catalog.NewStaticStore(catalog.DefaultComponents())
	reg, err := catalog.BuildRegistry(store)
	if err != nil {
		return fmt.Errorf("failed to build operation registry: %w", err)
	}

	dispatcher := dispatch.New(dispatch.Options{
		Registry:      reg,
		Breaker:       brk,
		Logger:        logger,
		Metrics:       metrics,
		Tracer:        tracer,
		ServerName:    cfg.Server.Name,
		ServerVersion: cfg.Server.Version,
	})

	stdio := transport.NewStdioTransport(logger)
	dispatcher.Register(stdio)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := stdio.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to initialize transport: %w", err)
	}
	if err := metrics.Start(ctx); err != nil {
		return fmt.Errorf("failed to start metrics endpoint: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return stdio.Start(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		return stdio.Stop(context.Background())
	})

	err = g.Wait()

	shutdownCtx := context.Background()
	if shutdownErr := metrics.Shutdown(shutdownCtx); shutdownErr != nil {
		logger.Warn("metrics shutdown failed", logging.ErrorField(shutdownErr))
	}
	if tracer != nil {
		if shutdownErr := tracer.Shutdown(shutdownCtx); shutdownErr != nil {
			logger.Warn("tracing shutdown failed", logging.ErrorField(shutdownErr))
		}
	}

	logger.Info("catalog server stopped")
	return err
}

func buildLogger(cfg *config.Config) logging.Logger {
	var formatter logging.Formatter
	if cfg.Logging.Format == config.LogFormatJSON {
		formatter = logging.NewJSONFormatter()
	} else {
		formatter = logging.NewTextFormatter()
	}
	logger := logging.New(os.Stderr, formatter)
	logger.SetLevel(logging.ParseLevel(cfg.Logging.Level))
	return logger
}
