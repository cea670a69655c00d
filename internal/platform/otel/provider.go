// Package otel wires OpenTelemetry tracing for the gram services.
package otel

import (
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/gram/internal/platform/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// Config is the tracing environment. Spans are exported only when an
// endpoint is set and tracing is not switched off.
type Config struct {
	Endpoint    string  `env:"GRAM_OTEL_ENDPOINT"`
	Enabled     bool    `env:"GRAM_OTEL_ENABLED" envDefault:"true"`
	SampleRatio float64 `env:"GRAM_OTEL_SAMPLE_RATIO" envDefault:"1"`
}

func (c Config) Active() bool {
	return c.Enabled && strings.TrimSpace(c.Endpoint) != ""
}

func (c Config) Validate() error {
	if c.SampleRatio < 0 || c.SampleRatio > 1 {
		return fmt.Errorf("GRAM_OTEL_SAMPLE_RATIO must be between 0 and 1, got %v", c.SampleRatio)
	}
	return nil
}

// sampler keeps the caller's decision for propagated traces and samples new
// roots at the configured ratio.
func (c Config) sampler() sdktrace.Sampler {
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(c.SampleRatio))
}

// Setup registers a global OTLP/HTTP tracer provider for service and returns
// its shutdown func, which flushes pending spans. When tracing is inactive the
// global no-op provider stays in place and shutdown does nothing.
func Setup(ctx context.Context, service string) (shutdown func(context.Context) error, err error) {
	noop := func(context.Context) error { return nil }

	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return noop, err
	}
	if err := config.Validate(cfg); err != nil {
		return noop, err
	}
	if !cfg.Active() {
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(strings.TrimSpace(cfg.Endpoint)))
	if err != nil {
		return noop, fmt.Errorf("otlp exporter: %w", err)
	}
	res, err := resource.Merge(resource.Default(), resource.NewSchemaless(
		semconv.ServiceName(service),
		semconv.ServiceNamespace("gram"),
	))
	if err != nil {
		return noop, fmt.Errorf("otel resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(cfg.sampler()),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return tp.Shutdown, nil
}

// Tracer returns a tracer from the global provider; spans are no-ops until
// Setup registers one.
func Tracer(name string) trace.Tracer {
	return otel.Tracer(name)
}
