// Package tracing sets up OpenTelemetry tracing for the client binaries.
//
// The client records spans through the global tracer provider; without a
// call to InitTracer those spans go to the no-op provider.
package tracing

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Config configures the tracer provider.
type Config struct {
	// Endpoint is the OTLP gRPC collector host:port. Tracing is disabled
	// when empty.
	Endpoint string `mapstructure:"endpoint"`

	// ServiceName is reported as service.name.
	ServiceName string `mapstructure:"service_name"`

	// ServiceVersion is reported as service.version.
	ServiceVersion string `mapstructure:"service_version"`

	// Insecure disables TLS towards the collector.
	Insecure bool `mapstructure:"insecure"`

	// SampleRate is the sampling ratio (0.0 to 1.0).
	SampleRate float64 `mapstructure:"sample_rate"`
}

// DefaultConfig returns a disabled tracing configuration for serviceName.
func DefaultConfig(serviceName string) Config {
	return Config{
		ServiceName: serviceName,
		Insecure:    true,
		SampleRate:  1.0,
	}
}

// ShutdownFunc flushes and stops the tracer provider.
type ShutdownFunc func(ctx context.Context) error

// InitTracer installs a global tracer provider exporting over OTLP/gRPC.
// With an empty endpoint nothing is installed and the returned shutdown
// function is a no-op.
func InitTracer(ctx context.Context, cfg Config) (ShutdownFunc, error) {
	if cfg.Endpoint == "" {
		log.Debug().Msg("Tracing disabled (no endpoint configured)")
		return func(context.Context) error { return nil }, nil
	}

	opts := []otlptracegrpc.Option{
		otlptracegrpc.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}

	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("tracing: create exporter: %w", err)
	}

	res, err := newResource(cfg)
	if err != nil {
		return nil, fmt.Errorf("tracing: create resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(Sampler(cfg.SampleRate)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	log.Info().
		Str("service", cfg.ServiceName).
		Str("endpoint", cfg.Endpoint).
		Float64("sample_rate", cfg.SampleRate).
		Msg("Tracer initialized")

	return tp.Shutdown, nil
}

// Sampler returns the parent-based sampler for rate.
func Sampler(rate float64) sdktrace.Sampler {
	var root sdktrace.Sampler
	switch {
	case rate >= 1.0:
		root = sdktrace.AlwaysSample()
	case rate <= 0:
		root = sdktrace.NeverSample()
	default:
		root = sdktrace.TraceIDRatioBased(rate)
	}
	return sdktrace.ParentBased(root)
}

func newResource(cfg Config) (*sdkresource.Resource, error) {
	attrs := []attribute.KeyValue{
		attribute.String("service.name", cfg.ServiceName),
	}
	if cfg.ServiceVersion != "" {
		attrs = append(attrs, attribute.String("service.version", cfg.ServiceVersion))
	}
	return sdkresource.Merge(sdkresource.Default(), sdkresource.NewSchemaless(attrs...))
}
