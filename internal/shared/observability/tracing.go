package observability

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"doccomplete/internal/shared/version"
)

// Tracer is the shared tracer for scan and per-file spans. Without
// InitTracing it is backed by the default no-op provider.
var Tracer = otel.Tracer("doccomplete")

// InitTracing wires an OTLP gRPC exporter when an endpoint is configured.
// The returned shutdown function flushes pending spans.
func InitTracing(ctx context.Context, endpoint string) (func(context.Context) error, error) {
	if endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("create otlp exporter: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
	)
	otel.SetTracerProvider(provider)
	Tracer = provider.Tracer("doccomplete", trace.WithInstrumentationVersion(version.Version))

	slog.Info("tracing enabled", "endpoint", endpoint)
	return provider.Shutdown, nil
}
