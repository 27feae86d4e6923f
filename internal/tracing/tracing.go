// Package tracing wires optional OpenTelemetry tracing for the quote API.
package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Tracer is the process-wide tracer for calculation spans. It stays a no-op
// until Init runs with an endpoint.
var Tracer trace.Tracer = otel.Tracer("costengine")

// Init configures the OpenTelemetry trace provider. With an empty endpoint
// spans are collected but never exported.
func Init(logger *zap.Logger, serviceName, version, otlpEndpoint string) (func(context.Context) error, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
			semconv.ServiceVersionKey.String(version),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	var exporter sdktrace.SpanExporter
	if otlpEndpoint != "" {
		exporter, err = otlptracehttp.New(context.Background(),
			otlptracehttp.WithEndpoint(otlpEndpoint),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
		}
		logger.Info("tracing exports to OTLP endpoint",
			zap.String("op", "tracing.Init"),
			zap.String("endpoint", otlpEndpoint),
		)
	} else {
		exporter = &noopExporter{}
		logger.Debug("tracing enabled without an export endpoint",
			zap.String("op", "tracing.Init"),
		)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	Tracer = otel.Tracer(serviceName)

	return tp.Shutdown, nil
}

// noopExporter drops spans when no endpoint is configured.
type noopExporter struct{}

func (e *noopExporter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	return nil
}

func (e *noopExporter) Shutdown(ctx context.Context) error {
	return nil
}
