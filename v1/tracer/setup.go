package tracer

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

// Logger is the logging contract used by this package.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// Tracer wraps an OpenTelemetry TracerProvider with span helpers. It is safe
// for concurrent use.
type Tracer struct {
	tracer    *trace.TracerProvider
	logger    Logger
	exporting bool
}

// NewClient builds the tracer provider and installs it globally together
// with the W3C trace-context and baggage propagators.
//
// With EnableExport an OTLP/HTTP exporter is attached through a batcher;
// failing to build it is an error rather than a silent no-op.
//
// Example:
//
//	t, err := tracer.NewClient(tracer.Config{ServiceName: "vecsearch"}, log)
//	ctx, span := t.StartSpan(ctx, "workflow.ingest")
//	defer span.End()
func NewClient(cfg Config, logger Logger) (*Tracer, error) {
	if !cfg.EnableExport {
		return newTracer(cfg, logger), nil
	}

	exporter, err := newExporter(cfg)
	if err != nil {
		return nil, err
	}
	t := newTracer(cfg, logger, trace.WithBatcher(exporter))
	t.exporting = true
	logger.Info("exporting spans", nil, map[string]interface{}{"endpoint": cfg.Endpoint, "insecure": cfg.Insecure})
	return t, nil
}

func newExporter(cfg Config) (*otlptrace.Exporter, error) {
	opts := make([]otlptracehttp.Option, 0, 2)
	if cfg.Endpoint != "" {
		opts = append(opts, otlptracehttp.WithEndpoint(cfg.Endpoint))
	}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptrace.New(context.Background(), otlptracehttp.NewClient(opts...))
	if err != nil {
		return nil, fmt.Errorf("tracer: create otlp exporter: %w", err)
	}
	return exporter, nil
}

// newTracer is split out so tests can attach a span recorder.
func newTracer(cfg Config, logger Logger, options ...trace.TracerProviderOption) *Tracer {
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.DeploymentEnvironment(cfg.AppEnv),
		attribute.String("environment", cfg.AppEnv),
	)
	tp := trace.NewTracerProvider(append(options, trace.WithResource(res))...)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return &Tracer{tracer: tp, logger: logger}
}

// Shutdown flushes pending spans and stops the provider.
func (t *Tracer) Shutdown(ctx context.Context) error {
	if t == nil || t.tracer == nil {
		return nil
	}
	return t.tracer.Shutdown(ctx)
}
