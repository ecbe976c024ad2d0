package workflow

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/Aleph-Alpha/vecsearch/v1/embedding"
	"github.com/Aleph-Alpha/vecsearch/v1/vectordb"
)

// Logger is the logging contract used by this package.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// Recorder receives the workflow metrics. *metrics.Metrics implements it.
type Recorder interface {
	PointsUpserted(collection, mode string, n int)
	RecordFailed(kind string)
	SearchServed(requestedMode, usedMode string)
	SearchFellBack(collection string)
	ObserveDuration(start time.Time, operation string)
}

// Tracer opens spans around workflow operations. *tracer.Tracer implements it.
type Tracer interface {
	StartSpan(ctx context.Context, name string) (context.Context, trace.Span)
	RecordErrorOnSpan(span trace.Span, err error)
	SetAttributes(span trace.Span, attrs map[string]interface{})
}

// Service runs capability probing, ingestion and search against one store
// with one embedder per mode. It holds no per-call state; concurrent calls
// are as safe as the store and embedders are.
type Service struct {
	store     vectordb.Store
	embedders embedding.Set
	cfg       Config

	logger  Logger
	metrics Recorder
	tracer  Tracer
}

// Option customises a Service.
type Option func(*Service)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(r Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.metrics = r
		}
	}
}

// WithTracer sets the tracer.
func WithTracer(t Tracer) Option {
	return func(s *Service) {
		if t != nil {
			s.tracer = t
		}
	}
}

// NewService builds a Service. store is required; embedders may leave a
// mode unset, in which case operations needing it fail with
// embedding.ErrModelUnavailable.
//
// Example:
//
//	svc, err := workflow.NewService(store, embedding.Set{Dense: dense, Sparse: bm25},
//	    workflow.DefaultConfig(), workflow.WithLogger(log))
//	report, err := svc.Ingest(ctx, records, "cmds", vectordb.ModeDense)
func NewService(store vectordb.Store, embedders embedding.Set, cfg Config, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: store is required", vectordb.ErrInvalidArgument)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Service{
		store:     store,
		embedders: embedders,
		cfg:       cfg.normalized(),
		logger:    nopLogger{},
		metrics:   nopRecorder{},
		tracer:    nopTracer{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Config returns the effective configuration after defaults and clamping.
func (s *Service) Config() Config {
	return s.cfg
}

type nopLogger struct{}

func (nopLogger) Info(string, error, ...map[string]interface{})  {}
func (nopLogger) Debug(string, error, ...map[string]interface{}) {}
func (nopLogger) Warn(string, error, ...map[string]interface{})  {}
func (nopLogger) Error(string, error, ...map[string]interface{}) {}

type nopRecorder struct{}

func (nopRecorder) PointsUpserted(string, string, int) {}
func (nopRecorder) RecordFailed(string)                {}
func (nopRecorder) SearchServed(string, string)        {}
func (nopRecorder) SearchFellBack(string)              {}
func (nopRecorder) ObserveDuration(time.Time, string)  {}

type nopTracer struct{}

func (nopTracer) StartSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return noop.NewTracerProvider().Tracer("").Start(ctx, name)
}
func (nopTracer) RecordErrorOnSpan(trace.Span, error)              {}
func (nopTracer) SetAttributes(trace.Span, map[string]interface{}) {}
