package metrics

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Metrics owns the Prometheus registry, the optional /metrics server and the
// workflow metrics.
type Metrics struct {
	// Server exposes /metrics. It is nil when Config.Address is empty.
	Server *http.Server

	// Registry holds every metric registered by this process.
	Registry *prometheus.Registry

	cfg Config

	// wrapped registers through the constant service label.
	wrapped prometheus.Registerer

	pointsUpserted    *prometheus.CounterVec
	recordFailures    *prometheus.CounterVec
	searchRequests    *prometheus.CounterVec
	searchFallbacks   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
}

// NewMetrics builds a dedicated registry, wraps it with a constant service
// label and registers the workflow metrics.
//
// Example:
//
//	m := metrics.NewMetrics(metrics.Config{Namespace: "vecsearch", ServiceName: "vecsearch"})
//	m.PointsUpserted("cmds", "dense", 4)
func NewMetrics(cfg Config) *Metrics {
	if cfg.Namespace == "" {
		cfg.Namespace = DefaultNamespace
	}

	registry := prometheus.NewRegistry()

	// All metrics emitted by this process carry service="<cfg.ServiceName>".
	wrappedRegistry := prometheus.WrapRegistererWith(
		prometheus.Labels{"service": cfg.ServiceName},
		registry,
	)

	m := &Metrics{
		Registry: registry,
		cfg:      cfg,
		wrapped:  wrappedRegistry,
	}

	ns := cfg.Namespace
	m.pointsUpserted = createCounterVec(ns, "points_upserted_total", "Points written to the vector store", []string{"collection", "mode"})
	m.recordFailures = createCounterVec(ns, "record_failures_total", "Records that could not be ingested, by error kind", []string{"kind"})
	m.searchRequests = createCounterVec(ns, "search_requests_total", "Search requests by requested and used mode", []string{"requested_mode", "used_mode"})
	m.searchFallbacks = createCounterVec(ns, "search_fallbacks_total", "Sparse searches that fell back to dense", []string{"collection"})
	m.operationDuration = createHistogramVec(ns, "operation_duration_seconds", "Duration of workflow operations in seconds", []string{"operation"}, prometheus.DefBuckets)

	wrappedRegistry.MustRegister(
		m.pointsUpserted,
		m.recordFailures,
		m.searchRequests,
		m.searchFallbacks,
		m.operationDuration,
	)

	if cfg.EnableDefaultCollectors {
		wrappedRegistry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	if cfg.Address != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		m.Server = &http.Server{
			Addr:    cfg.Address,
			Handler: mux,
		}
	}

	return m
}

// Push sends the registry to the configured Pushgateway. It is a no-op
// without PushgatewayURL.
func (m *Metrics) Push(ctx context.Context) error {
	if m.cfg.PushgatewayURL == "" {
		return nil
	}
	job := m.cfg.PushJob
	if job == "" {
		job = m.cfg.ServiceName
	}
	if job == "" {
		job = DefaultNamespace
	}
	if err := push.New(m.cfg.PushgatewayURL, job).
		Gatherer(m.Registry).
		PushContext(ctx); err != nil {
		return fmt.Errorf("push metrics to %s: %w", m.cfg.PushgatewayURL, err)
	}
	return nil
}
