package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PointsUpserted adds n written points for a collection and vector mode.
func (m *Metrics) PointsUpserted(collection, mode string, n int) {
	m.pointsUpserted.WithLabelValues(collection, mode).Add(float64(n))
}

// RecordFailed counts one record that failed with the given error kind.
func (m *Metrics) RecordFailed(kind string) {
	m.recordFailures.WithLabelValues(kind).Inc()
}

// SearchServed counts a search by the mode asked for and the mode used.
func (m *Metrics) SearchServed(requestedMode, usedMode string) {
	m.searchRequests.WithLabelValues(requestedMode, usedMode).Inc()
}

// SearchFellBack counts a sparse search answered by dense vectors.
func (m *Metrics) SearchFellBack(collection string) {
	m.searchFallbacks.WithLabelValues(collection).Inc()
}

// ObserveDuration records the time since start for an operation.
// Example: defer m.ObserveDuration(time.Now(), "ingest")
func (m *Metrics) ObserveDuration(start time.Time, operation string) {
	m.operationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// CreateCounter creates and registers a CounterVec under the namespace and
// service label.
func (m *Metrics) CreateCounter(name, help string, labels []string) *prometheus.CounterVec {
	counter := createCounterVec(m.cfg.Namespace, name, help, labels)
	m.wrapped.MustRegister(counter)
	return counter
}

// CreateHistogram creates and registers a HistogramVec.
func (m *Metrics) CreateHistogram(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	hist := createHistogramVec(m.cfg.Namespace, name, help, labels, buckets)
	m.wrapped.MustRegister(hist)
	return hist
}

func createCounterVec(namespace, name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		},
		labels,
	)
}

func createHistogramVec(namespace, name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
			Buckets:   buckets,
		},
		labels,
	)
}
