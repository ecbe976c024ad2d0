package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsCollector is implemented by *Metrics. The workflow depends on a
// subset of it.
type MetricsCollector interface {
	PointsUpserted(collection, mode string, n int)
	RecordFailed(kind string)
	SearchServed(requestedMode, usedMode string)
	SearchFellBack(collection string)
	ObserveDuration(start time.Time, operation string)

	CreateCounter(name, help string, labels []string) *prometheus.CounterVec
	CreateHistogram(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec
}

var _ MetricsCollector = (*Metrics)(nil)
