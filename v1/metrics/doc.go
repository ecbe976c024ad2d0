// Package metrics records vecsearch's Prometheus metrics.
//
// Every process gets its own registry wrapped with a constant service label.
// The workflow metrics are:
//
//	vecsearch_points_upserted_total{collection,mode}
//	vecsearch_record_failures_total{kind}
//	vecsearch_search_requests_total{requested_mode,used_mode}
//	vecsearch_search_fallbacks_total{collection}
//	vecsearch_operation_duration_seconds{operation}
//
// Long-running processes set Address to serve /metrics for scraping. CLI
// runs finish before any scrape, so they set PushgatewayURL instead and the
// fx lifecycle pushes the registry on stop.
//
//	m := metrics.NewMetrics(metrics.DefaultConfig())
//	m.SearchServed("sparse", "dense")
//	m.SearchFellBack("cmds")
//
// # FX Module Integration
//
// FXModule needs a metrics.Config and a Logger in the container and provides
// both *Metrics and MetricsCollector.
package metrics
