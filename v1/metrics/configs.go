package metrics

import "os"

// Default port for the metrics server if none is specified.
const DefaultMetricsAddress = ":9090"

// DefaultNamespace prefixes every workflow metric.
const DefaultNamespace = "vecsearch"

// Config defines how metrics are exposed and collected.
type Config struct {
	// Address is where the /metrics HTTP server listens. Empty disables the
	// server, which is the normal setting for one-shot CLI runs.
	Address string `yaml:"address" envconfig:"METRICS_ADDRESS"`

	// EnableDefaultCollectors registers the Go runtime, process and build
	// info collectors.
	EnableDefaultCollectors bool `yaml:"enable_default_collectors" envconfig:"METRICS_ENABLE_DEFAULT_COLLECTORS"`

	// Namespace prefixes metric names, e.g. vecsearch_points_upserted_total.
	Namespace string `yaml:"namespace" envconfig:"METRICS_NAMESPACE"`

	// ServiceName is attached to every metric as the service label.
	ServiceName string `yaml:"service_name" envconfig:"METRICS_SERVICE_NAME"`

	// PushgatewayURL, when set, makes the lifecycle push all metrics to a
	// Prometheus Pushgateway on stop. Batch runs end before a scrape could
	// see them otherwise.
	PushgatewayURL string `yaml:"pushgateway_url" envconfig:"METRICS_PUSHGATEWAY_URL"`

	// PushJob is the Pushgateway job name. Defaults to the service name.
	PushJob string `yaml:"push_job" envconfig:"METRICS_PUSH_JOB"`
}

// DefaultConfig has no server and no push; metrics are still recorded.
func DefaultConfig() Config {
	return Config{
		Namespace:   DefaultNamespace,
		ServiceName: "vecsearch",
	}
}

// ApplyEnv overrides fields from the METRICS_* variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("METRICS_ADDRESS"); v != "" {
		c.Address = v
	}
	if v := os.Getenv("METRICS_ENABLE_DEFAULT_COLLECTORS"); v != "" {
		c.EnableDefaultCollectors = v == "true" || v == "1"
	}
	if v := os.Getenv("METRICS_NAMESPACE"); v != "" {
		c.Namespace = v
	}
	if v := os.Getenv("METRICS_SERVICE_NAME"); v != "" {
		c.ServiceName = v
	}
	if v := os.Getenv("METRICS_PUSHGATEWAY_URL"); v != "" {
		c.PushgatewayURL = v
	}
	if v := os.Getenv("METRICS_PUSH_JOB"); v != "" {
		c.PushJob = v
	}
}
