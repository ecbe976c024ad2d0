package tracer

import "os"

// Config controls the OpenTelemetry tracer provider.
type Config struct {
	// ServiceName is the service.name resource attribute.
	ServiceName string `yaml:"service_name" envconfig:"TRACER_SERVICE_NAME"`

	// AppEnv is the deployment environment, e.g. "production".
	AppEnv string `yaml:"app_env" envconfig:"APP_ENV"`

	// EnableExport sends spans to an OTLP/HTTP collector. Without it spans
	// are created and sampled but never leave the process.
	EnableExport bool `yaml:"enable_export" envconfig:"TRACER_ENABLE_EXPORT"`

	// Endpoint is the collector host:port. Empty uses the exporter's own
	// default and OTEL_EXPORTER_OTLP_* variables.
	Endpoint string `yaml:"endpoint" envconfig:"TRACER_ENDPOINT"`

	// Insecure disables TLS towards the collector.
	Insecure bool `yaml:"insecure" envconfig:"TRACER_INSECURE"`
}

// DefaultConfig creates spans without exporting them.
func DefaultConfig() Config {
	return Config{ServiceName: "vecsearch", AppEnv: "development"}
}

// ApplyEnv overrides fields from the TRACER_* variables and APP_ENV.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("TRACER_SERVICE_NAME"); v != "" {
		c.ServiceName = v
	}
	if v := os.Getenv("APP_ENV"); v != "" {
		c.AppEnv = v
	}
	if v := os.Getenv("TRACER_ENABLE_EXPORT"); v != "" {
		c.EnableExport = v == "true" || v == "1"
	}
	if v := os.Getenv("TRACER_ENDPOINT"); v != "" {
		c.Endpoint = v
	}
	if v := os.Getenv("TRACER_INSECURE"); v != "" {
		c.Insecure = v == "true" || v == "1"
	}
}
