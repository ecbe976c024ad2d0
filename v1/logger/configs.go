package logger

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap/zapcore"
)

const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

// Config controls the zap logger built by NewLoggerClient.
type Config struct {
	// Level is one of debug, info, warning or error. Anything else means info.
	Level string `yaml:"level" envconfig:"ZAP_LOGGER_LEVEL"`

	// ServiceName is attached to every entry as the "service" field.
	ServiceName string `yaml:"service_name" envconfig:"SERVICE_NAME"`

	// EnableTracing adds trace_id and span_id to the *WithContext methods.
	EnableTracing bool `yaml:"enable_tracing" envconfig:"LOGGER_ENABLE_TRACING"`
}

// DefaultConfig logs at info level as "vecsearch".
func DefaultConfig() Config {
	return Config{Level: Info, ServiceName: "vecsearch"}
}

// ApplyEnv overrides fields from ZAP_LOGGER_LEVEL, SERVICE_NAME and
// LOGGER_ENABLE_TRACING.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("ZAP_LOGGER_LEVEL"); v != "" {
		c.Level = v
	}
	if v := os.Getenv("SERVICE_NAME"); v != "" {
		c.ServiceName = v
	}
	if v := os.Getenv("LOGGER_ENABLE_TRACING"); v != "" {
		c.EnableTracing = v == "true" || v == "1"
	}
}

// Validate rejects unknown levels.
func (c Config) Validate() error {
	_, err := ParseLevel(c.Level)
	return err
}

// ParseLevel maps a level name to a zap level. The empty string is info;
// "warn" is accepted as an alias of "warning".
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case Debug:
		return zapcore.DebugLevel, nil
	case "", Info:
		return zapcore.InfoLevel, nil
	case Warning, "warn":
		return zapcore.WarnLevel, nil
	case Error:
		return zapcore.ErrorLevel, nil
	}
	return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", level)
}
