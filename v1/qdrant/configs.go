package qdrant

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultGRPCPort is the port the Go client talks to.
	DefaultGRPCPort = 6334

	// restPort is Qdrant's HTTP port. URLs copied from dashboards or from
	// REST clients usually carry it; the gRPC port is used instead.
	restPort = 6333
)

// Config holds connection and behavior settings for the Qdrant client.
//
// It is intentionally minimal, readable, and easy to override from environment
// variables, YAML, or programmatically via helper methods. Credentials are
// never defaulted: ApiKey must come from the environment or a config file.
//
// Example (programmatic):
//
//	cfg := qdrant.DefaultConfig()
//	cfg.Endpoint = "localhost"
//	cfg.ApiKey = os.Getenv("QDRANT_API_KEY")
//	cfg.Timeout = 10 * time.Second
//
// Example (from a URL):
//
//	cfg, err := qdrant.FromURL("https://my-cluster.cloud.qdrant.io:6333")
//	if err != nil { ... }
//	cfg = cfg.WithApiKey(os.Getenv("QDRANT_API_KEY"))
type Config struct {
	// Hostname of the Qdrant server, e.g. "localhost".
	Endpoint string `yaml:"endpoint" env:"QDRANT_HOST"`

	// gRPC port of the Qdrant server. Defaults to 6334.
	Port int `yaml:"port" env:"QDRANT_PORT"`

	// Optional authentication token for secured deployments.
	ApiKey string `yaml:"api_key" env:"QDRANT_API_KEY"`

	// Use TLS for the gRPC connection (required by Qdrant Cloud).
	UseTLS bool `yaml:"use_tls" env:"QDRANT_USE_TLS"`

	// Maximum duration of a single store call before it is reported
	// as unavailable.
	Timeout time.Duration `yaml:"timeout" env:"QDRANT_TIMEOUT"`

	// Timeout of the startup health check.
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"QDRANT_CONNECT_TIMEOUT"`

	// Whether to perform version compatibility checks between client and server.
	CheckCompatibility bool `yaml:"check_compatibility" env:"QDRANT_CHECK_COMPATIBILITY"`
}

// DefaultConfig provides sensible defaults for most use cases.
func DefaultConfig() *Config {
	return &Config{
		Endpoint:           "localhost",
		Port:               DefaultGRPCPort,
		Timeout:            30 * time.Second,
		ConnectTimeout:     5 * time.Second,
		CheckCompatibility: false,
	}
}

// FromEndpoint returns a default config pre-filled with a specific host.
func FromEndpoint(host string) *Config {
	cfg := DefaultConfig()
	cfg.Endpoint = host
	return cfg
}

// FromURL builds a config from a Qdrant URL such as "http://localhost:6333"
// or "https://xyz.cloud.qdrant.io". https enables TLS; the REST port 6333
// (or no port) maps to the gRPC port 6334.
func FromURL(raw string) (*Config, error) {
	cfg := DefaultConfig()
	if err := cfg.ApplyURL(raw); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyURL overwrites host, port and TLS settings from a URL.
func (c *Config) ApplyURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fmt.Errorf("[Qdrant] empty url")
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("[Qdrant] invalid url %q: %w", raw, err)
	}
	host := u.Hostname()
	if host == "" {
		return fmt.Errorf("[Qdrant] url %q has no host", raw)
	}

	port := DefaultGRPCPort
	if p := u.Port(); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil || n <= 0 || n > 65535 {
			return fmt.Errorf("[Qdrant] url %q has an invalid port", raw)
		}
		if n != restPort {
			port = n
		}
	}

	switch strings.ToLower(u.Scheme) {
	case "https", "grpcs":
		c.UseTLS = true
	case "http", "grpc":
		c.UseTLS = false
	default:
		return fmt.Errorf("[Qdrant] unsupported url scheme %q", u.Scheme)
	}

	c.Endpoint = host
	c.Port = port
	return nil
}

// Address returns host:port for logging.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Endpoint, strconv.Itoa(c.Port))
}

// Validate ensures required fields are present.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("[Qdrant] missing endpoint")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("[Qdrant] invalid port %d", c.Port)
	}
	if c.Timeout < 0 || c.ConnectTimeout < 0 {
		return fmt.Errorf("[Qdrant] timeouts cannot be negative")
	}
	return nil
}

// Builder-style helpers (optional, ergonomic)
func (c *Config) WithApiKey(key string) *Config {
	c.ApiKey = key
	return c
}

func (c *Config) WithTimeout(d time.Duration) *Config {
	c.Timeout = d
	return c
}

func (c *Config) WithConnectTimeout(d time.Duration) *Config {
	c.ConnectTimeout = d
	return c
}

func (c *Config) WithTLS(enabled bool) *Config {
	c.UseTLS = enabled
	return c
}

func (c *Config) WithCompatibilityCheck(enabled bool) *Config {
	c.CheckCompatibility = enabled
	return c
}
