package postgres

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"time"
)

type Config struct {
	// DSN, when set, wins over Connection.
	DSN               string            `yaml:"dsn"`
	Connection        Connection        `yaml:"connection"`
	ConnectionDetails ConnectionDetails `yaml:"connection_details"`
}

type Connection struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DbName   string `yaml:"db_name"`
	SSLMode  string `yaml:"ssl_mode"`
}

type ConnectionDetails struct {
	MaxOpenConns    int           `yaml:"max_open_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout"`
}

// ApplyEnv reads POSTGRES_DSN.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		c.DSN = v
	}
}

// Enabled reports whether any connection information is configured.
// Postgres is an optional record source.
func (c Config) Enabled() bool {
	return c.DSN != "" || c.Connection.Host != ""
}

// ConnString returns the DSN, building a postgres:// URL from Connection
// when DSN is empty.
func (c Config) ConnString() (string, error) {
	if c.DSN != "" {
		return c.DSN, nil
	}
	conn := c.Connection
	if conn.Host == "" {
		return "", fmt.Errorf("postgres: neither dsn nor host configured")
	}
	port := conn.Port
	if port == "" {
		port = "5432"
	}
	sslMode := conn.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	u := url.URL{
		Scheme:   "postgres",
		Host:     net.JoinHostPort(conn.Host, port),
		Path:     "/" + conn.DbName,
		RawQuery: url.Values{"sslmode": {sslMode}}.Encode(),
	}
	if conn.User != "" {
		u.User = url.UserPassword(conn.User, conn.Password)
	}
	return u.String(), nil
}
