// Package config provides centralized configuration for the dashboard API
// server and the ingest CLI. Values come from environment variables (and an
// optional .env file loaded by the binaries) with defaults declared as
// struct tags, and are validated on startup to fail fast.
package config

import (
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	API      APIConfig
	Database DatabaseConfig
	Ingest   IngestConfig
	Rate     RateLimitConfig
	Metrics  MetricsConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8000)
	Port int `env:"SERVER_PORT" default:"8000"`

	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"60s"`
	IdleTimeout  time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout bounds graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the outer middleware timeout for a request (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`

	// TrustedProxies is a comma-separated list of CIDRs or IPs whose
	// X-Real-IP, X-Forwarded-For, X-Forwarded-Proto and X-Forwarded-Host
	// headers are honored (default: loopback only)
	TrustedProxies string `env:"SERVER_TRUSTED_PROXIES" default:"127.0.0.1,::1"`
}

// APIConfig controls how routes are mounted and how locators are built.
type APIConfig struct {
	// Prefix is the common path prefix of every resource (default: /api/v1)
	Prefix string `env:"API_PREFIX" default:"/api/v1"`

	// BaseURL overrides the base address used for locators, e.g.
	// https://dashboard.example.org/api/v1/. When empty it is derived
	// from each request.
	BaseURL string `env:"API_BASE_URL"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string (required)
	// Supports both DATABASE_URL and DB_URL env vars for compatibility
	URL string `env:"DATABASE_URL" envAlt:"DB_URL" required:"true"`

	MaxConns        int           `env:"DB_MAX_CONNS" default:"20"`
	MinConns        int           `env:"DB_MIN_CONNS" default:"2"`
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" default:"30m"`

	// ConnectTimeout bounds the startup retries while the database comes up (default: 30s)
	ConnectTimeout time.Duration `env:"DB_CONNECT_TIMEOUT" default:"30s"`
}

// IngestConfig holds settings for the batch CSV loader.
type IngestConfig struct {
	// Timeout bounds the load of a single file (default: 10m)
	Timeout time.Duration `env:"INGEST_TIMEOUT" default:"10m"`

	// ResetTimeout bounds dropping and recreating the tables (default: 30s)
	ResetTimeout time.Duration `env:"INGEST_RESET_TIMEOUT" default:"30s"`
}

// RateLimitConfig holds per-IP rate limiting settings.
type RateLimitConfig struct {
	Enabled           bool `env:"RATE_LIMIT_ENABLED" default:"true"`
	RequestsPerMinute int  `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"300"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `env:"METRICS_ENABLED" default:"true"`
	Path    string `env:"METRICS_PATH" default:"/metrics"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

// TrustedProxyList splits TrustedProxies into its non-empty entries.
func (c *ServerConfig) TrustedProxyList() []string {
	var out []string
	for _, p := range strings.Split(c.TrustedProxies, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
