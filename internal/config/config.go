// Package config provides typed configuration for orglens. Configuration is
// loaded once per process and passed into constructors explicitly; there is
// no ambient settings singleton.
package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config is the complete application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Store     StoreConfig     `mapstructure:"store"`
	Collector CollectorConfig `mapstructure:"collector"`
	Enrich    EnrichConfig    `mapstructure:"enrich"`
	Validate  ValidateConfig  `mapstructure:"validate"`
	DANS      DANSConfig      `mapstructure:"dans"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

// ServerConfig contains HTTP server configuration for the serve command.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// StoreConfig contains database configuration for libsql/Turso.
type StoreConfig struct {
	Driver    string `mapstructure:"driver"`
	Path      string `mapstructure:"path"`
	URL       string `mapstructure:"url"`
	AuthToken string `mapstructure:"auth_token"`
}

// CollectorConfig configures the profile collector.
type CollectorConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	UserAgent string        `mapstructure:"user_agent"`
	Timeout   time.Duration `mapstructure:"timeout"`

	// RequestDelay is the politeness pause between batch lookups.
	RequestDelay time.Duration `mapstructure:"request_delay"`
}

// EnrichConfig configures domain enrichment.
type EnrichConfig struct {
	// Timeout bounds each name-resolution query. No retries are attempted;
	// a single failed resolution counts as not live.
	Timeout time.Duration `mapstructure:"timeout"`
}

// ValidateConfig configures asset re-verification.
type ValidateConfig struct {
	ResolveTimeout time.Duration `mapstructure:"resolve_timeout"`
	ProbeTimeout   time.Duration `mapstructure:"probe_timeout"`
}

// DANSConfig configures the digital-asset sweep extension point. The sweep
// hooks find nothing unless the RDAP probe is explicitly enabled.
type DANSConfig struct {
	RDAPProbe RDAPProbeConfig `mapstructure:"rdap_probe"`
}

// RDAPProbeConfig configures the optional RDAP-backed asset probe.
type RDAPProbeConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Suffixes []string      `mapstructure:"suffixes"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	// Level is the minimum level: debug, info, warn, error.
	Level string `mapstructure:"level"`
}

// MetricsConfig controls the Prometheus endpoint on the serve command.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// DefaultStorePath returns the default database location under the user's
// home directory, falling back to the working directory.
func DefaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "./orglens.db"
	}
	return filepath.Join(home, ".orglens", "orglens.db")
}
