package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration.
type Config struct {
	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Event store
	StrictSequence bool `env:"EVENTSTORE_STRICT_SEQUENCE" envDefault:"true"`

	// Snapshots (SnapshotEvery 0 disables the automatic policy)
	SnapshotEvery     int    `env:"SNAPSHOT_EVERY"      envDefault:"0"`
	SnapshotCreatedBy string `env:"SNAPSHOT_CREATED_BY" envDefault:"system"`

	// Metrics
	MetricsEnabled bool `env:"METRICS_ENABLED" envDefault:"false"`

	// Tenant used by CLI commands that do not receive --tenant.
	DefaultTenantID string `env:"DEFAULT_TENANT_ID" envDefault:""`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	err := env.Parse(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.SnapshotEvery < 0 {
		return nil, fmt.Errorf("SNAPSHOT_EVERY must not be negative, got %d", cfg.SnapshotEvery)
	}

	return cfg, nil
}
