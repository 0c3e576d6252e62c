// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - Loading and validation failures wrap this package's sentinel errors.
package config

import (
	"fmt"
	"net/url"
	"strings"

	repository "github.com/okian/skillport/internal/adapters/repository"
	"github.com/okian/skillport/internal/domain/dedupe"
	"github.com/okian/skillport/internal/domain/ranking"
)

// StoreMemory selects the in-process record store.
const StoreMemory = "memory"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// StoreDriver selects the record store: memory, sqlite or postgres.
	StoreDriver string `koanf:"store_driver"`

	// StoreDSN is the data source of the sql drivers.
	StoreDSN string `koanf:"store_dsn"`

	// MaxLeaderboardLimit caps GET /api/leaderboard?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`

	// DefaultMetric ranks the leaderboard when no metric is requested.
	DefaultMetric string `koanf:"default_metric"`

	// OwnerID and OwnerName identify the portfolio owner of the skill tracker.
	OwnerID   string `koanf:"owner_id"`
	OwnerName string `koanf:"owner_name"`

	// CertificateBaseURL prefixes the document URL of issued certificates.
	CertificateBaseURL string `koanf:"certificate_base_url"`

	// IdempotencySize bounds the remembered Idempotency-Key values.
	IdempotencySize int `koanf:"idempotency_size"`

	// ReadTimeoutMS and WriteTimeoutMS bound HTTP request handling.
	ReadTimeoutMS  int `koanf:"read_timeout_ms"`
	WriteTimeoutMS int `koanf:"write_timeout_ms"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		LogFormat:           "text",
		Addr:                ":9080",
		StoreDriver:         StoreMemory,
		MaxLeaderboardLimit: 100,
		DefaultMetric:       string(ranking.MetricScore),
		OwnerID:             "owner",
		OwnerName:           "SkillPort Owner",
		CertificateBaseURL:  "https://certificates.example.com",
		IdempotencySize:     dedupe.DefaultMaxSize,
		ReadTimeoutMS:       10_000,
		WriteTimeoutMS:      10_000,
	}
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	switch strings.ToLower(c.StoreDriver) {
	case StoreMemory:
	case repository.DriverSQLite, repository.DriverPostgres:
		if c.StoreDSN == "" {
			return fmt.Errorf("%w: store_dsn is required for %s", ErrInvalidConfig, c.StoreDriver)
		}
	default:
		return fmt.Errorf("%w: unknown store_driver %q", ErrInvalidConfig, c.StoreDriver)
	}
	if c.MaxLeaderboardLimit <= 0 {
		return fmt.Errorf("%w: max_leaderboard_limit must be positive", ErrInvalidConfig)
	}
	if _, err := ranking.ParseMetric(c.DefaultMetric); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.OwnerID == "" || c.OwnerName == "" {
		return fmt.Errorf("%w: owner_id and owner_name must not be empty", ErrInvalidConfig)
	}
	if u, err := url.Parse(c.CertificateBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: certificate_base_url must be an absolute URL", ErrInvalidConfig)
	}
	return nil
}

// Metric returns the parsed default metric. Call after Validate.
func (c *Config) Metric() ranking.Metric {
	m, _ := ranking.ParseMetric(c.DefaultMetric)
	return m
}
