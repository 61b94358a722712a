// Package models defines the data structures shared by the audit engine:
// checklist, scraped page data, session views and configuration.
package models

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	EnvDatabasePath = "SEOAUDIT_DB"
	EnvLogLevel     = "SEOAUDIT_LOG_LEVEL"
	EnvUserAgent    = "SEOAUDIT_USER_AGENT"

	DefaultUserAgent = "seoaudit/1.0 (+https://github.com/GlobalTax/nrro-es-starter-sub005)"
)

// Config holds runtime configuration. Values come from defaults, an optional
// YAML file, environment overrides and finally CLI flags.
type Config struct {
	Scraper   ScraperConfig   `yaml:"scraper"`
	Database  DatabaseConfig  `yaml:"database"`
	Batch     BatchConfig     `yaml:"batch"`
	Insights  InsightsConfig  `yaml:"insights"`
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Checklist ChecklistConfig `yaml:"checklist"`
}

// ScraperConfig configures the HTTP scraper and its disk cache.
type ScraperConfig struct {
	Timeout       time.Duration `yaml:"timeout"`
	RetryCount    int           `yaml:"retry_count"`
	RetryWaitTime time.Duration `yaml:"retry_wait_time"`
	UserAgent     string        `yaml:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes"`
	CacheDir      string        `yaml:"cache_dir"` // empty disables the cache
	MaxAge        time.Duration `yaml:"max_age"`
}

// DatabaseConfig points at the SQLite file.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// BatchConfig tunes the sequential batch driver.
type BatchConfig struct {
	Cooldown time.Duration `yaml:"cooldown"`
}

// InsightsConfig holds the recommendation priority bands.
// Scores below HighBelow are high priority, scores up to MediumUpTo are medium.
type InsightsConfig struct {
	HighBelow  float64 `yaml:"high_below"`
	MediumUpTo float64 `yaml:"medium_up_to"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// LogConfig sets the slog level (debug, info, warn, error).
type LogConfig struct {
	Level string `yaml:"level"`
}

// ChecklistConfig optionally replaces the built-in checklist with a YAML catalog.
type ChecklistConfig struct {
	Path string `yaml:"path"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Scraper: ScraperConfig{
			Timeout:       20 * time.Second,
			RetryCount:    2,
			RetryWaitTime: 500 * time.Millisecond,
			UserAgent:     DefaultUserAgent,
			MaxBodyBytes:  5 << 20,
			MaxAge:        time.Hour,
		},
		Database: DatabaseConfig{Path: "seoaudit.db"},
		Batch:    BatchConfig{Cooldown: 2 * time.Second},
		Insights: InsightsConfig{HighBelow: 50, MediumUpTo: 75},
		Server:   ServerConfig{Addr: ":8080"},
		Log:      LogConfig{Level: "info"},
	}
}

// LoadConfig builds the configuration from defaults, the YAML file at path
// (skipped when path is empty) and environment overrides.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		// Unmarshalling over the defaults keeps every key the file omits.
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(EnvDatabasePath); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvUserAgent); v != "" {
		c.Scraper.UserAgent = v
	}
}
