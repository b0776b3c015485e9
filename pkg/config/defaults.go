package config

import "time"

// Default values for configuration fields.
const (
	// Notion defaults
	DefaultNotionBaseURL      = "https://api.notion.com"
	DefaultNotionVersion      = "2022-06-28"
	DefaultNotionTimeout      = 30 * time.Second
	DefaultPageSize           = 100
	DefaultMinRequestInterval = 350 * time.Millisecond // ~3 req/s shared limit
	DefaultMaxIdleConns       = 10

	// Output defaults
	DefaultOutputDir = "backups"

	// Retry defaults
	DefaultMaxAttempts       = 4
	DefaultBackoffBase       = 1 * time.Second
	DefaultBackoffMax        = 30 * time.Second
	DefaultBackoffMultiplier = 2.0
	DefaultJitter            = 0.2

	// History defaults
	DefaultHistoryPath = "data/history.db"

	// Notify defaults
	DefaultNotifyTimeout = 10 * time.Second

	// Telemetry defaults
	DefaultLoggingLevel     = "info"
	DefaultLoggingFormat    = "text"
	DefaultMetricsNamespace = "notion_backup"
)

// ApplyDefaults applies default values to a Config struct.
// It sets defaults for any fields that have zero values.
// This function is idempotent and safe to call multiple times.
func ApplyDefaults(cfg *Config) {
	// Notion defaults
	if cfg.Notion.BaseURL == "" {
		cfg.Notion.BaseURL = DefaultNotionBaseURL
	}
	if cfg.Notion.Version == "" {
		cfg.Notion.Version = DefaultNotionVersion
	}
	if cfg.Notion.Timeout == 0 {
		cfg.Notion.Timeout = DefaultNotionTimeout
	}
	if cfg.Notion.PageSize == 0 {
		cfg.Notion.PageSize = DefaultPageSize
	}
	if cfg.Notion.MinRequestInterval == 0 {
		cfg.Notion.MinRequestInterval = DefaultMinRequestInterval
	}
	if cfg.Notion.MaxIdleConns == 0 {
		cfg.Notion.MaxIdleConns = DefaultMaxIdleConns
	}

	// Output defaults
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = DefaultOutputDir
	}

	// Retry defaults
	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.Retry.BackoffBase == 0 {
		cfg.Retry.BackoffBase = DefaultBackoffBase
	}
	if cfg.Retry.BackoffMax == 0 {
		cfg.Retry.BackoffMax = DefaultBackoffMax
	}
	if cfg.Retry.BackoffMultiplier == 0 {
		cfg.Retry.BackoffMultiplier = DefaultBackoffMultiplier
	}
	if cfg.Retry.Jitter == 0 {
		cfg.Retry.Jitter = DefaultJitter
	}

	// History defaults
	if cfg.History.Path == "" {
		cfg.History.Path = DefaultHistoryPath
	}

	// Notify defaults
	if cfg.Notify.Timeout == 0 {
		cfg.Notify.Timeout = DefaultNotifyTimeout
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
}
