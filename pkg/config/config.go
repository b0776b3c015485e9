package config

import "time"

// Config is the root configuration structure for the backup tool.
// It is loaded once at startup and treated as immutable for the
// duration of a run.
type Config struct {
	// Notion contains connection settings for the Notion API.
	Notion NotionConfig `yaml:"notion"`

	// Databases is the ordered list of databases to export. Databases are
	// exported strictly in this order, one at a time.
	Databases []DatabaseConfig `yaml:"databases"`

	// Output contains settings for the backup output directory.
	Output OutputConfig `yaml:"output"`

	// Retry contains retry and backoff settings for page fetches.
	Retry RetryConfig `yaml:"retry"`

	// History contains settings for the local run-history store.
	History HistoryConfig `yaml:"history"`

	// Notify contains settings for the terminal status notification.
	Notify NotifyConfig `yaml:"notify"`

	// Telemetry contains logging and metrics configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// NotionConfig contains connection settings for the Notion API.
type NotionConfig struct {
	// Token is the Notion integration token (bearer credential).
	// Usually supplied via the NOTION_TOKEN environment variable rather
	// than the config file.
	Token string `yaml:"token"`

	// BaseURL is the API base URL.
	// Default: "https://api.notion.com"
	BaseURL string `yaml:"base_url"`

	// Version is the Notion-Version header value sent with every request.
	// Default: "2022-06-28"
	Version string `yaml:"version"`

	// Timeout is the per-request HTTP timeout.
	// Default: 30s
	Timeout time.Duration `yaml:"timeout"`

	// PageSize is the number of records requested per query page (1-100).
	// Default: 100
	PageSize int `yaml:"page_size"`

	// MinRequestInterval is the minimum delay between consecutive API
	// requests, used to stay under the shared rate limit (~3 req/s).
	// Default: 350ms
	MinRequestInterval time.Duration `yaml:"min_request_interval"`

	// MaxIdleConns is the HTTP connection pool size.
	// Default: 10
	MaxIdleConns int `yaml:"max_idle_conns"`
}

// DatabaseConfig identifies one Notion database to export.
type DatabaseConfig struct {
	// Name is the human-readable name, used for the output filename and
	// the run report.
	Name string `yaml:"name"`

	// ID is the opaque Notion database identifier.
	ID string `yaml:"id"`

	// IDEnv optionally names an environment variable to read the ID from.
	// When set and the variable is non-empty, it takes precedence over ID.
	IDEnv string `yaml:"id_env"`
}

// OutputConfig contains settings for backup file output.
type OutputConfig struct {
	// Dir is the directory backup files are written to. It is created if
	// it does not exist.
	// Default: "backups"
	Dir string `yaml:"dir"`
}

// RetryConfig contains retry and backoff settings for page fetches.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts per page fetch,
	// including the first. Exceeding it fails the database's export.
	// Default: 4
	MaxAttempts int `yaml:"max_attempts"`

	// BackoffBase is the delay before the first retry.
	// Default: 1s
	BackoffBase time.Duration `yaml:"backoff_base"`

	// BackoffMax caps the computed backoff delay.
	// Default: 30s
	BackoffMax time.Duration `yaml:"backoff_max"`

	// BackoffMultiplier is the exponential growth factor between retries.
	// Default: 2.0
	BackoffMultiplier float64 `yaml:"backoff_multiplier"`

	// Jitter is the random fraction (0-1) added to each delay to avoid
	// thundering-herd against the shared limiter.
	// Default: 0.2
	Jitter float64 `yaml:"jitter"`
}

// HistoryConfig contains settings for the local SQLite run-history store.
type HistoryConfig struct {
	// Enabled controls whether run outcomes are recorded locally.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Path is the SQLite database file path.
	// Default: "data/history.db"
	Path string `yaml:"path"`
}

// NotifyConfig contains settings for the terminal status notification.
type NotifyConfig struct {
	// WebhookURL is an optional URL the final status message is posted to.
	// Empty disables the webhook; the status is still logged.
	WebhookURL string `yaml:"webhook_url"`

	// Timeout is the webhook request timeout.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`
}

// TelemetryConfig contains logging and metrics configuration.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains structured logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level ("debug", "info", "warn", "error").
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the log output format ("text", "json").
	// Default: "text"
	Format string `yaml:"format"`
}

// MetricsConfig contains Prometheus metrics configuration.
type MetricsConfig struct {
	// Enabled controls whether export metrics are collected.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Namespace is the metric name prefix.
	// Default: "notion_backup"
	Namespace string `yaml:"namespace"`
}
