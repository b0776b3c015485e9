package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// It resolves database IDs from the environment, applies default values,
// applies NOTION_BACKUP_* environment overrides, and validates the result.
//
// The loading sequence is:
//  1. Parse YAML from file
//  2. Resolve per-database id_env references
//  3. Apply default values
//  4. Apply environment variable overrides
//  5. Validate final configuration
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	resolveDatabaseIDs(&cfg)
	ApplyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// resolveDatabaseIDs fills in database IDs from id_env references.
// An environment value takes precedence over an inline id so that secrets
// can be kept out of the config file.
func resolveDatabaseIDs(cfg *Config) {
	for i := range cfg.Databases {
		db := &cfg.Databases[i]
		if db.IDEnv == "" {
			continue
		}
		if val := os.Getenv(db.IDEnv); val != "" {
			db.ID = val
		}
	}
}

// applyEnvOverrides applies environment variable overrides to the
// configuration. Variables use the format NOTION_BACKUP_SECTION_FIELD and
// always take precedence over file-based configuration.
//
// The bare NOTION_TOKEN variable is also honored for the integration token,
// matching the conventional Notion client setup.
func applyEnvOverrides(cfg *Config) {
	// Notion overrides
	if val := os.Getenv("NOTION_BACKUP_NOTION_TOKEN"); val != "" {
		cfg.Notion.Token = val
	} else if val := os.Getenv("NOTION_TOKEN"); val != "" && cfg.Notion.Token == "" {
		cfg.Notion.Token = val
	}
	if val := os.Getenv("NOTION_BACKUP_NOTION_BASE_URL"); val != "" {
		cfg.Notion.BaseURL = val
	}
	if val := os.Getenv("NOTION_BACKUP_NOTION_VERSION"); val != "" {
		cfg.Notion.Version = val
	}
	if val := os.Getenv("NOTION_BACKUP_NOTION_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Notion.Timeout = d
		}
	}
	if val := os.Getenv("NOTION_BACKUP_NOTION_PAGE_SIZE"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Notion.PageSize = i
		}
	}
	if val := os.Getenv("NOTION_BACKUP_NOTION_MIN_REQUEST_INTERVAL"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Notion.MinRequestInterval = d
		}
	}

	// Output overrides
	if val := os.Getenv("NOTION_BACKUP_OUTPUT_DIR"); val != "" {
		cfg.Output.Dir = val
	}

	// Retry overrides
	if val := os.Getenv("NOTION_BACKUP_RETRY_MAX_ATTEMPTS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Retry.MaxAttempts = i
		}
	}
	if val := os.Getenv("NOTION_BACKUP_RETRY_BACKOFF_BASE"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Retry.BackoffBase = d
		}
	}
	if val := os.Getenv("NOTION_BACKUP_RETRY_BACKOFF_MAX"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Retry.BackoffMax = d
		}
	}

	// History overrides
	if val := os.Getenv("NOTION_BACKUP_HISTORY_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.History.Enabled = b
		}
	}
	if val := os.Getenv("NOTION_BACKUP_HISTORY_PATH"); val != "" {
		cfg.History.Path = val
	}

	// Notify overrides
	if val := os.Getenv("NOTION_BACKUP_NOTIFY_WEBHOOK_URL"); val != "" {
		cfg.Notify.WebhookURL = val
	}

	// Telemetry overrides
	if val := os.Getenv("NOTION_BACKUP_TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("NOTION_BACKUP_TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("NOTION_BACKUP_TELEMETRY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
}
