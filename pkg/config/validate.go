package config

import (
	"fmt"
	"strings"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "notion.token").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
// It implements the error interface and provides access to all field errors.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. It returns nil if the configuration is valid.
// All validation errors are collected and returned together.
//
// Validation happens before any network call is made, so an invalid
// configuration aborts the whole run up front.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateNotion(&cfg.Notion)...)
	errs = append(errs, validateDatabases(cfg.Databases)...)
	errs = append(errs, validateRetry(&cfg.Retry)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)

	if cfg.Output.Dir == "" {
		errs = append(errs, FieldError{
			Field:   "output.dir",
			Message: "output directory is required",
		})
	}

	if cfg.History.Enabled && cfg.History.Path == "" {
		errs = append(errs, FieldError{
			Field:   "history.path",
			Message: "history path is required when history is enabled",
		})
	}

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}

	return nil
}

// validateNotion validates the Notion API configuration.
func validateNotion(cfg *NotionConfig) []FieldError {
	var errs []FieldError

	if cfg.Token == "" {
		errs = append(errs, FieldError{
			Field:   "notion.token",
			Message: "integration token is required (set NOTION_TOKEN)",
		})
	}
	if cfg.BaseURL == "" {
		errs = append(errs, FieldError{
			Field:   "notion.base_url",
			Message: "base URL is required",
		})
	}
	if cfg.PageSize < 1 || cfg.PageSize > 100 {
		errs = append(errs, FieldError{
			Field:   "notion.page_size",
			Message: fmt.Sprintf("page size must be between 1 and 100, got %d", cfg.PageSize),
		})
	}
	if cfg.Timeout < 0 {
		errs = append(errs, FieldError{
			Field:   "notion.timeout",
			Message: "timeout cannot be negative",
		})
	}
	if cfg.MinRequestInterval < 0 {
		errs = append(errs, FieldError{
			Field:   "notion.min_request_interval",
			Message: "minimum request interval cannot be negative",
		})
	}

	return errs
}

// validateDatabases validates the configured database list.
func validateDatabases(databases []DatabaseConfig) []FieldError {
	var errs []FieldError

	if len(databases) == 0 {
		errs = append(errs, FieldError{
			Field:   "databases",
			Message: "at least one database must be configured",
		})
	}

	seen := make(map[string]bool, len(databases))
	for i, db := range databases {
		if db.Name == "" {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("databases[%d].name", i),
				Message: "database name is required",
			})
		}
		if db.ID == "" {
			msg := "database id is required"
			if db.IDEnv != "" {
				msg = fmt.Sprintf("database id is required (environment variable %s is unset or empty)", db.IDEnv)
			}
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("databases[%d].id", i),
				Message: msg,
			})
		}
		if db.Name != "" && seen[db.Name] {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("databases[%d].name", i),
				Message: fmt.Sprintf("duplicate database name %q", db.Name),
			})
		}
		seen[db.Name] = true
	}

	return errs
}

// validateRetry validates retry and backoff settings.
func validateRetry(cfg *RetryConfig) []FieldError {
	var errs []FieldError

	if cfg.MaxAttempts < 1 {
		errs = append(errs, FieldError{
			Field:   "retry.max_attempts",
			Message: "max attempts must be at least 1",
		})
	}
	if cfg.BackoffBase <= 0 {
		errs = append(errs, FieldError{
			Field:   "retry.backoff_base",
			Message: "backoff base must be positive",
		})
	}
	if cfg.BackoffMax < cfg.BackoffBase {
		errs = append(errs, FieldError{
			Field:   "retry.backoff_max",
			Message: "backoff max must be at least backoff base",
		})
	}
	if cfg.BackoffMultiplier < 1 {
		errs = append(errs, FieldError{
			Field:   "retry.backoff_multiplier",
			Message: "backoff multiplier must be at least 1",
		})
	}
	if cfg.Jitter < 0 || cfg.Jitter > 1 {
		errs = append(errs, FieldError{
			Field:   "retry.jitter",
			Message: "jitter must be between 0 and 1",
		})
	}

	return errs
}

// validateTelemetry validates logging and metrics settings.
func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("unknown log level %q", cfg.Logging.Level),
		})
	}

	switch cfg.Logging.Format {
	case "text", "json":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("unknown log format %q", cfg.Logging.Format),
		})
	}

	return errs
}
