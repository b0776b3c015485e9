// Package telemetry groups the observability building blocks of the
// backup tool.
//
// Subpackages:
//   - logging: structured slog logger with credential redaction
//   - metrics: Prometheus collectors for the export pipeline
package telemetry
