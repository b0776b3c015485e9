// Package logging builds the process-wide structured logger.
//
// Loggers are constructed from the telemetry configuration and wrap the
// standard slog handlers with credential redaction: the Notion integration
// token is passed as a bearer header on every API request, and must never
// appear in log output, including in dumped errors or headers.
//
// Log output goes to stderr so the run report on stdout stays clean for
// scheduler consumption.
package logging
