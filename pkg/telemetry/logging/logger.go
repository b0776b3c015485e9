package logging

import (
	"io"
	"log/slog"
	"os"

	"garnet-hq/notion-backup/pkg/config"
)

// Options controls logger construction beyond the file configuration.
type Options struct {
	// Writer is the log destination. Defaults to os.Stderr so log output
	// never mixes with the run report on stdout.
	Writer io.Writer

	// ForceDebug lowers the level to debug regardless of configuration,
	// driven by the --verbose flag.
	ForceDebug bool
}

// New builds a structured logger from the telemetry configuration. Every
// record passes through the redacting handler, so the integration token
// and other credentials never reach the log output.
func New(cfg *config.LoggingConfig, opts Options) *slog.Logger {
	writer := opts.Writer
	if writer == nil {
		writer = os.Stderr
	}

	level := parseLevel(cfg.Level)
	if opts.ForceDebug {
		level = slog.LevelDebug
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(writer, handlerOpts)
	default:
		handler = slog.NewTextHandler(writer, handlerOpts)
	}

	return slog.New(NewRedactHandler(handler))
}

// Setup builds the logger and installs it as the process default.
func Setup(cfg *config.LoggingConfig, opts Options) *slog.Logger {
	logger := New(cfg, opts)
	slog.SetDefault(logger)
	return logger
}

// parseLevel maps a configured level name to a slog level. Unknown names
// fall back to info; validation already rejected them at load time.
func parseLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
