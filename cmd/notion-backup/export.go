package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"garnet-hq/notion-backup/pkg/config"
	"garnet-hq/notion-backup/pkg/export"
	"garnet-hq/notion-backup/pkg/history"
	"garnet-hq/notion-backup/pkg/notify"
	"garnet-hq/notion-backup/pkg/notion"
	"garnet-hq/notion-backup/pkg/telemetry/metrics"
)

var exportFlags struct {
	outputDir string
	logLevel  string
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Run one full backup of every configured database",
	Long: `Run one full backup of every configured database.

Databases are exported sequentially in configuration order. A database
that fails is recorded and the run continues with the next one; the
command exits nonzero if any database failed.

Examples:
  # Run with default config
  notion-backup export

  # Run with custom config
  notion-backup export --config /etc/notion-backup/config.yaml

  # Override output directory
  notion-backup export --output-dir /mnt/backups`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportFlags.outputDir, "output-dir", "o", "", "override output directory")
	exportCmd.Flags().StringVar(&exportFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return err
	}

	// Apply flag overrides
	if exportFlags.outputDir != "" {
		cfg.Output.Dir = exportFlags.outputDir
	}
	if exportFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = exportFlags.logLevel
	}

	setupLogging(&cfg.Telemetry.Logging)

	// Cancel the run on SIGINT/SIGTERM; a canceled in-flight database is
	// recorded as failed, never as a complete backup.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var collector *metrics.Collector
	if cfg.Telemetry.Metrics.Enabled {
		registry := prometheus.NewRegistry()
		collector = metrics.NewCollector(&cfg.Telemetry.Metrics, registry)
	}

	client, err := notion.NewClient(notion.ClientConfig{
		Token:        cfg.Notion.Token,
		BaseURL:      cfg.Notion.BaseURL,
		Version:      cfg.Notion.Version,
		Timeout:      cfg.Notion.Timeout,
		MaxIdleConns: cfg.Notion.MaxIdleConns,
	})
	if err != nil {
		return err
	}

	exporter := export.New(client, cfg, collector)
	summary := exporter.Run(ctx)

	recordHistory(cfg, summary)
	sendNotification(cfg, summary)

	fmt.Print(export.Report(summary))

	if summary.ExitCode() != 0 {
		return fmt.Errorf("%d of %d database(s) failed to export",
			summary.FailureCount(), len(summary.Results))
	}
	return nil
}

// recordHistory persists the run outcome to the local ledger when enabled.
// Ledger problems are logged, never fatal.
func recordHistory(cfg *config.Config, summary *export.RunSummary) {
	if !cfg.History.Enabled {
		return
	}

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		slog.Warn("failed to open history store", "path", cfg.History.Path, "error", err)
		return
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := store.RecordRun(ctx, summary); err != nil {
		slog.Warn("failed to record run history", "error", err)
	}
}

// sendNotification hands the terminal status message to the configured
// sink. A fresh context is used so a canceled run can still report its
// failure.
func sendNotification(cfg *config.Config, summary *export.RunSummary) {
	var notifier notify.Notifier = notify.LogNotifier{}
	if cfg.Notify.WebhookURL != "" {
		notifier = notify.NewWebhookNotifier(cfg.Notify.WebhookURL, cfg.Notify.Timeout)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Notify.Timeout)
	defer cancel()

	notifier.Notify(ctx, notify.NewMessage(summary))
}
