package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"garnet-hq/notion-backup/pkg/config"
	"garnet-hq/notion-backup/pkg/telemetry/logging"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "notion-backup",
	Short: "Export Notion databases to CSV backup files",
	Long: `notion-backup exports the full contents of configured Notion databases
to timestamped CSV files for archival.

Each run drains every database page by page through the rate-limited
Notion API, flattens typed properties into tabular rows, and writes one
complete CSV file per database. One database's failure never stops the
rest; the exit code is nonzero if any database failed, so a scheduler
can detect partial failure.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// setupLogging installs the default logger from the telemetry
// configuration. The --verbose flag forces debug level.
func setupLogging(cfg *config.LoggingConfig) {
	logging.Setup(cfg, logging.Options{ForceDebug: verbose})
}
