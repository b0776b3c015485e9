// notion-backup exports Notion databases to timestamped CSV files.
//
// It is designed to run one full backup per invocation under an external
// scheduler (cron, GitHub Actions) and report the outcome through its exit
// code: 0 when every configured database exported successfully, 1 when any
// failed.
//
// Usage:
//
//	# Run a backup with the default configuration file
//	notion-backup export
//
//	# Run with a custom configuration file
//	notion-backup export --config /etc/notion-backup/config.yaml
//
//	# Validate configuration without touching the network
//	notion-backup validate
//
//	# Show recent run history
//	notion-backup history --limit 10
//
//	# Show version information
//	notion-backup version
package main

func main() {
	Execute()
}
