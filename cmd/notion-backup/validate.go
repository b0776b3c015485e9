package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"garnet-hq/notion-backup/pkg/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration without touching the network",
	Long: `Load and validate the configuration file, including environment
overrides and per-database id_env resolution. No network calls are made.

Exits nonzero with every validation error listed if the configuration is
not usable for an export run.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return err
	}

	fmt.Println("✓ Configuration valid")
	fmt.Printf("  Databases: %d\n", len(cfg.Databases))
	for _, db := range cfg.Databases {
		fmt.Printf("    - %s\n", db.Name)
	}
	fmt.Printf("  Output directory: %s\n", cfg.Output.Dir)
	fmt.Printf("  Page size: %d\n", cfg.Notion.PageSize)
	fmt.Printf("  Max attempts per page: %d\n", cfg.Retry.MaxAttempts)
	return nil
}
