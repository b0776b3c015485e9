// Package config provides configuration loading, defaults, and validation
// for the backup tool.
//
// Configuration is read from a YAML file, then overridden by environment
// variables using the NOTION_BACKUP_SECTION_FIELD naming convention
// (e.g., NOTION_BACKUP_OUTPUT_DIR). The integration token can also be
// supplied via the conventional NOTION_TOKEN variable.
//
// Example configuration:
//
//	notion:
//	  page_size: 100
//	databases:
//	  - name: captains_log
//	    id_env: CAPTAINS_LOG_DB_ID
//	  - name: projects_tracker
//	    id_env: PROJECTS_TRACKER_DB_ID
//	output:
//	  dir: backups
//	retry:
//	  max_attempts: 4
//
// Validation collects every field error before reporting, so a broken
// configuration surfaces all problems in one pass and nothing touches the
// network until the configuration is known to be sound.
package config
