package export

import "time"

// ExportResult is the finalized outcome of one database's export.
// It is created when the export starts, filled in as pages arrive, and
// immutable once the database's export ends.
type ExportResult struct {
	// Database is the configured human-readable database name.
	Database string

	// DatabaseID is the opaque database identifier.
	DatabaseID string

	// RecordCount is the number of records exported.
	RecordCount int

	// OutputPath is the written backup file, empty if no file was
	// produced (failure, or an empty database).
	OutputPath string

	// Elapsed is the wall-clock duration of this database's export.
	Elapsed time.Duration

	// Err is the terminal error, nil on success.
	Err error
}

// Succeeded reports whether the export completed without error.
func (r ExportResult) Succeeded() bool {
	return r.Err == nil
}

// RunSummary aggregates the outcomes of one full run, one ExportResult per
// configured database in configuration order.
type RunSummary struct {
	// RunID uniquely identifies this run.
	RunID string

	// StartedAt and FinishedAt bound the run.
	StartedAt  time.Time
	FinishedAt time.Time

	// Results holds one entry per configured database, in order. Every
	// configured database appears exactly once, failed or not.
	Results []ExportResult
}

// Succeeded reports whether every database exported successfully.
func (s *RunSummary) Succeeded() bool {
	for _, r := range s.Results {
		if !r.Succeeded() {
			return false
		}
	}
	return true
}

// ExitCode returns the process exit code for this run: 0 only if every
// database succeeded, 1 otherwise.
func (s *RunSummary) ExitCode() int {
	if s.Succeeded() {
		return 0
	}
	return 1
}

// TotalRecords returns the number of records exported across all
// databases.
func (s *RunSummary) TotalRecords() int {
	total := 0
	for _, r := range s.Results {
		total += r.RecordCount
	}
	return total
}

// FailureCount returns the number of databases that failed.
func (s *RunSummary) FailureCount() int {
	failed := 0
	for _, r := range s.Results {
		if !r.Succeeded() {
			failed++
		}
	}
	return failed
}
