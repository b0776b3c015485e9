package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"garnet-hq/notion-backup/pkg/export"
)

// Store is a local SQLite ledger of past backup runs. It exists so the
// history subcommand can answer "when did this last succeed" without
// digging through scheduler logs.
//
// Recording failures must never fail a run; callers log store errors and
// move on.
type Store struct {
	db *sql.DB
}

// RunRecord is one row of the run ledger.
type RunRecord struct {
	RunID        string
	StartedAt    time.Time
	FinishedAt   time.Time
	Succeeded    bool
	Databases    int
	Failures     int
	TotalRecords int
}

// Open opens (or creates) the history database at the given path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	// WAL keeps readers (the history command) from blocking a recording run.
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	// SQLite only supports a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}

	return s, nil
}

// initSchema creates the ledger tables if they do not exist.
func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		run_id        TEXT PRIMARY KEY,
		started_at    INTEGER NOT NULL,
		finished_at   INTEGER NOT NULL,
		succeeded     INTEGER NOT NULL,
		databases     INTEGER NOT NULL,
		failures      INTEGER NOT NULL,
		total_records INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS run_results (
		id           TEXT PRIMARY KEY,
		run_id       TEXT NOT NULL REFERENCES runs(run_id),
		database     TEXT NOT NULL,
		database_id  TEXT NOT NULL,
		record_count INTEGER NOT NULL,
		output_path  TEXT NOT NULL,
		elapsed_ms   INTEGER NOT NULL,
		error        TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_run_results_run_id ON run_results(run_id);
	CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// RecordRun persists one finished run and its per-database results.
func (s *Store) RecordRun(ctx context.Context, summary *export.RunSummary) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	succeeded := 0
	if summary.Succeeded() {
		succeeded = 1
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (run_id, started_at, finished_at, succeeded, databases, failures, total_records)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		summary.RunID,
		summary.StartedAt.Unix(),
		summary.FinishedAt.Unix(),
		succeeded,
		len(summary.Results),
		summary.FailureCount(),
		summary.TotalRecords(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for _, r := range summary.Results {
		errText := ""
		if r.Err != nil {
			errText = r.Err.Error()
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO run_results (id, run_id, database, database_id, record_count, output_path, elapsed_ms, error)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			uuid.NewString(),
			summary.RunID,
			r.Database,
			r.DatabaseID,
			r.RecordCount,
			r.OutputPath,
			r.Elapsed.Milliseconds(),
			errText,
		)
		if err != nil {
			return fmt.Errorf("failed to insert result for %q: %w", r.Database, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, started_at, finished_at, succeeded, databases, failures, total_records
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var rec RunRecord
		var started, finished int64
		var succeeded int
		if err := rows.Scan(&rec.RunID, &started, &finished, &succeeded,
			&rec.Databases, &rec.Failures, &rec.TotalRecords); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		rec.StartedAt = time.Unix(started, 0)
		rec.FinishedAt = time.Unix(finished, 0)
		rec.Succeeded = succeeded == 1
		records = append(records, rec)
	}

	return records, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
