package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"garnet-hq/notion-backup/pkg/backoff"
	"garnet-hq/notion-backup/pkg/config"
	"garnet-hq/notion-backup/pkg/flatten"
	"garnet-hq/notion-backup/pkg/notion"
	"garnet-hq/notion-backup/pkg/telemetry/metrics"
)

// Fetcher fetches one page of records from a database. *notion.Client
// satisfies it; tests substitute fakes.
type Fetcher interface {
	QueryDatabase(ctx context.Context, databaseID, cursor string, pageSize int) (*notion.Page, error)
}

// Exporter drives full exports of the configured databases, one at a time
// in configuration order.
//
// All fetches go through the shared limiter and retrier, so the whole run
// respects the remote rate limit and every page fetch has the same bounded
// retry behavior.
type Exporter struct {
	fetcher   Fetcher
	flattener *flatten.Flattener
	limiter   *backoff.Limiter
	retrier   *backoff.Retrier
	collector *metrics.Collector
	cfg       *config.Config

	// now is injectable for tests.
	now func() time.Time
}

// New creates an Exporter from the run configuration. The collector may be
// nil when metrics are disabled.
func New(fetcher Fetcher, cfg *config.Config, collector *metrics.Collector) *Exporter {
	return &Exporter{
		fetcher:   fetcher,
		flattener: flatten.New(),
		limiter:   backoff.NewLimiter(cfg.Notion.MinRequestInterval),
		retrier: &backoff.Retrier{
			Policy: backoff.Policy{
				Base:       cfg.Retry.BackoffBase,
				Max:        cfg.Retry.BackoffMax,
				Multiplier: cfg.Retry.BackoffMultiplier,
				Jitter:     cfg.Retry.Jitter,
			},
			MaxAttempts: cfg.Retry.MaxAttempts,
			Retryable:   notion.IsRetryable,
			RetryAfter:  notion.RetryAfter,
		},
		collector: collector,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Run exports every configured database and returns the run summary.
//
// One database's failure never prevents later databases from being
// attempted; the summary enumerates every configured database exactly
// once, in order. Cancellation fails the in-flight database and every
// database after it, but the summary is still complete.
func (e *Exporter) Run(ctx context.Context) *RunSummary {
	summary := &RunSummary{
		RunID:     uuid.NewString(),
		StartedAt: e.now(),
	}

	slog.Info("backup run started",
		"run_id", summary.RunID,
		"databases", len(e.cfg.Databases),
		"output_dir", e.cfg.Output.Dir,
	)

	if err := os.MkdirAll(e.cfg.Output.Dir, 0o755); err != nil {
		// Nothing can be written; fail every database up front.
		for _, db := range e.cfg.Databases {
			summary.Results = append(summary.Results, ExportResult{
				Database:   db.Name,
				DatabaseID: db.ID,
				Err:        fmt.Errorf("failed to create output directory %q: %w", e.cfg.Output.Dir, err),
			})
		}
		summary.FinishedAt = e.now()
		return summary
	}

	for _, db := range e.cfg.Databases {
		result := e.ExportDatabase(ctx, db)
		summary.Results = append(summary.Results, result)
	}

	summary.FinishedAt = e.now()
	slog.Info("backup run finished",
		"run_id", summary.RunID,
		"records", summary.TotalRecords(),
		"failures", summary.FailureCount(),
		"elapsed", summary.FinishedAt.Sub(summary.StartedAt),
	)
	return summary
}

// ExportDatabase performs one full export of one database: drain all
// pages, flatten all records, and write one complete CSV file.
func (e *Exporter) ExportDatabase(ctx context.Context, db config.DatabaseConfig) ExportResult {
	start := e.now()
	result := ExportResult{
		Database:   db.Name,
		DatabaseID: db.ID,
	}

	slog.Info("exporting database", "database", db.Name)

	records, pages, err := e.drain(ctx, db)
	if err != nil {
		result.Err = err
		result.Elapsed = e.now().Sub(start)
		e.collector.ExportCompleted(db.Name, "failure", result.Elapsed)
		slog.Error("database export failed",
			"database", db.Name,
			"pages_fetched", pages,
			"error", err,
		)
		return result
	}

	result.RecordCount = len(records)

	if len(records) == 0 {
		// Nothing to write; an empty database is still a successful export.
		result.Elapsed = e.now().Sub(start)
		e.collector.ExportCompleted(db.Name, "success", result.Elapsed)
		slog.Warn("no records found in database", "database", db.Name)
		return result
	}

	columns := flatten.Columns(records)
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, e.flattener.Flatten(rec, columns))
	}

	path, err := writeCSV(e.cfg.Output.Dir, db.Name, start, columns, rows)
	if err != nil {
		result.Err = err
		result.Elapsed = e.now().Sub(start)
		e.collector.ExportCompleted(db.Name, "failure", result.Elapsed)
		slog.Error("failed to write backup file", "database", db.Name, "error", err)
		return result
	}

	result.OutputPath = path
	result.Elapsed = e.now().Sub(start)
	e.collector.RecordsExported(db.Name, result.RecordCount)
	e.collector.ExportCompleted(db.Name, "success", result.Elapsed)

	slog.Info("database exported",
		"database", db.Name,
		"records", result.RecordCount,
		"pages", pages,
		"path", path,
		"elapsed", result.Elapsed,
	)
	return result
}

// drain fetches every page of a database in cursor order and returns the
// accumulated records together with the number of pages fetched.
//
// The limiter is awaited before every attempt, including retries, so
// pacing holds across the entire run.
func (e *Exporter) drain(ctx context.Context, db config.DatabaseConfig) ([]notion.Record, int, error) {
	var records []notion.Record
	cursor := ""
	pages := 0

	for {
		var page *notion.Page
		attempt := 0

		op := func(ctx context.Context) error {
			attempt++
			if attempt > 1 {
				e.collector.FetchRetried(db.Name)
			}
			if err := e.limiter.Wait(ctx); err != nil {
				return err
			}
			fetched, err := e.fetcher.QueryDatabase(ctx, db.ID, cursor, e.cfg.Notion.PageSize)
			if err != nil {
				return err
			}
			page = fetched
			return nil
		}

		if err := e.retrier.Do(ctx, op); err != nil {
			return nil, pages, err
		}

		pages++
		e.collector.PageFetched(db.Name)
		records = append(records, page.Records...)

		if !page.HasMore {
			return records, pages, nil
		}
		cursor = page.NextCursor
	}
}
