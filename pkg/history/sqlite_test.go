package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"garnet-hq/notion-backup/pkg/export"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "history.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store, path
}

func sampleSummary(runID string, started time.Time) *export.RunSummary {
	return &export.RunSummary{
		RunID:      runID,
		StartedAt:  started,
		FinishedAt: started.Add(90 * time.Second),
		Results: []export.ExportResult{
			{
				Database:    "tasks",
				DatabaseID:  "db-tasks",
				RecordCount: 240,
				OutputPath:  "backups/tasks_20260115_093000.csv",
				Elapsed:     80 * time.Second,
			},
			{
				Database:   "projects",
				DatabaseID: "db-projects",
				Elapsed:    10 * time.Second,
				Err:        errors.New("database not found"),
			},
		},
	}
}

func TestStore_OpenCreatesParentDirectory(t *testing.T) {
	_, path := openTestStore(t)
	if filepath.Dir(path) == "." {
		t.Fatal("test path should be nested")
	}
}

func TestStore_RecordAndListRuns(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()

	started := time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC)
	if err := store.RecordRun(ctx, sampleSummary("run-1", started)); err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}

	runs, err := store.ListRuns(ctx, 10)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}

	run := runs[0]
	if run.RunID != "run-1" {
		t.Errorf("run id = %q, want run-1", run.RunID)
	}
	if run.Succeeded {
		t.Error("run with a failed database must not be marked succeeded")
	}
	if run.Databases != 2 || run.Failures != 1 || run.TotalRecords != 240 {
		t.Errorf("unexpected counters: %+v", run)
	}
	if !run.StartedAt.Equal(started) {
		t.Errorf("started at = %s, want %s", run.StartedAt, started)
	}
}

func TestStore_ListRunsNewestFirst(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"run-old", "run-mid", "run-new"} {
		if err := store.RecordRun(ctx, sampleSummary(id, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("RecordRun(%s) failed: %v", id, err)
		}
	}

	runs, err := store.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected limit of 2 runs, got %d", len(runs))
	}
	if runs[0].RunID != "run-new" || runs[1].RunID != "run-mid" {
		t.Errorf("expected newest first, got %s then %s", runs[0].RunID, runs[1].RunID)
	}
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	started := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	if err := store.RecordRun(context.Background(), sampleSummary("run-1", started)); err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	runs, err := reopened.ListRuns(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 1 || runs[0].RunID != "run-1" {
		t.Errorf("expected the recorded run to survive a reopen, got %+v", runs)
	}
}

func TestStore_DuplicateRunIDRejected(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()

	started := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	if err := store.RecordRun(ctx, sampleSummary("run-1", started)); err != nil {
		t.Fatalf("first RecordRun failed: %v", err)
	}
	if err := store.RecordRun(ctx, sampleSummary("run-1", started)); err == nil {
		t.Error("expected a duplicate run id to be rejected")
	}
}
