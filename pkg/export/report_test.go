package export

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestReport_MixedOutcomes(t *testing.T) {
	summary := &RunSummary{
		RunID: "run-42",
		Results: []ExportResult{
			{
				Database:    "tasks",
				RecordCount: 240,
				OutputPath:  "backups/tasks_20260115_093000.csv",
				Elapsed:     1500 * time.Millisecond,
			},
			{
				Database: "projects",
				Elapsed:  250 * time.Millisecond,
				Err:      errors.New("database not found"),
			},
		},
	}

	report := Report(summary)

	for _, want := range []string{
		"Backup Summary",
		"Run ID: run-42",
		"✓ tasks: 240 records in 1.5s -> backups/tasks_20260115_093000.csv",
		"✗ projects: failed after 250ms: database not found",
		"Databases: 1 succeeded, 1 failed",
		"Records exported: 240",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
}

func TestReport_EmptyDatabaseOmitsPath(t *testing.T) {
	summary := &RunSummary{
		RunID: "run-7",
		Results: []ExportResult{
			{Database: "empty", Elapsed: 100 * time.Millisecond},
		},
	}

	report := Report(summary)
	if !strings.Contains(report, "✓ empty: 0 records in 100ms") {
		t.Errorf("unexpected report:\n%s", report)
	}
	if strings.Contains(report, "->") {
		t.Errorf("report must not show a path for an empty database:\n%s", report)
	}
}

func TestReport_Deterministic(t *testing.T) {
	summary := &RunSummary{
		RunID: "run-9",
		Results: []ExportResult{
			{Database: "a", RecordCount: 1, Elapsed: time.Second},
			{Database: "b", RecordCount: 2, Elapsed: time.Second},
		},
	}

	if Report(summary) != Report(summary) {
		t.Error("report rendering must be deterministic for a given summary")
	}
}

func TestRunSummary_ExitCode(t *testing.T) {
	ok := &RunSummary{Results: []ExportResult{{Database: "a"}, {Database: "b"}}}
	if ok.ExitCode() != 0 {
		t.Errorf("all-success run: exit code = %d, want 0", ok.ExitCode())
	}

	mixed := &RunSummary{Results: []ExportResult{
		{Database: "a"},
		{Database: "b", Err: errors.New("boom")},
	}}
	if mixed.ExitCode() != 1 {
		t.Errorf("partial-failure run: exit code = %d, want 1", mixed.ExitCode())
	}

	empty := &RunSummary{}
	if empty.ExitCode() != 0 {
		t.Errorf("empty run: exit code = %d, want 0", empty.ExitCode())
	}
}
