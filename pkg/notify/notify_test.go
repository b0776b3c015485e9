package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"garnet-hq/notion-backup/pkg/export"
)

func sampleSummary() *export.RunSummary {
	return &export.RunSummary{
		RunID: "run-42",
		Results: []export.ExportResult{
			{Database: "tasks", RecordCount: 240},
			{Database: "projects", Err: errors.New("database not found")},
		},
	}
}

func TestNewMessage_FailureText(t *testing.T) {
	msg := NewMessage(sampleSummary())

	if msg.Success {
		t.Error("message for a partially failed run must not be marked success")
	}
	if msg.RunID != "run-42" {
		t.Errorf("run id = %q, want run-42", msg.RunID)
	}
	if !strings.Contains(msg.Text, "1 of 2 database(s) failed") {
		t.Errorf("unexpected text: %q", msg.Text)
	}
	if len(msg.Databases) != 2 {
		t.Fatalf("expected 2 database entries, got %d", len(msg.Databases))
	}
	if msg.Databases[0].Error != "" || !msg.Databases[0].Success {
		t.Errorf("tasks entry should be a clean success: %+v", msg.Databases[0])
	}
	if msg.Databases[1].Error != "database not found" || msg.Databases[1].Success {
		t.Errorf("projects entry should carry the failure: %+v", msg.Databases[1])
	}
}

func TestNewMessage_SuccessText(t *testing.T) {
	summary := &export.RunSummary{
		RunID: "run-7",
		Results: []export.ExportResult{
			{Database: "tasks", RecordCount: 100},
			{Database: "projects", RecordCount: 40},
		},
	}

	msg := NewMessage(summary)
	if !msg.Success {
		t.Error("all-success run must produce a success message")
	}
	if !strings.Contains(msg.Text, "140 records from 2 database(s)") {
		t.Errorf("unexpected text: %q", msg.Text)
	}
}

func TestWebhookNotifier_PostsJSON(t *testing.T) {
	var received Message
	contentType := ""

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("failed to decode webhook body: %v", err)
		}
	}))
	defer server.Close()

	n := NewWebhookNotifier(server.URL, 5*time.Second)
	n.Notify(context.Background(), NewMessage(sampleSummary()))

	if contentType != "application/json" {
		t.Errorf("content type = %q, want application/json", contentType)
	}
	if received.RunID != "run-42" || len(received.Databases) != 2 {
		t.Errorf("unexpected webhook payload: %+v", received)
	}
}

func TestWebhookNotifier_SwallowsDeliveryFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	n := NewWebhookNotifier(server.URL, time.Second)
	// Must not panic or block; failures are logged only.
	n.Notify(context.Background(), NewMessage(sampleSummary()))
}

func TestWebhookNotifier_SwallowsRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	n := NewWebhookNotifier(server.URL, time.Second)
	n.Notify(context.Background(), NewMessage(sampleSummary()))
}

func TestLogNotifier_Notify(t *testing.T) {
	// Smoke test: both outcomes must be loggable without error.
	var n LogNotifier
	n.Notify(context.Background(), NewMessage(sampleSummary()))

	ok := &export.RunSummary{RunID: "run-ok", Results: []export.ExportResult{{Database: "tasks"}}}
	n.Notify(context.Background(), NewMessage(ok))
}
