package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"garnet-hq/notion-backup/pkg/export"
)

// Message is the terminal status message produced at the end of a run and
// handed to an external delivery mechanism.
type Message struct {
	Success   bool            `json:"success"`
	RunID     string          `json:"run_id"`
	Text      string          `json:"text"`
	Databases []ResultMessage `json:"databases"`
}

// ResultMessage is one database's outcome within a Message.
type ResultMessage struct {
	Database    string `json:"database"`
	Success     bool   `json:"success"`
	RecordCount int    `json:"record_count"`
	Error       string `json:"error,omitempty"`
}

// NewMessage builds the terminal status message for a finished run.
func NewMessage(summary *export.RunSummary) Message {
	msg := Message{
		Success: summary.Succeeded(),
		RunID:   summary.RunID,
	}

	if msg.Success {
		msg.Text = fmt.Sprintf("Backup succeeded: %d records from %d database(s)",
			summary.TotalRecords(), len(summary.Results))
	} else {
		msg.Text = fmt.Sprintf("Backup failed: %d of %d database(s) failed",
			summary.FailureCount(), len(summary.Results))
	}

	for _, r := range summary.Results {
		rm := ResultMessage{
			Database:    r.Database,
			Success:     r.Succeeded(),
			RecordCount: r.RecordCount,
		}
		if r.Err != nil {
			rm.Error = r.Err.Error()
		}
		msg.Databases = append(msg.Databases, rm)
	}

	return msg
}

// Notifier delivers the terminal status message. Delivery is
// fire-and-forget: a failed notification is logged, never propagated.
type Notifier interface {
	Notify(ctx context.Context, msg Message)
}

// WebhookNotifier posts the status message as JSON to a webhook URL.
type WebhookNotifier struct {
	url    string
	client *http.Client
}

// NewWebhookNotifier creates a webhook notifier with the given URL and
// request timeout.
func NewWebhookNotifier(url string, timeout time.Duration) *WebhookNotifier {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &WebhookNotifier{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Notify posts the message. Errors are logged and swallowed; the backup's
// outcome is already decided by the time a notification goes out.
func (n *WebhookNotifier) Notify(ctx context.Context, msg Message) {
	body, err := json.Marshal(msg)
	if err != nil {
		slog.Warn("failed to encode notification", "error", err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		slog.Warn("failed to create notification request", "error", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		slog.Warn("notification delivery failed", "error", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slog.Warn("notification rejected", "status", resp.StatusCode)
		return
	}

	slog.Debug("notification delivered", "run_id", msg.RunID)
}

// LogNotifier writes the status message to the structured log. It is the
// fallback when no webhook is configured.
type LogNotifier struct{}

// Notify logs the message at info or error level depending on the outcome.
func (LogNotifier) Notify(ctx context.Context, msg Message) {
	if msg.Success {
		slog.InfoContext(ctx, "backup status", "run_id", msg.RunID, "message", msg.Text)
	} else {
		slog.ErrorContext(ctx, "backup status", "run_id", msg.RunID, "message", msg.Text)
	}
}
