package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// ClientConfig contains settings for the Notion API client.
type ClientConfig struct {
	// Token is the integration token used as the bearer credential.
	Token string

	// BaseURL is the API base URL (default "https://api.notion.com").
	BaseURL string

	// Version is the Notion-Version header value.
	Version string

	// Timeout is the per-request timeout.
	Timeout time.Duration

	// MaxIdleConns is the HTTP connection pool size.
	MaxIdleConns int
}

// Client is a minimal Notion API client covering paginated database
// queries. Each call performs exactly one HTTP request; retry policy is
// the caller's concern so it can be composed and tested separately.
type Client struct {
	config ClientConfig
	client *http.Client
}

// NewClient creates a new Notion client with a pooled HTTP transport.
func NewClient(config ClientConfig) (*Client, error) {
	if config.Token == "" {
		return nil, &AuthError{Message: "integration token is required"}
	}
	if config.BaseURL == "" {
		config.BaseURL = "https://api.notion.com"
	}
	if config.Version == "" {
		config.Version = "2022-06-28"
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.MaxIdleConns == 0 {
		config.MaxIdleConns = 10
	}

	transport := &http.Transport{
		MaxIdleConns:        config.MaxIdleConns,
		MaxIdleConnsPerHost: config.MaxIdleConns,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}

	c := &Client{
		config: config,
		client: &http.Client{
			Transport: transport,
			Timeout:   config.Timeout,
		},
	}

	slog.Debug("notion client initialized", "base_url", config.BaseURL, "version", config.Version)
	return c, nil
}

// QueryDatabase fetches one page of records from a database. An empty
// cursor requests the first page; the returned Page carries the cursor for
// the next call. The cursor is opaque and must be passed back unchanged.
//
// Errors are mapped to the typed taxonomy in errors.go; use IsRetryable to
// classify them.
func (c *Client) QueryDatabase(ctx context.Context, databaseID, cursor string, pageSize int) (*Page, error) {
	url := fmt.Sprintf("%s/v1/databases/%s/query", c.config.BaseURL, databaseID)

	body, err := json.Marshal(queryRequest{
		StartCursor: cursor,
		PageSize:    pageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal query request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.config.Token)
	req.Header.Set("Notion-Version", c.config.Version)
	req.Header.Set("Content-Type", "application/json")

	slog.Debug("querying database",
		"database_id", databaseID,
		"page_size", pageSize,
		"has_cursor", cursor != "",
	)

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &NetworkError{Cause: err}
	}
	defer resp.Body.Close()

	responseBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Cause: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.errorFromResponse(databaseID, resp, responseBytes)
	}

	var qr queryResponse
	if err := json.Unmarshal(responseBytes, &qr); err != nil {
		return nil, &ParseError{
			RawResponse: string(responseBytes),
			Cause:       err,
		}
	}

	page := &Page{
		Records: qr.Results,
		HasMore: qr.HasMore,
	}
	if qr.NextCursor != nil {
		page.NextCursor = *qr.NextCursor
	}

	slog.Debug("page fetched",
		"database_id", databaseID,
		"records", len(page.Records),
		"has_more", page.HasMore,
	)

	return page, nil
}

// errorFromResponse maps a non-2xx API response to a typed error.
func (c *Client) errorFromResponse(databaseID string, resp *http.Response, body []byte) error {
	var apiErr errorResponse
	_ = json.Unmarshal(body, &apiErr)
	message := apiErr.Message
	if message == "" {
		message = string(body)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return &AuthError{
			StatusCode: resp.StatusCode,
			Message:    message,
		}

	case resp.StatusCode == http.StatusNotFound:
		return &NotFoundError{
			DatabaseID: databaseID,
			Message:    message,
		}

	case resp.StatusCode == http.StatusTooManyRequests:
		return &RateLimitError{
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			Message:    message,
		}

	case resp.StatusCode >= 500:
		return &ServerError{
			StatusCode: resp.StatusCode,
			Message:    message,
		}

	default:
		return &APIError{
			StatusCode: resp.StatusCode,
			Code:       apiErr.Code,
			Message:    message,
		}
	}
}

// parseRetryAfter parses the Retry-After header value.
// It supports both delay-seconds and HTTP-date formats.
func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 0
	}

	// Try parsing as seconds
	var seconds int
	if _, err := fmt.Sscanf(header, "%d", &seconds); err == nil {
		return time.Duration(seconds) * time.Second
	}

	// Try parsing as HTTP date
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}

	return 0
}
