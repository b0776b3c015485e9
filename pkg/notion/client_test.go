package notion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	client, err := NewClient(ClientConfig{
		Token:   "secret-token",
		BaseURL: baseURL,
		Timeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return client
}

func TestNewClient_RequiresToken(t *testing.T) {
	_, err := NewClient(ClientConfig{})
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthError for missing token, got %T: %v", err, err)
	}
}

func TestQueryDatabase_Pagination(t *testing.T) {
	calls := int32(0)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		count := atomic.AddInt32(&calls, 1)

		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret-token" {
			t.Errorf("unexpected Authorization header: %q", got)
		}
		if got := r.Header.Get("Notion-Version"); got == "" {
			t.Error("expected Notion-Version header to be set")
		}

		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}

		switch count {
		case 1:
			if _, ok := req["start_cursor"]; ok {
				t.Error("first request must not carry a cursor")
			}
			fmt.Fprint(w, `{"object":"list","results":[{"id":"rec-1","properties":{}}],"next_cursor":"cur-2","has_more":true}`)
		case 2:
			if req["start_cursor"] != "cur-2" {
				t.Errorf("expected cursor cur-2, got %v", req["start_cursor"])
			}
			fmt.Fprint(w, `{"object":"list","results":[{"id":"rec-2","properties":{}}],"next_cursor":null,"has_more":false}`)
		default:
			t.Errorf("unexpected extra request %d", count)
		}
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	ctx := context.Background()

	page, err := client.QueryDatabase(ctx, "db-1", "", 100)
	if err != nil {
		t.Fatalf("first page failed: %v", err)
	}
	if !page.HasMore || page.NextCursor != "cur-2" {
		t.Errorf("expected has_more with cursor cur-2, got %+v", page)
	}
	if len(page.Records) != 1 || page.Records[0].ID != "rec-1" {
		t.Errorf("unexpected first page records: %+v", page.Records)
	}

	page, err = client.QueryDatabase(ctx, "db-1", page.NextCursor, 100)
	if err != nil {
		t.Fatalf("second page failed: %v", err)
	}
	if page.HasMore || page.NextCursor != "" {
		t.Errorf("expected final page, got %+v", page)
	}
	if len(page.Records) != 1 || page.Records[0].ID != "rec-2" {
		t.Errorf("unexpected second page records: %+v", page.Records)
	}
}

func TestQueryDatabase_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		headers    map[string]string
		check      func(t *testing.T, err error)
		retryable  bool
	}{
		{
			name:       "401 unauthorized",
			statusCode: http.StatusUnauthorized,
			check: func(t *testing.T, err error) {
				var authErr *AuthError
				if !errors.As(err, &authErr) {
					t.Errorf("expected AuthError, got %T: %v", err, err)
				}
			},
			retryable: false,
		},
		{
			name:       "403 forbidden",
			statusCode: http.StatusForbidden,
			check: func(t *testing.T, err error) {
				var authErr *AuthError
				if !errors.As(err, &authErr) {
					t.Errorf("expected AuthError, got %T: %v", err, err)
				}
			},
			retryable: false,
		},
		{
			name:       "404 not found",
			statusCode: http.StatusNotFound,
			check: func(t *testing.T, err error) {
				var notFoundErr *NotFoundError
				if !errors.As(err, &notFoundErr) {
					t.Errorf("expected NotFoundError, got %T: %v", err, err)
				} else if notFoundErr.DatabaseID != "db-1" {
					t.Errorf("expected database id db-1, got %q", notFoundErr.DatabaseID)
				}
			},
			retryable: false,
		},
		{
			name:       "429 rate limited",
			statusCode: http.StatusTooManyRequests,
			headers:    map[string]string{"Retry-After": "7"},
			check: func(t *testing.T, err error) {
				var rateLimitErr *RateLimitError
				if !errors.As(err, &rateLimitErr) {
					t.Errorf("expected RateLimitError, got %T: %v", err, err)
				} else if rateLimitErr.RetryAfter != 7*time.Second {
					t.Errorf("expected retry after 7s, got %s", rateLimitErr.RetryAfter)
				}
			},
			retryable: true,
		},
		{
			name:       "500 server error",
			statusCode: http.StatusInternalServerError,
			check: func(t *testing.T, err error) {
				var serverErr *ServerError
				if !errors.As(err, &serverErr) {
					t.Errorf("expected ServerError, got %T: %v", err, err)
				}
			},
			retryable: true,
		},
		{
			name:       "503 unavailable",
			statusCode: http.StatusServiceUnavailable,
			check: func(t *testing.T, err error) {
				var serverErr *ServerError
				if !errors.As(err, &serverErr) {
					t.Errorf("expected ServerError, got %T: %v", err, err)
				}
			},
			retryable: true,
		},
		{
			name:       "400 validation error",
			statusCode: http.StatusBadRequest,
			check: func(t *testing.T, err error) {
				var apiErr *APIError
				if !errors.As(err, &apiErr) {
					t.Errorf("expected APIError, got %T: %v", err, err)
				} else if apiErr.Code != "validation_error" {
					t.Errorf("expected code validation_error, got %q", apiErr.Code)
				}
			},
			retryable: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				for k, v := range tt.headers {
					w.Header().Set(k, v)
				}
				w.WriteHeader(tt.statusCode)
				fmt.Fprintf(w, `{"object":"error","status":%d,"code":"validation_error","message":"boom"}`, tt.statusCode)
			}))
			defer server.Close()

			client := newTestClient(t, server.URL)
			_, err := client.QueryDatabase(context.Background(), "db-1", "", 100)
			if err == nil {
				t.Fatal("expected error, got nil")
			}

			tt.check(t, err)

			if got := IsRetryable(err); got != tt.retryable {
				t.Errorf("IsRetryable = %v, want %v", got, tt.retryable)
			}
		})
	}
}

func TestQueryDatabase_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	client := newTestClient(t, server.URL)
	_, err := client.QueryDatabase(context.Background(), "db-1", "", 100)

	var networkErr *NetworkError
	if !errors.As(err, &networkErr) {
		t.Fatalf("expected NetworkError, got %T: %v", err, err)
	}
	if !IsRetryable(err) {
		t.Error("network errors must be retryable")
	}
}

func TestQueryDatabase_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.QueryDatabase(ctx, "db-1", "", 100)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestQueryDatabase_ParseError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `not json`)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.QueryDatabase(context.Background(), "db-1", "", 100)

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %T: %v", err, err)
	}
	if parseErr.RawResponse != "not json" {
		t.Errorf("expected raw response to be retained, got %q", parseErr.RawResponse)
	}
}

func TestProperty_UnmarshalRetainsRaw(t *testing.T) {
	data := []byte(`{"type":"rollup","rollup":{"type":"number","number":42}}`)

	var prop Property
	if err := json.Unmarshal(data, &prop); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if prop.Type != "rollup" {
		t.Errorf("expected type rollup, got %q", prop.Type)
	}
	if prop.Raw() == nil {
		t.Error("expected raw JSON to be retained for unknown kinds")
	}
}

func TestParseRetryAfter(t *testing.T) {
	tests := []struct {
		header string
		want   time.Duration
	}{
		{"", 0},
		{"10", 10 * time.Second},
		{"0", 0},
		{"garbage", 0},
	}

	for _, tt := range tests {
		if got := parseRetryAfter(tt.header); got != tt.want {
			t.Errorf("parseRetryAfter(%q) = %s, want %s", tt.header, got, tt.want)
		}
	}
}
