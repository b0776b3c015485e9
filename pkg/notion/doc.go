// Package notion provides a minimal Notion API client for paginated
// database queries.
//
// # Pagination
//
// A database is drained by passing the cursor from each page back into the
// next call until HasMore is false:
//
//	cursor := ""
//	for {
//	    page, err := client.QueryDatabase(ctx, databaseID, cursor, 100)
//	    if err != nil {
//	        return err
//	    }
//	    process(page.Records)
//	    if !page.HasMore {
//	        break
//	    }
//	    cursor = page.NextCursor
//	}
//
// The cursor is an opaque continuation token owned by the API; the client
// never inspects or fabricates it.
//
// # Error Taxonomy
//
// Non-2xx responses map to typed errors:
//
//   - 401/403 → AuthError (not retryable)
//   - 404 → NotFoundError (not retryable)
//   - 429 → RateLimitError with Retry-After (retryable)
//   - 5xx → ServerError (retryable)
//   - transport failure → NetworkError (retryable)
//   - other 4xx → APIError (not retryable)
//
// Use IsRetryable to classify an error and RetryAfter to extract an
// explicit server-requested delay. The client itself never retries; retry
// policy lives in the backoff package so it can be unit-tested with a
// simulated clock.
package notion
