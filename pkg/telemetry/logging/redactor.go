package logging

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
)

// bearerPattern matches bearer credentials embedded in free-form strings,
// such as a dumped request header.
var bearerPattern = regexp.MustCompile(`Bearer\s+[a-zA-Z0-9\-._~+/]+=*`)

// sensitiveKeys marks attribute keys whose values are credentials. Matching
// is by substring, case-insensitive, so "notion_token" and "webhook_secret"
// are both caught.
var sensitiveKeys = []string{
	"token",
	"secret",
	"password",
	"authorization",
	"api_key",
	"apikey",
}

// RedactHandler is a slog.Handler that redacts credential-bearing
// attributes before delegating to the wrapped handler.
type RedactHandler struct {
	inner slog.Handler
}

// NewRedactHandler wraps a handler with credential redaction.
func NewRedactHandler(inner slog.Handler) *RedactHandler {
	return &RedactHandler{inner: inner}
}

// Enabled reports whether the wrapped handler handles records at the level.
func (h *RedactHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle redacts the record's attributes and message, then delegates.
func (h *RedactHandler) Handle(ctx context.Context, rec slog.Record) error {
	redacted := slog.NewRecord(rec.Time, rec.Level, RedactString(rec.Message), rec.PC)
	rec.Attrs(func(attr slog.Attr) bool {
		redacted.AddAttrs(redactAttr(attr))
		return true
	})
	return h.inner.Handle(ctx, redacted)
}

// WithAttrs redacts the attributes before attaching them.
func (h *RedactHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make([]slog.Attr, 0, len(attrs))
	for _, attr := range attrs {
		out = append(out, redactAttr(attr))
	}
	return &RedactHandler{inner: h.inner.WithAttrs(out)}
}

// WithGroup delegates grouping to the wrapped handler.
func (h *RedactHandler) WithGroup(name string) slog.Handler {
	return &RedactHandler{inner: h.inner.WithGroup(name)}
}

// redactAttr redacts one attribute, recursing into groups.
func redactAttr(attr slog.Attr) slog.Attr {
	if attr.Value.Kind() == slog.KindGroup {
		group := attr.Value.Group()
		out := make([]slog.Attr, 0, len(group))
		for _, member := range group {
			out = append(out, redactAttr(member))
		}
		return slog.Attr{Key: attr.Key, Value: slog.GroupValue(out...)}
	}

	if isSensitiveKey(attr.Key) {
		return slog.String(attr.Key, redactValue(attr.Value.String()))
	}
	if attr.Value.Kind() == slog.KindString {
		return slog.String(attr.Key, RedactString(attr.Value.String()))
	}
	return attr
}

// isSensitiveKey reports whether an attribute key names a credential.
func isSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, sensitive := range sensitiveKeys {
		if strings.Contains(lower, sensitive) {
			return true
		}
	}
	return false
}

// redactValue masks a credential value, keeping a short prefix so distinct
// credentials remain distinguishable when debugging.
func redactValue(value string) string {
	if value == "" {
		return ""
	}
	if len(value) <= 4 {
		return "***"
	}
	return value[:4] + "***"
}

// RedactString strips bearer credentials embedded in a free-form string.
func RedactString(value string) string {
	if value == "" {
		return value
	}
	return bearerPattern.ReplaceAllString(value, "Bearer ***")
}
