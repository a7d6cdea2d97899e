package log

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
)

// MaskValue is the string used to replace redacted values.
const MaskValue = "***REDACTED***"

// redactedKeys are attribute keys that are always masked.
var redactedKeys = map[string]bool{
	"authorization": true,
	"cookie":        true,
	"password":      true,
	"passwd":        true,
	"secret":        true,
	"token":         true,
	"api_key":       true,
	"apikey":        true,
	"email":         true,
	"e-mail":        true,
	"phone":         true,
	"mobile":        true,
	"whatsapp":      true,
	"contact":       true,
}

// redactedKeywords mask any key that contains them.
var redactedKeywords = []string{
	"password", "secret", "token", "credential", "email", "phone",
}

// redactedPatterns mask string values regardless of key name.
var redactedPatterns = []*regexp.Regexp{
	regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`),
	regexp.MustCompile(`^\+?[0-9][0-9 ()-]{7,}[0-9]$`),
	regexp.MustCompile(`(?i)^bearer\s+.+`),
	regexp.MustCompile(`(?i)^basic\s+[A-Za-z0-9+/=]+$`),
}

// RedactHandler wraps an slog.Handler and masks contact details and
// credentials in attributes before passing records on.
type RedactHandler struct {
	handler slog.Handler
	keys    map[string]bool
}

// RedactOption configures a RedactHandler.
type RedactOption func(*RedactHandler)

// WithRedactedKeys masks additional attribute keys (case-insensitive).
func WithRedactedKeys(keys ...string) RedactOption {
	return func(h *RedactHandler) {
		for _, k := range keys {
			h.keys[strings.ToLower(k)] = true
		}
	}
}

// NewRedactHandler creates a RedactHandler wrapping the given handler.
// If handler is nil, slog.Default().Handler() is used.
func NewRedactHandler(handler slog.Handler, opts ...RedactOption) *RedactHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	h := &RedactHandler{handler: handler, keys: make(map[string]bool, len(redactedKeys))}
	for k := range redactedKeys {
		h.keys[k] = true
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Enabled delegates to the underlying handler.
func (h *RedactHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle masks the record's attributes and passes it to the underlying handler.
func (h *RedactHandler) Handle(ctx context.Context, r slog.Record) error {
	out := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		out.AddAttrs(h.redact(a))
		return true
	})
	return h.handler.Handle(ctx, out)
}

// WithAttrs returns a handler with the given attributes added after masking.
func (h *RedactHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	masked := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		masked[i] = h.redact(a)
	}
	return &RedactHandler{handler: h.handler.WithAttrs(masked), keys: h.keys}
}

// WithGroup returns a handler with the given group name.
func (h *RedactHandler) WithGroup(name string) slog.Handler {
	return &RedactHandler{handler: h.handler.WithGroup(name), keys: h.keys}
}

func (h *RedactHandler) redact(a slog.Attr) slog.Attr {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		masked := make([]slog.Attr, len(attrs))
		for i, ga := range attrs {
			masked[i] = h.redact(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(masked...)}
	}

	if h.isRedactedKey(a.Key) {
		return slog.String(a.Key, MaskValue)
	}

	if a.Value.Kind() == slog.KindString && isRedactedValue(a.Value.String()) {
		return slog.String(a.Key, MaskValue)
	}

	return a
}

func (h *RedactHandler) isRedactedKey(key string) bool {
	key = strings.ToLower(key)
	if h.keys[key] {
		return true
	}
	for _, kw := range redactedKeywords {
		if strings.Contains(key, kw) {
			return true
		}
	}
	return false
}

func isRedactedValue(v string) bool {
	for _, p := range redactedPatterns {
		if p.MatchString(v) {
			return true
		}
	}
	return false
}
