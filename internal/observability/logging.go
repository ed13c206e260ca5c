package observability

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/zero-day-ai/agentkit/internal/config"
	"go.opentelemetry.io/otel/trace"
)

// sensitiveFields are redacted from log output at info level and above.
// Keys are normalized to lowercase with underscores stripped.
var sensitiveFields = map[string]bool{
	"apikey":     true,
	"secret":     true,
	"secretkey":  true,
	"password":   true,
	"token":      true,
	"credential": true,
}

// NewLogger builds the toolkit's structured logger from configuration.
// Format "json" emits machine-readable records; anything else uses the
// text handler.
func NewLogger(cfg config.LoggingConfig) *slog.Logger {
	return NewLoggerWithWriter(cfg, os.Stderr)
}

// NewLoggerWithWriter is NewLogger with an explicit output, for tests.
func NewLoggerWithWriter(cfg config.LoggingConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(&tracedHandler{Handler: handler})
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// tracedHandler decorates records with trace correlation and redacts
// sensitive attribute values before they reach the underlying handler.
type tracedHandler struct {
	slog.Handler
}

func (h *tracedHandler) Handle(ctx context.Context, record slog.Record) error {
	out := slog.NewRecord(record.Time, record.Level, record.Message, record.PC)

	record.Attrs(func(attr slog.Attr) bool {
		out.AddAttrs(redact(record.Level, attr))
		return true
	})

	if span := trace.SpanContextFromContext(ctx); span.IsValid() {
		out.AddAttrs(
			slog.String("trace_id", span.TraceID().String()),
			slog.String("span_id", span.SpanID().String()),
		)
	}

	return h.Handler.Handle(ctx, out)
}

func (h *tracedHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &tracedHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *tracedHandler) WithGroup(name string) slog.Handler {
	return &tracedHandler{Handler: h.Handler.WithGroup(name)}
}

// redact masks sensitive values. Debug records pass through untouched so
// local troubleshooting keeps full fidelity.
func redact(level slog.Level, attr slog.Attr) slog.Attr {
	if level < slog.LevelInfo {
		return attr
	}

	normalized := strings.ToLower(strings.ReplaceAll(attr.Key, "_", ""))
	if sensitiveFields[normalized] {
		return slog.String(attr.Key, "[REDACTED]")
	}
	return attr
}
