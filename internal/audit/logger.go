package audit

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// Logger records agent actions both to the persistent trail and to
// structured logs. Trace and span IDs are captured from the context so
// audit records correlate with distributed traces.
type Logger struct {
	store   *Store
	log     *slog.Logger
	enabled bool
}

// NewLogger creates an audit logger. When enabled is false, actions are
// emitted to structured logs only and the trail is not written.
func NewLogger(store *Store, log *slog.Logger, enabled bool) *Logger {
	if log == nil {
		log = slog.Default()
	}
	return &Logger{
		store:   store,
		log:     log,
		enabled: enabled,
	}
}

// Log records an agent action. The record is always emitted as a structured
// log line; persistence depends on the enabled flag.
func (l *Logger) Log(ctx context.Context, actor, action string, metadata map[string]any) (Record, error) {
	record := NewRecord(actor, action, metadata)
	if err := record.Validate(); err != nil {
		return Record{}, err
	}

	if span := trace.SpanContextFromContext(ctx); span.IsValid() {
		record.TraceID = span.TraceID().String()
		record.SpanID = span.SpanID().String()
	}

	attrs := []slog.Attr{
		slog.String("audit_id", record.ID.String()),
		slog.String("actor", record.Actor),
		slog.String("action", record.Action),
	}
	if record.TraceID != "" {
		attrs = append(attrs,
			slog.String("trace_id", record.TraceID),
			slog.String("span_id", record.SpanID),
		)
	}
	if len(record.Metadata) > 0 {
		attrs = append(attrs, slog.Any("metadata", record.Metadata))
	}

	if l.enabled && l.store != nil {
		if err := l.store.Append(ctx, record); err != nil {
			l.log.LogAttrs(ctx, slog.LevelError, "agent action persistence failed",
				append(attrs, slog.String("error", err.Error()))...)
			return Record{}, err
		}
	}

	l.log.LogAttrs(ctx, slog.LevelInfo, "agent action", attrs...)
	return record, nil
}
