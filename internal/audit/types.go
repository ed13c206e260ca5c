package audit

import (
	"time"

	"github.com/zero-day-ai/agentkit/internal/types"
)

// Record is a single entry in the agent action audit trail.
type Record struct {
	ID        types.ID       `json:"id"`
	Actor     string         `json:"actor"`
	Action    string         `json:"action"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	TraceID   string         `json:"trace_id,omitempty"`
	SpanID    string         `json:"span_id,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// NewRecord creates an audit record with a generated ID and current timestamp.
func NewRecord(actor, action string, metadata map[string]any) Record {
	return Record{
		ID:        types.NewID(),
		Actor:     actor,
		Action:    action,
		Metadata:  metadata,
		CreatedAt: time.Now(),
	}
}

// Validate checks the record for required fields.
func (r Record) Validate() error {
	if r.Actor == "" {
		return types.NewError(types.AUDIT_INVALID_INPUT, "audit record actor cannot be empty")
	}
	if r.Action == "" {
		return types.NewError(types.AUDIT_INVALID_INPUT, "audit record action cannot be empty")
	}
	return nil
}

// Filter narrows audit trail queries. Zero-valued fields are ignored.
type Filter struct {
	// Actor restricts results to a single agent.
	Actor string

	// Action restricts results to a single action name.
	Action string

	// Since restricts results to records created at or after this time.
	Since time.Time

	// Until restricts results to records created before this time.
	Until time.Time

	// Limit caps the number of records returned. Zero means no limit.
	Limit int
}
