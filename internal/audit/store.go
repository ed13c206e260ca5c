package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/zero-day-ai/agentkit/internal/database"
	"github.com/zero-day-ai/agentkit/internal/types"
)

const auditSchema = `
CREATE TABLE IF NOT EXISTS agent_actions (
	id         TEXT PRIMARY KEY,
	actor      TEXT NOT NULL,
	action     TEXT NOT NULL,
	metadata   TEXT,
	trace_id   TEXT,
	span_id    TEXT,
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_agent_actions_actor ON agent_actions(actor);
CREATE INDEX IF NOT EXISTS idx_agent_actions_created ON agent_actions(created_at);
`

// Store persists agent action records to SQLite.
type Store struct {
	mu     sync.RWMutex
	db     *database.DB
	owned  bool
	closed bool
}

// NewStore opens (or creates) an audit store at the given path.
func NewStore(path string) (*Store, error) {
	db, err := database.Open(path)
	if err != nil {
		return nil, types.WrapError(types.AUDIT_STORE_FAILED,
			fmt.Sprintf("failed to open audit store at %s", path), err)
	}

	s := &Store{db: db, owned: true}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewStoreWithDB wraps an already-open database. The caller retains
// ownership and is responsible for closing it.
func NewStoreWithDB(db *database.DB) (*Store, error) {
	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) initSchema() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := s.db.ExecContext(ctx, auditSchema); err != nil {
		return types.WrapError(types.AUDIT_STORE_FAILED,
			"failed to initialize audit schema", err)
	}
	return nil
}

// Append writes a record to the trail.
func (s *Store) Append(ctx context.Context, record Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return types.NewError(types.AUDIT_STORE_CLOSED, "audit store is closed")
	}
	if err := record.Validate(); err != nil {
		return err
	}

	var metadata any
	if len(record.Metadata) > 0 {
		data, err := json.Marshal(record.Metadata)
		if err != nil {
			return types.WrapError(types.AUDIT_STORE_FAILED,
				"failed to marshal audit metadata", err)
		}
		metadata = string(data)
	}

	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO agent_actions (id, actor, action, metadata, trace_id, span_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.ID.String(), record.Actor, record.Action, metadata,
		nullable(record.TraceID), nullable(record.SpanID), createdAt,
	)
	if err != nil {
		return types.WrapError(types.AUDIT_STORE_FAILED,
			fmt.Sprintf("failed to append audit record for %s", record.Actor), err)
	}
	return nil
}

// List returns records matching the filter, most recent first.
func (s *Store) List(ctx context.Context, filter Filter) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, types.NewError(types.AUDIT_STORE_CLOSED, "audit store is closed")
	}

	query := strings.Builder{}
	query.WriteString(`SELECT id, actor, action, metadata, trace_id, span_id, created_at FROM agent_actions`)

	var (
		conds []string
		args  []any
	)
	if filter.Actor != "" {
		conds = append(conds, "actor = ?")
		args = append(args, filter.Actor)
	}
	if filter.Action != "" {
		conds = append(conds, "action = ?")
		args = append(args, filter.Action)
	}
	if !filter.Since.IsZero() {
		conds = append(conds, "created_at >= ?")
		args = append(args, filter.Since)
	}
	if !filter.Until.IsZero() {
		conds = append(conds, "created_at < ?")
		args = append(args, filter.Until)
	}
	if len(conds) > 0 {
		query.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}
	query.WriteString(" ORDER BY created_at DESC, id DESC")
	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, types.WrapError(types.AUDIT_QUERY_FAILED,
			"failed to query audit trail", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			record   Record
			id       string
			metadata sql.NullString
			traceID  sql.NullString
			spanID   sql.NullString
		)
		if err := rows.Scan(&id, &record.Actor, &record.Action, &metadata, &traceID, &spanID, &record.CreatedAt); err != nil {
			return nil, types.WrapError(types.AUDIT_QUERY_FAILED,
				"failed to scan audit record", err)
		}

		parsed, err := types.ParseID(id)
		if err != nil {
			return nil, types.WrapError(types.AUDIT_QUERY_FAILED,
				fmt.Sprintf("invalid audit record ID %s", id), err)
		}
		record.ID = parsed

		if metadata.Valid && metadata.String != "" {
			if err := json.Unmarshal([]byte(metadata.String), &record.Metadata); err != nil {
				return nil, types.WrapError(types.AUDIT_QUERY_FAILED,
					"failed to decode audit metadata", err)
			}
		}
		record.TraceID = traceID.String
		record.SpanID = spanID.String

		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, types.WrapError(types.AUDIT_QUERY_FAILED,
			"audit trail scan failed", err)
	}
	return records, nil
}

// Count returns the number of records matching the actor filter.
// An empty actor counts all records.
func (s *Store) Count(ctx context.Context, actor string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return 0, types.NewError(types.AUDIT_STORE_CLOSED, "audit store is closed")
	}

	var (
		count int
		err   error
	)
	if actor == "" {
		err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM agent_actions`).Scan(&count)
	} else {
		err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM agent_actions WHERE actor = ?`, actor).Scan(&count)
	}
	if err != nil {
		return 0, types.WrapError(types.AUDIT_QUERY_FAILED, "failed to count audit records", err)
	}
	return count, nil
}

// Health reports store availability.
func (s *Store) Health(ctx context.Context) types.HealthStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return types.Unhealthy("audit store is closed")
	}
	if err := s.db.Health(ctx); err != nil {
		return types.Unhealthy(fmt.Sprintf("audit store database unreachable: %v", err))
	}
	return types.Healthy("audit store ready")
}

// Close marks the store closed and releases the database if this store
// opened it.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if s.owned {
		return s.db.Close()
	}
	return nil
}

func nullable(v string) any {
	if v == "" {
		return nil
	}
	return v
}
