package vector

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/zero-day-ai/agentkit/internal/database"
	"github.com/zero-day-ai/agentkit/internal/types"
)

const vectorSchema = `
CREATE TABLE IF NOT EXISTS knowledge_vectors (
	id         TEXT PRIMARY KEY,
	content    TEXT NOT NULL,
	embedding  BLOB NOT NULL,
	dimensions INTEGER NOT NULL,
	metadata   TEXT,
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_knowledge_vectors_created ON knowledge_vectors(created_at);
`

// SqliteStore is a Store backed by a SQLite table. Similarity search is
// brute-force cosine over all stored embeddings, which is adequate for
// knowledge bases in the tens of thousands of entries.
type SqliteStore struct {
	mu     sync.RWMutex
	db     *database.DB
	owned  bool
	closed bool
}

// NewSqliteStore opens (or creates) a vector store at the given path.
func NewSqliteStore(path string) (*SqliteStore, error) {
	db, err := database.Open(path)
	if err != nil {
		return nil, types.WrapError(types.VECTOR_STORE_FAILED,
			fmt.Sprintf("failed to open vector store at %s", path), err)
	}

	s := &SqliteStore{db: db, owned: true}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewSqliteStoreWithDB wraps an already-open database, sharing the
// connection with other stores (such as the audit trail).
func NewSqliteStoreWithDB(db *database.DB) (*SqliteStore, error) {
	s := &SqliteStore{db: db}
	if err := s.initSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SqliteStore) initSchema() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := s.db.ExecContext(ctx, vectorSchema); err != nil {
		return types.WrapError(types.VECTOR_STORE_FAILED,
			"failed to initialize vector schema", err)
	}
	return nil
}

// Add inserts or replaces a record.
func (s *SqliteStore) Add(ctx context.Context, record Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return types.NewError(types.VECTOR_STORE_UNAVAILABLE, "vector store is closed")
	}
	if err := record.Validate(); err != nil {
		return err
	}

	return s.insert(ctx, s.db.ExecContext, record)
}

// AddBatch inserts or replaces multiple records in a single transaction.
func (s *SqliteStore) AddBatch(ctx context.Context, records []Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return types.NewError(types.VECTOR_STORE_UNAVAILABLE, "vector store is closed")
	}
	for _, record := range records {
		if err := record.Validate(); err != nil {
			return err
		}
	}

	return s.db.WithTx(ctx, func(tx *sql.Tx) error {
		for _, record := range records {
			if err := s.insert(ctx, tx.ExecContext, record); err != nil {
				return err
			}
		}
		return nil
	})
}

type execFunc func(ctx context.Context, query string, args ...any) (sql.Result, error)

func (s *SqliteStore) insert(ctx context.Context, exec execFunc, record Record) error {
	blob := serializeEmbedding(record.Embedding)

	var metadata any
	if len(record.Metadata) > 0 {
		data, err := json.Marshal(record.Metadata)
		if err != nil {
			return types.WrapError(types.VECTOR_STORE_FAILED,
				"failed to marshal record metadata", err)
		}
		metadata = string(data)
	}

	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := exec(ctx, `
		INSERT OR REPLACE INTO knowledge_vectors (id, content, embedding, dimensions, metadata, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		record.ID, record.Content, blob, len(record.Embedding), metadata, createdAt,
	)
	if err != nil {
		return types.WrapError(types.VECTOR_STORE_FAILED,
			fmt.Sprintf("failed to store vector %s", record.ID), err)
	}
	return nil
}

// Get retrieves a record by ID.
func (s *SqliteStore) Get(ctx context.Context, id string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return Record{}, types.NewError(types.VECTOR_STORE_UNAVAILABLE, "vector store is closed")
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, content, embedding, metadata, created_at
		FROM knowledge_vectors WHERE id = ?`, id)

	record, err := scanRecord(row.Scan)
	if err == sql.ErrNoRows {
		return Record{}, types.NewError(types.VECTOR_NOT_FOUND,
			fmt.Sprintf("vector %s not found", id))
	}
	if err != nil {
		return Record{}, types.WrapError(types.VECTOR_STORE_FAILED,
			fmt.Sprintf("failed to load vector %s", id), err)
	}
	return record, nil
}

// Search runs a brute-force cosine similarity scan.
func (s *SqliteStore) Search(ctx context.Context, query Query) ([]Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, types.NewError(types.VECTOR_STORE_UNAVAILABLE, "vector store is closed")
	}
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, content, embedding, metadata, created_at
		FROM knowledge_vectors`)
	if err != nil {
		return nil, types.WrapError(types.VECTOR_SEARCH_FAILED,
			"failed to scan vectors", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		record, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, types.WrapError(types.VECTOR_SEARCH_FAILED,
				"failed to decode vector row", err)
		}

		if !matchesFilters(record, query.Filters) {
			continue
		}

		score := CosineSimilarity(query.Embedding, record.Embedding)
		if score < query.MinScore {
			continue
		}

		results = append(results, Result{Record: record, Score: score})
	}
	if err := rows.Err(); err != nil {
		return nil, types.WrapError(types.VECTOR_SEARCH_FAILED,
			"vector scan failed", err)
	}

	sortResults(results)
	if len(results) > query.TopK {
		results = results[:query.TopK]
	}
	return results, nil
}

// Delete removes a record by ID.
func (s *SqliteStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return types.NewError(types.VECTOR_STORE_UNAVAILABLE, "vector store is closed")
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM knowledge_vectors WHERE id = ?`, id); err != nil {
		return types.WrapError(types.VECTOR_STORE_FAILED,
			fmt.Sprintf("failed to delete vector %s", id), err)
	}
	return nil
}

// Count returns the number of stored records.
func (s *SqliteStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return 0, types.NewError(types.VECTOR_STORE_UNAVAILABLE, "vector store is closed")
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM knowledge_vectors`).Scan(&count); err != nil {
		return 0, types.WrapError(types.VECTOR_STORE_FAILED, "failed to count vectors", err)
	}
	return count, nil
}

// Health reports store availability.
func (s *SqliteStore) Health(ctx context.Context) types.HealthStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return types.Unhealthy("vector store is closed")
	}
	if err := s.db.Health(ctx); err != nil {
		return types.Unhealthy(fmt.Sprintf("vector store database unreachable: %v", err))
	}
	return types.Healthy("vector store ready")
}

// Close marks the store closed and releases the database if this store
// opened it. Databases shared via NewSqliteStoreWithDB stay open for their
// owner.
func (s *SqliteStore) Close() error {
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

func scanRecord(scan func(dest ...any) error) (Record, error) {
	var (
		record   Record
		blob     []byte
		metadata sql.NullString
	)
	if err := scan(&record.ID, &record.Content, &blob, &metadata, &record.CreatedAt); err != nil {
		return Record{}, err
	}

	record.Embedding = deserializeEmbedding(blob)
	if metadata.Valid && metadata.String != "" {
		if err := json.Unmarshal([]byte(metadata.String), &record.Metadata); err != nil {
			return Record{}, err
		}
	}
	return record, nil
}

// serializeEmbedding packs float64 values into a little-endian byte blob.
func serializeEmbedding(embedding []float64) []byte {
	blob := make([]byte, len(embedding)*8)
	for i, v := range embedding {
		binary.LittleEndian.PutUint64(blob[i*8:], math.Float64bits(v))
	}
	return blob
}

// deserializeEmbedding unpacks a blob written by serializeEmbedding.
func deserializeEmbedding(blob []byte) []float64 {
	embedding := make([]float64, len(blob)/8)
	for i := range embedding {
		embedding[i] = math.Float64frombits(binary.LittleEndian.Uint64(blob[i*8:]))
	}
	return embedding
}
