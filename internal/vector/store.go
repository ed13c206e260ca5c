package vector

import (
	"context"

	"github.com/zero-day-ai/agentkit/internal/types"
)

// Store persists embeddings and performs similarity search over them.
// Implementations must be safe for concurrent use.
type Store interface {
	// Add inserts or replaces a record.
	Add(ctx context.Context, record Record) error

	// AddBatch inserts or replaces multiple records atomically.
	AddBatch(ctx context.Context, records []Record) error

	// Get retrieves a record by ID. Returns VECTOR_NOT_FOUND if absent.
	Get(ctx context.Context, id string) (Record, error)

	// Search returns records ranked by cosine similarity to the query
	// embedding, filtered by MinScore and limited to TopK.
	Search(ctx context.Context, query Query) ([]Result, error)

	// Delete removes a record by ID. Deleting a missing record is not an error.
	Delete(ctx context.Context, id string) error

	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)

	// Health reports store availability.
	Health(ctx context.Context) types.HealthStatus

	// Close releases underlying resources.
	Close() error
}
