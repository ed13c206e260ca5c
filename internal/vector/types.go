package vector

import (
	"math"
	"reflect"
	"sort"
	"time"

	"github.com/zero-day-ai/agentkit/internal/types"
)

// Record is a single entry in the vector index: a piece of knowledge
// content, its embedding, and optional metadata used for filtering.
type Record struct {
	ID        string         `json:"id"`
	Content   string         `json:"content"`
	Embedding []float64      `json:"embedding"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// NewRecord creates a Record with a generated ID and current timestamp.
func NewRecord(content string, embedding []float64) Record {
	return Record{
		ID:        types.NewID().String(),
		Content:   content,
		Embedding: embedding,
		CreatedAt: time.Now(),
	}
}

// Validate checks the record for required fields.
func (r Record) Validate() error {
	if r.ID == "" {
		return types.NewError(types.VECTOR_STORE_FAILED, "record ID cannot be empty")
	}
	if r.Content == "" {
		return types.NewError(types.VECTOR_STORE_FAILED, "record content cannot be empty")
	}
	if len(r.Embedding) == 0 {
		return types.NewError(types.VECTOR_STORE_FAILED, "record embedding cannot be empty")
	}
	return nil
}

// Query describes a similarity search against the store.
type Query struct {
	// Embedding is the query vector. Required.
	Embedding []float64

	// TopK limits the number of results returned.
	TopK int

	// MinScore filters out results below this cosine similarity.
	MinScore float64

	// Filters match against record metadata with exact equality.
	Filters map[string]any
}

// Validate checks the query for consistency.
func (q Query) Validate() error {
	if q.TopK <= 0 {
		return types.NewError(types.VECTOR_SEARCH_FAILED, "TopK must be positive")
	}
	if q.MinScore < -1 || q.MinScore > 1 {
		return types.NewError(types.VECTOR_SEARCH_FAILED, "MinScore must be in [-1,1]")
	}
	return nil
}

// Result pairs a record with its similarity to the query embedding.
type Result struct {
	Record Record
	Score  float64
}

// CosineSimilarity computes the cosine similarity between two vectors.
// Returns 0 for mismatched lengths or zero vectors.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// sortResults orders results by score descending.
func sortResults(results []Result) {
	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
}

// matchesFilters reports whether the record metadata satisfies every filter
// with exact equality. Deep equality keeps slice and map values (which the
// JSON round-trip produces) from panicking under ==.
func matchesFilters(record Record, filters map[string]any) bool {
	for key, want := range filters {
		got, ok := record.Metadata[key]
		if !ok || !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}
