package vector

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zero-day-ai/agentkit/internal/types"
)

func newTestStore(t *testing.T) *SqliteStore {
	t.Helper()

	path := filepath.Join(t.TempDir(), "vectors.db")
	store, err := NewSqliteStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSqliteStore_AddGet(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	record := NewRecord("sql injection allows arbitrary query execution", []float64{0.1, 0.2, 0.3})
	record.Metadata = map[string]any{"source": "cwe-89"}

	require.NoError(t, store.Add(ctx, record))

	got, err := store.Get(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, record.Content, got.Content)
	assert.Equal(t, record.Embedding, got.Embedding)
	assert.Equal(t, "cwe-89", got.Metadata["source"])
}

func TestSqliteStore_GetMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "no-such-id")
	require.Error(t, err)

	var terr *types.ToolkitError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, types.VECTOR_NOT_FOUND, terr.Code)
}

func TestSqliteStore_AddValidation(t *testing.T) {
	store := newTestStore(t)

	err := store.Add(context.Background(), Record{ID: "x", Content: "no embedding"})
	require.Error(t, err)
}

func TestSqliteStore_Search(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	records := []Record{
		{ID: "a", Content: "exact match", Embedding: []float64{1, 0, 0}},
		{ID: "b", Content: "orthogonal", Embedding: []float64{0, 1, 0}},
		{ID: "c", Content: "close match", Embedding: []float64{0.9, 0.1, 0}},
	}
	require.NoError(t, store.AddBatch(ctx, records))

	results, err := store.Search(ctx, Query{
		Embedding: []float64{1, 0, 0},
		TopK:      2,
		MinScore:  0.5,
	})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "a", results[0].Record.ID)
	assert.InDelta(t, 1.0, results[0].Score, 1e-9)
	assert.Equal(t, "c", results[1].Record.ID)
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestSqliteStore_SearchFilters(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Add(ctx, Record{
		ID: "a", Content: "tagged", Embedding: []float64{1, 0},
		Metadata: map[string]any{"source": "nvd"},
	}))
	require.NoError(t, store.Add(ctx, Record{
		ID: "b", Content: "untagged", Embedding: []float64{1, 0},
	}))

	results, err := store.Search(ctx, Query{
		Embedding: []float64{1, 0},
		TopK:      10,
		Filters:   map[string]any{"source": "nvd"},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "a", results[0].Record.ID)
}

func TestSqliteStore_SearchSliceValuedFilter(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	// slice values come back from the JSON round-trip as []any and must
	// compare without panicking
	require.NoError(t, store.Add(ctx, Record{
		ID: "a", Content: "multi-service host", Embedding: []float64{1, 0},
		Metadata: map[string]any{"services": []any{"ssh", "telnet"}},
	}))
	require.NoError(t, store.Add(ctx, Record{
		ID: "b", Content: "single-service host", Embedding: []float64{1, 0},
		Metadata: map[string]any{"services": []any{"ssh"}},
	}))

	results, err := store.Search(ctx, Query{
		Embedding: []float64{1, 0},
		TopK:      10,
		Filters:   map[string]any{"services": []any{"ssh", "telnet"}},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "a", results[0].Record.ID)
}

func TestSqliteStore_SearchInvalidQuery(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Search(context.Background(), Query{Embedding: []float64{1}, TopK: 0})
	require.Error(t, err)
}

func TestSqliteStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	record := NewRecord("to be removed", []float64{1, 1})
	require.NoError(t, store.Add(ctx, record))
	require.NoError(t, store.Delete(ctx, record.ID))

	_, err := store.Get(ctx, record.ID)
	require.Error(t, err)

	// deleting again is a no-op
	require.NoError(t, store.Delete(ctx, record.ID))
}

func TestSqliteStore_Count(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	require.NoError(t, store.AddBatch(ctx, []Record{
		NewRecord("one", []float64{1}),
		NewRecord("two", []float64{2}),
	}))

	count, err = store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestSqliteStore_Closed(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.Close())

	err := store.Add(ctx, NewRecord("late", []float64{1}))
	require.Error(t, err)

	var terr *types.ToolkitError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, types.VECTOR_STORE_UNAVAILABLE, terr.Code)

	status := store.Health(ctx)
	assert.Equal(t, types.HealthStateUnhealthy, status.State)
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 1.0},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0.0},
		{"opposite", []float64{1, 0}, []float64{-1, 0}, -1.0},
		{"mismatched lengths", []float64{1, 2}, []float64{1}, 0.0},
		{"zero vector", []float64{0, 0}, []float64{1, 2}, 0.0},
		{"empty", nil, nil, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CosineSimilarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestEmbeddingRoundTrip(t *testing.T) {
	original := []float64{0.1, -2.5, 3.14159, 0}
	assert.Equal(t, original, deserializeEmbedding(serializeEmbedding(original)))
}
