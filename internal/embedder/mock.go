package embedder

import (
	"context"
	"hash/fnv"
	"math"
	"sync"

	"github.com/zero-day-ai/agentkit/internal/types"
)

// MockEmbedder is a deterministic embedder for testing.
// Identical texts always produce identical unit-length vectors, so cosine
// similarity between a text and itself is 1.0.
type MockEmbedder struct {
	mu sync.RWMutex

	dims      int
	responses map[string][]float64
	calls     []string

	// EmbedErr, when set, is returned from Embed and EmbedBatch.
	EmbedErr error
}

// NewMockEmbedder creates a mock embedder producing vectors of the given
// dimensionality.
func NewMockEmbedder(dims int) *MockEmbedder {
	return &MockEmbedder{
		dims:      dims,
		responses: make(map[string][]float64),
	}
}

// SetResponse fixes the vector returned for a specific text.
func (m *MockEmbedder) SetResponse(text string, embedding []float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[text] = embedding
}

// Calls returns the texts passed to Embed/EmbedBatch, in order.
func (m *MockEmbedder) Calls() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

// Embed returns the configured or derived vector for text.
func (m *MockEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, text)
	if m.EmbedErr != nil {
		return nil, m.EmbedErr
	}
	if fixed, ok := m.responses[text]; ok {
		return fixed, nil
	}
	return m.derive(text), nil
}

// EmbedBatch embeds each text independently.
func (m *MockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.EmbedErr != nil {
		return nil, m.EmbedErr
	}

	out := make([][]float64, len(texts))
	for i, text := range texts {
		m.calls = append(m.calls, text)
		if fixed, ok := m.responses[text]; ok {
			out[i] = fixed
			continue
		}
		out[i] = m.derive(text)
	}
	return out, nil
}

// Dimensions returns the configured dimensionality.
func (m *MockEmbedder) Dimensions() int {
	return m.dims
}

// Model returns a fixed mock model name.
func (m *MockEmbedder) Model() string {
	return "mock-embedder"
}

// Health always reports healthy.
func (m *MockEmbedder) Health(ctx context.Context) types.HealthStatus {
	return types.Healthy("mock embedder")
}

// derive produces a deterministic unit vector from the text hash.
func (m *MockEmbedder) derive(text string) []float64 {
	h := fnv.New64a()
	h.Write([]byte(text))
	seed := h.Sum64()

	vec := make([]float64, m.dims)
	var norm float64
	for i := range vec {
		// xorshift keeps values reproducible without math/rand state.
		seed ^= seed << 13
		seed ^= seed >> 7
		seed ^= seed << 17
		vec[i] = float64(int64(seed%2000)-1000) / 1000.0
		norm += vec[i] * vec[i]
	}

	norm = math.Sqrt(norm)
	if norm == 0 {
		vec[0] = 1.0
		return vec
	}
	for i := range vec {
		vec[i] /= norm
	}
	return vec
}
