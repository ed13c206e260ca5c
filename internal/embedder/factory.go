package embedder

import (
	"fmt"

	"github.com/zero-day-ai/agentkit/internal/config"
	"github.com/zero-day-ai/agentkit/internal/types"
)

// New creates an embedder based on the provided configuration.
//
// Supported providers:
//   - "openai": OpenAI embeddings API, or any compatible endpoint via base_url
//   - "mock": deterministic offline embedder for tests and dry runs
func New(cfg config.EmbedderConfig) (Embedder, error) {
	switch cfg.Provider {
	case "openai":
		return NewOpenAIEmbedder(cfg)

	case "mock":
		dims := cfg.Dimensions
		if dims <= 0 {
			dims = 384
		}
		return NewMockEmbedder(dims), nil

	default:
		return nil, types.NewError(types.EMBEDDER_INVALID_CONFIG,
			fmt.Sprintf("unknown embedder provider '%s' - must be 'openai' or 'mock'", cfg.Provider))
	}
}
