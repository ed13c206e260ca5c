package embedder

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/zero-day-ai/agentkit/internal/config"
	"github.com/zero-day-ai/agentkit/internal/types"
)

// OpenAIEmbedder generates embeddings via the OpenAI embeddings API
// (or any OpenAI-compatible endpoint via base_url).
type OpenAIEmbedder struct {
	embedder   embeddings.Embedder
	model      string
	dimensions int
}

// NewOpenAIEmbedder creates an embedder backed by the OpenAI API.
func NewOpenAIEmbedder(cfg config.EmbedderConfig) (*OpenAIEmbedder, error) {
	if cfg.APIKey == "" {
		return nil, types.NewError(types.EMBEDDER_INVALID_CONFIG,
			"OpenAI embedder requires api_key (or OPENAI_API_KEY via config interpolation)")
	}
	if cfg.Model == "" {
		return nil, types.NewError(types.EMBEDDER_INVALID_CONFIG,
			"OpenAI embedder requires model (e.g., 'text-embedding-3-small')")
	}

	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithEmbeddingModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, types.WrapError(types.EMBEDDER_INVALID_CONFIG,
			"failed to create OpenAI client", err)
	}

	emb, err := embeddings.NewEmbedder(llm)
	if err != nil {
		return nil, types.WrapError(types.EMBEDDER_INVALID_CONFIG,
			"failed to create embedder", err)
	}

	return &OpenAIEmbedder{
		embedder:   emb,
		model:      cfg.Model,
		dimensions: cfg.Dimensions,
	}, nil
}

// Embed generates an embedding vector for a single text.
func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	if text == "" {
		return nil, types.NewError(types.EMBEDDING_FAILED, "cannot embed empty text")
	}

	vec, err := e.embedder.EmbedQuery(ctx, text)
	if err != nil {
		return nil, types.WrapRetryableError(types.EMBEDDING_FAILED,
			"embedding request failed", err)
	}

	return toFloat64(vec), nil
}

// EmbedBatch generates embeddings for multiple texts in a single request.
func (e *OpenAIEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return [][]float64{}, nil
	}

	vecs, err := e.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, types.WrapRetryableError(types.EMBEDDING_FAILED,
			"batch embedding request failed", err)
	}

	out := make([][]float64, len(vecs))
	for i, vec := range vecs {
		out[i] = toFloat64(vec)
	}

	return out, nil
}

// Dimensions returns the dimensionality of embedding vectors.
func (e *OpenAIEmbedder) Dimensions() int {
	return e.dimensions
}

// Model returns the embedding model name.
func (e *OpenAIEmbedder) Model() string {
	return e.model
}

// Health reports the embedder status. The API is not probed here; failures
// surface on the first Embed call.
func (e *OpenAIEmbedder) Health(ctx context.Context) types.HealthStatus {
	return types.Healthy(fmt.Sprintf("openai embedder ready (model: %s)", e.model))
}

func toFloat64(vec []float32) []float64 {
	out := make([]float64, len(vec))
	for i, v := range vec {
		out[i] = float64(v)
	}
	return out
}
