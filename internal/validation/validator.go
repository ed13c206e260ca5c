package validation

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/zero-day-ai/agentkit/internal/config"
	"github.com/zero-day-ai/agentkit/internal/embedder"
	"github.com/zero-day-ai/agentkit/internal/graph"
	"github.com/zero-day-ai/agentkit/internal/scoring"
	"github.com/zero-day-ai/agentkit/internal/types"
	"github.com/zero-day-ai/agentkit/internal/vector"
)

// graphIDKey is the vector record metadata key linking an entry to its
// graph node, enabling expansion from vector hits into the graph.
const graphIDKey = "graph_id"

// hopDecay discounts similarity inherited by graph-expanded evidence per hop.
const hopDecay = 0.8

// Validator checks agent-produced content against a knowledge base using
// retrieval-augmented validation: embed the content, find similar knowledge
// entries, optionally expand through the knowledge graph, and score the
// assembled evidence.
type Validator struct {
	embedder embedder.Embedder
	store    vector.Store
	client   graph.Client
	cfg      config.ValidationConfig
	log      *slog.Logger
}

// New creates a Validator. The graph client is optional; without one (or
// with MaxHops 0) validation is vector-only.
func New(emb embedder.Embedder, store vector.Store, client graph.Client, cfg config.ValidationConfig, log *slog.Logger) *Validator {
	if log == nil {
		log = slog.Default()
	}
	return &Validator{
		embedder: emb,
		store:    store,
		client:   client,
		cfg:      cfg,
		log:      log,
	}
}

// Validate runs the validation pipeline on content and returns a verdict
// with supporting evidence. The context mapping narrows the evidence pool:
// each vctx key/value must match the knowledge entry's metadata exactly, so
// an agent can scope validation to, say, one target or one CWE. Graph
// expansion failures degrade to vector-only validation rather than failing
// the call.
func (v *Validator) Validate(ctx context.Context, content string, vctx map[string]any) (Result, error) {
	if content == "" {
		return Result{}, types.NewError(types.VALIDATION_EMPTY_CONTENT,
			"cannot validate empty content")
	}

	queryVec, err := v.embedder.Embed(ctx, content)
	if err != nil {
		return Result{}, types.WrapError(types.VALIDATION_FAILED,
			"failed to embed content for validation", err)
	}

	hits, err := v.store.Search(ctx, vector.Query{
		Embedding: queryVec,
		TopK:      v.cfg.TopK,
		MinScore:  v.cfg.MinSimilarity,
		Filters:   vctx,
	})
	if err != nil {
		return Result{}, types.WrapError(types.VALIDATION_FAILED,
			"knowledge search failed", err)
	}

	evidence := make([]Evidence, 0, len(hits))
	for _, hit := range hits {
		evidence = append(evidence, Evidence{
			NodeID:     hit.Record.ID,
			Content:    hit.Record.Content,
			Similarity: hit.Score,
			Source:     "vector",
		})
	}

	if v.cfg.MaxHops > 0 && v.client != nil {
		expanded, err := v.expand(ctx, hits)
		if err != nil {
			// Vector evidence alone still yields a usable verdict.
			v.log.WarnContext(ctx, "graph expansion failed, continuing vector-only",
				slog.String("error", err.Error()))
		} else {
			evidence = append(evidence, expanded...)
		}
	}

	// Weights pair positionally with ranked evidence, strongest first.
	sort.SliceStable(evidence, func(i, j int) bool {
		return evidence[i].Similarity > evidence[j].Similarity
	})

	confidence := scoring.EvidenceConfidence(similarities(evidence), v.cfg.EvidenceWeights)

	return Result{
		Verdict:    v.verdict(confidence, len(evidence)),
		Confidence: confidence,
		Evidence:   evidence,
		CheckedAt:  time.Now(),
	}, nil
}

// expand walks the knowledge graph outward from vector hits that carry a
// graph node ID, collecting related entries as secondary evidence.
func (v *Validator) expand(ctx context.Context, hits []vector.Result) ([]Evidence, error) {
	seen := make(map[string]bool)
	var expanded []Evidence

	for _, hit := range hits {
		graphID, ok := hit.Record.Metadata[graphIDKey].(string)
		if !ok || graphID == "" {
			continue
		}
		seen[graphID] = true

		cypher := fmt.Sprintf(`
			MATCH (k) WHERE elementId(k) = $id
			MATCH (k)-[*1..%d]-(related)
			WHERE related.content IS NOT NULL
			RETURN DISTINCT elementId(related) AS id, related.content AS content
			LIMIT $limit`, v.cfg.MaxHops)

		result, err := v.client.Query(ctx, cypher, map[string]any{
			"id":    graphID,
			"limit": v.cfg.TopK,
		})
		if err != nil {
			return nil, err
		}

		for _, record := range result.Records {
			id, _ := record["id"].(string)
			content, _ := record["content"].(string)
			if id == "" || content == "" || seen[id] {
				continue
			}
			seen[id] = true

			expanded = append(expanded, Evidence{
				NodeID:     id,
				Content:    content,
				Similarity: hit.Score * hopDecay,
				Source:     "graph",
			})
		}
	}
	return expanded, nil
}

func (v *Validator) verdict(confidence float64, evidenceCount int) Verdict {
	if evidenceCount == 0 {
		return VerdictUnsupported
	}
	switch {
	case confidence >= v.cfg.SupportThreshold:
		return VerdictSupported
	case confidence < v.cfg.RejectThreshold:
		return VerdictUnsupported
	default:
		return VerdictUnverified
	}
}

func similarities(evidence []Evidence) []float64 {
	out := make([]float64, len(evidence))
	for i, e := range evidence {
		out[i] = e.Similarity
	}
	return out
}
