package validation

import (
	"time"
)

// Verdict classifies a validated claim.
type Verdict string

const (
	// VerdictSupported means the knowledge base corroborates the content.
	VerdictSupported Verdict = "supported"

	// VerdictUnverified means the evidence is inconclusive.
	VerdictUnverified Verdict = "unverified"

	// VerdictUnsupported means no meaningful evidence backs the content.
	VerdictUnsupported Verdict = "unsupported"
)

// Evidence is a single piece of knowledge supporting (or failing to
// support) validated content.
type Evidence struct {
	// NodeID identifies the knowledge entry: a vector record ID, or a graph
	// element ID for evidence found via graph expansion.
	NodeID string `json:"node_id"`

	// Content is the text of the knowledge entry.
	Content string `json:"content"`

	// Similarity is the cosine similarity to the validated content.
	// Graph-expanded evidence inherits a discounted similarity from the hit
	// it was expanded from.
	Similarity float64 `json:"similarity"`

	// Source describes where the evidence came from: "vector" or "graph".
	Source string `json:"source"`
}

// Result is the outcome of validating content against the knowledge base.
type Result struct {
	Verdict    Verdict    `json:"verdict"`
	Confidence float64    `json:"confidence"`
	Evidence   []Evidence `json:"evidence,omitempty"`
	CheckedAt  time.Time  `json:"checked_at"`
}

// IsSupported reports whether the verdict is supported.
func (r Result) IsSupported() bool {
	return r.Verdict == VerdictSupported
}
