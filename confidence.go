package agentkit

import (
	"github.com/zero-day-ai/agentkit/internal/scoring"
)

// Confidence aggregates a set of scores into a single confidence value.
//
// Without weights it returns the arithmetic mean of the scores, and an
// empty score set is an error. With weights it returns the dot product of
// scores and weights, truncated to the shorter of the two sequences; an
// empty score set then yields 0.0 without error.
//
//	Confidence([]float64{0.8, 0.6}, nil)                      // 0.7
//	Confidence([]float64{0.8, 0.6}, []float64{0.7, 0.3})      // 0.74
//	Confidence([]float64{1, 2, 3}, []float64{0.5, 0.5})       // 1.5
func Confidence(scores, weights []float64) (float64, error) {
	return scoring.Confidence(scores, weights)
}
