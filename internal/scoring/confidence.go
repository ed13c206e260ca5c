// Package scoring implements confidence calculation for agent findings and
// validation evidence.
package scoring

import (
	"github.com/zero-day-ai/agentkit/internal/types"
)

// Confidence aggregates a set of scores into a single confidence value.
//
// Without weights it returns the arithmetic mean of the scores; an empty
// score set is an error since there is nothing to average.
//
// With weights it returns the dot product of scores and weights, truncated
// to the shorter of the two sequences. Callers commonly rank evidence by
// relevance and weight the head of the list most heavily, so extra scores
// beyond the weight vector simply contribute nothing. An empty score set
// with weights present yields 0.0 with no error.
func Confidence(scores, weights []float64) (float64, error) {
	if len(weights) == 0 {
		if len(scores) == 0 {
			return 0, types.NewError(types.CONFIDENCE_NO_SCORES,
				"cannot compute confidence without scores")
		}

		var sum float64
		for _, s := range scores {
			sum += s
		}
		return sum / float64(len(scores)), nil
	}

	n := len(scores)
	if len(weights) < n {
		n = len(weights)
	}

	var total float64
	for i := 0; i < n; i++ {
		total += scores[i] * weights[i]
	}
	return total, nil
}

// EvidenceConfidence scores a ranked evidence list using positional weights.
// Evidence beyond the weight vector is ignored; missing evidence simply
// leaves weight unclaimed, pulling confidence down.
func EvidenceConfidence(similarities, weights []float64) float64 {
	if len(similarities) == 0 {
		return 0
	}
	if len(weights) == 0 {
		score, err := Confidence(similarities, nil)
		if err != nil {
			return 0
		}
		return score
	}

	score, _ := Confidence(similarities, weights)
	return score
}
