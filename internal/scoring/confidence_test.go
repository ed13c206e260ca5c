package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zero-day-ai/agentkit/internal/types"
)

func TestConfidence_Mean(t *testing.T) {
	tests := []struct {
		name   string
		scores []float64
		want   float64
	}{
		{"single score", []float64{0.8}, 0.8},
		{"two scores", []float64{0.8, 0.6}, 0.7},
		{"uniform", []float64{0.5, 0.5, 0.5}, 0.5},
		{"zeros", []float64{0, 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Confidence(tt.scores, nil)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestConfidence_EmptyScoresNoWeights(t *testing.T) {
	_, err := Confidence(nil, nil)
	require.Error(t, err)

	var terr *types.ToolkitError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, types.CONFIDENCE_NO_SCORES, terr.Code)
}

func TestConfidence_Weighted(t *testing.T) {
	tests := []struct {
		name    string
		scores  []float64
		weights []float64
		want    float64
	}{
		{"dot product", []float64{0.8, 0.6}, []float64{0.7, 0.3}, 0.74},
		{"truncates to shorter weights", []float64{1, 2, 3}, []float64{0.5, 0.5}, 1.5},
		{"truncates to shorter scores", []float64{1}, []float64{0.5, 0.5}, 0.5},
		{"empty scores with weights", nil, []float64{0.5, 0.5}, 0},
		{"zero weights", []float64{0.9, 0.9}, []float64{0, 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Confidence(tt.scores, tt.weights)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestEvidenceConfidence(t *testing.T) {
	weights := []float64{0.5, 0.2, 0.15, 0.1, 0.05}

	t.Run("no evidence", func(t *testing.T) {
		assert.Zero(t, EvidenceConfidence(nil, weights))
	})

	t.Run("partial evidence leaves weight unclaimed", func(t *testing.T) {
		got := EvidenceConfidence([]float64{0.9}, weights)
		assert.InDelta(t, 0.45, got, 1e-9)
	})

	t.Run("full evidence", func(t *testing.T) {
		got := EvidenceConfidence([]float64{1, 1, 1, 1, 1}, weights)
		assert.InDelta(t, 1.0, got, 1e-9)
	})

	t.Run("no weights falls back to mean", func(t *testing.T) {
		got := EvidenceConfidence([]float64{0.8, 0.6}, nil)
		assert.InDelta(t, 0.7, got, 1e-9)
	})
}
