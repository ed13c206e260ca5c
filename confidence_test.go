package agentkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zero-day-ai/agentkit/internal/types"
)

func TestConfidence_UnweightedMean(t *testing.T) {
	got, err := Confidence([]float64{0.8, 0.6}, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.7, got, 1e-9)

	got, err = Confidence([]float64{0.25}, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, got, 1e-9)
}

func TestConfidence_EmptyScoresWithoutWeights(t *testing.T) {
	_, err := Confidence(nil, nil)
	require.Error(t, err)

	var terr *types.ToolkitError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, types.CONFIDENCE_NO_SCORES, terr.Code)

	_, err = Confidence([]float64{}, []float64{})
	require.Error(t, err)
}

func TestConfidence_WeightedDotProduct(t *testing.T) {
	got, err := Confidence([]float64{0.8, 0.6}, []float64{0.7, 0.3})
	require.NoError(t, err)
	assert.InDelta(t, 0.74, got, 1e-9)
}

func TestConfidence_TruncatesToShorterSequence(t *testing.T) {
	// extra scores beyond the weight vector are ignored
	got, err := Confidence([]float64{1, 2, 3}, []float64{0.5, 0.5})
	require.NoError(t, err)
	assert.InDelta(t, 1.5, got, 1e-9)

	// extra weights beyond the score vector are ignored too
	got, err = Confidence([]float64{2}, []float64{0.5, 0.5, 0.5})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got, 1e-9)
}

func TestConfidence_EmptyScoresWithWeights(t *testing.T) {
	got, err := Confidence(nil, []float64{0.7, 0.3})
	require.NoError(t, err)
	assert.Zero(t, got)
}
