package hierarchy_test

import (
	"testing"

	"github.com/katalvlaran/ahpkit/hierarchy"
	"github.com/katalvlaran/ahpkit/pairwise"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// at is a test shorthand over the error-returning accessor.
func at(t *testing.T, m *pairwise.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)

	return v
}

// TestMatrixFromScores_ScoreRatio: raw clipped ratios, reciprocity by
// construction.
func TestMatrixFromScores_ScoreRatio(t *testing.T) {
	order := []string{"a", "b", "c"}
	scores := map[string]float64{"a": 6, "b": 2, "c": 0.5}

	m, err := hierarchy.MatrixFromScores(order, scores, hierarchy.ScoreRatio)
	require.NoError(t, err)

	assert.InDelta(t, 3.0, at(t, m, 0, 1), 1e-12, "6/2")
	assert.InDelta(t, 9.0, at(t, m, 0, 2), 1e-12, "12 clips to 9")
	assert.InDelta(t, 4.0, at(t, m, 1, 2), 1e-12, "2/0.5")
	for i := 0; i < 3; i++ {
		assert.Equal(t, 1.0, at(t, m, i, i), "unit diagonal")
		for j := i + 1; j < 3; j++ {
			assert.InDelta(t, 1.0, at(t, m, i, j)*at(t, m, j, i), 1e-9, "reciprocity")
		}
	}
}

// TestMatrixFromScores_Logarithmic pins the log mapping: a 9× advantage
// saturates at 9, a 3× one lands exactly mid-scale at 5.
func TestMatrixFromScores_Logarithmic(t *testing.T) {
	order := []string{"a", "b", "c"}
	scores := map[string]float64{"a": 9, "b": 3, "c": 1}

	m, err := hierarchy.MatrixFromScores(order, scores, hierarchy.Logarithmic)
	require.NoError(t, err)

	assert.InDelta(t, 5.0, at(t, m, 0, 1), 1e-9, "ratio 3 maps to mid-scale")
	assert.InDelta(t, 9.0, at(t, m, 0, 2), 1e-9, "ratio 9 saturates")
	assert.InDelta(t, 5.0, at(t, m, 1, 2), 1e-9)
	assert.InDelta(t, 1.0/5.0, at(t, m, 1, 0), 1e-9, "reciprocal mirror")
}

// TestMatrixFromScores_Hybrid is the cellwise mean of the two mappings.
func TestMatrixFromScores_Hybrid(t *testing.T) {
	order := []string{"a", "b"}
	scores := map[string]float64{"a": 3, "b": 1}

	m, err := hierarchy.MatrixFromScores(order, scores, hierarchy.Hybrid)
	require.NoError(t, err)

	// (ratio 3 + log-mapped 5) / 2.
	assert.InDelta(t, 4.0, at(t, m, 0, 1), 1e-9)
	assert.InDelta(t, 0.25, at(t, m, 1, 0), 1e-9)
}

// TestMatrixFromScores_RejectsBadScores: missing or non-positive
// entries surface the sentinel.
func TestMatrixFromScores_RejectsBadScores(t *testing.T) {
	order := []string{"a", "b"}

	for _, conv := range []hierarchy.Conversion{hierarchy.ScoreRatio, hierarchy.Logarithmic, hierarchy.Hybrid} {
		_, err := hierarchy.MatrixFromScores(order, map[string]float64{"a": 1}, conv)
		assert.ErrorIs(t, err, pairwise.ErrNonPositiveScore, "missing score under %v", conv)

		_, err = hierarchy.MatrixFromScores(order, map[string]float64{"a": 1, "b": -2}, conv)
		assert.ErrorIs(t, err, pairwise.ErrNonPositiveScore, "negative score under %v", conv)
	}
}

// TestParseConversion covers the configuration aliases.
func TestParseConversion(t *testing.T) {
	for s, want := range map[string]hierarchy.Conversion{
		"score_ratio": hierarchy.ScoreRatio,
		"Ratio":       hierarchy.ScoreRatio,
		"logarithmic": hierarchy.Logarithmic,
		"log":         hierarchy.Logarithmic,
		"hybrid":      hierarchy.Hybrid,
	} {
		got, err := hierarchy.ParseConversion(s)
		require.NoError(t, err, s)
		assert.Equal(t, want, got, s)
	}

	_, err := hierarchy.ParseConversion("linear")
	assert.ErrorIs(t, err, hierarchy.ErrUnknownMethod)
}
