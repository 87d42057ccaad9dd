package pairwise_test

import (
	"testing"

	"github.com/katalvlaran/ahpkit/pairwise"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestComplete_TransitiveEstimate verifies a missing cell is recovered
// through an intermediate criterion: m[0][2] = m[0][1] * m[1][2].
func TestComplete_TransitiveEstimate(t *testing.T) {
	m, err := pairwise.New(3)
	require.NoError(t, err)
	require.NoError(t, m.SetPair(0, 1, 2)) // A vs B
	require.NoError(t, m.SetPair(1, 2, 3)) // B vs C
	// (0,2) deliberately missing.

	res, err := pairwise.Complete(m)
	require.NoError(t, err)

	v, err := res.Completed.At(0, 2)
	require.NoError(t, err)
	assert.InDelta(t, 6.0, v, 1e-9, "transitive estimate through B")

	require.Len(t, res.Filled, 1)
	assert.Equal(t, pairwise.FillTransitive, res.Filled[0].Source)
}

// TestComplete_ChainedPasses verifies cells filled in one pass enable
// estimates in the next (A-B, B-C, C-D known; A-C, B-D, then A-D).
func TestComplete_ChainedPasses(t *testing.T) {
	m, err := pairwise.New(4)
	require.NoError(t, err)
	require.NoError(t, m.SetPair(0, 1, 2))
	require.NoError(t, m.SetPair(1, 2, 2))
	require.NoError(t, m.SetPair(2, 3, 2))

	res, err := pairwise.Complete(m)
	require.NoError(t, err)

	v, err := res.Completed.At(0, 3)
	require.NoError(t, err)
	assert.InDelta(t, 8.0, v, 1e-9, "A-D composes through the full chain")

	rep, err := pairwise.Validate(res.Completed)
	require.NoError(t, err)
	assert.Equal(t, 1.0, rep.Completeness, "completion must fully specify the matrix")
	assert.True(t, rep.Valid, "a chain of consistent judgments completes consistently")
}

// TestComplete_NeutralFallback verifies unreachable cells receive 1.0
// and the fallback is logged, not silent.
func TestComplete_NeutralFallback(t *testing.T) {
	// Two disconnected judgment islands: {0,1} and {2,3}.
	m, err := pairwise.New(4)
	require.NoError(t, err)
	require.NoError(t, m.SetPair(0, 1, 3))
	require.NoError(t, m.SetPair(2, 3, 5))

	res, err := pairwise.Complete(m)
	require.NoError(t, err)

	var neutral int
	for _, f := range res.Filled {
		if f.Source == pairwise.FillNeutral {
			neutral++
			assert.Equal(t, 1.0, f.Value, "neutral fallback is exactly 1.0")
		}
	}
	assert.Equal(t, 4, neutral, "all island-crossing cells fall back to neutral")

	rep, err := pairwise.Validate(res.Completed)
	require.NoError(t, err)
	assert.Equal(t, 1.0, rep.Completeness)
}

// TestComplete_MirrorOnlyJudgment verifies a judgment supplied only on
// the lower triangle is normalized before estimation.
func TestComplete_MirrorOnlyJudgment(t *testing.T) {
	m, err := pairwise.New(2)
	require.NoError(t, err)
	require.NoError(t, m.Set(1, 0, 0.25)) // only the mirror side

	res, err := pairwise.Complete(m)
	require.NoError(t, err)

	v, err := res.Completed.At(0, 1)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, v, 1e-9, "upper cell recovered from its mirror")
}

// TestComplete_NilMatrix covers the nil guard.
func TestComplete_NilMatrix(t *testing.T) {
	_, err := pairwise.Complete(nil)
	assert.ErrorIs(t, err, pairwise.ErrNilMatrix)
}

// TestComplete_DoesNotMutateInput verifies the clone contract.
func TestComplete_DoesNotMutateInput(t *testing.T) {
	m, err := pairwise.New(3)
	require.NoError(t, err)
	require.NoError(t, m.SetPair(0, 1, 2))
	before := m.Rows()

	_, err = pairwise.Complete(m)
	require.NoError(t, err)
	assert.Equal(t, before, m.Rows())
}
