package pairwise_test

import (
	"encoding/json"
	"testing"

	"github.com/katalvlaran/ahpkit/pairwise"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNew_BadOrder verifies that orders < 1 are rejected.
func TestNew_BadOrder(t *testing.T) {
	_, err := pairwise.New(0)
	assert.ErrorIs(t, err, pairwise.ErrBadOrder, "order 0 must error ErrBadOrder")

	_, err = pairwise.New(-3)
	assert.ErrorIs(t, err, pairwise.ErrBadOrder, "negative order must error ErrBadOrder")
}

// TestNew_UnitDiagonal verifies the diagonal is seeded with 1.
func TestNew_UnitDiagonal(t *testing.T) {
	m, err := pairwise.New(3)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		v, err := m.At(i, i)
		require.NoError(t, err)
		assert.Equal(t, 1.0, v, "diagonal must be 1")
	}
}

// TestFromRows_NotSquare ensures ragged input errors ErrNotSquare.
func TestFromRows_NotSquare(t *testing.T) {
	_, err := pairwise.FromRows([][]float64{{1, 2}, {0.5}})
	assert.ErrorIs(t, err, pairwise.ErrNotSquare, "ragged rows must error ErrNotSquare")
}

// TestAtSet_OutOfRange ensures public indexers return ErrOutOfRange, not panic.
func TestAtSet_OutOfRange(t *testing.T) {
	m, err := pairwise.New(2)
	require.NoError(t, err)

	_, err = m.At(2, 0)
	assert.ErrorIs(t, err, pairwise.ErrOutOfRange)
	err = m.Set(0, -1, 3)
	assert.ErrorIs(t, err, pairwise.ErrOutOfRange)
}

// TestSetPair_MaintainsReciprocity verifies the mirror cell is kept at 1/v.
func TestSetPair_MaintainsReciprocity(t *testing.T) {
	m, err := pairwise.New(3)
	require.NoError(t, err)

	require.NoError(t, m.SetPair(0, 1, 4))
	v, err := m.At(1, 0)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, v, 1e-12, "mirror must equal 1/v")
}

// TestSetPair_RejectsDiagonalAndNonPositive covers the guard rails.
func TestSetPair_RejectsDiagonalAndNonPositive(t *testing.T) {
	m, err := pairwise.New(3)
	require.NoError(t, err)

	assert.ErrorIs(t, m.SetPair(1, 1, 2), pairwise.ErrBadDiagonal, "diagonal is fixed at 1")
	assert.ErrorIs(t, m.SetPair(0, 1, 0), pairwise.ErrNonPositiveEntry, "zero judgment rejected")
	assert.ErrorIs(t, m.SetPair(0, 1, -2), pairwise.ErrNonPositiveEntry, "negative judgment rejected")
}

// TestClone_IsDeep verifies mutations of a clone never touch the original.
func TestClone_IsDeep(t *testing.T) {
	m, err := pairwise.New(2)
	require.NoError(t, err)
	require.NoError(t, m.SetPair(0, 1, 3))

	c := m.Clone()
	require.NoError(t, c.SetPair(0, 1, 7))

	v, err := m.At(0, 1)
	require.NoError(t, err)
	assert.Equal(t, 3.0, v, "original must be unchanged after clone mutation")
}

// TestMulVec_DimensionMismatch checks the vector-length guard.
func TestMulVec_DimensionMismatch(t *testing.T) {
	m, err := pairwise.New(3)
	require.NoError(t, err)

	_, err = m.MulVec([]float64{1, 2})
	assert.ErrorIs(t, err, pairwise.ErrDimensionMismatch)
}

// TestMarshalJSON_PlainNestedArray verifies the JSON shape is a nested
// array of numbers, consumable without internal types.
func TestMarshalJSON_PlainNestedArray(t *testing.T) {
	m, err := pairwise.FromRows([][]float64{{1, 2}, {0.5, 1}})
	require.NoError(t, err)

	raw, err := json.Marshal(m)
	require.NoError(t, err)

	var rows [][]float64
	require.NoError(t, json.Unmarshal(raw, &rows))
	assert.Equal(t, [][]float64{{1, 2}, {0.5, 1}}, rows)
}
