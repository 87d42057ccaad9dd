package hierarchy

import (
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/ahpkit/pairwise"
)

// Conversion selects how a score ratio is mapped onto a comparison value.
type Conversion int

const (
	// ScoreRatio uses the raw ratio s_i/s_j clipped into [1/9, 9].
	// Ratios are multiplicative, so the resulting matrix is perfectly
	// consistent whenever no clipping occurs.
	ScoreRatio Conversion = iota

	// Logarithmic maps the log of the score ratio linearly onto the
	// 1..9 Saaty band: a 9× score advantage saturates at 9, a 3× one
	// lands mid-scale. Compresses wide score spreads.
	Logarithmic

	// Hybrid averages the ScoreRatio and Logarithmic values cell by
	// cell, then mirrors the reciprocal.
	Hybrid
)

// String implements fmt.Stringer.
func (c Conversion) String() string {
	switch c {
	case ScoreRatio:
		return "score_ratio"
	case Logarithmic:
		return "logarithmic"
	case Hybrid:
		return "hybrid"
	default:
		return fmt.Sprintf("Conversion(%d)", int(c))
	}
}

// ParseConversion maps a configuration string onto a Conversion
// (case-insensitive). Returns ErrUnknownMethod for anything else.
func ParseConversion(s string) (Conversion, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "score_ratio", "ratio":
		return ScoreRatio, nil
	case "logarithmic", "log":
		return Logarithmic, nil
	case "hybrid":
		return Hybrid, nil
	default:
		return 0, fmt.Errorf("%w: conversion %q", ErrUnknownMethod, s)
	}
}

// saatyLogScale spans the 1..9 band in log space.
var saatyLogScale = math.Log(9)

// MatrixFromScores synthesizes a reciprocal comparison matrix over the
// given member order from per-member scores. Every member must carry a
// strictly positive score (pairwise.ErrNonPositiveScore otherwise);
// the diagonal is 1 and reciprocity holds exactly by construction.
// Complexity: O(n²).
func MatrixFromScores(order []string, scores map[string]float64, conv Conversion) (*pairwise.Matrix, error) {
	if conv == ScoreRatio {
		return pairwise.FromPreferences(order, scores)
	}

	n := len(order)
	vals := make([]float64, n)
	for i, id := range order {
		s, ok := scores[id]
		if !ok || s <= 0 {
			return nil, fmt.Errorf("MatrixFromScores: member %q: %w", id, pairwise.ErrNonPositiveScore)
		}
		vals[i] = s
	}

	m, err := pairwise.New(n)
	if err != nil {
		return nil, fmt.Errorf("MatrixFromScores: %w", err)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			ratio := vals[i] / vals[j]
			var v float64
			switch conv {
			case Logarithmic:
				v = logarithmicValue(ratio)
			case Hybrid:
				v = (pairwise.ClipSaaty(ratio) + logarithmicValue(ratio)) / 2
			default:
				return nil, fmt.Errorf("%w: %v", ErrUnknownMethod, conv)
			}
			if err = m.SetPair(i, j, v); err != nil {
				return nil, fmt.Errorf("MatrixFromScores: %w", err)
			}
		}
	}

	return m, nil
}

// logarithmicValue maps ratio r onto the Saaty band: for r >= 1,
// 1 + 8·ln(r)/ln(9) capped at 9; for r < 1, the reciprocal of the
// mapping of 1/r. Monotone in r and exactly 1 at r = 1.
func logarithmicValue(ratio float64) float64 {
	if ratio < 1 {
		return 1 / logarithmicValue(1/ratio)
	}
	v := 1 + 8*math.Log(ratio)/saatyLogScale
	if v > 9 {
		return 9
	}

	return v
}
