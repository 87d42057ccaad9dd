// SPDX-License-Identifier: MIT

// Package pairwise: matrix synthesis from preference scalars.
// A preference map (criterion id → relative preference) is enough to
// build a full reciprocal matrix: each pairwise ratio is clipped onto
// the 1/9..9 Saaty scale. Zero or negative preferences are rejected —
// their mapping is undefined, so guessing would hide caller bugs.

package pairwise

import "fmt"

// ClipSaaty clips a positive ratio into the [1/9, 9] Saaty band.
func ClipSaaty(ratio float64) float64 {
	if ratio < saatyMin {
		return saatyMin
	}
	if ratio > saatyMax {
		return saatyMax
	}

	return ratio
}

// FromPreferences synthesizes a comparison matrix over the given
// criterion order from per-criterion preference scalars.
// Stage 1 (Validate): every id present with a strictly positive value.
// Stage 2 (Build): m[i][j] = ClipSaaty(p_i/p_j) for i<j, mirrored
// reciprocally; diagonal stays 1.
// Complexity: O(n²).
func FromPreferences(order []string, prefs map[string]float64) (*Matrix, error) {
	n := len(order)
	if n < 1 {
		return nil, ErrBadOrder
	}
	vals := make([]float64, n)
	for i, id := range order {
		p, ok := prefs[id]
		if !ok || p <= 0 {
			return nil, fmt.Errorf("FromPreferences: criterion %q: %w", id, ErrNonPositiveScore)
		}
		vals[i] = p
	}

	m, err := New(n)
	if err != nil {
		return nil, fmt.Errorf("FromPreferences: %w", err)
	}
	var i, j int
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			if err = m.SetPair(i, j, ClipSaaty(vals[i]/vals[j])); err != nil {
				return nil, fmt.Errorf("FromPreferences: %w", err)
			}
		}
	}

	return m, nil
}
