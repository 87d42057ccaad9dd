// SPDX-License-Identifier: MIT

// Package pairwise: transitive completion of partial comparison matrices.
// A missing judgment (i,j) is estimated through every intermediate k with
// both (i,k) and (k,j) known, as the geometric mean of m[i][k]*m[k][j].
// Newly filled cells enable further estimates, so the pass iterates to a
// fixpoint under an explicit cap; anything still missing afterwards is
// filled with the neutral value 1.0 and logged — never silently.

package pairwise

import (
	"fmt"
	"math"
)

// Fill sources recorded in CompletionResult.
const (
	// FillTransitive marks a cell estimated through intermediate criteria.
	FillTransitive = "transitive"

	// FillNeutral marks a cell that had no transitive path and received
	// the neutral judgment 1.0.
	FillNeutral = "neutral"
)

// CellFill records one completed judgment.
type CellFill struct {
	Row    int     `json:"row"`
	Col    int     `json:"col"`
	Value  float64 `json:"value"`
	Source string  `json:"source"` // FillTransitive or FillNeutral
}

// CompletionResult is the outcome of Complete.
type CompletionResult struct {
	// Completed is a fresh, fully specified matrix; the input is untouched.
	Completed *Matrix `json:"completed"`

	// Filled lists every cell that was estimated, in fill order.
	Filled []CellFill `json:"filled"`

	// Passes is the number of fixpoint iterations actually run.
	Passes int `json:"passes"`
}

// Complete fills every missing judgment (zero/NaN in either direction)
// on a clone of m via transitive estimation, iterating until no new cell
// can be estimated or the pass cap is reached, then falls back to 1.0 for
// unreachable cells. The returned matrix passes Validate structurally.
// Complexity: O(passes · n³) worst case.
func Complete(m *Matrix, opts ...Option) (CompletionResult, error) {
	if m == nil {
		return CompletionResult{}, ErrNilMatrix
	}
	o := gatherOptions(opts...)

	work := m.Clone()
	n := work.n
	res := CompletionResult{Completed: work, Filled: []CellFill{}}

	// Normalize: a known cell propagates to its mirror immediately so the
	// transitive scan only ever consults one coherent view.
	var i, j, k int
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			v, mirror := work.data[i*n+j], work.data[j*n+i]
			switch {
			case known(v) && !known(mirror):
				work.data[j*n+i] = 1.0 / v
			case !known(v) && known(mirror):
				work.data[i*n+j] = 1.0 / mirror
			}
		}
	}

	var pass, estimates int
	var logSum, est float64
	var filled bool
	for pass = 0; pass < o.completionPasses; pass++ {
		filled = false
		for i = 0; i < n; i++ {
			for j = i + 1; j < n; j++ {
				if known(work.data[i*n+j]) {
					continue
				}
				// Geometric mean over all transitive estimates through k.
				logSum, estimates = 0.0, 0
				for k = 0; k < n; k++ {
					if k == i || k == j {
						continue
					}
					if known(work.data[i*n+k]) && known(work.data[k*n+j]) {
						logSum += math.Log(work.data[i*n+k] * work.data[k*n+j])
						estimates++
					}
				}
				if estimates == 0 {
					continue
				}
				est = math.Exp(logSum / float64(estimates))
				if err := work.SetPair(i, j, est); err != nil {
					return res, fmt.Errorf("Complete: %w", err)
				}
				res.Filled = append(res.Filled, CellFill{Row: i, Col: j, Value: est, Source: FillTransitive})
				filled = true
			}
		}
		if !filled {
			break // fixpoint reached
		}
	}
	res.Passes = pass

	// Neutral fallback for cells no transitive path could reach.
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			if known(work.data[i*n+j]) {
				continue
			}
			if err := work.SetPair(i, j, 1.0); err != nil {
				return res, fmt.Errorf("Complete: %w", err)
			}
			res.Filled = append(res.Filled, CellFill{Row: i, Col: j, Value: 1.0, Source: FillNeutral})
		}
	}

	// Restore exact unit diagonal in case the input carried noise there.
	for i = 0; i < n; i++ {
		work.data[i*n+i] = 1.0
	}

	return res, nil
}
