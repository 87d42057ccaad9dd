// SPDX-License-Identifier: MIT

// Package pairwise: Saaty consistency scoring.
// Analyze never returns an error: a degenerate computation yields the
// conservative CR of 1.0 with Degenerate=true, so downstream rankings
// stay usable but are clearly marked untrustworthy.

package pairwise

import "math"

// Consistency captures the Saaty consistency measures for a matrix and
// its derived weight vector.
type Consistency struct {
	// LambdaMax is the principal-eigenvalue estimate mean_i (Mw)_i / w_i.
	LambdaMax float64 `json:"lambda_max"`

	// Index is CI = (λmax − n) / (n − 1); 0 for n <= 1.
	Index float64 `json:"consistency_index"`

	// Ratio is CR = CI / RI[n] against the configured random-index table.
	Ratio float64 `json:"consistency_ratio"`

	// Acceptable reports CR <= the configured threshold.
	Acceptable bool `json:"acceptable"`

	// Threshold echoes the bound the verdict was taken against.
	Threshold float64 `json:"threshold"`

	// Degenerate marks a computation that fell back to the conservative
	// CR of 1.0 (zero weights, NaN propagation, dimension mismatch).
	Degenerate bool `json:"degenerate"`
}

// Analyze computes λmax, CI and CR for matrix m under weight vector w.
// Stage 1 (Guard): nil/mismatched/non-positive inputs degrade, not error.
// Stage 2 (λmax): mean of (M·w)_i / w_i across rows.
// Stage 3 (CI/CR): CI=(λmax−n)/(n−1) for n>1 else 0; CR=CI/RI[n];
// RI[1..2]=0 makes small matrices trivially consistent (CR=0).
// Complexity: O(n²).
func Analyze(m *Matrix, w []float64, opts ...Option) Consistency {
	o := gatherOptions(opts...)
	degenerate := Consistency{Ratio: 1.0, Acceptable: false, Threshold: o.threshold, Degenerate: true}

	if m == nil || len(w) != m.n {
		return degenerate
	}
	n := m.n
	if n <= 1 {
		// A single criterion cannot be inconsistent.
		return Consistency{LambdaMax: float64(n), Acceptable: true, Threshold: o.threshold}
	}

	y, err := m.MulVec(w)
	if err != nil {
		return degenerate
	}
	var lambda float64
	for i := 0; i < n; i++ {
		if w[i] <= 0 {
			return degenerate
		}
		lambda += y[i] / w[i]
	}
	lambda /= float64(n)
	if math.IsNaN(lambda) || math.IsInf(lambda, 0) {
		return degenerate
	}

	ci := (lambda - float64(n)) / float64(n-1)
	ri := o.randomIndexFor(n)

	var cr float64
	if ri == 0 {
		// Orders 1..2 have RI=0 and are consistent by construction.
		cr = 0
	} else {
		cr = ci / ri
	}
	if math.IsNaN(cr) || math.IsInf(cr, 0) {
		return degenerate
	}

	return Consistency{
		LambdaMax:  lambda,
		Index:      ci,
		Ratio:      cr,
		Acceptable: cr <= o.threshold,
		Threshold:  o.threshold,
	}
}
