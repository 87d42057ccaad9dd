// SPDX-License-Identifier: MIT

// Package pairwise: priority-weight extraction.
// Three interchangeable methods produce a non-negative vector normalized
// to sum to 1 from a well-formed comparison matrix. On a perfectly
// consistent matrix all three agree closely; that property is part of the
// public contract and covered by tests.

package pairwise

import (
	"fmt"
	"math"
	"strings"
)

// Method selects the weight-extraction algorithm.
//
//   - Eigenvalue     — dominant eigenpair (power seed + inverse-iteration
//     refinement through an LU solve); the classical AHP prescription.
//   - PowerIteration — repeated M·v with renormalization until the vector
//     stabilizes or the iteration cap is hit.
//   - GeometricMean  — Saaty's row-geometric-mean approximation; cheap,
//     closed-form, and exact on consistent matrices.
type Method int

const (
	// Eigenvalue method: eigenvector of the largest-real-part eigenvalue.
	Eigenvalue Method = iota

	// PowerIteration method: uniform start vector, bounded iteration.
	PowerIteration

	// GeometricMean method: per-row geometric means, normalized.
	GeometricMean
)

// String implements fmt.Stringer for the closed Method enum.
func (mm Method) String() string {
	switch mm {
	case Eigenvalue:
		return "eigenvalue"
	case PowerIteration:
		return "power_iteration"
	case GeometricMean:
		return "geometric_mean"
	default:
		return fmt.Sprintf("method(%d)", int(mm))
	}
}

// ParseMethod maps a configuration string onto the closed Method enum.
// Matching is case-insensitive; unknown names return ErrUnknownMethod.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "eigenvalue", "eigen":
		return Eigenvalue, nil
	case "power_iteration", "power":
		return PowerIteration, nil
	case "geometric_mean", "geometric":
		return GeometricMean, nil
	default:
		return 0, fmt.Errorf("%q: %w", s, ErrUnknownMethod)
	}
}

// Weights extracts the normalized priority vector from a well-formed
// comparison matrix using the selected method.
// Stage 1 (Validate): positivity, diagonal, reciprocity (sentinels).
// Stage 2 (Execute): dispatch to the method kernel.
// Stage 3 (Finalize): abs + L1 normalization; output sums to 1.
// Complexity: O(n²) per iteration (power/eigen), O(n²) total (geomean).
func Weights(m *Matrix, method Method, opts ...Option) ([]float64, error) {
	o := gatherOptions(opts...)
	if err := requireWellFormed(m, o); err != nil {
		return nil, fmt.Errorf("Weights: %w", err)
	}

	var w []float64
	var err error
	switch method {
	case Eigenvalue:
		_, w, err = dominantEigenpair(m, o)
	case PowerIteration:
		w, err = powerWeights(m, o)
	case GeometricMean:
		w = geometricMeanWeights(m)
	default:
		return nil, fmt.Errorf("Weights: %w", ErrUnknownMethod)
	}
	if err != nil {
		return nil, fmt.Errorf("Weights: %w", err)
	}

	normalizeAbs(w)

	return w, nil
}

// powerWeights runs bounded power iteration from a uniform start vector.
// The iterate is renormalized to unit L1 norm every step; convergence is
// max-abs-delta below o.powerTol. A positive matrix guarantees a dominant
// real eigenvalue (Perron–Frobenius), so the loop converges in practice;
// hitting the cap is not an error — the last iterate is returned.
func powerWeights(m *Matrix, o Options) ([]float64, error) {
	n := m.n
	v := make([]float64, n)
	uniform := 1.0 / float64(n)
	for i := 0; i < n; i++ {
		v[i] = uniform
	}

	var iter, i int
	var sum, delta, d float64
	for iter = 0; iter < o.powerIters; iter++ {
		y, err := m.MulVec(v)
		if err != nil {
			return nil, err
		}
		// L1 renormalization (all entries positive by precondition).
		sum = 0.0
		for i = 0; i < n; i++ {
			sum += y[i]
		}
		if sum <= 0 || math.IsNaN(sum) || math.IsInf(sum, 0) {
			return nil, ErrEigenFailed
		}
		delta = 0.0
		for i = 0; i < n; i++ {
			y[i] /= sum
			d = math.Abs(y[i] - v[i])
			if d > delta {
				delta = d
			}
		}
		v = y
		if delta < o.powerTol {
			break
		}
	}

	return v, nil
}

// geometricMeanWeights computes Saaty's row-geometric-mean vector.
// Log-domain accumulation avoids overflow on long rows of large judgments.
func geometricMeanWeights(m *Matrix) []float64 {
	n := m.n
	w := make([]float64, n)
	var i, j int
	var logSum float64
	for i = 0; i < n; i++ {
		logSum = 0.0
		for j = 0; j < n; j++ {
			logSum += math.Log(m.data[i*n+j])
		}
		w[i] = math.Exp(logSum / float64(n))
	}

	return w
}

// normalizeAbs replaces w with |w| scaled to unit L1 norm, in place.
// A degenerate all-zero vector falls back to uniform weights so callers
// always receive a valid probability vector.
func normalizeAbs(w []float64) {
	var sum float64
	for i := range w {
		w[i] = math.Abs(w[i])
		sum += w[i]
	}
	if sum <= 0 || math.IsNaN(sum) || math.IsInf(sum, 0) {
		uniform := 1.0 / float64(len(w))
		for i := range w {
			w[i] = uniform
		}
		return
	}
	for i := range w {
		w[i] /= sum
	}
}
