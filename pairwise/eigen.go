// SPDX-License-Identifier: MIT

// Package pairwise: dominant-eigenpair kernel for the Eigenvalue method.
// A positive comparison matrix has a simple dominant eigenvalue with a
// positive eigenvector (Perron–Frobenius), so the pair is reachable via
// power iteration; one inverse-iteration pass through a Doolittle LU
// solve at the Rayleigh-quotient shift sharpens the vector. LU without
// pivoting is intentional: deterministic results for identical inputs.

package pairwise

import "math"

// relative offset applied to the Rayleigh shift so A - σI stays
// invertible when the estimate is already (numerically) exact.
const shiftOffset = 1e-6

// dominantEigenpair estimates (λmax, v) for the comparison matrix.
// Stage 1 (Seed): bounded power iteration for an initial vector.
// Stage 2 (Shift): λ̂ = mean_i (Mv)_i / v_i (Rayleigh-style estimate).
// Stage 3 (Refine): solve (M − σI)x = v via LU, σ = λ̂·(1+offset);
// a singular shift simply keeps the power-iteration seed.
// Complexity: O(powerIters·n²) + O(n³) for the LU solve.
func dominantEigenpair(m *Matrix, o Options) (float64, []float64, error) {
	v, err := powerWeights(m, o)
	if err != nil {
		return 0, nil, err
	}
	lambda := rayleighEstimate(m, v)

	n := m.n
	// Build the shifted matrix B = M − σI in flat form.
	sigma := lambda * (1.0 + shiftOffset)
	b := make([]float64, n*n)
	copy(b, m.data)
	for i := 0; i < n; i++ {
		b[i*n+i] -= sigma
	}

	lo, up, ok := luDecompose(b, n)
	if !ok {
		// Shift landed on a singular matrix; the seed is already a good
		// dominant-direction estimate, keep it.
		return lambda, v, nil
	}
	x := luSolve(lo, up, n, v)

	// Guard against numerical blow-ups in the refined vector.
	for i := 0; i < n; i++ {
		if math.IsNaN(x[i]) || math.IsInf(x[i], 0) {
			return lambda, v, nil
		}
	}
	normalizeAbs(x)
	lambda = rayleighEstimate(m, x)

	return lambda, x, nil
}

// rayleighEstimate computes mean_i (Mv)_i / v_i over entries with v_i > 0.
// Zero-weight entries are skipped; an empty mean degrades to 0.
func rayleighEstimate(m *Matrix, v []float64) float64 {
	y, err := m.MulVec(v)
	if err != nil {
		return 0
	}
	var sum float64
	var cnt int
	for i := range v {
		if v[i] > 0 {
			sum += y[i] / v[i]
			cnt++
		}
	}
	if cnt == 0 {
		return 0
	}

	return sum / float64(cnt)
}

// luDecompose runs Doolittle factorization A = L·U on a flat n×n slice
// (unit diagonal on L, no pivoting). Returns ok=false on a zero pivot.
// Deterministic fixed i→{j≥i} then {j>i}→i loop order.
// Complexity: O(n³) time, O(n²) space.
func luDecompose(a []float64, n int) (lo, up []float64, ok bool) {
	lo = make([]float64, n*n)
	up = make([]float64, n*n)
	for i := 0; i < n; i++ {
		lo[i*n+i] = 1.0
	}

	var i, j, k, baseI, baseJ int
	var sum, pivot float64
	for i = 0; i < n; i++ {
		baseI = i * n
		// Row i of U.
		for j = i; j < n; j++ {
			sum = 0.0
			for k = 0; k < i; k++ {
				sum += lo[baseI+k] * up[k*n+j]
			}
			up[baseI+j] = a[baseI+j] - sum
		}
		// Zero-pivot guard (deterministic singularity detection).
		pivot = up[baseI+i]
		if pivot == 0 {
			return nil, nil, false
		}
		// Column i of L.
		for j = i + 1; j < n; j++ {
			baseJ = j * n
			sum = 0.0
			for k = 0; k < i; k++ {
				sum += lo[baseJ+k] * up[k*n+i]
			}
			lo[baseJ+i] = (a[baseJ+i] - sum) / pivot
		}
	}

	return lo, up, true
}

// luSolve solves L·U·x = b via forward then backward substitution.
// Assumes the factors came from luDecompose (non-zero U diagonal).
// Complexity: O(n²).
func luSolve(lo, up []float64, n int, b []float64) []float64 {
	y := make([]float64, n)
	x := make([]float64, n)

	var i, k int
	var sum float64
	// Forward: L·y = b.
	for i = 0; i < n; i++ {
		sum = 0.0
		for k = 0; k < i; k++ {
			sum += lo[i*n+k] * y[k]
		}
		y[i] = b[i] - sum
	}
	// Backward: U·x = y.
	for i = n - 1; i >= 0; i-- {
		sum = 0.0
		for k = i + 1; k < n; k++ {
			sum += up[i*n+k] * x[k]
		}
		x[i] = (y[i] - sum) / up[i*n+i]
	}

	return x
}
