// SPDX-License-Identifier: MIT

// Package pairwise: Matrix is a concrete, row-major square matrix of
// positive comparison judgments, storing elements in a flat slice for
// performance and cache friendliness.

package pairwise

import (
	"encoding/json"
	"fmt"
	"math"
)

// Matrix is a row-major square matrix of float64 comparison judgments.
// n is the order, data holds n*n elements in row-major order.
// The zero value is not usable; construct via New or FromRows.
type Matrix struct {
	n    int       // order (rows == columns)
	data []float64 // flat backing storage, length == n*n
}

// matrixErrorf wraps an underlying error with method context.
func matrixErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Matrix.%s(%d,%d): %w", method, row, col, err)
}

// New creates an n×n comparison matrix with the diagonal set to 1 and
// every off-diagonal cell set to 0 (meaning "judgment not yet supplied").
// Complexity: O(n²) time and memory.
func New(order int) (*Matrix, error) {
	// Validate order
	if order < 1 {
		return nil, ErrBadOrder
	}
	// Allocate flat slice and seed the unit diagonal
	data := make([]float64, order*order)
	for i := 0; i < order; i++ {
		data[i*order+i] = 1.0
	}

	return &Matrix{n: order, data: data}, nil
}

// FromRows builds a Matrix from a rectangular [][]float64.
// Stage 1 (Validate): non-empty and square.
// Stage 2 (Copy): row-major copy into fresh backing storage.
// Complexity: O(n²).
func FromRows(rows [][]float64) (*Matrix, error) {
	n := len(rows)
	if n == 0 {
		return nil, ErrBadOrder
	}
	data := make([]float64, n*n)
	for i := 0; i < n; i++ {
		if len(rows[i]) != n {
			return nil, fmt.Errorf("row %d: %w", i, ErrNotSquare)
		}
		copy(data[i*n:(i+1)*n], rows[i])
	}

	return &Matrix{n: n, data: data}, nil
}

// Order returns the matrix order (number of criteria).
// Complexity: O(1).
func (m *Matrix) Order() int { return m.n }

// indexOf computes the flat index for (row, col) or returns ErrOutOfRange.
func (m *Matrix) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.n {
		return 0, ErrOutOfRange
	}
	if col < 0 || col >= m.n {
		return 0, ErrOutOfRange
	}

	return row*m.n + col, nil
}

// At retrieves the judgment at (row, col).
// Complexity: O(1).
func (m *Matrix) At(row, col int) (float64, error) {
	idx, err := m.indexOf(row, col)
	if err != nil {
		return 0, matrixErrorf("At", row, col, err)
	}

	return m.data[idx], nil
}

// Set assigns value v at (row, col) without touching the mirror cell.
// Most callers want SetPair; Set exists for loading raw judgment data.
// Complexity: O(1).
func (m *Matrix) Set(row, col int, v float64) error {
	idx, err := m.indexOf(row, col)
	if err != nil {
		return matrixErrorf("Set", row, col, err)
	}
	m.data[idx] = v

	return nil
}

// SetPair assigns v at (row, col) and 1/v at (col, row), preserving the
// reciprocal invariant. v must be > 0 and finite; the diagonal is rejected
// because it is fixed at 1.
// Complexity: O(1).
func (m *Matrix) SetPair(row, col int, v float64) error {
	if row == col {
		return matrixErrorf("SetPair", row, col, ErrBadDiagonal)
	}
	if v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return matrixErrorf("SetPair", row, col, ErrNonPositiveEntry)
	}
	idx, err := m.indexOf(row, col)
	if err != nil {
		return matrixErrorf("SetPair", row, col, err)
	}
	ridx, err := m.indexOf(col, row)
	if err != nil {
		return matrixErrorf("SetPair", col, row, err)
	}
	m.data[idx] = v
	m.data[ridx] = 1.0 / v

	return nil
}

// Clone returns a deep copy of the matrix.
// Complexity: O(n²).
func (m *Matrix) Clone() *Matrix {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return &Matrix{n: m.n, data: cp}
}

// Rows exports the matrix as a fresh [][]float64 (JSON-friendly shape).
// Complexity: O(n²).
func (m *Matrix) Rows() [][]float64 {
	out := make([][]float64, m.n)
	for i := 0; i < m.n; i++ {
		row := make([]float64, m.n)
		copy(row, m.data[i*m.n:(i+1)*m.n])
		out[i] = row
	}

	return out
}

// MarshalJSON encodes the matrix as a plain nested array so external
// persistence/reporting layers need no knowledge of internal types.
func (m *Matrix) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Rows())
}

// MulVec computes y = M·x for a column vector x of length Order().
// Deterministic fixed i→j loop order; zero x[j] entries are skipped.
// Complexity: O(n²) time, O(n) space.
func (m *Matrix) MulVec(x []float64) ([]float64, error) {
	if len(x) != m.n {
		return nil, ErrDimensionMismatch
	}
	y := make([]float64, m.n)
	var i, j, base int
	var acc, xv float64
	for i = 0; i < m.n; i++ {
		acc = 0.0
		base = i * m.n
		for j = 0; j < m.n; j++ {
			xv = x[j]
			if xv != 0 { // skip zero multiplications
				acc += m.data[base+j] * xv
			}
		}
		y[i] = acc
	}

	return y, nil
}

// String implements fmt.Stringer for easy debugging.
// Complexity: O(n²) for string construction.
func (m *Matrix) String() string {
	var s string
	var i, j int
	for i = 0; i < m.n; i++ { // iterate over rows
		s += "["
		for j = 0; j < m.n; j++ {
			s += fmt.Sprintf("%g", m.data[i*m.n+j])
			if j < m.n-1 {
				s += ", "
			}
		}
		s += "]\n"
	}

	return s
}

// known reports whether the judgment at flat index idx is usable:
// strictly positive and finite. Zero/NaN/Inf mean "missing".
func known(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
