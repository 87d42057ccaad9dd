// SPDX-License-Identifier: MIT
// Package pairwise: sentinel error set.
// This file defines ONLY package-level sentinel errors used across the
// kernel. All routines return these sentinels (optionally wrapped with an
// operation tag via fmt.Errorf("Op: %w", err)) and tests check them via
// errors.Is. No routine panics on user-triggered error conditions; panics
// are reserved for nonsensical option values (programmer error).

package pairwise

import "errors"

var (
	// ErrNilMatrix indicates that a nil *Matrix was passed where a value is required.
	ErrNilMatrix = errors.New("pairwise: nil matrix")

	// ErrBadOrder is returned when a requested matrix order is < 1.
	ErrBadOrder = errors.New("pairwise: order must be >= 1")

	// ErrNotSquare signals that the supplied rows do not form a square matrix.
	ErrNotSquare = errors.New("pairwise: matrix is not square")

	// ErrOutOfRange indicates that a row or column index is outside valid bounds.
	// Public indexers (At/Set/SetPair) return this, they do not panic.
	ErrOutOfRange = errors.New("pairwise: index out of range")

	// ErrNonPositiveEntry signals an entry <= 0 (or NaN/Inf) where the
	// comparison semantics require strictly positive judgments.
	ErrNonPositiveEntry = errors.New("pairwise: entry must be > 0")

	// ErrBadDiagonal signals a diagonal entry that deviates from 1 beyond tolerance.
	ErrBadDiagonal = errors.New("pairwise: diagonal must equal 1")

	// ErrBrokenReciprocity signals m[i][j]*m[j][i] deviating from 1 beyond tolerance.
	ErrBrokenReciprocity = errors.New("pairwise: reciprocity violated")

	// ErrDimensionMismatch indicates incompatible sizes between a matrix and a vector.
	ErrDimensionMismatch = errors.New("pairwise: dimension mismatch")

	// ErrUnknownMethod marks an extraction-method name that is not part of
	// the closed Method enum.
	ErrUnknownMethod = errors.New("pairwise: unknown extraction method")

	// ErrEigenFailed indicates that the dominant-eigenpair routine failed to
	// converge under the configured cap/tolerance.
	ErrEigenFailed = errors.New("pairwise: eigen computation failed")

	// ErrNonPositiveScore is returned when preference/score synthesis
	// receives a zero or negative value; the mapping for such inputs is
	// intentionally undefined, so they are rejected at validation.
	ErrNonPositiveScore = errors.New("pairwise: score must be > 0")
)
