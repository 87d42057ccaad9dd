// SPDX-License-Identifier: MIT

// Package pairwise: structural validation of comparison matrices.
// Validate only reports; it never repairs. Repair and Complete are the
// mutating (clone-and-fix) counterparts.

package pairwise

import (
	"fmt"
	"math"
)

// Saaty scale bounds; entries outside are legal but flagged as suspicious.
const (
	saatyMin = 1.0 / 9.0
	saatyMax = 9.0
)

// Quality-score blend. Completeness, well-formedness and consistency are
// combined into a single [0,1] figure of merit.
const (
	qualityConsistencyShare  = 0.4
	qualityWellFormedShare   = 0.4
	qualityCompletenessShare = 0.2
)

// Report is the outcome of structural validation.
// All fields serialize as plain JSON values.
type Report struct {
	Valid        bool     `json:"valid"`
	Ratio        float64  `json:"consistency_ratio"`
	Issues       []string `json:"issues"`
	Suggestions  []string `json:"suggestions"`
	Completeness float64  `json:"completeness"`
	QualityScore float64  `json:"quality_score"`
}

// Validate checks a comparison matrix in fixed order: positivity of
// known entries, diagonal ≈ 1, reciprocity |m[i][j]*m[j][i]-1| ≤ tol.
// Squareness holds by construction of Matrix. Missing cells (zero/NaN)
// lower the completeness fraction but are not structural violations;
// Complete fills them.
//
// When the matrix is fully specified and structurally sound, Validate
// also runs a cheap consistency pass (geometric-mean weights) so the
// report carries a CR; otherwise Ratio is the conservative 1.0.
//
// Returns ErrNilMatrix for a nil input; every other finding lands in the
// report, never in the error.
// Complexity: O(n²).
func Validate(m *Matrix, opts ...Option) (Report, error) {
	if m == nil {
		return Report{}, ErrNilMatrix
	}
	o := gatherOptions(opts...)

	rep := Report{Issues: []string{}, Suggestions: []string{}}
	n := m.n

	// Pass 1: positivity + Saaty-scale deviation + completeness over the
	// upper triangle (diagonal is checked separately).
	var i, j int
	var v, mirror float64
	var knownCells, upperCells, scaleFlags int
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			upperCells++
			v = m.data[i*n+j]
			mirror = m.data[j*n+i]
			if !known(v) && !known(mirror) {
				continue // missing judgment, counted via completeness
			}
			knownCells++
			if !known(v) || !known(mirror) {
				rep.Issues = append(rep.Issues,
					fmt.Sprintf("cell (%d,%d): one side of the pair is missing or non-positive", i, j))
				continue
			}
			// Reciprocity within tolerance.
			if math.Abs(v*mirror-1.0) > o.tol {
				rep.Issues = append(rep.Issues,
					fmt.Sprintf("cell (%d,%d): reciprocity violated (%.6g * %.6g != 1)", i, j, v, mirror))
				rep.Suggestions = append(rep.Suggestions,
					fmt.Sprintf("set m[%d][%d] = 1/m[%d][%d]", j, i, i, j))
			}
			// Saaty-scale deviation is advisory only.
			if v < saatyMin-o.tol || v > saatyMax+o.tol {
				scaleFlags++
			}
		}
	}
	if scaleFlags > 0 {
		rep.Suggestions = append(rep.Suggestions,
			fmt.Sprintf("%d judgment(s) fall outside the 1/9..9 Saaty scale; consider rescaling", scaleFlags))
	}

	// Pass 2: unit diagonal.
	for i = 0; i < n; i++ {
		if math.Abs(m.data[i*n+i]-1.0) > o.tol {
			rep.Issues = append(rep.Issues,
				fmt.Sprintf("diagonal (%d,%d) = %.6g, expected 1", i, i, m.data[i*n+i]))
		}
	}

	// Completeness: fraction of upper-triangle cells carrying a judgment.
	if upperCells > 0 {
		rep.Completeness = float64(knownCells) / float64(upperCells)
	} else {
		rep.Completeness = 1.0 // 1×1 matrix is trivially complete
	}

	rep.Valid = len(rep.Issues) == 0 && rep.Completeness >= 1.0-o.tol

	// Consistency pass only makes sense on a sound, complete matrix.
	rep.Ratio = 1.0 // conservative default
	consistencyQuality := 0.0
	if rep.Valid {
		if w, err := Weights(m, GeometricMean, opts...); err == nil {
			cons := Analyze(m, w, opts...)
			rep.Ratio = cons.Ratio
			if !cons.Acceptable {
				rep.Issues = append(rep.Issues,
					fmt.Sprintf("consistency ratio %.4f exceeds threshold %.4f", cons.Ratio, o.threshold))
				rep.Suggestions = append(rep.Suggestions,
					"run Repair to nudge the most discordant judgments")
				rep.Valid = false
			}
			consistencyQuality = clamp01(1.0 - cons.Ratio)
		}
	}

	// Well-formedness decays with each structural issue.
	wellFormed := clamp01(1.0 - 0.25*float64(len(rep.Issues)))

	rep.QualityScore = clamp01(qualityConsistencyShare*consistencyQuality +
		qualityWellFormedShare*wellFormed +
		qualityCompletenessShare*rep.Completeness)

	return rep, nil
}

// requireWellFormed enforces the structural preconditions for weight
// extraction: every entry strictly positive and finite, unit diagonal,
// reciprocity within tolerance. Returns the first violated sentinel.
// Complexity: O(n²).
func requireWellFormed(m *Matrix, o Options) error {
	if m == nil {
		return ErrNilMatrix
	}
	n := m.n
	var i, j int
	var v float64
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			v = m.data[i*n+j]
			if !known(v) {
				return fmt.Errorf("cell (%d,%d): %w", i, j, ErrNonPositiveEntry)
			}
		}
	}
	for i = 0; i < n; i++ {
		if math.Abs(m.data[i*n+i]-1.0) > o.tol {
			return fmt.Errorf("cell (%d,%d): %w", i, i, ErrBadDiagonal)
		}
	}
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			if math.Abs(m.data[i*n+j]*m.data[j*n+i]-1.0) > o.tol {
				return fmt.Errorf("cell (%d,%d): %w", i, j, ErrBrokenReciprocity)
			}
		}
	}

	return nil
}

// clamp01 clips x into [0,1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}

	return x
}
