// SPDX-License-Identifier: MIT

// Package pairwise implements the AHP comparison-matrix kernel:
// validation, weight extraction, consistency analysis, automatic
// consistency repair, transitive completion of partial matrices, and
// synthesis of matrices from preference scalars.
//
// Everything in this package is a pure function over explicit inputs.
// There is no engine object and no package-level mutable state: a call
// receives a *Matrix (plus resolved Options) and returns fresh values.
// That makes every routine safe to run concurrently over independent
// matrices, and keeps one comparison problem from leaking into another.
//
// Numeric policy:
//   - All loops are bounded by explicit caps carried in Options.
//   - Structural violations (non-positive entry, broken reciprocity,
//     bad diagonal) surface as sentinel errors before any weights are
//     computed; callers match them via errors.Is.
//   - Numerical edge cases never abort an analysis: Analyze degrades to
//     a conservative CR of 1.0 with Degenerate=true so a downstream
//     ranking stays usable but is visibly untrustworthy.
package pairwise
