// Package sensitivity measures how fragile a ranking is under
// perturbation of its inputs.
//
// Two probes are provided:
//
//   - Weights — nudge each criterion weight by signed fractions of a
//     perturbation magnitude, renormalize, re-rank, and record Kendall's
//     τ, top-N overlap and per-item rank deltas against the baseline,
//     folded into an overall stability score.
//   - CriticalComparisons — nudge each off-diagonal comparison cell by a
//     small relative step (reciprocity preserved), re-extract weights,
//     re-rank, and surface the judgments whose impact
//     (1 − τ) + (1 − overlap) clears a significance floor.
//
// Both probes are pure: they clone matrices and copy weight vectors,
// never mutating caller inputs, and their output is deterministic for
// deterministic input.
package sensitivity
