// Package hierarchy drives the pairwise kernel across a category →
// criterion tree and composes the per-level priorities into one global
// weight vector and a final item ranking.
//
// The integration run is a small state machine:
//
//  1. Build levels from a criteria configuration — a "categories" level
//     when more than one category is present, one "criteria_<category>"
//     level per category, or a single flat "criteria" level.
//  2. Synthesize a comparison matrix per level from externally supplied
//     scores (score-ratio, logarithmic, or hybrid conversion), with the
//     diagonal and reciprocity corrected before use.
//  3. Run the kernel per level: validate, extract weights, analyze and
//     optionally repair consistency.
//  4. Compose global weights multiplicatively down the tree; leaf
//     weights sum to 1.
//  5. Rank items with the global vector, score an integration quality
//     in [0,1], and reconcile the result against the source scores
//     (Pearson, Kendall's τ, top-K agreement).
//
// The run terminates "completed", or "failed" when a level is
// unrecoverable (strict mode with an unrepairable consistency ratio).
// Everything is pure: one Integrate call is one computation context and
// caller inputs are never mutated.
package hierarchy
