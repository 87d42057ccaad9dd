// Package ahpkit is a multi-criteria decision kernel built around the
// Analytic Hierarchy Process (AHP) — from raw pairwise judgments to a
// ranked list of items with full consistency diagnostics.
//
// 🚀 What is ahpkit?
//
//	A deterministic, dependency-light library that brings together:
//		• Comparison matrices: dense reciprocal storage, validation, completion
//		• Weight extraction: eigenvalue, power iteration, row geometric mean
//		• Consistency: Saaty CI/CR scoring + bounded automatic repair
//		• Group decisions: multi-participant aggregation & consensus metrics
//		• Sensitivity: weight/cell perturbation, Kendall's τ, top-N stability
//		• Hierarchies: category→criterion trees, score-derived matrices,
//		  global weight composition, item ranking & reconciliation
//
// ✨ Why choose ahpkit?
//
//   - Pure functions – every kernel takes explicit inputs, returns new values
//   - Deterministic – fixed loop orders, explicit iteration caps, no RNG
//   - Honest diagnostics – degraded results are flagged, never hidden
//   - JSON-friendly – all outputs serialize as plain nested maps/lists/numbers
//
// Under the hood, everything is organized under five subpackages:
//
//	pairwise/    — comparison-matrix kernel: validate, weigh, repair, complete
//	rank/        — weighted item ranking + rank statistics (τ, overlap, Pearson)
//	group/       — multi-participant aggregation and consensus
//	sensitivity/ — perturbation analysis and critical-comparison discovery
//	hierarchy/   — criteria configuration, level tree, global weights, ranking
//
// Quick ASCII example:
//
//	    categories
//	    ├── value      (0.6)          global weight of "roi"  = 0.6 × 0.7
//	    │   ├── roi        (0.7)
//	    │   └── risk       (0.3)
//	    └── delivery   (0.4)
//	        ├── effort     (0.5)
//	        └── urgency    (0.5)
//
// Dive into the per-package docs for the full API and worked examples.
//
//	go get github.com/katalvlaran/ahpkit
package ahpkit
