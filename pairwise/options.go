// SPDX-License-Identifier: MIT

// Package pairwise: functional configuration for the kernel's numeric
// policy. This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that enforces invariants.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - The random-index table and every iteration cap live inside the
//     resolved Options value, not in hidden package-level variables.
//   - Safe by construction: panic only on invalid parameters (programmer error).

package pairwise

import "math"

// DEFAULTS - single source of truth for zero-value behavior.
const (
	// DefaultConsistencyThreshold is the CR bound below which a matrix is
	// considered acceptably consistent (Saaty's classical 0.10).
	DefaultConsistencyThreshold = 0.10

	// DefaultTolerance is the structural tolerance used by validation
	// (diagonal ≈ 1, reciprocity ≈ 1) and by weight-sum checks.
	DefaultTolerance = 1e-6

	// DefaultPowerIterations caps the power-iteration loop.
	DefaultPowerIterations = 1000

	// DefaultPowerTolerance is the max-abs-delta at which power iteration
	// is considered converged.
	DefaultPowerTolerance = 1e-8

	// DefaultMaxRepairIterations caps the consistency-repair loop.
	DefaultMaxRepairIterations = 8

	// DefaultRepairStep is the fraction of the distance toward the
	// weight-implied value applied per repair iteration.
	DefaultRepairStep = 0.5

	// DefaultCompletionPasses caps the transitive-completion fixpoint loop.
	DefaultCompletionPasses = 50

	// ConservativeRandomIndex is used when a caller-supplied random-index
	// table has no entry for the requested order; dividing CI by it keeps
	// CR meaningful while erring on the side of flagging inconsistency.
	ConservativeRandomIndex = 1.49

	// maxRandomIndexOrder is the highest order present in the default
	// table; larger matrices reuse this entry.
	maxRandomIndexOrder = 20
)

// Internal panic messages (no magic strings).
const (
	panicThresholdInvalid = "pairwise: WithConsistencyThreshold: threshold must be finite, > 0"
	panicToleranceInvalid = "pairwise: WithTolerance: tol must be finite, > 0"
	panicItersInvalid     = "pairwise: iteration caps must be >= 1"
	panicRITableInvalid   = "pairwise: WithRandomIndex: table must be non-empty with non-negative entries"
)

// Option mutates internal options. Safe to apply repeatedly (idempotent).
// Constructors panic only on nonsensical values (programmer error).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported to prevent external mutation; public entry points
// accept `...Option` and internally resolve them via gatherOptions.
type Options struct {
	threshold        float64         // CR acceptability bound
	tol              float64         // structural tolerance
	powerIters       int             // power-iteration cap
	powerTol         float64         // power-iteration convergence delta
	repairIters      int             // repair-loop cap
	completionPasses int             // transitive-completion cap
	randomIndex      map[int]float64 // RI table keyed by matrix order
}

// WithConsistencyThreshold sets the CR bound for "acceptable" consistency.
// Panics when t is non-finite or <= 0.
func WithConsistencyThreshold(t float64) Option {
	if math.IsNaN(t) || math.IsInf(t, 0) || t <= 0 {
		panic(panicThresholdInvalid)
	}

	return func(o *Options) { o.threshold = t }
}

// WithTolerance sets the structural tolerance for diagonal/reciprocity
// checks. Panics when tol is non-finite or <= 0.
func WithTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol <= 0 {
		panic(panicToleranceInvalid)
	}

	return func(o *Options) { o.tol = tol }
}

// WithPowerIterations caps the power-iteration loop. Panics when n < 1.
func WithPowerIterations(n int) Option {
	if n < 1 {
		panic(panicItersInvalid)
	}

	return func(o *Options) { o.powerIters = n }
}

// WithPowerTolerance sets the power-iteration convergence delta.
// Panics when tol is non-finite or <= 0.
func WithPowerTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol <= 0 {
		panic(panicToleranceInvalid)
	}

	return func(o *Options) { o.powerTol = tol }
}

// WithMaxRepairIterations caps the consistency-repair loop. Panics when n < 1.
func WithMaxRepairIterations(n int) Option {
	if n < 1 {
		panic(panicItersInvalid)
	}

	return func(o *Options) { o.repairIters = n }
}

// WithCompletionPasses caps the transitive-completion fixpoint loop.
// Panics when n < 1.
func WithCompletionPasses(n int) Option {
	if n < 1 {
		panic(panicItersInvalid)
	}

	return func(o *Options) { o.completionPasses = n }
}

// WithRandomIndex replaces the Saaty random-index table. The table is
// keyed by matrix order; orders missing from the table fall back to
// ConservativeRandomIndex during analysis. The map is copied.
// Panics on an empty table or negative entries.
func WithRandomIndex(table map[int]float64) Option {
	if len(table) == 0 {
		panic(panicRITableInvalid)
	}
	cp := make(map[int]float64, len(table))
	for n, ri := range table {
		if ri < 0 || math.IsNaN(ri) || math.IsInf(ri, 0) {
			panic(panicRITableInvalid)
		}
		cp[n] = ri
	}

	return func(o *Options) { o.randomIndex = cp }
}

// defaultRandomIndex returns Saaty's RI table for orders 1..20.
func defaultRandomIndex() map[int]float64 {
	return map[int]float64{
		1: 0, 2: 0, 3: 0.58, 4: 0.90, 5: 1.12,
		6: 1.24, 7: 1.32, 8: 1.41, 9: 1.45, 10: 1.49,
		11: 1.51, 12: 1.48, 13: 1.56, 14: 1.57, 15: 1.59,
		16: 1.60, 17: 1.61, 18: 1.62, 19: 1.63, 20: 1.64,
	}
}

// gatherOptions applies user-provided Option setters on top of defaults.
// Last-writer-wins semantics; stable for a given sequence of setters.
// Complexity: O(k) for k=len(user).
func gatherOptions(user ...Option) Options {
	o := Options{
		threshold:        DefaultConsistencyThreshold,
		tol:              DefaultTolerance,
		powerIters:       DefaultPowerIterations,
		powerTol:         DefaultPowerTolerance,
		repairIters:      DefaultMaxRepairIterations,
		completionPasses: DefaultCompletionPasses,
		randomIndex:      defaultRandomIndex(),
	}
	for _, set := range user {
		set(&o) // apply in order; last-writer-wins semantics
	}

	return o
}

// randomIndexFor resolves the RI value for order n against the configured
// table: exact entry first, then the capped order for oversized matrices,
// then the conservative fallback for tables with gaps.
func (o Options) randomIndexFor(n int) float64 {
	if ri, ok := o.randomIndex[n]; ok {
		return ri
	}
	if n > maxRandomIndexOrder {
		if ri, ok := o.randomIndex[maxRandomIndexOrder]; ok {
			return ri
		}
	}

	return ConservativeRandomIndex
}
