// Package group merges several participants' pairwise judgments into a
// single priority vector and reports how much the participants agree.
//
// Each participant supplies their own comparison matrix over the same
// criteria; the package extracts an individual weight vector and
// consistency ratio per participant, then aggregates via one of:
//
//   - GeometricMean — elementwise geometric mean of the individual
//     vectors (ε-floored against log(0)), renormalized. Order-free and
//     idempotent: identical participants reproduce their own vector.
//   - ConsistencyWeighted — a weighted average where each participant's
//     influence is proportional to max(0.1, 1 − CR), so coherent
//     judges pull harder than incoherent ones without silencing anyone.
//
// Alongside the group vector the result carries a participant×participant
// agreement matrix (Pearson correlation of weight vectors, floored at 0)
// and a scalar consensus ratio in [0,1].
package group
