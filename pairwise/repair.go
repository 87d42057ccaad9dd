// SPDX-License-Identifier: MIT

// Package pairwise: heuristic consistency repair.
// Per iteration the single most discrepant upper-triangle judgment is
// moved halfway toward the value implied by the current weights, the
// mirror cell is kept reciprocal, and weights/CR are recomputed. This is
// a bounded local search, not a global CR optimizer; each step is logged
// so callers can audit exactly what changed.

package pairwise

import (
	"fmt"
	"math"
)

// RepairStep records one repair iteration.
type RepairStep struct {
	Row       int     `json:"row"`
	Col       int     `json:"col"`
	Old       float64 `json:"old_value"`
	New       float64 `json:"new_value"`
	Ratio     float64 `json:"consistency_ratio"`
	Narrative string  `json:"narrative"`
}

// RepairResult is the outcome of a bounded consistency-repair run.
type RepairResult struct {
	// Repaired is a fresh matrix; the input is never mutated.
	Repaired *Matrix `json:"repaired"`

	// Weights is the priority vector of the repaired matrix.
	Weights []float64 `json:"weights"`

	Initial   Consistency  `json:"initial"`
	Final     Consistency  `json:"final"`
	Steps     []RepairStep `json:"steps"`
	Converged bool         `json:"converged"` // CR cleared the threshold
	Improved  bool         `json:"improved"`  // CR strictly decreased (or started acceptable)
}

// Repair runs the bounded most-discrepant-cell repair loop on a clone of m.
// Stage 1 (Baseline): extract weights, score CR; stop if already acceptable.
// Stage 2 (Loop ≤ MaxRepairIterations): locate argmax |m_ij − w_i/w_j| over
// i<j, move the entry 50% toward w_i/w_j, mirror the reciprocal, recompute.
// Stage 3 (Guard): a step that raises CR is reverted and the loop stops —
// the reported CR is monotone non-increasing across iterations.
// Complexity: O(iters · n²) plus one weight extraction per iteration.
func Repair(m *Matrix, method Method, opts ...Option) (RepairResult, error) {
	o := gatherOptions(opts...)
	if err := requireWellFormed(m, o); err != nil {
		return RepairResult{}, fmt.Errorf("Repair: %w", err)
	}

	work := m.Clone()
	w, err := Weights(work, method, opts...)
	if err != nil {
		return RepairResult{}, fmt.Errorf("Repair: %w", err)
	}
	cons := Analyze(work, w, opts...)

	res := RepairResult{
		Repaired: work,
		Weights:  w,
		Initial:  cons,
		Final:    cons,
		Steps:    []RepairStep{},
	}
	if cons.Acceptable {
		res.Converged = true
		res.Improved = true
		return res, nil
	}

	n := work.n
	var iter, i, j, bestI, bestJ int
	var implied, disc, bestDisc, cur, next float64
	for iter = 0; iter < o.repairIters; iter++ {
		if cons.Acceptable {
			break
		}
		// Locate the most discrepant upper-triangle judgment.
		bestDisc = -1.0
		for i = 0; i < n; i++ {
			for j = i + 1; j < n; j++ {
				implied = w[i] / w[j]
				disc = math.Abs(work.data[i*n+j] - implied)
				if disc > bestDisc {
					bestDisc, bestI, bestJ = disc, i, j
				}
			}
		}
		if bestDisc <= 0 {
			break // matrix already matches its weights exactly
		}

		cur = work.data[bestI*n+bestJ]
		implied = w[bestI] / w[bestJ]
		next = cur + DefaultRepairStep*(implied-cur)
		if next <= 0 {
			break // cannot move further without breaking positivity
		}
		if err = work.SetPair(bestI, bestJ, next); err != nil {
			return res, fmt.Errorf("Repair: %w", err)
		}

		nw, werr := Weights(work, method, opts...)
		if werr != nil {
			// Revert and stop; the previous state is still sound.
			_ = work.SetPair(bestI, bestJ, cur)
			break
		}
		ncons := Analyze(work, nw, opts...)
		if ncons.Ratio > cons.Ratio {
			// Monotonicity guard: never report a CR increase.
			_ = work.SetPair(bestI, bestJ, cur)
			break
		}

		w, cons = nw, ncons
		res.Steps = append(res.Steps, RepairStep{
			Row:   bestI,
			Col:   bestJ,
			Old:   cur,
			New:   next,
			Ratio: cons.Ratio,
			Narrative: fmt.Sprintf("moved m[%d][%d] from %.4f toward implied %.4f -> %.4f (CR %.4f)",
				bestI, bestJ, cur, implied, next, cons.Ratio),
		})
	}

	res.Repaired = work
	res.Weights = w
	res.Final = cons
	res.Converged = cons.Acceptable
	res.Improved = cons.Ratio < res.Initial.Ratio

	return res, nil
}
