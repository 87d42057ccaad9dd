package sensitivity

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/ahpkit/pairwise"
	"github.com/katalvlaran/ahpkit/rank"
)

var (
	// ErrWeightMismatch indicates len(baseline) != len(criteria).
	ErrWeightMismatch = errors.New("sensitivity: baseline and criteria length mismatch")

	// ErrCriteriaMismatch indicates the matrix order does not match the
	// criteria list.
	ErrCriteriaMismatch = errors.New("sensitivity: matrix order and criteria length mismatch")
)

// perturbationFractions are the signed multiples of the magnitude
// applied to each criterion weight.
var perturbationFractions = [...]float64{-1, -0.5, 0.5, 1}

// RankDelta records one item whose position moved under a perturbation.
// Positions are 1-based; Delta = Baseline − Perturbed, so positive means
// the item climbed.
type RankDelta struct {
	ItemID    string `json:"item_id"`
	Baseline  int    `json:"baseline"`
	Perturbed int    `json:"perturbed"`
	Delta     int    `json:"delta"`
}

// Perturbation is one probe of a single criterion weight.
type Perturbation struct {
	Fraction   float64     `json:"fraction"`
	Tau        float64     `json:"tau"`
	Overlap    float64     `json:"overlap"`
	RankDeltas []RankDelta `json:"rank_deltas,omitempty"`
}

// CriterionSensitivity groups all probes of one criterion.
type CriterionSensitivity struct {
	Criterion     string         `json:"criterion"`
	Perturbations []Perturbation `json:"perturbations"`
}

// Stability summarizes ranking robustness across every probe.
// Score is the mean of MeanTau and MeanOverlap.
type Stability struct {
	MeanTau     float64 `json:"mean_tau"`
	MinTau      float64 `json:"min_tau"`
	MeanOverlap float64 `json:"mean_overlap"`
	MinOverlap  float64 `json:"min_overlap"`
	Score       float64 `json:"score"`
}

// WeightReport is the full weight-sensitivity output.
type WeightReport struct {
	Criteria  []CriterionSensitivity `json:"criteria"`
	Stability Stability              `json:"stability"`
}

// CriticalComparison is one matrix cell whose perturbation measurably
// reshuffles the ranking. Direction is the signed relative step applied
// to the cell.
type CriticalComparison struct {
	Row          int     `json:"row"`
	Col          int     `json:"col"`
	RowCriterion string  `json:"row_criterion"`
	ColCriterion string  `json:"col_criterion"`
	Original     float64 `json:"original"`
	Direction    float64 `json:"direction"`
	Tau          float64 `json:"tau"`
	Overlap      float64 `json:"overlap"`
	Impact       float64 `json:"impact"`
}

// Weights probes each criterion weight at ±½ and ±1 of the configured
// magnitude, renormalizes, re-ranks, and reports τ, top-N overlap and
// rank deltas per probe, plus an overall stability summary.
// The baseline vector and items are never mutated.
// Complexity: O(criteria² · items·log items) for the re-ranking passes.
func Weights(baseline []float64, criteria []string, items []rank.Item, opts ...Option) (WeightReport, error) {
	if len(baseline) != len(criteria) {
		return WeightReport{}, ErrWeightMismatch
	}
	o := gatherOptions(opts...)

	base, err := rank.Items(items, criteria, baseline)
	if err != nil {
		return WeightReport{}, fmt.Errorf("Weights: %w", err)
	}
	baseIDs := base.IDs()

	report := WeightReport{Criteria: make([]CriterionSensitivity, 0, len(criteria))}
	acc := newStabilityAccumulator()
	for c, name := range criteria {
		cs := CriterionSensitivity{
			Criterion:     name,
			Perturbations: make([]Perturbation, 0, len(perturbationFractions)),
		}
		for _, f := range perturbationFractions {
			perturbed := perturbWeight(baseline, c, f*o.magnitude)
			ranking, rerr := rank.Items(items, criteria, perturbed)
			if rerr != nil {
				return WeightReport{}, fmt.Errorf("Weights: %w", rerr)
			}
			ids := ranking.IDs()
			p := Perturbation{
				Fraction:   f,
				Tau:        rank.KendallTau(baseIDs, ids),
				Overlap:    rank.TopNOverlap(baseIDs, ids, o.topN),
				RankDeltas: rankDeltas(baseIDs, ids),
			}
			cs.Perturbations = append(cs.Perturbations, p)
			acc.observe(p.Tau, p.Overlap)
		}
		report.Criteria = append(report.Criteria, cs)
	}
	report.Stability = acc.summary()

	return report, nil
}

// CriticalComparisons perturbs every upper-triangle cell of m by the
// configured relative step in both directions (reciprocal mirrored),
// re-extracts weights, re-ranks, and returns the probes whose impact
// (1 − τ) + (1 − overlap) reaches the significance floor, sorted by
// impact descending and capped at 10 entries.
//
// A probe whose weight extraction fails is skipped rather than aborting
// the whole analysis.
func CriticalComparisons(m *pairwise.Matrix, criteria []string, items []rank.Item, opts ...Option) ([]CriticalComparison, error) {
	if m == nil {
		return nil, fmt.Errorf("CriticalComparisons: %w", pairwise.ErrNilMatrix)
	}
	if m.Order() != len(criteria) {
		return nil, ErrCriteriaMismatch
	}
	o := gatherOptions(opts...)

	baseW, err := pairwise.Weights(m, o.extraction, o.kernel...)
	if err != nil {
		return nil, fmt.Errorf("CriticalComparisons: %w", err)
	}
	base, err := rank.Items(items, criteria, baseW)
	if err != nil {
		return nil, fmt.Errorf("CriticalComparisons: %w", err)
	}
	baseIDs := base.IDs()

	n := m.Order()
	found := make([]CriticalComparison, 0, n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			original, aerr := m.At(i, j)
			if aerr != nil {
				return nil, fmt.Errorf("CriticalComparisons: %w", aerr)
			}
			for _, dir := range [...]float64{o.cellStep, -o.cellStep} {
				probe := m.Clone()
				if serr := probe.SetPair(i, j, original*(1+dir)); serr != nil {
					continue
				}
				w, werr := pairwise.Weights(probe, o.extraction, o.kernel...)
				if werr != nil {
					continue
				}
				ranking, rerr := rank.Items(items, criteria, w)
				if rerr != nil {
					return nil, fmt.Errorf("CriticalComparisons: %w", rerr)
				}
				ids := ranking.IDs()
				tau := rank.KendallTau(baseIDs, ids)
				overlap := rank.TopNOverlap(baseIDs, ids, o.topN)
				impact := (1 - tau) + (1 - overlap)
				if impact < o.floor {
					continue
				}
				found = append(found, CriticalComparison{
					Row:          i,
					Col:          j,
					RowCriterion: criteria[i],
					ColCriterion: criteria[j],
					Original:     original,
					Direction:    dir,
					Tau:          tau,
					Overlap:      overlap,
					Impact:       impact,
				})
			}
		}
	}

	sort.SliceStable(found, func(a, b int) bool {
		if found[a].Impact != found[b].Impact {
			return found[a].Impact > found[b].Impact
		}
		if found[a].Row != found[b].Row {
			return found[a].Row < found[b].Row
		}
		if found[a].Col != found[b].Col {
			return found[a].Col < found[b].Col
		}
		return found[a].Direction > found[b].Direction
	})
	if len(found) > maxCriticalComparisons {
		found = found[:maxCriticalComparisons]
	}

	return found, nil
}

// perturbWeight returns a renormalized copy of w with index c scaled by
// (1 + delta). The perturbed entry is clamped non-negative.
func perturbWeight(w []float64, c int, delta float64) []float64 {
	out := make([]float64, len(w))
	copy(out, w)
	out[c] = math.Max(0, out[c]*(1+delta))

	var sum float64
	for _, x := range out {
		sum += x
	}
	if sum <= 0 {
		uniform := 1.0 / float64(len(out))
		for i := range out {
			out[i] = uniform
		}
		return out
	}
	for i := range out {
		out[i] /= sum
	}

	return out
}

// rankDeltas lists the items whose 1-based position changed between the
// two orderings, restricted to items present in both.
func rankDeltas(base, perturbed []string) []RankDelta {
	pos := make(map[string]int, len(perturbed))
	for i, id := range perturbed {
		pos[id] = i
	}
	var deltas []RankDelta
	for i, id := range base {
		p, ok := pos[id]
		if !ok || p == i {
			continue
		}
		deltas = append(deltas, RankDelta{
			ItemID:    id,
			Baseline:  i + 1,
			Perturbed: p + 1,
			Delta:     i - p,
		})
	}

	return deltas
}

// stabilityAccumulator folds per-probe τ/overlap into the summary.
type stabilityAccumulator struct {
	count              int
	sumTau, sumOverlap float64
	minTau, minOverlap float64
}

func newStabilityAccumulator() *stabilityAccumulator {
	return &stabilityAccumulator{minTau: math.Inf(1), minOverlap: math.Inf(1)}
}

func (s *stabilityAccumulator) observe(tau, overlap float64) {
	s.count++
	s.sumTau += tau
	s.sumOverlap += overlap
	s.minTau = math.Min(s.minTau, tau)
	s.minOverlap = math.Min(s.minOverlap, overlap)
}

// summary reports perfect stability when nothing was probed.
func (s *stabilityAccumulator) summary() Stability {
	if s.count == 0 {
		return Stability{MeanTau: 1, MinTau: 1, MeanOverlap: 1, MinOverlap: 1, Score: 1}
	}
	st := Stability{
		MeanTau:     s.sumTau / float64(s.count),
		MinTau:      s.minTau,
		MeanOverlap: s.sumOverlap / float64(s.count),
		MinOverlap:  s.minOverlap,
	}
	st.Score = (st.MeanTau + st.MeanOverlap) / 2

	return st
}
