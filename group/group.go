package group

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/katalvlaran/ahpkit/pairwise"
	"github.com/katalvlaran/ahpkit/rank"
)

var (
	// ErrNoParticipants indicates an empty participant map.
	ErrNoParticipants = errors.New("group: no participants")

	// ErrOrderMismatch indicates participant matrices of different orders.
	ErrOrderMismatch = errors.New("group: participant matrix orders differ")

	// ErrUnknownMethod indicates an unrecognized aggregation method.
	ErrUnknownMethod = errors.New("group: unknown aggregation method")
)

// geoMeanFloor keeps log() defined when a participant weight collapses
// to zero; the floor is far below any meaningful priority.
const geoMeanFloor = 1e-10

// minInfluence is the floor on a participant's voice under
// ConsistencyWeighted: even a fully inconsistent judge keeps 10%.
const minInfluence = 0.1

// Method selects how individual weight vectors are merged.
type Method int

const (
	// GeometricMean merges by elementwise geometric mean, renormalized.
	GeometricMean Method = iota

	// ConsistencyWeighted merges by a weighted average with influence
	// proportional to max(0.1, 1 − CR).
	ConsistencyWeighted
)

// String implements fmt.Stringer.
func (m Method) String() string {
	switch m {
	case GeometricMean:
		return "geometric_mean"
	case ConsistencyWeighted:
		return "consistency_weighted"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod maps a configuration string onto a Method
// (case-insensitive). Returns ErrUnknownMethod for anything else.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "geometric_mean", "geometric", "geomean":
		return GeometricMean, nil
	case "consistency_weighted", "weighted":
		return ConsistencyWeighted, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, s)
	}
}

// Participant holds one judge's individually extracted priorities.
type Participant struct {
	Weights     []float64            `json:"weights"`
	Consistency pairwise.Consistency `json:"consistency"`
}

// Result is the outcome of a group aggregation run.
//
// Order fixes the participant ordering (ids ascending) used by the rows
// and columns of Agreement, so the matrix stays meaningful after JSON
// round-trips.
type Result struct {
	Order        []string               `json:"order"`
	Participants map[string]Participant `json:"participants"`
	GroupWeights []float64              `json:"group_weights"`
	Agreement    [][]float64            `json:"agreement"`
	Consensus    float64                `json:"consensus"`
}

// Aggregate extracts a weight vector and consistency ratio per
// participant (using the given extraction method) and merges them into a
// single group vector according to method.
//
// All participant matrices must share one order; structurally invalid
// matrices surface their pairwise sentinel wrapped with the participant
// id. Deterministic: participants are processed in id-ascending order.
func Aggregate(participants map[string]*pairwise.Matrix, method Method, extraction pairwise.Method, opts ...pairwise.Option) (Result, error) {
	if len(participants) == 0 {
		return Result{}, ErrNoParticipants
	}
	if method != GeometricMean && method != ConsistencyWeighted {
		return Result{}, fmt.Errorf("%w: %v", ErrUnknownMethod, method)
	}

	order := make([]string, 0, len(participants))
	for id := range participants {
		order = append(order, id)
	}
	sort.Strings(order)

	n := participants[order[0]].Order()
	out := Result{
		Order:        order,
		Participants: make(map[string]Participant, len(order)),
	}
	vectors := make([][]float64, len(order))
	ratios := make([]float64, len(order))
	for p, id := range order {
		m := participants[id]
		if m.Order() != n {
			return Result{}, fmt.Errorf("%w: participant %q has order %d, want %d", ErrOrderMismatch, id, m.Order(), n)
		}
		w, err := pairwise.Weights(m, extraction, opts...)
		if err != nil {
			return Result{}, fmt.Errorf("participant %q: %w", id, err)
		}
		c := pairwise.Analyze(m, w, opts...)
		out.Participants[id] = Participant{Weights: w, Consistency: c}
		vectors[p] = w
		ratios[p] = c.Ratio
	}

	switch method {
	case GeometricMean:
		out.GroupWeights = geometricMerge(vectors, n)
	case ConsistencyWeighted:
		out.GroupWeights = weightedMerge(vectors, ratios, n)
	}
	out.Agreement = agreementMatrix(vectors)
	out.Consensus = consensusRatio(vectors, out.GroupWeights)

	return out, nil
}

// geometricMerge computes the elementwise geometric mean of the
// participant vectors in the log domain, then renormalizes to sum 1.
func geometricMerge(vectors [][]float64, n int) []float64 {
	merged := make([]float64, n)
	inv := 1.0 / float64(len(vectors))
	for i := 0; i < n; i++ {
		var logSum float64
		for _, w := range vectors {
			logSum += math.Log(math.Max(w[i], geoMeanFloor))
		}
		merged[i] = math.Exp(logSum * inv)
	}

	return normalize(merged)
}

// weightedMerge averages the participant vectors with influence
// proportional to max(0.1, 1 − CR), normalized across participants.
func weightedMerge(vectors [][]float64, ratios []float64, n int) []float64 {
	influence := make([]float64, len(vectors))
	var total float64
	for p, cr := range ratios {
		influence[p] = math.Max(minInfluence, 1.0-cr)
		total += influence[p]
	}

	merged := make([]float64, n)
	for p, w := range vectors {
		share := influence[p] / total
		for i := 0; i < n; i++ {
			merged[i] += share * w[i]
		}
	}

	return normalize(merged)
}

// agreementMatrix fills the participant×participant Pearson correlation
// of weight vectors, floored at 0. Diagonal is exactly 1.
func agreementMatrix(vectors [][]float64) [][]float64 {
	k := len(vectors)
	agree := make([][]float64, k)
	for p := range agree {
		agree[p] = make([]float64, k)
		agree[p][p] = 1.0
	}
	for p := 0; p < k; p++ {
		for q := p + 1; q < k; q++ {
			r := math.Max(0, rank.Pearson(vectors[p], vectors[q]))
			agree[p][q] = r
			agree[q][p] = r
		}
	}

	return agree
}

// consensusRatio measures how tightly the individuals cluster around the
// group vector: max(0, 1 − mean_p ‖w_p − w_group‖).
func consensusRatio(vectors [][]float64, groupW []float64) float64 {
	var meanDev float64
	for _, w := range vectors {
		var sq float64
		for i := range w {
			d := w[i] - groupW[i]
			sq += d * d
		}
		meanDev += math.Sqrt(sq)
	}
	meanDev /= float64(len(vectors))

	return math.Max(0, 1.0-meanDev)
}

// normalize rescales v to sum 1; a degenerate sum falls back to uniform.
func normalize(v []float64) []float64 {
	var sum float64
	for _, x := range v {
		sum += x
	}
	if sum <= 0 || math.IsNaN(sum) || math.IsInf(sum, 0) {
		uniform := 1.0 / float64(len(v))
		for i := range v {
			v[i] = uniform
		}
		return v
	}
	for i := range v {
		v[i] /= sum
	}

	return v
}
