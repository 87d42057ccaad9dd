package rank

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"
)

var (
	// ErrWeightMismatch indicates len(criteria) != len(weights).
	ErrWeightMismatch = errors.New("rank: criteria and weights length mismatch")

	// ErrBadWorkers indicates a non-positive worker count.
	ErrBadWorkers = errors.New("rank: workers must be >= 1")
)

// Item is one scoreable unit: an id plus criterion-keyed numeric scores.
// The engine is agnostic to what the keys mean; they only have to match
// the criterion identifiers the weights were computed for.
type Item struct {
	ID     string             `json:"id"`
	Scores map[string]float64 `json:"scores"`
}

// Entry is one ranked item with its composite score and per-criterion
// breakdown (weight × score per criterion; missing scores contribute 0).
type Entry struct {
	ItemID    string             `json:"item_id"`
	Score     float64            `json:"score"`
	Breakdown map[string]float64 `json:"breakdown"`
}

// Ranking is an ordered list of entries, best first.
type Ranking []Entry

// IDs returns the item ids in ranked order.
func (r Ranking) IDs() []string {
	ids := make([]string, len(r))
	for i, e := range r {
		ids[i] = e.ItemID
	}

	return ids
}

// Items ranks items by composite score Σ w_c · score_c.
// Deterministic: score descending, tie-break by item id ascending.
// An empty item list yields an empty ranking, not an error.
// Complexity: O(items·criteria + items·log items).
func Items(items []Item, criteria []string, weights []float64) (Ranking, error) {
	if len(criteria) != len(weights) {
		return nil, ErrWeightMismatch
	}

	out := make(Ranking, len(items))
	for i := range items {
		out[i] = scoreItem(items[i], criteria, weights)
	}
	sortRanking(out)

	return out, nil
}

// ItemsParallel ranks items with the same contract as Items, fanning the
// scoring pass out across up to `workers` goroutines. Weights must be
// fully computed before calling — the weight path is never interleaved
// with scoring. Output ordering is identical to Items.
func ItemsParallel(ctx context.Context, items []Item, criteria []string, weights []float64, workers int) (Ranking, error) {
	if len(criteria) != len(weights) {
		return nil, ErrWeightMismatch
	}
	if workers < 1 {
		return nil, ErrBadWorkers
	}

	out := make(Ranking, len(items))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range items {
		i := i
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			out[i] = scoreItem(items[i], criteria, weights)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("ItemsParallel: %w", err)
	}
	sortRanking(out)

	return out, nil
}

// scoreItem computes one composite score with its breakdown.
func scoreItem(it Item, criteria []string, weights []float64) Entry {
	e := Entry{ItemID: it.ID, Breakdown: make(map[string]float64, len(criteria))}
	for c, name := range criteria {
		s, ok := it.Scores[name]
		if !ok {
			// Missing criterion score contributes 0, visible in the breakdown.
			e.Breakdown[name] = 0
			continue
		}
		contrib := weights[c] * s
		e.Breakdown[name] = contrib
		e.Score += contrib
	}

	return e
}

// sortRanking orders entries score-descending with id-ascending ties.
func sortRanking(r Ranking) {
	sort.SliceStable(r, func(a, b int) bool {
		if r[a].Score != r[b].Score {
			return r[a].Score > r[b].Score
		}
		return r[a].ItemID < r[b].ItemID
	})
}
