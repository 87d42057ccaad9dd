package rank

import "math"

// KendallTau computes Kendall's rank correlation between two orderings,
// restricted to the items present in both. Returns 0 when fewer than 2
// common items exist or the pair count degenerates.
//
// τ = (concordant − discordant) / (k·(k−1)/2) over the k common items;
// orderings carry no ties, so the simple form applies.
// Complexity: O(k²) — rankings here are small.
func KendallTau(a, b []string) float64 {
	posB := make(map[string]int, len(b))
	for i, id := range b {
		posB[id] = i
	}
	// Common items in a's order, with their positions in b.
	common := make([]int, 0, len(a))
	for _, id := range a {
		if p, ok := posB[id]; ok {
			common = append(common, p)
		}
	}
	k := len(common)
	if k < 2 {
		return 0
	}

	var concordant, discordant int
	for i := 0; i < k; i++ {
		for j := i + 1; j < k; j++ {
			if common[i] < common[j] {
				concordant++
			} else {
				discordant++
			}
		}
	}
	pairs := k * (k - 1) / 2
	if pairs == 0 {
		return 0
	}

	return float64(concordant-discordant) / float64(pairs)
}

// TopNOverlap returns the fraction of a's top-n items that also appear
// in b's top-n. n is capped at the shorter ranking; n <= 0 or empty
// rankings yield 0.
// Complexity: O(n).
func TopNOverlap(a, b []string, n int) float64 {
	if n <= 0 || len(a) == 0 || len(b) == 0 {
		return 0
	}
	if n > len(a) {
		n = len(a)
	}
	if n > len(b) {
		n = len(b)
	}

	topB := make(map[string]struct{}, n)
	for _, id := range b[:n] {
		topB[id] = struct{}{}
	}
	var hits int
	for _, id := range a[:n] {
		if _, ok := topB[id]; ok {
			hits++
		}
	}

	return float64(hits) / float64(n)
}

// Pearson computes the Pearson correlation coefficient of two equally
// long samples. Degenerate inputs (length mismatch, < 2 points, zero
// variance) return 0 rather than NaN, so downstream reports stay finite.
// Complexity: O(n).
func Pearson(x, y []float64) float64 {
	n := len(x)
	if n != len(y) || n < 2 {
		return 0
	}

	var meanX, meanY float64
	for i := 0; i < n; i++ {
		meanX += x[i]
		meanY += y[i]
	}
	meanX /= float64(n)
	meanY /= float64(n)

	var cov, varX, varY, dx, dy float64
	for i := 0; i < n; i++ {
		dx = x[i] - meanX
		dy = y[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return 0
	}
	r := cov / math.Sqrt(varX*varY)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}

	return r
}
