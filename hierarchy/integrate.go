package hierarchy

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/katalvlaran/ahpkit/pairwise"
	"github.com/katalvlaran/ahpkit/rank"
)

// Terminal states of an integration run.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Level names.
const (
	categoriesLevelName = "categories"
	flatLevelName       = "criteria"
	categoryLevelPrefix = "criteria_"
)

// Level is one node of the processed hierarchy: its member list, the
// synthesized comparison matrix (nil when the level was pinned or
// trivial), the extracted local weights and the consistency verdict.
type Level struct {
	Name        string               `json:"name"`
	Parent      string               `json:"parent,omitempty"`
	Members     []string             `json:"members"`
	Matrix      *pairwise.Matrix     `json:"matrix,omitempty"`
	Weights     []float64            `json:"weights"`
	Consistency pairwise.Consistency `json:"consistency"`
	Repaired    bool                 `json:"repaired,omitempty"`
	Notes       []string             `json:"notes,omitempty"`
}

// Reconciliation quantifies how faithfully the AHP reconstruction
// preserves the externally supplied score signal.
type Reconciliation struct {
	Pearson       float64 `json:"pearson"`
	KendallTau    float64 `json:"kendall_tau"`
	TopKAgreement float64 `json:"top_k_agreement"`
}

// IntegrationResult is the full outcome of one Integrate run.
//
// GlobalWeights maps every leaf criterion id to its composed weight;
// across all leaves the weights sum to 1. AchievedRatio is the worst
// consistency ratio observed across levels.
type IntegrationResult struct {
	Status         string             `json:"status"`
	Levels         []Level            `json:"levels"`
	GlobalWeights  map[string]float64 `json:"global_weights"`
	Criteria       []Criterion        `json:"criteria"`
	Ranking        rank.Ranking       `json:"ranking"`
	Quality        float64            `json:"quality"`
	Reconciliation Reconciliation     `json:"reconciliation"`
	TargetRatio    float64            `json:"target_ratio"`
	AchievedRatio  float64            `json:"achieved_ratio"`
	FailureReason  string             `json:"failure_reason,omitempty"`
}

// Integrate runs the full hierarchy pipeline: build levels from cfg,
// synthesize and solve a comparison matrix per level from the supplied
// per-criterion scores, compose global weights down the tree, rank the
// items, and reconcile against the source scores.
//
// scores maps criterion id → externally supplied importance score; every
// active criterion needs a strictly positive entry. Structural problems
// (bad config, missing scores) return an error; an unrepairable level
// under strict mode terminates with Status "failed" instead.
func Integrate(cfg Config, scores map[string]float64, items []rank.Item, opts ...Option) (*IntegrationResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := gatherOptions(cfg, opts...)
	active := cfg.Active()
	for _, cr := range active {
		if s, ok := scores[cr.ID]; !ok || s <= 0 {
			return nil, fmt.Errorf("Integrate: criterion %q: %w", cr.ID, pairwise.ErrNonPositiveScore)
		}
	}

	cats, members := categorize(active)
	res := &IntegrationResult{
		Status:        StatusCompleted,
		TargetRatio:   o.threshold,
		GlobalWeights: make(map[string]float64, len(active)),
	}

	catShare, catScores := categoryShares(cfg, cats, members, scores, o, res)
	if res.Status == StatusFailed {
		return res, nil
	}

	for _, cat := range cats {
		name := flatLevelName
		parent := ""
		if len(cats) > 1 {
			name = categoryLevelPrefix + cat
			parent = categoriesLevelName
		}
		lvl, ok := solveLevel(name, parent, members[cat], scores, o)
		res.Levels = append(res.Levels, lvl)
		if !ok {
			res.Status = StatusFailed
			res.FailureReason = fmt.Sprintf(
				"level %q consistency ratio %.3f above threshold %.2f after repair",
				lvl.Name, lvl.Consistency.Ratio, o.threshold)
			return res, nil
		}
		for k, id := range members[cat] {
			res.GlobalWeights[id] = catShare[cat] * lvl.Weights[k]
		}
	}

	res.Criteria = make([]Criterion, len(active))
	copy(res.Criteria, active)
	for i := range res.Criteria {
		res.Criteria[i].GlobalWeight = res.GlobalWeights[res.Criteria[i].ID]
	}

	ids := make([]string, len(active))
	globalVec := make([]float64, len(active))
	for i, cr := range active {
		ids[i] = cr.ID
		globalVec[i] = res.GlobalWeights[cr.ID]
	}
	effItems, coverage := effectiveItems(items, active)
	ranking, err := rank.Items(effItems, ids, globalVec)
	if err != nil {
		return nil, fmt.Errorf("Integrate: %w", err)
	}
	res.Ranking = ranking

	res.AchievedRatio = worstRatio(res.Levels)
	res.Quality = qualityConsistencyShare*acceptableFraction(res.Levels) + qualityCoverageShare*coverage
	res.Reconciliation = reconcile(effItems, ids, externalWeights(cats, members, scores, catShare, catScores), ranking, o.topK)

	return res, nil
}

// categorize splits the active criteria into categories, preserving
// configuration order for both categories and members.
func categorize(active []Criterion) ([]string, map[string][]string) {
	var cats []string
	members := make(map[string][]string)
	for _, cr := range active {
		cat := cr.category()
		if _, seen := members[cat]; !seen {
			cats = append(cats, cat)
		}
		members[cat] = append(members[cat], cr.ID)
	}

	return cats, members
}

// categoryShares resolves the top-level weight of each category: 1.0 for
// a flat hierarchy, the pinned CategoryWeights when configured, or a
// solved "categories" level over mean member scores otherwise. The mean
// scores are returned for reconciliation reuse.
func categoryShares(cfg Config, cats []string, members map[string][]string, scores map[string]float64, o Options, res *IntegrationResult) (map[string]float64, map[string]float64) {
	share := make(map[string]float64, len(cats))
	catScores := make(map[string]float64, len(cats))
	for _, cat := range cats {
		var sum float64
		for _, id := range members[cat] {
			sum += scores[id]
		}
		catScores[cat] = sum / float64(len(members[cat]))
	}
	if len(cats) == 1 {
		share[cats[0]] = 1

		return share, catScores
	}

	if len(cfg.CategoryWeights) > 0 {
		lvl := Level{
			Name:        categoriesLevelName,
			Members:     cats,
			Weights:     make([]float64, len(cats)),
			Consistency: pairwise.Consistency{Acceptable: true, Threshold: o.threshold},
			Notes:       []string{"category weights pinned by configuration"},
		}
		for i, cat := range cats {
			w, ok := cfg.CategoryWeights[cat]
			if !ok {
				lvl.Notes = append(lvl.Notes, fmt.Sprintf("category %q has no configured weight, using 0", cat))
			}
			lvl.Weights[i] = w
			share[cat] = w
			catScores[cat] = math.Max(w, 0) // pinned shares drive reconciliation too
		}
		res.Levels = append(res.Levels, lvl)

		return share, catScores
	}

	lvl, ok := solveLevel(categoriesLevelName, "", cats, catScores, o)
	res.Levels = append(res.Levels, lvl)
	if !ok {
		res.Status = StatusFailed
		res.FailureReason = fmt.Sprintf(
			"level %q consistency ratio %.3f above threshold %.2f after repair",
			lvl.Name, lvl.Consistency.Ratio, o.threshold)

		return share, catScores
	}
	for i, cat := range cats {
		share[cat] = lvl.Weights[i]
	}

	return share, catScores
}

// solveLevel synthesizes the level matrix from member scores and runs
// the kernel over it: validate, extract, analyze, optionally repair.
// ok is false only when the level stays above threshold and strict mode
// demands termination.
func solveLevel(name, parent string, memberIDs []string, scores map[string]float64, o Options) (Level, bool) {
	lvl := Level{Name: name, Parent: parent, Members: memberIDs}
	if len(memberIDs) == 1 {
		lvl.Weights = []float64{1}
		lvl.Consistency = pairwise.Consistency{Acceptable: true, Threshold: o.threshold}
		lvl.Notes = append(lvl.Notes, "single member, trivial weights")

		return lvl, true
	}

	m, err := MatrixFromScores(memberIDs, scores, o.conversion)
	if err != nil {
		// Scores are pre-checked positive, so synthesis cannot fail here;
		// degrade to uniform weights if it ever does.
		uniform := 1.0 / float64(len(memberIDs))
		lvl.Weights = make([]float64, len(memberIDs))
		for i := range lvl.Weights {
			lvl.Weights[i] = uniform
		}
		lvl.Consistency = pairwise.Consistency{Ratio: 1, Threshold: o.threshold, Degenerate: true}
		lvl.Notes = append(lvl.Notes, fmt.Sprintf("matrix synthesis failed (%v), uniform fallback", err))

		return lvl, !o.strict
	}
	lvl.Matrix = m

	if report, verr := pairwise.Validate(m, o.kernel...); verr == nil {
		lvl.Notes = append(lvl.Notes, report.Issues...)
	}

	w, err := pairwise.Weights(m, o.extraction, o.kernel...)
	if err != nil {
		lvl.Weights = make([]float64, len(memberIDs))
		uniform := 1.0 / float64(len(memberIDs))
		for i := range lvl.Weights {
			lvl.Weights[i] = uniform
		}
		lvl.Consistency = pairwise.Consistency{Ratio: 1, Threshold: o.threshold, Degenerate: true}
		lvl.Notes = append(lvl.Notes, fmt.Sprintf("weight extraction failed (%v), uniform fallback", err))

		return lvl, !o.strict
	}
	lvl.Weights = w
	lvl.Consistency = pairwise.Analyze(m, w, o.kernel...)

	if !lvl.Consistency.Acceptable && o.repair {
		if rep, rerr := pairwise.Repair(m, o.extraction, o.kernel...); rerr == nil && rep.Improved {
			lvl.Matrix = rep.Repaired
			lvl.Weights = rep.Weights
			lvl.Consistency = rep.Final
			lvl.Repaired = true
			lvl.Notes = append(lvl.Notes, fmt.Sprintf("repaired in %d steps, CR %.3f → %.3f",
				len(rep.Steps), rep.Initial.Ratio, rep.Final.Ratio))
		}
	}
	if !lvl.Consistency.Acceptable && o.strict {
		return lvl, false
	}

	return lvl, true
}

// effectiveItems rekeys raw item scores from data-source keys onto
// criterion ids, applying each criterion's normalization and direction
// flag. Returns the transformed items plus the score coverage fraction.
func effectiveItems(items []rank.Item, criteria []Criterion) ([]rank.Item, float64) {
	eff := make([]rank.Item, len(items))
	for i := range items {
		eff[i] = rank.Item{ID: items[i].ID, Scores: make(map[string]float64, len(criteria))}
	}
	if len(items) == 0 || len(criteria) == 0 {
		return eff, 0
	}

	var present int
	for _, cr := range criteria {
		raw := make([]float64, 0, len(items))
		has := make([]bool, len(items))
		for i := range items {
			if v, ok := items[i].Scores[cr.DataSource]; ok {
				raw = append(raw, v)
				has[i] = true
				present++
			}
		}
		norm := newNormalizer(cr.Normalization, raw)
		for i := range items {
			if !has[i] {
				continue
			}
			v := norm(items[i].Scores[cr.DataSource])
			if !cr.HigherIsBetter {
				v = invertNormalized(cr.Normalization, v)
			}
			eff[i].Scores[cr.ID] = v
		}
	}
	coverage := float64(present) / float64(len(items)*len(criteria))

	return eff, coverage
}

// normalizer maps one raw criterion value onto its normalized form.
type normalizer func(float64) float64

// newNormalizer builds the per-criterion value transform from the
// observed sample. Degenerate samples (zero spread) map to a constant.
func newNormalizer(method string, sample []float64) normalizer {
	switch strings.ToLower(strings.TrimSpace(method)) {
	case "minmax":
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, v := range sample {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		if len(sample) == 0 || hi == lo {
			return func(float64) float64 { return 0.5 }
		}
		span := hi - lo
		return func(v float64) float64 { return (v - lo) / span }
	case "zscore":
		n := float64(len(sample))
		if n < 2 {
			return func(float64) float64 { return 0 }
		}
		var mean float64
		for _, v := range sample {
			mean += v
		}
		mean /= n
		var variance float64
		for _, v := range sample {
			d := v - mean
			variance += d * d
		}
		std := math.Sqrt(variance / n)
		if std == 0 {
			return func(float64) float64 { return 0 }
		}
		return func(v float64) float64 { return (v - mean) / std }
	default:
		return func(v float64) float64 { return v }
	}
}

// invertNormalized flips a normalized value for lower-is-better
// criteria: minmax reflects inside [0,1], everything else negates.
func invertNormalized(method string, v float64) float64 {
	if strings.EqualFold(strings.TrimSpace(method), "minmax") {
		return 1 - v
	}

	return -v
}

// externalWeights composes the reference weight vector straight from the
// normalized scores, bypassing the AHP kernel: the same multiplicative
// composition, with each level's weights replaced by score shares.
func externalWeights(cats []string, members map[string][]string, scores map[string]float64, catShare, catScores map[string]float64) map[string]float64 {
	ext := make(map[string]float64)
	var catTotal float64
	for _, cat := range cats {
		catTotal += catScores[cat]
	}
	for _, cat := range cats {
		top := catShare[cat]
		if len(cats) > 1 && catTotal > 0 {
			top = catScores[cat] / catTotal
		}
		if len(cats) == 1 {
			top = 1
		}
		var memberTotal float64
		for _, id := range members[cat] {
			memberTotal += scores[id]
		}
		for _, id := range members[cat] {
			if memberTotal > 0 {
				ext[id] = top * scores[id] / memberTotal
			}
		}
	}

	return ext
}

// reconcile compares the AHP-composed ranking against the ranking the
// raw scores imply: Pearson over the composite score vectors, Kendall's
// τ and top-K overlap over the orderings.
func reconcile(effItems []rank.Item, ids []string, extWeights map[string]float64, ahp rank.Ranking, topK int) Reconciliation {
	extVec := make([]float64, len(ids))
	for i, id := range ids {
		extVec[i] = extWeights[id]
	}
	ext, err := rank.Items(effItems, ids, extVec)
	if err != nil || len(ext) == 0 {
		return Reconciliation{}
	}

	ahpByID := make(map[string]float64, len(ahp))
	for _, e := range ahp {
		ahpByID[e.ItemID] = e.Score
	}
	itemIDs := make([]string, 0, len(ext))
	for _, e := range ext {
		itemIDs = append(itemIDs, e.ItemID)
	}
	sort.Strings(itemIDs)
	extByID := make(map[string]float64, len(ext))
	for _, e := range ext {
		extByID[e.ItemID] = e.Score
	}
	x := make([]float64, len(itemIDs))
	y := make([]float64, len(itemIDs))
	for i, id := range itemIDs {
		x[i] = ahpByID[id]
		y[i] = extByID[id]
	}

	return Reconciliation{
		Pearson:       rank.Pearson(x, y),
		KendallTau:    rank.KendallTau(ahp.IDs(), ext.IDs()),
		TopKAgreement: rank.TopNOverlap(ahp.IDs(), ext.IDs(), topK),
	}
}

// worstRatio returns the highest consistency ratio across levels.
func worstRatio(levels []Level) float64 {
	var worst float64
	for _, l := range levels {
		worst = math.Max(worst, l.Consistency.Ratio)
	}

	return worst
}

// acceptableFraction is the share of levels that cleared the threshold.
func acceptableFraction(levels []Level) float64 {
	if len(levels) == 0 {
		return 0
	}
	var ok int
	for _, l := range levels {
		if l.Consistency.Acceptable {
			ok++
		}
	}

	return float64(ok) / float64(len(levels))
}
