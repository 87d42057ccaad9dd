package hierarchy_test

import (
	"testing"

	"github.com/katalvlaran/ahpkit/hierarchy"
	"github.com/katalvlaran/ahpkit/pairwise"
	"github.com/katalvlaran/ahpkit/rank"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatConfig() hierarchy.Config {
	return hierarchy.Config{Criteria: []hierarchy.Criterion{
		{ID: "roi", DataSource: "m_roi", HigherIsBetter: true},
		{ID: "risk", DataSource: "m_risk", HigherIsBetter: true},
		{ID: "effort", DataSource: "m_effort", HigherIsBetter: true},
	}}
}

func flatItems() []rank.Item {
	return []rank.Item{
		{ID: "i1", Scores: map[string]float64{"m_roi": 0.9, "m_risk": 0.8, "m_effort": 0.7}},
		{ID: "i2", Scores: map[string]float64{"m_roi": 0.5, "m_risk": 0.5, "m_effort": 0.5}},
		{ID: "i3", Scores: map[string]float64{"m_roi": 0.2, "m_risk": 0.1, "m_effort": 0.4}},
	}
}

// TestIntegrate_FlatPerfectReconciliation: a flat hierarchy synthesized
// from clean score ratios reconstructs the score-implied ranking
// exactly — τ = 1 against the source signal.
func TestIntegrate_FlatPerfectReconciliation(t *testing.T) {
	scores := map[string]float64{"roi": 0.5, "risk": 0.3, "effort": 0.2}

	res, err := hierarchy.Integrate(flatConfig(), scores, flatItems())
	require.NoError(t, err)

	assert.Equal(t, hierarchy.StatusCompleted, res.Status)
	require.Len(t, res.Levels, 1)
	assert.Equal(t, "criteria", res.Levels[0].Name)
	assert.True(t, res.Levels[0].Consistency.Acceptable)

	var sum float64
	for _, w := range res.GlobalWeights {
		sum += w
	}
	assert.InDelta(t, 1.0, sum, 1e-6, "leaf weights sum to 1")
	assert.InDelta(t, 0.5, res.GlobalWeights["roi"], 1e-6, "ratio matrices reproduce the scores")
	assert.InDelta(t, 0.3, res.GlobalWeights["risk"], 1e-6)

	assert.Equal(t, []string{"i1", "i2", "i3"}, res.Ranking.IDs())
	assert.Equal(t, 1.0, res.Reconciliation.KendallTau, "perfectly consistent hierarchy reconciles exactly")
	assert.InDelta(t, 1.0, res.Reconciliation.Pearson, 1e-9)
	assert.Equal(t, 1.0, res.Reconciliation.TopKAgreement)
	assert.InDelta(t, 1.0, res.Quality, 1e-9, "acceptable level + full coverage")
	assert.Less(t, res.AchievedRatio, 0.01)
	assert.Equal(t, pairwise.DefaultConsistencyThreshold, res.TargetRatio)
}

func categorizedConfig() hierarchy.Config {
	return hierarchy.Config{Criteria: []hierarchy.Criterion{
		{ID: "a", Category: "dev", DataSource: "da", HigherIsBetter: true},
		{ID: "b", Category: "dev", DataSource: "db", HigherIsBetter: true},
		{ID: "c", Category: "ops", DataSource: "dc", HigherIsBetter: true},
		{ID: "d", Category: "ops", DataSource: "dd", HigherIsBetter: true},
	}}
}

func categorizedItems() []rank.Item {
	return []rank.Item{
		{ID: "x", Scores: map[string]float64{"da": 1, "db": 0.5, "dc": 0.8, "dd": 0.2}},
		{ID: "y", Scores: map[string]float64{"da": 0.3, "db": 0.9, "dc": 0.1, "dd": 0.6}},
	}
}

// TestIntegrate_PinnedCategoryWeights: configured category weights are
// taken as-is and multiplied into the leaf weights.
func TestIntegrate_PinnedCategoryWeights(t *testing.T) {
	cfg := categorizedConfig()
	cfg.CategoryWeights = map[string]float64{"dev": 0.6, "ops": 0.4}
	scores := map[string]float64{"a": 3, "b": 1, "c": 1, "d": 1}

	res, err := hierarchy.Integrate(cfg, scores, categorizedItems())
	require.NoError(t, err)
	require.Equal(t, hierarchy.StatusCompleted, res.Status)

	require.Len(t, res.Levels, 3)
	top := res.Levels[0]
	assert.Equal(t, "categories", top.Name)
	assert.Equal(t, []string{"dev", "ops"}, top.Members)
	assert.Nil(t, top.Matrix, "pinned level synthesizes no matrix")
	assert.NotEmpty(t, top.Notes)
	assert.Equal(t, "criteria_dev", res.Levels[1].Name)
	assert.Equal(t, "categories", res.Levels[1].Parent)

	// dev locals 0.75/0.25, ops locals 0.5/0.5.
	assert.InDelta(t, 0.6*0.75, res.GlobalWeights["a"], 1e-6)
	assert.InDelta(t, 0.6*0.25, res.GlobalWeights["b"], 1e-6)
	assert.InDelta(t, 0.4*0.5, res.GlobalWeights["c"], 1e-6)
	assert.InDelta(t, 0.4*0.5, res.GlobalWeights["d"], 1e-6)

	for _, cr := range res.Criteria {
		assert.InDelta(t, res.GlobalWeights[cr.ID], cr.GlobalWeight, 1e-12, "criterion %s carries its composed weight", cr.ID)
	}
}

// TestIntegrate_DerivedCategoryShares: without pinned weights the
// "categories" level is solved from mean member scores.
func TestIntegrate_DerivedCategoryShares(t *testing.T) {
	scores := map[string]float64{"a": 3, "b": 1, "c": 1, "d": 1}

	res, err := hierarchy.Integrate(categorizedConfig(), scores, categorizedItems())
	require.NoError(t, err)
	require.Equal(t, hierarchy.StatusCompleted, res.Status)

	top := res.Levels[0]
	require.Equal(t, "categories", top.Name)
	assert.NotNil(t, top.Matrix, "derived level carries its matrix")
	// Mean scores: dev 2, ops 1 → shares 2/3, 1/3.
	assert.InDelta(t, 2.0/3, top.Weights[0], 1e-6)
	assert.InDelta(t, 1.0/3, top.Weights[1], 1e-6)

	assert.InDelta(t, 2.0/3*0.75, res.GlobalWeights["a"], 1e-6)
	var sum float64
	for _, w := range res.GlobalWeights {
		sum += w
	}
	assert.InDelta(t, 1.0, sum, 1e-6)
}

// TestIntegrate_SingletonCategory: a one-criterion category gets
// trivial weights and a note instead of a 1×1 matrix run.
func TestIntegrate_SingletonCategory(t *testing.T) {
	cfg := hierarchy.Config{Criteria: []hierarchy.Criterion{
		{ID: "a", Category: "dev", DataSource: "da", HigherIsBetter: true},
		{ID: "b", Category: "dev", DataSource: "db", HigherIsBetter: true},
		{ID: "c", Category: "solo", DataSource: "dc", HigherIsBetter: true},
	}}
	scores := map[string]float64{"a": 2, "b": 1, "c": 1}

	res, err := hierarchy.Integrate(cfg, scores, nil)
	require.NoError(t, err)
	require.Equal(t, hierarchy.StatusCompleted, res.Status)

	var solo *hierarchy.Level
	for i := range res.Levels {
		if res.Levels[i].Name == "criteria_solo" {
			solo = &res.Levels[i]
		}
	}
	require.NotNil(t, solo)
	assert.Equal(t, []float64{1}, solo.Weights)
	assert.Nil(t, solo.Matrix)
	assert.NotEmpty(t, solo.Notes)
}

// clippedScores produce the maximally inconsistent (9,9,9) matrix: every
// ratio saturates the Saaty band.
var clippedScores = map[string]float64{"roi": 1000, "risk": 1, "effort": 0.001}

// TestIntegrate_StrictFailsOnUnrepairableLevel: strict mode turns an
// over-threshold level into a failed run.
func TestIntegrate_StrictFailsOnUnrepairableLevel(t *testing.T) {
	res, err := hierarchy.Integrate(flatConfig(), clippedScores, flatItems(),
		hierarchy.WithStrict(), hierarchy.WithoutRepair())
	require.NoError(t, err, "failure is a terminal state, not a Go error")

	assert.Equal(t, hierarchy.StatusFailed, res.Status)
	assert.NotEmpty(t, res.FailureReason)
	assert.Empty(t, res.Ranking)
}

// TestIntegrate_LenientCarriesFlaggedResult: without strict mode the
// same level degrades the quality score but still produces a ranking.
func TestIntegrate_LenientCarriesFlaggedResult(t *testing.T) {
	res, err := hierarchy.Integrate(flatConfig(), clippedScores, flatItems(),
		hierarchy.WithoutRepair())
	require.NoError(t, err)

	assert.Equal(t, hierarchy.StatusCompleted, res.Status)
	assert.Greater(t, res.AchievedRatio, 0.10, "the saturated matrix stays inconsistent")
	assert.InDelta(t, 0.4, res.Quality, 1e-9, "no acceptable level, full coverage")
	assert.NotEmpty(t, res.Ranking)
}

// TestIntegrate_RepairKicksIn: with repair enabled the saturated level
// is nudged and the run records it.
func TestIntegrate_RepairKicksIn(t *testing.T) {
	lenient, err := hierarchy.Integrate(flatConfig(), clippedScores, flatItems(),
		hierarchy.WithoutRepair())
	require.NoError(t, err)

	res, err := hierarchy.Integrate(flatConfig(), clippedScores, flatItems())
	require.NoError(t, err)
	require.Equal(t, hierarchy.StatusCompleted, res.Status)

	lvl := res.Levels[0]
	assert.True(t, lvl.Repaired, "inconsistent level triggers automatic repair")
	assert.Less(t, lvl.Consistency.Ratio, lenient.AchievedRatio, "repair strictly lowers the CR")
}

// TestIntegrate_MissingScoreIsStructural: every active criterion needs
// a positive score before any level runs.
func TestIntegrate_MissingScoreIsStructural(t *testing.T) {
	_, err := hierarchy.Integrate(flatConfig(), map[string]float64{"roi": 1, "risk": 1}, flatItems())
	assert.ErrorIs(t, err, pairwise.ErrNonPositiveScore)

	_, err = hierarchy.Integrate(flatConfig(), map[string]float64{"roi": 1, "risk": 1, "effort": 0}, flatItems())
	assert.ErrorIs(t, err, pairwise.ErrNonPositiveScore)
}

// TestIntegrate_InvalidConfigPropagates runs validation up front.
func TestIntegrate_InvalidConfigPropagates(t *testing.T) {
	_, err := hierarchy.Integrate(hierarchy.Config{}, nil, nil)
	assert.ErrorIs(t, err, hierarchy.ErrTooFewCriteria)
}

// TestIntegrate_LowerIsBetterMinmax: a lower-is-better criterion under
// minmax normalization inverts its contribution.
func TestIntegrate_LowerIsBetterMinmax(t *testing.T) {
	cfg := hierarchy.Config{Criteria: []hierarchy.Criterion{
		{ID: "x", DataSource: "dx", HigherIsBetter: true},
		{ID: "y", DataSource: "dy", Normalization: "minmax"},
	}}
	scores := map[string]float64{"x": 1, "y": 1}
	items := []rank.Item{
		{ID: "cheap", Scores: map[string]float64{"dx": 0.5, "dy": 0}},
		{ID: "pricey", Scores: map[string]float64{"dx": 0.5, "dy": 10}},
	}

	res, err := hierarchy.Integrate(cfg, scores, items)
	require.NoError(t, err)
	assert.Equal(t, []string{"cheap", "pricey"}, res.Ranking.IDs(), "low dy wins when y is lower-is-better")
}

// TestIntegrate_CoverageLowersQuality: a missing item field shows up in
// the quality blend.
func TestIntegrate_CoverageLowersQuality(t *testing.T) {
	cfg := hierarchy.Config{Criteria: []hierarchy.Criterion{
		{ID: "x", DataSource: "dx", HigherIsBetter: true},
		{ID: "y", DataSource: "dy", HigherIsBetter: true},
	}}
	scores := map[string]float64{"x": 2, "y": 1}
	items := []rank.Item{
		{ID: "full", Scores: map[string]float64{"dx": 1, "dy": 1}},
		{ID: "partial", Scores: map[string]float64{"dx": 0.5}},
	}

	res, err := hierarchy.Integrate(cfg, scores, items)
	require.NoError(t, err)
	// Consistent level (0.6) + 3 of 4 fields covered (0.4 · 0.75).
	assert.InDelta(t, 0.9, res.Quality, 1e-9)
}
