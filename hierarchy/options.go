package hierarchy

import (
	"math"

	"github.com/katalvlaran/ahpkit/pairwise"
)

// DEFAULTS - single source of truth for zero-value behavior.
const (
	// DefaultTopK is the prefix length used by reconciliation agreement.
	DefaultTopK = 5

	// qualityConsistencyShare and qualityCoverageShare blend per-level
	// consistency and score coverage into the integration quality score.
	qualityConsistencyShare = 0.6
	qualityCoverageShare    = 0.4
)

// Internal panic messages (no magic strings).
const (
	panicTopKInvalid      = "hierarchy: WithTopK: k must be >= 1"
	panicThresholdInvalid = "hierarchy: WithConsistencyThreshold: threshold must be finite, > 0"
)

// Option mutates internal options. Safe to apply repeatedly (idempotent).
// Constructors panic only on nonsensical values (programmer error).
type Option func(*Options)

// Options stores the effective configuration after applying the Config's
// method names and the Option setters (setters win).
type Options struct {
	extraction pairwise.Method
	conversion Conversion
	threshold  float64
	repair     bool
	strict     bool
	topK       int
	kernel     []pairwise.Option
}

// WithExtraction overrides the weight-extraction method for every level.
func WithExtraction(m pairwise.Method) Option {
	return func(o *Options) { o.extraction = m }
}

// WithConversion overrides the score-to-matrix conversion for every level.
func WithConversion(c Conversion) Option {
	return func(o *Options) { o.conversion = c }
}

// WithConsistencyThreshold sets the CR bound a level must clear.
// Panics when t is non-finite or <= 0.
func WithConsistencyThreshold(t float64) Option {
	if math.IsNaN(t) || math.IsInf(t, 0) || t <= 0 {
		panic(panicThresholdInvalid)
	}

	return func(o *Options) { o.threshold = t }
}

// WithoutRepair disables automatic consistency repair of level matrices.
func WithoutRepair() Option {
	return func(o *Options) { o.repair = false }
}

// WithStrict makes an unrepairable level fatal: the run terminates
// "failed" instead of carrying a flagged low-confidence result.
func WithStrict() Option {
	return func(o *Options) { o.strict = true }
}

// WithTopK sets the reconciliation agreement prefix. Panics when k < 1.
func WithTopK(k int) Option {
	if k < 1 {
		panic(panicTopKInvalid)
	}

	return func(o *Options) { o.topK = k }
}

// WithKernelOptions forwards pairwise options (tolerance, iteration
// caps, random-index table) to every kernel call of the run.
func WithKernelOptions(opts ...pairwise.Option) Option {
	return func(o *Options) { o.kernel = append(o.kernel, opts...) }
}

// gatherOptions resolves defaults, then the Config's method names, then
// the caller's setters (last writer wins). Config names are assumed
// pre-validated by Config.Validate.
func gatherOptions(cfg Config, user ...Option) Options {
	o := Options{
		extraction: pairwise.Eigenvalue,
		conversion: ScoreRatio,
		threshold:  pairwise.DefaultConsistencyThreshold,
		repair:     true,
		topK:       DefaultTopK,
	}
	if cfg.Extraction != "" {
		if m, err := pairwise.ParseMethod(cfg.Extraction); err == nil {
			o.extraction = m
		}
	}
	if cfg.Conversion != "" {
		if c, err := ParseConversion(cfg.Conversion); err == nil {
			o.conversion = c
		}
	}
	for _, set := range user {
		set(&o)
	}
	o.kernel = append(o.kernel, pairwise.WithConsistencyThreshold(o.threshold))

	return o
}
