package sensitivity

import (
	"math"

	"github.com/katalvlaran/ahpkit/pairwise"
)

// DEFAULTS - single source of truth for zero-value behavior.
const (
	// DefaultMagnitude is the base relative perturbation applied to a
	// criterion weight (each probe uses ±½ and ±1 of it).
	DefaultMagnitude = 0.15

	// DefaultTopN is the prefix length used by overlap measurements.
	DefaultTopN = 5

	// DefaultSignificanceFloor filters critical comparisons: only cells
	// whose impact reaches the floor are reported.
	DefaultSignificanceFloor = 0.1

	// DefaultCellPerturbation is the relative step applied to a single
	// comparison cell when probing critical judgments.
	DefaultCellPerturbation = 0.10

	// maxCriticalComparisons caps the critical-comparison report.
	maxCriticalComparisons = 10
)

// Internal panic messages (no magic strings).
const (
	panicMagnitudeInvalid = "sensitivity: WithMagnitude: magnitude must be finite, >= 0"
	panicTopNInvalid      = "sensitivity: WithTopN: n must be >= 1"
	panicFloorInvalid     = "sensitivity: WithSignificanceFloor: floor must be finite, >= 0"
	panicCellStepInvalid  = "sensitivity: WithCellPerturbation: step must be finite, > 0, < 1"
)

// Option mutates internal options. Safe to apply repeatedly (idempotent).
// Constructors panic only on nonsensical values (programmer error).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
type Options struct {
	magnitude  float64           // relative weight perturbation base
	topN       int               // overlap prefix length
	floor      float64           // significance floor for critical cells
	cellStep   float64           // relative cell perturbation
	extraction pairwise.Method   // weight extraction for cell probes
	kernel     []pairwise.Option // forwarded to the pairwise kernel
}

// WithMagnitude sets the base perturbation magnitude. Zero is allowed
// (degenerates to the identity probe). Panics on negative or non-finite.
func WithMagnitude(m float64) Option {
	if math.IsNaN(m) || math.IsInf(m, 0) || m < 0 {
		panic(panicMagnitudeInvalid)
	}

	return func(o *Options) { o.magnitude = m }
}

// WithTopN sets the overlap prefix length. Panics when n < 1.
func WithTopN(n int) Option {
	if n < 1 {
		panic(panicTopNInvalid)
	}

	return func(o *Options) { o.topN = n }
}

// WithSignificanceFloor sets the minimum impact a comparison cell must
// reach to be reported. Panics on negative or non-finite.
func WithSignificanceFloor(f float64) Option {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		panic(panicFloorInvalid)
	}

	return func(o *Options) { o.floor = f }
}

// WithCellPerturbation sets the relative step applied to comparison
// cells. Panics unless 0 < step < 1.
func WithCellPerturbation(step float64) Option {
	if math.IsNaN(step) || step <= 0 || step >= 1 {
		panic(panicCellStepInvalid)
	}

	return func(o *Options) { o.cellStep = step }
}

// WithExtraction selects the weight-extraction method used when a cell
// probe re-derives weights from the perturbed matrix.
func WithExtraction(m pairwise.Method) Option {
	return func(o *Options) { o.extraction = m }
}

// WithKernelOptions forwards pairwise options (tolerance, iteration
// caps, random-index table) to the underlying weight extraction.
func WithKernelOptions(opts ...pairwise.Option) Option {
	return func(o *Options) { o.kernel = append(o.kernel, opts...) }
}

// gatherOptions applies user-provided Option setters on top of defaults.
func gatherOptions(user ...Option) Options {
	o := Options{
		magnitude:  DefaultMagnitude,
		topN:       DefaultTopN,
		floor:      DefaultSignificanceFloor,
		cellStep:   DefaultCellPerturbation,
		extraction: pairwise.Eigenvalue,
	}
	for _, set := range user {
		set(&o)
	}

	return o
}
