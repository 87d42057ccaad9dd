package hierarchy

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/ahpkit/pairwise"
)

var (
	// ErrTooFewCriteria indicates fewer than 2 active criteria.
	ErrTooFewCriteria = errors.New("hierarchy: need at least 2 active criteria")

	// ErrDuplicateDataSource indicates two criteria sharing a data-source key.
	ErrDuplicateDataSource = errors.New("hierarchy: duplicate data-source key")

	// ErrCategoryWeightSum indicates explicit category weights not summing to 1.
	ErrCategoryWeightSum = errors.New("hierarchy: category weights must sum to 1")

	// ErrUnknownMethod indicates an unrecognized extraction, conversion or
	// normalization method name in the configuration.
	ErrUnknownMethod = errors.New("hierarchy: unknown method name")
)

// weightSumTolerance bounds the allowed drift of explicit category
// weights from 1.
const weightSumTolerance = 1e-6

// DefaultCategory labels criteria whose configuration leaves the
// category empty.
const DefaultCategory = "general"

// Criterion is one leaf of the decision hierarchy.
//
// Weight is the local priority within the criterion's sibling set;
// GlobalWeight is composed across the hierarchy and is always
// recomputed by Integrate — any input value is ignored.
// DataSource is the key used to look the criterion's value up in
// caller-supplied item score maps; the engine attaches no meaning to it.
type Criterion struct {
	ID             string  `yaml:"id" json:"id"`
	Name           string  `yaml:"name,omitempty" json:"name,omitempty"`
	Category       string  `yaml:"category,omitempty" json:"category,omitempty"`
	Weight         float64 `yaml:"weight,omitempty" json:"weight,omitempty"`
	GlobalWeight   float64 `yaml:"-" json:"global_weight"`
	DataSource     string  `yaml:"data_source" json:"data_source"`
	HigherIsBetter bool    `yaml:"higher_is_better" json:"higher_is_better"`
	Normalization  string  `yaml:"normalization,omitempty" json:"normalization,omitempty"`
	Disabled       bool    `yaml:"disabled,omitempty" json:"disabled,omitempty"`
}

// category resolves the effective category, defaulting empty to
// DefaultCategory.
func (c Criterion) category() string {
	if c.Category == "" {
		return DefaultCategory
	}

	return c.Category
}

// Config is the criteria configuration an integration run consumes.
//
// CategoryWeights, when present, pins the category-level priorities
// instead of deriving them from scores; the values must sum to 1.
// Extraction and Conversion are optional method names resolved against
// pairwise.ParseMethod and ParseConversion; empty means the run default.
type Config struct {
	Criteria        []Criterion        `yaml:"criteria" json:"criteria"`
	CategoryWeights map[string]float64 `yaml:"category_weights,omitempty" json:"category_weights,omitempty"`
	Extraction      string             `yaml:"extraction,omitempty" json:"extraction,omitempty"`
	Conversion      string             `yaml:"conversion,omitempty" json:"conversion,omitempty"`
}

// ParseConfig decodes a YAML (or JSON, which YAML subsumes) criteria
// configuration and validates it.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("hierarchy: decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Active returns the enabled criteria in configuration order.
func (c Config) Active() []Criterion {
	active := make([]Criterion, 0, len(c.Criteria))
	for _, cr := range c.Criteria {
		if !cr.Disabled {
			active = append(active, cr)
		}
	}

	return active
}

// Validate checks the structural invariants of the configuration:
// at least 2 active criteria, unique non-empty data-source keys,
// explicit category weights summing to 1, and recognizable method names.
func (c Config) Validate() error {
	active := c.Active()
	if len(active) < 2 {
		return ErrTooFewCriteria
	}

	seen := make(map[string]string, len(active))
	for _, cr := range active {
		if cr.DataSource == "" {
			return fmt.Errorf("hierarchy: criterion %q: empty data-source key", cr.ID)
		}
		if prev, dup := seen[cr.DataSource]; dup {
			return fmt.Errorf("%w: %q used by %q and %q", ErrDuplicateDataSource, cr.DataSource, prev, cr.ID)
		}
		seen[cr.DataSource] = cr.ID
		if err := validateNormalization(cr.Normalization); err != nil {
			return fmt.Errorf("criterion %q: %w", cr.ID, err)
		}
	}

	if len(c.CategoryWeights) > 0 {
		var sum float64
		for _, w := range c.CategoryWeights {
			sum += w
		}
		if math.Abs(sum-1) > weightSumTolerance {
			return fmt.Errorf("%w: got %g", ErrCategoryWeightSum, sum)
		}
	}

	if c.Extraction != "" {
		if _, err := pairwise.ParseMethod(c.Extraction); err != nil {
			return fmt.Errorf("%w: extraction %q", ErrUnknownMethod, c.Extraction)
		}
	}
	if c.Conversion != "" {
		if _, err := ParseConversion(c.Conversion); err != nil {
			return err
		}
	}

	return nil
}

// validateNormalization accepts the known per-criterion normalization
// names: empty/none (identity), minmax, zscore.
func validateNormalization(name string) error {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none", "minmax", "zscore":
		return nil
	default:
		return fmt.Errorf("%w: normalization %q", ErrUnknownMethod, name)
	}
}
