package storage

import (
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/jlibgo/jlib/internal/utils"
)

const (
	DEFAULT_INITIAL_CAPACITY        = 8
	DEFAULT_GROWTH_FACTOR           = 2.0
	DEFAULT_SHRINK_DIVIDER          = 4
	DEFAULT_MIN_SHRINKABLE_CAPACITY = 64
)

// Config configures a LinearIndexStorage. The zero value of a field selects its default,
// except for ShrinkDivider where a negative value disables shrinking.
type Config struct {
	Strategy        StrategyKind `yaml:"strategy" json:"strategy"`
	InitialCapacity int          `yaml:"initial-capacity" json:"initialCapacity"`
	GrowthFactor    float64      `yaml:"growth-factor" json:"growthFactor"`

	// the buffer is compacted when occupied * ShrinkDivider < capacity.
	ShrinkDivider         int `yaml:"shrink-divider" json:"shrinkDivider"`
	MinShrinkableCapacity int `yaml:"min-shrinkable-capacity" json:"minShrinkableCapacity"`
}

func DefaultConfig() Config {
	return Config{
		Strategy:              TailCapacity,
		InitialCapacity:       DEFAULT_INITIAL_CAPACITY,
		GrowthFactor:          DEFAULT_GROWTH_FACTOR,
		ShrinkDivider:         DEFAULT_SHRINK_DIVIDER,
		MinShrinkableCapacity: DEFAULT_MIN_SHRINKABLE_CAPACITY,
	}
}

// LoadConfig parses a YAML document, fields absent from the document keep their default value.
func LoadConfig(data []byte) (Config, error) {
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (c Config) Validate() error {
	var errs []error

	switch c.Strategy {
	case "", TailCapacity, HeadCapacity, SplitCapacity:
	default:
		errs = append(errs, fmt.Errorf("unknown capacity strategy %q", c.Strategy))
	}

	if c.InitialCapacity < 0 {
		errs = append(errs, fmt.Errorf("negative initial capacity: %d", c.InitialCapacity))
	}

	if c.GrowthFactor != 0 && c.GrowthFactor <= 1 {
		errs = append(errs, fmt.Errorf("growth factor should be greater than 1: %v", c.GrowthFactor))
	}

	effective := c.withDefaults()
	if effective.ShrinkDivider > 0 && float64(effective.ShrinkDivider) <= effective.GrowthFactor {
		errs = append(errs, fmt.Errorf("shrink divider (%d) should be greater than the growth factor (%v)",
			effective.ShrinkDivider, effective.GrowthFactor))
	}

	if c.MinShrinkableCapacity < 0 {
		errs = append(errs, fmt.Errorf("negative min shrinkable capacity: %d", c.MinShrinkableCapacity))
	}

	if err := utils.CombineErrors(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func (c Config) withDefaults() Config {
	defaults := DefaultConfig()

	if c.Strategy == "" {
		c.Strategy = defaults.Strategy
	}
	if c.InitialCapacity == 0 {
		c.InitialCapacity = defaults.InitialCapacity
	}
	if c.GrowthFactor == 0 {
		c.GrowthFactor = defaults.GrowthFactor
	}
	if c.ShrinkDivider == 0 {
		c.ShrinkDivider = defaults.ShrinkDivider
	}
	if c.MinShrinkableCapacity == 0 {
		c.MinShrinkableCapacity = defaults.MinShrinkableCapacity
	}
	return c
}
