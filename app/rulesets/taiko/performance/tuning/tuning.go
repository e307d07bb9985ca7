// Package tuning collects every constant the taiko difficulty calculator can be tuned with.
//
// A Config is a plain value: the calculator copies it on construction, so callers
// can vary it per calculation without touching shared state.
package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SkillConfig parametrises a strain skill
type SkillConfig struct {
	// Multiplier scales every evaluator value before it is added to the strain.
	Multiplier float64 `yaml:"multiplier"`

	// DecayBase is the fraction of strain kept after one second without objects.
	DecayBase float64 `yaml:"decay_base"`
}

type StaminaConfig struct {
	SkillConfig `yaml:",inline"`

	// MonoBonusStart and MonoBonusEnd bound the same-side run index over which the mono length bonus grows.
	MonoBonusStart float64 `yaml:"mono_bonus_start"`
	MonoBonusEnd   float64 `yaml:"mono_bonus_end"`

	// MonoBonus is the bonus reached at MonoBonusEnd.
	MonoBonus float64 `yaml:"mono_bonus"`

	// SingleSideMidpoint is the same-side run index at which single-side strain is halved.
	SingleSideMidpoint float64 `yaml:"single_side_midpoint"`

	// SingleSideWidth controls how sharply single-side strain is damped around the midpoint.
	SingleSideWidth float64 `yaml:"single_side_width"`
}

type GroupingConfig struct {
	// IntervalMargin is the tolerance in ms under which two intervals are considered equal.
	IntervalMargin float64 `yaml:"interval_margin"`

	// MaxRepetitionInterval caps the backwards search for a repeated colour pattern.
	MaxRepetitionInterval int `yaml:"max_repetition_interval"`
}

type ColourPenaltyConfig struct {
	// RatioThreshold is the relative difference under which two rhythm ratios count as consistent.
	RatioThreshold float64 `yaml:"ratio_threshold"`

	// MaxObjectsToCheck bounds the look-back of the consistency check.
	MaxObjectsToCheck int `yaml:"max_objects_to_check"`
}

type RhythmPenaltyConfig struct {
	// IntervalThreshold is the relative difference under which two group intervals repeat.
	IntervalThreshold float64 `yaml:"interval_threshold"`

	// RepeatedPenalty is applied when a repeat is found.
	RepeatedPenalty float64 `yaml:"repeated_penalty"`
}

type AggregateConfig struct {
	DifficultyMultiplier float64 `yaml:"difficulty_multiplier"`

	RhythmWeight  float64 `yaml:"rhythm_weight"`
	ReadingWeight float64 `yaml:"reading_weight"`
	ColourWeight  float64 `yaml:"colour_weight"`
	StaminaWeight float64 `yaml:"stamina_weight"`

	PatternExponent float64 `yaml:"pattern_exponent"`

	StrainLengthBonus float64 `yaml:"strain_length_bonus"`
	StrainLengthStart float64 `yaml:"strain_length_start"`
	StrainLengthEnd   float64 `yaml:"strain_length_end"`

	// FingerCountDivisor reduces stamina peaks on converts and relax, where more fingers are available.
	FingerCountDivisor float64 `yaml:"finger_count_divisor"`

	RatingMultiplier float64 `yaml:"rating_multiplier"`
	RescaleScale     float64 `yaml:"rescale_scale"`
	RescaleDivisor   float64 `yaml:"rescale_divisor"`

	MonoStaminaExponent float64 `yaml:"mono_stamina_exponent"`

	// TopStrainFraction selects the share of object strains averaged by the consistency factor.
	TopStrainFraction float64 `yaml:"top_strain_fraction"`
}

type Config struct {
	// SectionLength is the length in ms of a strain peak section.
	SectionLength float64 `yaml:"section_length"`

	// DecayWeight is the weight ratio between consecutive sorted peaks.
	DecayWeight float64 `yaml:"decay_weight"`

	Rhythm  SkillConfig   `yaml:"rhythm"`
	Reading SkillConfig   `yaml:"reading"`
	Colour  SkillConfig   `yaml:"colour"`
	Stamina StaminaConfig `yaml:"stamina"`

	Grouping      GroupingConfig      `yaml:"grouping"`
	ColourPenalty ColourPenaltyConfig `yaml:"colour_penalty"`
	RhythmPenalty RhythmPenaltyConfig `yaml:"rhythm_penalty"`

	Aggregate AggregateConfig `yaml:"aggregate"`
}

func Default() Config {
	return Config{
		SectionLength: 400,
		DecayWeight:   0.9,
		Rhythm:        SkillConfig{Multiplier: 1.0, DecayBase: 0.4},
		Reading:       SkillConfig{Multiplier: 1.0, DecayBase: 0.4},
		Colour:        SkillConfig{Multiplier: 0.12, DecayBase: 0.8},
		Stamina: StaminaConfig{
			SkillConfig:        SkillConfig{Multiplier: 1.1, DecayBase: 0.4},
			MonoBonusStart:     5,
			MonoBonusEnd:       20,
			MonoBonus:          0.5,
			SingleSideMidpoint: 10,
			SingleSideWidth:    2,
		},
		Grouping: GroupingConfig{
			IntervalMargin:        5,
			MaxRepetitionInterval: 16,
		},
		ColourPenalty: ColourPenaltyConfig{
			RatioThreshold:    0.01,
			MaxObjectsToCheck: 64,
		},
		RhythmPenalty: RhythmPenaltyConfig{
			IntervalThreshold: 0.1,
			RepeatedPenalty:   0.8,
		},
		Aggregate: AggregateConfig{
			DifficultyMultiplier: 0.084375,
			RhythmWeight:         0.750,
			ReadingWeight:        0.100,
			ColourWeight:         0.375,
			StaminaWeight:        0.445,
			PatternExponent:      0.10,
			StrainLengthBonus:    0.15,
			StrainLengthStart:    1000,
			StrainLengthEnd:      1555,
			FingerCountDivisor:   1.5,
			RatingMultiplier:     1.4,
			RescaleScale:         10.43,
			RescaleDivisor:       8,
			MonoStaminaExponent:  5,
			TopStrainFraction:    0.05,
		},
	}
}

// RhythmSkillMultiplier and friends are the per-skill constants applied by the aggregator
func (a AggregateConfig) RhythmSkillMultiplier() float64 {
	return a.RhythmWeight * a.DifficultyMultiplier
}

func (a AggregateConfig) ReadingSkillMultiplier() float64 {
	return a.ReadingWeight * a.DifficultyMultiplier
}

func (a AggregateConfig) ColourSkillMultiplier() float64 {
	return a.ColourWeight * a.DifficultyMultiplier
}

func (a AggregateConfig) StaminaSkillMultiplier() float64 {
	return a.StaminaWeight * a.DifficultyMultiplier
}

// Load reads a YAML file and overlays it on Default.
// Fields absent from the file keep their default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("tuning: read file: %w", err)
	}

	return Parse(data)
}

func Parse(data []byte) (Config, error) {
	cfg := Default()

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("tuning: parse yaml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("tuning: %w", err)
	}

	return cfg, nil
}

// Validate checks the structural constraints the calculator relies on
func (cfg Config) Validate() error {
	if cfg.SectionLength <= 0 {
		return fmt.Errorf("section_length must be positive")
	}

	if cfg.DecayWeight <= 0 || cfg.DecayWeight >= 1 {
		return fmt.Errorf("decay_weight must be in (0, 1)")
	}

	skills := map[string]SkillConfig{
		"rhythm":  cfg.Rhythm,
		"reading": cfg.Reading,
		"colour":  cfg.Colour,
		"stamina": cfg.Stamina.SkillConfig,
	}

	for name, s := range skills {
		if s.Multiplier < 0 {
			return fmt.Errorf("%s.multiplier must not be negative", name)
		}

		if s.DecayBase <= 0 || s.DecayBase > 1 {
			return fmt.Errorf("%s.decay_base must be in (0, 1]", name)
		}
	}

	if cfg.Stamina.MonoBonusEnd <= cfg.Stamina.MonoBonusStart {
		return fmt.Errorf("stamina.mono_bonus_end must be greater than mono_bonus_start")
	}

	if cfg.Stamina.SingleSideWidth <= 0 {
		return fmt.Errorf("stamina.single_side_width must be positive")
	}

	if cfg.Grouping.IntervalMargin < 0 {
		return fmt.Errorf("grouping.interval_margin must not be negative")
	}

	if cfg.Grouping.MaxRepetitionInterval < 1 {
		return fmt.Errorf("grouping.max_repetition_interval must be at least 1")
	}

	if cfg.ColourPenalty.MaxObjectsToCheck < 1 {
		return fmt.Errorf("colour_penalty.max_objects_to_check must be at least 1")
	}

	if cfg.Aggregate.StrainLengthEnd <= cfg.Aggregate.StrainLengthStart {
		return fmt.Errorf("aggregate.strain_length_end must be greater than strain_length_start")
	}

	if cfg.Aggregate.FingerCountDivisor <= 0 {
		return fmt.Errorf("aggregate.finger_count_divisor must be positive")
	}

	if cfg.Aggregate.RescaleDivisor <= 0 {
		return fmt.Errorf("aggregate.rescale_divisor must be positive")
	}

	if cfg.Aggregate.TopStrainFraction <= 0 || cfg.Aggregate.TopStrainFraction > 1 {
		return fmt.Errorf("aggregate.top_strain_fraction must be in (0, 1]")
	}

	return nil
}
