package api

type Attributes struct {
	// Total Star rating, visible on osu!'s beatmap page
	StarRating float64 `yaml:"star_rating"`

	// Sub-ratings scaled so that their sum is StarRating
	Rhythm  float64 `yaml:"rhythm"`
	Reading float64 `yaml:"reading"`
	Colour  float64 `yaml:"colour"`
	Stamina float64 `yaml:"stamina"`

	// Mechanical is Colour + Stamina
	Mechanical float64 `yaml:"mechanical"`

	// MonoStaminaFactor is close to 1 on charts made of single colour streams, needed for PP
	MonoStaminaFactor float64 `yaml:"mono_stamina_factor"`

	// ConsistencyFactor measures how evenly difficulty is spread over the chart, needed for PP
	ConsistencyFactor float64 `yaml:"consistency_factor"`

	StaminaTopStrains float64 `yaml:"stamina_top_strains"`

	// Hit windows in rate-adjusted milliseconds
	GreatHitWindow float64 `yaml:"great_hit_window"`
	OkHitWindow    float64 `yaml:"ok_hit_window"`

	ObjectCount int `yaml:"object_count"`
	Hits        int `yaml:"hits"`
	DrumRolls   int `yaml:"drum_rolls"`
	Swells      int `yaml:"swells"`
	MaxCombo    int `yaml:"max_combo"`
}

// StrainPeaks contains per-section peaks of every skill, as well as peaks passed through star rating formula
type StrainPeaks struct {
	Rhythm  []float64 `yaml:"rhythm,flow"`
	Reading []float64 `yaml:"reading,flow"`
	Colour  []float64 `yaml:"colour,flow"`
	Stamina []float64 `yaml:"stamina,flow"`

	// SingleColourStamina peaks
	MonoStamina []float64 `yaml:"mono_stamina,flow"`

	// Total contains combined peaks passed through star rating formula
	Total []float64 `yaml:"total,flow"`
}

// ObjectTrace holds the evaluator outputs for one difficulty object
type ObjectTrace struct {
	Index     int     `yaml:"index"`
	StartTime float64 `yaml:"start_time"`

	Colour  float64 `yaml:"colour"`
	Rhythm  float64 `yaml:"rhythm"`
	Reading float64 `yaml:"reading"`
	Stamina float64 `yaml:"stamina"`
}

// Trace is a diagnostic record of evaluator outputs, indexed like the difficulty objects
type Trace []ObjectTrace

type PPResults struct {
	Difficulty float64 `yaml:"difficulty"`
	Accuracy   float64 `yaml:"accuracy"`
	Total      float64 `yaml:"total"`

	// EstimatedUnstableRate is 0 when it could not be estimated
	EstimatedUnstableRate float64 `yaml:"estimated_unstable_rate"`
}
