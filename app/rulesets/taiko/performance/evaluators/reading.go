package evaluators

import (
	"math"

	"github.com/givikap120/danser-taiko/app/rulesets/taiko/performance/dcutils"
	"github.com/givikap120/danser-taiko/app/rulesets/taiko/performance/preprocessing"
)

// velocityBand is a range of effective BPM over which a logistic rises
type velocityBand struct {
	center float64
	rng    float64
}

var (
	mid_velocity  = velocityBand{center: 420, rng: 120}
	high_velocity = velocityBand{center: 560, rng: 160}
)

const (
	// Time between base velocity 1/4 notes at 1 BPM, scaled so 1.0 is "evenly spaced"
	expected_delta_numerator float64 = 21000

	density_penalty_midpoint   float64 = 0.925
	density_penalty_multiplier float64 = 15
)

// EvaluateReadingDifficultyOf scores how hard current is to read based on its scroll speed.
// Dense passages at high speed are penalised since notes overlap into readable shapes.
func EvaluateReadingDifficultyOf(current *preprocessing.DifficultyObject) float64 {
	if !current.IsHit {
		return 0
	}

	effectiveBPM := math.Max(1, current.EffectiveBPM)

	midVelocityDifficulty := 0.5 * dcutils.Logistic(effectiveBPM, mid_velocity.center, 1/(mid_velocity.rng/10), 1)

	expectedDeltaTime := expected_delta_numerator / effectiveBPM
	objectDensity := expectedDeltaTime / math.Max(1, current.DeltaTime)

	densityPenalty := dcutils.Logistic(objectDensity, density_penalty_midpoint, density_penalty_multiplier, 1)

	highVelocityDifficulty := (1 - 0.33*densityPenalty) *
		dcutils.Logistic(effectiveBPM, high_velocity.center+8*densityPenalty, (1+0.5*densityPenalty)/(high_velocity.rng/10), 1)

	return midVelocityDifficulty + highVelocityDifficulty
}
