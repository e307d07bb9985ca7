package evaluators

import (
	"math"

	"github.com/givikap120/danser-taiko/app/rulesets/taiko/performance/dcutils"
	"github.com/givikap120/danser-taiko/app/rulesets/taiko/performance/preprocessing"
	"github.com/givikap120/danser-taiko/app/rulesets/taiko/performance/tuning"
)

const (
	ratio_terms int = 8

	same_rhythm_multiplier  float64 = 10
	same_pattern_multiplier float64 = 1.15
)

// EvaluateRhythmDifficultyOf scores the rhythm change introduced by current.
// Only the first object of a rhythm or pattern grouping carries a value.
func EvaluateRhythmDifficultyOf(current *preprocessing.DifficultyObject, hitWindow float64, cfg tuning.RhythmPenaltyConfig) float64 {
	sameRhythm := 0.0
	samePattern := 0.0
	intervalPenalty := 0.0

	if group := current.SameRhythmGrouping(); group != nil && group.FirstHitObject() == current {
		sameRhythm += same_rhythm_multiplier * evaluateSameRhythmGrouping(group, hitWindow, cfg)
		intervalPenalty = repeatedIntervalPenalty(group, hitWindow, cfg)
	}

	if pattern := current.SamePatternGrouping(); pattern != nil && pattern.FirstHitObject() == current {
		samePattern += same_pattern_multiplier * RatioDifficulty(pattern.IntervalRatio())
	}

	return math.Max(sameRhythm, samePattern) * intervalPenalty
}

func evaluateSameRhythmGrouping(group *preprocessing.SameRhythmGrouping, hitWindow float64, cfg tuning.RhythmPenaltyConfig) float64 {
	intervalDifficulty := RatioDifficulty(group.HitObjectIntervalRatio)
	intervalDifficulty *= repeatedIntervalPenalty(group, hitWindow, cfg)

	// Groups stretching past what the previous interval predicts are easier to read
	if prev := group.PreviousGrouping(); prev != nil && prev.HasHitObjectInterval && len(group.HitObjects) > 1 {
		expectedDuration := prev.HitObjectInterval * float64(len(group.HitObjects))
		durationDifference := group.Duration() - expectedDuration

		if durationDifference > 0 {
			intervalDifficulty *= dcutils.Logistic(durationDifference/hitWindow, 0.7, 1, 1)
		}
	}

	// Groups short enough to fit in a single hit window
	intervalDifficulty *= dcutils.Logistic(group.Duration()/hitWindow, 0.6, 1, 1)

	return math.Pow(intervalDifficulty, 0.75)
}

// repeatedIntervalPenalty damps groupings that repeat a recent interval. Long groupings are
// damped further against the hit window, down to half.
func repeatedIntervalPenalty(group *preprocessing.SameRhythmGrouping, hitWindow float64, cfg tuning.RhythmPenaltyConfig) float64 {
	longIntervalPenalty := sameIntervalPenalty(group, 3, cfg)

	shortIntervalPenalty := 1.0
	if len(group.HitObjects) < 6 {
		shortIntervalPenalty = sameIntervalPenalty(group, 4, cfg)
	}

	durationPenalty := math.Max(1-group.Duration()*2/hitWindow, 0.5)

	return math.Min(longIntervalPenalty, shortIntervalPenalty) * durationPenalty
}

// sameIntervalPenalty looks at the hit intervals of the last intervalCount groupings
// and penalises if any two of them are close
func sameIntervalPenalty(group *preprocessing.SameRhythmGrouping, intervalCount int, cfg tuning.RhythmPenaltyConfig) float64 {
	intervals := make([]float64, 0, intervalCount)

	for current, i := group, 0; i < intervalCount && current != nil; i++ {
		if current.HasHitObjectInterval {
			intervals = append(intervals, current.HitObjectInterval)
		}

		current = current.PreviousGrouping()
	}

	if len(intervals) < intervalCount {
		return 1
	}

	for i := 0; i < len(intervals); i++ {
		for j := i + 1; j < len(intervals); j++ {
			if math.Abs(1-intervals[i]/intervals[j]) <= cfg.IntervalThreshold {
				return cfg.RepeatedPenalty
			}
		}
	}

	return 1
}

// RatioDifficulty scores how awkward an interval ratio is to play.
// Simple ratios sit in the troughs of the cosine terms; values near but not at 1 get a bonus.
func RatioDifficulty(ratio float64) float64 {
	// Zero, subnormal or non-finite ratios come from stacked objects
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) || math.Abs(ratio) < 0x1p-1022 {
		ratio = 0
	}

	difficulty := 0.0

	for i := 1; i <= ratio_terms; i++ {
		difficulty -= math.Pow(math.Cos(float64(i)*math.Pi*ratio), 4)
	}

	difficulty += float64(ratio_terms) / (1 + ratio)

	difficulty += dcutils.BellCurve(ratio, 1, 0.5, 1)
	difficulty -= dcutils.BellCurve(ratio, 1, 0.3, 1)

	difficulty = math.Max(difficulty, 0)

	return difficulty / math.Sqrt(8)
}
