package evaluators

import (
	"math"

	"github.com/givikap120/danser-taiko/app/rulesets/taiko/performance/dcutils"
	"github.com/givikap120/danser-taiko/app/rulesets/taiko/performance/preprocessing"
	"github.com/givikap120/danser-taiko/app/rulesets/taiko/performance/tuning"
	"github.com/givikap120/danser-taiko/framework/math/mutils"
)

const (
	consistent_ratio_discount float64 = 0.8
	ratio_deviation_base      float64 = 0.7
	ratio_deviation_range     float64 = 0.3
)

func EvaluateMonoStreakDifficulty(streak *preprocessing.MonoStreak) float64 {
	return dcutils.LogisticExp(math.E*float64(streak.Index)-2*math.E, 1) * EvaluateAlternatingPatternDifficulty(streak.ParentPattern()) * 0.5
}

func EvaluateAlternatingPatternDifficulty(pattern *preprocessing.AlternatingMonoPattern) float64 {
	return dcutils.LogisticExp(math.E*float64(pattern.Index)-2*math.E, 1) * EvaluateRepeatingPatternsDifficulty(pattern.ParentPattern())
}

func EvaluateRepeatingPatternsDifficulty(patterns *preprocessing.RepeatingHitPatterns) float64 {
	return 2 * (1 - dcutils.LogisticExp(math.E*float64(patterns.RepetitionInterval)-2*math.E, 1))
}

// EvaluateColourDifficultyOf sums the values of every colour encoding current starts,
// discounted when the surrounding rhythm is consistent
func EvaluateColourDifficultyOf(current *preprocessing.DifficultyObject, cfg tuning.ColourPenaltyConfig) float64 {
	difficulty := 0.0

	if streak := current.MonoStreak(); streak != nil && streak.FirstHitObject() == current {
		difficulty += EvaluateMonoStreakDifficulty(streak)
	}

	if pattern := current.AlternatingMonoPattern(); pattern != nil && pattern.FirstHitObject() == current {
		difficulty += EvaluateAlternatingPatternDifficulty(pattern)
	}

	if patterns := current.RepeatingHitPatterns(); patterns != nil && patterns.FirstHitObject() == current {
		difficulty += EvaluateRepeatingPatternsDifficulty(patterns)
	}

	if difficulty == 0 {
		return 0
	}

	return difficulty * consistentRatioPenalty(current, cfg)
}

// consistentRatioPenalty walks back until two neighbouring rhythm ratios agree.
// A match is discounted heavily, otherwise the spread of the ratios seen decides the penalty.
func consistentRatioPenalty(current *preprocessing.DifficultyObject, cfg tuning.ColourPenaltyConfig) float64 {
	consistentRatioCount := 0
	totalRatioCount := 0.0

	recentRatios := make([]float64, 0, cfg.MaxObjectsToCheck)

	for i := 0; i < cfg.MaxObjectsToCheck; i++ {
		if current.Index <= 1 {
			break
		}

		previous := current.Previous(0)

		currentRatio := current.Rhythm.Ratio
		previousRatio := previous.Rhythm.Ratio

		recentRatios = append(recentRatios, currentRatio)

		if math.Abs(1-currentRatio/previousRatio) <= cfg.RatioThreshold {
			consistentRatioCount++
			totalRatioCount += currentRatio

			break
		}

		current = previous
	}

	if consistentRatioCount > 0 {
		// Ratios above 2.5 would push this negative
		return math.Max(0, 1-totalRatioCount/float64(consistentRatioCount+1)*consistent_ratio_discount)
	}

	if len(recentRatios) <= 1 {
		return 1
	}

	average := 0.0
	for _, r := range recentRatios {
		average += r
	}

	average /= float64(len(recentRatios))

	maxRatioDeviation := 0.0
	for _, r := range recentRatios {
		maxRatioDeviation = math.Max(maxRatioDeviation, math.Abs(r-average))
	}

	return ratio_deviation_base + ratio_deviation_range*mutils.Smootherstep(maxRatioDeviation, 0, 1)
}
