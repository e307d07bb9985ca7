package api

import (
	"github.com/givikap120/danser-taiko/app/beatmap/difficulty"
	"github.com/givikap120/danser-taiko/app/beatmap/objects"
	"github.com/givikap120/danser-taiko/app/rulesets/taiko/performance/preprocessing"
)

type IDifficultyCalculator interface {
	// CalculateSingle calculates the final Attributes of a chart
	CalculateSingle(objects []objects.IHitObject, diff *difficulty.Difficulty, timings preprocessing.ControlPoints) Attributes

	// CalculateDetailed is CalculateSingle that also returns the difficulty objects and evaluator trace
	CalculateDetailed(objects []objects.IHitObject, diff *difficulty.Difficulty, timings preprocessing.ControlPoints) (Attributes, *preprocessing.Sequence, Trace)

	CalculateStrainPeaks(objects []objects.IHitObject, diff *difficulty.Difficulty, timings preprocessing.ControlPoints) StrainPeaks

	GetVersion() int
	GetVersionMessage() string
}

type IPerformanceCalculator interface {
	// Calculate returns pp for a play, a negative nGreat is derived from the other counts
	Calculate(attribs Attributes, nGreat, nOk, nMiss int, diff *difficulty.Difficulty) PPResults
}
