package evaluators

import (
	"math"

	"github.com/givikap120/danser-taiko/app/rulesets/taiko/performance/preprocessing"
)

// StaminaCostFunc maps a difficulty object to its finger load, it must be non-negative
type StaminaCostFunc func(current *preprocessing.DifficultyObject) float64

const (
	stamina_base_strain float64 = 0.5

	// A colour change closer than this leaves only one finger per hand free
	colour_change_window float64 = 300

	fingers_alternating = 2
	fingers_mono        = 8
)

// EvaluateStaminaDifficultyOf is the default StaminaCostFunc. It rewards short gaps to the
// previous hit by the same finger, assuming fingers cycle over same-side hits.
func EvaluateStaminaDifficultyOf(current *preprocessing.DifficultyObject) float64 {
	if !current.IsHit {
		return 0
	}

	previous := current.Previous(1)
	previousMono := current.PreviousMono(availableFingersFor(current) - 1)

	objectStrain := stamina_base_strain

	if previous == nil {
		return objectStrain
	}

	if previousMono != nil {
		objectStrain += speedBonus(current.StartTime-previousMono.StartTime) + 0.5*speedBonus(current.StartTime-previous.StartTime)
	}

	return objectStrain
}

func availableFingersFor(current *preprocessing.DifficultyObject) int {
	if prev := current.PreviousColourChange(); prev != nil && current.StartTime-prev.StartTime < colour_change_window {
		return fingers_alternating
	}

	if next := current.NextColourChange(); next != nil && next.StartTime-current.StartTime < colour_change_window {
		return fingers_alternating
	}

	return fingers_mono
}

func speedBonus(interval float64) float64 {
	return 20 / math.Max(interval, 1)
}
