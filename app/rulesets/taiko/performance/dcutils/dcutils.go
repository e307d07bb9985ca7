// Package dcutils holds the shaping functions shared by taiko evaluators, skills and the aggregator.
package dcutils

import (
	"math"
)

// BPMToMilliseconds converts a tempo to the length of one 1/delimiter beat
func BPMToMilliseconds(bpm float64, delimiter int) float64 {
	return 60000.0 / float64(delimiter) / bpm
}

// MillisecondsToBPM converts the length of one 1/delimiter beat to a tempo
func MillisecondsToBPM(ms float64, delimiter int) float64 {
	return 60000.0 / (ms * float64(delimiter))
}

// Logistic is a sigmoid reaching maxValue, with its midpoint at midpointOffset and slope scaled by multiplier
func Logistic(x, midpointOffset, multiplier, maxValue float64) float64 {
	return maxValue / (1 + math.Exp(multiplier*(midpointOffset-x)))
}

// LogisticExp is Logistic written directly in terms of its exponent
func LogisticExp(exponent, maxValue float64) float64 {
	return maxValue / (1 + math.Exp(exponent))
}

// Norm calculates the p-norm of values
func Norm(p float64, values ...float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += math.Pow(v, p)
	}

	return math.Pow(sum, 1/p)
}

// BellCurve is a gaussian-like bump centered on mean with the given width
func BellCurve(x, mean, width, multiplier float64) float64 {
	return multiplier * math.Exp(math.E*-(math.Pow(x-mean, 2)/math.Pow(width, 2)))
}

// Erf is the error function
func Erf(x float64) float64 {
	return math.Erf(x)
}

// ErfInv is the inverse error function, defined on (-1, 1)
func ErfInv(x float64) float64 {
	return math.Erfinv(x)
}
