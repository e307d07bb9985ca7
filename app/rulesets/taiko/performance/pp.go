package performance

import (
	"math"

	"github.com/givikap120/danser-taiko/app/beatmap/difficulty"
	"github.com/givikap120/danser-taiko/app/rulesets/taiko/performance/api"
	"github.com/givikap120/danser-taiko/app/rulesets/taiko/performance/dcutils"
)

const (
	PerformanceBaseMultiplier float64 = 1.13

	// 99% critical value for the normal distribution (one-tailed)
	deviation_z float64 = 2.32634787404
)

/* ------------------------------------------------------------- */
/* pp calc                                                       */

// PPCalculator : structure to store taiko pp values
type PPCalculator struct {
	attribs api.Attributes

	countGreat int
	countOk    int
	countMiss  int

	diff *difficulty.Difficulty

	totalHits int

	greatHitWindow float64

	// estimatedUnstableRate is only meaningful when hasUnstableRate is set
	estimatedUnstableRate float64
	hasUnstableRate       bool

	totalDifficultHits float64

	isConvert bool
}

func NewPPCalculator() api.IPerformanceCalculator {
	return &PPCalculator{}
}

func (pp *PPCalculator) Calculate(attribs api.Attributes, nGreat, nOk, nMiss int, diff *difficulty.Difficulty) api.PPResults {
	if nGreat < 0 {
		nGreat = max(0, attribs.Hits-nOk-nMiss)
	}

	pp.attribs = attribs
	pp.diff = diff
	pp.countGreat = nGreat
	pp.countOk = nOk
	pp.countMiss = nMiss
	pp.totalHits = nGreat + nOk + nMiss
	pp.isConvert = diff.IsConvert

	pp.greatHitWindow = diff.GreatWindow()

	if deviation, ok := pp.computeDeviationUpperBound(); ok {
		pp.estimatedUnstableRate = deviation * 10
		pp.hasUnstableRate = true
	} else {
		pp.estimatedUnstableRate = 0
		pp.hasUnstableRate = false
	}

	// Total difficult hits measures the total difficulty of a map based on its consistency factor
	pp.totalDifficultHits = float64(pp.totalHits) * attribs.ConsistencyFactor

	difficultyValue := pp.computeDifficultyValue()
	accuracyValue := pp.computeAccuracyValue()

	multiplier := PerformanceBaseMultiplier

	if diff.Mods.Active(difficulty.Hidden) && !pp.isConvert {
		multiplier *= 1.075
	}

	if diff.Mods.Active(difficulty.Easy) {
		multiplier *= 0.950
	}

	return api.PPResults{
		Difficulty:            difficultyValue,
		Accuracy:              accuracyValue,
		Total:                 dcutils.Norm(1.1, difficultyValue, accuracyValue) * multiplier,
		EstimatedUnstableRate: pp.estimatedUnstableRate,
	}
}

func (pp *PPCalculator) computeDifficultyValue() float64 {
	if !pp.hasUnstableRate || pp.totalDifficultHits == 0 {
		return 0
	}

	stars := pp.attribs.StarRating

	baseDifficulty := 5*math.Max(1.0, stars/0.110) - 4.0
	difficultyValue := math.Min(math.Pow(baseDifficulty, 3)/69052.51, math.Pow(baseDifficulty, 2.25)/1250.0)

	difficultyValue *= 1 + 0.10*math.Max(0, stars-10)

	lengthBonus := 1 + 0.1*math.Min(1.0, pp.totalDifficultHits/1500.0)
	difficultyValue *= lengthBonus

	difficultyValue *= math.Pow(0.986, float64(pp.countMiss))

	if pp.diff.Mods.Active(difficulty.Easy) {
		difficultyValue *= 0.9
	}

	if pp.diff.Mods.Active(difficulty.Hidden) && !pp.isConvert {
		difficultyValue *= 1.025
	}

	if pp.diff.Mods.Active(difficulty.Flashlight) {
		difficultyValue *= math.Max(1, 1.050-math.Min(pp.attribs.MonoStaminaFactor/50, 1)*lengthBonus)
	}

	// Scale accuracy more harshly on nearly-completely mono (single coloured) speed maps
	monoAccScalingExponent := 2 + pp.attribs.MonoStaminaFactor
	monoAccScalingShift := 500 - 100*(pp.attribs.MonoStaminaFactor*3)

	return difficultyValue * math.Pow(dcutils.Erf(monoAccScalingShift/(math.Sqrt2*pp.estimatedUnstableRate)), monoAccScalingExponent)
}

func (pp *PPCalculator) computeAccuracyValue() float64 {
	if pp.greatHitWindow <= 0 || !pp.hasUnstableRate {
		return 0
	}

	accuracyValue := math.Pow(70/pp.estimatedUnstableRate, 1.1) * math.Pow(pp.attribs.StarRating, 0.4) * 100.0

	lengthBonus := math.Min(1.15, math.Pow(float64(pp.totalHits)/1500.0, 0.3))

	// Slight HDFL Bonus for accuracy. A clamp is used to prevent against negative values
	if pp.diff.Mods.Active(difficulty.Hidden) && pp.diff.Mods.Active(difficulty.Flashlight) && !pp.isConvert {
		accuracyValue *= math.Max(1.0, 1.05*lengthBonus)
	}

	return accuracyValue
}

// computeDeviationUpperBound returns the deviation of hit errors we can be 99% confident the player does not exceed,
// assuming a normal distribution of hit errors centered on 0
func (pp *PPCalculator) computeDeviationUpperBound() (float64, bool) {
	if pp.countGreat == 0 || pp.greatHitWindow <= 0 {
		return 0, false
	}

	n := float64(pp.totalHits)
	z := deviation_z

	// Proportion of greats hit
	p := float64(pp.countGreat) / n

	// We can be 99% confident that p is at least this value
	pLowerBound := (n*p+z*z/2)/(n+z*z) - z/(n+z*z)*math.Sqrt(n*p*(1-p)+z*z/4)

	if pLowerBound <= 0 {
		return 0, false
	}

	return pp.greatHitWindow / (math.Sqrt2 * dcutils.ErfInv(pLowerBound)), true
}
