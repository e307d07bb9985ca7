package performance

import (
	"math"
	"sort"

	"github.com/givikap120/danser-taiko/app/beatmap/difficulty"
	"github.com/givikap120/danser-taiko/app/beatmap/objects"
	"github.com/givikap120/danser-taiko/app/rulesets/taiko/performance/api"
	"github.com/givikap120/danser-taiko/app/rulesets/taiko/performance/dcutils"
	"github.com/givikap120/danser-taiko/app/rulesets/taiko/performance/evaluators"
	"github.com/givikap120/danser-taiko/app/rulesets/taiko/performance/preprocessing"
	"github.com/givikap120/danser-taiko/app/rulesets/taiko/performance/tuning"
	"github.com/givikap120/danser-taiko/framework/math/mutils"
)

const (
	CurrentVersion int = 20250306
)

type DifficultyCalculator struct {
	cfg         tuning.Config
	staminaCost evaluators.StaminaCostFunc
}

func NewDifficultyCalculator() api.IDifficultyCalculator {
	return NewDifficultyCalculatorWithTuning(tuning.Default())
}

// NewDifficultyCalculatorWithTuning creates a calculator using cfg, which is copied
func NewDifficultyCalculatorWithTuning(cfg tuning.Config) *DifficultyCalculator {
	return &DifficultyCalculator{
		cfg:         cfg,
		staminaCost: evaluators.EvaluateStaminaDifficultyOf,
	}
}

// WithStaminaCost returns a copy of the calculator using cost for finger load
func (diffCalc *DifficultyCalculator) WithStaminaCost(cost evaluators.StaminaCostFunc) *DifficultyCalculator {
	c := *diffCalc
	if cost != nil {
		c.staminaCost = cost
	}

	return &c
}

func (diffCalc *DifficultyCalculator) Tuning() tuning.Config {
	return diffCalc.cfg
}

// starRating maps the combined difficulty onto the star scale. Negative input passes through unchanged.
func (diffCalc *DifficultyCalculator) starRating(combined float64) float64 {
	a := diffCalc.cfg.Aggregate

	if combined < 0 {
		return combined
	}

	return a.RescaleScale * math.Log(combined/a.RescaleDivisor+1)
}

// aggregate holds the chart-wide values the combined peaks are built from
type aggregate struct {
	rhythm, reading, colour, stamina, monoStamina float64

	staminaTopStrains float64

	patternMultiplier float64
	strainLengthBonus float64

	isRelax   bool
	isConvert bool
}

func (diffCalc *DifficultyCalculator) aggregate(skills *SkillsProcessor, diff *difficulty.Difficulty) aggregate {
	a := diffCalc.cfg.Aggregate

	agg := aggregate{
		rhythm:      skills.Rhythm.DifficultyValue() * a.RhythmSkillMultiplier(),
		reading:     skills.Reading.DifficultyValue() * a.ReadingSkillMultiplier(),
		colour:      skills.Colour.DifficultyValue() * a.ColourSkillMultiplier(),
		stamina:     skills.Stamina.DifficultyValue() * a.StaminaSkillMultiplier(),
		monoStamina: skills.MonoStamina.DifficultyValue() * a.StaminaSkillMultiplier(),

		staminaTopStrains: skills.Stamina.CountTopWeightedStrains(),

		isRelax:   diff.CheckModActive(difficulty.Relax),
		isConvert: diff.IsConvert,
	}

	// There is no pattern skill, so stamina and colour scale rhythm instead
	agg.patternMultiplier = math.Pow(agg.stamina*agg.colour, a.PatternExponent)
	agg.strainLengthBonus = 1 + a.StrainLengthBonus*mutils.ReverseLerp(agg.staminaTopStrains, a.StrainLengthStart, a.StrainLengthEnd)

	return agg
}

// combine merges raw skill values of one section (or object) into a single peak
func (diffCalc *DifficultyCalculator) combine(agg aggregate, rhythm, reading, colour, stamina float64) float64 {
	a := diffCalc.cfg.Aggregate

	rhythmPeak := rhythm * a.RhythmSkillMultiplier() * agg.patternMultiplier
	readingPeak := reading * a.ReadingSkillMultiplier()

	colourPeak := colour * a.ColourSkillMultiplier()
	if agg.isRelax {
		colourPeak = 0
	}

	staminaPeak := stamina * a.StaminaSkillMultiplier() * agg.strainLengthBonus

	// Converts and relax free up more fingers
	if agg.isConvert || agg.isRelax {
		staminaPeak /= a.FingerCountDivisor
	}

	return dcutils.Norm(2, dcutils.Norm(1.5, colourPeak, staminaPeak), rhythmPeak, readingPeak)
}

func (diffCalc *DifficultyCalculator) combineAll(agg aggregate, rhythm, reading, colour, stamina []float64) []float64 {
	combined := make([]float64, len(colour))

	for i := range combined {
		combined[i] = diffCalc.combine(agg, rhythm[i], reading[i], colour[i], stamina[i])
	}

	return combined
}

func positive(values []float64) []float64 {
	out := make([]float64, 0, len(values))

	for _, v := range values {
		if v > 0 {
			out = append(out, v)
		}
	}

	return out
}

func (diffCalc *DifficultyCalculator) combinedDifficultyValue(agg aggregate, skills *SkillsProcessor) float64 {
	peaks := positive(diffCalc.combineAll(agg,
		skills.Rhythm.GetCurrentStrainPeaks(),
		skills.Reading.GetCurrentStrainPeaks(),
		skills.Colour.GetCurrentStrainPeaks(),
		skills.Stamina.GetCurrentStrainPeaks(),
	))

	sort.Sort(sort.Reverse(sort.Float64Slice(peaks)))

	difficulty := 0.0
	weight := 1.0

	for _, strain := range peaks {
		difficulty += strain * weight
		weight *= diffCalc.cfg.DecayWeight
	}

	return difficulty
}

// consistencyFactor compares the total object strain with what it would be if every object were as hard as the top ones
func (diffCalc *DifficultyCalculator) consistencyFactor(agg aggregate, skills *SkillsProcessor) float64 {
	strains := positive(diffCalc.combineAll(agg,
		skills.Rhythm.GetObjectStrains(),
		skills.Reading.GetObjectStrains(),
		skills.Colour.GetObjectStrains(),
		skills.Stamina.GetObjectStrains(),
	))

	if len(strains) == 0 {
		return 0
	}

	sort.Sort(sort.Reverse(sort.Float64Slice(strains)))

	// Epsilon keeps exact multiples like 60·0.05 from rounding up
	topCount := int(math.Ceil(float64(len(strains))*diffCalc.cfg.Aggregate.TopStrainFraction - 1e-9))
	topCount = mutils.Clamp(topCount, 1, len(strains))

	sum, topSum := 0.0, 0.0

	for i, s := range strains {
		sum += s

		if i < topCount {
			topSum += s
		}
	}

	topAverage := topSum / float64(topCount)
	if topAverage == 0 {
		return 0
	}

	return sum / (topAverage * float64(len(strains)))
}

// getStars retrieves skill values and converts them to Attributes
func (diffCalc *DifficultyCalculator) getStars(skills *SkillsProcessor, diff *difficulty.Difficulty, attr api.Attributes) api.Attributes {
	a := diffCalc.cfg.Aggregate

	agg := diffCalc.aggregate(skills, diff)

	combined := diffCalc.combinedDifficultyValue(agg, skills)
	stars := diffCalc.starRating(combined * a.RatingMultiplier)

	// Each skill's share of the star rating is proportional to its raw value
	skillRating := 0.0
	if total := agg.rhythm + agg.reading + agg.colour + agg.stamina; total > 0 {
		skillRating = stars / total
	}

	attr.StarRating = stars
	attr.Rhythm = agg.rhythm * skillRating
	attr.Reading = agg.reading * skillRating
	attr.Colour = agg.colour * skillRating
	attr.Stamina = agg.stamina * skillRating
	attr.Mechanical = attr.Colour + attr.Stamina

	attr.MonoStaminaFactor = 1
	if agg.stamina != 0 {
		attr.MonoStaminaFactor = math.Pow(agg.monoStamina/agg.stamina, a.MonoStaminaExponent)
	}

	attr.StaminaTopStrains = agg.staminaTopStrains
	attr.ConsistencyFactor = diffCalc.consistencyFactor(agg, skills)

	return attr
}

func (diffCalc *DifficultyCalculator) addObjectToAttribs(o objects.IHitObject, attr *api.Attributes) {
	switch o.(type) {
	case *objects.Hit:
		attr.Hits++
		attr.MaxCombo++
	case *objects.DrumRoll:
		attr.DrumRolls++
		attr.MaxCombo++
	case *objects.Swell:
		attr.Swells++
	}

	attr.ObjectCount++
}

func (diffCalc *DifficultyCalculator) calculate(objects []objects.IHitObject, diff *difficulty.Difficulty, timings preprocessing.ControlPoints, withTrace bool) (api.Attributes, *preprocessing.Sequence, *SkillsProcessor) {
	attr := api.Attributes{}

	if len(objects) == 0 {
		return attr, &preprocessing.Sequence{}, nil
	}

	seq := preprocessing.NewSequence(objects, diff, timings, diffCalc.cfg.Grouping)

	skills := NewSkillsProcessor(diff, diffCalc.cfg, diffCalc.staminaCost, withTrace)

	for _, o := range objects {
		diffCalc.addObjectToAttribs(o, &attr)
	}

	for _, o := range seq.Objects {
		skills.Process(o)
	}

	attr.GreatHitWindow = diff.GreatWindow()
	attr.OkHitWindow = diff.OkWindow()

	return diffCalc.getStars(skills, diff, attr), seq, skills
}

// CalculateSingle calculates the final api.Attributes of a chart
func (diffCalc *DifficultyCalculator) CalculateSingle(objects []objects.IHitObject, diff *difficulty.Difficulty, timings preprocessing.ControlPoints) api.Attributes {
	attr, _, _ := diffCalc.calculate(objects, diff, timings, false)

	return attr
}

// CalculateDetailed also returns the difficulty objects, which map back to input objects through Sequence.NodeFor,
// and the per-object evaluator outputs
func (diffCalc *DifficultyCalculator) CalculateDetailed(objects []objects.IHitObject, diff *difficulty.Difficulty, timings preprocessing.ControlPoints) (api.Attributes, *preprocessing.Sequence, api.Trace) {
	attr, seq, skills := diffCalc.calculate(objects, diff, timings, true)

	if skills == nil {
		return attr, seq, nil
	}

	return attr, seq, skills.Trace()
}

func (diffCalc *DifficultyCalculator) CalculateStrainPeaks(objects []objects.IHitObject, diff *difficulty.Difficulty, timings preprocessing.ControlPoints) api.StrainPeaks {
	seq := preprocessing.NewSequence(objects, diff, timings, diffCalc.cfg.Grouping)

	skills := NewSkillsProcessor(diff, diffCalc.cfg, diffCalc.staminaCost, false)

	for _, o := range seq.Objects {
		skills.Process(o)
	}

	peaks := api.StrainPeaks{
		Rhythm:      skills.Rhythm.GetCurrentStrainPeaks(),
		Reading:     skills.Reading.GetCurrentStrainPeaks(),
		Colour:      skills.Colour.GetCurrentStrainPeaks(),
		Stamina:     skills.Stamina.GetCurrentStrainPeaks(),
		MonoStamina: skills.MonoStamina.GetCurrentStrainPeaks(),
	}

	agg := diffCalc.aggregate(skills, diff)

	peaks.Total = diffCalc.combineAll(agg, peaks.Rhythm, peaks.Reading, peaks.Colour, peaks.Stamina)

	for i, p := range peaks.Total {
		peaks.Total[i] = diffCalc.starRating(p * diffCalc.cfg.Aggregate.RatingMultiplier)
	}

	return peaks
}

func (diffCalc *DifficultyCalculator) GetVersion() int {
	return CurrentVersion
}

func (diffCalc *DifficultyCalculator) GetVersionMessage() string {
	return "2025-03-06: reading skill, rhythm grouping rework"
}
