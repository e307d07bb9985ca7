package skills

import (
	"math"
	"sort"

	"github.com/givikap120/danser-taiko/app/beatmap/difficulty"
	"github.com/givikap120/danser-taiko/app/rulesets/taiko/performance/preprocessing"
	"github.com/givikap120/danser-taiko/app/rulesets/taiko/performance/tuning"
)

type Skill struct {
	// The weight by which each strain value decays.
	DecayWeight float64

	// The length of each strain section.
	SectionLength float64

	diff *difficulty.Difficulty

	strainPeaks   []float64
	objectStrains []float64

	CurrentSectionPeak float64
	CurrentSectionEnd  float64

	// StrainValueOf returns the strain after current is added, it must update any internal accumulator
	StrainValueOf func(current *preprocessing.DifficultyObject) float64

	// CalculateInitialStrain returns the strain a new section starting at time begins with
	CalculateInitialStrain func(time float64, current *preprocessing.DifficultyObject) float64
}

func NewSkill(d *difficulty.Difficulty, cfg tuning.Config) *Skill {
	return &Skill{
		DecayWeight:   cfg.DecayWeight,
		SectionLength: cfg.SectionLength,
		diff:          d,
	}
}

// Process adds current to the skill, sealing every section it has moved past
func (skill *Skill) Process(current *preprocessing.DifficultyObject) {
	// The first object doesn't generate a strain, so we begin with an incremented section end
	if current.Index == 0 {
		skill.CurrentSectionEnd = math.Ceil(current.StartTime/skill.SectionLength) * skill.SectionLength
	}

	for current.StartTime > skill.CurrentSectionEnd {
		skill.saveCurrentPeak()
		skill.startNewSectionFrom(skill.CurrentSectionEnd, current)
		skill.CurrentSectionEnd += skill.SectionLength
	}

	strain := skill.StrainValueOf(current)

	skill.CurrentSectionPeak = math.Max(strain, skill.CurrentSectionPeak)
	skill.objectStrains = append(skill.objectStrains, strain)
}

func (skill *Skill) saveCurrentPeak() {
	skill.strainPeaks = append(skill.strainPeaks, skill.CurrentSectionPeak)
}

func (skill *Skill) startNewSectionFrom(end float64, current *preprocessing.DifficultyObject) {
	// The maximum strain of the new section is not zero by default
	// This means we need to capture the strain level at the beginning of the new section, and use that as the initial peak level.
	skill.CurrentSectionPeak = skill.CalculateInitialStrain(end, current)
}

// GetCurrentStrainPeaks returns the sealed section peaks followed by the open one
func (skill *Skill) GetCurrentStrainPeaks() []float64 {
	peaks := make([]float64, len(skill.strainPeaks), len(skill.strainPeaks)+1)
	copy(peaks, skill.strainPeaks)

	return append(peaks, skill.CurrentSectionPeak)
}

// GetObjectStrains returns the strain recorded after every processed object
func (skill *Skill) GetObjectStrains() []float64 {
	return skill.objectStrains
}

// DifficultyValue sums positive section peaks sorted descending, each weighted DecayWeight times the previous one
func (skill *Skill) DifficultyValue() float64 {
	diff := 0.0
	weight := 1.0

	peaks := skill.GetCurrentStrainPeaks()

	positive := peaks[:0]
	for _, p := range peaks {
		if p > 0 {
			positive = append(positive, p)
		}
	}

	sort.Sort(sort.Reverse(sort.Float64Slice(positive)))

	for _, strain := range positive {
		diff += strain * weight
		weight *= skill.DecayWeight
	}

	return diff
}

// CountTopWeightedStrains estimates how many objects are close to the skill's top strain
func (skill *Skill) CountTopWeightedStrains() float64 {
	if len(skill.objectStrains) == 0 {
		return 0
	}

	consistentTopStrain := skill.DifficultyValue() / 10 // What would the top strain be if all strain values were identical

	if consistentTopStrain == 0 {
		return float64(len(skill.objectStrains))
	}

	sum := 0.0

	// Use a weighted sum of all strains. Constants are arbitrary and give nice values
	for _, s := range skill.objectStrains {
		sum += 1.1 / (1 + math.Exp(-10*(s/consistentTopStrain-0.88)))
	}

	return sum
}
