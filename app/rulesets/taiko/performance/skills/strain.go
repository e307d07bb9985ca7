package skills

import (
	"math"

	"github.com/givikap120/danser-taiko/app/beatmap/difficulty"
	"github.com/givikap120/danser-taiko/app/rulesets/taiko/performance/preprocessing"
	"github.com/givikap120/danser-taiko/app/rulesets/taiko/performance/tuning"
)

// DecaySkill is a Skill whose strain decays exponentially between objects
// and grows by the value of each object scaled by a multiplier
type DecaySkill struct {
	*Skill

	CurrentStrain float64

	multiplier float64
	decayBase  float64

	lastTime float64

	valueOf func(current *preprocessing.DifficultyObject) float64
}

func NewDecaySkill(d *difficulty.Difficulty, cfg tuning.Config, skillCfg tuning.SkillConfig, valueOf func(current *preprocessing.DifficultyObject) float64) *DecaySkill {
	skill := &DecaySkill{
		Skill:      NewSkill(d, cfg),
		multiplier: skillCfg.Multiplier,
		decayBase:  skillCfg.DecayBase,
		valueOf:    valueOf,
	}

	skill.StrainValueOf = skill.decayStrainValue
	skill.CalculateInitialStrain = skill.decayInitialStrain

	return skill
}

func (skill *DecaySkill) strainDecay(ms float64) float64 {
	return math.Pow(skill.decayBase, ms/1000)
}

func (skill *DecaySkill) decayInitialStrain(time float64, current *preprocessing.DifficultyObject) float64 {
	return skill.CurrentStrain * skill.strainDecay(time-current.Previous(0).StartTime)
}

func (skill *DecaySkill) decayStrainValue(current *preprocessing.DifficultyObject) float64 {
	skill.CurrentStrain *= skill.strainDecay(current.DeltaTime)
	skill.CurrentStrain += skill.valueOf(current) * skill.multiplier

	skill.lastTime = current.StartTime

	return skill.CurrentStrain
}

// StrainAt returns the strain decayed to time, which must not precede the last processed object
func (skill *DecaySkill) StrainAt(time float64) float64 {
	return skill.CurrentStrain * skill.strainDecay(time-skill.lastTime)
}
