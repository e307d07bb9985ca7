package skills

import (
	"math"

	"github.com/givikap120/danser-taiko/app/beatmap/difficulty"
	"github.com/givikap120/danser-taiko/app/rulesets/taiko/performance/evaluators"
	"github.com/givikap120/danser-taiko/app/rulesets/taiko/performance/preprocessing"
	"github.com/givikap120/danser-taiko/app/rulesets/taiko/performance/tuning"
	"github.com/givikap120/danser-taiko/framework/math/mutils"
)

// Stamina accumulates finger load. The single colour variant only tracks same-side runs
// and is used to detect charts made almost entirely of mono streams.
type Stamina struct {
	*Skill

	CurrentStrain float64

	SingleColour bool

	cfg         tuning.StaminaConfig
	isConvert   bool
	staminaCost evaluators.StaminaCostFunc
}

func NewStamina(d *difficulty.Difficulty, cfg tuning.Config, singleColour bool, staminaCost evaluators.StaminaCostFunc) *Stamina {
	if staminaCost == nil {
		staminaCost = evaluators.EvaluateStaminaDifficultyOf
	}

	skill := &Stamina{
		Skill:        NewSkill(d, cfg),
		SingleColour: singleColour,
		cfg:          cfg.Stamina,
		isConvert:    d.IsConvert,
		staminaCost:  staminaCost,
	}

	skill.StrainValueOf = skill.staminaStrainValue
	skill.CalculateInitialStrain = skill.staminaInitialStrain

	return skill
}

func (skill *Stamina) strainDecay(ms float64) float64 {
	return math.Pow(skill.cfg.DecayBase, ms/1000)
}

func (skill *Stamina) staminaInitialStrain(time float64, current *preprocessing.DifficultyObject) float64 {
	if skill.SingleColour {
		return 0
	}

	return skill.CurrentStrain * skill.strainDecay(time-current.Previous(0).StartTime)
}

func (skill *Stamina) staminaStrainValue(current *preprocessing.DifficultyObject) float64 {
	skill.CurrentStrain *= skill.strainDecay(current.DeltaTime)

	staminaDifficulty := skill.staminaCost(current) * skill.cfg.Multiplier

	index := float64(current.MonoStreakIndex())

	// Longer same-colour runs inside patterns are harder to keep up, converts are exempt
	if !skill.SingleColour && !skill.isConvert {
		staminaDifficulty *= 1 + skill.cfg.MonoBonus*mutils.ReverseLerp(index, skill.cfg.MonoBonusStart, skill.cfg.MonoBonusEnd)
	}

	skill.CurrentStrain += staminaDifficulty

	if skill.SingleColour {
		// Long mono streams would otherwise dominate this variant
		return skill.CurrentStrain / (1 + math.Exp((index-skill.cfg.SingleSideMidpoint)/skill.cfg.SingleSideWidth))
	}

	return skill.CurrentStrain
}
