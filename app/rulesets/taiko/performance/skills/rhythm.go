package skills

import (
	"github.com/givikap120/danser-taiko/app/beatmap/difficulty"
	"github.com/givikap120/danser-taiko/app/rulesets/taiko/performance/dcutils"
	"github.com/givikap120/danser-taiko/app/rulesets/taiko/performance/evaluators"
	"github.com/givikap120/danser-taiko/app/rulesets/taiko/performance/preprocessing"
	"github.com/givikap120/danser-taiko/app/rulesets/taiko/performance/tuning"
)

// Rhythm accumulates the difficulty of interval changes
type Rhythm struct {
	*DecaySkill

	greatHitWindow float64
	penaltyCfg     tuning.RhythmPenaltyConfig
	staminaCost    evaluators.StaminaCostFunc
}

func NewRhythm(d *difficulty.Difficulty, cfg tuning.Config, staminaCost evaluators.StaminaCostFunc) *Rhythm {
	if staminaCost == nil {
		staminaCost = evaluators.EvaluateStaminaDifficultyOf
	}

	skill := &Rhythm{
		greatHitWindow: d.GreatWindow(),
		penaltyCfg:     cfg.RhythmPenalty,
		staminaCost:    staminaCost,
	}

	skill.DecaySkill = NewDecaySkill(d, cfg, cfg.Rhythm, skill.rhythmValue)

	return skill
}

func (skill *Rhythm) rhythmValue(current *preprocessing.DifficultyObject) float64 {
	difficulty := evaluators.EvaluateRhythmDifficultyOf(current, skill.greatHitWindow, skill.penaltyCfg)

	// Awkward rhythms separated by long gaps are not hard to play, so scale by how much finger load there is
	staminaDifficulty := skill.staminaCost(current) - 0.5

	return difficulty * dcutils.Logistic(staminaDifficulty, 1.0/15, 50, 1)
}
