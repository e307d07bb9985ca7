package skills

import (
	"github.com/givikap120/danser-taiko/app/beatmap/difficulty"
	"github.com/givikap120/danser-taiko/app/rulesets/taiko/performance/evaluators"
	"github.com/givikap120/danser-taiko/app/rulesets/taiko/performance/preprocessing"
	"github.com/givikap120/danser-taiko/app/rulesets/taiko/performance/tuning"
)

type Colour struct {
	*DecaySkill

	penaltyCfg tuning.ColourPenaltyConfig
}

func NewColour(d *difficulty.Difficulty, cfg tuning.Config) *Colour {
	skill := &Colour{penaltyCfg: cfg.ColourPenalty}
	skill.DecaySkill = NewDecaySkill(d, cfg, cfg.Colour, skill.colourValue)

	return skill
}

func (skill *Colour) colourValue(current *preprocessing.DifficultyObject) float64 {
	return evaluators.EvaluateColourDifficultyOf(current, skill.penaltyCfg)
}
