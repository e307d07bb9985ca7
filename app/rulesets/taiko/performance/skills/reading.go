package skills

import (
	"github.com/givikap120/danser-taiko/app/beatmap/difficulty"
	"github.com/givikap120/danser-taiko/app/rulesets/taiko/performance/evaluators"
	"github.com/givikap120/danser-taiko/app/rulesets/taiko/performance/tuning"
)

type Reading struct {
	*DecaySkill
}

func NewReading(d *difficulty.Difficulty, cfg tuning.Config) *Reading {
	return &Reading{DecaySkill: NewDecaySkill(d, cfg, cfg.Reading, evaluators.EvaluateReadingDifficultyOf)}
}
