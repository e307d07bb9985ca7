package performance

import (
	"github.com/givikap120/danser-taiko/app/beatmap/difficulty"
	"github.com/givikap120/danser-taiko/app/rulesets/taiko/performance/api"
	"github.com/givikap120/danser-taiko/app/rulesets/taiko/performance/evaluators"
	"github.com/givikap120/danser-taiko/app/rulesets/taiko/performance/preprocessing"
	"github.com/givikap120/danser-taiko/app/rulesets/taiko/performance/skills"
	"github.com/givikap120/danser-taiko/app/rulesets/taiko/performance/tuning"
)

type SkillsProcessor struct {
	Rhythm      *skills.Rhythm
	Reading     *skills.Reading
	Colour      *skills.Colour
	Stamina     *skills.Stamina
	MonoStamina *skills.Stamina

	trace api.Trace

	withTrace      bool
	greatHitWindow float64
	cfg            tuning.Config
	staminaCost    evaluators.StaminaCostFunc
}

func NewSkillsProcessor(d *difficulty.Difficulty, cfg tuning.Config, staminaCost evaluators.StaminaCostFunc, withTrace bool) *SkillsProcessor {
	if staminaCost == nil {
		staminaCost = evaluators.EvaluateStaminaDifficultyOf
	}

	return &SkillsProcessor{
		Rhythm:         skills.NewRhythm(d, cfg, staminaCost),
		Reading:        skills.NewReading(d, cfg),
		Colour:         skills.NewColour(d, cfg),
		Stamina:        skills.NewStamina(d, cfg, false, staminaCost),
		MonoStamina:    skills.NewStamina(d, cfg, true, staminaCost),
		withTrace:      withTrace,
		greatHitWindow: d.GreatWindow(),
		cfg:            cfg,
		staminaCost:    staminaCost,
	}
}

func (skills *SkillsProcessor) Process(current *preprocessing.DifficultyObject) {
	skills.Rhythm.Process(current)
	skills.Reading.Process(current)
	skills.Colour.Process(current)
	skills.Stamina.Process(current)
	skills.MonoStamina.Process(current)

	if skills.withTrace {
		skills.trace = append(skills.trace, api.ObjectTrace{
			Index:     current.Index,
			StartTime: current.StartTime,
			Colour:    evaluators.EvaluateColourDifficultyOf(current, skills.cfg.ColourPenalty),
			Rhythm:    evaluators.EvaluateRhythmDifficultyOf(current, skills.greatHitWindow, skills.cfg.RhythmPenalty),
			Reading:   evaluators.EvaluateReadingDifficultyOf(current),
			Stamina:   skills.staminaCost(current),
		})
	}
}

// Trace returns evaluator outputs recorded so far, nil unless tracing was requested
func (skills *SkillsProcessor) Trace() api.Trace {
	return skills.trace
}
