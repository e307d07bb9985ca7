package preprocessing

import (
	"github.com/givikap120/danser-taiko/app/beatmap/difficulty"
	"github.com/givikap120/danser-taiko/app/beatmap/objects"
	"github.com/givikap120/danser-taiko/app/beatmap/timing"
	"github.com/givikap120/danser-taiko/app/rulesets/taiko/performance/tuning"
)

// ControlPoints supplies tempo and scroll speed at a given unscaled time
type ControlPoints interface {
	TempoAt(time float64) float64
	VelocityAt(time float64) float64
}

// Sequence owns every difficulty object of a chart together with the colour and rhythm
// encodings built over them. Cross references are indices into the slices held here.
type Sequence struct {
	Objects []*DifficultyObject

	notes  []int
	centre []int
	rim    []int

	MonoStreaks             []*MonoStreak
	AlternatingMonoPatterns []*AlternatingMonoPattern
	RepeatingHitPatterns    []*RepeatingHitPatterns

	SameRhythmGroupings  []*SameRhythmGrouping
	SamePatternGroupings []*SamePatternGrouping
}

// NewSequence builds difficulty objects for hitObjects, which must be sorted by start time.
// The first two input objects only seed delta times and produce no difficulty object.
func NewSequence(hitObjects []objects.IHitObject, diff *difficulty.Difficulty, cp ControlPoints, cfg tuning.GroupingConfig) *Sequence {
	if cp == nil {
		cp = timing.NewTimings()
	}

	seq := &Sequence{}

	if len(hitObjects) < 2 {
		return seq
	}

	seq.Objects = make([]*DifficultyObject, 0, len(hitObjects)-2)

	for i := 2; i < len(hitObjects); i++ {
		obj := newDifficultyObject(seq, hitObjects[i], hitObjects[i-1], diff.Speed, len(seq.Objects), cp)

		seq.Objects = append(seq.Objects, obj)
		obj.calculateRatio()

		if obj.IsHit {
			obj.NoteIndex = len(seq.notes)
			seq.notes = append(seq.notes, obj.Index)

			if obj.IsRim {
				obj.MonoIndex = len(seq.rim)
				seq.rim = append(seq.rim, obj.Index)
			} else {
				obj.MonoIndex = len(seq.centre)
				seq.centre = append(seq.centre, obj.Index)
			}
		}
	}

	processColour(seq, cfg)
	processRhythm(seq, cfg)

	return seq
}

// NodeFor returns the difficulty object built from the input object at rawIndex, nil for seeds
func (seq *Sequence) NodeFor(rawIndex int) *DifficultyObject {
	return seq.ObjectAt(rawIndex - 2)
}

func (seq *Sequence) ObjectAt(i int) *DifficultyObject {
	if i < 0 || i >= len(seq.Objects) {
		return nil
	}

	return seq.Objects[i]
}

// Notes returns the hits of the sequence in order
func (seq *Sequence) Notes() []*DifficultyObject {
	return seq.resolve(seq.notes)
}

func (seq *Sequence) Centre() []*DifficultyObject {
	return seq.resolve(seq.centre)
}

func (seq *Sequence) Rim() []*DifficultyObject {
	return seq.resolve(seq.rim)
}

func (seq *Sequence) MonoStreakAt(i int) *MonoStreak {
	if i < 0 || i >= len(seq.MonoStreaks) {
		return nil
	}

	return seq.MonoStreaks[i]
}

func (seq *Sequence) AlternatingMonoPatternAt(i int) *AlternatingMonoPattern {
	if i < 0 || i >= len(seq.AlternatingMonoPatterns) {
		return nil
	}

	return seq.AlternatingMonoPatterns[i]
}

func (seq *Sequence) RepeatingHitPatternsAt(i int) *RepeatingHitPatterns {
	if i < 0 || i >= len(seq.RepeatingHitPatterns) {
		return nil
	}

	return seq.RepeatingHitPatterns[i]
}

func (seq *Sequence) SameRhythmGroupingAt(i int) *SameRhythmGrouping {
	if i < 0 || i >= len(seq.SameRhythmGroupings) {
		return nil
	}

	return seq.SameRhythmGroupings[i]
}

func (seq *Sequence) SamePatternGroupingAt(i int) *SamePatternGrouping {
	if i < 0 || i >= len(seq.SamePatternGroupings) {
		return nil
	}

	return seq.SamePatternGroupings[i]
}

func (seq *Sequence) at(list []int, i int) *DifficultyObject {
	if i < 0 || i >= len(list) {
		return nil
	}

	return seq.Objects[list[i]]
}

func (seq *Sequence) resolve(list []int) []*DifficultyObject {
	out := make([]*DifficultyObject, len(list))
	for i, idx := range list {
		out[i] = seq.Objects[idx]
	}

	return out
}
