package preprocessing

import (
	"math"

	"github.com/givikap120/danser-taiko/app/beatmap/objects"
)

// Ratios between consecutive delta times that the rhythm ratio snaps to
var commonRatios = [...]float64{1.0 / 1, 2.0 / 1, 1.0 / 2, 3.0 / 1, 1.0 / 3, 3.0 / 2, 2.0 / 3, 5.0 / 4, 4.0 / 5}

// ColourData references the colour encodings owning an object, -1 when absent
type ColourData struct {
	MonoStreak             int
	AlternatingMonoPattern int
	RepeatingHitPatterns   int

	// MonoStreakPosition is the object's index within its mono streak
	MonoStreakPosition int
}

// RhythmData references the rhythm groupings owning an object, -1 when absent
type RhythmData struct {
	// Ratio is DeltaTime divided by the previous object's DeltaTime, snapped to a common ratio
	Ratio float64

	SameRhythm  int
	SamePattern int
}

type DifficultyObject struct {
	seq   *Sequence
	Index int

	BaseObject objects.IHitObject
	lastObject objects.IHitObject

	IsHit bool
	IsRim bool

	DeltaTime float64
	StartTime float64
	EndTime   float64

	ClockRate float64

	// EffectiveBPM is tempo scaled by clock rate and local scroll speed
	EffectiveBPM float64

	// MonoIndex is the position in the list of same-side hits, -1 for non-hits
	MonoIndex int

	// NoteIndex is the position in the list of hits, -1 for non-hits
	NoteIndex int

	Colour ColourData
	Rhythm RhythmData
}

func newDifficultyObject(seq *Sequence, hitObject, lastObject objects.IHitObject, clockRate float64, index int, cp ControlPoints) *DifficultyObject {
	obj := &DifficultyObject{
		seq:        seq,
		Index:      index,
		BaseObject: hitObject,
		lastObject: lastObject,
		DeltaTime:  (hitObject.GetStartTime() - lastObject.GetStartTime()) / clockRate,
		StartTime:  hitObject.GetStartTime() / clockRate,
		EndTime:    hitObject.GetEndTime() / clockRate,
		ClockRate:  clockRate,
		MonoIndex:  -1,
		NoteIndex:  -1,
		Colour:     ColourData{MonoStreak: -1, AlternatingMonoPattern: -1, RepeatingHitPatterns: -1},
		Rhythm:     RhythmData{Ratio: 1, SameRhythm: -1, SamePattern: -1},
	}

	// Lookups use the unscaled time to match control point placement
	normalisedStartTime := hitObject.GetStartTime()
	obj.EffectiveBPM = cp.TempoAt(normalisedStartTime) * clockRate * cp.VelocityAt(normalisedStartTime)

	if hit, ok := hitObject.(*objects.Hit); ok {
		obj.IsHit = true
		obj.IsRim = hit.Rim
	}

	return obj
}

// calculateRatio must run after the object is appended to the sequence
func (o *DifficultyObject) calculateRatio() {
	prev := o.Previous(0)
	if prev == nil {
		return
	}

	actualRatio := o.DeltaTime / prev.DeltaTime

	closest := commonRatios[0]
	closestDiff := math.Abs(closest - actualRatio)

	for _, r := range commonRatios[1:] {
		if d := math.Abs(r - actualRatio); d < closestDiff {
			closest, closestDiff = r, d
		}
	}

	o.Rhythm.Ratio = closest
}

func (o *DifficultyObject) Sequence() *Sequence {
	return o.seq
}

func (o *DifficultyObject) Previous(backwardsIndex int) *DifficultyObject {
	index := o.Index - (backwardsIndex + 1)

	if index < 0 || index >= len(o.seq.Objects) {
		return nil
	}

	return o.seq.Objects[index]
}

func (o *DifficultyObject) Next(forwardsIndex int) *DifficultyObject {
	index := o.Index + (forwardsIndex + 1)

	if index < 0 || index >= len(o.seq.Objects) {
		return nil
	}

	return o.seq.Objects[index]
}

func (o *DifficultyObject) monoList() []int {
	if !o.IsHit {
		return nil
	}

	if o.IsRim {
		return o.seq.rim
	}

	return o.seq.centre
}

func (o *DifficultyObject) PreviousMono(backwardsIndex int) *DifficultyObject {
	return o.seq.at(o.monoList(), o.MonoIndex-(backwardsIndex+1))
}

func (o *DifficultyObject) NextMono(forwardsIndex int) *DifficultyObject {
	return o.seq.at(o.monoList(), o.MonoIndex+(forwardsIndex+1))
}

func (o *DifficultyObject) PreviousNote(backwardsIndex int) *DifficultyObject {
	if o.NoteIndex < 0 {
		return nil
	}

	return o.seq.at(o.seq.notes, o.NoteIndex-(backwardsIndex+1))
}

func (o *DifficultyObject) NextNote(forwardsIndex int) *DifficultyObject {
	if o.NoteIndex < 0 {
		return nil
	}

	return o.seq.at(o.seq.notes, o.NoteIndex+(forwardsIndex+1))
}

func (o *DifficultyObject) MonoStreak() *MonoStreak {
	return o.seq.MonoStreakAt(o.Colour.MonoStreak)
}

func (o *DifficultyObject) AlternatingMonoPattern() *AlternatingMonoPattern {
	return o.seq.AlternatingMonoPatternAt(o.Colour.AlternatingMonoPattern)
}

func (o *DifficultyObject) RepeatingHitPatterns() *RepeatingHitPatterns {
	return o.seq.RepeatingHitPatternsAt(o.Colour.RepeatingHitPatterns)
}

func (o *DifficultyObject) SameRhythmGrouping() *SameRhythmGrouping {
	return o.seq.SameRhythmGroupingAt(o.Rhythm.SameRhythm)
}

func (o *DifficultyObject) SamePatternGrouping() *SamePatternGrouping {
	return o.seq.SamePatternGroupingAt(o.Rhythm.SamePattern)
}

// MonoStreakIndex is the position of this object within its mono streak, 0 when it has none
func (o *DifficultyObject) MonoStreakIndex() int {
	if o.Colour.MonoStreak < 0 {
		return 0
	}

	return o.Colour.MonoStreakPosition
}

// PreviousColourChange is the last hit before this object's mono streak
func (o *DifficultyObject) PreviousColourChange() *DifficultyObject {
	streak := o.MonoStreak()
	if streak == nil {
		return nil
	}

	return streak.FirstHitObject().PreviousNote(0)
}

// NextColourChange is the first hit after this object's mono streak
func (o *DifficultyObject) NextColourChange() *DifficultyObject {
	streak := o.MonoStreak()
	if streak == nil {
		return nil
	}

	return streak.LastHitObject().NextNote(0)
}
