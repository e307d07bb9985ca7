package preprocessing

import (
	"github.com/givikap120/danser-taiko/app/rulesets/taiko/performance/tuning"
)

// MonoStreak is a run of consecutive hits on the same side, possibly led by a non-hit
type MonoStreak struct {
	seq *Sequence

	HitObjects []int

	// Parent is the owning AlternatingMonoPattern, Index the position within it
	Parent int
	Index  int
}

func (s *MonoStreak) RunLength() int {
	return len(s.HitObjects)
}

func (s *MonoStreak) FirstHitObject() *DifficultyObject {
	return s.seq.Objects[s.HitObjects[0]]
}

func (s *MonoStreak) LastHitObject() *DifficultyObject {
	return s.seq.Objects[s.HitObjects[len(s.HitObjects)-1]]
}

// IsRim reports the side all hits of the streak share, false for a streak without hits
func (s *MonoStreak) IsRim() bool {
	for _, idx := range s.HitObjects {
		if obj := s.seq.Objects[idx]; obj.IsHit {
			return obj.IsRim
		}
	}

	return false
}

func (s *MonoStreak) ParentPattern() *AlternatingMonoPattern {
	return s.seq.AlternatingMonoPatternAt(s.Parent)
}

// AlternatingMonoPattern is a run of consecutive mono streaks of equal length
type AlternatingMonoPattern struct {
	seq *Sequence

	MonoStreaks []int

	Parent int
	Index  int
}

func (p *AlternatingMonoPattern) FirstStreak() *MonoStreak {
	return p.seq.MonoStreaks[p.MonoStreaks[0]]
}

func (p *AlternatingMonoPattern) FirstHitObject() *DifficultyObject {
	return p.FirstStreak().FirstHitObject()
}

func (p *AlternatingMonoPattern) ParentPattern() *RepeatingHitPatterns {
	return p.seq.RepeatingHitPatternsAt(p.Parent)
}

// IsRepetitionOf reports whether other has the same streak length, streak count and starting side
func (p *AlternatingMonoPattern) IsRepetitionOf(other *AlternatingMonoPattern) bool {
	return p.HasIdenticalMonoLength(other) &&
		len(other.MonoStreaks) == len(p.MonoStreaks) &&
		other.FirstStreak().IsRim() == p.FirstStreak().IsRim()
}

func (p *AlternatingMonoPattern) HasIdenticalMonoLength(other *AlternatingMonoPattern) bool {
	return other.FirstStreak().RunLength() == p.FirstStreak().RunLength()
}

// RepeatingHitPatterns groups alternating patterns that repeat with a period of two
type RepeatingHitPatterns struct {
	seq *Sequence

	AlternatingMonoPatterns []int

	// Previous is the preceding RepeatingHitPatterns, -1 for the first
	Previous int

	// RepetitionInterval is how many groups back an identical one was found, capped at max+1 when none was
	RepetitionInterval int
}

func (r *RepeatingHitPatterns) FirstHitObject() *DifficultyObject {
	return r.seq.AlternatingMonoPatterns[r.AlternatingMonoPatterns[0]].FirstHitObject()
}

func (r *RepeatingHitPatterns) PreviousPattern() *RepeatingHitPatterns {
	return r.seq.RepeatingHitPatternsAt(r.Previous)
}

func (r *RepeatingHitPatterns) isRepetitionOf(other *RepeatingHitPatterns) bool {
	if len(r.AlternatingMonoPatterns) != len(other.AlternatingMonoPatterns) {
		return false
	}

	for i := 0; i < min(len(r.AlternatingMonoPatterns), 2); i++ {
		a := r.seq.AlternatingMonoPatterns[r.AlternatingMonoPatterns[i]]
		b := r.seq.AlternatingMonoPatterns[other.AlternatingMonoPatterns[i]]

		if !a.HasIdenticalMonoLength(b) {
			return false
		}
	}

	return true
}

func (r *RepeatingHitPatterns) findRepetitionInterval(maxInterval int) {
	if r.Previous < 0 {
		r.RepetitionInterval = maxInterval + 1
		return
	}

	other := r.PreviousPattern()
	interval := 1

	for interval < maxInterval {
		if r.isRepetitionOf(other) {
			r.RepetitionInterval = min(interval, maxInterval)
			return
		}

		other = other.PreviousPattern()
		if other == nil {
			break
		}

		interval++
	}

	r.RepetitionInterval = maxInterval + 1
}

func processColour(seq *Sequence, cfg tuning.GroupingConfig) {
	encodeMonoStreaks(seq)
	encodeAlternatingMonoPatterns(seq)
	encodeRepeatingHitPatterns(seq)

	for _, r := range seq.RepeatingHitPatterns {
		r.findRepetitionInterval(cfg.MaxRepetitionInterval)
	}

	for ri, r := range seq.RepeatingHitPatterns {
		for pi, patternIdx := range r.AlternatingMonoPatterns {
			pattern := seq.AlternatingMonoPatterns[patternIdx]
			pattern.Parent = ri
			pattern.Index = pi

			for si, streakIdx := range pattern.MonoStreaks {
				streak := seq.MonoStreaks[streakIdx]
				streak.Parent = patternIdx
				streak.Index = si

				for _, objIdx := range streak.HitObjects {
					obj := seq.Objects[objIdx]
					obj.Colour.AlternatingMonoPattern = patternIdx
					obj.Colour.RepeatingHitPatterns = ri
				}
			}
		}
	}
}

// encodeMonoStreaks splits objects into same-side runs. Every non-hit opens a run of its own,
// and a hit joins the current run unless it changes side from the previous hit.
func encodeMonoStreaks(seq *Sequence) {
	var current *MonoStreak

	for _, obj := range seq.Objects {
		prev := obj.PreviousNote(0)

		if current == nil || !obj.IsHit || prev == nil || prev.IsRim != obj.IsRim {
			current = &MonoStreak{seq: seq, Parent: -1}
			seq.MonoStreaks = append(seq.MonoStreaks, current)
		}

		obj.Colour.MonoStreak = len(seq.MonoStreaks) - 1
		obj.Colour.MonoStreakPosition = len(current.HitObjects)

		current.HitObjects = append(current.HitObjects, obj.Index)
	}
}

func encodeAlternatingMonoPatterns(seq *Sequence) {
	var current *AlternatingMonoPattern

	for i, streak := range seq.MonoStreaks {
		if current == nil || streak.RunLength() != seq.MonoStreaks[i-1].RunLength() {
			current = &AlternatingMonoPattern{seq: seq, Parent: -1}
			seq.AlternatingMonoPatterns = append(seq.AlternatingMonoPatterns, current)
		}

		current.MonoStreaks = append(current.MonoStreaks, i)
	}
}

// encodeRepeatingHitPatterns couples alternating patterns greedily: while a pattern is
// repeated two places ahead it joins the current group, then the pair closing the
// repetition is added as well.
func encodeRepeatingHitPatterns(seq *Sequence) {
	data := seq.AlternatingMonoPatterns
	n := len(data)

	for i := 0; i < n; i++ {
		previous := len(seq.RepeatingHitPatterns) - 1

		current := &RepeatingHitPatterns{seq: seq, Previous: previous}
		seq.RepeatingHitPatterns = append(seq.RepeatingHitPatterns, current)

		isCoupled := i < n-2 && data[i].IsRepetitionOf(data[i+2])

		if !isCoupled {
			current.AlternatingMonoPatterns = append(current.AlternatingMonoPatterns, i)
			continue
		}

		for isCoupled {
			current.AlternatingMonoPatterns = append(current.AlternatingMonoPatterns, i)
			i++
			isCoupled = i < n-2 && data[i].IsRepetitionOf(data[i+2])
		}

		current.AlternatingMonoPatterns = append(current.AlternatingMonoPatterns, i, i+1)
		i++
	}
}
