package preprocessing

import (
	"math"

	"github.com/givikap120/danser-taiko/app/rulesets/taiko/performance/tuning"
)

// SameRhythmGrouping is a run of hits played at a constant interval
type SameRhythmGrouping struct {
	seq *Sequence

	HitObjects []int

	// Previous is the preceding grouping, -1 for the first
	Previous int

	// HitObjectInterval is the mean time between members, valid only when HasHitObjectInterval
	HitObjectInterval    float64
	HasHitObjectInterval bool

	// HitObjectIntervalRatio compares HitObjectInterval with the previous grouping's, 1 when either is missing
	HitObjectIntervalRatio float64

	// Interval is the time since the previous grouping started, +Inf for the first
	Interval float64
}

func newSameRhythmGrouping(seq *Sequence, previous int, members []int) *SameRhythmGrouping {
	g := &SameRhythmGrouping{
		seq:                    seq,
		HitObjects:             members,
		Previous:               previous,
		HitObjectIntervalRatio: 1,
		Interval:               math.Inf(1),
	}

	if len(members) > 1 {
		g.HitObjectInterval = g.Duration() / float64(len(members)-1)
		g.HasHitObjectInterval = true
	}

	if prev := g.PreviousGrouping(); prev != nil {
		if g.HasHitObjectInterval && prev.HasHitObjectInterval {
			g.HitObjectIntervalRatio = g.HitObjectInterval / prev.HitObjectInterval
		}

		g.Interval = g.StartTime() - prev.StartTime()
	}

	return g
}

func (g *SameRhythmGrouping) PreviousGrouping() *SameRhythmGrouping {
	return g.seq.SameRhythmGroupingAt(g.Previous)
}

func (g *SameRhythmGrouping) FirstHitObject() *DifficultyObject {
	return g.seq.Objects[g.HitObjects[0]]
}

func (g *SameRhythmGrouping) StartTime() float64 {
	return g.FirstHitObject().StartTime
}

func (g *SameRhythmGrouping) Duration() float64 {
	return g.seq.Objects[g.HitObjects[len(g.HitObjects)-1]].StartTime - g.StartTime()
}

// SamePatternGrouping is a run of same rhythm groupings separated by a constant interval
type SamePatternGrouping struct {
	seq *Sequence

	Groups []int

	Previous int
}

func (p *SamePatternGrouping) PreviousGrouping() *SamePatternGrouping {
	return p.seq.SamePatternGroupingAt(p.Previous)
}

func (p *SamePatternGrouping) FirstHitObject() *DifficultyObject {
	return p.seq.SameRhythmGroupings[p.Groups[0]].FirstHitObject()
}

// GroupInterval is the interval of the second grouping when present, since the first one's
// interval reaches outside the pattern
func (p *SamePatternGrouping) GroupInterval() float64 {
	if len(p.Groups) > 1 {
		return p.seq.SameRhythmGroupings[p.Groups[1]].Interval
	}

	return p.seq.SameRhythmGroupings[p.Groups[0]].Interval
}

func (p *SamePatternGrouping) IntervalRatio() float64 {
	prev := p.PreviousGrouping()
	if prev == nil {
		return 1
	}

	return p.GroupInterval() / prev.GroupInterval()
}

func processRhythm(seq *Sequence, cfg tuning.GroupingConfig) {
	notes := seq.notes

	rhythmGroups := groupByInterval(len(notes), func(i int) float64 {
		return seq.Objects[notes[i]].DeltaTime
	}, cfg.IntervalMargin)

	for _, group := range rhythmGroups {
		members := make([]int, len(group))
		for i, n := range group {
			members[i] = notes[n]
		}

		g := newSameRhythmGrouping(seq, len(seq.SameRhythmGroupings)-1, members)
		seq.SameRhythmGroupings = append(seq.SameRhythmGroupings, g)

		gi := len(seq.SameRhythmGroupings) - 1
		for _, objIdx := range members {
			seq.Objects[objIdx].Rhythm.SameRhythm = gi
		}
	}

	patternGroups := groupByInterval(len(seq.SameRhythmGroupings), func(i int) float64 {
		return seq.SameRhythmGroupings[i].Interval
	}, cfg.IntervalMargin)

	for _, group := range patternGroups {
		p := &SamePatternGrouping{seq: seq, Groups: group, Previous: len(seq.SamePatternGroupings) - 1}
		seq.SamePatternGroupings = append(seq.SamePatternGroupings, p)

		pi := len(seq.SamePatternGroupings) - 1
		for _, gi := range group {
			for _, objIdx := range seq.SameRhythmGroupings[gi].HitObjects {
				seq.Objects[objIdx].Rhythm.SamePattern = pi
			}
		}
	}
}
