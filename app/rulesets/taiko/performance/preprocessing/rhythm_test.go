package preprocessing

import (
	"math"
	"reflect"
	"testing"

	"github.com/givikap120/danser-taiko/app/beatmap/objects"
)

func TestGroupByInterval(t *testing.T) {
	cases := []struct {
		name      string
		intervals []float64
		want      [][]int
	}{
		{"empty", nil, [][]int{}},
		{"single", []float64{100}, [][]int{{0}}},
		{"uniform", []float64{100, 100, 100, 100, 100}, [][]int{{0, 1, 2, 3, 4}}},
		{"within margin", []float64{100, 103, 98, 101}, [][]int{{0, 1, 2, 3}}},
		{"slowdown then speedup", []float64{100, 100, 100, 200, 200, 50, 50}, [][]int{{0, 1, 2}, {3}, {4, 5, 6}}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := groupByInterval(len(c.intervals), func(i int) float64 { return c.intervals[i] }, 5)

			if !reflect.DeepEqual(got, c.want) {
				t.Errorf("got %v, want %v", got, c.want)
			}
		})
	}
}

func TestRhythm_Partition(t *testing.T) {
	objs := pattern(100, "dddrdkdk")
	objs = append(objs,
		objects.NewHit(1200, false, false),
		objects.NewHit(1250, true, false),
		objects.NewHit(1300, false, false),
		objects.NewHit(1500, true, false),
	)

	seq := newSeq(objs)

	covered := 0

	for gi, g := range seq.SameRhythmGroupings {
		for _, idx := range g.HitObjects {
			if seq.Objects[idx].Rhythm.SameRhythm != gi {
				t.Errorf("object %d: grouping %d, want %d", idx, seq.Objects[idx].Rhythm.SameRhythm, gi)
			}

			covered++
		}
	}

	if covered != len(seq.Notes()) {
		t.Errorf("rhythm groupings cover %d of %d notes", covered, len(seq.Notes()))
	}

	for _, obj := range seq.Objects {
		if !obj.IsHit && (obj.Rhythm.SameRhythm != -1 || obj.Rhythm.SamePattern != -1) {
			t.Errorf("non-hit %d has rhythm groupings", obj.Index)
		}

		if obj.IsHit && obj.SamePatternGrouping() == nil {
			t.Errorf("hit %d has no pattern grouping", obj.Index)
		}
	}

	groups := 0
	for _, p := range seq.SamePatternGroupings {
		groups += len(p.Groups)
	}

	if groups != len(seq.SameRhythmGroupings) {
		t.Errorf("pattern groupings cover %d of %d rhythm groupings", groups, len(seq.SameRhythmGroupings))
	}
}

func TestRhythm_GroupingFields(t *testing.T) {
	objs := []objects.IHitObject{
		objects.NewHit(0, false, false),
		objects.NewHit(100, false, false),
		objects.NewHit(200, false, false),
		objects.NewHit(300, false, false),
		objects.NewHit(400, false, false),
		objects.NewHit(600, false, false),
		objects.NewHit(800, false, false),
		objects.NewHit(1000, false, false),
	}

	seq := newSeq(objs)

	if len(seq.SameRhythmGroupings) != 2 {
		t.Fatalf("got %d groupings, want 2", len(seq.SameRhythmGroupings))
	}

	first, second := seq.SameRhythmGroupings[0], seq.SameRhythmGroupings[1]

	if !math.IsInf(first.Interval, 1) {
		t.Errorf("first interval: got %v, want +Inf", first.Interval)
	}

	if first.HitObjectIntervalRatio != 1 {
		t.Errorf("first ratio: got %v, want 1", first.HitObjectIntervalRatio)
	}

	if !first.HasHitObjectInterval || first.HitObjectInterval != 100 {
		t.Errorf("first hit interval: got %v", first.HitObjectInterval)
	}

	if second.HitObjectInterval != 200 || second.HitObjectIntervalRatio != 2 {
		t.Errorf("second: interval %v ratio %v", second.HitObjectInterval, second.HitObjectIntervalRatio)
	}

	if second.Interval != second.StartTime()-first.StartTime() {
		t.Errorf("second interval: got %v", second.Interval)
	}

	if first.Duration() != 200 || second.Duration() != 400 {
		t.Errorf("durations: got %v and %v, want 200 and 400", first.Duration(), second.Duration())
	}

	p := seq.SamePatternGroupings[0]
	if p.IntervalRatio() != 1 {
		t.Errorf("first pattern ratio: got %v, want 1", p.IntervalRatio())
	}
}

func TestRhythm_HitObjectIntervalIsMean(t *testing.T) {
	// a stream that slows by 4ms per note stays within the grouping margin
	objs := []objects.IHitObject{
		objects.NewHit(0, false, false),
		objects.NewHit(100, false, false),
		objects.NewHit(200, false, false),
		objects.NewHit(304, false, false),
		objects.NewHit(412, false, false),
		objects.NewHit(524, false, false),
	}

	seq := newSeq(objs)

	if len(seq.SameRhythmGroupings) != 1 {
		t.Fatalf("got %d groupings, want 1", len(seq.SameRhythmGroupings))
	}

	g := seq.SameRhythmGroupings[0]

	if g.Duration() != 324 {
		t.Errorf("duration: got %v, want 324", g.Duration())
	}

	if !g.HasHitObjectInterval || g.HitObjectInterval != 108 {
		t.Errorf("hit interval: got %v, want the mean 108", g.HitObjectInterval)
	}
}
