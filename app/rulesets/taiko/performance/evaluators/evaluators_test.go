package evaluators

import (
	"math"
	"testing"

	"github.com/givikap120/danser-taiko/app/beatmap/difficulty"
	"github.com/givikap120/danser-taiko/app/beatmap/objects"
	"github.com/givikap120/danser-taiko/app/beatmap/timing"
	"github.com/givikap120/danser-taiko/app/rulesets/taiko/performance/preprocessing"
	"github.com/givikap120/danser-taiko/app/rulesets/taiko/performance/tuning"
)

// stream builds count hits spaced by interval, sides taken cyclically from sides ('d' centre, 'k' rim)
func stream(count int, interval float64, sides string) []objects.IHitObject {
	objs := make([]objects.IHitObject, 0, count)

	for i := 0; i < count; i++ {
		objs = append(objs, objects.NewHit(float64(i)*interval, sides[i%len(sides)] == 'k', false))
	}

	return objs
}

func sequenceOf(objs []objects.IHitObject, cp preprocessing.ControlPoints) *preprocessing.Sequence {
	return preprocessing.NewSequence(objs, difficulty.NewDifficulty(5), cp, tuning.Default().Grouping)
}

func TestRatioDifficulty_SymmetryBreaking(t *testing.T) {
	at1 := RatioDifficulty(1)

	if at1 >= RatioDifficulty(0.9) || at1 >= RatioDifficulty(1.1) {
		t.Errorf("exact 1:1 should score below near 1:1: %v vs %v / %v", at1, RatioDifficulty(0.9), RatioDifficulty(1.1))
	}

	if math.Abs(RatioDifficulty(0.9)-0.862) > 0.01 {
		t.Errorf("RatioDifficulty(0.9): got %v, want ~0.862", RatioDifficulty(0.9))
	}
}

func TestRatioDifficulty_Guards(t *testing.T) {
	for _, r := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), 5e-324} {
		if got := RatioDifficulty(r); got != RatioDifficulty(0) {
			t.Errorf("RatioDifficulty(%v): got %v, want the value at 0", r, got)
		}
	}

	for r := 0.05; r < 4; r += 0.05 {
		if got := RatioDifficulty(r); got < 0 || math.IsNaN(got) {
			t.Errorf("RatioDifficulty(%v) = %v", r, got)
		}
	}
}

func TestRhythm_UniformStream(t *testing.T) {
	seq := sequenceOf(stream(100, 150, "dk"), nil)
	hitWindow := difficulty.NewDifficulty(5).GreatWindow()

	for _, obj := range seq.Objects {
		if v := EvaluateRhythmDifficultyOf(obj, hitWindow, tuning.Default().RhythmPenalty); math.Abs(v) > 1e-9 {
			t.Errorf("object %d: rhythm %v, want ~0", obj.Index, v)
		}
	}
}

func TestRhythm_ChangeScoresOnGroupStart(t *testing.T) {
	objs := stream(20, 150, "d")
	for i := 0; i < 10; i++ {
		objs = append(objs, objects.NewHit(19*150+float64(i+1)*100, false, false))
	}

	seq := sequenceOf(objs, nil)
	hitWindow := difficulty.NewDifficulty(5).GreatWindow()
	cfg := tuning.Default().RhythmPenalty

	scored := 0

	for _, obj := range seq.Objects {
		v := EvaluateRhythmDifficultyOf(obj, hitWindow, cfg)
		if v < 0 {
			t.Fatalf("object %d: negative rhythm %v", obj.Index, v)
		}

		if v > 0 {
			scored++

			if g := obj.SameRhythmGrouping(); g.FirstHitObject() != obj {
				t.Errorf("object %d scored without starting a grouping", obj.Index)
			}
		}
	}

	if scored == 0 {
		t.Error("a tempo change should produce rhythm difficulty")
	}
}

func TestColour_Saturation(t *testing.T) {
	seq := sequenceOf(stream(100, 150, "dk"), nil)
	cfg := tuning.Default().ColourPenalty

	prev := math.Inf(1)

	for _, obj := range seq.Objects {
		v := EvaluateColourDifficultyOf(obj, cfg)

		if v < 0 {
			t.Fatalf("object %d: negative colour %v", obj.Index, v)
		}

		if v > prev+1e-12 {
			t.Errorf("object %d: colour rose from %v to %v", obj.Index, prev, v)
		}

		if obj.Index >= 5 && v > 1e-3 {
			t.Errorf("object %d: colour %v should have saturated", obj.Index, v)
		}

		prev = v
	}
}

func TestColour_OnlyStartsScore(t *testing.T) {
	seq := sequenceOf(stream(40, 150, "ddkk"), nil)
	cfg := tuning.Default().ColourPenalty

	for _, obj := range seq.Objects {
		if obj.MonoStreakIndex() > 0 {
			if v := EvaluateColourDifficultyOf(obj, cfg); v != 0 {
				t.Errorf("object %d inside a streak: colour %v, want 0", obj.Index, v)
			}
		}
	}
}

func TestStamina(t *testing.T) {
	objs := append(stream(20, 120, "d"), objects.NewDrumRoll(20*120, 21*120, false))

	seq := sequenceOf(objs, nil)

	if v := EvaluateStaminaDifficultyOf(seq.Objects[0]); v != stamina_base_strain {
		t.Errorf("first object: got %v, want base strain", v)
	}

	last := seq.Objects[len(seq.Objects)-1]
	if v := EvaluateStaminaDifficultyOf(last); v != 0 {
		t.Errorf("drum roll: got %v, want 0", v)
	}

	// 8 fingers on a mono stream: the same finger hits again 8 notes later
	mono := seq.Objects[15]
	want := stamina_base_strain + 20/(8*120.0) + 0.5*20/240.0

	if v := EvaluateStaminaDifficultyOf(mono); math.Abs(v-want) > 1e-9 {
		t.Errorf("mono stream: got %v, want %v", v, want)
	}

	alt := sequenceOf(stream(20, 150, "dk"), nil)
	want = stamina_base_strain + 20/600.0 + 0.5*20/300.0

	if v := EvaluateStaminaDifficultyOf(alt.Objects[10]); math.Abs(v-want) > 1e-9 {
		t.Errorf("alternating stream: got %v, want %v", v, want)
	}
}

func TestReading_Velocity(t *testing.T) {
	reading := func(bpm float64) float64 {
		tm := timing.NewTimings()
		tm.AddTempo(0, bpm)

		seq := sequenceOf(stream(6, 100, "d"), tm)

		return EvaluateReadingDifficultyOf(seq.Objects[2])
	}

	slow, mid, fast := reading(200), reading(500), reading(700)

	if !(slow < mid && mid < fast) {
		t.Errorf("reading should grow with velocity: %v, %v, %v", slow, mid, fast)
	}

	if slow > 0.05 {
		t.Errorf("slow scroll: got %v, want ~0", slow)
	}

	if fast < 1 {
		t.Errorf("fast scroll: got %v, want > 1", fast)
	}
}

func TestRhythm_DurationPenalty(t *testing.T) {
	objs := stream(3, 200, "d")
	for i := 0; i < 6; i++ {
		objs = append(objs, objects.NewHit(400+float64(i+1)*100, false, false))
	}

	seq := sequenceOf(objs, nil)
	cfg := tuning.Default().RhythmPenalty

	group := seq.SameRhythmGroupings[0]
	if group.Duration() != 600 {
		t.Fatalf("first grouping duration: got %v, want 600", group.Duration())
	}

	// no earlier intervals to repeat, so only the duration term applies
	for _, c := range []struct {
		hitWindow float64
		want      float64
	}{
		{29.5, 0.5},
		{4800, 0.75},
		{1e12, 1},
	} {
		if got := repeatedIntervalPenalty(group, c.hitWindow, cfg); math.Abs(got-c.want) > 1e-6 {
			t.Errorf("hit window %v: penalty %v, want %v", c.hitWindow, got, c.want)
		}
	}
}
