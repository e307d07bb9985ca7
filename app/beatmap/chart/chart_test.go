package chart

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/givikap120/danser-taiko/app/beatmap/difficulty"
	"github.com/givikap120/danser-taiko/app/beatmap/objects"
)

const fixture = `
title: mixed
overall_difficulty: 7
base_velocity: 1.4
tempo:
  - {time: 0, bpm: 180}
velocity:
  - {time: 2000, multiplier: 1.5}
patterns:
  - {start: 1000, interval: 100, notes: "dk-K", repeat: 2}
objects:
  - {time: 500, type: don}
  - {time: 3000, type: roll, end: 3500, strong: true}
  - {time: 4000, type: swell, end: 5000, hits: 10}
`

func writeChart(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "chart.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write chart: %v", err)
	}

	return path
}

func TestLoad_Fixture(t *testing.T) {
	c, err := Load(writeChart(t, fixture))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	objs := c.HitObjects()

	// 1 explicit don, 2×3 pattern notes, roll, swell
	if len(objs) != 9 {
		t.Fatalf("got %d objects, want 9", len(objs))
	}

	for i := 1; i < len(objs); i++ {
		if objs[i].GetStartTime() < objs[i-1].GetStartTime() {
			t.Fatalf("objects not sorted at %d", i)
		}
	}

	if objs[0].GetStartTime() != 500 {
		t.Errorf("first object: got %v, want 500", objs[0].GetStartTime())
	}

	// second repeat starts one pattern length (4 notes × 100ms) later
	if objs[4].GetStartTime() != 1400 {
		t.Errorf("second repeat: got %v, want 1400", objs[4].GetStartTime())
	}

	if strong, ok := objs[3].(*objects.Hit); !ok || !strong.Strong || !strong.Rim {
		t.Errorf("'K' should be a strong rim hit, got %#v", objs[3])
	}

	if _, ok := objs[7].(*objects.DrumRoll); !ok {
		t.Errorf("expected a drum roll, got %T", objs[7])
	}

	if swell, ok := objs[8].(*objects.Swell); !ok || swell.RequiredHits != 10 {
		t.Errorf("expected a swell with 10 hits, got %#v", objs[8])
	}

	tm := c.Timings()
	if tm.TempoAt(100) != 180 {
		t.Errorf("tempo: got %v", tm.TempoAt(100))
	}

	if got := tm.VelocityAt(2500); got != 1.4*1.5 {
		t.Errorf("velocity: got %v, want %v", got, 1.4*1.5)
	}

	diff := c.Difficulty(difficulty.DoubleTime, 0)
	if diff.Speed != 1.5 || diff.GetOD() != 7 {
		t.Errorf("difficulty: speed %v od %v", diff.Speed, diff.GetOD())
	}

	if c.Difficulty(difficulty.DoubleTime, 1.2).Speed != 1.2 {
		t.Error("explicit speed should override mods")
	}
}

func TestParse_Invalid(t *testing.T) {
	cases := map[string]string{
		"od range":      "overall_difficulty: 11",
		"bad bpm":       "tempo:\n  - {time: 0, bpm: 0}",
		"unknown type":  "objects:\n  - {time: 0, type: slider}",
		"roll end":      "objects:\n  - {time: 100, type: roll, end: 50}",
		"bad interval":  "patterns:\n  - {start: 0, interval: 0, notes: d}",
		"bad notes":     "patterns:\n  - {start: 0, interval: 100, notes: dxk}",
		"malformed doc": "objects: [",
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(body))
			if err == nil {
				t.Fatal("expected error")
			}

			if !strings.HasPrefix(err.Error(), "chart:") {
				t.Errorf("error should be prefixed: %v", err)
			}
		})
	}
}

func TestFromPattern(t *testing.T) {
	objs := FromPattern(100, 50, "dK- rs")

	if len(objs) != 4 {
		t.Fatalf("got %d objects, want 4", len(objs))
	}

	want := []float64{100, 150, 300, 350}
	for i, w := range want {
		if objs[i].GetStartTime() != w {
			t.Errorf("object %d: got %v, want %v", i, objs[i].GetStartTime(), w)
		}
	}

	if roll := objs[2]; roll.GetEndTime() != 350 {
		t.Errorf("drum roll end: got %v, want 350", roll.GetEndTime())
	}
}

func TestWatch_Reload(t *testing.T) {
	path := writeChart(t, "title: before")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan *Chart, 8)
	done := make(chan error, 1)

	go func() {
		done <- Watch(ctx, path, func(c *Chart) {
			select {
			case reloaded <- c:
			default:
			}
		})
	}()

	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()

	// Keep writing until the watcher has been registered and picks a write up
	for {
		select {
		case c := <-reloaded:
			// A truncating write can be observed before the new content lands
			if c.Title != "after" {
				continue
			}

			cancel()

			if err := <-done; err != nil {
				t.Errorf("Watch returned %v", err)
			}

			return

		case <-tick.C:
			if err := os.WriteFile(path, []byte("title: after"), 0o644); err != nil {
				t.Fatalf("write: %v", err)
			}

		case <-deadline:
			t.Fatal("no reload within 5s")
		}
	}
}

func TestWatch_MissingFile(t *testing.T) {
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"), func(*Chart) {})
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
