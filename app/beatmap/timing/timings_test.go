package timing

import "testing"

func TestTempoAt(t *testing.T) {
	tm := NewTimings()

	if got := tm.TempoAt(500); got != DefaultBPM {
		t.Errorf("empty timings: got %v, want %v", got, DefaultBPM)
	}

	tm.AddTempo(1000, 200)
	tm.AddTempo(0, 150)

	cases := []struct {
		time, want float64
	}{
		{-100, 150},
		{0, 150},
		{999, 150},
		{1000, 200},
		{5000, 200},
	}

	for _, c := range cases {
		if got := tm.TempoAt(c.time); got != c.want {
			t.Errorf("TempoAt(%v): got %v, want %v", c.time, got, c.want)
		}
	}
}

func TestVelocityAt(t *testing.T) {
	tm := NewTimings()
	tm.BaseVelocity = 1.4
	tm.AddVelocity(2000, 2)

	if got := tm.VelocityAt(0); got != 1.4 {
		t.Errorf("before first point: got %v, want 1.4", got)
	}

	if got := tm.VelocityAt(2000); got != 2.8 {
		t.Errorf("at point: got %v, want 2.8", got)
	}
}
