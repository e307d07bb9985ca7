package mutils

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	cases := []struct {
		x, min, max, want float64
	}{
		{-1, 0, 1, 0},
		{0.5, 0, 1, 0.5},
		{2, 0, 1, 1},
	}

	for _, c := range cases {
		if got := Clamp(c.x, c.min, c.max); got != c.want {
			t.Errorf("Clamp(%v, %v, %v): got %v, want %v", c.x, c.min, c.max, got, c.want)
		}
	}

	if got := Clamp(7, 0, 5); got != 5 {
		t.Errorf("Clamp int: got %d, want 5", got)
	}
}

func TestReverseLerp(t *testing.T) {
	if got := ReverseLerp(1277.5, 1000.0, 1555.0); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("midpoint: got %v, want 0.5", got)
	}

	if got := ReverseLerp(10.0, 5.0, 20.0); math.Abs(got-1.0/3) > 1e-12 {
		t.Errorf("third: got %v", got)
	}

	if got := ReverseLerp(-3.0, 5.0, 20.0); got != 0 {
		t.Errorf("below start: got %v, want 0", got)
	}

	if got := ReverseLerp(300.0, 5.0, 20.0); got != 1 {
		t.Errorf("above end: got %v, want 1", got)
	}
}

func TestSmoothsteps(t *testing.T) {
	for _, f := range []func(x, s, e float64) float64{Smoothstep[float64], Smootherstep[float64]} {
		if got := f(0, 0, 1); got != 0 {
			t.Errorf("f(0): got %v", got)
		}

		if got := f(1, 0, 1); got != 1 {
			t.Errorf("f(1): got %v", got)
		}

		if got := f(0.5, 0, 1); math.Abs(got-0.5) > 1e-12 {
			t.Errorf("f(0.5): got %v", got)
		}

		prev := -1.0
		for i := 0; i <= 100; i++ {
			v := f(float64(i)/100, 0, 1)
			if v < prev {
				t.Fatalf("not monotonic at %d: %v < %v", i, v, prev)
			}
			prev = v
		}
	}
}

func TestLerp(t *testing.T) {
	if got := Lerp(0.7, 1.0, 0.5); math.Abs(got-0.85) > 1e-12 {
		t.Errorf("Lerp: got %v, want 0.85", got)
	}
}
