package dcutils

import (
	"math"
	"testing"
)

func TestLogistic(t *testing.T) {
	if got := Logistic(5, 5, 3, 1); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("midpoint: got %v, want 0.5", got)
	}

	if got := Logistic(1000, 5, 3, 2); math.Abs(got-2) > 1e-9 {
		t.Errorf("saturation: got %v, want 2", got)
	}

	if got := LogisticExp(0, 4); got != 2 {
		t.Errorf("LogisticExp(0, 4): got %v, want 2", got)
	}

	// LogisticExp(m*(o-x)) must equal Logistic(x, o, m)
	x, o, m := 3.3, 2.0, 1.7
	if a, b := Logistic(x, o, m, 1), LogisticExp(m*(o-x), 1); math.Abs(a-b) > 1e-12 {
		t.Errorf("forms disagree: %v vs %v", a, b)
	}
}

func TestNorm(t *testing.T) {
	if got := Norm(2, 3, 4); math.Abs(got-5) > 1e-12 {
		t.Errorf("Norm(2, 3, 4): got %v, want 5", got)
	}

	if got := Norm(1, 1, 2, 3); math.Abs(got-6) > 1e-12 {
		t.Errorf("Norm(1, ...): got %v, want 6", got)
	}

	if got := Norm(1.5, 0, 0); got != 0 {
		t.Errorf("Norm of zeros: got %v", got)
	}
}

func TestBellCurve(t *testing.T) {
	if got := BellCurve(1, 1, 0.5, 1); got != 1 {
		t.Errorf("peak: got %v, want 1", got)
	}

	if BellCurve(0.9, 1, 0.5, 1) <= BellCurve(0.9, 1, 0.3, 1) {
		t.Error("wider curve should be higher away from the mean")
	}

	if a, b := BellCurve(0.8, 1, 0.5, 1), BellCurve(1.2, 1, 0.5, 1); math.Abs(a-b) > 1e-12 {
		t.Errorf("not symmetric: %v vs %v", a, b)
	}
}

func TestErfRoundTrip(t *testing.T) {
	for _, x := range []float64{-0.9, -0.25, 0, 0.3, 0.99} {
		if got := Erf(ErfInv(x)); math.Abs(got-x) > 1e-9 {
			t.Errorf("Erf(ErfInv(%v)) = %v", x, got)
		}
	}
}

func TestBPMConversion(t *testing.T) {
	if got := BPMToMilliseconds(150, 4); got != 100 {
		t.Errorf("150bpm 1/4: got %v, want 100", got)
	}

	if got := MillisecondsToBPM(100, 4); got != 150 {
		t.Errorf("100ms 1/4: got %v, want 150", got)
	}
}
