package difficulty

import "testing"

func TestDifficultyRange(t *testing.T) {
	cases := []struct {
		od, want float64
	}{
		{0, 50},
		{5, 35},
		{10, 20},
		{2.5, 42.5},
		{7.5, 27.5},
	}

	for _, c := range cases {
		if got := DifficultyRange(c.od, GreatWindowRange); got != c.want {
			t.Errorf("DifficultyRange(%v): got %v, want %v", c.od, got, c.want)
		}
	}
}

func TestHitWindows(t *testing.T) {
	diff := NewDifficulty(5)

	if diff.Hit300U != 34.5 {
		t.Errorf("great window: got %v, want 34.5", diff.Hit300U)
	}

	if diff.GreatWindow() != 34.5 {
		t.Errorf("nomod rate-adjusted window: got %v", diff.GreatWindow())
	}

	diff.SetMods(DoubleTime)

	if diff.Speed != 1.5 {
		t.Fatalf("DT speed: got %v, want 1.5", diff.Speed)
	}

	if diff.GreatWindow() != 23 {
		t.Errorf("DT window: got %v, want 23", diff.GreatWindow())
	}

	diff.SetCustomSpeed(2)

	if diff.Speed != 2 {
		t.Errorf("custom speed: got %v, want 2", diff.Speed)
	}
}

func TestODMods(t *testing.T) {
	diff := NewDifficulty(8)
	diff.SetMods(HardRock)

	if diff.ODReal != 10 {
		t.Errorf("HR OD: got %v, want 10", diff.ODReal)
	}

	diff.SetMods(Easy)

	if diff.ODReal != 4 {
		t.Errorf("EZ OD: got %v, want 4", diff.ODReal)
	}
}

func TestParseMods(t *testing.T) {
	mods := ParseMods("hdnc")

	if !mods.Active(Hidden) || !mods.Active(Nightcore) || !mods.Active(DoubleTime) {
		t.Errorf("ParseMods(hdnc): got %v", mods.String())
	}

	if got := mods.String(); got != "HDNC" {
		t.Errorf("String: got %q, want HDNC", got)
	}

	if got := GetDiffMaskedMods(Hidden | Relax); got != Relax {
		t.Errorf("masked: got %v", got.String())
	}
}
