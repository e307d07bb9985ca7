package difficulty

import (
	"math"

	"github.com/givikap120/danser-taiko/framework/math/mutils"
)

// Hit window ranges in milliseconds at OD 0, 5 and 10
var (
	GreatWindowRange = [3]float64{50, 35, 20}
	OkWindowRange    = [3]float64{120, 80, 50}
	MissWindowRange  = [3]float64{135, 95, 70}
)

type Difficulty struct {
	baseOD float64

	// ODReal is the overall difficulty after EZ/HR adjustments
	ODReal float64

	// Speed is the clock rate the chart is played at
	Speed float64

	// Hit windows, not adjusted by Speed
	Hit300U float64
	Hit100U float64
	HitMissU float64

	Mods Modifier

	// IsConvert marks charts converted from another ruleset
	IsConvert bool

	customSpeed float64
}

func NewDifficulty(od float64) *Difficulty {
	diff := &Difficulty{baseOD: od}
	diff.calculate()

	return diff
}

func (diff *Difficulty) calculate() {
	od := diff.baseOD

	if diff.Mods.Active(HardRock) {
		od = math.Min(od*1.4, 10)
	}

	if diff.Mods.Active(Easy) {
		od /= 2
	}

	diff.ODReal = od

	diff.Hit300U = math.Floor(DifficultyRange(od, GreatWindowRange)) - 0.5
	diff.Hit100U = math.Floor(DifficultyRange(od, OkWindowRange)) - 0.5
	diff.HitMissU = math.Floor(DifficultyRange(od, MissWindowRange)) - 0.5

	diff.Speed = 1.0

	if diff.Mods.Active(DoubleTime) || diff.Mods.Active(Nightcore) {
		diff.Speed = 1.5
	}

	if diff.Mods.Active(HalfTime) {
		diff.Speed = 0.75
	}

	if diff.customSpeed > 0 {
		diff.Speed = diff.customSpeed
	}
}

func (diff *Difficulty) SetOD(od float64) {
	diff.baseOD = od
	diff.calculate()
}

func (diff *Difficulty) GetOD() float64 {
	return diff.baseOD
}

func (diff *Difficulty) SetMods(mods Modifier) {
	diff.Mods = mods
	diff.calculate()
}

// SetCustomSpeed overrides the clock rate implied by DT/HT, 0 restores it
func (diff *Difficulty) SetCustomSpeed(speed float64) {
	diff.customSpeed = math.Max(0, speed)
	diff.calculate()
}

func (diff *Difficulty) CheckModActive(mods Modifier) bool {
	return diff.Mods&mods > 0
}

// GreatWindow returns the great hit window in rate-adjusted milliseconds
func (diff *Difficulty) GreatWindow() float64 {
	return diff.Hit300U / diff.Speed
}

// OkWindow returns the ok hit window in rate-adjusted milliseconds
func (diff *Difficulty) OkWindow() float64 {
	return diff.Hit100U / diff.Speed
}

func (diff *Difficulty) Clone() *Difficulty {
	c := *diff
	return &c
}

// DifficultyRange interpolates piecewise-linearly between values at difficulty 0, 5 and 10
func DifficultyRange(value float64, r [3]float64) float64 {
	value = mutils.Clamp(value, 0, 10)

	if value > 5 {
		return r[1] + (r[2]-r[1])*(value-5)/5
	}

	if value < 5 {
		return r[1] + (r[1]-r[0])*(value-5)/5
	}

	return r[1]
}
