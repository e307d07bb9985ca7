package timing

import (
	"sort"
)

const (
	DefaultBPM      = 120.0
	DefaultVelocity = 1.0
)

// TempoPoint is an uninherited timing point
type TempoPoint struct {
	Time float64 `yaml:"time"`
	BPM  float64 `yaml:"bpm"`
}

// VelocityPoint is an inherited (scroll speed) timing point
type VelocityPoint struct {
	Time       float64 `yaml:"time"`
	Multiplier float64 `yaml:"multiplier"`
}

type Timings struct {
	tempo    []TempoPoint
	velocity []VelocityPoint

	// BaseVelocity is the beatmap-wide slider multiplier applied on top of every velocity point
	BaseVelocity float64
}

func NewTimings() *Timings {
	return &Timings{BaseVelocity: DefaultVelocity}
}

func (t *Timings) AddTempo(time, bpm float64) {
	t.tempo = append(t.tempo, TempoPoint{Time: time, BPM: bpm})

	sort.SliceStable(t.tempo, func(i, j int) bool {
		return t.tempo[i].Time < t.tempo[j].Time
	})
}

func (t *Timings) AddVelocity(time, multiplier float64) {
	t.velocity = append(t.velocity, VelocityPoint{Time: time, Multiplier: multiplier})

	sort.SliceStable(t.velocity, func(i, j int) bool {
		return t.velocity[i].Time < t.velocity[j].Time
	})
}

func (t *Timings) TempoPoints() []TempoPoint {
	return t.tempo
}

func (t *Timings) VelocityPoints() []VelocityPoint {
	return t.velocity
}

// TempoAt returns the BPM of the nearest tempo point at or before time.
// Times before the first point use the first point, an empty list uses DefaultBPM.
func (t *Timings) TempoAt(time float64) float64 {
	if len(t.tempo) == 0 {
		return DefaultBPM
	}

	i := sort.Search(len(t.tempo), func(i int) bool {
		return t.tempo[i].Time > time
	})

	return t.tempo[max(0, i-1)].BPM
}

// VelocityAt returns the local scroll speed multiplier at time, scaled by BaseVelocity.
// Unlike tempo, times before the first velocity point use the default multiplier.
func (t *Timings) VelocityAt(time float64) float64 {
	base := t.BaseVelocity
	if base <= 0 {
		base = DefaultVelocity
	}

	i := sort.Search(len(t.velocity), func(i int) bool {
		return t.velocity[i].Time > time
	})

	if i == 0 {
		return base * DefaultVelocity
	}

	return base * t.velocity[i-1].Multiplier
}
