// Package chart loads taiko charts from YAML fixtures.
//
// A fixture lists objects explicitly, as note patterns, or both:
//
//	title: stream test
//	overall_difficulty: 5
//	tempo:
//	  - {time: 0, bpm: 180}
//	patterns:
//	  - {start: 1000, interval: 83.3, notes: "dkdk ddkk", repeat: 16}
//	objects:
//	  - {time: 20000, type: roll, end: 21000}
//
// In pattern notes 'd' and 'k' are centre and rim hits, upper case for strong
// hits, 'r' a drum roll lasting one interval, 's' a swell lasting one interval,
// and '-' or ' ' a rest.
package chart

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/givikap120/danser-taiko/app/beatmap/difficulty"
	"github.com/givikap120/danser-taiko/app/beatmap/objects"
	"github.com/givikap120/danser-taiko/app/beatmap/timing"
	"gopkg.in/yaml.v3"
)

type Object struct {
	Time   float64 `yaml:"time"`
	Type   string  `yaml:"type"`
	End    float64 `yaml:"end"`
	Strong bool    `yaml:"strong"`

	// Hits is the number of hits a swell requires
	Hits int `yaml:"hits"`
}

type Pattern struct {
	Start    float64 `yaml:"start"`
	Interval float64 `yaml:"interval"`
	Notes    string  `yaml:"notes"`
	Repeat   int     `yaml:"repeat"`
}

type Chart struct {
	Title string `yaml:"title"`

	OverallDifficulty float64 `yaml:"overall_difficulty"`

	// Convert marks charts converted from another ruleset
	Convert bool `yaml:"convert"`

	BaseVelocity float64 `yaml:"base_velocity"`

	Tempo    []timing.TempoPoint    `yaml:"tempo"`
	Velocity []timing.VelocityPoint `yaml:"velocity"`

	Objects  []Object  `yaml:"objects"`
	Patterns []Pattern `yaml:"patterns"`
}

func Load(path string) (*Chart, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("chart: read file: %w", err)
	}

	return Parse(data)
}

func Parse(data []byte) (*Chart, error) {
	c := &Chart{OverallDifficulty: 5}

	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("chart: parse yaml: %w", err)
	}

	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("chart: %w", err)
	}

	return c, nil
}

func (c *Chart) validate() error {
	if c.OverallDifficulty < 0 || c.OverallDifficulty > 10 {
		return fmt.Errorf("overall_difficulty must be in [0, 10]")
	}

	for i, tp := range c.Tempo {
		if tp.BPM <= 0 {
			return fmt.Errorf("tempo[%d]: bpm must be positive", i)
		}
	}

	for i, o := range c.Objects {
		switch strings.ToLower(o.Type) {
		case "don", "d", "kat", "k":
		case "roll", "swell":
			if o.End < o.Time {
				return fmt.Errorf("objects[%d]: end precedes time", i)
			}
		default:
			return fmt.Errorf("objects[%d]: unknown type %q", i, o.Type)
		}
	}

	for i, p := range c.Patterns {
		if p.Interval <= 0 {
			return fmt.Errorf("patterns[%d]: interval must be positive", i)
		}

		if strings.Trim(p.Notes, "dkDKrs- ") != "" {
			return fmt.Errorf("patterns[%d]: notes may only contain d, k, D, K, r, s, - and spaces", i)
		}
	}

	return nil
}

// HitObjects returns every object of the chart sorted by start time
func (c *Chart) HitObjects() []objects.IHitObject {
	objs := make([]objects.IHitObject, 0, len(c.Objects))

	for _, o := range c.Objects {
		objs = append(objs, o.toHitObject())
	}

	for _, p := range c.Patterns {
		repeat := max(1, p.Repeat)
		length := float64(len(p.Notes)) * p.Interval

		for r := 0; r < repeat; r++ {
			objs = append(objs, FromPattern(p.Start+float64(r)*length, p.Interval, p.Notes)...)
		}
	}

	sort.SliceStable(objs, func(i, j int) bool {
		return objs[i].GetStartTime() < objs[j].GetStartTime()
	})

	return objs
}

func (o Object) toHitObject() objects.IHitObject {
	switch strings.ToLower(o.Type) {
	case "kat", "k":
		return objects.NewHit(o.Time, true, o.Strong)
	case "roll":
		return objects.NewDrumRoll(o.Time, o.End, o.Strong)
	case "swell":
		return objects.NewSwell(o.Time, o.End, o.Hits)
	default:
		return objects.NewHit(o.Time, false, o.Strong)
	}
}

// FromPattern expands pattern notes into objects, one note per interval starting at start
func FromPattern(start, interval float64, notes string) []objects.IHitObject {
	objs := make([]objects.IHitObject, 0, len(notes))

	for i, n := range notes {
		t := start + float64(i)*interval

		switch n {
		case 'd', 'D':
			objs = append(objs, objects.NewHit(t, false, n == 'D'))
		case 'k', 'K':
			objs = append(objs, objects.NewHit(t, true, n == 'K'))
		case 'r':
			objs = append(objs, objects.NewDrumRoll(t, t+interval, false))
		case 's':
			objs = append(objs, objects.NewSwell(t, t+interval, 1))
		}
	}

	return objs
}

func (c *Chart) Timings() *timing.Timings {
	t := timing.NewTimings()

	if c.BaseVelocity > 0 {
		t.BaseVelocity = c.BaseVelocity
	}

	for _, p := range c.Tempo {
		t.AddTempo(p.Time, p.BPM)
	}

	for _, p := range c.Velocity {
		t.AddVelocity(p.Time, p.Multiplier)
	}

	return t
}

// Difficulty returns the chart's difficulty settings with mods applied, speed > 0 overrides the mod clock rate
func (c *Chart) Difficulty(mods difficulty.Modifier, speed float64) *difficulty.Difficulty {
	diff := difficulty.NewDifficulty(c.OverallDifficulty)
	diff.IsConvert = c.Convert
	diff.SetMods(mods)

	if speed > 0 {
		diff.SetCustomSpeed(speed)
	}

	return diff
}
