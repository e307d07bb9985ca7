package objects

type IHitObject interface {
	GetStartTime() float64
	GetEndTime() float64
	GetDuration() float64
}

type HitObject struct {
	StartTime float64
	EndTime   float64
}

func (o *HitObject) GetStartTime() float64 {
	return o.StartTime
}

func (o *HitObject) GetEndTime() float64 {
	return o.EndTime
}

func (o *HitObject) GetDuration() float64 {
	return o.EndTime - o.StartTime
}

// Hit is a single don (centre) or kat (rim) note
type Hit struct {
	HitObject

	Rim    bool
	Strong bool
}

func NewHit(time float64, rim, strong bool) *Hit {
	return &Hit{
		HitObject: HitObject{StartTime: time, EndTime: time},
		Rim:       rim,
		Strong:    strong,
	}
}

// SameSide reports whether both hits are played on the same part of the drum
func (h *Hit) SameSide(other *Hit) bool {
	return h.Rim == other.Rim
}

// DrumRoll is a held note; only its head contributes to combo
type DrumRoll struct {
	HitObject

	Strong bool
}

func NewDrumRoll(startTime, endTime float64, strong bool) *DrumRoll {
	return &DrumRoll{
		HitObject: HitObject{StartTime: startTime, EndTime: endTime},
		Strong:    strong,
	}
}

// Swell is a spinner-like object requiring a number of alternating hits
type Swell struct {
	HitObject

	RequiredHits int
}

func NewSwell(startTime, endTime float64, requiredHits int) *Swell {
	return &Swell{
		HitObject:    HitObject{StartTime: startTime, EndTime: endTime},
		RequiredHits: requiredHits,
	}
}
