package difficulty

import (
	"strings"
)

type Modifier int64

const (
	None     Modifier = 0
	NoFail   Modifier = 1 << 0
	Easy     Modifier = 1 << 1
	Hidden   Modifier = 1 << 3
	HardRock Modifier = 1 << 4
	// SuddenDeath = 1 << 5 has no effect on difficulty
	DoubleTime Modifier = 1 << 6
	Relax      Modifier = 1 << 7
	HalfTime   Modifier = 1 << 8
	Nightcore  Modifier = 1 << 9
	Flashlight Modifier = 1 << 10

	// DifficultyAdjustMask holds the mods that change star rating
	DifficultyAdjustMask = Easy | HardRock | DoubleTime | Relax | HalfTime | Nightcore
)

var modNames = []struct {
	mod   Modifier
	short string
}{
	{NoFail, "NF"},
	{Easy, "EZ"},
	{Hidden, "HD"},
	{HardRock, "HR"},
	{DoubleTime, "DT"},
	{Relax, "RX"},
	{HalfTime, "HT"},
	{Nightcore, "NC"},
	{Flashlight, "FL"},
}

func (mods Modifier) Active(mod Modifier) bool {
	return mods&mod == mod
}

func (mods Modifier) String() string {
	var b strings.Builder

	for _, m := range modNames {
		if m.mod == DoubleTime && mods.Active(Nightcore) {
			continue
		}

		if mods.Active(m.mod) {
			b.WriteString(m.short)
		}
	}

	return b.String()
}

// ParseMods reads a concatenated list of two letter acronyms like "HDDT"
func ParseMods(s string) Modifier {
	s = strings.ToUpper(s)

	var mods Modifier

	for i := 0; i+1 < len(s); i += 2 {
		for _, m := range modNames {
			if s[i:i+2] == m.short {
				mods |= m.mod
			}
		}
	}

	if mods.Active(Nightcore) {
		mods |= DoubleTime
	}

	return mods
}

// GetDiffMaskedMods returns only the mods affecting difficulty calculation
func GetDiffMaskedMods(mods Modifier) Modifier {
	return mods & DifficultyAdjustMask
}
