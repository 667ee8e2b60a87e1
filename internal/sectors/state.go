package sectors

import (
	"math"
	"strings"

	"github.com/iburimskiy/sectors/internal/config"
)

// Mode decides what a click on a sector does.
type Mode int

const (
	ModeCut Mode = iota
	ModeMerge
	ModeTap
)

var modeNames = [...]string{"Cut", "Merge", "Tap"}

func (m Mode) String() string {
	if !m.Valid() {
		return "Unknown"
	}
	return modeNames[m]
}

func (m Mode) Valid() bool {
	return m >= ModeCut && m <= ModeTap
}

// Hint is the one-line instruction shown for the mode.
func (m Mode) Hint() string {
	switch m {
	case ModeCut:
		return "Click a slice to cut the circle into one more piece"
	case ModeMerge:
		return "Click a slice to merge two pieces into one"
	case ModeTap:
		return "Tap the pad: each tap is one slice"
	}
	return ""
}

// ParseMode accepts "cut", "merge" or "tap" in any case. Anything else is Cut.
func ParseMode(s string) Mode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "merge":
		return ModeMerge
	case "tap":
		return ModeTap
	}
	return ModeCut
}

// State is everything the controller owns.
type State struct {
	N        int
	Mode     Mode
	TapCount int
}

// Clamp truncates v and saturates it into [MinSectors, MaxSectors]. NaN
// reports false.
func Clamp(v float64) (int, bool) {
	if math.IsNaN(v) {
		return 0, false
	}
	v = math.Floor(v)
	if v < config.MinSectors {
		return config.MinSectors, true
	}
	if v > config.MaxSectors {
		return config.MaxSectors, true
	}
	return int(v), true
}

func clampInt(n int) int {
	if n < config.MinSectors {
		return config.MinSectors
	}
	if n > config.MaxSectors {
		return config.MaxSectors
	}
	return n
}
