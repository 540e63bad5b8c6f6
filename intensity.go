package vocaltrans

import "math"

// Level is one of the three intensity anchors every rule table is authored
// against.
type Level int

const (
	// Minimal keeps the original spelling almost everywhere.
	Minimal Level = 1
	// Moderate opens vowels and softens the harder consonants.
	Moderate Level = 4
	// Full applies every open-throat substitution.
	Full Level = 8
)

// Intensity scale bounds accepted by ResolveIntensity.
const (
	MinIntensity = 1
	MaxIntensity = 10
)

// Levels lists the anchors in ascending order.
var Levels = [...]Level{Minimal, Moderate, Full}

// index returns the slot of l inside a Transformations array.
func (l Level) index() int {
	switch l {
	case Moderate:
		return 1
	case Full:
		return 2
	default:
		return 0
	}
}

// Valid reports whether l is one of the authored anchors.
func (l Level) Valid() bool {
	return l == Minimal || l == Moderate || l == Full
}

// String returns the anchor name.
func (l Level) String() string {
	switch l {
	case Minimal:
		return "minimal"
	case Moderate:
		return "moderate"
	case Full:
		return "full"
	default:
		return "invalid"
	}
}

// Transformations holds one output string per anchor, indexed by
// Level.index. A silenceMark entry renders as the empty string.
type Transformations [3]string

// At returns the rendered output for level l.
func (t Transformations) At(l Level) string {
	s := t[l.index()]
	if s == silenceMark {
		return ""
	}
	return s
}

// ResolveIntensity maps a continuous intensity value onto an anchor.
// The value is clamped to [1,10] (NaN counts as 1) and rounded half up, then
// [1,3] resolves to Minimal, [4,6] to Moderate and [7,10] to Full.
func ResolveIntensity(v float64) Level {
	if math.IsNaN(v) || v < MinIntensity {
		v = MinIntensity
	}
	if v > MaxIntensity {
		v = MaxIntensity
	}
	n := int(math.Floor(v + 0.5))
	switch {
	case n <= 3:
		return Minimal
	case n <= 6:
		return Moderate
	default:
		return Full
	}
}
