package regions

import "fmt"

// Connectivity selects which neighboring pixels count as adjacent.
type Connectivity int

const (
	// FourWay treats the N, S, E, and W neighbors as adjacent.
	FourWay Connectivity = 4
	// EightWay treats all eight surrounding pixels as adjacent.
	EightWay Connectivity = 8
)

// Valid reports whether c is FourWay or EightWay.
func (c Connectivity) Valid() bool { return c == FourWay || c == EightWay }

// String returns "4-way" or "8-way".
func (c Connectivity) String() string {
	switch c {
	case FourWay:
		return "4-way"
	case EightWay:
		return "8-way"
	default:
		return fmt.Sprintf("connectivity(%d)", int(c))
	}
}

// Complement returns the dual connectivity (4↔8). Flooding background under
// the complement of the foreground connectivity keeps foreground and
// background topology consistent, which the hole-related operations rely on.
func (c Connectivity) Complement() Connectivity {
	if c == FourWay {
		return EightWay
	}
	return FourWay
}

// Offsets returns the (dx, dy) neighbor offsets for c in a fixed order:
// E, S, W, N for FourWay, with SE, SW, NW, NE appended for EightWay.
// The fixed order keeps every scan in this module deterministic.
func (c Connectivity) Offsets() [][2]int {
	if c == FourWay {
		return [][2]int{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}
	}
	return [][2]int{{1, 0}, {0, 1}, {-1, 0}, {0, -1}, {1, 1}, {-1, 1}, {-1, -1}, {1, -1}}
}
