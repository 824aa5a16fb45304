package maze

import (
	"fmt"
	"strings"
)

// Direction names one of the four grid neighbours of a cell.
type Direction uint8

const (
	North Direction = iota
	South
	East
	West
)

// Directions lists every direction in a fixed order.
var Directions = [4]Direction{North, South, East, West}

// Offset returns the unit step (dx, dy) for d. Y grows southwards.
func (d Direction) Offset() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case South:
		return 0, 1
	case East:
		return 1, 0
	case West:
		return -1, 0
	}
	panic(fmt.Sprintf("maze: invalid direction %d", uint8(d)))
}

// Opposite returns the direction pointing back at the cell d came from.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	}
	panic(fmt.Sprintf("maze: invalid direction %d", uint8(d)))
}

func (d Direction) String() string {
	switch d {
	case North:
		return "N"
	case South:
		return "S"
	case East:
		return "E"
	case West:
		return "W"
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}

func (d Direction) bit() Dirs {
	if d > West {
		panic(fmt.Sprintf("maze: invalid direction %d", uint8(d)))
	}
	return 1 << d
}

// Dirs is the set of open directions of a single cell.
type Dirs uint8

// Has reports whether d is open.
func (s Dirs) Has(d Direction) bool { return s&d.bit() != 0 }

// With returns s with d added.
func (s Dirs) With(d Direction) Dirs { return s | d.bit() }

// Len returns the number of open directions.
func (s Dirs) Len() int {
	n := 0
	for _, d := range Directions {
		if s.Has(d) {
			n++
		}
	}
	return n
}

// List returns the open directions in N, S, E, W order.
func (s Dirs) List() []Direction {
	out := make([]Direction, 0, 4)
	for _, d := range Directions {
		if s.Has(d) {
			out = append(out, d)
		}
	}
	return out
}

// String renders s as a compact direction list such as "NE", or "-" when empty.
func (s Dirs) String() string {
	if s == 0 {
		return "-"
	}
	var b strings.Builder
	for _, d := range s.List() {
		b.WriteString(d.String())
	}
	return b.String()
}
