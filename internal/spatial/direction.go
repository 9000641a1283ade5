package spatial

import "fmt"

// Direction is one of the four scene-relative horizontal relations between
// the figure and the ground object.
type Direction string

const (
	Front  Direction = "front"
	Right  Direction = "right"
	Behind Direction = "behind"
	Left   Direction = "left"
)

// Directions lists all directions in canonical order. The order doubles as
// the cyclic order for 90° orientation steps (front → right → behind → left),
// so both enumeration and orientation math index into the same slice.
var Directions = []Direction{Front, Right, Behind, Left}

// Parse validates a direction string from CLI or config input.
func Parse(s string) (Direction, error) {
	for _, d := range Directions {
		if Direction(s) == d {
			return d, nil
		}
	}
	return "", fmt.Errorf("spatial: unknown direction %q", s)
}

// Index returns the position of d in the cyclic order, or -1 for the
// empty direction.
func (d Direction) Index() int {
	for i, c := range Directions {
		if c == d {
			return i
		}
	}
	return -1
}

// Rotate advances d by the given number of 90° steps through the cyclic
// order. The empty direction stays empty.
func (d Direction) Rotate(steps int) Direction {
	i := d.Index()
	if i < 0 {
		return d
	}
	n := len(Directions)
	return Directions[((i+steps)%n+n)%n]
}

// Reverse returns the opposite direction (front↔behind, left↔right).
func (d Direction) Reverse() Direction {
	return d.Rotate(2)
}
