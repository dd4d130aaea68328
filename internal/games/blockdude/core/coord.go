package core

import "fmt"

// Coord is a grid position. X grows to the right, Y grows upward from the
// ground row at Y=0.
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}

// Add returns a new Coord offset by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Dir is the horizontal direction the player faces.
type Dir int8

const (
	Left  Dir = -1
	Right Dir = 1
)

// Delta returns the x offset of one step in this direction.
func (d Dir) Delta() int {
	if d == Right {
		return 1
	}
	return -1
}

// String returns "Left" or "Right".
func (d Dir) String() string {
	if d == Right {
		return "Right"
	}
	return "Left"
}
