package geometry

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
)

// Lane is one of the built-in analytic curves used when no custom path is
// configured. The set is closed; the value doubles as the path index.
type Lane int

const (
	LaneEastWest Lane = iota
	LaneNorthSouth
	LaneDiagonalDown // top-left to bottom-right
	LaneDiagonalUp   // bottom-left to top-right
)

// Lanes lists every analytic lane in path index order.
var Lanes = [...]Lane{LaneEastWest, LaneNorthSouth, LaneDiagonalDown, LaneDiagonalUp}

func (l Lane) String() string {
	switch l {
	case LaneEastWest:
		return "east-west"
	case LaneNorthSouth:
		return "north-south"
	case LaneDiagonalDown:
		return "diagonal-down"
	case LaneDiagonalUp:
		return "diagonal-up"
	}
	return fmt.Sprintf("Lane(%d)", int(l))
}

// Valid reports whether l is one of the built-in lanes.
func (l Lane) Valid() bool { return l >= LaneEastWest && l <= LaneDiagonalUp }

// Segment returns the start and end of the lane on canvas c.
func (l Lane) Segment(c Canvas) (a, b Point) {
	c = c.orDefault()
	left, right := c.Margin, c.Width-c.Margin
	top, bottom := c.Margin, c.Height-c.Margin
	switch l {
	case LaneNorthSouth:
		return Point{c.Width / 2, top}, Point{c.Width / 2, bottom}
	case LaneDiagonalDown:
		return Point{left, top}, Point{right, bottom}
	case LaneDiagonalUp:
		return Point{left, bottom}, Point{right, top}
	default:
		return Point{left, c.Height / 2}, Point{right, c.Height / 2}
	}
}

// PointAt evaluates the lane at ratio (clamped to [0,1]).
func (l Lane) PointAt(c Canvas, ratio float64) Point {
	ratio = Clamp(ratio, 1)
	a, b := l.Segment(c)
	return fromVec(r2.Add(a.vec(), r2.Scale(ratio, r2.Sub(b.vec(), a.vec()))))
}

// Normal returns the unit direction used to separate trains drawn on the
// same lane. Horizontal lanes offset vertically, vertical lanes horizontally
// and diagonals perpendicular to their bearing.
func (l Lane) Normal(c Canvas) Point {
	switch l {
	case LaneNorthSouth:
		return Point{X: 1}
	case LaneDiagonalDown, LaneDiagonalUp:
		a, b := l.Segment(c)
		d := r2.Sub(b.vec(), a.vec())
		return fromVec(r2.Unit(r2.Vec{X: -d.Y, Y: d.X}))
	default:
		return Point{Y: 1}
	}
}
