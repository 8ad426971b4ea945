// Package geometry maps distances along the corridor to 2D coordinates and
// projects 2D points back onto the corridor.
//
// A Track has a scalar length in kilometres and zero or more custom PathCurves
// (for example rail lines from an imported map). When no custom curve is
// configured the four analytic Lanes are used instead. Distances are always
// clamped into [0, length] rather than rejected.
package geometry

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// ErrNoGeometry is returned by projections when no path or segment can be
// evaluated. Callers are expected to fall back to a default placement.
var ErrNoGeometry = errors.New("no geometry available")

// Point is a 2D position in canvas units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) vec() r2.Vec { return r2.Vec(p) }

func fromVec(v r2.Vec) Point { return Point(v) }

// Canvas is the drawing area the analytic lanes are laid out on.
type Canvas struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Margin float64 `json:"margin"`
}

// DefaultCanvas is used whenever a Canvas has no usable size.
var DefaultCanvas = Canvas{Width: 1000, Height: 600, Margin: 40}

func (c Canvas) orDefault() Canvas {
	if !(c.Width > 0) || !(c.Height > 0) {
		return DefaultCanvas
	}
	if c.Margin < 0 || 2*c.Margin >= math.Min(c.Width, c.Height) {
		c.Margin = 0
	}
	return c
}

// Placement is the result of mapping a distance onto the track.
type Placement struct {
	Point     Point   `json:"point"`
	Ratio     float64 `json:"ratio"` // 0..1 along the resolved path
	PathIndex int     `json:"path_index"`
}

// Projection is the result of mapping a 2D point back onto the track.
type Projection struct {
	DistanceKm float64 `json:"distance_km"`
	PathIndex  int     `json:"path_index"`
	Point      Point   `json:"point"`
}

// Clamp limits d to [0, lengthKm]. NaN maps to 0.
func Clamp(d, lengthKm float64) float64 {
	if math.IsNaN(d) || d < 0 {
		return 0
	}
	if lengthKm < 0 {
		return 0
	}
	if d > lengthKm {
		return lengthKm
	}
	return d
}
