package geometry

import (
	"slices"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"gonum.org/v1/gonum/spatial/r2"
)

// PathCurve is an arbitrary curve addressed by arc length.
//
// Implementations may interpolate a polyline, evaluate a spline or anything
// else; the track only needs the total length and a point lookup.
type PathCurve interface {
	// TotalLength returns the arc length of the curve in curve units.
	TotalLength() float64

	// PointAtLength returns the point at arc length l. Values outside
	// [0, TotalLength] are clamped.
	PointAtLength(l float64) Point
}

// Polyline is a PathCurve made of straight segments between vertices.
type Polyline struct {
	line orb.LineString
	cum  []float64 // arc length at each vertex
}

// NewPolyline builds a Polyline over line. The slice is not copied.
func NewPolyline(line orb.LineString) *Polyline {
	cum := make([]float64, len(line))
	for i := 1; i < len(line); i++ {
		cum[i] = cum[i-1] + planar.Distance(line[i-1], line[i])
	}
	return &Polyline{line: line, cum: cum}
}

// PolylineFromPoints builds a Polyline through pts.
func PolylineFromPoints(pts ...Point) *Polyline {
	line := make(orb.LineString, len(pts))
	for i, p := range pts {
		line[i] = orb.Point{p.X, p.Y}
	}
	return NewPolyline(line)
}

// Line returns the underlying vertices.
func (p *Polyline) Line() orb.LineString { return p.line }

// TotalLength implements PathCurve.
func (p *Polyline) TotalLength() float64 {
	if len(p.cum) == 0 {
		return 0
	}
	return p.cum[len(p.cum)-1]
}

// PointAtLength implements PathCurve.
func (p *Polyline) PointAtLength(l float64) Point {
	switch len(p.line) {
	case 0:
		return Point{}
	case 1:
		return orbPoint(p.line[0])
	}
	l = Clamp(l, p.TotalLength())
	i, _ := slices.BinarySearch(p.cum, l)
	if i == 0 {
		return orbPoint(p.line[0])
	}
	if i >= len(p.line) {
		return orbPoint(p.line[len(p.line)-1])
	}
	seg := p.cum[i] - p.cum[i-1]
	if seg <= 0 {
		return orbPoint(p.line[i])
	}
	a, b := orbPoint(p.line[i-1]).vec(), orbPoint(p.line[i]).vec()
	t := (l - p.cum[i-1]) / seg
	return fromVec(r2.Add(a, r2.Scale(t, r2.Sub(b, a))))
}

func orbPoint(p orb.Point) Point { return Point{X: p.X(), Y: p.Y()} }
