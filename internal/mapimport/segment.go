package mapimport

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

func distance(a, b orb.Point) float64 { return planar.Distance(a, b) }

// segmentIntersection reports whether p0-p1 and q0-q1 cross and where, as a
// parameter along p0-p1. Parallel and collinear segments never cross. The far
// end of each segment is excluded so a crossing at a shared vertex counts once.
func segmentIntersection(p0, p1, q0, q1 orb.Point) (float64, bool) {
	rx, ry := p1.X()-p0.X(), p1.Y()-p0.Y()
	sx, sy := q1.X()-q0.X(), q1.Y()-q0.Y()
	denom := rx*sy - ry*sx
	if denom == 0 {
		return 0, false
	}
	qpx, qpy := q0.X()-p0.X(), q0.Y()-p0.Y()
	t := (qpx*sy - qpy*sx) / denom
	u := (qpx*ry - qpy*rx) / denom
	if t < 0 || t >= 1 || u < 0 || u >= 1 {
		return 0, false
	}
	return t, true
}
