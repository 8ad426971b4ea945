package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// SearchOptions tunes NearestOnCurve.
type SearchOptions struct {
	// Samples is the number of equal arc-length steps of the coarse pass.
	Samples int `json:"samples"`
	// Epsilon is the refinement step, in curve units, below which the
	// search stops. Track.NearestPoint lowers it further so a step never
	// exceeds 0.01 km of track.
	Epsilon float64 `json:"epsilon"`
	// MaxRefineSteps bounds the refinement loop.
	MaxRefineSteps int `json:"max_refine_steps"`
}

// DefaultSearchOptions returns the options used when none are configured.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{Samples: 256, Epsilon: 1, MaxRefineSteps: 512}
}

func (o SearchOptions) normalized() SearchOptions {
	def := DefaultSearchOptions()
	if o.Samples <= 0 {
		o.Samples = def.Samples
	}
	if !(o.Epsilon > 0) {
		o.Epsilon = def.Epsilon
	}
	if o.MaxRefineSteps <= 0 {
		o.MaxRefineSteps = def.MaxRefineSteps
	}
	return o
}

// CurveHit is the closest point found on a curve.
type CurveHit struct {
	Length float64 // arc length of Point
	DistSq float64 // squared distance from the target
	Point  Point
}

// NearestOnCurve finds the point of c closest to target.
//
// The curve is sampled at opts.Samples equal arc-length steps, then the best
// sample is refined by probing either side with a step that halves whenever
// neither probe improves. It reports false for curves of zero length.
func NearestOnCurve(c PathCurve, target Point, opts SearchOptions) (CurveHit, bool) {
	total := c.TotalLength()
	if !(total > 0) {
		return CurveHit{}, false
	}
	opts = opts.normalized()
	tv := target.vec()
	probe := func(l float64) CurveHit {
		pt := c.PointAtLength(l)
		return CurveHit{Length: l, DistSq: r2.Norm2(r2.Sub(pt.vec(), tv)), Point: pt}
	}

	step := total / float64(opts.Samples)
	best := probe(0)
	for i := 1; i <= opts.Samples; i++ {
		if h := probe(math.Min(total, float64(i)*step)); h.DistSq < best.DistSq {
			best = h
		}
	}

	for n := 0; step >= opts.Epsilon && n < opts.MaxRefineSteps; n++ {
		lo := probe(math.Max(0, best.Length-step))
		hi := probe(math.Min(total, best.Length+step))
		switch {
		case lo.DistSq < best.DistSq && lo.DistSq <= hi.DistSq:
			best = lo
		case hi.DistSq < best.DistSq:
			best = hi
		default:
			step /= 2
		}
	}
	return best, true
}

// NearestOnSegment projects p onto the segment a-b. It returns the parametric
// position t in [0,1] and the projected point.
func NearestOnSegment(a, b, p Point) (float64, Point) {
	ab := r2.Sub(b.vec(), a.vec())
	l2 := r2.Norm2(ab)
	if l2 == 0 {
		return 0, a
	}
	t := Clamp(r2.Dot(r2.Sub(p.vec(), a.vec()), ab)/l2, 1)
	return t, fromVec(r2.Add(a.vec(), r2.Scale(t, ab)))
}
