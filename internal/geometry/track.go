package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// DefaultLengthKm is used when a track is built with a non-positive length.
	DefaultLengthKm = 240.0
	// DefaultLaneSpacing separates trains drawn on the same analytic lane.
	DefaultLaneSpacing = 6.0 // canvas units
)

// Track is the corridor: a length and the paths trains run along.
type Track struct {
	lengthKm    float64
	paths       []PathCurve
	canvas      Canvas
	laneSpacing float64
	search      SearchOptions
}

// Option configures a Track.
type Option func(*Track)

// WithPaths sets the custom paths, in path index order.
func WithPaths(paths ...PathCurve) Option {
	return func(t *Track) { t.paths = paths }
}

// WithCanvas sets the canvas the analytic lanes are drawn on.
func WithCanvas(c Canvas) Option {
	return func(t *Track) { t.canvas = c.orDefault() }
}

// WithLaneSpacing sets the offset between trains sharing an analytic lane.
func WithLaneSpacing(s float64) Option {
	return func(t *Track) {
		if s >= 0 {
			t.laneSpacing = s
		}
	}
}

// WithSearch sets the options used by NearestPoint on custom paths.
func WithSearch(o SearchOptions) Option {
	return func(t *Track) { t.search = o.normalized() }
}

// NewTrack returns a track of lengthKm. Non-positive lengths fall back to
// DefaultLengthKm.
func NewTrack(lengthKm float64, opts ...Option) *Track {
	t := &Track{
		lengthKm:    DefaultLengthKm,
		canvas:      DefaultCanvas,
		laneSpacing: DefaultLaneSpacing,
		search:      DefaultSearchOptions(),
	}
	t.SetLengthKm(lengthKm)
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// LengthKm returns the corridor length.
func (t *Track) LengthKm() float64 { return t.lengthKm }

// SetLengthKm changes the corridor length. Non-positive values are ignored.
func (t *Track) SetLengthKm(km float64) {
	if km > 0 && !math.IsInf(km, 1) {
		t.lengthKm = km
	}
}

// Paths returns the custom paths.
func (t *Track) Paths() []PathCurve { return t.paths }

// SetPaths replaces the custom paths. An empty list re-enables the analytic lanes.
func (t *Track) SetPaths(paths ...PathCurve) { t.paths = paths }

// PathCount is the number of addressable paths: the custom ones, or the
// analytic lanes when there are none.
func (t *Track) PathCount() int {
	if len(t.paths) > 0 {
		return len(t.paths)
	}
	return len(Lanes)
}

// PathIndex maps i onto an addressable path, sending negative and
// out-of-range indices to path 0.
func (t *Track) PathIndex(i int) int {
	if i < 0 || i >= t.PathCount() {
		return 0
	}
	return i
}

// Canvas returns the canvas the analytic lanes are drawn on.
func (t *Track) Canvas() Canvas { return t.canvas }

// Clamp limits d to [0, LengthKm].
func (t *Track) Clamp(d float64) float64 { return Clamp(d, t.lengthKm) }

// PointAtDistance maps distanceKm onto a path.
//
// lane and laneCount spread several trains drawn on one analytic lane; pass
// 0 and 1 for the exact centre line. A negative pathIndex selects the default
// path.
func (t *Track) PointAtDistance(distanceKm float64, lane, laneCount, pathIndex int) Placement {
	d := t.Clamp(distanceKm)
	var ratio float64
	if t.lengthKm > 0 {
		ratio = d / t.lengthKm
	}

	if len(t.paths) > 0 {
		idx := pathIndex
		if idx < 0 || idx >= len(t.paths) {
			idx = 0
		}
		if p := t.paths[idx]; p != nil {
			if total := p.TotalLength(); total > 0 {
				return Placement{Point: p.PointAtLength(ratio * total), Ratio: ratio, PathIndex: idx}
			}
		}
	}

	l := Lane(pathIndex)
	if !l.Valid() {
		l = LaneEastWest
	}
	pt := l.PointAt(t.canvas, ratio)
	if off := t.laneOffset(lane, laneCount); off != 0 {
		pt = fromVec(r2.Add(pt.vec(), r2.Scale(off, l.Normal(t.canvas).vec())))
	}
	return Placement{Point: pt, Ratio: ratio, PathIndex: int(l)}
}

func (t *Track) laneOffset(lane, laneCount int) float64 {
	if laneCount <= 1 {
		return 0
	}
	avg := float64(laneCount-1) / 2
	return (float64(lane) - avg) * t.laneSpacing
}

// NearestPoint projects p onto the closest path. Custom paths are searched
// with NearestOnCurve; without custom paths each analytic lane is projected
// exactly. It returns ErrNoGeometry when no candidate has a usable length.
func (t *Track) NearestPoint(p Point) (Projection, error) {
	if len(t.paths) == 0 {
		return t.nearestOnLanes(p), nil
	}

	var (
		best    CurveHit
		bestIdx = -1
		total   float64
	)
	for i, c := range t.paths {
		if c == nil {
			continue
		}
		hit, ok := NearestOnCurve(c, p, t.searchFor(c))
		if !ok {
			continue
		}
		if bestIdx < 0 || hit.DistSq < best.DistSq {
			best, bestIdx, total = hit, i, c.TotalLength()
		}
	}
	if bestIdx < 0 {
		return Projection{}, ErrNoGeometry
	}
	return Projection{
		DistanceKm: t.Clamp(best.Length / total * t.lengthKm),
		PathIndex:  bestIdx,
		Point:      best.Point,
	}, nil
}

// refineKm is the coarsest refinement step, in track kilometres, a custom
// path search may stop at.
const refineKm = 0.01

// searchFor tightens the configured epsilon so that one refinement step on c
// never spans more than refineKm of track.
func (t *Track) searchFor(c PathCurve) SearchOptions {
	o := t.search
	if t.lengthKm > 0 {
		if eps := refineKm * c.TotalLength() / t.lengthKm; eps > 0 && eps < o.Epsilon {
			o.Epsilon = eps
		}
	}
	return o
}

func (t *Track) nearestOnLanes(p Point) Projection {
	var (
		best   Projection
		bestD2 = math.Inf(1)
	)
	for _, l := range Lanes {
		a, b := l.Segment(t.canvas)
		ratio, pt := NearestOnSegment(a, b, p)
		if d2 := r2.Norm2(r2.Sub(pt.vec(), p.vec())); d2 < bestD2 {
			bestD2 = d2
			best = Projection{DistanceKm: t.Clamp(ratio * t.lengthKm), PathIndex: int(l), Point: pt}
		}
	}
	return best
}
