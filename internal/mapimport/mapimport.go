// Package mapimport turns a GeoJSON rail map into track paths and finds the
// places where those paths cross.
package mapimport

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/cxd309/corridor-engine/internal/geometry"
	"github.com/cxd309/corridor-engine/internal/monitoring"
	"github.com/cxd309/corridor-engine/internal/network"
)

// ErrNoLines is returned when a map contains no line geometry.
var ErrNoLines = errors.New("map has no line geometry")

// Options controls how map coordinates are projected.
type Options struct {
	Canvas geometry.Canvas
}

// Map is an imported rail map projected onto the canvas.
type Map struct {
	lines []orb.LineString
	names []string
	paths []*geometry.Polyline
}

// Decode parses a GeoJSON FeatureCollection. Every LineString, and every part
// of a MultiLineString, becomes one path in feature order. Other geometry is
// ignored.
func Decode(data []byte, opts Options) (*Map, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("decoding geojson: %w", err)
	}

	m := &Map{}
	for i, f := range fc.Features {
		name := f.Properties.MustString("name", fmt.Sprintf("line-%d", i+1))
		switch g := f.Geometry.(type) {
		case orb.LineString:
			m.add(name, g)
		case orb.MultiLineString:
			for j, part := range g {
				m.add(fmt.Sprintf("%s/%d", name, j+1), part)
			}
		}
	}
	if len(m.lines) == 0 {
		return nil, ErrNoLines
	}

	m.project(opts.Canvas)
	m.paths = make([]*geometry.Polyline, len(m.lines))
	for i, ls := range m.lines {
		m.paths[i] = geometry.NewPolyline(ls)
	}
	monitoring.Logf("map import: %d paths from %d features", len(m.lines), len(fc.Features))
	return m, nil
}

func (m *Map) add(name string, ls orb.LineString) {
	if len(ls) < 2 {
		return
	}
	m.lines = append(m.lines, ls.Clone())
	m.names = append(m.names, name)
}

// project maps the bounds of all lines linearly onto the canvas, flipping y
// so north is up.
func (m *Map) project(c geometry.Canvas) {
	if !(c.Width > 0) || !(c.Height > 0) {
		c = geometry.DefaultCanvas
	}
	b := m.lines[0].Bound()
	for _, ls := range m.lines[1:] {
		b = b.Union(ls.Bound())
	}
	w, h := c.Width-2*c.Margin, c.Height-2*c.Margin
	sx, sy := 1.0, 1.0
	if span := b.Max.X() - b.Min.X(); span > 0 {
		sx = w / span
	}
	if span := b.Max.Y() - b.Min.Y(); span > 0 {
		sy = h / span
	}
	for _, ls := range m.lines {
		for i, p := range ls {
			ls[i] = orb.Point{
				c.Margin + (p.X()-b.Min.X())*sx,
				c.Height - c.Margin - (p.Y()-b.Min.Y())*sy,
			}
		}
	}
}

// Len returns the number of paths.
func (m *Map) Len() int { return len(m.paths) }

// Names returns the path names in path index order.
func (m *Map) Names() []string { return m.names }

// Curves returns the paths for use as track geometry.
func (m *Map) Curves() []geometry.PathCurve {
	out := make([]geometry.PathCurve, len(m.paths))
	for i, p := range m.paths {
		out[i] = p
	}
	return out
}

// Crossings finds every point where two paths intersect. Each crossing is
// placed on the lower-indexed path, at its arc-length ratio along that path.
func (m *Map) Crossings() []network.Crossing {
	var out []network.Crossing
	for i := 0; i < len(m.paths); i++ {
		total := m.paths[i].TotalLength()
		if !(total > 0) {
			continue
		}
		for j := i + 1; j < len(m.paths); j++ {
			for _, l := range intersections(m.lines[i], m.lines[j]) {
				r := l / total
				out = append(out, network.Crossing{
					Label:     fmt.Sprintf("X%d", len(out)+1),
					Ratio:     &r,
					PathIndex: i,
				})
			}
		}
	}
	return out
}

// intersections returns the arc lengths along a at which b crosses it.
func intersections(a, b orb.LineString) []float64 {
	var (
		out []float64
		cum float64
	)
	for i := 1; i < len(a); i++ {
		a0, a1 := a[i-1], a[i]
		for k := 1; k < len(b); k++ {
			if t, ok := segmentIntersection(a0, a1, b[k-1], b[k]); ok {
				out = append(out, cum+t*distance(a0, a1))
			}
		}
		cum += distance(a0, a1)
	}
	return out
}
