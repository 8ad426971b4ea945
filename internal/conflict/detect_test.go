package conflict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cxd309/corridor-engine/internal/network"
)

func crossings(t *testing.T, cs ...network.Crossing) CrossingMatcher {
	t.Helper()
	n, err := network.NewNetwork(network.Data{Crossings: cs})
	require.NoError(t, err)
	return n.Bind(240)
}

func at(name string, km float64, path int) Active {
	return Active{Name: name, DistanceKm: km, LengthKm: 0.02, SpeedKmh: 60, PathIndex: path}
}

func TestGap(t *testing.T) {
	a := Active{DistanceKm: 80, LengthKm: 0.16}
	b := Active{DistanceKm: 30, LengthKm: 0.25}
	assert.InDelta(t, 49.59, Gap(a, b), 1e-9)
	assert.Equal(t, Gap(a, b), Gap(b, a))
}

func TestEvaluateScenarioNoConflict(t *testing.T) {
	d := NewDetector(crossings(t, network.Crossing{DistanceKm: 60}, network.Crossing{DistanceKm: 120}))
	events := d.Evaluate([]Active{
		{Name: "A", DistanceKm: 80, LengthKm: 0.16, SpeedKmh: 80},
		{Name: "B", DistanceKm: 30, LengthKm: 0.25, SpeedKmh: 60},
	})
	assert.Empty(t, events)
}

func TestEvaluateSamePathTooClose(t *testing.T) {
	d := NewDetector(nil)
	events := d.Evaluate([]Active{at("A", 50.1, 0), at("B", 50, 0), at("C", 90, 0)})
	require.Len(t, events, 1)
	assert.Equal(t, "A", events[0].A.Name)
	assert.Equal(t, "B", events[0].B.Name)
	assert.InDelta(t, 0.06, events[0].GapKm, 1e-9)
	assert.InDelta(t, 60, events[0].GapMeters, 1e-6)
}

func TestEvaluateDifferentPathsIgnoredAwayFromCrossings(t *testing.T) {
	d := NewDetector(crossings(t, network.Crossing{DistanceKm: 60}))
	assert.Empty(t, d.Evaluate([]Active{at("A", 50, 0), at("B", 50, 1)}))
}

func TestEvaluateCrossingSuppression(t *testing.T) {
	cases := []struct {
		name     string
		crossing network.Crossing
		pathA    int
		pathB    int
		want     int
	}{
		{"same path on crossing path", network.Crossing{DistanceKm: 60, PathIndex: 1}, 1, 1, 0},
		{"different paths merging", network.Crossing{DistanceKm: 60, PathIndex: 0}, 0, 2, 0},
		{"different paths, crossing on neither", network.Crossing{DistanceKm: 60, PathIndex: 3}, 1, 2, 0},
		{"same path, crossing on another path", network.Crossing{DistanceKm: 60, PathIndex: 2}, 0, 0, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			d := NewDetector(crossings(t, c.crossing))
			events := d.Evaluate([]Active{at("A", 60.004, c.pathA), at("B", 59.996, c.pathB)})
			assert.Len(t, events, c.want)
		})
	}
}

func TestEvaluateCrossingNeedsBothTrains(t *testing.T) {
	d := NewDetector(crossings(t, network.Crossing{DistanceKm: 60}))
	events := d.Evaluate([]Active{at("A", 60, 0), at("B", 59.95, 0)})
	assert.Len(t, events, 1)
}

func TestEvaluateSymmetric(t *testing.T) {
	d := NewDetector(crossings(t,
		network.Crossing{DistanceKm: 60, PathIndex: 0},
		network.Crossing{DistanceKm: 120, PathIndex: 1},
	))
	positions := []float64{0, 0.05, 59.995, 60, 60.005, 60.2, 119.99, 120, 120.08, 200}
	for _, pa := range positions {
		for _, pb := range positions {
			for _, pathA := range []int{0, 1} {
				for _, pathB := range []int{0, 1} {
					a, b := at("A", pa, pathA), at("B", pb, pathB)
					ab := d.Evaluate([]Active{a, b})
					ba := d.Evaluate([]Active{b, a})
					assert.Equal(t, len(ab), len(ba), "A=%v/%d B=%v/%d", pa, pathA, pb, pathB)
				}
			}
		}
	}
}
