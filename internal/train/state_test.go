package train

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cxd309/corridor-engine/internal/network"
)

func ptr[T any](v T) *T { return &v }

func mustDerive(t *testing.T, tr Train, nodes NodeLookup) State {
	t.Helper()
	s, err := Derive(tr, 240, nodes)
	require.NoError(t, err)
	return s
}

func TestDerive(t *testing.T) {
	s := mustDerive(t, Train{Name: "A", Departure: "08:00", SpeedKmh: 80, DistanceKm: 240, CarCount: 8, CarLengthM: 20}, nil)
	assert.Equal(t, 480.0, s.DepartureMinutes)
	assert.Equal(t, 660.0, s.ArrivalMinutes)
	assert.InDelta(t, 0.16, s.LengthKm, 1e-12)
	assert.Equal(t, 0.0, s.StartOffsetKm)
	assert.Equal(t, 0, s.PathIndex)
}

func TestDeriveClampsAndFloors(t *testing.T) {
	s := mustDerive(t, Train{Name: "S", Departure: "10:00", SpeedKmh: 0, DistanceKm: 500}, nil)
	assert.Equal(t, 1.0, s.SpeedKmh)
	assert.Equal(t, 240.0, s.DistanceKm)
	assert.Equal(t, 600.0+240*60, s.ArrivalMinutes)
}

func TestDeriveMalformedClock(t *testing.T) {
	_, err := Derive(Train{Name: "X", Departure: "noon"}, 240, nil)
	var mse *MalformedScheduleError
	assert.True(t, errors.As(err, &mse))
}

func TestDeriveResolvesStartNodeAndPath(t *testing.T) {
	nw, err := network.NewNetwork(network.Data{Nodes: []network.StartNode{
		{ID: "yard", DistanceKm: 50, PathIndex: 2},
	}})
	require.NoError(t, err)

	s := mustDerive(t, Train{Name: "N", Departure: "08:00", SpeedKmh: 60, StartNodeID: ptr("yard")}, nw)
	assert.Equal(t, 50.0, s.StartOffsetKm)
	assert.Equal(t, 2, s.PathIndex)

	s = mustDerive(t, Train{Name: "N", Departure: "08:00", SpeedKmh: 60, StartNodeID: ptr("yard"), PathIndex: ptr(1)}, nw)
	assert.Equal(t, 1, s.PathIndex)

	s = mustDerive(t, Train{Name: "N", Departure: "08:00", SpeedKmh: 60, StartNodeID: ptr("missing")}, nw)
	assert.Equal(t, 0.0, s.StartOffsetKm)
	assert.Equal(t, 0, s.PathIndex)
}

func TestPositionAtScenario(t *testing.T) {
	a := mustDerive(t, Train{Name: "A", Departure: "08:00", SpeedKmh: 80, DistanceKm: 240, CarCount: 8, CarLengthM: 20}, nil)
	b := mustDerive(t, Train{Name: "B", Departure: "08:30", SpeedKmh: 60, DistanceKm: 240, CarCount: 10, CarLengthM: 25}, nil)

	pa, ok := a.PositionAt(540, 240)
	require.True(t, ok)
	assert.InDelta(t, 80, pa.DistanceKm, 1e-9)
	assert.False(t, pa.IsManual)

	pb, ok := b.PositionAt(540, 240)
	require.True(t, ok)
	assert.InDelta(t, 30, pb.DistanceKm, 1e-9)
}

func TestPositionAtWindow(t *testing.T) {
	s := mustDerive(t, Train{Name: "A", Departure: "08:00", SpeedKmh: 80, DistanceKm: 120}, nil)

	_, ok := s.PositionAt(479.9, 240)
	assert.False(t, ok, "not yet departed")
	_, ok = s.PositionAt(570.1, 240)
	assert.False(t, ok, "already arrived")

	p, ok := s.PositionAt(480, 240)
	require.True(t, ok)
	assert.Equal(t, 0.0, p.DistanceKm)
	p, ok = s.PositionAt(570, 240)
	require.True(t, ok)
	assert.InDelta(t, 120, p.DistanceKm, 1e-9)
}

func TestPositionAtMonotonic(t *testing.T) {
	s := mustDerive(t, Train{Name: "M", Departure: "06:15", SpeedKmh: 73, DistanceKm: 200}, nil)
	prev := -1.0
	for m := s.DepartureMinutes; m <= s.ArrivalMinutes; m += 0.37 {
		p, ok := s.PositionAt(m, 240)
		require.True(t, ok)
		assert.GreaterOrEqual(t, p.DistanceKm, prev)
		prev = p.DistanceKm
	}
}

func TestPositionAtManualOverride(t *testing.T) {
	s := mustDerive(t, Train{Name: "P", Departure: "12:00", SpeedKmh: 80, DistanceKm: 100, ManualPositionKm: ptr(300.0)}, nil)
	for _, m := range []float64{0, 720, 5000} {
		p, ok := s.PositionAt(m, 240)
		require.True(t, ok)
		assert.True(t, p.IsManual)
		assert.Equal(t, 240.0, p.DistanceKm)
	}
}

func TestPositionAtStartOffsetClamped(t *testing.T) {
	nw, err := network.NewNetwork(network.Data{Nodes: []network.StartNode{{ID: "far", DistanceKm: 200}}})
	require.NoError(t, err)
	s := mustDerive(t, Train{Name: "O", Departure: "08:00", SpeedKmh: 60, DistanceKm: 100, StartNodeID: ptr("far")}, nw)

	p, ok := s.PositionAt(530, 240)
	require.True(t, ok)
	assert.InDelta(t, 240, p.DistanceKm, 1e-9)
}
