package network

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ratio(r float64) *float64 { return &r }

func TestNewNetworkRejectsDuplicateNodes(t *testing.T) {
	_, err := NewNetwork(Data{Nodes: []StartNode{{ID: "yard"}, {ID: "yard"}}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNodeExists))
}

func TestNodes(t *testing.T) {
	n, err := NewNetwork(Data{Nodes: []StartNode{
		{ID: "yard", DistanceKm: 5},
		{ID: "depot", DistanceKm: 40, PathIndex: 2},
		{ID: "halt", DistanceKm: 90},
	}})
	require.NoError(t, err)

	got, ok := n.Node("depot")
	require.True(t, ok)
	assert.Equal(t, 2, got.PathIndex)

	v := n.Version()
	require.NoError(t, n.RemoveNode("yard"))
	assert.NotEqual(t, v, n.Version())
	_, ok = n.Node("yard")
	assert.False(t, ok)

	got, ok = n.Node("halt")
	require.True(t, ok)
	assert.Equal(t, 90.0, got.DistanceKm)

	assert.True(t, errors.Is(n.RemoveNode("yard"), ErrNodeNotFound))
	assert.Error(t, n.AddNode(StartNode{}))
}

func TestCrossingAt(t *testing.T) {
	assert.Equal(t, 60.0, Crossing{DistanceKm: 60}.At(240))
	assert.Equal(t, 240.0, Crossing{DistanceKm: 300}.At(240))
	assert.Equal(t, 0.0, Crossing{DistanceKm: -1}.At(240))
	assert.Equal(t, 120.0, Crossing{DistanceKm: 5, Ratio: ratio(0.5)}.At(240))
	assert.Equal(t, 240.0, Crossing{Ratio: ratio(2)}.At(240))
}

func TestMatchCrossing(t *testing.T) {
	n, err := NewNetwork(Data{Crossings: []Crossing{
		{Label: "X1", DistanceKm: 60},
		{Label: "X2", Ratio: ratio(0.5), PathIndex: 1},
	}})
	require.NoError(t, err)

	c, ok := n.MatchCrossing(240, 60.005, 59.995, 0.01)
	require.True(t, ok)
	assert.Equal(t, "X1", c.Label)

	c, ok = n.MatchCrossing(240, 120, 120.009, 0.01)
	require.True(t, ok)
	assert.Equal(t, "X2", c.Label)

	_, ok = n.MatchCrossing(240, 60, 60.02, 0.01)
	assert.False(t, ok, "outside tolerance")
	_, ok = n.MatchCrossing(240, 60, 80, 0.01)
	assert.False(t, ok)
}

func TestCrossingEdits(t *testing.T) {
	n, err := NewNetwork(Data{})
	require.NoError(t, err)
	i := n.AddCrossing(Crossing{Label: "A", Ratio: ratio(0.25)})
	n.AddCrossing(Crossing{Label: "B", DistanceKm: 200})

	require.NoError(t, n.MoveCrossing(i, 75))
	require.NoError(t, n.RemoveCrossing(1))
	assert.Error(t, n.MoveCrossing(4, 1))
	assert.True(t, errors.Is(n.RemoveCrossing(-1), ErrNoCrossing))

	want := Data{Crossings: []Crossing{{Label: "A", DistanceKm: 75}}}
	if diff := cmp.Diff(want, n.Data()); diff != "" {
		t.Errorf("Data() mismatch (-want +got):\n%s", diff)
	}
}

func TestMatcherUsesBoundLength(t *testing.T) {
	n, err := NewNetwork(Data{Crossings: []Crossing{{Label: "mid", Ratio: ratio(0.5)}}})
	require.NoError(t, err)

	_, ok := n.Bind(240).MatchCrossing(120, 120, 0.01)
	assert.True(t, ok)
	_, ok = n.Bind(100).MatchCrossing(120, 120, 0.01)
	assert.False(t, ok)
}
