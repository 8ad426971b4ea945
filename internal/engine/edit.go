package engine

import (
	"fmt"

	"github.com/cxd309/corridor-engine/internal/geometry"
	"github.com/cxd309/corridor-engine/internal/network"
	"github.com/cxd309/corridor-engine/internal/train"
)

// AddTrain validates and adds a train, returning its ID.
func (s *Simulation) AddTrain(t train.Train) (train.ID, error) {
	return s.roster.Add(t)
}

// UpdateTrain edits a train in place.
func (s *Simulation) UpdateTrain(id train.ID, fn func(*train.Train)) error {
	return s.roster.Update(id, fn)
}

// RemoveTrain drops a train from the roster. Logged conflicts are kept.
func (s *Simulation) RemoveTrain(id train.ID) error {
	return s.roster.Remove(id)
}

// SetManualPosition pins a train at km, or releases it back to its schedule
// when km is nil.
func (s *Simulation) SetManualPosition(id train.ID, km *float64) error {
	return s.roster.Update(id, func(t *train.Train) {
		if km == nil {
			t.ManualPositionKm = nil
			return
		}
		v := *km
		t.ManualPositionKm = &v
	})
}

// SetTrackLength changes the corridor length. Non-positive values are ignored.
func (s *Simulation) SetTrackLength(km float64) {
	s.track.SetLengthKm(km)
}

// SetPaths replaces the custom paths; none restores the analytic lanes.
func (s *Simulation) SetPaths(paths ...geometry.PathCurve) {
	s.track.SetPaths(paths...)
}

// SetPlaybackMultiplier stores the playback speed factor with the scenario.
func (s *Simulation) SetPlaybackMultiplier(m float64) {
	if m >= 0 {
		s.playbackMultiplier = m
	}
}

// AddCrossing adds a crossing and returns its index.
func (s *Simulation) AddCrossing(c network.Crossing) int {
	return s.network.AddCrossing(c)
}

// MoveCrossing moves crossing i to distanceKm.
func (s *Simulation) MoveCrossing(i int, distanceKm float64) error {
	return s.network.MoveCrossing(i, distanceKm)
}

// RemoveCrossing deletes crossing i.
func (s *Simulation) RemoveCrossing(i int) error {
	return s.network.RemoveCrossing(i)
}

// AddStartNode adds a named origin.
func (s *Simulation) AddStartNode(sn network.StartNode) error {
	return s.network.AddNode(sn)
}

// AddStartNodeAt projects p onto the track and adds a start node there.
func (s *Simulation) AddStartNodeAt(id network.NodeID, label string, p geometry.Point) (network.StartNode, error) {
	proj, err := s.track.NearestPoint(p)
	if err != nil {
		return network.StartNode{}, fmt.Errorf("start node %q: %w", id, err)
	}
	sn := network.StartNode{ID: id, Label: label, DistanceKm: proj.DistanceKm, PathIndex: proj.PathIndex}
	if err := s.network.AddNode(sn); err != nil {
		return network.StartNode{}, err
	}
	return sn, nil
}

// RemoveStartNode deletes a start node. Trains referring to it fall back to
// the start of the track.
func (s *Simulation) RemoveStartNode(id network.NodeID) error {
	return s.network.RemoveNode(id)
}
