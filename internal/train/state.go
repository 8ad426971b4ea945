package train

import (
	"fmt"
	"math"

	"github.com/cxd309/corridor-engine/internal/geometry"
	"github.com/cxd309/corridor-engine/internal/kinematics"
	"github.com/cxd309/corridor-engine/internal/network"
)

// NodeLookup resolves start nodes by ID.
type NodeLookup interface {
	Node(id network.NodeID) (network.StartNode, bool)
}

// State is derived from a Train and never stored. Rebuild it whenever the
// train, its start node or the track length changes.
type State struct {
	ID               ID
	Name             string
	DepartureMinutes float64
	ArrivalMinutes   float64
	SpeedKmh         float64 // floored at kinematics.MinSpeedKmh
	DistanceKm       float64 // trip length clamped to the track
	LengthKm         float64
	StartOffsetKm    float64
	PathIndex        int
	ManualPositionKm *float64
	Motion           kinematics.MotionModel
}

// Position is where a train is at a given time.
type Position struct {
	DistanceKm float64 `json:"distance_km"`
	IsManual   bool    `json:"is_manual"`
}

// Derive computes the State of t on a track of trackLengthKm. nodes may be
// nil when no start nodes are defined.
func Derive(t Train, trackLengthKm float64, nodes NodeLookup) (State, error) {
	dep, err := ParseClock(t.Departure)
	if err != nil {
		return State{}, fmt.Errorf("train %q: %w", t.Name, err)
	}
	motion := kinematics.NewUniform(t.SpeedKmh)
	dist := geometry.Clamp(t.DistanceKm, trackLengthKm)

	var (
		offset    float64
		pathIndex int
	)
	if t.StartNodeID != nil && nodes != nil {
		if sn, ok := nodes.Node(*t.StartNodeID); ok {
			offset = geometry.Clamp(sn.DistanceKm, trackLengthKm)
			pathIndex = sn.PathIndex
		}
	}
	if t.PathIndex != nil {
		pathIndex = *t.PathIndex
	}

	return State{
		ID:               t.ID,
		Name:             t.Name,
		DepartureMinutes: dep,
		ArrivalMinutes:   dep + motion.TravelMinutes(dist),
		SpeedKmh:         motion.Speed(),
		DistanceKm:       dist,
		LengthKm:         t.LengthKm(),
		StartOffsetKm:    offset,
		PathIndex:        pathIndex,
		ManualPositionKm: t.ManualPositionKm,
		Motion:           motion,
	}, nil
}

// Active reports whether the train is running at simMinutes.
func (s State) Active(simMinutes float64) bool {
	return s.ManualPositionKm != nil ||
		(simMinutes >= s.DepartureMinutes && simMinutes <= s.ArrivalMinutes)
}

// PositionAt places the train at simMinutes. A manual position always wins.
// Otherwise the train is absent (false) before departure and after arrival.
func (s State) PositionAt(simMinutes, trackLengthKm float64) (Position, bool) {
	if s.ManualPositionKm != nil {
		return Position{DistanceKm: geometry.Clamp(*s.ManualPositionKm, trackLengthKm), IsManual: true}, true
	}
	if math.IsNaN(simMinutes) || !s.Active(simMinutes) {
		return Position{}, false
	}
	motion := s.Motion
	if motion == nil {
		motion = kinematics.NewUniform(s.SpeedKmh)
	}
	d := s.StartOffsetKm + motion.DistanceAfter(simMinutes-s.DepartureMinutes)
	return Position{DistanceKm: geometry.Clamp(d, trackLengthKm)}, true
}
