// Package engine implements the corridor simulation.
//
// A Simulation owns the track geometry, the start nodes and crossings, the
// train roster and the conflict log. Every tick runs one pass, synchronously:
//
//  1. Motion - each train's derived state places it on the track, or drops it
//     from the active set when it is outside its travel window.
//  2. Detection - every pair of active trains is checked for clearance below
//     the safe distance, with exemptions at crossings.
//  3. Logging - new conflicts are deduplicated per train pair and minute.
//
// Edits are applied between ticks and never observed half-done.
package engine

import (
	"fmt"

	"github.com/cxd309/corridor-engine/internal/config"
	"github.com/cxd309/corridor-engine/internal/conflict"
	"github.com/cxd309/corridor-engine/internal/geometry"
	"github.com/cxd309/corridor-engine/internal/network"
	"github.com/cxd309/corridor-engine/internal/train"
)

// Simulation is the state of one corridor. It is not safe for concurrent use.
type Simulation struct {
	track              *geometry.Track
	network            *network.Network
	roster             *train.Roster
	log                *conflict.Log
	stations           []string
	playbackMultiplier float64

	states    []train.State
	statesKey stateKey
	hasStates bool
}

// NewSimulation builds a Simulation from a Scenario. paths, when given,
// replace the analytic lanes with custom curves. cfg may be nil.
func NewSimulation(sc Scenario, cfg *config.Config, paths ...geometry.PathCurve) (*Simulation, error) {
	nw, err := network.NewNetwork(network.Data{Nodes: sc.StartNodes, Crossings: sc.Crossings})
	if err != nil {
		return nil, fmt.Errorf("building network: %w", err)
	}

	opts := append(cfg.TrackOptions(), geometry.WithPaths(paths...))
	s := &Simulation{
		track:              geometry.NewTrack(sc.TrackLengthKm, opts...),
		network:            nw,
		roster:             train.NewRoster(),
		log:                conflict.NewLog(cfg.GetLogCapacity()),
		stations:           append([]string(nil), sc.Stations...),
		playbackMultiplier: sc.PlaybackMultiplier,
	}
	if !(s.playbackMultiplier > 0) {
		s.playbackMultiplier = cfg.GetPlaybackMultiplier()
	}

	for _, t := range sc.Trains {
		if _, err := s.roster.Add(t); err != nil {
			return nil, fmt.Errorf("loading trains: %w", err)
		}
	}
	return s, nil
}

// Snapshot returns the current configuration as a Scenario.
func (s *Simulation) Snapshot() Scenario {
	data := s.network.Data()
	return Scenario{
		TrackLengthKm:      s.track.LengthKm(),
		Stations:           append([]string(nil), s.stations...),
		Crossings:          data.Crossings,
		StartNodes:         data.Nodes,
		PlaybackMultiplier: s.playbackMultiplier,
		Trains:             s.roster.All(),
	}
}

// Track returns the track geometry.
func (s *Simulation) Track() *geometry.Track { return s.track }

// Log returns the running conflict log.
func (s *Simulation) Log() *conflict.Log { return s.log }

// Trains returns the roster in display order.
func (s *Simulation) Trains() []train.Train { return s.roster.All() }

// Crossings returns the crossings.
func (s *Simulation) Crossings() []network.Crossing { return s.network.Crossings() }

// StartNodes returns the start nodes.
func (s *Simulation) StartNodes() []network.StartNode { return s.network.Nodes() }

// PlaybackMultiplier returns the playback speed factor saved with the scenario.
func (s *Simulation) PlaybackMultiplier() float64 { return s.playbackMultiplier }

// trainStates returns the derived state of every train, rebuilding it when
// the roster, start nodes or track length changed since the last call.
func (s *Simulation) trainStates() ([]train.State, error) {
	key := stateKey{roster: s.roster.Version(), nodes: s.network.Version(), lengthKm: s.track.LengthKm()}
	if s.hasStates && key == s.statesKey {
		return s.states, nil
	}
	trains := s.roster.All()
	states := make([]train.State, len(trains))
	for i, t := range trains {
		st, err := train.Derive(t, key.lengthKm, s.network)
		if err != nil {
			return nil, err
		}
		states[i] = st
	}
	s.states, s.statesKey, s.hasStates = states, key, true
	return states, nil
}

// active places every running train at simMinutes.
func (s *Simulation) active(simMinutes float64) ([]TrainPosition, []conflict.Active, error) {
	states, err := s.trainStates()
	if err != nil {
		return nil, nil, err
	}
	lengthKm := s.track.LengthKm()

	var (
		positions []TrainPosition
		actives   []conflict.Active
	)
	for i, st := range states {
		pos, ok := st.PositionAt(simMinutes, lengthKm)
		if !ok {
			continue
		}
		path := s.track.PathIndex(st.PathIndex)
		positions = append(positions, TrainPosition{
			TrainID:    st.ID,
			TrainIndex: i,
			Name:       st.Name,
			DistanceKm: pos.DistanceKm,
			LengthKm:   st.LengthKm,
			IsManual:   pos.IsManual,
			PathIndex:  path,
		})
		actives = append(actives, conflict.Active{
			ID:         st.ID,
			Index:      i,
			Name:       st.Name,
			DistanceKm: pos.DistanceKm,
			LengthKm:   st.LengthKm,
			SpeedKmh:   st.SpeedKmh,
			PathIndex:  path,
		})
	}

	// Trains sharing a path are spread across lanes so they do not overlap.
	counts := make(map[int]int)
	for _, p := range positions {
		counts[p.PathIndex]++
	}
	lanes := make(map[int]int)
	for i := range positions {
		p := &positions[i]
		pl := s.track.PointAtDistance(p.DistanceKm, lanes[p.PathIndex], counts[p.PathIndex], p.PathIndex)
		lanes[p.PathIndex]++
		p.Point = pl.Point
	}
	return positions, actives, nil
}

// PositionsAt returns the trains running at simMinutes.
func (s *Simulation) PositionsAt(simMinutes float64) ([]TrainPosition, error) {
	positions, _, err := s.active(simMinutes)
	return positions, err
}

// ConflictEventsAt returns the conflicts between trains running at simMinutes
// without touching the log.
func (s *Simulation) ConflictEventsAt(simMinutes float64) ([]conflict.Event, error) {
	_, actives, err := s.active(simMinutes)
	if err != nil {
		return nil, err
	}
	return s.detector().Evaluate(actives), nil
}

func (s *Simulation) detector() *conflict.Detector {
	return conflict.NewDetector(s.network.Bind(s.track.LengthKm()))
}

// Tick evaluates simMinutes and records any new conflicts in the log.
func (s *Simulation) Tick(simMinutes float64) (Frame, error) {
	positions, actives, err := s.active(simMinutes)
	if err != nil {
		return Frame{}, fmt.Errorf("at t=%.2f: %w", simMinutes, err)
	}
	events := s.detector().Evaluate(actives)
	return Frame{
		Minute:     simMinutes,
		Clock:      train.FormatClock(simMinutes),
		Positions:  positions,
		Events:     events,
		NewEntries: s.log.RecordEntries(events, simMinutes),
	}, nil
}

// ProjectPoint maps a point, such as a click on the map, to the nearest track
// position. It returns geometry.ErrNoGeometry when nothing can be projected.
func (s *Simulation) ProjectPoint(p geometry.Point) (geometry.Projection, error) {
	return s.track.NearestPoint(p)
}
