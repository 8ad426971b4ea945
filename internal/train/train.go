// Package train defines train records, the roster that owns them, and the
// motion model that places a train along the corridor at a simulated time.
package train

import (
	"errors"

	"github.com/google/uuid"

	"github.com/cxd309/corridor-engine/internal/network"
)

// ID is the stable opaque identity of a train. It survives reordering and
// removal of other trains.
type ID = uuid.UUID

var (
	ErrDuplicateName = errors.New("duplicate train name")
	ErrNotFound      = errors.New("train not found")
)

// Train is the editable definition of a scheduled train.
type Train struct {
	ID         ID      `json:"id"`
	Name       string  `json:"name"`
	Departure  string  `json:"departure"` // HH:MM
	SpeedKmh   float64 `json:"speed_kmh"`
	DistanceKm float64 `json:"distance_km"` // trip length
	CarCount   int     `json:"car_count"`
	CarLengthM float64 `json:"car_length_m"`
	// ManualPositionKm pins the train regardless of the clock when set.
	ManualPositionKm *float64 `json:"manual_position_km,omitempty"`
	// StartNodeID names a start node whose distance is used as the origin.
	StartNodeID *network.NodeID `json:"start_node_id,omitempty"`
	// PathIndex pins the train to a path. When nil the start node's path, or
	// path 0, is used.
	PathIndex *int `json:"path_index,omitempty"`
}

// LengthKm is the physical length of the train.
func (t Train) LengthKm() float64 {
	if t.CarCount <= 0 || !(t.CarLengthM > 0) {
		return 0
	}
	return float64(t.CarCount) * t.CarLengthM / 1000
}

// Validate reports a *MalformedScheduleError when the departure clock cannot
// be parsed.
func (t Train) Validate() error {
	_, err := ParseClock(t.Departure)
	return err
}
