package engine

import (
	"github.com/cxd309/corridor-engine/internal/conflict"
	"github.com/cxd309/corridor-engine/internal/geometry"
	"github.com/cxd309/corridor-engine/internal/network"
	"github.com/cxd309/corridor-engine/internal/train"
)

// Scenario is the JSON-serialisable bundle of everything an operator edits.
// It is both the bulk-load input and the snapshot output of a Simulation.
type Scenario struct {
	TrackLengthKm      float64             `json:"track_length_km"`
	Stations           []string            `json:"stations,omitempty"`
	Crossings          []network.Crossing  `json:"crossings"`
	StartNodes         []network.StartNode `json:"start_nodes,omitempty"`
	PlaybackMultiplier float64             `json:"playback_multiplier,omitempty"`
	Trains             []train.Train       `json:"trains"`
}

// TrainPosition is an active train placed on the track.
type TrainPosition struct {
	TrainID    train.ID       `json:"train_id"`
	TrainIndex int            `json:"train_index"` // display position in the roster
	Name       string         `json:"name"`
	DistanceKm float64        `json:"distance_km"`
	Point      geometry.Point `json:"point"`
	LengthKm   float64        `json:"length_km"`
	IsManual   bool           `json:"is_manual"`
	PathIndex  int            `json:"path_index"`
}

// Frame is the outcome of one simulation tick.
type Frame struct {
	Minute     float64          `json:"minute"`
	Clock      string           `json:"clock"`
	Positions  []TrainPosition  `json:"positions"`
	Events     []conflict.Event `json:"events,omitempty"`
	NewEntries []conflict.Entry `json:"new_conflicts,omitempty"`
}

// RunLog is the complete output of a batch run.
type RunLog struct {
	Start      float64          `json:"start"` // minutes
	End        float64          `json:"end"`   // minutes
	StartClock string           `json:"start_clock"`
	EndClock   string           `json:"end_clock"`
	Ticks      int              `json:"ticks"`
	Conflicts  []conflict.Entry `json:"conflicts"`
	Evicted    int              `json:"evicted,omitempty"`
	Frames     []Frame          `json:"frames,omitempty"`
}

// RunOptions controls a batch run.
type RunOptions struct {
	StepMinutes   float64
	IncludeFrames bool
}

// stateKey identifies the inputs a cached set of train states was derived from.
type stateKey struct {
	roster   uint64
	nodes    uint64
	lengthKm float64
}
