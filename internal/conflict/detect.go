// Package conflict detects unsafe spacing between active trains and keeps a
// deduplicated log of what it found.
package conflict

import (
	"math"

	"github.com/cxd309/corridor-engine/internal/network"
	"github.com/cxd309/corridor-engine/internal/train"
)

const (
	// SafeDistanceKm is the minimum clearance between two train bodies
	// outside of managed junctions.
	SafeDistanceKm = 0.1
	// CrossingToleranceKm is how close both trains must be to a crossing for
	// it to count as the place they meet.
	CrossingToleranceKm = 0.01
)

// Active is one running train as seen by the detector.
type Active struct {
	ID         train.ID `json:"id"`
	Index      int      `json:"index"` // display position in the roster
	Name       string   `json:"name"`
	DistanceKm float64  `json:"distance_km"`
	LengthKm   float64  `json:"length_km"`
	SpeedKmh   float64  `json:"speed_kmh"`
	PathIndex  int      `json:"path_index"`
}

// Event is a single-tick detection of insufficient spacing between A and B.
type Event struct {
	A         Active  `json:"a"`
	B         Active  `json:"b"`
	GapKm     float64 `json:"gap_km"`
	GapMeters float64 `json:"gap_m"`
}

// CrossingMatcher finds a crossing lying within tolKm of both distances.
type CrossingMatcher interface {
	MatchCrossing(a, b, tolKm float64) (network.Crossing, bool)
}

// Detector evaluates every pair of active trains. It keeps no state between
// calls.
type Detector struct {
	crossings CrossingMatcher
}

// NewDetector returns a Detector consulting crossings for junction
// exemptions. crossings may be nil.
func NewDetector(crossings CrossingMatcher) *Detector {
	return &Detector{crossings: crossings}
}

// Gap is the clearance between two train bodies: centre spacing minus both
// lengths.
func Gap(a, b Active) float64 {
	return math.Abs(a.DistanceKm-b.DistanceKm) - (a.LengthKm + b.LengthKm)
}

// Evaluate returns an event for every unordered pair closer than
// SafeDistanceKm that is not exempted by a crossing.
//
// Trains on different paths only interact at a crossing. A crossing both
// trains are at suppresses the warning when they come from different paths,
// or when both run on the crossing's own path.
func (d *Detector) Evaluate(active []Active) []Event {
	var events []Event
	for i := 0; i < len(active); i++ {
		for j := i + 1; j < len(active); j++ {
			if ev, ok := d.evaluatePair(active[i], active[j]); ok {
				events = append(events, ev)
			}
		}
	}
	return events
}

func (d *Detector) evaluatePair(a, b Active) (Event, bool) {
	var (
		crossing   network.Crossing
		atCrossing bool
	)
	if d.crossings != nil {
		crossing, atCrossing = d.crossings.MatchCrossing(a.DistanceKm, b.DistanceKm, CrossingToleranceKm)
	}
	samePath := a.PathIndex == b.PathIndex
	if !samePath && !atCrossing {
		return Event{}, false
	}

	gap := Gap(a, b)
	suppressed := atCrossing &&
		((crossing.PathIndex == a.PathIndex && crossing.PathIndex == b.PathIndex) || !samePath)
	if gap >= SafeDistanceKm || suppressed {
		return Event{}, false
	}
	return Event{A: a, B: b, GapKm: gap, GapMeters: gap * 1000}, true
}
