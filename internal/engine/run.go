package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/cxd309/corridor-engine/internal/config"
	"github.com/cxd309/corridor-engine/internal/geometry"
	"github.com/cxd309/corridor-engine/internal/monitoring"
	"github.com/cxd309/corridor-engine/internal/network"
	"github.com/cxd309/corridor-engine/internal/train"
)

// ErrNoSchedule is returned by Run when no train runs to a timetable.
var ErrNoSchedule = errors.New("no scheduled trains")

// maxRunTicks bounds a batch run; a full day at one-second steps fits.
const maxRunTicks = 24 * 60 * 60

// Window returns the earliest departure and latest arrival of the trains
// that run to a timetable. Manually pinned trains are ignored.
func (s *Simulation) Window() (start, end float64, err error) {
	states, err := s.trainStates()
	if err != nil {
		return 0, 0, err
	}
	start, end = math.Inf(1), math.Inf(-1)
	for _, st := range states {
		if st.ManualPositionKm != nil {
			continue
		}
		start = math.Min(start, st.DepartureMinutes)
		end = math.Max(end, st.ArrivalMinutes)
	}
	if math.IsInf(start, 1) {
		return 0, 0, ErrNoSchedule
	}
	return start, end, nil
}

// Run steps the simulation from the first departure to the last arrival and
// returns the conflicts logged along the way. Each new conflict is also
// reported through the monitoring logger.
func (s *Simulation) Run(opts RunOptions) (RunLog, error) {
	step := opts.StepMinutes
	if !(step > 0) {
		step = config.DefaultStepMinutes
	}
	start, end, err := s.Window()
	if err != nil {
		return RunLog{}, err
	}
	if (end-start)/step > maxRunTicks {
		return RunLog{}, fmt.Errorf("run of %.0f min at %.3g min steps exceeds %d ticks", end-start, step, maxRunTicks)
	}

	rl := RunLog{
		Start:      start,
		End:        end,
		StartClock: train.FormatClock(start),
		EndClock:   train.FormatClock(end),
	}
	// Step by index so rounding does not skip the final tick.
	for i := 0; ; i++ {
		now := start + float64(i)*step
		if now > end {
			break
		}
		frame, err := s.Tick(now)
		if err != nil {
			return RunLog{}, err
		}
		for _, e := range frame.NewEntries {
			monitoring.Logf("trains %s and %s too close at %s (gap = %.0f m)", e.Trains[0], e.Trains[1], e.Clock(), e.GapMeters)
		}
		if opts.IncludeFrames {
			rl.Frames = append(rl.Frames, frame)
		}
		rl.Ticks++
	}
	rl.Conflicts = s.log.Entries()
	rl.Evicted = s.log.Evicted()
	return rl, nil
}

// RunScenario loads sc onto the given paths and runs it to completion.
func RunScenario(sc Scenario, cfg *config.Config, opts RunOptions, paths ...geometry.PathCurve) (RunLog, error) {
	sim, err := NewSimulation(sc, cfg, paths...)
	if err != nil {
		return RunLog{}, err
	}
	return sim.Run(opts)
}

// RunJSON accepts a JSON-encoded Scenario, runs it, and returns a
// JSON-encoded RunLog. cfg may be nil.
func RunJSON(jsonInput string, cfg *config.Config) (string, error) {
	var sc Scenario
	if err := json.Unmarshal([]byte(jsonInput), &sc); err != nil {
		return "", fmt.Errorf("invalid input JSON: %w", err)
	}

	rl, err := RunScenario(sc, cfg, RunOptions{StepMinutes: cfg.GetStepMinutes(), IncludeFrames: cfg.GetIncludeFrames()})
	if err != nil {
		return "", err
	}

	out, err := json.Marshal(rl)
	if err != nil {
		return "", fmt.Errorf("marshaling output: %w", err)
	}
	return string(out), nil
}

// DefaultScenario is the four-train corridor the engine ships with.
func DefaultScenario() Scenario {
	return Scenario{
		TrackLengthKm: 240,
		Crossings: []network.Crossing{
			{Label: "X1", DistanceKm: 60},
			{Label: "X2", DistanceKm: 120},
			{Label: "X3", DistanceKm: 180},
			{Label: "X4", DistanceKm: 220},
		},
		PlaybackMultiplier: 1,
		Trains: []train.Train{
			{Name: "A", Departure: "08:00", SpeedKmh: 80, DistanceKm: 240, CarCount: 8, CarLengthM: 20},
			{Name: "B", Departure: "08:30", SpeedKmh: 60, DistanceKm: 240, CarCount: 10, CarLengthM: 25},
			{Name: "C", Departure: "09:00", SpeedKmh: 100, DistanceKm: 240, CarCount: 6, CarLengthM: 18},
			{Name: "D", Departure: "09:15", SpeedKmh: 90, DistanceKm: 240, CarCount: 12, CarLengthM: 22},
		},
	}
}
