package engine

import (
	"math"
	"time"

	"github.com/cxd309/corridor-engine/internal/config"
)

// Playback drives a Simulation from wall-clock time. Each Advance moves the
// simulated clock by elapsed seconds × rate × multiplier and ticks once.
type Playback struct {
	sim     *Simulation
	minutes float64
	rate    float64 // simulated minutes per wall-clock second
	paused  bool
}

// NewPlayback starts a playback at startMinutes. cfg may be nil.
func NewPlayback(sim *Simulation, startMinutes float64, cfg *config.Config) *Playback {
	return &Playback{sim: sim, minutes: startMinutes, rate: cfg.GetRatePerSecond()}
}

// Minutes returns the current simulated time.
func (p *Playback) Minutes() float64 { return p.minutes }

// Paused reports whether the clock is stopped.
func (p *Playback) Paused() bool { return p.paused }

// Pause stops the clock. Ticks still run so edits made while paused are shown.
func (p *Playback) Pause() { p.paused = true }

// Resume restarts the clock.
func (p *Playback) Resume() { p.paused = false }

// Seek jumps to minutes without ticking. Non-finite values are ignored.
func (p *Playback) Seek(minutes float64) {
	if math.IsNaN(minutes) || math.IsInf(minutes, 0) {
		return
	}
	p.minutes = minutes
}

// SetMultiplier changes the playback speed factor.
func (p *Playback) SetMultiplier(m float64) { p.sim.SetPlaybackMultiplier(m) }

// Advance moves the clock by elapsed wall-clock time and evaluates the new
// time.
func (p *Playback) Advance(elapsed time.Duration) (Frame, error) {
	if !p.paused && elapsed > 0 {
		p.minutes += elapsed.Seconds() * p.rate * p.sim.PlaybackMultiplier()
	}
	return p.sim.Tick(p.minutes)
}
