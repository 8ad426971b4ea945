// Package config loads the run configuration of the corridor engine.
//
// Every field is optional. The Get* accessors return the configured value or
// the default, so a partial file is safe and a nil *Config is valid.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cxd309/corridor-engine/internal/geometry"
)

const (
	DefaultRatePerSecond      = 1.0 // simulated minutes per wall-clock second
	DefaultPlaybackMultiplier = 1.0
	DefaultStepMinutes        = 1.0
	DefaultLogCapacity        = 500
)

const maxFileSize = 1 << 20

// CanvasConfig sizes the canvas the analytic lanes are drawn on.
type CanvasConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Margin float64 `yaml:"margin"`
}

// Config is the root run configuration.
type Config struct {
	// Playback
	RatePerSecond      *float64 `yaml:"rate_per_second,omitempty"`
	PlaybackMultiplier *float64 `yaml:"playback_multiplier,omitempty"`

	// Batch runs
	StepMinutes   *float64 `yaml:"step_minutes,omitempty"`
	IncludeFrames *bool    `yaml:"include_frames,omitempty"`

	// Conflict log
	LogCapacity *int `yaml:"log_capacity,omitempty"`

	// Geometry
	Samples        *int          `yaml:"samples,omitempty"`
	RefineEpsilon  *float64      `yaml:"refine_epsilon,omitempty"`
	MaxRefineSteps *int          `yaml:"max_refine_steps,omitempty"`
	LaneSpacing    *float64      `yaml:"lane_spacing,omitempty"`
	Canvas         *CanvasConfig `yaml:"canvas,omitempty"`
}

// Load reads a YAML config file. The file must have a .yaml or .yml
// extension and be under 1 MiB.
func Load(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("config file must have .yaml or .yml extension, got %q", ext)
	}
	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML config document.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the fields that are set.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if c.RatePerSecond != nil && *c.RatePerSecond < 0 {
		return fmt.Errorf("rate_per_second must be >= 0, got %v", *c.RatePerSecond)
	}
	if c.PlaybackMultiplier != nil && *c.PlaybackMultiplier < 0 {
		return fmt.Errorf("playback_multiplier must be >= 0, got %v", *c.PlaybackMultiplier)
	}
	if c.StepMinutes != nil && !(*c.StepMinutes > 0) {
		return fmt.Errorf("step_minutes must be > 0, got %v", *c.StepMinutes)
	}
	if c.LogCapacity != nil && *c.LogCapacity <= 0 {
		return fmt.Errorf("log_capacity must be > 0, got %d", *c.LogCapacity)
	}
	if c.Samples != nil && *c.Samples <= 0 {
		return fmt.Errorf("samples must be > 0, got %d", *c.Samples)
	}
	if c.RefineEpsilon != nil && !(*c.RefineEpsilon > 0) {
		return fmt.Errorf("refine_epsilon must be > 0, got %v", *c.RefineEpsilon)
	}
	if c.MaxRefineSteps != nil && *c.MaxRefineSteps <= 0 {
		return fmt.Errorf("max_refine_steps must be > 0, got %d", *c.MaxRefineSteps)
	}
	if c.LaneSpacing != nil && *c.LaneSpacing < 0 {
		return fmt.Errorf("lane_spacing must be >= 0, got %v", *c.LaneSpacing)
	}
	if c.Canvas != nil && (c.Canvas.Width <= 0 || c.Canvas.Height <= 0) {
		return fmt.Errorf("canvas width and height must be > 0")
	}
	return nil
}

func (c *Config) GetRatePerSecond() float64 {
	if c == nil || c.RatePerSecond == nil {
		return DefaultRatePerSecond
	}
	return *c.RatePerSecond
}

func (c *Config) GetPlaybackMultiplier() float64 {
	if c == nil || c.PlaybackMultiplier == nil {
		return DefaultPlaybackMultiplier
	}
	return *c.PlaybackMultiplier
}

func (c *Config) GetStepMinutes() float64 {
	if c == nil || c.StepMinutes == nil {
		return DefaultStepMinutes
	}
	return *c.StepMinutes
}

func (c *Config) GetIncludeFrames() bool {
	return c != nil && c.IncludeFrames != nil && *c.IncludeFrames
}

func (c *Config) GetLogCapacity() int {
	if c == nil || c.LogCapacity == nil {
		return DefaultLogCapacity
	}
	return *c.LogCapacity
}

// GetSearchOptions returns the nearest-point search options.
func (c *Config) GetSearchOptions() geometry.SearchOptions {
	o := geometry.DefaultSearchOptions()
	if c == nil {
		return o
	}
	if c.Samples != nil {
		o.Samples = *c.Samples
	}
	if c.RefineEpsilon != nil {
		o.Epsilon = *c.RefineEpsilon
	}
	if c.MaxRefineSteps != nil {
		o.MaxRefineSteps = *c.MaxRefineSteps
	}
	return o
}

func (c *Config) GetLaneSpacing() float64 {
	if c == nil || c.LaneSpacing == nil {
		return geometry.DefaultLaneSpacing
	}
	return *c.LaneSpacing
}

func (c *Config) GetCanvas() geometry.Canvas {
	if c == nil || c.Canvas == nil {
		return geometry.DefaultCanvas
	}
	return geometry.Canvas{Width: c.Canvas.Width, Height: c.Canvas.Height, Margin: c.Canvas.Margin}
}

// TrackOptions returns the geometry options this config implies.
func (c *Config) TrackOptions() []geometry.Option {
	return []geometry.Option{
		geometry.WithCanvas(c.GetCanvas()),
		geometry.WithLaneSpacing(c.GetLaneSpacing()),
		geometry.WithSearch(c.GetSearchOptions()),
	}
}
