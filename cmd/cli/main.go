// Command corridor-engine reads a Scenario JSON from a file argument (or stdin),
// runs it from the first departure to the last arrival, and writes the RunLog
// JSON to stdout. Conflict warnings are logged to stderr as they are found.
//
// Usage:
//
//	corridor-engine [-config run.yaml] [-map rail.geojson] [-frames] [-default] [scenario.json]
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/cxd309/corridor-engine/internal/config"
	"github.com/cxd309/corridor-engine/internal/engine"
	"github.com/cxd309/corridor-engine/internal/geometry"
	"github.com/cxd309/corridor-engine/internal/mapimport"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML run configuration")
	mapPath := flag.String("map", "", "GeoJSON file whose lines replace the built-in lanes")
	frames := flag.Bool("frames", false, "include every tick in the output")
	useDefault := flag.Bool("default", false, "run the built-in four-train scenario instead of reading input")
	flag.Parse()

	if err := run(*configPath, *mapPath, *frames, *useDefault, flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, mapPath string, frames, useDefault bool, inputPath string) error {
	var cfg *config.Config
	if configPath != "" {
		c, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = c
	}

	sc := engine.DefaultScenario()
	if !useDefault {
		data, err := readInput(inputPath)
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		sc = engine.Scenario{}
		if err := json.Unmarshal(data, &sc); err != nil {
			return fmt.Errorf("invalid input JSON: %w", err)
		}
	}

	var paths []geometry.PathCurve
	if mapPath != "" {
		data, err := os.ReadFile(mapPath)
		if err != nil {
			return fmt.Errorf("reading map: %w", err)
		}
		m, err := mapimport.Decode(data, mapimport.Options{Canvas: cfg.GetCanvas()})
		if err != nil {
			return fmt.Errorf("map %s: %w", mapPath, err)
		}
		paths = m.Curves()
		sc.Crossings = append(sc.Crossings, m.Crossings()...)
	}

	opts := engine.RunOptions{StepMinutes: cfg.GetStepMinutes(), IncludeFrames: frames || cfg.GetIncludeFrames()}
	rl, err := engine.RunScenario(sc, cfg, opts, paths...)
	if err != nil {
		return fmt.Errorf("simulation error: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(rl)
}

func readInput(path string) ([]byte, error) {
	if path != "" {
		return os.ReadFile(path)
	}
	return io.ReadAll(os.Stdin)
}
