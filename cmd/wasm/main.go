//go:build js && wasm

// Command wasm exposes the corridor engine to the browser via WebAssembly.
// After loading, it registers two global JavaScript functions:
//
//	runScenario(scenarioJSON) -> runLogJSON
//	projectPoint(scenarioJSON, x, y) -> projectionJSON
//
// Errors are returned as {"error": message}.
package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/cxd309/corridor-engine/internal/engine"
	"github.com/cxd309/corridor-engine/internal/geometry"
)

func main() {
	js.Global().Set("runScenario", js.FuncOf(runScenario))
	js.Global().Set("projectPoint", js.FuncOf(projectPoint))
	select {} // keep the WASM module alive until the page is closed
}

func runScenario(_ js.Value, args []js.Value) any {
	if len(args) < 1 {
		return map[string]any{"error": "no input provided"}
	}

	result, err := engine.RunJSON(args[0].String(), nil)
	if err != nil {
		return map[string]any{"error": err.Error()}
	}
	return result
}

func projectPoint(_ js.Value, args []js.Value) any {
	if len(args) < 3 {
		return map[string]any{"error": "want scenario, x and y"}
	}

	var sc engine.Scenario
	if err := json.Unmarshal([]byte(args[0].String()), &sc); err != nil {
		return map[string]any{"error": "invalid input JSON: " + err.Error()}
	}
	sim, err := engine.NewSimulation(sc, nil)
	if err != nil {
		return map[string]any{"error": err.Error()}
	}
	proj, err := sim.ProjectPoint(geometry.Point{X: args[1].Float(), Y: args[2].Float()})
	if err != nil {
		return map[string]any{"error": err.Error()}
	}
	out, err := json.Marshal(proj)
	if err != nil {
		return map[string]any{"error": err.Error()}
	}
	return string(out)
}
