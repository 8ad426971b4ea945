// Package monitoring holds the engine's diagnostic logger.
package monitoring

import (
	"io"
	"log"
	"os"
)

// Prefix marks every line the engine logs, so warnings can be told apart from
// the JSON a command writes.
const Prefix = "corridor: "

var std = log.New(os.Stderr, Prefix, log.LstdFlags|log.Lmsgprefix)

// Logf is the package-level diagnostic logger. It writes prefixed lines to
// stderr unless replaced by SetLogger or redirected by SetOutput.
var Logf func(format string, v ...any) = std.Printf

// SetLogger replaces the package logger. Passing nil installs a no-op logger.
func SetLogger(f func(format string, v ...any)) {
	if f == nil {
		Logf = func(string, ...any) {}
		return
	}
	Logf = f
}

// SetOutput restores the prefixed logger and points it at w.
func SetOutput(w io.Writer) {
	std.SetOutput(w)
	Logf = std.Printf
}
