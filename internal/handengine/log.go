package handengine

import (
	"io"

	"github.com/charmbracelet/log"
)

// Logger is the engine's own debug tracer, kept distinct from the
// zerolog.Logger the Room Controller/Router/Registry layer uses —
// matching the corpus's own split between charmbracelet/log in
// internal/game and zerolog in internal/server. Logging here is
// fire-and-forget: it never gates a state transition (spec §5, "the
// Hand Engine itself must not suspend").
var Logger = log.NewWithOptions(io.Discard, log.Options{})

// SetLogger lets the process entry point (cmd/pokerserver) attach a
// real sink (e.g. stderr) at startup.
func SetLogger(l *log.Logger) {
	Logger = l
}
