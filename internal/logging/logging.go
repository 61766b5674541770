// Package logging configures the debug logger. Normal runs carry a
// no-op logger; --debug switches on per-line classification tracing.
package logging

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// New returns the process logger. When debug is off the logger is a
// no-op. When it is on, output goes to stderr: human-readable console
// format on a terminal, JSON lines otherwise so piped debug output
// stays machine-parsable.
func New(debug bool) zerolog.Logger {
	if !debug {
		return zerolog.Nop()
	}

	var out io.Writer = os.Stderr
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		out = zerolog.ConsoleWriter{Out: os.Stderr}
	}

	return zerolog.New(out).With().Timestamp().Logger().Level(zerolog.DebugLevel)
}
