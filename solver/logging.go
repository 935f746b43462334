package solver

import (
	"os"

	"github.com/rs/zerolog"
)

// defaultLogger is the no-op logger used when a caller configures no
// Option. It mirrors gophersat's Solver.Verbose=false default: no output
// unless asked for.
func defaultLogger() zerolog.Logger {
	return zerolog.Nop()
}

// NewConsoleLogger returns a zerolog.Logger writing to stderr at the given
// level, convenient for the Verbose-equivalent use case gophersat's
// Solver.Verbose ticker covers (spec §5 has no built-in cancellation or
// progress protocol beyond what a caller observes, so this is opt-in).
func NewConsoleLogger(level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}
