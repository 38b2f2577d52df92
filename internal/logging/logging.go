// Package logging builds the zerolog logger shared by the CLI, service and server.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type Options struct {
	Level  string
	Format string // "console" or "json"
	Out    io.Writer
}

// New returns a logger writing to opts.Out (stderr by default). An unknown level
// falls back to warn.
func New(opts Options) zerolog.Logger {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	if strings.EqualFold(opts.Format, "console") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(opts.Level)))
	if err != nil || opts.Level == "" {
		level = zerolog.WarnLevel
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
