// Package logging builds the process logger: JSON lines on stdout, optionally
// teed into a size-rotated file.
package logging

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures New. Zero fields get defaults.
type Options struct {
	// Level is a slog level name (debug, info, warn, error). Unparsable
	// values fall back to info.
	Level string
	// File enables a rotated log file at this path when non-empty.
	File string
	// MaxSizeMB rotates File at this size. Defaults to 10.
	MaxSizeMB int
	// MaxBackups and MaxAgeDays bound how many rotated files are kept.
	MaxBackups int
	MaxAgeDays int
	// Stdout is where logs go besides File. Defaults to os.Stdout.
	Stdout io.Writer
}

// New returns a JSON logger and a closer for the file sink. The closer is a
// no-op when no file is configured.
func New(opts Options) (*slog.Logger, io.Closer) {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.MaxSizeMB <= 0 {
		opts.MaxSizeMB = 10
	}
	if opts.MaxBackups <= 0 {
		opts.MaxBackups = 3
	}
	if opts.MaxAgeDays <= 0 {
		opts.MaxAgeDays = 28
	}

	var out io.Writer = opts.Stdout
	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		lj := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Compress:   true,
		}
		out = io.MultiWriter(opts.Stdout, lj)
		closer = lj
	}

	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level: ParseLevel(opts.Level),
	})), closer
}

// ParseLevel maps a level name to a slog.Level, defaulting to info.
func ParseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
