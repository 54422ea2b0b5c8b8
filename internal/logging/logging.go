// Package logging builds the zerolog logger shared by the command layer and the CLI.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/satococoa/jjt/internal/config"
)

const logFilePermissions = 0o600

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns a logger for cfg. Without a log file it writes human-readable
// lines to stderr; with one it appends JSON lines to the file. The returned
// closer must be closed when the program exits.
func New(cfg config.Logging, stderr io.Writer) (zerolog.Logger, io.Closer, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}

	if cfg.File == "" {
		writer := zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.Kitchen}
		return zerolog.New(writer).Level(level).With().Timestamp().Logger(), nopCloser{}, nil
	}

	file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermissions)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("failed to open log file: %w", err)
	}

	return zerolog.New(file).Level(level).With().Timestamp().Logger(), file, nil
}

// ParseLevel maps a config level name to a zerolog level. Empty means warn.
func ParseLevel(name string) (zerolog.Level, error) {
	if name == "" {
		return zerolog.WarnLevel, nil
	}
	level, err := zerolog.ParseLevel(name)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("unknown log level '%s'", name)
	}
	return level, nil
}
