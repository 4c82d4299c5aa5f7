package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/HaPhanBaoMinh/podmon/help"
)

type Options struct {
	// Path of the log file; empty disables file output.
	Path  string
	Level string
	// Console also writes human readable lines to stderr. The TUI leaves
	// this off since the terminal belongs to the program.
	Console bool
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New builds the process logger. The returned closer releases the log file.
func New(opts Options) (zerolog.Logger, io.Closer, error) {
	lvl, err := ParseLevel(opts.Level)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}

	var writers []io.Writer
	var closer io.Closer = nopCloser{}
	if opts.Path != "" {
		path := help.ExpandHome(opts.Path)
		if err := help.EnsureParent(path); err != nil {
			return zerolog.Nop(), nopCloser{}, fmt.Errorf("logging: ensure log dir: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return zerolog.Nop(), nopCloser{}, fmt.Errorf("logging: open log file: %w", err)
		}
		writers = append(writers, f)
		closer = f
	}
	if opts.Console {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
	if len(writers) == 0 {
		return zerolog.Nop(), closer, nil
	}

	l := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(lvl).
		With().
		Timestamp().
		Str("app", "podmon").
		Logger()
	return l, closer, nil
}

// ParseLevel accepts zerolog level names; empty means info.
func ParseLevel(s string) (zerolog.Level, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.InfoLevel, fmt.Errorf("logging: %w", err)
	}
	return lvl, nil
}
