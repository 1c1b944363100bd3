// Package logging configures the engine trace log. Narrative output
// never goes through here; this is for debugging command dispatch and
// mod activity.
package logging

import (
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Config selects where trace logging goes.
type Config struct {
	// Debug enables debug-level records; otherwise only info and up
	// are kept.
	Debug bool
	// FilePath, when set, sends records to a rotating log file
	// instead of stderr.
	FilePath string
	// Stderr enables text output to standard error. Usually off for
	// the TUI, which owns the terminal.
	Stderr bool
}

// New builds a logger per config. With nothing enabled it discards
// everything.
func New(cfg Config) *slog.Logger {
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	switch {
	case cfg.FilePath != "":
		rotating := &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     30, // days
		}
		return slog.New(slog.NewTextHandler(rotating, opts))
	case cfg.Stderr:
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	default:
		return slog.New(slog.DiscardHandler)
	}
}
