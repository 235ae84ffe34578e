// Copyright (c) 2023 The Shurium developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package consensuslog is the single place that owns this process's
// slog.Backend and hands out per-subsystem loggers, mirroring the
// teacher's own log.go: every subsystem package holds a package-level
// log variable it gets from here via UseLogger, rather than configuring
// its own backend.
package consensuslog

import (
	"io"
	"os"

	"github.com/decred/slog"
	"github.com/jrick/logrotate/rotator"
)

// backend is the process-wide slog.Backend every subsystem logger is
// derived from. It defaults to writing to stdout until InitLogRotator
// replaces its output with a rotated file writer.
var backend = slog.NewBackend(os.Stdout)

// logRotator is non-nil once InitLogRotator has been called, and is
// closed by Shutdown.
var logRotator *rotator.Rotator

// subsystemLevels holds the levels recorded by SetLevel, keyed by
// subsystem name.
var subsystemLevels = make(map[string]slog.Level)

// Logger returns a new slog.Logger for subsystem, at the level last given
// to SetLevel for that subsystem, or LevelInfo when none was given.
// cmd/shuriumd calls this once per subsystem at start and installs the
// result via that package's UseLogger setter, as the teacher wires btclog.
func Logger(subsystem string) slog.Logger {
	l := backend.Logger(subsystem)
	level, ok := subsystemLevels[subsystem]
	if !ok {
		level = slog.LevelInfo
	}
	l.SetLevel(level)
	return l
}

// ParseLevel maps a human-readable level name (as accepted by the
// --debuglevel flag) to a slog.Level, reporting false for an unknown
// name rather than silently defaulting.
func ParseLevel(name string) (slog.Level, bool) {
	switch name {
	case "trace":
		return slog.LevelTrace, true
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	case "critical":
		return slog.LevelCritical, true
	case "off":
		return slog.LevelOff, true
	default:
		return 0, false
	}
}

// SetLevel records level for subsystem; every later Logger(subsystem) call
// returns a logger at that level. Loggers already handed out keep the
// level they were created with.
func SetLevel(subsystem string, level slog.Level) {
	subsystemLevels[subsystem] = level
}

// InitLogRotator creates a rotated log file at logFile (directories must
// already exist) and duplicates all backend output to it in addition to
// stdout, following the teacher's maxRolls=3 convention.
func InitLogRotator(logFile string, maxSizeBytes int64) error {
	r, err := rotator.New(logFile, maxSizeBytes, false, 3)
	if err != nil {
		return err
	}
	logRotator = r

	backend = slog.NewBackend(io.MultiWriter(os.Stdout, r))
	return nil
}

// Shutdown flushes and closes the log rotator, if one was installed. It
// is safe to call even if InitLogRotator was never called.
func Shutdown() {
	if logRotator != nil {
		logRotator.Close()
	}
}
