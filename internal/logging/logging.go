// Package logging sets up the process-wide slog logger for the viewer.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// LevelFlag is a flag.Value for slog levels given by name.
type LevelFlag struct {
	Value slog.Level
}

func (l LevelFlag) String() string {
	return l.Value.String()
}

func (l *LevelFlag) Set(value string) error {
	m := map[string]slog.Level{"DEBUG": slog.LevelDebug, "INFO": slog.LevelInfo, "WARN": slog.LevelWarn, "ERROR": slog.LevelError}
	v, ok := m[strings.ToUpper(value)]
	if !ok {
		return fmt.Errorf("unknown log level %q", value)
	}
	l.Value = v
	return nil
}

// Setup installs a text handler at level as the default logger. With a
// non-empty path logs go to a size-rotated file instead of stderr. The
// returned closer flushes and closes that file.
func Setup(level slog.Level, path string) io.Closer {
	var w io.Writer = os.Stderr
	var c io.Closer = nopCloser{}
	if path != "" {
		lj := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
		}
		w, c = lj, lj
	}
	slog.SetDefault(New(w, level))
	return c
}

// New returns a text logger writing to w at level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
