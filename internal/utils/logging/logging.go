// Package logging is mdload's leveled console and file logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"mdload/internal/domain/consts"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

var (
	// Level is the debug verbosity (0-5). D(l, ...) prints when l <= Level.
	Level = consts.DefaultLogLevel

	mu      sync.RWMutex
	console io.Writer = newConsoleWriter(colorable.NewColorableStdout(), !isatty.IsTerminal(os.Stdout.Fd()))
	logFile *os.File
	logger  = zerolog.New(console).With().Timestamp().Logger()
)

func newConsoleWriter(out io.Writer, noColor bool) io.Writer {
	return zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    noColor,
		TimeFormat: time.TimeOnly,
	}
}

// SetLevel clamps and stores the debug level.
func SetLevel(l int) {
	switch {
	case l <= 0:
		l = 0
	case l >= consts.MaxLogLevel:
		l = consts.MaxLogLevel
	}
	mu.Lock()
	Level = l
	mu.Unlock()
}

// SetOutput replaces the console destination. Colors are disabled.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	console = newConsoleWriter(w, true)
	rebuild()
}

// SetupLogging creates and/or opens the log file in targetDir.
func SetupLogging(targetDir string) error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		return nil
	}

	path := filepath.Join(targetDir, consts.LogFile)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, consts.PermsLogFile)
	if err != nil {
		return fmt.Errorf("failed to open log file %q: %w", path, err)
	}
	logFile = f
	rebuild()
	return nil
}

// Close flushes and closes the log file, if any.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile == nil {
		return
	}
	if err := logFile.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
	}
	logFile = nil
	rebuild()
}

// rebuild must be called with mu held.
func rebuild() {
	var w io.Writer = console
	if logFile != nil {
		w = zerolog.MultiLevelWriter(console, logFile)
	}
	logger = zerolog.New(w).With().Timestamp().Logger()
}

// E logs an error with its call site.
func E(format string, args ...any) {
	mu.RLock()
	ev := logger.Error()
	mu.RUnlock()
	ev.Caller(1).Msgf(format, args...)
}

// W logs a warning.
func W(format string, args ...any) {
	mu.RLock()
	ev := logger.Warn()
	mu.RUnlock()
	ev.Msgf(format, args...)
}

// I logs general information.
func I(format string, args ...any) {
	mu.RLock()
	ev := logger.Info()
	mu.RUnlock()
	ev.Msgf(format, args...)
}

// S logs a success.
func S(format string, args ...any) {
	mu.RLock()
	ev := logger.Info()
	mu.RUnlock()
	ev.Str("result", "success").Msgf(format, args...)
}

// D logs debug output when l is within the configured level.
func D(l int, format string, args ...any) {
	mu.RLock()
	if l > Level {
		mu.RUnlock()
		return
	}
	ev := logger.Debug()
	mu.RUnlock()
	ev.Int("debug", l).Caller(1).Msgf(format, args...)
}
