// Package logger owns the process-wide file logger. The TUI holds the
// terminal, so everything is written to a file instead of stderr.
package logger

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
)

// DefaultLogPath is used when Init is given an empty path.
const DefaultLogPath = "/tmp/screenstack.log"

var (
	mu       sync.Mutex
	levelVar = new(slog.LevelVar)
	logFile  *os.File
	base     *slog.Logger
)

// Init opens path for appending and installs a text handler on it.
// Calling Init again replaces the previous file.
func Init(path string) error {
	if path == "" {
		path = DefaultLogPath
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file %s: %w", path, err)
	}

	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		_ = logFile.Close()
	}
	logFile = f
	base = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: levelVar}))
	base.Info("logger initialized", "path", path)
	return nil
}

// SetDebug toggles debug-level output. It can be called before or after Init.
func SetDebug(enabled bool) {
	if enabled {
		levelVar.Set(slog.LevelDebug)
	} else {
		levelVar.Set(slog.LevelInfo)
	}
}

// Logger returns the process logger, or a discarding one before Init.
func Logger() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if base == nil {
		return slog.New(slog.DiscardHandler)
	}
	return base
}

// Component returns Logger with a component attribute attached.
//
//	log := logger.Component("container")
//	log.Debug("evicted screen", "index", i)
func Component(name string) *slog.Logger {
	return Logger().With(slog.String("component", name))
}

// Close flushes and closes the log file. Later calls to Logger discard.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	base = nil
	levelVar.Set(slog.LevelInfo)
}
