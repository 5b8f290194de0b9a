// Package debuglog appends diagnostic lines to a file when HILITE_DEBUG=1.
package debuglog

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

const (
	envEnable = "HILITE_DEBUG"
	envFile   = "HILITE_DEBUG_FILE"
)

// Logger writes to its file only when debugging was enabled at creation.
// A nil Logger discards everything.
type Logger struct {
	mu   sync.Mutex
	path string
}

// New returns a logger for path, or nil when HILITE_DEBUG is not "1".
// An empty path uses HILITE_DEBUG_FILE, then hilite.log in the temp dir.
func New(path string) *Logger {
	if os.Getenv(envEnable) != "1" {
		return nil
	}
	if path == "" {
		path = os.Getenv(envFile)
	}
	if path == "" {
		path = filepath.Join(os.TempDir(), "hilite.log")
	}
	return &Logger{path: path}
}

// Path returns the file being written, or "" for a disabled logger.
func (l *Logger) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Printf formats and appends one record.
func (l *Logger) Printf(format string, args ...any) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer func() {
		_ = f.Close()
	}()
	slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})).Debug(fmt.Sprintf(format, args...))
}

// Func adapts the logger to the printf-style hooks other packages accept.
// A disabled logger yields nil.
func (l *Logger) Func() func(format string, args ...any) {
	if l == nil {
		return nil
	}
	return l.Printf
}
