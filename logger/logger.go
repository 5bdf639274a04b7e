// Package logger fans simulation log lines out to the configured backends.
package logger

import "sync"

// Level orders log lines by severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var levelNames = [...]string{"debug", "info", "warn", "error", "fatal"}

func (l Level) String() string {
	if l < LevelDebug || l > LevelFatal {
		return "unknown"
	}
	return levelNames[l]
}

// Backend receives every line at or above its own threshold. Filtering is
// left to the backend.
type Backend interface {
	Log(level Level, message string, keyvals ...any)
}

var (
	mu       sync.RWMutex
	backends []Backend
)

// Init replaces the backends. Lines logged with no backend are dropped.
func Init(b ...Backend) {
	mu.Lock()
	backends = b
	mu.Unlock()
}

func dispatch(level Level, message string, keyvals []any) {
	mu.RLock()
	defer mu.RUnlock()
	for _, b := range backends {
		b.Log(level, message, keyvals...)
	}
}

func Debug(message string, keyvals ...any) { dispatch(LevelDebug, message, keyvals) }
func Info(message string, keyvals ...any)  { dispatch(LevelInfo, message, keyvals) }
func Warn(message string, keyvals ...any)  { dispatch(LevelWarn, message, keyvals) }
func Error(message string, keyvals ...any) { dispatch(LevelError, message, keyvals) }

// Fatal logs and lets the backends terminate the program.
func Fatal(message string, keyvals ...any) { dispatch(LevelFatal, message, keyvals) }
