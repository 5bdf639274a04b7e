// Package console is the terminal backend of package logger.
package console

import (
	"io"
	"os"

	"github.com/charmbracelet/log"

	"thermonet/logger"
)

// Options configures a Console.
type Options struct {
	// Level is one of debug, info, warn, error. Anything else means info.
	Level string
	// Writer defaults to stderr.
	Writer io.Writer
	// Prefix defaults to thermonet.
	Prefix string
}

// Console writes timestamped lines through charmbracelet/log.
type Console struct {
	l *log.Logger
}

var _ logger.Backend = (*Console)(nil)

func New(opts Options) *Console {
	level, err := log.ParseLevel(opts.Level)
	if err != nil || opts.Level == "" {
		level = log.InfoLevel
	}
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	prefix := opts.Prefix
	if prefix == "" {
		prefix = "thermonet"
	}
	return &Console{l: log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          prefix,
	})}
}

// Log implements logger.Backend. LevelFatal exits the process after writing.
func (c *Console) Log(level logger.Level, message string, keyvals ...any) {
	switch level {
	case logger.LevelDebug:
		c.l.Debug(message, keyvals...)
	case logger.LevelInfo:
		c.l.Info(message, keyvals...)
	case logger.LevelWarn:
		c.l.Warn(message, keyvals...)
	case logger.LevelError:
		c.l.Error(message, keyvals...)
	case logger.LevelFatal:
		c.l.Fatal(message, keyvals...)
	default:
		c.l.Print(message, keyvals...)
	}
}
