// Package logger holds the process-wide zerolog logger.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu     sync.RWMutex
	global = zerolog.New(os.Stderr).With().Timestamp().Logger()
)

// Init configures the process logger. format is "json" or "console";
// unknown levels fall back to info.
func Init(level, format string) *zerolog.Logger {
	return InitWithWriter(os.Stderr, level, format)
}

// InitWithWriter is Init with an explicit output, used by tests.
func InitWithWriter(w io.Writer, level, format string) *zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	out := w
	if format != "json" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	l := zerolog.New(out).Level(lvl).With().Timestamp().Logger()

	mu.Lock()
	global = l
	mu.Unlock()
	return &l
}

// Get returns the process logger.
func Get() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := global
	return &l
}
