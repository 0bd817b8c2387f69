package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

var (
	mu            sync.Mutex
	defaultLogger *slog.Logger
	logLevel      *slog.LevelVar
	initialized   bool
)

// Init configures the package logger. The first call wins; it replaces
// the discard fallback installed by any logging that happened earlier
// (config loading logs before main can call Init). A nil output discards
// everything.
func Init(level slog.Level, output io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if initialized {
		return
	}
	initialized = true

	if output == nil {
		output = io.Discard
	}
	logLevel = new(slog.LevelVar)
	logLevel.Set(level)

	opts := slog.HandlerOptions{
		Level:     logLevel,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.SourceKey {
				source := a.Value.Any().(*slog.Source)
				source.File = filepath.Base(source.File)
			}
			if a.Key == slog.TimeKey {
				a.Value = slog.StringValue(a.Value.Time().Format(time.TimeOnly))
			}
			return a
		},
	}
	handler := slog.NewTextHandler(output, &opts)
	defaultLogger = slog.New(handler)

	r := slog.NewRecord(time.Now(), slog.LevelInfo, "logger initialized", 0)
	r.AddAttrs(slog.String("level", level.String()))
	_ = handler.Handle(context.Background(), r)
}

// ensureInitialized installs a discard fallback so logging before Init is
// safe. It does not mark the logger initialized; a later Init still wins.
func ensureInitialized() {
	mu.Lock()
	defer mu.Unlock()
	if defaultLogger == nil {
		logLevel = new(slog.LevelVar)
		logLevel.Set(slog.LevelInfo)
		handler := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: logLevel})
		defaultLogger = slog.New(handler)
	}
}

// logAtLevel logs a formatted record, capturing the caller of the wrapper
// so source attribution points at user code rather than this package.
func logAtLevel(level slog.Level, format string, args ...interface{}) {
	l := Get()
	if !l.Enabled(context.Background(), level) {
		return
	}

	var pcs [1]uintptr
	// Skip runtime.Callers, logAtLevel and the wrapper itself.
	runtime.Callers(3, pcs[:])

	r := slog.NewRecord(time.Now(), level, fmt.Sprintf(format, args...), pcs[0])
	_ = l.Handler().Handle(context.Background(), r)
}

// Debugf logs a debug message using Printf-style formatting.
func Debugf(format string, args ...interface{}) {
	logAtLevel(slog.LevelDebug, format, args...)
}

// Infof logs an info message using Printf-style formatting.
func Infof(format string, args ...interface{}) {
	logAtLevel(slog.LevelInfo, format, args...)
}

// Warnf logs a warning message using Printf-style formatting.
func Warnf(format string, args ...interface{}) {
	logAtLevel(slog.LevelWarn, format, args...)
}

// Errorf logs an error message using Printf-style formatting.
func Errorf(format string, args ...interface{}) {
	logAtLevel(slog.LevelError, format, args...)
}

// Fatalf logs an error message then exits.
func Fatalf(format string, args ...interface{}) {
	logAtLevel(slog.LevelError, format, args...)
	os.Exit(1)
}

// Get retrieves the configured logger instance.
func Get() *slog.Logger {
	ensureInitialized()
	mu.Lock()
	defer mu.Unlock()
	return defaultLogger
}
