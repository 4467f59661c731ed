package debug

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu      sync.Mutex
	logger  = zap.NewNop()
	enabled bool
)

// Enable starts debug logging to the given file (truncated on start).
func Enable(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if enabled {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.Lock(f), zapcore.DebugLevel)
	logger = zap.New(core)
	enabled = true

	logger.Named("debug").Info("=== Debug logging started ===")
	return nil
}

// EnableConsole logs to stderr at the given level ("debug", "info", "warn", ...).
func EnableConsole(level string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.DisableStacktrace = true
	l, err := cfg.Build()
	if err != nil {
		return err
	}
	logger = l
	enabled = true
	return nil
}

// SetLogger installs l as the package logger. Tests use it with an observer core.
func SetLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
	enabled = true
}

// Disable flushes and stops debug logging
func Disable() {
	mu.Lock()
	defer mu.Unlock()

	_ = logger.Sync()
	logger = zap.NewNop()
	enabled = false
}

// Named returns a sugared logger for a category, for call sites that want
// structured key/value pairs.
func Named(category string) *zap.SugaredLogger {
	mu.Lock()
	defer mu.Unlock()
	return logger.Named(category).Sugar()
}

// Log writes a debug message under a category
func Log(category, format string, args ...any) {
	Named(category).Debugf(format, args...)
}

// Info writes an informational message under a category
func Info(category, format string, args ...any) {
	Named(category).Infof(format, args...)
}

// Warn writes a warning under a category
func Warn(category, format string, args ...any) {
	Named(category).Warnf(format, args...)
}

// LogEvery logs only every N calls (use for high-frequency events)
var (
	countersMu sync.Mutex
	counters   = make(map[string]int)
)

func LogEvery(n int, category, format string, args ...any) {
	countersMu.Lock()
	key := category + format
	counters[key]++
	count := counters[key]
	countersMu.Unlock()

	if count%n == 0 {
		Log(category, format+" (every %d, count=%d)", append(args, n, count)...)
	}
}
