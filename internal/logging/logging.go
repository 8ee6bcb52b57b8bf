// Package logging provides a small leveled logger with once-per-key dedup
// for errors that would otherwise repeat every frame.
package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a log level string, defaulting to info.
func ParseLevel(s string) Level {
	switch s {
	case "debug", "DEBUG":
		return LevelDebug
	case "info", "INFO":
		return LevelInfo
	case "warn", "WARN", "warning", "WARNING":
		return LevelWarn
	case "error", "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger writes timestamped leveled lines.
type Logger struct {
	mu     sync.Mutex
	level  Level
	output io.Writer
	fired  map[string]bool
}

// New creates a logger writing to stderr.
func New(level Level) *Logger {
	return &Logger{
		level:  level,
		output: os.Stderr,
		fired:  make(map[string]bool),
	}
}

// Discard returns a logger that drops everything, for tests.
func Discard() *Logger {
	return &Logger{
		level:  LevelError + 1,
		output: io.Discard,
		fired:  make(map[string]bool),
	}
}

// SetOutput redirects log output.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.output = w
}

func (l *Logger) log(level Level, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.write(level, format, args...)
}

// write assumes l.mu is held.
func (l *Logger) write(level Level, format string, args ...any) {
	if level < l.level {
		return
	}
	ts := time.Now().Format("15:04:05.000")
	line := fmt.Sprintf("%s [%s] %s\n", ts, level.String(), fmt.Sprintf(format, args...))
	_, _ = l.output.Write([]byte(line))
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...any) {
	l.log(LevelDebug, format, args...)
}

// Info logs an info message.
func (l *Logger) Info(format string, args ...any) {
	l.log(LevelInfo, format, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...any) {
	l.log(LevelWarn, format, args...)
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...any) {
	l.log(LevelError, format, args...)
}

// WarnOnce logs the message the first time the key fires; repeats are
// dropped until ClearOnce resets the key. Per-frame failure paths use this
// so a stuck condition produces one line, not thirty per second.
func (l *Logger) WarnOnce(key, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fired[key] {
		return
	}
	l.fired[key] = true
	l.write(LevelWarn, format, args...)
}

// ClearOnce re-arms a WarnOnce key, typically when the condition recovers.
func (l *Logger) ClearOnce(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.fired, key)
}
