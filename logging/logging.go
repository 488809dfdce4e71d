// Package logging writes leveled JSON log lines for termsuji-chess.
// The terminal belongs to the UI, so logs go to a file.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/adrg/xdg"
)

var (
	logFile = "termsuji-chess/debug.log"

	defaultMu     sync.RWMutex
	defaultLogger = New(io.Discard, LevelInfo)
)

type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
	LevelTrace
)

func (level Level) String() string {
	switch level {
	case LevelError:
		return "error"
	case LevelWarn:
		return "warn"
	case LevelInfo:
		return "info"
	case LevelDebug:
		return "debug"
	case LevelTrace:
		return "trace"
	default:
		return "unknown"
	}
}

// ParseLevel parses a log level string.
// Valid log levels are: error, warn, info, debug, trace.
func ParseLevel(level string) (Level, error) {
	switch level {
	case "error":
		return LevelError, nil
	case "warn":
		return LevelWarn, nil
	case "info":
		return LevelInfo, nil
	case "debug":
		return LevelDebug, nil
	case "trace":
		return LevelTrace, nil
	default:
		return LevelError, fmt.Errorf("unknown log level: %s", level)
	}
}

type Logger struct {
	mu     sync.Mutex
	logger *log.Logger
	level  Level
}

func New(out io.Writer, level Level) *Logger {
	return &Logger{
		logger: log.New(out, "", log.Ldate|log.Ltime|log.Lmicroseconds),
		level:  level,
	}
}

func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	l.level = level
	l.mu.Unlock()
}

func (l *Logger) logf(level Level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if level > l.level {
		return
	}
	entry := map[string]interface{}{
		"level": level.String(),
		"msg":   fmt.Sprintf(format, args...),
	}
	msg, _ := json.Marshal(entry)
	l.logger.Print(string(msg))
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.logf(LevelError, format, args...)
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.logf(LevelWarn, format, args...)
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.logf(LevelInfo, format, args...)
}

func (l *Logger) Debug(format string, args ...interface{}) {
	l.logf(LevelDebug, format, args...)
}

func (l *Logger) Trace(format string, args ...interface{}) {
	l.logf(LevelTrace, format, args...)
}

// OpenFile opens (appending) the log file in the XDG state directory and
// installs it as the default logger. The returned file must be closed on exit.
func OpenFile(level Level) (*os.File, error) {
	path, err := xdg.StateFile(logFile)
	if err != nil {
		return nil, fmt.Errorf("resolve log path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	SetDefault(New(f, level))
	return f, nil
}

// SetDefault replaces the logger used by the package-level functions.
func SetDefault(l *Logger) {
	defaultMu.Lock()
	defaultLogger = l
	defaultMu.Unlock()
}

func current() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

func Error(format string, args ...interface{}) {
	current().Error(format, args...)
}

func Warn(format string, args ...interface{}) {
	current().Warn(format, args...)
}

func Info(format string, args ...interface{}) {
	current().Info(format, args...)
}

func Debug(format string, args ...interface{}) {
	current().Debug(format, args...)
}

func Trace(format string, args ...interface{}) {
	current().Trace(format, args...)
}
