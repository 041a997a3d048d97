// Package logger is the small levelled logger shared by the store, the
// scheduler and the graph command.
//
// Output goes through the standard log package so tea.LogToFile can take it
// away from the terminal while the TUI owns the screen.
package logger

import (
	"fmt"
	"log"
	"os"
	"sync"
)

// DebugEnv is the environment variable that turns component logging on.
const DebugEnv = "BITMETER_DEBUG"

// DebugEnabled reports whether DebugEnv is set to anything.
func DebugEnabled() bool {
	return os.Getenv(DebugEnv) != ""
}

// Level is a message severity.
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
	}
	return fmt.Sprintf("LEVEL(%d)", int(l))
}

// Logger takes printf-style messages at four levels.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// New returns the logger for a named component. Messages are written as
// "[component] LEVEL text" when BITMETER_DEBUG is set and dropped otherwise,
// which keeps one-shot commands like status quiet.
func New(component string) Logger {
	if !DebugEnabled() {
		return Noop()
	}
	return &stdLogger{prefix: "[" + component + "] "}
}

type stdLogger struct {
	prefix string
}

func (l *stdLogger) write(level Level, format string, args []interface{}) {
	log.Print(l.prefix + level.String() + " " + fmt.Sprintf(format, args...))
}

func (l *stdLogger) Debug(format string, args ...interface{}) { l.write(LevelDebug, format, args) }
func (l *stdLogger) Info(format string, args ...interface{})  { l.write(LevelInfo, format, args) }
func (l *stdLogger) Warn(format string, args ...interface{})  { l.write(LevelWarn, format, args) }
func (l *stdLogger) Error(format string, args ...interface{}) { l.write(LevelError, format, args) }

type noopLogger struct{}

// Noop returns a logger that discards everything.
func Noop() Logger {
	return noopLogger{}
}

func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// Entry is one message captured by a BufferLogger.
type Entry struct {
	Level   Level
	Message string
}

// BufferLogger records messages for assertions. Safe for use from tea.Cmd
// goroutines.
type BufferLogger struct {
	mu      sync.Mutex
	entries []Entry
}

func NewBufferLogger() *BufferLogger {
	return &BufferLogger{}
}

func (l *BufferLogger) add(level Level, format string, args []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, Entry{Level: level, Message: fmt.Sprintf(format, args...)})
}

func (l *BufferLogger) Debug(format string, args ...interface{}) { l.add(LevelDebug, format, args) }
func (l *BufferLogger) Info(format string, args ...interface{})  { l.add(LevelInfo, format, args) }
func (l *BufferLogger) Warn(format string, args ...interface{})  { l.add(LevelWarn, format, args) }
func (l *BufferLogger) Error(format string, args ...interface{}) { l.add(LevelError, format, args) }

// Entries returns a copy of everything recorded so far.
func (l *BufferLogger) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Entry(nil), l.entries...)
}

// HasLevel reports whether anything was recorded at level.
func (l *BufferLogger) HasLevel(level Level) bool {
	for _, e := range l.Entries() {
		if e.Level == level {
			return true
		}
	}
	return false
}
