package logging

import (
	"fmt"
	"sync"
)

// Entry is one recorded log message.
type Entry struct {
	Level   Level
	Message string
}

// MemoryLogger records every message regardless of level.
type MemoryLogger struct {
	mu      sync.Mutex
	entries []Entry
}

// NewMemoryLogger creates an empty MemoryLogger.
func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

// Verbose records a debug message.
func (l *MemoryLogger) Verbose(format string, args ...interface{}) {
	l.record(LevelVerbose, format, args...)
}

// Info records an informational message.
func (l *MemoryLogger) Info(format string, args ...interface{}) {
	l.record(LevelInfo, format, args...)
}

// Warn records a warning.
func (l *MemoryLogger) Warn(format string, args ...interface{}) {
	l.record(LevelWarn, format, args...)
}

// Error records an error message.
func (l *MemoryLogger) Error(format string, args ...interface{}) {
	l.record(LevelError, format, args...)
}

func (l *MemoryLogger) record(level Level, format string, args ...interface{}) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, Entry{Level: level, Message: msg})
}

// Entries returns a copy of all recorded entries.
func (l *MemoryLogger) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Entry(nil), l.entries...)
}

// Messages returns the messages recorded at level, in order.
func (l *MemoryLogger) Messages(level Level) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var msgs []string
	for _, e := range l.entries {
		if e.Level == level {
			msgs = append(msgs, e.Message)
		}
	}
	return msgs
}

// Warnings is shorthand for Messages(LevelWarn).
func (l *MemoryLogger) Warnings() []string {
	return l.Messages(LevelWarn)
}

// VerboseEnabled is always true so dumps are recorded too.
func (l *MemoryLogger) VerboseEnabled() bool {
	return true
}
