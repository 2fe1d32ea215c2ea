package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Level is a log severity. Higher levels are more verbose.
type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelVerbose
)

// DefaultVerbosity logs errors and warnings.
const DefaultVerbosity = int(LevelWarn)

// MaxVerbosity enables every level.
const MaxVerbosity = int(LevelVerbose)

// Tag returns the level name printed in front of each message.
func (l Level) Tag() string {
	switch l {
	case LevelError:
		return "DATA_DICT_TO_JSON_ERROR"
	case LevelWarn:
		return "DATA_DICT_TO_JSON_WARNING"
	case LevelInfo:
		return "DATA_DICT_TO_JSON_INFO"
	default:
		return "DATA_DICT_TO_JSON_DEBUG"
	}
}

var levelColors = map[Level]lipgloss.Color{
	LevelError:   lipgloss.Color("196"), // red
	LevelWarn:    lipgloss.Color("214"), // orange
	LevelInfo:    lipgloss.Color("39"),  // blue
	LevelVerbose: lipgloss.Color("34"),  // green
}

const timestampLayout = "2006-01-02 15:04:05"

// ConsoleLogger writes log messages to stderr in the form
// "[timestamp] LEVEL_TAG: message".
// Safe for concurrent use by multiple goroutines.
type ConsoleLogger struct {
	out       io.Writer
	verbosity int
	tags      map[Level]string
	now       func() time.Time
	mu        sync.Mutex
}

// NewConsoleLogger creates a ConsoleLogger on stderr.
// verbosity 0 logs errors only, 1 adds warnings, 2 adds info, 3 adds verbose
// output. Level tags are colored when stderr is a terminal and NO_COLOR is unset.
func NewConsoleLogger(verbosity int) *ConsoleLogger {
	return NewConsoleLoggerTo(os.Stderr, verbosity, ColorEnabled(os.Stderr))
}

// NewConsoleLoggerTo creates a ConsoleLogger writing to w.
func NewConsoleLoggerTo(w io.Writer, verbosity int, color bool) *ConsoleLogger {
	if verbosity < 0 {
		verbosity = 0
	}
	if verbosity > MaxVerbosity {
		verbosity = MaxVerbosity
	}

	tags := make(map[Level]string, len(levelColors))
	var renderer *lipgloss.Renderer
	if color {
		renderer = lipgloss.NewRenderer(w)
	}
	for level, c := range levelColors {
		tag := level.Tag()
		if renderer != nil {
			tag = renderer.NewStyle().Bold(true).Foreground(c).Render(tag)
		}
		tags[level] = tag
	}

	return &ConsoleLogger{
		out:       w,
		verbosity: verbosity,
		tags:      tags,
		now:       time.Now,
	}
}

// ColorEnabled reports whether output to f should be colored.
func ColorEnabled(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Verbosity returns the configured verbosity.
func (l *ConsoleLogger) Verbosity() int {
	return l.verbosity
}

// VerboseEnabled reports whether Verbose produces output.
func (l *ConsoleLogger) VerboseEnabled() bool {
	return l.verbosity >= int(LevelVerbose)
}

// Verbose logs detailed diagnostic information.
func (l *ConsoleLogger) Verbose(format string, args ...interface{}) {
	l.log(LevelVerbose, format, args...)
}

// Info logs informational messages about normal operations.
func (l *ConsoleLogger) Info(format string, args ...interface{}) {
	l.log(LevelInfo, format, args...)
}

// Warn logs non-fatal findings.
func (l *ConsoleLogger) Warn(format string, args ...interface{}) {
	l.log(LevelWarn, format, args...)
}

// Error logs error messages.
func (l *ConsoleLogger) Error(format string, args ...interface{}) {
	l.log(LevelError, format, args...)
}

func (l *ConsoleLogger) log(level Level, format string, args ...interface{}) {
	if int(level) > l.verbosity {
		return
	}

	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, "[%s] %s: %s\n", l.now().Format(timestampLayout), l.tags[level], msg)
}
