package logging

import (
	"fmt"
	"sync"

	"github.com/vvka-141/dbgapdd/pkg/dbgap"
)

// Collector forwards every message to an inner logger and keeps a copy of
// the warnings, so a caller can report them after the fact.
type Collector struct {
	inner    dbgap.Logger
	mu       sync.Mutex
	warnings []string
}

// NewCollector wraps inner.
func NewCollector(inner dbgap.Logger) *Collector {
	return &Collector{inner: inner}
}

// Verbose forwards a debug message.
func (c *Collector) Verbose(format string, args ...interface{}) {
	c.inner.Verbose(format, args...)
}

// Info forwards an informational message.
func (c *Collector) Info(format string, args ...interface{}) {
	c.inner.Info(format, args...)
}

// Warn records the formatted warning and forwards it.
func (c *Collector) Warn(format string, args ...interface{}) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	c.mu.Lock()
	c.warnings = append(c.warnings, msg)
	c.mu.Unlock()
	c.inner.Warn("%s", msg)
}

// Error forwards an error message.
func (c *Collector) Error(format string, args ...interface{}) {
	c.inner.Error(format, args...)
}

// VerboseEnabled reports whether the inner logger prints verbose output.
func (c *Collector) VerboseEnabled() bool {
	r, ok := c.inner.(verboseReporter)
	return ok && r.VerboseEnabled()
}

// Warnings returns the collected warnings in order.
func (c *Collector) Warnings() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.warnings...)
}
