package dbgap

// Logger provides a pluggable logging interface for dbgapdd operations.
// Implementations must be safe for concurrent use by multiple goroutines.
type Logger interface {
	// Verbose logs detailed diagnostic information.
	// Only logged at the highest verbosity level.
	Verbose(format string, args ...interface{})

	// Info logs informational messages about normal operations.
	Info(format string, args ...interface{})

	// Warn logs non-fatal findings such as duplicate value codes or
	// unrecognized columns. Logged at the default verbosity.
	Warn(format string, args ...interface{})

	// Error logs error messages.
	// Always logged regardless of verbosity.
	Error(format string, args ...interface{})
}
