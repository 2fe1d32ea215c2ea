// Package logging provides concrete implementations of the dbgap.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: Writes leveled messages to stderr, colored on terminals
//   - NullLogger: Discards all messages
//   - MemoryLogger: Records messages for assertions in tests
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
