// Package filesystem abstracts where data dictionary sources come from.
//
// Key interfaces:
//   - FileSystemProvider: opens files and directories
//   - Directory: a directory that can be walked to discover dictionaries
//   - File: one discovered file with metadata
//
// Implementations:
//   - OSFileSystem: production implementation using the OS filesystem
//   - MemoryFileSystem: in-memory implementation for tests
//
// WritableFileSystem adds Create for the JSON and report outputs.
//
// OpenSource layers dbGaP conventions on top of a provider: "-" reads
// standard input and *.gz sources are decompressed with pgzip.
package filesystem
