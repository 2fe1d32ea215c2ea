// Package services wires the reader, validator, reformatter and report into
// the conversion workflow used by the CLI.
package services
