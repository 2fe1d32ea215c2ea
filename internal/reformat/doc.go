// Package reformat turns the tabular view of a data dictionary into the
// per-variable JSON records written by dbgapdd.
//
// Encoded values are unpacked leniently: cells that are null or lack '='
// are skipped rather than rejected. Run check.Dictionary first when strict
// validation is wanted.
package reformat
