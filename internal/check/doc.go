// Package check validates the tabular view of a data dictionary before it is
// reformatted.
//
// Two things are checked: the column set (required, optional and unknown
// columns) and the syntax of every CODE=VALUE cell in the VALUES and X__n
// columns. Validation is strict. The reformatter unpacks the same cells
// permissively, so anything that must be rejected has to be rejected here.
package check
