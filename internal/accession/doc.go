// Package accession parses dbGaP accession identifiers.
//
// dbGaP assigns versioned accessions to studies, datasets (tables) and
// variables:
//
//	phs000001.v1    study
//	pht000013.v2    dataset / data table
//	phv00000137.v1  variable
//
// Every id field of a data dictionary must match ^ph[stv][0-9]+\.v[0-9]+$.
// Parse splits a matching id into its numeric part and its version, both
// kept as strings so leading zeros survive.
package accession
