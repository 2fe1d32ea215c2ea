package dbgap

import (
	"regexp"
	"strconv"
)

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess             = 0  // Conversion/validation completed successfully
	ExitGeneralError        = 1  // Unknown or unclassified error
	ExitUsageError          = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic               = 3  // Internal panic (unexpected crash)
	ExitConfigError         = 10 // Invalid configuration file or environment
	ExitMalformedInput      = 20 // Source is not well-formed XML
	ExitMissingField        = 21 // Required attribute, node or column missing
	ExitInvalidIdentifier   = 22 // Accession id fails the ph[stv] grammar
	ExitDuplicateIdentifier = 23 // Two variables share an accession
	ExitEncodingError       = 24 // CODE=VALUE field is malformed or empty
	ExitStructuralError     = 25 // Dictionary shape violation
)

// Standardized column names of the tabular data dictionary view and the JSON output.
const (
	VariableAccField     = "VARIABLE_ACC"
	VariableVersionField = "VARIABLE_VERSION"
	DatasetAccField      = "DATASET_ACC"
	DatasetVersionField  = "DATASET_VERSION"
	StudyAccField        = "STUDY_ACC"
	StudyVersionField    = "STUDY_VERSION"
	DatasetPartSetField  = "DATASET_PARTICIPANT_SET"
	DatasetDescField     = "DATASET_DESC"
	DatasetNameField     = "DATASET_NAME"
	EncodedValuesField   = "ENCODED_VALUES"
	VarNameField         = "VARNAME"
	VarDescField         = "VARDESC"
	TypeField            = "TYPE"
	UnitsField           = "UNITS"
	MinField             = "MIN"
	MaxField             = "MAX"
	UniqueKeyField       = "UNIQUEKEY"
	ValuesField          = "VALUES"
)

// OverflowPrefix prefixes the synthetic columns (X__1, X__2, ...) that hold
// encoded values beyond the first.
const OverflowPrefix = "X__"

// UniqueKeyMarker is the UNIQUEKEY cell value of variables named by a
// <unique_key> element.
const UniqueKeyMarker = "X"

// ReadColumnOrder is the canonical leading column order of a data dictionary.
var ReadColumnOrder = []string{
	VariableAccField, DatasetAccField,
	DatasetPartSetField, StudyAccField,
	DatasetDescField, VarNameField,
	VarDescField, TypeField,
	UnitsField, MinField,
	MaxField, UniqueKeyField,
	ValuesField,
}

// CompanionColumnOrder lists the version and name columns that follow the
// canonical columns and precede the overflow columns.
var CompanionColumnOrder = []string{
	VariableVersionField, DatasetVersionField, StudyVersionField, DatasetNameField,
}

// RequiredJSONFields are the columns every data dictionary must carry.
var RequiredJSONFields = []string{
	VariableAccField, DatasetAccField,
	StudyAccField, VarNameField,
}

// OptionalJSONFields are emitted when present; their absence is only a warning.
var OptionalJSONFields = []string{
	DatasetPartSetField, DatasetDescField,
	VarDescField, UnitsField, EncodedValuesField,
}

// DefaultOutputFields returns the default JSON projection: required then optional fields.
func DefaultOutputFields() []string {
	fields := make([]string, 0, len(RequiredJSONFields)+len(OptionalJSONFields))
	fields = append(fields, RequiredJSONFields...)
	return append(fields, OptionalJSONFields...)
}

var overflowColumnRegex = regexp.MustCompile(`^X__([0-9]+)$`)

// OverflowColumn returns the name of the n-th overflow column (n >= 1).
func OverflowColumn(n int) string {
	return OverflowPrefix + strconv.Itoa(n)
}

// OverflowIndex reports the index of an overflow column name such as "X__3".
// Returns false for any other name.
func OverflowIndex(name string) (int, bool) {
	m := overflowColumnRegex.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// IsValueColumn reports whether a column holds CODE=VALUE encodings:
// VALUES itself or an overflow column.
func IsValueColumn(name string) bool {
	if name == ValuesField {
		return true
	}
	_, ok := OverflowIndex(name)
	return ok
}
