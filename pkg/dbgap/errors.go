package dbgap

import (
	"encoding/xml"
	"errors"
	"strings"

	"github.com/beevik/etree"
)

// Sentinel errors for the data dictionary error taxonomy.
// Structured errors returned by the reader, validator and reformatter unwrap
// to one of these, so callers can classify failures with errors.Is().
//
// Example usage:
//
//	dd, err := reader.ReadFile(path)
//	if errors.Is(err, dbgap.ErrDuplicateIdentifier) {
//	    // Two variables share a base accession
//	}
var (
	// ErrMalformedInput indicates the source is not a well-formed XML document.
	// XML syntax errors themselves are propagated as *xml.SyntaxError or
	// etree.ErrXML.
	ErrMalformedInput = errors.New("malformed input")

	// ErrMissingRequiredField indicates a required attribute, node or column is absent.
	ErrMissingRequiredField = errors.New("missing required field")

	// ErrInvalidIdentifier indicates an id fails the accession grammar.
	ErrInvalidIdentifier = errors.New("invalid identifier")

	// ErrDuplicateIdentifier indicates two variables share a base accession id.
	ErrDuplicateIdentifier = errors.New("duplicate identifier")

	// ErrMalformedEncoding indicates a CODE=VALUE field without '='.
	ErrMalformedEncoding = errors.New("malformed encoding")

	// ErrEmptyEncodingValue indicates a CODE=VALUE field with an empty value part.
	ErrEmptyEncodingValue = errors.New("empty encoding value")

	// ErrStructural indicates a dictionary-level shape violation.
	ErrStructural = errors.New("structural error")

	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var syntaxErr *xml.SyntaxError
	switch {
	case errors.As(err, &syntaxErr), errors.Is(err, etree.ErrXML), errors.Is(err, ErrMalformedInput):
		return ExitMalformedInput
	case errors.Is(err, ErrMissingRequiredField):
		return ExitMissingField
	case errors.Is(err, ErrInvalidIdentifier):
		return ExitInvalidIdentifier
	case errors.Is(err, ErrDuplicateIdentifier):
		return ExitDuplicateIdentifier
	case errors.Is(err, ErrMalformedEncoding), errors.Is(err, ErrEmptyEncodingValue):
		return ExitEncodingError
	case errors.Is(err, ErrStructural):
		return ExitStructuralError
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	}

	if isUsageError(err.Error()) {
		return ExitUsageError
	}

	return ExitGeneralError
}

// isUsageError recognizes the argument and flag errors produced by cobra.
func isUsageError(msg string) bool {
	for _, prefix := range []string{
		"unknown flag",
		"unknown shorthand flag",
		"unknown command",
		"accepts ",
		"requires at least",
		"required flag",
		"invalid argument",
		"missing required argument",
		"flag needs an argument",
	} {
		if strings.HasPrefix(msg, prefix) {
			return true
		}
	}
	return false
}
