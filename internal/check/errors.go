package check

import (
	"fmt"
	"strings"

	"github.com/vvka-141/dbgapdd/pkg/dbgap"
)

// EncodingError reports a CODE=VALUE cell that violates the encoding syntax.
type EncodingError struct {
	Kind     error  // dbgap.ErrMalformedEncoding or dbgap.ErrEmptyEncodingValue
	Variable string // VARIABLE_ACC of the offending row
	Raw      string // cell content as found
}

func (e *EncodingError) Error() string {
	if e.Kind == dbgap.ErrEmptyEncodingValue {
		return fmt.Sprintf("Variable %s contains correctly formatted encoded field but value is empty: %s", e.Variable, e.Raw)
	}
	return fmt.Sprintf("Variable %s contains encoded value field that doesn't follow formatting (CODE=VAL): %s", e.Variable, e.Raw)
}

func (e *EncodingError) Unwrap() error {
	return e.Kind
}

// StructuralError reports columns a data dictionary must have but lacks.
type StructuralError struct {
	Columns []string
	Message string
}

func (e *StructuralError) Error() string {
	return e.Message
}

func (e *StructuralError) Unwrap() error {
	return dbgap.ErrStructural
}

// MissingColumnsError lists every missing required column in one error.
func MissingColumnsError(columns []string) *StructuralError {
	return &StructuralError{
		Columns: columns,
		Message: fmt.Sprintf("Required column '%s' missing from data dictionary!", strings.Join(columns, ", ")),
	}
}

// MissingFieldError reports a single field the reformatter cannot work without.
func MissingFieldError(field string) *StructuralError {
	return &StructuralError{
		Columns: []string{field},
		Message: fmt.Sprintf("Required field %s missing from DataDictionary!", field),
	}
}
